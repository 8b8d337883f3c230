package test

import (
	"context"
	"sync"
)

// HealthCheckerStub counts health checks and returns Err.
type HealthCheckerStub struct {
	mu    sync.Mutex
	calls int

	Err error
}

// HealthCheck records the call.
func (h *HealthCheckerStub) HealthCheck(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.calls++
	return h.Err
}

// Calls returns how many checks ran.
func (h *HealthCheckerStub) Calls() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.calls
}
