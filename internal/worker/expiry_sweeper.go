package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/polkiloo/smartxerox/internal/usecase"
)

// ExpiryFacade exposes the sweep operation required by the worker.
type ExpiryFacade interface {
	SweepExpired(ctx context.Context, now time.Time) (usecase.SweepReport, error)
}

// ExpirySweeper runs the expiry sweep at the top of every interval on a
// single goroutine, so sweeps never overlap.
type ExpirySweeper struct {
	facade     ExpiryFacade
	interval   time.Duration
	runOnStart bool
	logger     *slog.Logger

	now   func() time.Time
	after func(time.Duration) <-chan time.Time

	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewExpirySweeper constructs the sweeper.
func NewExpirySweeper(facade ExpiryFacade, interval time.Duration, runOnStart bool, logger *slog.Logger) *ExpirySweeper {
	if interval <= 0 {
		interval = time.Hour
	}
	return &ExpirySweeper{
		facade:     facade,
		interval:   interval,
		runOnStart: runOnStart,
		logger:     logger,
		now:        time.Now,
		after:      time.After,
	}
}

// Start launches the background loop. Calling Start on a running sweeper is a no-op.
func (s *ExpirySweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.wg.Add(1)
	go s.loop(runCtx)
}

// Stop cancels the loop and waits for an in-flight sweep to return.
func (s *ExpirySweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *ExpirySweeper) loop(ctx context.Context) {
	defer s.wg.Done()

	if s.runOnStart {
		s.sweep(ctx)
	}

	for {
		now := s.now()
		next := nextRun(now, s.interval)
		s.logger.Debug("next expiry sweep scheduled", slog.Time("at", next))

		select {
		case <-ctx.Done():
			return
		case <-s.after(next.Sub(now)):
			s.sweep(ctx)
		}
	}
}

func (s *ExpirySweeper) sweep(ctx context.Context) {
	start := s.now()
	report, err := s.facade.SweepExpired(ctx, start)
	if err != nil {
		s.logger.Error("expiry sweep failed", slog.String("error", err.Error()))
		return
	}
	s.logger.Info("expiry sweep finished",
		slog.Time("cutoff", report.Cutoff),
		slog.Int("matched", report.Matched),
		slog.Int("files_removed", report.FilesRemoved),
		slog.Int64("rows_deleted", report.RowsDeleted),
		slog.Duration("took", s.now().Sub(start)))
}

// nextRun returns the next boundary of interval strictly after now. Boundaries
// are counted from local midnight in now's location, so an hourly interval
// lands on the wall-clock top of the hour even in half-hour offset zones.
func nextRun(now time.Time, interval time.Duration) time.Time {
	y, m, d := now.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	elapsed := now.Sub(midnight)
	return midnight.Add((elapsed/interval + 1) * interval)
}
