// Package facades holds in-memory stand-ins for the application facade used by transport and worker tests.
package facades

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/polkiloo/smartxerox/internal/domain/model"
	pkgAuth "github.com/polkiloo/smartxerox/internal/pkg/auth"
	"github.com/polkiloo/smartxerox/internal/usecase"
)

// AuthFacadeStub provides controllable behaviour for auth endpoints.
type AuthFacadeStub struct {
	RegisterFn   func(context.Context, usecase.Registration) (*model.Student, error)
	LoginFn      func(context.Context, string, string) (*model.Student, string, error)
	ProfileFn    func(context.Context, *pkgAuth.Claims) (*model.Student, error)
	AdminLoginFn func(context.Context, string, string) (string, error)
	ParseFn      func(string) (*pkgAuth.Claims, error)
}

// RegisterStudent delegates to RegisterFn or echoes the input.
func (s AuthFacadeStub) RegisterStudent(ctx context.Context, in usecase.Registration) (*model.Student, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.Student{ID: 1, Name: in.Name, Email: in.Email, Phone: in.Phone}, nil
}

// LoginStudent delegates to LoginFn or returns a fixed token.
func (s AuthFacadeStub) LoginStudent(ctx context.Context, email, password string) (*model.Student, string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, email, password)
	}
	return &model.Student{ID: 1, Email: email}, "token", nil
}

// Profile delegates to ProfileFn or returns a student for the claims subject.
func (s AuthFacadeStub) Profile(ctx context.Context, claims *pkgAuth.Claims) (*model.Student, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, claims)
	}
	return &model.Student{ID: 1, Email: claims.Email}, nil
}

// AdminLogin delegates to AdminLoginFn or returns a fixed token.
func (s AuthFacadeStub) AdminLogin(ctx context.Context, email, password string) (string, error) {
	if s.AdminLoginFn != nil {
		return s.AdminLoginFn(ctx, email, password)
	}
	return "admin-token", nil
}

// ParseToken maps "admin-token" to admin claims and anything else to a student.
func (s AuthFacadeStub) ParseToken(token string) (*pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if strings.HasPrefix(token, "admin") {
		return &pkgAuth.Claims{Role: pkgAuth.RoleAdmin, Email: "admin@shop.test"}, nil
	}
	return &pkgAuth.Claims{Role: pkgAuth.RoleStudent, Subject: "1"}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	CreateFn  func(context.Context, usecase.OrderSubmission, *usecase.FileUpload) (*model.Order, error)
	BatchFn   func(context.Context, usecase.OrderSubmission, []usecase.FileUpload) (*usecase.BatchResult, error)
	ByPhoneFn func(context.Context, string) ([]model.Order, error)
	DeleteFn  func(context.Context, string) error
}

// CreateOrder delegates to CreateFn or builds an order from the submission.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, sub usecase.OrderSubmission, file *usecase.FileUpload) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, sub, file)
	}
	return &model.Order{ID: "order-1", StudentName: sub.StudentName, PhoneNumber: sub.PhoneNumber, Status: model.OrderStatusInQueue, CreatedAt: time.Now()}, nil
}

// SubmitBatch delegates to BatchFn or accepts every file.
func (s OrderFacadeStub) SubmitBatch(ctx context.Context, sub usecase.OrderSubmission, files []usecase.FileUpload) (*usecase.BatchResult, error) {
	if s.BatchFn != nil {
		return s.BatchFn(ctx, sub, files)
	}
	result := &usecase.BatchResult{}
	for _, f := range files {
		result.Orders = append(result.Orders, model.Order{ID: f.Name, StudentName: sub.StudentName})
	}
	return result, nil
}

// OrdersByPhone returns predefined orders for given phone.
func (s OrderFacadeStub) OrdersByPhone(ctx context.Context, phone string) ([]model.Order, error) {
	if s.ByPhoneFn != nil {
		return s.ByPhoneFn(ctx, phone)
	}
	return []model.Order{{ID: "order-1", PhoneNumber: phone}}, nil
}

// DeleteOrder delegates to DeleteFn.
func (s OrderFacadeStub) DeleteOrder(ctx context.Context, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	return nil
}

// AdminFacadeStub simulates shop management operations.
type AdminFacadeStub struct {
	OrdersFn    func(context.Context, string) ([]model.Order, error)
	GroupsFn    func(context.Context, string) ([]model.OrderGroup, error)
	SetStatusFn func(context.Context, string, model.OrderStatus) (*model.Order, error)
	SetManyFn   func(context.Context, []string, model.OrderStatus) (usecase.GroupUpdateResult, error)
	StatsFn     func(context.Context) (*model.OrderStats, error)
}

// Orders returns configured orders or a single queued order.
func (s AdminFacadeStub) Orders(ctx context.Context, status string) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, status)
	}
	return []model.Order{{ID: "order-1", Status: model.OrderStatusInQueue}}, nil
}

// OrderGroups returns configured groups or none.
func (s AdminFacadeStub) OrderGroups(ctx context.Context, status string) ([]model.OrderGroup, error) {
	if s.GroupsFn != nil {
		return s.GroupsFn(ctx, status)
	}
	return []model.OrderGroup{}, nil
}

// SetOrderStatus delegates to SetStatusFn or echoes the new status.
func (s AdminFacadeStub) SetOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, id, status)
	}
	return &model.Order{ID: id, Status: status}, nil
}

// SetOrdersStatus delegates to SetManyFn or updates every id.
func (s AdminFacadeStub) SetOrdersStatus(ctx context.Context, ids []string, status model.OrderStatus) (usecase.GroupUpdateResult, error) {
	if s.SetManyFn != nil {
		return s.SetManyFn(ctx, ids, status)
	}
	result := usecase.GroupUpdateResult{}
	for _, id := range ids {
		result.Updated = append(result.Updated, model.Order{ID: id, Status: status})
	}
	return result, nil
}

// Stats returns configured stats or empty buckets.
func (s AdminFacadeStub) Stats(ctx context.Context) (*model.OrderStats, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return model.NewOrderStats(), nil
}

// HealthFacadeStub reports HealthErr from every check.
type HealthFacadeStub struct {
	HealthErr error
}

// Health returns the configured error.
func (s HealthFacadeStub) Health(ctx context.Context) error {
	return s.HealthErr
}

// PrintShopFacadeStub combines every handler facade stub.
type PrintShopFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	AdminFacadeStub
	HealthFacadeStub
}

// SweeperFacadeStub records sweep invocations.
type SweeperFacadeStub struct {
	SweepFn func(context.Context, time.Time) (usecase.SweepReport, error)

	mu    sync.Mutex
	times []time.Time
}

// SweepExpired records now and delegates to SweepFn.
func (s *SweeperFacadeStub) SweepExpired(ctx context.Context, now time.Time) (usecase.SweepReport, error) {
	s.mu.Lock()
	s.times = append(s.times, now)
	s.mu.Unlock()
	if s.SweepFn != nil {
		return s.SweepFn(ctx, now)
	}
	return usecase.SweepReport{Cutoff: now.Add(-model.RetentionWindow)}, nil
}

// CallCount returns the number of sweeps run so far.
func (s *SweeperFacadeStub) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.times)
}

// Times returns the instants passed to each sweep.
func (s *SweeperFacadeStub) Times() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]time.Time(nil), s.times...)
}
