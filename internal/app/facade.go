package app

import (
	"context"
	"time"

	"github.com/polkiloo/smartxerox/internal/domain/model"
	"github.com/polkiloo/smartxerox/internal/domain/repository"
	pkgAuth "github.com/polkiloo/smartxerox/internal/pkg/auth"
	"github.com/polkiloo/smartxerox/internal/usecase"
)

// PrintShopFacade is the single entry point used by HTTP handlers and the sweeper.
type PrintShopFacade struct {
	auth   *usecase.AuthUseCase
	orders *usecase.OrderUseCase
	expiry *usecase.ExpiryUseCase
	health repository.HealthChecker
}

func NewPrintShopFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, expiry *usecase.ExpiryUseCase, health repository.HealthChecker) *PrintShopFacade {
	return &PrintShopFacade{auth: auth, orders: orders, expiry: expiry, health: health}
}

// Health reports whether the order store is reachable.
func (f *PrintShopFacade) Health(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

func (f *PrintShopFacade) RegisterStudent(ctx context.Context, in usecase.Registration) (*model.Student, error) {
	return f.auth.Register(ctx, in)
}

func (f *PrintShopFacade) LoginStudent(ctx context.Context, email, password string) (*model.Student, string, error) {
	return f.auth.Login(ctx, email, password)
}

func (f *PrintShopFacade) Profile(ctx context.Context, claims *pkgAuth.Claims) (*model.Student, error) {
	return f.auth.Profile(ctx, claims)
}

func (f *PrintShopFacade) AdminLogin(_ context.Context, email, password string) (string, error) {
	return f.auth.AdminLogin(email, password)
}

func (f *PrintShopFacade) ParseToken(token string) (*pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *PrintShopFacade) CreateOrder(ctx context.Context, sub usecase.OrderSubmission, file *usecase.FileUpload) (*model.Order, error) {
	return f.orders.Create(ctx, sub, file)
}

func (f *PrintShopFacade) SubmitBatch(ctx context.Context, sub usecase.OrderSubmission, files []usecase.FileUpload) (*usecase.BatchResult, error) {
	return f.orders.SubmitBatch(ctx, sub, files)
}

func (f *PrintShopFacade) OrdersByPhone(ctx context.Context, phone string) ([]model.Order, error) {
	return f.orders.ListByPhone(ctx, phone)
}

func (f *PrintShopFacade) DeleteOrder(ctx context.Context, id string) error {
	return f.orders.Delete(ctx, id)
}

func (f *PrintShopFacade) Orders(ctx context.Context, status string) ([]model.Order, error) {
	return f.orders.List(ctx, status)
}

func (f *PrintShopFacade) OrderGroups(ctx context.Context, status string) ([]model.OrderGroup, error) {
	return f.orders.Groups(ctx, status)
}

func (f *PrintShopFacade) SetOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	return f.orders.SetStatus(ctx, id, status)
}

func (f *PrintShopFacade) SetOrdersStatus(ctx context.Context, ids []string, status model.OrderStatus) (usecase.GroupUpdateResult, error) {
	return f.orders.SetStatusMany(ctx, ids, status)
}

func (f *PrintShopFacade) Stats(ctx context.Context) (*model.OrderStats, error) {
	return f.orders.Stats(ctx)
}

func (f *PrintShopFacade) SweepExpired(ctx context.Context, now time.Time) (usecase.SweepReport, error) {
	return f.expiry.Sweep(ctx, now)
}
