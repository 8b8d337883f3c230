package handlers

import (
	"context"

	"github.com/polkiloo/smartxerox/internal/domain/model"
	pkgAuth "github.com/polkiloo/smartxerox/internal/pkg/auth"
	"github.com/polkiloo/smartxerox/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	RegisterStudent(ctx context.Context, in usecase.Registration) (*model.Student, error)
	LoginStudent(ctx context.Context, email, password string) (*model.Student, string, error)
	Profile(ctx context.Context, claims *pkgAuth.Claims) (*model.Student, error)
	AdminLogin(ctx context.Context, email, password string) (string, error)
	ParseToken(token string) (*pkgAuth.Claims, error)
}

// OrderFacade encapsulates student facing order operations.
type OrderFacade interface {
	CreateOrder(ctx context.Context, sub usecase.OrderSubmission, file *usecase.FileUpload) (*model.Order, error)
	SubmitBatch(ctx context.Context, sub usecase.OrderSubmission, files []usecase.FileUpload) (*usecase.BatchResult, error)
	OrdersByPhone(ctx context.Context, phone string) ([]model.Order, error)
	DeleteOrder(ctx context.Context, id string) error
}

// AdminFacade provides shop management operations.
type AdminFacade interface {
	Orders(ctx context.Context, status string) ([]model.Order, error)
	OrderGroups(ctx context.Context, status string) ([]model.OrderGroup, error)
	SetOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	SetOrdersStatus(ctx context.Context, ids []string, status model.OrderStatus) (usecase.GroupUpdateResult, error)
	Stats(ctx context.Context) (*model.OrderStats, error)
}

// HealthFacade reports backend reachability for the root endpoint.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// PrintShopFacade aggregates the full set of operations used across handlers.
type PrintShopFacade interface {
	AuthFacade
	OrderFacade
	AdminFacade
	HealthFacade
}
