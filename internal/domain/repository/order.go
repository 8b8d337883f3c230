package repository

import (
	"context"
	"time"

	"github.com/polkiloo/smartxerox/internal/domain/model"
)

// OrderRepository describes persistence operations with print orders.
type OrderRepository interface {
	Create(ctx context.Context, order model.NewOrder) (*model.Order, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]model.Order, error)
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)
	Delete(ctx context.Context, id string) error
	ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]model.Order, error)
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	Stats(ctx context.Context) (*model.OrderStats, error)
}
