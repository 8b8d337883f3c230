package repository

import (
	"context"

	"github.com/polkiloo/smartxerox/internal/domain/model"
)

// StudentRepository describes persistence operations for student accounts.
type StudentRepository interface {
	Create(ctx context.Context, student model.NewStudent) (*model.Student, error)
	GetByEmail(ctx context.Context, email string) (*model.Student, error)
	GetByPhone(ctx context.Context, phone string) (*model.Student, error)
	GetByID(ctx context.Context, id int64) (*model.Student, error)
}
