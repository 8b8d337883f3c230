package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domainErrors "github.com/polkiloo/smartxerox/internal/domain/errors"
	"github.com/polkiloo/smartxerox/internal/domain/model"
	"github.com/polkiloo/smartxerox/internal/domain/repository"
)

type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

const uniqueViolation = "23505"

const orderColumns = `id::text, student_name, phone_number, file_url, file_path, copies, color_type, status, created_at`

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type orderRepository struct {
	storage *Storage
}

type studentRepository struct {
	storage *Storage
}

// New connects to the database and applies pending migrations.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := applyMigrations(ctx, pool, logger); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

var (
	_ repository.Factory       = (*Storage)(nil)
	_ repository.HealthChecker = (*Storage)(nil)
)

// Orders returns the order repository backed by this storage.
func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

// Students returns the student repository backed by this storage.
func (s *Storage) Students() repository.StudentRepository {
	return &studentRepository{storage: s}
}

// --- OrderRepository implementation ---

func scanOrder(row pgx.Row) (*model.Order, error) {
	var o model.Order
	if err := row.Scan(&o.ID, &o.StudentName, &o.PhoneNumber, &o.FileURL, &o.FilePath, &o.Copies, &o.ColorType, &o.Status, &o.CreatedAt); err != nil {
		return nil, err
	}
	return &o, nil
}

func collectOrders(rows pgx.Rows) ([]model.Order, error) {
	defer rows.Close()

	result := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) Create(ctx context.Context, order model.NewOrder) (*model.Order, error) {
	const query = `INSERT INTO orders (student_name, phone_number, file_url, file_path, copies, color_type, status)
                   VALUES ($1, $2, $3, $4, $5, $6, $7)
                   RETURNING ` + orderColumns
	row := r.storage.pool.QueryRow(ctx, query,
		order.StudentName, order.PhoneNumber, order.FileURL, order.FilePath, order.Copies, order.ColorType, order.Status)
	created, err := scanOrder(row)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByPhone(ctx context.Context, phone string) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE phone_number=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, phone)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if filter.Status != nil {
		const query = `SELECT ` + orderColumns + ` FROM orders WHERE status=$1 ORDER BY created_at DESC`
		rows, err = r.storage.pool.Query(ctx, query, *filter.Status)
	} else {
		const query = `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
		rows, err = r.storage.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	const query = `UPDATE orders SET status=$1 WHERE id=$2 RETURNING ` + orderColumns
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]model.Order, error) {
	const query = `SELECT ` + orderColumns + ` FROM orders WHERE created_at <= $1 ORDER BY created_at`
	rows, err := r.storage.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, err
	}
	return collectOrders(rows)
}

func (r *orderRepository) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id = ANY($1::uuid[])`, ids)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *orderRepository) Stats(ctx context.Context) (*model.OrderStats, error) {
	const query = `SELECT status, color_type, COUNT(*), COALESCE(SUM(copies), 0)
                   FROM orders GROUP BY status, color_type`
	rows, err := r.storage.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := model.NewOrderStats()
	for rows.Next() {
		var (
			status        model.OrderStatus
			color         model.ColorType
			count, copies int
		)
		if err := rows.Scan(&status, &color, &count, &copies); err != nil {
			return nil, err
		}
		stats.Add(status, color, count, copies)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stats, nil
}

// --- StudentRepository implementation ---

const studentColumns = `id, name, email, phone, password_hash, created_at`

func scanStudent(row pgx.Row) (*model.Student, error) {
	var s model.Student
	if err := row.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.PasswordHash, &s.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *studentRepository) Create(ctx context.Context, student model.NewStudent) (*model.Student, error) {
	const query = `INSERT INTO students (name, email, phone, password_hash) VALUES ($1, $2, $3, $4)
                   RETURNING ` + studentColumns
	row := r.storage.pool.QueryRow(ctx, query, student.Name, student.Email, student.Phone, student.PasswordHash)
	created, err := scanStudent(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return created, nil
}

func (r *studentRepository) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	const query = `SELECT ` + studentColumns + ` FROM students WHERE email=$1`
	return scanStudent(r.storage.pool.QueryRow(ctx, query, email))
}

func (r *studentRepository) GetByPhone(ctx context.Context, phone string) (*model.Student, error) {
	const query = `SELECT ` + studentColumns + ` FROM students WHERE phone=$1`
	return scanStudent(r.storage.pool.QueryRow(ctx, query, phone))
}

func (r *studentRepository) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	const query = `SELECT ` + studentColumns + ` FROM students WHERE id=$1`
	return scanStudent(r.storage.pool.QueryRow(ctx, query, id))
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}
