package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/polkiloo/smartxerox/internal/config"
	domainErrors "github.com/polkiloo/smartxerox/internal/domain/errors"
	"github.com/polkiloo/smartxerox/internal/domain/model"
	"github.com/polkiloo/smartxerox/internal/domain/repository"
	"github.com/polkiloo/smartxerox/internal/pkg/filetype"
)

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders        repository.OrderRepository
	blobs         repository.BlobStore
	logger        *slog.Logger
	maxUploadSize int64
	now           func() time.Time
	newSuffix     func() string
}

// BatchFailure describes one file of a submission that was not turned into an order.
type BatchFailure struct {
	FileName string
	Err      error
}

// BatchResult tallies a multi-file submission.
type BatchResult struct {
	Orders   []model.Order
	Failures []BatchFailure
}

func (r *BatchResult) Succeeded() int { return len(r.Orders) }
func (r *BatchResult) Failed() int    { return len(r.Failures) }

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, blobs repository.BlobStore, cfg *config.Config, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		orders:        orders,
		blobs:         blobs,
		logger:        logger,
		maxUploadSize: cfg.MaxUploadSize,
		now:           time.Now,
		newSuffix:     func() string { return strings.ReplaceAll(uuid.NewString(), "-", "")[:10] },
	}
}

func (u *OrderUseCase) blobPath(ext string) string {
	return fmt.Sprintf("orders/%d-%s%s", u.now().UnixMilli(), u.newSuffix(), ext)
}

// Create validates the submission, uploads the file and inserts the order row.
// A failed insert removes the uploaded file before returning.
func (u *OrderUseCase) Create(ctx context.Context, sub OrderSubmission, file *FileUpload) (*model.Order, error) {
	valid, err := validateSubmission(sub, file != nil)
	if err != nil {
		return nil, err
	}
	return u.create(ctx, valid, *file)
}

func (u *OrderUseCase) create(ctx context.Context, sub validSubmission, file FileUpload) (*model.Order, error) {
	contentType, err := validateFile(file, u.maxUploadSize)
	if err != nil {
		return nil, err
	}

	path := u.blobPath(filetype.Extension(file.Name, contentType))
	if err := u.blobs.Upload(ctx, path, bytes.NewReader(file.Content), contentType); err != nil {
		u.logger.Error("file upload failed", slog.String("path", path), slog.Any("error", err))
		return nil, domainErrors.Storage(err)
	}

	order, err := u.orders.Create(ctx, model.NewOrder{
		StudentName: sub.studentName,
		PhoneNumber: sub.phoneNumber,
		FileURL:     u.blobs.PublicURL(path),
		FilePath:    path,
		Copies:      sub.copies,
		ColorType:   sub.colorType,
		Status:      model.OrderStatusInQueue,
	})
	if err != nil {
		u.logger.Error("order insert failed, removing uploaded file", slog.String("path", path), slog.Any("error", err))
		if _, rmErr := u.blobs.Remove(context.WithoutCancel(ctx), []string{path}); rmErr != nil {
			u.logger.Error("orphaned file left in storage", slog.String("path", path), slog.Any("error", rmErr))
		}
		return nil, domainErrors.Persistence(err)
	}

	u.logger.Info("order created",
		slog.String("order_id", order.ID),
		slog.String("color_type", string(order.ColorType)),
		slog.Int("copies", order.Copies))
	return order, nil
}

// SubmitBatch turns every file into its own order sharing the form fields.
// Invalid form fields reject the whole batch; per-file failures are tallied.
func (u *OrderUseCase) SubmitBatch(ctx context.Context, sub OrderSubmission, files []FileUpload) (*BatchResult, error) {
	valid, err := validateSubmission(sub, len(files) > 0)
	if err != nil {
		return nil, err
	}

	result := &BatchResult{Orders: make([]model.Order, 0, len(files))}
	for _, f := range files {
		order, err := u.create(ctx, valid, f)
		if err != nil {
			result.Failures = append(result.Failures, BatchFailure{FileName: f.Name, Err: err})
			continue
		}
		result.Orders = append(result.Orders, *order)
	}

	u.logger.Info("batch submitted", slog.Int("succeeded", result.Succeeded()), slog.Int("failed", result.Failed()))
	return result, nil
}

// Get returns a single order.
func (u *OrderUseCase) Get(ctx context.Context, id string) (*model.Order, error) {
	if !validOrderID(id) {
		return nil, domainErrors.ErrNotFound
	}
	return u.orders.GetByID(ctx, id)
}

// ListByPhone returns orders of a phone number, newest first.
func (u *OrderUseCase) ListByPhone(ctx context.Context, phone string) ([]model.Order, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, domainErrors.NewValidationError("phone_number", "Phone number is required")
	}
	return u.orders.ListByPhone(ctx, phone)
}

// List returns all orders, optionally narrowed by status.
func (u *OrderUseCase) List(ctx context.Context, status string) ([]model.Order, error) {
	filter, err := statusFilter(status)
	if err != nil {
		return nil, err
	}
	return u.orders.List(ctx, filter)
}

// Groups returns orders folded into submissions.
func (u *OrderUseCase) Groups(ctx context.Context, status string) ([]model.OrderGroup, error) {
	orders, err := u.List(ctx, status)
	if err != nil {
		return nil, err
	}
	return GroupOrders(orders, model.GroupWindow), nil
}

// SetStatus overwrites the status of one order. Any status may follow any other.
func (u *OrderUseCase) SetStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if err := validateStatus(status); err != nil {
		return nil, err
	}
	if !validOrderID(id) {
		return nil, domainErrors.ErrNotFound
	}

	order, err := u.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	u.logger.Info("order status updated", slog.String("order_id", id), slog.String("status", string(status)))
	return order, nil
}

// SetStatusMany applies status to each order independently.
func (u *OrderUseCase) SetStatusMany(ctx context.Context, ids []string, status model.OrderStatus) (GroupUpdateResult, error) {
	if len(ids) == 0 {
		return GroupUpdateResult{}, domainErrors.NewValidationError("order_ids", "order_ids must not be empty")
	}
	return ApplyGroupStatus(ctx, ids, status, u.SetStatus)
}

// Delete removes the stored file and then the order row. A failed file
// removal is logged and does not keep the row.
func (u *OrderUseCase) Delete(ctx context.Context, id string) error {
	order, err := u.Get(ctx, id)
	if err != nil {
		return err
	}

	if order.FilePath != "" {
		if _, err := u.blobs.Remove(ctx, []string{order.FilePath}); err != nil {
			u.logger.Error("file removal failed", slog.String("order_id", id), slog.String("path", order.FilePath), slog.Any("error", err))
		}
	}

	if err := u.orders.Delete(ctx, id); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.logger.Debug("order already removed", slog.String("order_id", id))
			return nil
		}
		return err
	}

	u.logger.Info("order deleted", slog.String("order_id", id))
	return nil
}

// Stats aggregates counters over all orders.
func (u *OrderUseCase) Stats(ctx context.Context) (*model.OrderStats, error) {
	return u.orders.Stats(ctx)
}

func statusFilter(status string) (model.OrderFilter, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return model.OrderFilter{}, nil
	}
	s := model.OrderStatus(status)
	if err := validateStatus(s); err != nil {
		return model.OrderFilter{}, err
	}
	return model.OrderFilter{Status: &s}, nil
}

func validOrderID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
