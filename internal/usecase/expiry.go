package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/polkiloo/smartxerox/internal/domain/model"
	"github.com/polkiloo/smartxerox/internal/domain/repository"
)

// SweepReport summarises one expiry sweep.
type SweepReport struct {
	Cutoff       time.Time
	Matched      int
	FilesRemoved int
	RowsDeleted  int64
	FileErr      error
	RowErr       error
}

// ExpiryUseCase purges orders older than the retention window together with their files.
type ExpiryUseCase struct {
	orders    repository.OrderRepository
	blobs     repository.BlobStore
	logger    *slog.Logger
	retention time.Duration
}

// NewExpiryUseCase constructs ExpiryUseCase.
func NewExpiryUseCase(orders repository.OrderRepository, blobs repository.BlobStore, logger *slog.Logger) *ExpiryUseCase {
	return &ExpiryUseCase{orders: orders, blobs: blobs, logger: logger, retention: model.RetentionWindow}
}

// Sweep deletes every order aged at least the retention window at now,
// regardless of status. File and row removal are independent: a failure in
// one is logged and does not stop the other. Only a failed lookup is returned.
func (u *ExpiryUseCase) Sweep(ctx context.Context, now time.Time) (SweepReport, error) {
	report := SweepReport{Cutoff: now.Add(-u.retention)}

	expired, err := u.orders.ListCreatedBefore(ctx, report.Cutoff)
	if err != nil {
		u.logger.Error("expiry sweep lookup failed", slog.Any("error", err))
		return report, err
	}
	report.Matched = len(expired)
	if len(expired) == 0 {
		u.logger.Debug("expiry sweep found nothing to purge", slog.Time("cutoff", report.Cutoff))
		return report, nil
	}

	paths := make([]string, 0, len(expired))
	ids := make([]string, 0, len(expired))
	for _, o := range expired {
		if o.FilePath != "" {
			paths = append(paths, o.FilePath)
		}
		ids = append(ids, o.ID)
	}

	removed, err := u.blobs.Remove(ctx, paths)
	if err != nil {
		report.FileErr = err
		u.logger.Error("expiry sweep file removal failed", slog.Int("files", len(paths)), slog.Any("error", err))
	} else {
		report.FilesRemoved = removed
		u.logger.Info("expiry sweep removed files", slog.Int("requested", len(paths)), slog.Int("files", removed))
	}

	deleted, err := u.orders.DeleteMany(ctx, ids)
	if err != nil {
		report.RowErr = err
		u.logger.Error("expiry sweep row deletion failed", slog.Int("orders", len(ids)), slog.Any("error", err))
	} else {
		report.RowsDeleted = deleted
		u.logger.Info("expiry sweep deleted orders", slog.Int64("orders", deleted))
	}

	return report, nil
}
