package usecase

import (
	"context"
	"sort"
	"time"

	"github.com/polkiloo/smartxerox/internal/domain/model"
)

// StatusUpdateFunc applies a status to a single order.
type StatusUpdateFunc func(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error)

// GroupUpdateFailure records an order the bulk update could not change.
type GroupUpdateFailure struct {
	OrderID string
	Err     error
}

// GroupUpdateResult summarises a bulk status change. Rows are updated
// independently, so a partial result is possible.
type GroupUpdateResult struct {
	Updated []model.Order
	Failed  []GroupUpdateFailure
}

type groupKey struct {
	name  string
	phone string
}

// GroupOrders folds orders of one student submitted within window of the
// group's earliest order into a single group. Groups are returned newest first,
// orders inside a group oldest first.
func GroupOrders(orders []model.Order, window time.Duration) []model.OrderGroup {
	sorted := make([]model.Order, len(orders))
	copy(sorted, orders)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	groups := make([]model.OrderGroup, 0)
	open := make(map[groupKey]int)
	for _, o := range sorted {
		key := groupKey{name: o.StudentName, phone: o.PhoneNumber}
		if idx, ok := open[key]; ok && o.CreatedAt.Sub(groups[idx].CreatedAt) < window {
			groups[idx].Orders = append(groups[idx].Orders, o)
			continue
		}
		groups = append(groups, model.OrderGroup{
			StudentName: o.StudentName,
			PhoneNumber: o.PhoneNumber,
			CreatedAt:   o.CreatedAt,
			Orders:      []model.Order{o},
		})
		open[key] = len(groups) - 1
	}

	for i, j := 0, len(groups)-1; i < j; i, j = i+1, j-1 {
		groups[i], groups[j] = groups[j], groups[i]
	}
	return groups
}

// ApplyGroupStatus sets status on every id through update. The status is
// checked once up front; per-order failures are collected, not fatal.
func ApplyGroupStatus(ctx context.Context, ids []string, status model.OrderStatus, update StatusUpdateFunc) (GroupUpdateResult, error) {
	result := GroupUpdateResult{Updated: make([]model.Order, 0, len(ids))}
	if err := validateStatus(status); err != nil {
		return result, err
	}

	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			result.Failed = append(result.Failed, GroupUpdateFailure{OrderID: id, Err: err})
			continue
		}
		order, err := update(ctx, id, status)
		if err != nil {
			result.Failed = append(result.Failed, GroupUpdateFailure{OrderID: id, Err: err})
			continue
		}
		result.Updated = append(result.Updated, *order)
	}
	return result, nil
}
