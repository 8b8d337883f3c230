package model

// OrderStats aggregates counters over all stored orders.
type OrderStats struct {
	Total       int
	ByStatus    map[OrderStatus]int
	ByColorType map[ColorType]int
	TotalCopies int
}

// NewOrderStats returns stats with every known bucket present and zeroed.
func NewOrderStats() *OrderStats {
	stats := &OrderStats{
		ByStatus:    make(map[OrderStatus]int, len(OrderStatuses)),
		ByColorType: make(map[ColorType]int, len(ColorTypes)),
	}
	for _, s := range OrderStatuses {
		stats.ByStatus[s] = 0
	}
	for _, c := range ColorTypes {
		stats.ByColorType[c] = 0
	}
	return stats
}

// Add folds count orders with the given status and color into stats.
func (s *OrderStats) Add(status OrderStatus, color ColorType, count, copies int) {
	s.Total += count
	s.ByStatus[status] += count
	s.ByColorType[color] += count
	s.TotalCopies += copies
}
