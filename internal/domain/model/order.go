package model

import (
	"fmt"
	"time"
)

const (
	// RetentionWindow is the lifetime of an order and its file.
	RetentionWindow = 24 * time.Hour
	// SweepInterval is the cadence of the expiry sweep.
	SweepInterval = time.Hour
	// GroupWindow bounds how far apart orders of one submission may be.
	GroupWindow = 5 * time.Minute
)

// OrderStatus describes print lifecycle. Any status may follow any other.
type OrderStatus string

const (
	OrderStatusInQueue   OrderStatus = "In Queue"
	OrderStatusPrinting  OrderStatus = "Printing"
	OrderStatusReady     OrderStatus = "Ready"
	OrderStatusDelivered OrderStatus = "Delivered"
)

// OrderStatuses lists every status in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusInQueue,
	OrderStatusPrinting,
	OrderStatusReady,
	OrderStatusDelivered,
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// ColorType is the print mode requested for an order.
type ColorType string

const (
	ColorTypeBW    ColorType = "B&W"
	ColorTypeColor ColorType = "Color"
)

// ColorTypes lists supported print modes.
var ColorTypes = []ColorType{ColorTypeBW, ColorTypeColor}

func (c ColorType) Valid() bool {
	return c == ColorTypeBW || c == ColorTypeColor
}

// Order is a single-file print request.
type Order struct {
	ID          string
	StudentName string
	PhoneNumber string
	FileURL     string
	FilePath    string
	Copies      int
	ColorType   ColorType
	Status      OrderStatus
	CreatedAt   time.Time
}

// NewOrder holds the fields persisted when an order row is inserted.
type NewOrder struct {
	StudentName string
	PhoneNumber string
	FileURL     string
	FilePath    string
	Copies      int
	ColorType   ColorType
	Status      OrderStatus
}

// OrderFilter narrows admin listings. Nil Status means all.
type OrderFilter struct {
	Status *OrderStatus
}

// ExpiresAt returns the moment the order becomes eligible for purge.
func (o Order) ExpiresAt() time.Time {
	return o.CreatedAt.Add(RetentionWindow)
}

// Expired reports whether the order is past its retention window at now.
func (o Order) Expired(now time.Time) bool {
	return !now.Before(o.ExpiresAt())
}

// TimeRemaining returns how long until createdAt leaves the retention window.
// The result is negative once the window has passed.
func TimeRemaining(createdAt, now time.Time) time.Duration {
	return createdAt.Add(RetentionWindow).Sub(now)
}

// RemainingLabel renders the countdown shown to students.
func RemainingLabel(createdAt, now time.Time) string {
	remaining := TimeRemaining(createdAt, now)
	if remaining <= 0 {
		return "Expired"
	}
	hours := int(remaining / time.Hour)
	minutes := int((remaining % time.Hour) / time.Minute)
	return fmt.Sprintf("%dh %dm remaining", hours, minutes)
}
