package model

import "time"

// OrderGroup is a set of orders submitted together by one student.
type OrderGroup struct {
	StudentName string
	PhoneNumber string
	CreatedAt   time.Time
	Orders      []Order
}

// IDs returns identifiers of every order in the group.
func (g OrderGroup) IDs() []string {
	ids := make([]string, 0, len(g.Orders))
	for _, o := range g.Orders {
		ids = append(ids, o.ID)
	}
	return ids
}
