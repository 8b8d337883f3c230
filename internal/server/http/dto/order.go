package dto

import "time"

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID            string    `json:"id"`
	StudentName   string    `json:"student_name"`
	PhoneNumber   string    `json:"phone_number"`
	FileURL       string    `json:"file_url"`
	Copies        int       `json:"copies"`
	ColorType     string    `json:"color_type"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	TimeRemaining string    `json:"time_remaining"`
}

// OrderGroupResponse lists orders of one submission.
type OrderGroupResponse struct {
	StudentName string          `json:"student_name"`
	PhoneNumber string          `json:"phone_number"`
	CreatedAt   time.Time       `json:"created_at"`
	OrderIDs    []string        `json:"order_ids"`
	Orders      []OrderResponse `json:"orders"`
}

// BatchFailure describes one rejected file of a batch submission.
type BatchFailure struct {
	FileName string `json:"file_name"`
	Error    string `json:"error"`
}

// BatchResponse tallies a batch submission.
type BatchResponse struct {
	Succeeded int             `json:"succeeded"`
	Failed    int             `json:"failed"`
	Orders    []OrderResponse `json:"orders"`
	Errors    []BatchFailure  `json:"errors"`
}

// StatusRequest changes status of one order.
type StatusRequest struct {
	Status string `json:"status"`
}

// BulkStatusRequest changes status of several orders.
type BulkStatusRequest struct {
	OrderIDs []string `json:"order_ids"`
	Status   string   `json:"status"`
}

// BulkStatusResult reports the outcome for one order of a bulk update.
type BulkStatusResult struct {
	OrderID string `json:"order_id"`
	Success bool   `json:"success"`
	Status  string `json:"status,omitempty"`
	Error   string `json:"error,omitempty"`
}

// BulkStatusResponse tallies a bulk status update.
type BulkStatusResponse struct {
	Updated int                `json:"updated"`
	Failed  int                `json:"failed"`
	Results []BulkStatusResult `json:"results"`
}

// StatsResponse aggregates counters over all orders.
type StatsResponse struct {
	Total       int            `json:"total"`
	ByStatus    map[string]int `json:"byStatus"`
	ByColorType map[string]int `json:"byColorType"`
	TotalCopies int            `json:"totalCopies"`
}
