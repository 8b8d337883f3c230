package test

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/polkiloo/smartxerox/internal/domain/errors"
	"github.com/polkiloo/smartxerox/internal/domain/model"
)

// OrderRepositoryStub keeps orders in memory and stamps created_at from Now.
type OrderRepositoryStub struct {
	mu   sync.Mutex
	rows map[string]model.Order

	Now func() time.Time

	CreateErr     error
	GetErr        error
	ListErr       error
	UpdateErr     error
	DeleteErr     error
	ListBeforeErr error
	DeleteManyErr error
	StatsErr      error

	UpdateCalls     int
	DeleteManyCalls [][]string
}

// NewOrderRepositoryStub constructs an empty in-memory repository.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{rows: make(map[string]model.Order)}
}

func (s *OrderRepositoryStub) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *OrderRepositoryStub) init() {
	if s.rows == nil {
		s.rows = make(map[string]model.Order)
	}
}

// Seed stores order as is, assigning an id when missing.
func (s *OrderRepositoryStub) Seed(order model.Order) model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.init()
	if order.ID == "" {
		order.ID = uuid.NewString()
	}
	s.rows[order.ID] = order
	return order
}

// Len returns the number of stored orders.
func (s *OrderRepositoryStub) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// Create inserts a row with a generated id.
func (s *OrderRepositoryStub) Create(ctx context.Context, in model.NewOrder) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	s.init()
	order := model.Order{
		ID:          uuid.NewString(),
		StudentName: in.StudentName,
		PhoneNumber: in.PhoneNumber,
		FileURL:     in.FileURL,
		FilePath:    in.FilePath,
		Copies:      in.Copies,
		ColorType:   in.ColorType,
		Status:      in.Status,
		CreatedAt:   s.now(),
	}
	s.rows[order.ID] = order
	return &order, nil
}

// GetByID returns stored order or not found.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.GetErr != nil {
		return nil, s.GetErr
	}
	order, ok := s.rows[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &order, nil
}

func (s *OrderRepositoryStub) selectSorted(keep func(model.Order) bool) []model.Order {
	result := make([]model.Order, 0)
	for _, o := range s.rows {
		if keep(o) {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result
}

// ListByPhone returns orders of phone, newest first.
func (s *OrderRepositoryStub) ListByPhone(ctx context.Context, phone string) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.selectSorted(func(o model.Order) bool { return o.PhoneNumber == phone }), nil
}

// List returns orders matching filter, newest first.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListErr != nil {
		return nil, s.ListErr
	}
	return s.selectSorted(func(o model.Order) bool {
		return filter.Status == nil || o.Status == *filter.Status
	}), nil
}

// UpdateStatus overwrites status of a stored order.
func (s *OrderRepositoryStub) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.UpdateCalls++
	if s.UpdateErr != nil {
		return nil, s.UpdateErr
	}
	order, ok := s.rows[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	order.Status = status
	s.rows[id] = order
	return &order, nil
}

// Delete removes a row or reports not found.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	if _, ok := s.rows[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// ListCreatedBefore returns orders created at or before cutoff, oldest first.
func (s *OrderRepositoryStub) ListCreatedBefore(ctx context.Context, cutoff time.Time) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ListBeforeErr != nil {
		return nil, s.ListBeforeErr
	}
	result := s.selectSorted(func(o model.Order) bool { return !o.CreatedAt.After(cutoff) })
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result, nil
}

// DeleteMany removes every present id and reports how many were removed.
func (s *OrderRepositoryStub) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.DeleteManyCalls = append(s.DeleteManyCalls, append([]string(nil), ids...))
	if s.DeleteManyErr != nil {
		return 0, s.DeleteManyErr
	}
	var n int64
	for _, id := range ids {
		if _, ok := s.rows[id]; ok {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

// Stats aggregates stored rows.
func (s *OrderRepositoryStub) Stats(ctx context.Context) (*model.OrderStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.StatsErr != nil {
		return nil, s.StatsErr
	}
	stats := model.NewOrderStats()
	for _, o := range s.rows {
		stats.Add(o.Status, o.ColorType, 1, o.Copies)
	}
	return stats, nil
}

// StudentRepositoryStub stores students in memory for tests.
type StudentRepositoryStub struct {
	mu      sync.Mutex
	byID    map[int64]*model.Student
	next    int64
	Err     error
	LookErr error
}

// NewStudentRepositoryStub constructs stub repository with initialized maps.
func NewStudentRepositoryStub() *StudentRepositoryStub {
	return &StudentRepositoryStub{byID: make(map[int64]*model.Student), next: 1}
}

// Create stores a student unless email or phone is taken.
func (s *StudentRepositoryStub) Create(ctx context.Context, in model.NewStudent) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.byID == nil {
		s.byID = make(map[int64]*model.Student)
	}
	for _, st := range s.byID {
		if st.Email == in.Email || st.Phone == in.Phone {
			return nil, domainErrors.ErrAlreadyExists
		}
	}
	if s.next == 0 {
		s.next = 1
	}
	student := &model.Student{
		ID:           s.next,
		Name:         in.Name,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: in.PasswordHash,
		CreatedAt:    time.Now(),
	}
	s.next++
	s.byID[student.ID] = student
	return student, nil
}

func (s *StudentRepositoryStub) find(match func(*model.Student) bool) (*model.Student, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.LookErr != nil {
		return nil, s.LookErr
	}
	for _, st := range s.byID {
		if match(st) {
			return st, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByEmail fetches student by email or returns not found.
func (s *StudentRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Student, error) {
	return s.find(func(st *model.Student) bool { return st.Email == email })
}

// GetByPhone fetches student by phone or returns not found.
func (s *StudentRepositoryStub) GetByPhone(ctx context.Context, phone string) (*model.Student, error) {
	return s.find(func(st *model.Student) bool { return st.Phone == phone })
}

// GetByID fetches student by identifier or returns not found.
func (s *StudentRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Student, error) {
	return s.find(func(st *model.Student) bool { return st.ID == id })
}
