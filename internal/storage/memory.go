package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"billtracker/internal/domain" // Domain models

	"github.com/google/uuid" // UUID generation outside GORM hooks
)

// MemoryStore is a map-backed Store used in tests and credential-free dev
// runs. A single mutex guards all three maps; copies are returned so callers
// never alias internal state.
type MemoryStore struct {
	mu         sync.Mutex
	users      map[string]domain.User
	categories map[string]domain.Category
	bills      map[string]domain.Bill
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]domain.User),
		categories: make(map[string]domain.Category),
		bills:      make(map[string]domain.Bill),
	}
}

// CreateUser inserts a new user, enforcing email uniqueness
func (s *MemoryStore) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == user.Email {
			return ErrDuplicateEmail
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = *user
	return nil
}

// GetUserByID fetches a user by ID, (nil, nil) when absent
func (s *MemoryStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

// GetUserByEmail fetches a user by email, (nil, nil) when absent
func (s *MemoryStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, nil
}

// CreateCategory inserts a new category
func (s *MemoryStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	s.categories[category.ID] = *category
	return nil
}

// GetCategoryByID fetches a category by ID, (nil, nil) when absent
func (s *MemoryStore) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.categories[id]; ok {
		return &c, nil
	}
	return nil, nil
}

// ListCategoriesByUser returns all categories owned by userID
func (s *MemoryStore) ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Category
	for _, c := range s.categories {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// UpdateCategory overwrites an existing category
func (s *MemoryStore) UpdateCategory(ctx context.Context, category *domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category.ID] = *category
	return nil
}

// DeleteCategory removes a category by ID
func (s *MemoryStore) DeleteCategory(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.categories, id)
	return nil
}

// CreateBill inserts a new bill
func (s *MemoryStore) CreateBill(ctx context.Context, bill *domain.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if bill.ID == "" {
		bill.ID = uuid.NewString()
	}
	if bill.CreatedAt.IsZero() {
		bill.CreatedAt = time.Now()
	}
	s.bills[bill.ID] = *bill
	return nil
}

// GetBillByID fetches a bill by ID, (nil, nil) when absent
func (s *MemoryStore) GetBillByID(ctx context.Context, id string) (*domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b, ok := s.bills[id]; ok {
		return &b, nil
	}
	return nil, nil
}

// ListBillsByUser returns all bills owned by userID, soonest due first
func (s *MemoryStore) ListBillsByUser(ctx context.Context, userID string) ([]domain.Bill, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Bill
	for _, b := range s.bills {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	return out, nil
}

// GetUpcomingBills returns unpaid future bills ascending by due date,
// truncated to limit.
func (s *MemoryStore) GetUpcomingBills(ctx context.Context, userID string, limit int) ([]domain.Bill, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Bill
	for _, b := range s.bills {
		if b.UserID == userID && !b.Paid && b.DueDate.After(now) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DueDate.Before(out[j].DueDate) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// UpdateBill overwrites an existing bill
func (s *MemoryStore) UpdateBill(ctx context.Context, bill *domain.Bill) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bills[bill.ID] = *bill
	return nil
}

// DeleteBill removes a bill by ID
func (s *MemoryStore) DeleteBill(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bills, id)
	return nil
}

// ClearAllData wipes everything
func (s *MemoryStore) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make(map[string]domain.User)
	s.categories = make(map[string]domain.Category)
	s.bills = make(map[string]domain.Bill)
	return nil
}
