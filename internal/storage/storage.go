package storage

import (
	"context"
	"errors"

	"billtracker/internal/domain" // Domain models
)

// DefaultUpcomingLimit caps GetUpcomingBills when the caller passes limit <= 0.
const DefaultUpcomingLimit = 10

// ErrDuplicateEmail is returned by CreateUser when the email is already taken.
var ErrDuplicateEmail = errors.New("email already registered")

// Store is the capability interface over the persistence backend. "Not found"
// is reported as (nil, nil); errors are reserved for genuine backend failures.
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// Categories
	CreateCategory(ctx context.Context, category *domain.Category) error
	GetCategoryByID(ctx context.Context, id string) (*domain.Category, error)
	ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) error
	DeleteCategory(ctx context.Context, id string) error

	// Bills
	CreateBill(ctx context.Context, bill *domain.Bill) error
	GetBillByID(ctx context.Context, id string) (*domain.Bill, error)
	ListBillsByUser(ctx context.Context, userID string) ([]domain.Bill, error)
	GetUpcomingBills(ctx context.Context, userID string, limit int) ([]domain.Bill, error)
	UpdateBill(ctx context.Context, bill *domain.Bill) error
	DeleteBill(ctx context.Context, id string) error

	// ClearAllData wipes every bill, category and user. Callers are expected
	// to have gated this behind the internal API key.
	ClearAllData(ctx context.Context) error
}
