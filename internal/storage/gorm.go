package storage

import (
	"context"
	"errors"
	"strings"
	"time"

	"billtracker/internal/domain" // Domain models

	"gorm.io/gorm" // GORM ORM library
)

// GormStore is the Postgres-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore wraps an open GORM connection
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// CreateUser inserts a new user, mapping the unique-email constraint to
// ErrDuplicateEmail.
func (s *GormStore) CreateUser(ctx context.Context, user *domain.User) error {
	err := s.db.WithContext(ctx).Create(user).Error
	if err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key")) {
		return ErrDuplicateEmail
	}
	return err
}

// GetUserByID fetches a user by primary key, (nil, nil) when absent
func (s *GormStore) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail fetches a user by email, (nil, nil) when absent
func (s *GormStore) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateCategory inserts a new category
func (s *GormStore) CreateCategory(ctx context.Context, category *domain.Category) error {
	return s.db.WithContext(ctx).Create(category).Error
}

// GetCategoryByID fetches a category by primary key, (nil, nil) when absent
func (s *GormStore) GetCategoryByID(ctx context.Context, id string) (*domain.Category, error) {
	var category domain.Category
	err := s.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// ListCategoriesByUser returns all categories owned by userID
func (s *GormStore) ListCategoriesByUser(ctx context.Context, userID string) ([]domain.Category, error) {
	var categories []domain.Category
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("name asc").Find(&categories).Error
	return categories, err
}

// UpdateCategory saves all fields of an existing category
func (s *GormStore) UpdateCategory(ctx context.Context, category *domain.Category) error {
	return s.db.WithContext(ctx).Save(category).Error
}

// DeleteCategory removes a category by primary key
func (s *GormStore) DeleteCategory(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&domain.Category{}, "id = ?", id).Error
}

// CreateBill inserts a new bill
func (s *GormStore) CreateBill(ctx context.Context, bill *domain.Bill) error {
	return s.db.WithContext(ctx).Create(bill).Error
}

// GetBillByID fetches a bill by primary key, (nil, nil) when absent
func (s *GormStore) GetBillByID(ctx context.Context, id string) (*domain.Bill, error) {
	var bill domain.Bill
	err := s.db.WithContext(ctx).First(&bill, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// ListBillsByUser returns all bills owned by userID, soonest due first
func (s *GormStore) ListBillsByUser(ctx context.Context, userID string) ([]domain.Bill, error) {
	var bills []domain.Bill
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("due_date asc").Find(&bills).Error
	return bills, err
}

// GetUpcomingBills returns unpaid bills due in the future, ascending by due
// date, truncated to limit.
func (s *GormStore) GetUpcomingBills(ctx context.Context, userID string, limit int) ([]domain.Bill, error) {
	if limit <= 0 {
		limit = DefaultUpcomingLimit
	}
	var bills []domain.Bill
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND paid = ? AND due_date > ?", userID, false, time.Now()).
		Order("due_date asc").
		Limit(limit).
		Find(&bills).Error
	return bills, err
}

// UpdateBill saves all fields of an existing bill
func (s *GormStore) UpdateBill(ctx context.Context, bill *domain.Bill) error {
	return s.db.WithContext(ctx).Save(bill).Error
}

// DeleteBill removes a bill by primary key
func (s *GormStore) DeleteBill(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&domain.Bill{}, "id = ?", id).Error
}

// ClearAllData wipes bills, categories and users in dependency order
func (s *GormStore) ClearAllData(ctx context.Context) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&domain.Bill{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&domain.Category{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&domain.User{}).Error
	})
}
