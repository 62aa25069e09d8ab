package users

import (
	"context"
	"errors"
	"fmt"

	models "monetrix/database/models_pkg"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository handles database operations for user accounts
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create persists a new user, assigning its ID
func (r *Repository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

// ByEmail retrieves a user by email. Returns nil, nil when no user exists
// with that email.
func (r *Repository) ByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("ByEmail: %w", err)
	}
	return &user, nil
}
