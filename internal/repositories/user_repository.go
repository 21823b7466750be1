package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/anonto42/hooly/backend/internal/models"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	UsersByProfileIDs(ctx context.Context, profileIDs []uint) ([]models.User, error)
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// GetUserByID retrieves a user and its profile
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("Profile").First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

// UsersByProfileIDs loads the accounts owning the given profiles
func (r *PostgresUserRepository) UsersByProfileIDs(ctx context.Context, profileIDs []uint) ([]models.User, error) {
	var users []models.User
	if len(profileIDs) == 0 {
		return users, nil
	}
	err := r.db.WithContext(ctx).Preload("Profile").
		Where("profile_id IN ?", profileIDs).
		Find(&users).Error
	return users, err
}
