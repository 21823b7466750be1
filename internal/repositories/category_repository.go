package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/anonto42/hooly/backend/internal/models"
)

// CategoryRepository defines the interface for category lookups
type CategoryRepository interface {
	CategoryExists(ctx context.Context, id uint) (bool, error)
}

// PostgresCategoryRepository implements CategoryRepository for PostgreSQL
type PostgresCategoryRepository struct {
	db *gorm.DB
}

// NewPostgresCategoryRepository creates a new PostgresCategoryRepository
func NewPostgresCategoryRepository(db *gorm.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// CategoryExists reports whether a live category with id exists
func (r *PostgresCategoryRepository) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Category{}).
		Where("id = ? AND is_deleted = ?", id, false).Count(&count).Error
	return count > 0, err
}
