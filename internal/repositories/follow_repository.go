package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/anonto42/hooly/backend/internal/models"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	FollowerIDs(ctx context.Context, profileID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// FollowerIDs lists the profiles whose follow request on profileID was accepted
func (r *PostgresFollowRepository) FollowerIDs(ctx context.Context, profileID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.MemberFollowing{}).
		Where("following_profile_id = ? AND following_status = ?", profileID, models.FollowAccepted).
		Pluck("member_profile_id", &ids).Error
	return ids, err
}
