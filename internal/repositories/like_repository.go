package repositories

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anonto42/hooly/backend/internal/models"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	UpsertLike(ctx context.Context, like *models.Like) error
	CountLikes(ctx context.Context, mediaType models.MediaType, mediaID string) (int64, error)
	ListLikes(ctx context.Context, mediaType models.MediaType, mediaID string, offset, limit int) ([]models.Like, error)
	ReactorIDs(ctx context.Context, mediaType models.MediaType, mediaID string) ([]uint, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

var likeUpsert = clause.OnConflict{
	Columns:   []clause.Column{{Name: "likable_id"}, {Name: "likable_type"}, {Name: "member_profile_id"}},
	DoUpdates: clause.AssignmentColumns([]string{"is_like", "is_deleted", "updated_at"}),
}

// UpsertLike writes the profile's reaction on a target. Concurrent toggles
// collapse onto the single row per (target, profile); the last write wins.
// like is reloaded with the stored row.
func (r *PostgresLikeRepository) UpsertLike(ctx context.Context, like *models.Like) error {
	like.IsDeleted = false
	db := r.db.WithContext(ctx)
	if err := db.Clauses(likeUpsert).Create(like).Error; err != nil {
		return err
	}
	return db.Where("likable_id = ? AND likable_type = ? AND member_profile_id = ?",
		like.LikableID, like.LikableType, like.MemberProfileID).First(like).Error
}

// CountLikes counts positive, non-deleted reactions on a target
func (r *PostgresLikeRepository) CountLikes(ctx context.Context, mediaType models.MediaType, mediaID string) (int64, error) {
	var count int64
	err := r.positive(ctx, mediaType, mediaID).Count(&count).Error
	return count, err
}

// ListLikes returns one page of positive reactions, newest first
func (r *PostgresLikeRepository) ListLikes(ctx context.Context, mediaType models.MediaType, mediaID string, offset, limit int) ([]models.Like, error) {
	var likes []models.Like
	err := r.positive(ctx, mediaType, mediaID).
		Order("updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&likes).Error
	return likes, err
}

// ReactorIDs lists profiles holding a non-deleted reaction, likes and dislikes alike
func (r *PostgresLikeRepository) ReactorIDs(ctx context.Context, mediaType models.MediaType, mediaID string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Like{}).
		Where("likable_id = ? AND likable_type = ? AND is_deleted = ?", mediaID, mediaType, false).
		Distinct().Pluck("member_profile_id", &ids).Error
	return ids, err
}

func (r *PostgresLikeRepository) positive(ctx context.Context, mediaType models.MediaType, mediaID string) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Like{}).
		Where("likable_id = ? AND likable_type = ? AND is_like = ? AND is_deleted = ?", mediaID, mediaType, true, false)
}
