package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/anonto42/hooly/backend/internal/models"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	CommenterIDs(ctx context.Context, mediaType models.MediaType, mediaID string) ([]uint, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment in PostgreSQL
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

// CommenterIDs lists the distinct profiles with a live comment on the target
func (r *PostgresCommentRepository) CommenterIDs(ctx context.Context, mediaType models.MediaType, mediaID string) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("commentable_id = ? AND commentable_type = ? AND is_deleted = ?", mediaID, mediaType, false).
		Distinct().Pluck("member_profile_id", &ids).Error
	return ids, err
}
