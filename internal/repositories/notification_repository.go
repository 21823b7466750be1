package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/anonto42/hooly/backend/internal/models"
)

// NotificationRepository defines the interface for notification operations
type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	CountForRecipient(ctx context.Context, profileID uint) (int64, error)
	ListForRecipient(ctx context.Context, profileID uint, offset, limit int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, profileID uint) (int64, error)
	MarkAllAsRead(ctx context.Context, profileID uint) error
}

type postgresNotificationRepository struct {
	db *gorm.DB
}

func NewPostgresNotificationRepository(db *gorm.DB) NotificationRepository {
	return &postgresNotificationRepository{db: db}
}

func (r *postgresNotificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *postgresNotificationRepository) CountForRecipient(ctx context.Context, profileID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_profile_id = ?", profileID).Count(&total).Error
	return total, err
}

func (r *postgresNotificationRepository) ListForRecipient(ctx context.Context, profileID uint, offset, limit int) ([]models.Notification, error) {
	var notifications []models.Notification
	err := r.db.WithContext(ctx).Where("recipient_profile_id = ?", profileID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

func (r *postgresNotificationRepository) UnreadCount(ctx context.Context, profileID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_profile_id = ? AND is_read = false", profileID).Count(&count).Error
	return count, err
}

func (r *postgresNotificationRepository) MarkAllAsRead(ctx context.Context, profileID uint) error {
	return r.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_profile_id = ? AND is_read = false", profileID).Update("is_read", true).Error
}
