package models

import "time"

// Notification represents a user notification (PostgreSQL)
type Notification struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	Type               string    `json:"type" gorm:"size:30;index"` // LIKE, LIKE_OTHER, COMMENT, COMMENT_OTHER
	ActorProfileID     uint      `json:"actor_profile_id" gorm:"index"`
	RecipientProfileID uint      `json:"recipient_profile_id" gorm:"index"`
	TargetID           string    `json:"target_id"`
	TargetType         MediaType `json:"target_type" gorm:"size:20"`
	Message            string    `json:"message"`
	IsRead             bool      `json:"is_read" gorm:"default:false;index"`
	CreatedAt          time.Time `json:"created_at" gorm:"index"`
}
