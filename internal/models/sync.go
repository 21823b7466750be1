package models

import "time"

// SyncRecord proves that a given content change was synchronized to a recipient
// profile. Rows are append-only: every fan-out issues a new record with a new token.
type SyncRecord struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	MediaID         string    `json:"media_id" gorm:"size:64;index:idx_sync_media"`
	MediaType       MediaType `json:"media_type" gorm:"size:20;index:idx_sync_media"`
	MemberProfileID uint      `json:"member_profile_id" gorm:"index"`
	SyncToken       string    `json:"sync_token" gorm:"size:36;uniqueIndex"`
	SyncedDate      time.Time `json:"synced_date"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName maps sync records onto the synchronizations table.
func (SyncRecord) TableName() string { return "synchronizations" }

// OpenSession is a live connection through which a user watches one content item.
// Sessions are owned by the connection layer; they live in redis, not postgres.
type OpenSession struct {
	SessionID string    `json:"session_id" validate:"required"`
	UserID    uint      `json:"user_id"`
	MediaID   string    `json:"media_id" validate:"required"`
	MediaType MediaType `json:"media_type" validate:"required,oneof=Event Post"`
}
