package models

import "time"

// Like is a reaction of a profile on an event or a post. A profile holds at most
// one row per target; the unique index backs the upsert in the like repository.
type Like struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	LikableID       string    `json:"likable_id" gorm:"size:64;uniqueIndex:idx_like_target_profile"`
	LikableType     MediaType `json:"likable_type" gorm:"size:20;uniqueIndex:idx_like_target_profile"`
	MemberProfileID uint      `json:"member_profile_id" gorm:"index;uniqueIndex:idx_like_target_profile"`
	IsLike          bool      `json:"is_like"`
	IsDeleted       bool      `json:"is_deleted" gorm:"default:false;index"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToggleLikeRequest defines the request body for liking or disliking a target
type ToggleLikeRequest struct {
	RequestID string    `json:"request_id"`
	MediaType MediaType `json:"media_type" validate:"required,oneof=Event Post"`
	MediaID   string    `json:"media_id" validate:"required"`
	IsLike    *bool     `json:"is_like" validate:"required"`
}

// LikeView is the like projection returned to clients.
type LikeView struct {
	ID          uint        `json:"id"`
	LikableID   string      `json:"likable_id"`
	LikableType MediaType   `json:"likable_type"`
	IsLike      bool        `json:"is_like"`
	Profile     UserCompact `json:"member_profile"`
	LikesCount  int64       `json:"likes_count"`
}
