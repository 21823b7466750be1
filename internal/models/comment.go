package models

import "time"

// Comment represents a comment on an event or a post
type Comment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	CommentableID   string    `json:"commentable_id" gorm:"size:64;index:idx_comment_target"`
	CommentableType MediaType `json:"commentable_type" gorm:"size:20;index:idx_comment_target"`
	MemberProfileID uint      `json:"member_profile_id" gorm:"index"`
	Comment         string    `json:"comment"`
	IsDeleted       bool      `json:"is_deleted" gorm:"default:false"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	RequestID string    `json:"request_id"`
	MediaType MediaType `json:"media_type" validate:"required,oneof=Event Post"`
	MediaID   string    `json:"media_id" validate:"required"`
	Comment   string    `json:"comment" validate:"required,min=1,max=500"`
}
