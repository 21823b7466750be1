package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post represents a social media post stored in MongoDB
type Post struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	MemberProfileID uint               `json:"member_profile_id" bson:"member_profile_id"` // owner profile
	Content         string             `json:"content" bson:"content"`
	CategoryID      uint               `json:"category_id,omitempty" bson:"category_id,omitempty"`
	EventID         uint               `json:"event_id,omitempty" bson:"event_id,omitempty"`
	PostMembers     []uint             `json:"post_members" bson:"post_members"` // tagged member profile ids
	DeletedAt       *time.Time         `json:"-" bson:"deleted_at,omitempty"`
	CreatedAt       time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updated_at" bson:"updated_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	RequestID   string `json:"request_id"`
	Content     string `json:"content" validate:"required,min=1,max=2000"`
	CategoryID  uint   `json:"category_id"`
	EventID     uint   `json:"event_id"`
	PostMembers []uint `json:"post_members" validate:"omitempty,dive,gt=0"`
}
