package models

import "time"

const (
	FollowPending  = "pending"
	FollowAccepted = "accepted"
)

// MemberFollowing is a directed follow edge: MemberProfileID follows FollowingProfileID.
type MemberFollowing struct {
	ID                 uint      `json:"id" gorm:"primaryKey"`
	MemberProfileID    uint      `json:"member_profile_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingProfileID uint      `json:"following_profile_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingStatus    string    `json:"following_status" gorm:"size:20;default:'pending'"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}
