package models

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// MemberProfile is the social identity every relation (membership, following,
// likes, sync records) points at.
type MemberProfile struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Photo           string    `json:"photo"`
	ContactEmail    string    `json:"contact_email"`
	IsProfilePublic bool      `json:"is_profile_public" gorm:"default:true"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// User is the account owning a member profile. Live sessions and push
// notifications are addressed to users, everything else to profiles.
type User struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	ProfileID   uint          `json:"profile_id" gorm:"uniqueIndex"`
	Username    string        `json:"username"`
	FirstName   string        `json:"first_name"`
	LastName    string        `json:"last_name"`
	Email       string        `json:"email" gorm:"uniqueIndex"`
	DeviceToken string        `json:"-"` // FCM registration token, empty when the user never enabled push
	Profile     MemberProfile `json:"profile" gorm:"foreignKey:ProfileID"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// DisplayName picks the first non-empty of username, "first last" and the
// contact email (falling back to the account email).
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Username); name != "" {
		return name
	}
	if name := strings.TrimSpace(u.FirstName + " " + u.LastName); name != "" {
		return name
	}
	if u.Profile.ContactEmail != "" {
		return u.Profile.ContactEmail
	}
	return u.Email
}

// UserCompact is the minimal author block embedded in likes and notifications.
type UserCompact struct {
	ID        uint   `json:"id"`
	ProfileID uint   `json:"member_profile_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Photo     string `json:"photo"`
}

// ToCompact projects the user into its compact form.
func (u User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		ProfileID: u.ProfileID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Photo:     u.Profile.Photo,
	}
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID    uint   `json:"user_id"`
	ProfileID uint   `json:"profile_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
