package models

import (
	"time"

	"gorm.io/gorm"
)

// Event is a dated, geo-located gathering owned by a member profile
type Event struct {
	ID               uint              `json:"id" gorm:"primaryKey"`
	MemberProfileID  uint              `json:"member_profile_id" gorm:"index"`
	EventName        string            `json:"event_name" gorm:"size:255"`
	EventDetails     string            `json:"event_details"`
	Location         string            `json:"location"`
	Latitude         float64           `json:"latitude"`
	Longitude        float64           `json:"longitude"`
	Radius           float64           `json:"radius"`
	IsFriendsAllowed bool              `json:"is_friends_allowed"`
	IsPublic         bool              `json:"is_public"`
	IsPaid           bool              `json:"is_paid" gorm:"index"`
	CategoryID       uint              `json:"category_id" gorm:"index"`
	EventType        string            `json:"event_type"`
	StartDate        time.Time         `json:"start_date" gorm:"index"`
	EndDate          time.Time         `json:"end_date"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
	DeletedAt        gorm.DeletedAt    `json:"-" gorm:"index"`
	EventAttachments []EventAttachment `json:"event_attachments"`
	EventCoHosts     []EventCoHost     `json:"event_co_hosts"`
	EventMembers     []EventMember     `json:"event_members"`
	Hashtags         []Hashtag         `json:"hashtags" gorm:"many2many:event_hash_tags"`
}

// EventAttachment is a media file shown on the event card
type EventAttachment struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	EventID        uint   `json:"event_id" gorm:"index"`
	AttachmentType string `json:"attachment_type"`
	Message        string `json:"message"`
	AttachmentURL  string `json:"attachment_url"`
	ThumbnailURL   string `json:"thumbnail_url"`
	PosterSkin     string `json:"poster_skin"`
}

// EventCoHost grants a profile co-host rights on an event
type EventCoHost struct {
	ID              uint `json:"id" gorm:"primaryKey"`
	EventID         uint `json:"event_id" gorm:"index;uniqueIndex:idx_event_co_host"`
	MemberProfileID uint `json:"member_profile_id" gorm:"uniqueIndex:idx_event_co_host"`
}

// EventMember is a profile taking part in an event
type EventMember struct {
	ID              uint `json:"id" gorm:"primaryKey"`
	EventID         uint `json:"event_id" gorm:"index;uniqueIndex:idx_event_member"`
	MemberProfileID uint `json:"member_profile_id" gorm:"uniqueIndex:idx_event_member"`
}

// Hashtag counts how many events were tagged with a name
type Hashtag struct {
	ID    uint   `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:100;uniqueIndex"`
	Count int    `json:"-" gorm:"default:1"`
}

// EventSummary is the card projection used by the listings.
type EventSummary struct {
	ID               uint                `json:"id"`
	EventName        string              `json:"event_name"`
	EventDetails     string              `json:"event_details"`
	StartDate        time.Time           `json:"start_date"`
	EndDate          time.Time           `json:"end_date"`
	Location         string              `json:"location"`
	EventAttachments []AttachmentSummary `json:"event_attachments"`
}

// AttachmentSummary is the attachment part of an EventSummary.
type AttachmentSummary struct {
	ID             uint   `json:"id"`
	AttachmentURL  string `json:"attachment_url"`
	ThumbnailURL   string `json:"thumbnail_url"`
	Message        string `json:"message"`
	AttachmentType string `json:"attachment_type"`
}

// Summary projects the event into its listing card.
func (e Event) Summary() EventSummary {
	attachments := make([]AttachmentSummary, 0, len(e.EventAttachments))
	for _, a := range e.EventAttachments {
		attachments = append(attachments, AttachmentSummary{
			ID:             a.ID,
			AttachmentURL:  a.AttachmentURL,
			ThumbnailURL:   a.ThumbnailURL,
			Message:        a.Message,
			AttachmentType: a.AttachmentType,
		})
	}
	return EventSummary{
		ID:               e.ID,
		EventName:        e.EventName,
		EventDetails:     e.EventDetails,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		Location:         e.Location,
		EventAttachments: attachments,
	}
}

// CreateEventRequest defines the request body for creating an event
type CreateEventRequest struct {
	RequestID string         `json:"request_id"`
	Event     EventInput     `json:"event"`
	HashTags  []HashTagInput `json:"hash_tags" validate:"omitempty,dive"`
}

// EventInput holds the event attributes and its nested members, co-hosts and attachments
type EventInput struct {
	EventName        string            `json:"event_name" validate:"required,max=255"`
	EventDetails     string            `json:"event_details"`
	Location         string            `json:"location" validate:"required"`
	Latitude         *float64          `json:"latitude" validate:"required,latitude"`
	Longitude        *float64          `json:"longitude" validate:"required,longitude"`
	Radius           float64           `json:"radius" validate:"min=0"`
	IsFriendsAllowed bool              `json:"is_friends_allowed"`
	IsPublic         bool              `json:"is_public"`
	IsPaid           bool              `json:"is_paid"`
	CategoryID       uint              `json:"category_id" validate:"required"`
	EventType        string            `json:"event_type"`
	StartDate        *time.Time        `json:"start_date" validate:"required"`
	EndDate          *time.Time        `json:"end_date" validate:"required"`
	EventMembers     []ProfileRef      `json:"event_members" validate:"omitempty,dive"`
	EventCoHosts     []ProfileRef      `json:"event_co_hosts" validate:"omitempty,dive"`
	EventAttachments []AttachmentInput `json:"event_attachments" validate:"omitempty,dive"`
}

// ProfileRef references a member profile inside nested attributes
type ProfileRef struct {
	MemberProfileID uint `json:"member_profile_id" validate:"required"`
}

// AttachmentInput is a nested attachment on event creation
type AttachmentInput struct {
	AttachmentType string `json:"attachment_type" validate:"required,oneof=image video audio"`
	Message        string `json:"message"`
	AttachmentURL  string `json:"attachment_url" validate:"required,url"`
	ThumbnailURL   string `json:"thumbnail_url" validate:"omitempty,url"`
	PosterSkin     string `json:"poster_skin"`
}

// HashTagInput is one tag name on event creation
type HashTagInput struct {
	TagName string `json:"tag_name" validate:"required,max=100"`
}

// ToEvent builds the event owned by ownerProfileID. Duplicate member and co-host
// references collapse to one row each.
func (in EventInput) ToEvent(ownerProfileID uint) *Event {
	event := &Event{
		MemberProfileID:  ownerProfileID,
		EventName:        in.EventName,
		EventDetails:     in.EventDetails,
		Location:         in.Location,
		Radius:           in.Radius,
		IsFriendsAllowed: in.IsFriendsAllowed,
		IsPublic:         in.IsPublic,
		IsPaid:           in.IsPaid,
		CategoryID:       in.CategoryID,
		EventType:        in.EventType,
	}
	if in.Latitude != nil {
		event.Latitude = *in.Latitude
	}
	if in.Longitude != nil {
		event.Longitude = *in.Longitude
	}
	if in.StartDate != nil {
		event.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		event.EndDate = *in.EndDate
	}

	seen := make(map[uint]bool)
	for _, m := range in.EventMembers {
		if !seen[m.MemberProfileID] {
			seen[m.MemberProfileID] = true
			event.EventMembers = append(event.EventMembers, EventMember{MemberProfileID: m.MemberProfileID})
		}
	}
	clear(seen)
	for _, c := range in.EventCoHosts {
		if !seen[c.MemberProfileID] {
			seen[c.MemberProfileID] = true
			event.EventCoHosts = append(event.EventCoHosts, EventCoHost{MemberProfileID: c.MemberProfileID})
		}
	}
	for _, a := range in.EventAttachments {
		event.EventAttachments = append(event.EventAttachments, EventAttachment{
			AttachmentType: a.AttachmentType,
			Message:        a.Message,
			AttachmentURL:  a.AttachmentURL,
			ThumbnailURL:   a.ThumbnailURL,
			PosterSkin:     a.PosterSkin,
		})
	}
	return event
}
