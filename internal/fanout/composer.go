package fanout

import (
	"fmt"

	"github.com/anonto42/hooly/backend/internal/models"
)

// Action is the user interaction that triggered a fan-out.
type Action int

const (
	ActionNone Action = iota
	ActionLike
	ActionComment
)

// Kind is the notification flavour sent to one recipient.
type Kind string

const (
	KindLike         Kind = "LIKE"
	KindLikeOther    Kind = "LIKE_OTHER"
	KindComment      Kind = "COMMENT"
	KindCommentOther Kind = "COMMENT_OTHER"
)

// Kind picks the owner-facing or other-facing kind of the action.
func (a Action) Kind(toOwner bool) (Kind, bool) {
	switch a {
	case ActionLike:
		if toOwner {
			return KindLike, true
		}
		return KindLikeOther, true
	case ActionComment:
		if toOwner {
			return KindComment, true
		}
		return KindCommentOther, true
	}
	return "", false
}

var templates = map[Kind]string{
	KindLike:         "liked your %s",
	KindLikeOther:    "liked a %s you are part of",
	KindComment:      "commented on your %s",
	KindCommentOther: "also commented on a %s you are part of",
}

// Alert is a composed push notification.
type Alert struct {
	Kind      Kind              `json:"kind"`
	Text      string            `json:"alert"`
	MediaType models.MediaType  `json:"media_type"`
	MediaID   string            `json:"media_id"`
	Screen    map[string]string `json:"screen"`
}

// Composer renders notification payloads.
type Composer struct{}

// Compose builds the alert actor's action sends to a recipient of ref.
func (Composer) Compose(actor models.User, kind Kind, ref Ref) Alert {
	tmpl, ok := templates[kind]
	if !ok {
		tmpl = "updated a %s"
	}
	idKey := "event_id"
	if ref.Type == models.MediaPost {
		idKey = "post_id"
	}
	return Alert{
		Kind:      kind,
		Text:      actor.DisplayName() + " " + fmt.Sprintf(tmpl, ref.Type.Noun()),
		MediaType: ref.Type,
		MediaID:   ref.ID,
		Screen: map[string]string{
			idKey:        ref.ID,
			"media_type": string(ref.Type),
		},
	}
}
