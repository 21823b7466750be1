package fanout

import (
	"testing"

	"github.com/anonto42/hooly/backend/internal/models"
)

func TestComposeTexts(t *testing.T) {
	tests := []struct {
		name     string
		actor    models.User
		action   Action
		toOwner  bool
		ref      Ref
		wantText string
		wantKey  string
	}{
		{"like to owner", models.User{Username: "rafi"}, ActionLike, true, Ref{models.MediaEvent, "7"}, "rafi liked your event", "event_id"},
		{"like to member", models.User{FirstName: "Nila", LastName: "Das"}, ActionLike, false, Ref{models.MediaEvent, "7"}, "Nila Das liked a event you are part of", "event_id"},
		{"comment to owner", models.User{Email: "a@b.c"}, ActionComment, true, Ref{models.MediaPost, "p"}, "a@b.c commented on your post", "post_id"},
		{"comment to other", models.User{Username: "x", Profile: models.MemberProfile{ContactEmail: "c@d.e"}}, ActionComment, false, Ref{models.MediaPost, "p"}, "x also commented on a post you are part of", "post_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := tt.action.Kind(tt.toOwner)
			if !ok {
				t.Fatal("expected a kind")
			}
			alert := Composer{}.Compose(tt.actor, kind, tt.ref)
			if alert.Text != tt.wantText {
				t.Errorf("Text = %q, want %q", alert.Text, tt.wantText)
			}
			if alert.Screen[tt.wantKey] != tt.ref.ID || alert.Screen["media_type"] != string(tt.ref.Type) {
				t.Errorf("Screen = %v", alert.Screen)
			}
		})
	}
	if _, ok := ActionNone.Kind(true); ok {
		t.Error("ActionNone should not produce a kind")
	}
}
