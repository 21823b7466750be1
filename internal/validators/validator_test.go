package validators

import (
	"testing"

	"github.com/anonto42/hooly/backend/internal/models"
)

func TestFieldErrors(t *testing.T) {
	v := NewValidator()
	req := models.CreateEventRequest{
		Event: models.EventInput{
			EventName:        "",
			Location:         "Dhaka",
			EventAttachments: []models.AttachmentInput{{AttachmentType: "pdf", AttachmentURL: "not a url"}},
		},
	}
	fields := FieldErrors(v.Validate(&req))
	if fields == nil {
		t.Fatal("expected validation errors")
	}

	tests := map[string]string{
		"event.event_name":                           "can't be blank",
		"event.start_date":                           "can't be blank",
		"event.category_id":                          "can't be blank",
		"event.event_attachments[0].attachment_type": "is not included in the list",
		"event.event_attachments[0].attachment_url":  "is invalid",
	}
	for field, want := range tests {
		got := fields[field]
		if len(got) == 0 || got[0] != want {
			t.Errorf("%s = %v, want %q (all: %v)", field, got, want, fields)
		}
	}
	if _, ok := fields["event.location"]; ok {
		t.Error("location should be valid")
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if FieldErrors(nil) != nil {
		t.Error("nil error should map to nil")
	}
}

func TestLikeRequest(t *testing.T) {
	v := NewValidator()
	yes := true
	if err := v.Validate(&models.ToggleLikeRequest{MediaType: models.MediaPost, MediaID: "x", IsLike: &yes}); err != nil {
		t.Errorf("valid request rejected: %v", err)
	}
	fields := FieldErrors(v.Validate(&models.ToggleLikeRequest{MediaType: "Story", MediaID: "x"}))
	if fields["media_type"] == nil || fields["is_like"] == nil {
		t.Errorf("fields = %v", fields)
	}
}
