package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/anonto42/hooly/backend/internal/fanout"
	"github.com/anonto42/hooly/backend/internal/models"
)

type fakeComments struct {
	saved []models.Comment
}

func (f *fakeComments) CreateComment(_ context.Context, c *models.Comment) error {
	c.ID = uint(len(f.saved) + 1)
	f.saved = append(f.saved, *c)
	return nil
}

func (f *fakeComments) CommenterIDs(context.Context, models.MediaType, string) ([]uint, error) {
	return nil, nil
}

func TestCreateCommentNotifiesThroughFanout(t *testing.T) {
	bob := models.User{ID: 2, ProfileID: 20}
	users := &fakeUsers{users: map[uint]models.User{2: bob}}
	comments := &fakeComments{}
	engine := &recordingEngine{}
	targets := fanout.Fetchers{
		models.MediaPost: fakeFetcher{targets: map[string]*fanout.Target{
			"p1": {Ref: fanout.Ref{Type: models.MediaPost, ID: "p1"}, OwnerID: 10},
		}},
	}
	e := newEcho()
	NewCommentHandler(comments, users, targets, engine, discardLogger()).RegisterCommentRoutes(e.Group("", asUser(bob)))

	env := doJSON(t, e, http.MethodPost, "/comments", models.CreateCommentRequest{
		RequestID: "c1", MediaType: models.MediaPost, MediaID: "p1", Comment: "nice",
	})
	if env.Status != 1 || env.Message != "Comment Created" || env.RequestID != "c1" {
		t.Fatalf("create: %+v", env)
	}
	if len(comments.saved) != 1 || comments.saved[0].MemberProfileID != 20 {
		t.Errorf("saved = %+v", comments.saved)
	}
	if len(engine.calls) != 1 || engine.calls[0].opts.Action != fanout.ActionComment {
		t.Errorf("fanout calls = %+v", engine.calls)
	}

	env = doJSON(t, e, http.MethodPost, "/comments", models.CreateCommentRequest{
		MediaType: models.MediaEvent, MediaID: "1", Comment: "hi",
	})
	if env.Status != 0 {
		t.Errorf("comment on unknown media type accepted: %+v", env)
	}
}
