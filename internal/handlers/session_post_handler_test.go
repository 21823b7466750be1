package handlers

import (
	"context"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anonto42/hooly/backend/internal/listing"
	"github.com/anonto42/hooly/backend/internal/models"
)

type fakeSessions struct {
	open map[string]models.OpenSession
}

func (f *fakeSessions) OpenSession(_ context.Context, s models.OpenSession) error {
	f.open[s.SessionID] = s
	return nil
}

func (f *fakeSessions) CloseSession(_ context.Context, id string) error {
	delete(f.open, id)
	return nil
}

func (f *fakeSessions) ForMedia(context.Context, string, models.MediaType) ([]models.OpenSession, error) {
	return nil, nil
}

func TestSessionOpenUsesAuthenticatedUser(t *testing.T) {
	sessions := &fakeSessions{open: map[string]models.OpenSession{}}
	e := newEcho()
	NewSessionHandler(sessions).RegisterSessionRoutes(e.Group("", asUser(models.User{ID: 3, ProfileID: 30})))

	env := doJSON(t, e, http.MethodPost, "/sessions", map[string]any{
		"session_id": "s1", "user_id": 99, "media_id": "7", "media_type": "Event",
	})
	if env.Status != 1 {
		t.Fatalf("open: %v", env.Errors)
	}
	if got := sessions.open["s1"]; got.UserID != 3 || got.MediaType != models.MediaEvent {
		t.Errorf("stored session = %+v", got)
	}

	env = doJSON(t, e, http.MethodPost, "/sessions", map[string]any{"media_id": "7", "media_type": "Event"})
	if env.Status != 0 || len(env.Errors["session_id"]) == 0 {
		t.Errorf("missing session id: %+v", env)
	}

	doJSON(t, e, http.MethodDelete, "/sessions/s1", nil)
	if _, ok := sessions.open["s1"]; ok {
		t.Errorf("session still open after close")
	}
}

type fakePosts struct {
	created []models.Post
	filter  listing.Filter
}

func (f *fakePosts) CreatePost(_ context.Context, p *models.Post) error {
	p.ID = primitive.NewObjectID()
	f.created = append(f.created, *p)
	return nil
}

func (f *fakePosts) GetPostByID(context.Context, string) (*models.Post, error) {
	return nil, nil
}

func (f *fakePosts) SearchPosts(_ context.Context, filter listing.Filter, skip, limit int64) ([]models.Post, int64, error) {
	f.filter = filter
	return f.created, int64(len(f.created)), nil
}

func TestCreatePostEchoesToCreator(t *testing.T) {
	alice := models.User{ID: 1, ProfileID: 10}
	users := &fakeUsers{users: map[uint]models.User{1: alice}}
	posts := &fakePosts{}
	engine := &recordingEngine{}
	e := newEcho()
	NewPostHandler(posts, users, engine, 20, discardLogger()).RegisterPostRoutes(e.Group("", asUser(alice)))

	env := doJSON(t, e, http.MethodPost, "/posts", map[string]any{
		"request_id": "abc", "content": "hello", "post_members": []uint{11, 11, 12},
	})
	if env.Status != 1 || env.Message != "Post Created" || env.RequestID != "abc" {
		t.Fatalf("create: %+v", env)
	}
	if got := posts.created[0].PostMembers; len(got) != 2 {
		t.Errorf("post members = %v, want deduplicated", got)
	}
	if len(engine.calls) != 1 || !engine.calls[0].opts.EchoActor || engine.calls[0].ref.Type != models.MediaPost {
		t.Errorf("fanout calls = %+v", engine.calls)
	}
	if engine.calls[0].ref.ID != posts.created[0].ID.Hex() {
		t.Errorf("fanout ref id = %s", engine.calls[0].ref.ID)
	}

	env = doJSON(t, e, http.MethodPost, "/posts", map[string]any{"content": ""})
	if env.Status != 0 || len(env.Errors["content"]) == 0 {
		t.Errorf("blank content: %+v", env)
	}
	if len(engine.calls) != 1 {
		t.Errorf("fanout ran for an invalid post")
	}
}

func TestSearchPostsFilterAndPaging(t *testing.T) {
	alice := models.User{ID: 1, ProfileID: 10}
	users := &fakeUsers{users: map[uint]models.User{1: alice}}
	posts := &fakePosts{created: []models.Post{{Content: "a"}, {Content: "b"}}}
	e := newEcho()
	NewPostHandler(posts, users, &recordingEngine{}, 1, discardLogger()).RegisterPostRoutes(e.Group("", asUser(alice)))

	env := doJSON(t, e, http.MethodGet, "/posts?keyword=Jazz+night&category_id=4", nil)
	if env.Status != 1 || env.Message != "Post list" {
		t.Fatalf("search: %+v", env)
	}
	if len(posts.filter.Keywords) != 2 || posts.filter.CategoryID == nil || *posts.filter.CategoryID != 4 {
		t.Errorf("filter = %+v", posts.filter)
	}
	if paging := env.PagingData.(map[string]any); paging["total_pages"] != float64(2) {
		t.Errorf("paging = %v", paging)
	}

	env = doJSON(t, e, http.MethodGet, "/posts?date=15-05-2024", nil)
	if env.Status != 0 || len(env.Errors["date"]) == 0 {
		t.Errorf("bad date: %+v", env)
	}
}

