package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/hooly/backend/internal/envelope"
	"github.com/anonto42/hooly/backend/internal/fanout"
	"github.com/anonto42/hooly/backend/internal/middleware"
	"github.com/anonto42/hooly/backend/internal/models"
	"github.com/anonto42/hooly/backend/internal/repositories"
	"github.com/anonto42/hooly/backend/internal/validators"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeUsers struct {
	users map[uint]models.User
}

func (f *fakeUsers) GetUserByID(_ context.Context, id uint) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (f *fakeUsers) UsersByProfileIDs(_ context.Context, ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		for _, u := range f.users {
			if u.ProfileID == id {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type likeKey struct {
	mediaType models.MediaType
	mediaID   string
	profileID uint
}

type fakeLikes struct {
	mu        sync.Mutex
	rows      map[likeKey]*models.Like
	next      uint
	listCalls int
}

func newFakeLikes() *fakeLikes {
	return &fakeLikes{rows: map[likeKey]*models.Like{}}
}

func (f *fakeLikes) UpsertLike(_ context.Context, like *models.Like) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := likeKey{like.LikableType, like.LikableID, like.MemberProfileID}
	row, ok := f.rows[k]
	if !ok {
		f.next++
		row = &models.Like{ID: f.next, LikableID: like.LikableID, LikableType: like.LikableType, MemberProfileID: like.MemberProfileID}
		f.rows[k] = row
	}
	row.IsLike = like.IsLike
	row.IsDeleted = false
	*like = *row
	return nil
}

func (f *fakeLikes) positive(mediaType models.MediaType, mediaID string) []models.Like {
	var out []models.Like
	for k, row := range f.rows {
		if k.mediaType == mediaType && k.mediaID == mediaID && row.IsLike && !row.IsDeleted {
			out = append(out, *row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (f *fakeLikes) CountLikes(_ context.Context, mediaType models.MediaType, mediaID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int64(len(f.positive(mediaType, mediaID))), nil
}

func (f *fakeLikes) ListLikes(_ context.Context, mediaType models.MediaType, mediaID string, offset, limit int) ([]models.Like, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	all := f.positive(mediaType, mediaID)
	if offset < 0 || limit < 1 {
		return nil, fmt.Errorf("bad window offset=%d limit=%d", offset, limit)
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

func (f *fakeLikes) ReactorIDs(context.Context, models.MediaType, string) ([]uint, error) {
	return nil, nil
}

type fakeFetcher struct {
	targets map[string]*fanout.Target
}

func (f fakeFetcher) FetchTarget(_ context.Context, id string) (*fanout.Target, error) {
	return f.targets[id], nil
}

type fanoutCall struct {
	actor models.User
	ref   fanout.Ref
	opts  fanout.Options
}

type recordingEngine struct {
	mu    sync.Mutex
	calls []fanoutCall
}

func (r *recordingEngine) Fanout(_ context.Context, actor models.User, ref fanout.Ref, opts fanout.Options) (fanout.Report, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fanoutCall{actor, ref, opts})
	return fanout.Report{Found: true}, nil
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = validators.NewValidator()
	return e
}

func asUser(user models.User) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(middleware.ClaimsKey, &models.JwtCustomClaims{UserID: user.ID, ProfileID: user.ProfileID, Email: user.Email})
			return next(c)
		}
	}
}

func doJSON(t *testing.T, e *echo.Echo, method, path string, body any) envelope.Envelope {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("%s %s: status %d body %s", method, path, rec.Code, rec.Body.String())
	}
	var env envelope.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	return env
}
