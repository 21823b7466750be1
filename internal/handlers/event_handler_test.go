package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/anonto42/hooly/backend/internal/listing"
	"github.com/anonto42/hooly/backend/internal/models"
	"github.com/anonto42/hooly/backend/internal/repositories"
)

type fakeEvents struct {
	events []models.Event
	tags   []string
}

func (f *fakeEvents) CreateEvent(_ context.Context, event *models.Event, tags []string) error {
	event.ID = uint(len(f.events) + 1)
	f.events = append(f.events, *event)
	f.tags = tags
	return nil
}

func (f *fakeEvents) GetEventByID(_ context.Context, id uint) (*models.Event, error) {
	for _, e := range f.events {
		if e.ID == id {
			return &e, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (f *fakeEvents) matching(q listing.Query) []models.Event {
	var out []models.Event
	for _, e := range f.events {
		if q.Range.Contains(e.StartDate) {
			out = append(out, e)
		}
	}
	return out
}

func (f *fakeEvents) CountEvents(_ context.Context, q listing.Query) (int64, error) {
	return int64(len(f.matching(q))), nil
}

func (f *fakeEvents) FindEvents(_ context.Context, q listing.Query, offset, limit int) ([]models.Event, error) {
	all := f.matching(q)
	if offset >= len(all) {
		return nil, nil
	}
	return all[offset:min(offset+limit, len(all))], nil
}

type fakeCategories map[uint]bool

func (f fakeCategories) CategoryExists(_ context.Context, id uint) (bool, error) {
	return f[id], nil
}

func setupEvents(t *testing.T, now time.Time) (*fakeEvents, *recordingEngine, func(method, path string, body any) envelopeView) {
	t.Helper()
	alice := models.User{ID: 1, ProfileID: 10}
	users := &fakeUsers{users: map[uint]models.User{1: alice}}
	events := &fakeEvents{}
	engine := &recordingEngine{}
	svc := listing.NewService(events, 3, time.UTC).WithClock(func() time.Time { return now })

	e := newEcho()
	NewEventHandler(events, fakeCategories{4: true}, users, svc, engine, discardLogger()).
		RegisterEventRoutes(e.Group("", asUser(alice)))

	return events, engine, func(method, path string, body any) envelopeView {
		env := doJSON(t, e, method, path, body)
		data, _ := env.Data.(map[string]any)
		return envelopeView{Status: env.Status, Message: env.Message, Errors: env.Errors, Data: data}
	}
}

type envelopeView struct {
	Status  int
	Message string
	Errors  map[string][]string
	Data    map[string]any
}

func eventBody(categoryID uint, start time.Time) map[string]any {
	return map[string]any{
		"request_id": "req-1",
		"event": map[string]any{
			"event_name":     "Jazz night",
			"location":       "Dhaka",
			"latitude":       23.8,
			"longitude":      90.4,
			"category_id":    categoryID,
			"start_date":     start,
			"end_date":       start.Add(2 * time.Hour),
			"event_members":  []map[string]any{{"member_profile_id": 11}, {"member_profile_id": 11}},
			"event_co_hosts": []map[string]any{{"member_profile_id": 12}},
		},
		"hash_tags": []map[string]any{{"tag_name": "jazz"}, {"tag_name": "live"}},
	}
}

func TestCreateEventSyncsCreator(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	events, engine, call := setupEvents(t, now)

	got := call(http.MethodPost, "/events", eventBody(4, now.Add(3*time.Hour)))
	if got.Status != 1 || got.Message != "Event Created" {
		t.Fatalf("create: %+v", got)
	}
	if len(events.events) != 1 || len(events.events[0].EventMembers) != 1 || len(events.tags) != 2 {
		t.Errorf("stored event = %+v tags = %v", events.events, events.tags)
	}
	if len(engine.calls) != 1 || engine.calls[0].ref.ID != "1" || !engine.calls[0].opts.EchoActor {
		t.Errorf("fanout calls = %+v", engine.calls)
	}
}

func TestCreateEventRejectsUnknownCategory(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	events, engine, call := setupEvents(t, now)

	got := call(http.MethodPost, "/events", eventBody(9, now))
	if got.Status != 0 || len(got.Errors["event.category_id"]) == 0 {
		t.Fatalf("got %+v", got)
	}
	if len(events.events) != 0 || len(engine.calls) != 0 {
		t.Errorf("event stored or synced despite invalid category")
	}

	got = call(http.MethodPost, "/events", map[string]any{"event": map[string]any{"location": "x"}})
	if got.Status != 0 || len(got.Errors["event.event_name"]) == 0 {
		t.Errorf("missing name: %+v", got)
	}
}

func TestGetEventNotFound(t *testing.T) {
	_, _, call := setupEvents(t, time.Now())

	got := call(http.MethodGet, "/events/42", nil)
	if got.Status != 0 || got.Errors["error"][0] != "Event not found" {
		t.Errorf("got %+v", got)
	}
}

func TestListEventsCohorts(t *testing.T) {
	now := time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)
	events, _, call := setupEvents(t, now)
	for _, offset := range []int{0, 1, 3, 30, -1} {
		start := now.AddDate(0, 0, offset)
		events.events = append(events.events, models.Event{ID: uint(len(events.events) + 1), StartDate: start})
	}

	got := call(http.MethodGet, "/events?type=upcoming", nil)
	if got.Status != 1 {
		t.Fatalf("upcoming: %+v", got)
	}
	for _, key := range []string{"today_events", "a_day_after_events", "next_week_events", "upcoming_events"} {
		page, ok := got.Data[key].(map[string]any)
		if !ok {
			t.Fatalf("missing %s in %v", key, got.Data)
		}
		if rows := page["events"].([]any); len(rows) != 1 {
			t.Errorf("%s has %d events, want 1", key, len(rows))
		}
	}

	got = call(http.MethodGet, "/events/horizontal?type=past&list_type=day", nil)
	if page := got.Data["yesterday_events"].(map[string]any); len(page["events"].([]any)) != 1 {
		t.Errorf("yesterday page = %v", page)
	}

	got = call(http.MethodGet, "/events?type=sideways", nil)
	if got.Status != 0 || len(got.Errors["type"]) == 0 {
		t.Errorf("unknown type: %+v", got)
	}
}
