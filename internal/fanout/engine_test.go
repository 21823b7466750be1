package fanout

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/anonto42/hooly/backend/internal/models"
)

type harness struct {
	engine   *Engine
	store    *memorySyncStore
	sink     *memorySink
	notifier *recordingNotifier
}

// Profiles: A=1 (owner), B=2, C=3 (members), D=4 (co-host). User ids are profile+100.
func newHarness(sessions memorySessions) *harness {
	updated := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	events := stubFetcher{
		"42": {
			Ref:       Ref{Type: models.MediaEvent, ID: "42"},
			OwnerID:   1,
			UpdatedAt: updated,
			Members:   []uint{2, 3},
			CoHosts:   []uint{4},
			View:      map[string]any{"id": 42},
		},
	}
	empty := stubParticipants{}
	resolver := NewResolver(Fetchers{models.MediaEvent: events}, empty, empty, nil, false)

	h := &harness{store: &memorySyncStore{}, sink: &memorySink{}, notifier: &recordingNotifier{}}
	directory := memoryDirectory{
		{ID: 101, ProfileID: 1, Username: "alice"},
		{ID: 102, ProfileID: 2, Username: "bob"},
		{ID: 103, ProfileID: 3, Username: "carol"},
		{ID: 104, ProfileID: 4, Username: "dave"},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h.engine = NewEngine(resolver, NewIssuer(h.store), NewDispatcher(sessions, h.sink), directory, h.notifier, 3, logger)
	return h
}

func TestFanoutEventCreation(t *testing.T) {
	sessions := memorySessions{
		{SessionID: "s-b1", UserID: 102, MediaID: "42", MediaType: models.MediaEvent},
		{SessionID: "s-b2", UserID: 102, MediaID: "42", MediaType: models.MediaEvent},
		{SessionID: "s-other", UserID: 102, MediaID: "43", MediaType: models.MediaEvent},
	}
	h := newHarness(sessions)
	actor := models.User{ID: 101, ProfileID: 1, Username: "alice"}

	report, err := h.engine.Fanout(context.Background(), actor, Ref{models.MediaEvent, "42"}, Options{EchoActor: true})
	if err != nil {
		t.Fatal(err)
	}
	if !report.Found {
		t.Fatal("expected event to be found")
	}

	got := map[uint]bool{}
	tokens := map[string]bool{}
	for _, r := range h.store.records {
		got[r.MemberProfileID] = true
		if tokens[r.SyncToken] {
			t.Errorf("token %s issued twice", r.SyncToken)
		}
		tokens[r.SyncToken] = true
		if !r.SyncedDate.Equal(time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)) {
			t.Errorf("synced date = %v", r.SyncedDate)
		}
	}
	for _, p := range []uint{1, 2, 3, 4} {
		if !got[p] {
			t.Errorf("no sync record for profile %d", p)
		}
	}
	if len(h.store.records) != 4 {
		t.Errorf("got %d records, want 4", len(h.store.records))
	}

	bob := h.sink.forUser(102)
	if len(bob) != 2 {
		t.Fatalf("bob got %d deliveries, want 2", len(bob))
	}
	ids := map[string]bool{}
	for _, d := range bob {
		data := d.Envelope.Data.(map[string]any)
		if data["session_id"] != d.SessionID {
			t.Errorf("session id not merged: %v", data)
		}
		if d.Envelope.Type != "Sync" {
			t.Errorf("type = %q", d.Envelope.Type)
		}
		ids[d.SessionID] = true
	}
	if !ids["s-b1"] || !ids["s-b2"] {
		t.Errorf("session ids = %v", ids)
	}
	for _, offline := range []uint{101, 103, 104} {
		if n := len(h.sink.forUser(offline)); n != 0 {
			t.Errorf("offline user %d got %d deliveries", offline, n)
		}
	}
	if report.Enqueued != 2 || report.Failures != 0 {
		t.Errorf("report = %+v", report)
	}
	if len(h.notifier.alerts) != 0 {
		t.Errorf("creation should not notify, got %v", h.notifier.alerts)
	}
}

func TestFanoutResyncMintsFreshTokens(t *testing.T) {
	h := newHarness(nil)
	actor := models.User{ID: 102, ProfileID: 2}
	ref := Ref{models.MediaEvent, "42"}

	for range 2 {
		if _, err := h.engine.Fanout(context.Background(), actor, ref, Options{}); err != nil {
			t.Fatal(err)
		}
	}
	if len(h.store.records) != 6 {
		t.Fatalf("got %d records, want 6", len(h.store.records))
	}
	tokens := map[string]bool{}
	for _, r := range h.store.records {
		if r.MemberProfileID == 2 {
			t.Error("actor got a record without echo")
		}
		if tokens[r.SyncToken] {
			t.Errorf("duplicate token %s", r.SyncToken)
		}
		tokens[r.SyncToken] = true
	}
}

func TestFanoutLikeNotifiesOwnerAndOthers(t *testing.T) {
	h := newHarness(nil)
	actor := models.User{ID: 102, ProfileID: 2, Username: "bob"}

	report, err := h.engine.Fanout(context.Background(), actor, Ref{models.MediaEvent, "42"}, Options{Action: ActionLike})
	if err != nil {
		t.Fatal(err)
	}
	if report.Notified != 3 {
		t.Fatalf("notified %d, want 3", report.Notified)
	}
	if got := h.notifier.alerts[1].Kind; got != KindLike {
		t.Errorf("owner kind = %s", got)
	}
	for _, p := range []uint{3, 4} {
		if got := h.notifier.alerts[p].Kind; got != KindLikeOther {
			t.Errorf("profile %d kind = %s", p, got)
		}
	}
	if _, ok := h.notifier.alerts[2]; ok {
		t.Error("actor notified")
	}
}

func TestFanoutIsolatesRecipientFailures(t *testing.T) {
	h := newHarness(nil)
	h.store.failFor = map[uint]bool{3: true}
	actor := models.User{ID: 101, ProfileID: 1}

	report, err := h.engine.Fanout(context.Background(), actor, Ref{models.MediaEvent, "42"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Failures != 1 || len(report.Records) != 2 {
		t.Errorf("report = %+v", report)
	}
}

func TestFanoutIsolatesDispatchFailures(t *testing.T) {
	sessions := memorySessions{
		{SessionID: "s-b", UserID: 102, MediaID: "42", MediaType: models.MediaEvent},
		{SessionID: "s-c", UserID: 103, MediaID: "42", MediaType: models.MediaEvent},
		{SessionID: "s-d", UserID: 104, MediaID: "42", MediaType: models.MediaEvent},
	}
	h := newHarness(sessions)
	h.sink.rejects = map[string]bool{"s-c": true}
	actor := models.User{ID: 101, ProfileID: 1}

	report, err := h.engine.Fanout(context.Background(), actor, Ref{models.MediaEvent, "42"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Failures != 1 || report.Enqueued != 2 || len(report.Records) != 3 {
		t.Errorf("report = %+v", report)
	}
	for _, id := range []uint{102, 104} {
		if n := len(h.sink.forUser(id)); n != 1 {
			t.Errorf("user %d got %d deliveries, want 1", id, n)
		}
	}
	if n := len(h.sink.forUser(103)); n != 0 {
		t.Errorf("rejected session still delivered %d", n)
	}
}

func TestFanoutIssuesRecordsAfterCallerCancels(t *testing.T) {
	h := newHarness(nil)
	ctx, cancel := context.WithCancel(context.Background())
	h.store.onCreate = func() { cancel() }
	actor := models.User{ID: 101, ProfileID: 1}

	report, err := h.engine.Fanout(ctx, actor, Ref{models.MediaEvent, "42"}, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if report.Failures != 0 || len(h.store.records) != 3 {
		t.Errorf("records = %d, report = %+v", len(h.store.records), report)
	}
}

func TestFanoutMissingTarget(t *testing.T) {
	h := newHarness(nil)
	report, err := h.engine.Fanout(context.Background(), models.User{ProfileID: 1}, Ref{models.MediaEvent, "404"}, Options{EchoActor: true})
	if err != nil {
		t.Fatal(err)
	}
	if report.Found || len(h.store.records) != 0 {
		t.Errorf("missing target should be a no-op, got %+v", report)
	}
}
