package fanout

import (
	"context"
	"errors"
	"sync"

	"github.com/anonto42/hooly/backend/internal/models"
)

type stubFetcher map[string]*Target

func (s stubFetcher) FetchTarget(_ context.Context, id string) (*Target, error) {
	if id == "broken" {
		return nil, errors.New("db down")
	}
	return s[id], nil
}

type stubParticipants struct {
	commenters map[string][]uint
	reactors   map[string][]uint
	followers  map[uint][]uint
}

func (s stubParticipants) CommenterIDs(_ context.Context, _ models.MediaType, id string) ([]uint, error) {
	return s.commenters[id], nil
}

func (s stubParticipants) ReactorIDs(_ context.Context, _ models.MediaType, id string) ([]uint, error) {
	return s.reactors[id], nil
}

func (s stubParticipants) FollowerIDs(_ context.Context, profileID uint) ([]uint, error) {
	return s.followers[profileID], nil
}

type memorySyncStore struct {
	mu      sync.Mutex
	records []models.SyncRecord
	failFor  map[uint]bool
	onCreate func()
}

func (m *memorySyncStore) CreateSyncRecord(ctx context.Context, r *models.SyncRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.onCreate != nil {
		m.onCreate()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if m.failFor[r.MemberProfileID] {
		return errors.New("insert failed")
	}
	r.ID = uint(len(m.records) + 1)
	m.records = append(m.records, *r)
	return nil
}

type memorySessions []models.OpenSession

func (m memorySessions) ForMedia(_ context.Context, mediaID string, mediaType models.MediaType) ([]models.OpenSession, error) {
	var out []models.OpenSession
	for _, s := range m {
		if s.MediaID == mediaID && s.MediaType == mediaType {
			out = append(out, s)
		}
	}
	return out, nil
}

type memorySink struct {
	mu         sync.Mutex
	deliveries []Delivery
	rejects    map[string]bool
}

func (m *memorySink) Enqueue(_ context.Context, d Delivery) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rejects[d.SessionID] {
		return errors.New("queue full")
	}
	m.deliveries = append(m.deliveries, d)
	return nil
}

func (m *memorySink) forUser(id uint) []Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Delivery
	for _, d := range m.deliveries {
		if d.RecipientID == id {
			out = append(out, d)
		}
	}
	return out
}

type memoryDirectory []models.User

func (m memoryDirectory) UsersByProfileIDs(_ context.Context, ids []uint) ([]models.User, error) {
	want := make(map[uint]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var out []models.User
	for _, u := range m {
		if want[u.ProfileID] {
			out = append(out, u)
		}
	}
	return out, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	alerts map[uint]Alert
}

func (r *recordingNotifier) Notify(_ context.Context, recipient, _ models.User, alert Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.alerts == nil {
		r.alerts = map[uint]Alert{}
	}
	r.alerts[recipient.ProfileID] = alert
	return nil
}
