package fanout

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/anonto42/hooly/backend/internal/envelope"
	"github.com/anonto42/hooly/backend/internal/models"
)

// SessionRegistry reads the live sessions watching a content item.
type SessionRegistry interface {
	ForMedia(ctx context.Context, mediaID string, mediaType models.MediaType) ([]models.OpenSession, error)
}

// Delivery is one envelope addressed to one live session.
type Delivery struct {
	RecipientID uint              `json:"recipient_id"`
	SessionID   string            `json:"session_id"`
	Envelope    envelope.Envelope `json:"envelope"`
}

// Sink accepts deliveries for asynchronous processing.
type Sink interface {
	Enqueue(ctx context.Context, d Delivery) error
}

// Dispatcher routes sync envelopes to a recipient's open sessions.
type Dispatcher struct {
	sessions SessionRegistry
	sink     Sink
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(sessions SessionRegistry, sink Sink) *Dispatcher {
	return &Dispatcher{sessions: sessions, sink: sink}
}

// Dispatch enqueues env once per session userID holds on ref, with that
// session's id merged into the envelope data. A user without sessions gets
// nothing and no error.
func (d *Dispatcher) Dispatch(ctx context.Context, userID uint, ref Ref, env envelope.Envelope) (int, error) {
	sessions, err := d.sessions.ForMedia(ctx, ref.ID, ref.Type)
	if err != nil {
		return 0, fmt.Errorf("open sessions of %s: %w", ref, err)
	}

	var (
		enqueued int
		errs     []error
	)
	for _, s := range sessions {
		if s.UserID != userID {
			continue
		}
		if err := d.sink.Enqueue(ctx, Delivery{
			RecipientID: userID,
			SessionID:   s.SessionID,
			Envelope:    withSession(env, s.SessionID),
		}); err != nil {
			errs = append(errs, fmt.Errorf("session %s: %w", s.SessionID, err))
			continue
		}
		enqueued++
	}
	return enqueued, errors.Join(errs...)
}

func withSession(env envelope.Envelope, sessionID string) envelope.Envelope {
	data := map[string]any{}
	if m, ok := env.Data.(map[string]any); ok {
		data = maps.Clone(m)
	}
	data["session_id"] = sessionID
	env.Data = data
	return env
}
