package listing

import (
	"context"
	"time"

	"github.com/anonto42/hooly/backend/internal/envelope"
	"github.com/anonto42/hooly/backend/internal/models"
)

// ListType selects the mode of the vertical listing.
const (
	TypeUpcoming = "upcoming"
	TypePast     = "past"
	TypeSearch   = "search"
)

const listMessage = "Event list"

// Query is a filter restricted to an optional start date range.
type Query struct {
	Filter Filter
	Range  Range
}

// EventStore answers filtered event queries.
type EventStore interface {
	CountEvents(ctx context.Context, q Query) (int64, error)
	FindEvents(ctx context.Context, q Query, offset, limit int) ([]models.Event, error)
}

// Request is a parsed listing request.
type Request struct {
	RequestID string
	Type      string
	ListType  string
	Page      int
	PerPage   int
	Filter    Filter
}

// Page is one cohort's rows with its metadata.
type Page struct {
	Events     []models.EventSummary `json:"events"`
	PagingData PagingMetadata        `json:"paging_data"`
}

// Service runs event listings.
type Service struct {
	store   EventStore
	perPage int
	loc     *time.Location
	now     func() time.Time
}

// NewService creates a listing service with the configured default page size and
// the location "today" is computed in.
func NewService(store EventStore, perPage int, loc *time.Location) *Service {
	if perPage < 1 {
		perPage = 3
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Service{store: store, perPage: perPage, loc: loc, now: time.Now}
}

// WithClock replaces the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// PerPage is the default page size.
func (s *Service) PerPage() int { return s.perPage }

// Location is the location cohorts are computed in.
func (s *Service) Location() *time.Location { return s.loc }

// List runs the vertical listing: all four cohorts of a direction or a flat search.
func (s *Service) List(ctx context.Context, req Request) envelope.Envelope {
	env, err := envelope.Guard(func() (envelope.Envelope, error) {
		switch req.Type {
		case TypeSearch:
			return s.search(ctx, req)
		case TypeUpcoming, TypePast:
			day := StartOfDay(s.now(), s.loc)
			data := make(map[string]any, 4)
			for _, w := range Windows(day, Direction(req.Type)) {
				page, err := s.page(ctx, req, w.Range)
				if err != nil {
					return envelope.Envelope{}, err
				}
				data[w.Cohort.Key()] = page
			}
			return envelope.Success(listMessage, data, req.RequestID), nil
		}
		return envelope.Envelope{}, envelope.NewValidation("invalid type",
			map[string][]string{"type": {"must be one of upcoming, past, search"}})
	})
	if err != nil {
		return envelope.Failure(err, req.RequestID)
	}
	return env
}

// Cohort runs the horizontal listing: a single cohort by list type, or a search.
func (s *Service) Cohort(ctx context.Context, req Request) envelope.Envelope {
	env, err := envelope.Guard(func() (envelope.Envelope, error) {
		if req.Type == TypeSearch {
			return s.search(ctx, req)
		}
		day := StartOfDay(s.now(), s.loc)
		w, err := ResolveWindow(day, req.ListType, Direction(req.Type))
		if err != nil {
			return envelope.Envelope{}, envelope.NewValidation("invalid list", map[string][]string{"list_type": {err.Error()}})
		}
		page, err := s.page(ctx, req, w.Range)
		if err != nil {
			return envelope.Envelope{}, err
		}
		return envelope.Success(listMessage, map[string]any{w.Cohort.Key(): page}, req.RequestID), nil
	})
	if err != nil {
		return envelope.Failure(err, req.RequestID)
	}
	return env
}

func (s *Service) search(ctx context.Context, req Request) (envelope.Envelope, error) {
	page, err := s.page(ctx, req, Range{})
	if err != nil {
		return envelope.Envelope{}, err
	}
	env := envelope.Success(listMessage, map[string]any{"events": page.Events}, req.RequestID)
	return env.WithPaging(page.PagingData), nil
}

func (s *Service) page(ctx context.Context, req Request, r Range) (Page, error) {
	perPage := req.PerPage
	if perPage < 1 {
		perPage = s.perPage
	}
	q := Query{Filter: req.Filter, Range: r}

	total, err := s.store.CountEvents(ctx, q)
	if err != nil {
		return Page{}, envelope.NewPersistence("could not count events", err)
	}
	meta := Paginate(req.Page, perPage, total)
	result := Page{Events: []models.EventSummary{}, PagingData: meta}
	if meta.Beyond() {
		return result, nil
	}

	events, err := s.store.FindEvents(ctx, q, meta.Offset(), meta.PerPage)
	if err != nil {
		return Page{}, envelope.NewPersistence("could not load events", err)
	}
	for _, e := range events {
		result.Events = append(result.Events, e.Summary())
	}
	return result, nil
}
