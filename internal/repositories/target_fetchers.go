package repositories

import (
	"context"
	"errors"
	"strconv"

	"github.com/anonto42/hooly/backend/internal/fanout"
	"github.com/anonto42/hooly/backend/internal/models"
)

// EventTargets loads events as fan-out targets
type EventTargets struct {
	events EventRepository
}

// NewEventTargets creates an EventTargets
func NewEventTargets(events EventRepository) *EventTargets {
	return &EventTargets{events: events}
}

// FetchTarget implements fanout.TargetFetcher
func (t *EventTargets) FetchTarget(ctx context.Context, id string) (*fanout.Target, error) {
	eventID, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return nil, nil
	}
	event, err := t.events.GetEventByID(ctx, uint(eventID))
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	target := &fanout.Target{
		Ref:       fanout.Ref{Type: models.MediaEvent, ID: id},
		OwnerID:   event.MemberProfileID,
		UpdatedAt: event.UpdatedAt,
		View:      event,
	}
	for _, m := range event.EventMembers {
		target.Members = append(target.Members, m.MemberProfileID)
	}
	for _, c := range event.EventCoHosts {
		target.CoHosts = append(target.CoHosts, c.MemberProfileID)
	}
	return target, nil
}

// PostTargets loads posts as fan-out targets
type PostTargets struct {
	posts PostRepository
}

// NewPostTargets creates a PostTargets
func NewPostTargets(posts PostRepository) *PostTargets {
	return &PostTargets{posts: posts}
}

// FetchTarget implements fanout.TargetFetcher
func (t *PostTargets) FetchTarget(ctx context.Context, id string) (*fanout.Target, error) {
	post, err := t.posts.GetPostByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &fanout.Target{
		Ref:       fanout.Ref{Type: models.MediaPost, ID: id},
		OwnerID:   post.MemberProfileID,
		UpdatedAt: post.UpdatedAt,
		Members:   post.PostMembers,
		View:      post,
	}, nil
}
