// Package fanout propagates a content change to everyone involved with it: it
// resolves recipients, issues sync records, composes notifications and hands
// deliveries to live sessions.
package fanout

import (
	"context"
	"fmt"
	"time"

	"github.com/anonto42/hooly/backend/internal/models"
)

// Ref points at one content item.
type Ref struct {
	Type models.MediaType
	ID   string
}

func (r Ref) String() string { return fmt.Sprintf("%s#%s", r.Type, r.ID) }

// Target is a content item together with the profiles attached to it.
type Target struct {
	Ref
	OwnerID   uint
	UpdatedAt time.Time
	Members   []uint
	CoHosts   []uint
	// View is the client projection sent inside sync envelopes.
	View any
}

// TargetFetcher loads one content variant. A missing item is (nil, nil).
type TargetFetcher interface {
	FetchTarget(ctx context.Context, id string) (*Target, error)
}

// Fetchers maps each content variant to its loader.
type Fetchers map[models.MediaType]TargetFetcher

// CommenterLister lists profiles that commented on a target.
type CommenterLister interface {
	CommenterIDs(ctx context.Context, mediaType models.MediaType, mediaID string) ([]uint, error)
}

// ReactorLister lists profiles holding a non-deleted reaction on a target.
type ReactorLister interface {
	ReactorIDs(ctx context.Context, mediaType models.MediaType, mediaID string) ([]uint, error)
}

// FollowerLister lists accepted followers of a profile.
type FollowerLister interface {
	FollowerIDs(ctx context.Context, profileID uint) ([]uint, error)
}
