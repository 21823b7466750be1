package fanout

import (
	"context"
	"fmt"

	"github.com/anonto42/hooly/backend/internal/models"
)

// Resolution is the outcome of resolving a target. Target is nil when the
// content does not exist.
type Resolution struct {
	Target     *Target
	Recipients []uint
}

// Found reports whether the content exists.
func (r Resolution) Found() bool { return r.Target != nil }

// Resolver computes who must hear about a change to a target.
type Resolver struct {
	fetchers      Fetchers
	comments      CommenterLister
	reactions     ReactorLister
	follows       FollowerLister
	withFollowers bool
}

// NewResolver creates a resolver. follows may be nil when withFollowers is false.
func NewResolver(fetchers Fetchers, comments CommenterLister, reactions ReactorLister, follows FollowerLister, withFollowers bool) *Resolver {
	return &Resolver{
		fetchers:      fetchers,
		comments:      comments,
		reactions:     reactions,
		follows:       follows,
		withFollowers: withFollowers && follows != nil,
	}
}

// Resolve returns the deduplicated recipient profiles of ref, never including
// actorProfileID. Events reach members, co-hosts, commenters, reactors and the
// owner; posts the same minus co-hosts.
func (r *Resolver) Resolve(ctx context.Context, ref Ref, actorProfileID uint) (Resolution, error) {
	fetcher, ok := r.fetchers[ref.Type]
	if !ok {
		return Resolution{}, fmt.Errorf("no fetcher for media type %q", ref.Type)
	}
	target, err := fetcher.FetchTarget(ctx, ref.ID)
	if err != nil {
		return Resolution{}, fmt.Errorf("fetch %s: %w", ref, err)
	}
	if target == nil {
		return Resolution{}, nil
	}

	commenters, err := r.comments.CommenterIDs(ctx, ref.Type, ref.ID)
	if err != nil {
		return Resolution{}, fmt.Errorf("commenters of %s: %w", ref, err)
	}
	reactors, err := r.reactions.ReactorIDs(ctx, ref.Type, ref.ID)
	if err != nil {
		return Resolution{}, fmt.Errorf("reactors of %s: %w", ref, err)
	}
	var followers []uint
	if r.withFollowers {
		if followers, err = r.follows.FollowerIDs(ctx, target.OwnerID); err != nil {
			return Resolution{}, fmt.Errorf("followers of %d: %w", target.OwnerID, err)
		}
	}

	set := newProfileSet(actorProfileID)
	set.add(target.Members...)
	if ref.Type == models.MediaEvent {
		set.add(target.CoHosts...)
	}
	set.add(commenters...)
	set.add(reactors...)
	set.add(followers...)
	set.add(target.OwnerID)

	return Resolution{Target: target, Recipients: set.ids}, nil
}

// profileSet keeps insertion order and drops zero ids, duplicates and the excluded id.
type profileSet struct {
	exclude uint
	seen    map[uint]struct{}
	ids     []uint
}

func newProfileSet(exclude uint) *profileSet {
	return &profileSet{exclude: exclude, seen: make(map[uint]struct{}), ids: []uint{}}
}

func (s *profileSet) add(ids ...uint) {
	for _, id := range ids {
		if id == 0 || id == s.exclude {
			continue
		}
		if _, ok := s.seen[id]; ok {
			continue
		}
		s.seen[id] = struct{}{}
		s.ids = append(s.ids, id)
	}
}
