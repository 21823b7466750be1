package fanout

import (
	"context"
	"testing"

	"github.com/anonto42/hooly/backend/internal/models"
)

func newTestResolver(withFollowers bool) *Resolver {
	events := stubFetcher{
		"1": {Ref: Ref{Type: models.MediaEvent, ID: "1"}, OwnerID: 10, Members: []uint{11, 12, 12}, CoHosts: []uint{13, 11}},
	}
	posts := stubFetcher{
		"p1": {Ref: Ref{Type: models.MediaPost, ID: "p1"}, OwnerID: 20, Members: []uint{21}, CoHosts: []uint{99}},
	}
	participants := stubParticipants{
		commenters: map[string][]uint{"1": {14, 10}, "p1": {22, 21}},
		reactors:   map[string][]uint{"1": {15, 11}, "p1": {23}},
		followers:  map[uint][]uint{10: {16, 12}},
	}
	return NewResolver(Fetchers{models.MediaEvent: events, models.MediaPost: posts},
		participants, participants, participants, withFollowers)
}

func TestResolveExcludesActorAndDuplicates(t *testing.T) {
	tests := []struct {
		name      string
		ref       Ref
		actor     uint
		followers bool
		want      []uint
	}{
		{"event by member", Ref{models.MediaEvent, "1"}, 11, false, []uint{12, 13, 14, 10, 15}},
		{"event by owner", Ref{models.MediaEvent, "1"}, 10, false, []uint{11, 12, 13, 14, 15}},
		{"event with followers", Ref{models.MediaEvent, "1"}, 15, true, []uint{11, 12, 13, 14, 10, 16}},
		{"post ignores co-hosts", Ref{models.MediaPost, "p1"}, 23, false, []uint{21, 22, 20}},
		{"outsider actor", Ref{models.MediaPost, "p1"}, 77, false, []uint{21, 22, 23, 20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestResolver(tt.followers).Resolve(context.Background(), tt.ref, tt.actor)
			if err != nil {
				t.Fatal(err)
			}
			if !res.Found() {
				t.Fatal("expected target to be found")
			}
			seen := map[uint]bool{}
			for _, id := range res.Recipients {
				if id == tt.actor {
					t.Errorf("actor %d in recipients", id)
				}
				if seen[id] {
					t.Errorf("duplicate recipient %d", id)
				}
				seen[id] = true
			}
			if len(res.Recipients) != len(tt.want) {
				t.Fatalf("recipients = %v, want %v", res.Recipients, tt.want)
			}
			for i := range tt.want {
				if res.Recipients[i] != tt.want[i] {
					t.Fatalf("recipients = %v, want %v", res.Recipients, tt.want)
				}
			}
		})
	}
}

func TestResolveMissingTarget(t *testing.T) {
	res, err := newTestResolver(false).Resolve(context.Background(), Ref{models.MediaEvent, "404"}, 1)
	if err != nil {
		t.Fatalf("missing target should not fail: %v", err)
	}
	if res.Found() || len(res.Recipients) != 0 {
		t.Errorf("expected empty resolution, got %+v", res)
	}
}

func TestResolveFetchError(t *testing.T) {
	if _, err := newTestResolver(false).Resolve(context.Background(), Ref{models.MediaEvent, "broken"}, 1); err == nil {
		t.Error("expected fetch error")
	}
	if _, err := newTestResolver(false).Resolve(context.Background(), Ref{"Story", "1"}, 1); err == nil {
		t.Error("expected error for unknown media type")
	}
}
