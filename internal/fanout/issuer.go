package fanout

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/anonto42/hooly/backend/internal/models"
)

// SyncStore persists sync records.
type SyncStore interface {
	CreateSyncRecord(ctx context.Context, record *models.SyncRecord) error
}

// Issuer creates one sync record per recipient and change.
type Issuer struct {
	store    SyncStore
	newToken func() string
}

// NewIssuer creates an issuer minting random UUID tokens.
func NewIssuer(store SyncStore) *Issuer {
	return &Issuer{store: store, newToken: uuid.NewString}
}

// Issue stores a new record for profileID stamped with the target's updated_at.
// Every call mints a fresh token, including repeat syncs of the same change.
func (i *Issuer) Issue(ctx context.Context, target *Target, profileID uint) (models.SyncRecord, error) {
	record := models.SyncRecord{
		MediaID:         target.ID,
		MediaType:       target.Type,
		MemberProfileID: profileID,
		SyncToken:       i.newToken(),
		SyncedDate:      target.UpdatedAt,
	}
	if err := i.store.CreateSyncRecord(ctx, &record); err != nil {
		return models.SyncRecord{}, fmt.Errorf("issue sync record for profile %d: %w", profileID, err)
	}
	return record, nil
}
