package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/anonto42/hooly/backend/internal/models"
)

// SyncRepository persists the append-only sync log
type SyncRepository interface {
	CreateSyncRecord(ctx context.Context, record *models.SyncRecord) error
}

// PostgresSyncRepository implements SyncRepository for PostgreSQL
type PostgresSyncRepository struct {
	db *gorm.DB
}

// NewPostgresSyncRepository creates a new PostgresSyncRepository
func NewPostgresSyncRepository(db *gorm.DB) *PostgresSyncRepository {
	return &PostgresSyncRepository{db: db}
}

// CreateSyncRecord inserts a sync record
func (r *PostgresSyncRepository) CreateSyncRecord(ctx context.Context, record *models.SyncRecord) error {
	return r.db.WithContext(ctx).Create(record).Error
}
