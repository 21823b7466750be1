package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/anonto42/hooly/backend/internal/listing"
	"github.com/anonto42/hooly/backend/internal/models"
)

// earthRadiusKM is the mean earth radius used by the radius filter.
const earthRadiusKM = 6371.0

// EventRepository defines the interface for event data operations
type EventRepository interface {
	CreateEvent(ctx context.Context, event *models.Event, tags []string) error
	GetEventByID(ctx context.Context, id uint) (*models.Event, error)
	CountEvents(ctx context.Context, q listing.Query) (int64, error)
	FindEvents(ctx context.Context, q listing.Query, offset, limit int) ([]models.Event, error)
}

// PostgresEventRepository implements EventRepository for PostgreSQL
type PostgresEventRepository struct {
	db *gorm.DB
}

// NewPostgresEventRepository creates a new PostgresEventRepository
func NewPostgresEventRepository(db *gorm.DB) *PostgresEventRepository {
	return &PostgresEventRepository{db: db}
}

// CreateEvent stores the event with its members, co-hosts and attachments and
// tags it in the same transaction. Known tags get their counter bumped.
func (r *PostgresEventRepository) CreateEvent(ctx context.Context, event *models.Event, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(event).Error; err != nil {
			return err
		}
		links := make([]map[string]any, 0, len(tags))
		for _, name := range uniqueTags(tags) {
			tag := models.Hashtag{Name: name, Count: 1}
			if err := tx.Clauses(hashtagUpsert).Create(&tag).Error; err != nil {
				return err
			}
			event.Hashtags = append(event.Hashtags, tag)
			links = append(links, map[string]any{"event_id": event.ID, "hashtag_id": tag.ID})
		}
		if len(links) == 0 {
			return nil
		}
		return tx.Table("event_hash_tags").Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
}

var hashtagUpsert = clause.OnConflict{
	Columns:   []clause.Column{{Name: "name"}},
	DoUpdates: clause.Assignments(map[string]any{"count": gorm.Expr("hashtags.count + 1")}),
}

func uniqueTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimPrefix(strings.TrimSpace(t), "#")
		if t == "" || seen[strings.ToLower(t)] {
			continue
		}
		seen[strings.ToLower(t)] = true
		out = append(out, t)
	}
	return out
}

// GetEventByID retrieves an event with all its associations
func (r *PostgresEventRepository) GetEventByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	err := r.db.WithContext(ctx).
		Preload("EventAttachments").
		Preload("EventCoHosts").
		Preload("EventMembers").
		Preload("Hashtags").
		First(&event, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &event, nil
}

// CountEvents counts events matching q
func (r *PostgresEventRepository) CountEvents(ctx context.Context, q listing.Query) (int64, error) {
	var total int64
	err := applyEventQuery(r.db.WithContext(ctx).Model(&models.Event{}), q).Count(&total).Error
	return total, err
}

// FindEvents returns one page of events matching q ordered by start date
func (r *PostgresEventRepository) FindEvents(ctx context.Context, q listing.Query, offset, limit int) ([]models.Event, error) {
	var events []models.Event
	err := applyEventQuery(r.db.WithContext(ctx).Model(&models.Event{}), q).
		Preload("EventAttachments").
		Order("start_date ASC").Order("id ASC").
		Offset(offset).Limit(limit).
		Find(&events).Error
	return events, err
}

func applyEventQuery(db *gorm.DB, q listing.Query) *gorm.DB {
	f := q.Filter
	if len(f.Keywords) > 0 {
		db = db.Where("to_tsvector('english', coalesce(event_name, '') || ' ' || coalesce(event_details, '')) @@ to_tsquery('english', ?)", f.TSQuery())
	}
	if f.Date != nil {
		db = db.Where("start_date >= ? AND start_date < ?", *f.Date, f.Date.AddDate(0, 0, 1))
	}
	if f.Location != "" {
		db = db.Where("lower(location) LIKE ?", "%"+f.Location+"%")
	}
	if f.Geo != nil {
		db = db.Where(
			"? * acos(least(1.0, cos(radians(?)) * cos(radians(latitude)) * cos(radians(longitude) - radians(?)) + sin(radians(?)) * sin(radians(latitude)))) <= ?",
			earthRadiusKM, f.Geo.Latitude, f.Geo.Longitude, f.Geo.Latitude, f.Geo.RadiusKM,
		)
	}
	if f.CategoryID != nil {
		db = db.Where("category_id = ?", *f.CategoryID)
	}
	if f.IsPaid != nil {
		db = db.Where("is_paid = ?", *f.IsPaid)
	}
	if !q.Range.From.IsZero() {
		db = db.Where("start_date >= ?", q.Range.From)
	}
	if !q.Range.To.IsZero() {
		db = db.Where("start_date < ?", q.Range.To)
	}
	return db
}
