// Command seed fills the database with fake profiles, categories and events
// spread over the days around today, for exercising the listings locally.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/anonto42/hooly/backend/internal/listing"
	"github.com/anonto42/hooly/backend/internal/models"
	"github.com/anonto42/hooly/backend/internal/repositories"
	"github.com/anonto42/hooly/backend/internal/router"
	"github.com/anonto42/hooly/backend/pkg/config"
)

func main() {
	users := flag.Int("users", 10, "profiles to create")
	events := flag.Int("events", 60, "events to create")
	days := flag.Int("days", 10, "events start within this many days before or after today")
	flag.Parse()

	cfg := config.Load()
	logger := cfg.NewLogger()
	gofakeit.Seed(time.Now().UnixNano())

	db, err := config.InitDB(cfg)
	if err != nil {
		logger.Error("Failed to initialize databases", "error", err)
		os.Exit(1)
	}
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		logger.Error("Failed to migrate", "error", err)
		os.Exit(1)
	}

	if err := seed(context.Background(), db, cfg, logger, *users, *events, *days); err != nil {
		logger.Error("Seeding failed", "error", err)
		os.Exit(1)
	}
}

func seed(ctx context.Context, db *config.DB, cfg *config.Config, logger *slog.Logger, userCount, eventCount, days int) error {
	pg := db.Postgres.WithContext(ctx)

	profiles := make([]uint, 0, userCount)
	for i := 0; i < userCount; i++ {
		user := models.User{
			Username:  gofakeit.Username(),
			FirstName: gofakeit.FirstName(),
			LastName:  gofakeit.LastName(),
			Email:     gofakeit.Email(),
			Profile: models.MemberProfile{
				Photo:           gofakeit.URL(),
				ContactEmail:    gofakeit.Email(),
				IsProfilePublic: true,
			},
		}
		if err := pg.Create(&user).Error; err != nil {
			return fmt.Errorf("create user: %w", err)
		}
		profiles = append(profiles, user.ProfileID)
	}
	logger.Info("Seeded users", "count", len(profiles))

	categories := make([]uint, 0, 5)
	for i := 0; i < 5; i++ {
		category := models.Category{Name: gofakeit.HipsterWord()}
		if err := pg.Create(&category).Error; err != nil {
			return fmt.Errorf("create category: %w", err)
		}
		categories = append(categories, category.ID)
	}

	eventRepo := repositories.NewPostgresEventRepository(db.Postgres)
	today := listing.StartOfDay(time.Now(), cfg.Location)
	for i := 0; i < eventCount; i++ {
		start := today.AddDate(0, 0, gofakeit.Number(-days, days)).
			Add(time.Duration(gofakeit.Number(8, 22)) * time.Hour)
		owner := profiles[gofakeit.Number(0, len(profiles)-1)]
		event := &models.Event{
			MemberProfileID: owner,
			EventName:       gofakeit.Sentence(3),
			EventDetails:    gofakeit.Paragraph(1, 3, 12, " "),
			Location:        gofakeit.City(),
			Latitude:        gofakeit.Latitude(),
			Longitude:       gofakeit.Longitude(),
			Radius:          float64(gofakeit.Number(1, 50)),
			IsPublic:        true,
			IsPaid:          gofakeit.Bool(),
			CategoryID:      categories[gofakeit.Number(0, len(categories)-1)],
			EventType:       "public",
			StartDate:       start,
			EndDate:         start.Add(time.Duration(gofakeit.Number(1, 6)) * time.Hour),
			EventAttachments: []models.EventAttachment{{
				AttachmentType: "image",
				AttachmentURL:  gofakeit.URL(),
			}},
			EventMembers: []models.EventMember{{
				MemberProfileID: profiles[gofakeit.Number(0, len(profiles)-1)],
			}},
		}
		tags := []string{gofakeit.HipsterWord(), gofakeit.HipsterWord()}
		if err := eventRepo.CreateEvent(ctx, event, tags); err != nil {
			return fmt.Errorf("create event: %w", err)
		}
	}
	logger.Info("Seeded events", "count", eventCount, "days", days)
	return nil
}
