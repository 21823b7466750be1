package handlers

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/hooly/backend/internal/envelope"
	"github.com/anonto42/hooly/backend/internal/listing"
	"github.com/anonto42/hooly/backend/internal/models"
	"github.com/anonto42/hooly/backend/internal/repositories"
)

const groupedNotificationLimit = 100

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	userRepository         repositories.UserRepository
	perPage                int
	location               *time.Location
	now                    func() time.Time
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository, perPage int, loc *time.Location) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		userRepository:         userRepo,
		perPage:                perPage,
		location:               loc,
		now:                    time.Now,
	}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.GET("/notifications/grouped", h.GetGroupedNotifications)
	g.POST("/notifications/read", h.MarkAllAsRead)
}

// EnrichedNotification includes actor info
type EnrichedNotification struct {
	models.Notification
	Actor models.UserCompact `json:"actor"`
}

func (h *NotificationHandler) enrichNotifications(ctx context.Context, notifications []models.Notification) ([]EnrichedNotification, error) {
	ids := make([]uint, 0, len(notifications))
	for _, n := range notifications {
		ids = append(ids, n.ActorProfileID)
	}
	users, err := h.userRepository.UsersByProfileIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	actors := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		actors[u.ProfileID] = u.ToCompact()
	}

	enriched := make([]EnrichedNotification, len(notifications))
	for i, n := range notifications {
		enriched[i] = EnrichedNotification{Notification: n, Actor: actors[n.ActorProfileID]}
	}
	return enriched, nil
}

// GetNotifications returns paginated notifications
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	requestID := c.QueryParam("request_id")

	return respond(c, requestID, func() (envelope.Envelope, error) {
		ctx := c.Request().Context()
		page := listing.ParsePage(c.QueryParam("page"))
		perPage := listing.ParsePerPage(c.QueryParam("per_page"), h.perPage)

		total, err := h.notificationRepository.CountForRecipient(ctx, user.ProfileID)
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not count notifications", err)
		}
		unread, err := h.notificationRepository.UnreadCount(ctx, user.ProfileID)
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not count notifications", err)
		}
		meta := listing.Paginate(page, perPage, total)

		var notifications []models.Notification
		if !meta.Beyond() {
			notifications, err = h.notificationRepository.ListForRecipient(ctx, user.ProfileID, meta.Offset(), meta.PerPage)
			if err != nil {
				return envelope.Envelope{}, envelope.NewPersistence("could not load notifications", err)
			}
		}
		enriched, err := h.enrichNotifications(ctx, notifications)
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not load actors", err)
		}

		env := envelope.Success("Notifications", map[string]any{
			"notifications": enriched,
			"unread_count":  unread,
		}, requestID)
		return env.WithPaging(meta), nil
	})
}

// GetGroupedNotifications returns the most recent notifications bucketed by day
func (h *NotificationHandler) GetGroupedNotifications(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	requestID := c.QueryParam("request_id")

	return respond(c, requestID, func() (envelope.Envelope, error) {
		ctx := c.Request().Context()
		notifications, err := h.notificationRepository.ListForRecipient(ctx, user.ProfileID, 0, groupedNotificationLimit)
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not load notifications", err)
		}
		unread, err := h.notificationRepository.UnreadCount(ctx, user.ProfileID)
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not count notifications", err)
		}
		enriched, err := h.enrichNotifications(ctx, notifications)
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not load actors", err)
		}

		day := listing.StartOfDay(h.now(), h.location)
		windows := append([]listing.Window{{Cohort: listing.Today, Range: listing.Range{From: day}}},
			listing.Windows(day, listing.Past)...)

		groups := make(map[string][]EnrichedNotification, len(windows))
		for _, w := range windows {
			groups[string(w.Cohort)] = []EnrichedNotification{}
		}
		for _, n := range enriched {
			if cohort, ok := listing.Classify(n.CreatedAt, windows); ok {
				groups[string(cohort)] = append(groups[string(cohort)], n)
			}
		}

		return envelope.Success("Notifications", map[string]any{
			"notifications": groups,
			"unread_count":  unread,
		}, requestID), nil
	})
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}
	requestID := c.QueryParam("request_id")

	return respond(c, requestID, func() (envelope.Envelope, error) {
		if err := h.notificationRepository.MarkAllAsRead(c.Request().Context(), user.ProfileID); err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not update notifications", err)
		}
		return envelope.Success("Notifications marked as read", nil, requestID), nil
	})
}
