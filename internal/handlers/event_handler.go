package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/hooly/backend/internal/envelope"
	"github.com/anonto42/hooly/backend/internal/fanout"
	"github.com/anonto42/hooly/backend/internal/listing"
	"github.com/anonto42/hooly/backend/internal/models"
	"github.com/anonto42/hooly/backend/internal/repositories"
)

// EventHandler handles HTTP requests related to events
type EventHandler struct {
	eventRepository    repositories.EventRepository
	categoryRepository repositories.CategoryRepository
	userRepository     repositories.UserRepository
	listing            *listing.Service
	engine             Fanouter
	logger             *slog.Logger
}

// NewEventHandler creates a new EventHandler
func NewEventHandler(eventRepo repositories.EventRepository, categoryRepo repositories.CategoryRepository, userRepo repositories.UserRepository, svc *listing.Service, engine Fanouter, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		eventRepository:    eventRepo,
		categoryRepository: categoryRepo,
		userRepository:     userRepo,
		listing:            svc,
		engine:             engine,
		logger:             logger,
	}
}

// RegisterEventRoutes registers event-related routes
func (h *EventHandler) RegisterEventRoutes(g *echo.Group) {
	g.POST("/events", h.CreateEvent)
	g.GET("/events", h.ListEvents)
	g.GET("/events/horizontal", h.ListEventsHorizontal)
	g.GET("/events/:id", h.GetEvent)
}

// CreateEvent creates an event with its nested members, co-hosts, attachments
// and hashtags, then syncs it to everyone involved
func (h *EventHandler) CreateEvent(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	return respond(c, req.RequestID, func() (envelope.Envelope, error) {
		ctx := c.Request().Context()
		if err := validate(c, &req); err != nil {
			return envelope.Envelope{}, err
		}
		exists, err := h.categoryRepository.CategoryExists(ctx, req.Event.CategoryID)
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not load category", err)
		}
		if !exists {
			return envelope.Envelope{}, envelope.NewValidation("invalid request",
				map[string][]string{"event.category_id": {"does not exist"}})
		}

		event := req.Event.ToEvent(user.ProfileID)
		tags := make([]string, 0, len(req.HashTags))
		for _, t := range req.HashTags {
			tags = append(tags, t.TagName)
		}
		if err := h.eventRepository.CreateEvent(ctx, event, tags); err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not create event", err)
		}

		ref := fanout.Ref{Type: models.MediaEvent, ID: strconv.FormatUint(uint64(event.ID), 10)}
		if _, err := h.engine.Fanout(ctx, *user, ref, fanout.Options{EchoActor: true}); err != nil {
			h.logger.ErrorContext(ctx, "event sync failed", "event_id", event.ID, "error", err)
		}
		return envelope.Success("Event Created", map[string]any{"event": event}, req.RequestID), nil
	})
}

// GetEvent returns one event with its associations
func (h *EventHandler) GetEvent(c echo.Context) error {
	requestID := c.QueryParam("request_id")
	return respond(c, requestID, func() (envelope.Envelope, error) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			return envelope.Envelope{}, envelope.NewNotFound("Event not found")
		}
		event, err := h.eventRepository.GetEventByID(c.Request().Context(), uint(id))
		if errors.Is(err, repositories.ErrNotFound) {
			return envelope.Envelope{}, envelope.NewNotFound("Event not found")
		}
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not load event", err)
		}
		return envelope.Success("Event details", map[string]any{"event": event}, requestID), nil
	})
}

// ListEvents returns the four cohorts of a direction, or a flat search
func (h *EventHandler) ListEvents(c echo.Context) error {
	req, err := h.listRequest(c)
	if err != nil {
		return c.JSON(http.StatusOK, envelope.Failure(err, req.RequestID))
	}
	return c.JSON(http.StatusOK, h.listing.List(c.Request().Context(), req))
}

// ListEventsHorizontal returns a single cohort selected by list_type, or a flat search
func (h *EventHandler) ListEventsHorizontal(c echo.Context) error {
	req, err := h.listRequest(c)
	if err != nil {
		return c.JSON(http.StatusOK, envelope.Failure(err, req.RequestID))
	}
	return c.JSON(http.StatusOK, h.listing.Cohort(c.Request().Context(), req))
}

func (h *EventHandler) listRequest(c echo.Context) (listing.Request, error) {
	req := listing.Request{
		RequestID: c.QueryParam("request_id"),
		Type:      c.QueryParam("type"),
		ListType:  c.QueryParam("list_type"),
		Page:      listing.ParsePage(c.QueryParam("page")),
		PerPage:   listing.ParsePerPage(c.QueryParam("per_page"), h.listing.PerPage()),
	}
	filter, err := listing.ParseFilter(filterParams(c), h.listing.Location())
	if err != nil {
		return req, envelope.NewValidation("invalid filter", map[string][]string{"date": {err.Error()}})
	}
	req.Filter = filter
	return req, nil
}

func filterParams(c echo.Context) listing.FilterParams {
	return listing.FilterParams{
		Keyword:    c.QueryParam("keyword"),
		Date:       c.QueryParam("date"),
		Location:   c.QueryParam("location"),
		Radius:     c.QueryParam("radius"),
		Latitude:   c.QueryParam("latitude"),
		Longitude:  c.QueryParam("longitude"),
		CategoryID: c.QueryParam("category_id"),
		IsPaid:     c.QueryParam("is_paid"),
	}
}
