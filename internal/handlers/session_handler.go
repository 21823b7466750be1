package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/hooly/backend/internal/envelope"
	"github.com/anonto42/hooly/backend/internal/middleware"
	"github.com/anonto42/hooly/backend/internal/models"
	"github.com/anonto42/hooly/backend/internal/repositories"
)

// SessionHandler lets the connection layer register live sessions
type SessionHandler struct {
	sessionRepository repositories.SessionRepository
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(sessionRepo repositories.SessionRepository) *SessionHandler {
	return &SessionHandler{sessionRepository: sessionRepo}
}

// RegisterSessionRoutes registers session routes
func (h *SessionHandler) RegisterSessionRoutes(g *echo.Group) {
	g.POST("/sessions", h.OpenSession)
	g.DELETE("/sessions/:session_id", h.CloseSession)
}

type openSessionRequest struct {
	RequestID string `json:"request_id"`
	models.OpenSession
}

// OpenSession registers a session of the current user watching a content item
func (h *SessionHandler) OpenSession(c echo.Context) error {
	claims, ok := middleware.Claims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req openSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	req.UserID = claims.UserID

	return respond(c, req.RequestID, func() (envelope.Envelope, error) {
		if err := validate(c, &req.OpenSession); err != nil {
			return envelope.Envelope{}, err
		}
		if err := h.sessionRepository.OpenSession(c.Request().Context(), req.OpenSession); err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not open session", err)
		}
		return envelope.Success("Session opened", map[string]any{"session": req.OpenSession}, req.RequestID), nil
	})
}

// CloseSession removes a session
func (h *SessionHandler) CloseSession(c echo.Context) error {
	requestID := c.QueryParam("request_id")
	return respond(c, requestID, func() (envelope.Envelope, error) {
		if err := h.sessionRepository.CloseSession(c.Request().Context(), c.Param("session_id")); err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not close session", err)
		}
		return envelope.Success("Session closed", nil, requestID), nil
	})
}
