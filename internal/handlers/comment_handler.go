package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/hooly/backend/internal/envelope"
	"github.com/anonto42/hooly/backend/internal/fanout"
	"github.com/anonto42/hooly/backend/internal/models"
	"github.com/anonto42/hooly/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	userRepository    repositories.UserRepository
	targets           fanout.Fetchers
	engine            Fanouter
	logger            *slog.Logger
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, userRepo repositories.UserRepository, targets fanout.Fetchers, engine Fanouter, logger *slog.Logger) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		userRepository:    userRepo,
		targets:           targets,
		engine:            engine,
		logger:            logger,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comments", h.CreateComment)
}

// CreateComment comments on an event or a post and notifies everyone involved
func (h *CommentHandler) CreateComment(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	return respond(c, req.RequestID, func() (envelope.Envelope, error) {
		ctx := c.Request().Context()
		if err := validate(c, &req); err != nil {
			return envelope.Envelope{}, err
		}
		ref := fanout.Ref{Type: req.MediaType, ID: req.MediaID}
		if err := requireTarget(ctx, h.targets, ref); err != nil {
			return envelope.Envelope{}, err
		}

		comment := &models.Comment{
			CommentableID:   req.MediaID,
			CommentableType: req.MediaType,
			MemberProfileID: user.ProfileID,
			Comment:         req.Comment,
		}
		if err := h.commentRepository.CreateComment(ctx, comment); err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not save comment", err)
		}

		if _, err := h.engine.Fanout(ctx, *user, ref, fanout.Options{
			Action: fanout.ActionComment,
			Extra:  map[string]any{"comment": comment},
		}); err != nil {
			h.logger.ErrorContext(ctx, "comment sync failed", "media", ref.String(), "error", err)
		}
		return envelope.Success("Comment Created", map[string]any{"comment": comment}, req.RequestID), nil
	})
}
