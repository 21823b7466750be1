package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/hooly/backend/internal/envelope"
	"github.com/anonto42/hooly/backend/internal/fanout"
	"github.com/anonto42/hooly/backend/internal/listing"
	"github.com/anonto42/hooly/backend/internal/models"
	"github.com/anonto42/hooly/backend/internal/repositories"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository repositories.LikeRepository
	userRepository repositories.UserRepository
	targets        fanout.Fetchers
	engine         Fanouter
	perPage        int
	logger         *slog.Logger
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, userRepo repositories.UserRepository, targets fanout.Fetchers, engine Fanouter, perPage int, logger *slog.Logger) *LikeHandler {
	return &LikeHandler{
		likeRepository: likeRepo,
		userRepository: userRepo,
		targets:        targets,
		engine:         engine,
		perPage:        perPage,
		logger:         logger,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/likes", h.ToggleLike)
	g.GET("/likes", h.ListLikes)
}

// ToggleLike likes or dislikes an event or a post and notifies everyone involved
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.ToggleLikeRequest
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

		like := &models.Like{
			LikableID:       req.MediaID,
			LikableType:     req.MediaType,
			MemberProfileID: user.ProfileID,
			IsLike:          *req.IsLike,
		}
		if err := h.likeRepository.UpsertLike(ctx, like); err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not save like", err)
		}
		count, err := h.likeRepository.CountLikes(ctx, req.MediaType, req.MediaID)
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not count likes", err)
		}

		view := likeView(*like, user.ToCompact(), count)
		if _, err := h.engine.Fanout(ctx, *user, ref, fanout.Options{
			Action: fanout.ActionLike,
			Extra:  map[string]any{"like": view},
		}); err != nil {
			h.logger.ErrorContext(ctx, "like sync failed", "media", ref.String(), "error", err)
		}

		message := "Disliked"
		if like.IsLike {
			message = "Liked"
		}
		return envelope.Success(message, map[string]any{"like": view}, req.RequestID), nil
	})
}

// ListLikes returns a page of the positive reactions on a target
func (h *LikeHandler) ListLikes(c echo.Context) error {
	requestID := c.QueryParam("request_id")
	return respond(c, requestID, func() (envelope.Envelope, error) {
		ctx := c.Request().Context()
		ref := fanout.Ref{Type: models.MediaType(c.QueryParam("media_type")), ID: c.QueryParam("media_id")}
		if !ref.Type.Valid() || ref.ID == "" {
			return envelope.Envelope{}, envelope.NewValidation("invalid request", map[string][]string{
				"media_type": {"must be Event or Post"},
				"media_id":   {"can't be blank"},
			})
		}

		page := listing.ParsePage(c.QueryParam("page"))
		perPage := listing.ParsePerPage(c.QueryParam("per_page"), h.perPage)
		total, err := h.likeRepository.CountLikes(ctx, ref.Type, ref.ID)
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not count likes", err)
		}
		meta := listing.Paginate(page, perPage, total)
		if meta.Beyond() {
			env := envelope.Success("Likes", map[string]any{"likes": []models.LikeView{}}, requestID)
			return env.WithPaging(meta), nil
		}
		likes, err := h.likeRepository.ListLikes(ctx, ref.Type, ref.ID, meta.Offset(), meta.PerPage)
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not load likes", err)
		}

		profileIDs := make([]uint, 0, len(likes))
		for _, l := range likes {
			profileIDs = append(profileIDs, l.MemberProfileID)
		}
		users, err := h.userRepository.UsersByProfileIDs(ctx, profileIDs)
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not load profiles", err)
		}
		byProfile := make(map[uint]models.UserCompact, len(users))
		for _, u := range users {
			byProfile[u.ProfileID] = u.ToCompact()
		}

		views := make([]models.LikeView, 0, len(likes))
		for _, l := range likes {
			views = append(views, likeView(l, byProfile[l.MemberProfileID], total))
		}
		env := envelope.Success("Likes", map[string]any{"likes": views}, requestID)
		return env.WithPaging(meta), nil
	})
}

func likeView(l models.Like, profile models.UserCompact, count int64) models.LikeView {
	return models.LikeView{
		ID:          l.ID,
		LikableID:   l.LikableID,
		LikableType: l.LikableType,
		IsLike:      l.IsLike,
		Profile:     profile,
		LikesCount:  count,
	}
}
