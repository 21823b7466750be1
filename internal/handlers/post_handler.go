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

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository repositories.PostRepository
	userRepository repositories.UserRepository
	engine         Fanouter
	perPage        int
	logger         *slog.Logger
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, userRepo repositories.UserRepository, engine Fanouter, perPage int, logger *slog.Logger) *PostHandler {
	return &PostHandler{
		postRepository: postRepo,
		userRepository: userRepo,
		engine:         engine,
		perPage:        perPage,
		logger:         logger,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.SearchPosts)
}

// CreatePost creates a post and syncs it to its members
func (h *PostHandler) CreatePost(c echo.Context) error {
	user, err := currentUser(c, h.userRepository)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	return respond(c, req.RequestID, func() (envelope.Envelope, error) {
		ctx := c.Request().Context()
		if err := validate(c, &req); err != nil {
			return envelope.Envelope{}, err
		}

		post := &models.Post{
			MemberProfileID: user.ProfileID,
			Content:         req.Content,
			CategoryID:      req.CategoryID,
			EventID:         req.EventID,
			PostMembers:     uniqueProfiles(req.PostMembers),
		}
		if err := h.postRepository.CreatePost(ctx, post); err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not create post", err)
		}

		ref := fanout.Ref{Type: models.MediaPost, ID: post.ID.Hex()}
		if _, err := h.engine.Fanout(ctx, *user, ref, fanout.Options{EchoActor: true}); err != nil {
			h.logger.ErrorContext(ctx, "post sync failed", "post_id", ref.ID, "error", err)
		}
		return envelope.Success("Post Created", map[string]any{"post": post}, req.RequestID), nil
	})
}

// SearchPosts returns a page of posts filtered by keyword, date and category
func (h *PostHandler) SearchPosts(c echo.Context) error {
	requestID := c.QueryParam("request_id")
	return respond(c, requestID, func() (envelope.Envelope, error) {
		filter, err := listing.ParseFilter(filterParams(c), nil)
		if err != nil {
			return envelope.Envelope{}, envelope.NewValidation("invalid filter", map[string][]string{"date": {err.Error()}})
		}
		page := listing.ParsePage(c.QueryParam("page"))
		perPage := listing.ParsePerPage(c.QueryParam("per_page"), h.perPage)
		offset := int64((page - 1) * perPage)

		posts, total, err := h.postRepository.SearchPosts(c.Request().Context(), filter, offset, int64(perPage))
		if err != nil {
			return envelope.Envelope{}, envelope.NewPersistence("could not load posts", err)
		}
		env := envelope.Success("Post list", map[string]any{"posts": posts}, requestID)
		return env.WithPaging(listing.Paginate(page, perPage, total)), nil
	})
}

func uniqueProfiles(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
