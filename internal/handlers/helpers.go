package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/hooly/backend/internal/envelope"
	"github.com/anonto42/hooly/backend/internal/fanout"
	"github.com/anonto42/hooly/backend/internal/middleware"
	"github.com/anonto42/hooly/backend/internal/models"
	"github.com/anonto42/hooly/backend/internal/repositories"
	"github.com/anonto42/hooly/backend/internal/validators"
)

// Fanouter propagates a content change to its audience.
type Fanouter interface {
	Fanout(ctx context.Context, actor models.User, ref fanout.Ref, opts fanout.Options) (fanout.Report, error)
}

// respond runs op and always answers 200 with an envelope; failures and
// panics become status 0 envelopes.
func respond(c echo.Context, requestID string, op func() (envelope.Envelope, error)) error {
	env, err := envelope.Guard(op)
	if err != nil {
		env = envelope.Failure(err, requestID)
	}
	return c.JSON(http.StatusOK, env)
}

// currentUser loads the authenticated account.
func currentUser(c echo.Context, users repositories.UserRepository) (*models.User, error) {
	claims, ok := middleware.Claims(c)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	user, err := users.GetUserByID(c.Request().Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found")
		}
		return nil, echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return user, nil
}

// validate runs the echo validator and converts failures into a validation error.
func validate(c echo.Context, req any) error {
	if err := c.Validate(req); err != nil {
		if fields := validators.FieldErrors(err); fields != nil {
			return envelope.NewValidation("invalid request", fields)
		}
		return envelope.NewValidation(err.Error(), nil)
	}
	return nil
}

// requireTarget reports a NotFound error when ref does not exist.
func requireTarget(ctx context.Context, fetchers fanout.Fetchers, ref fanout.Ref) error {
	fetcher, ok := fetchers[ref.Type]
	if !ok {
		return envelope.NewValidation("invalid media type", map[string][]string{"media_type": {"is not included in the list"}})
	}
	target, err := fetcher.FetchTarget(ctx, ref.ID)
	if err != nil {
		return envelope.NewPersistence("could not load "+ref.Type.Noun(), err)
	}
	if target == nil {
		return envelope.NewNotFound(string(ref.Type) + " not found")
	}
	return nil
}
