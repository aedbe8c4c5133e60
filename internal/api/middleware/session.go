package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	apperrors "github.com/estudai/estudai/internal/errors"
	"github.com/estudai/estudai/internal/models"
	"github.com/estudai/estudai/internal/storage"
)

const userKey = "user"

// RequireSession resolves the bearer token to a user and stores it on the
// request context. Missing, unknown and expired tokens get a 401.
func RequireSession(auth storage.AuthRemote) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			user, err := auth.CurrentUser(c.Request().Context(), token)
			if err != nil {
				if apperrors.Is(err, apperrors.ErrUnauthenticated) {
					return echo.NewHTTPError(http.StatusUnauthorized, "session expired or invalid")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "failed to resolve session")
			}

			c.Set(userKey, user)
			return next(c)
		}
	}
}

// User returns the user stored by RequireSession.
func User(c echo.Context) (models.User, bool) {
	user, ok := c.Get(userKey).(models.User)
	return user, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
