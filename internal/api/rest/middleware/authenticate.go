package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/okonst/portfolio-server/internal/logger"
	"github.com/okonst/portfolio-server/internal/model"
)

// TokenParser validates access tokens and yields the claimed identity.
type TokenParser interface {
	ParseAccessToken(token string) (model.Identity, error)
}

// Authenticate validates bearer tokens and injects the identity into the
// request context. Requests without an Authorization header pass through
// anonymously; owner-scoped services reject them at the RequireUserID choke
// point, and route groups can harden with RequireAuth.
type Authenticate struct {
	tokens TokenParser
	logger *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenParser, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, logger: logger}
}

// Middleware parses the Authorization header and, on a valid token, carries
// the identity on the request context.
func (m *Authenticate) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			if tokenString == header || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
			}

			identity, err := m.tokens.ParseAccessToken(tokenString)
			if err != nil {
				m.logger.Debug("Authenticate middleware: token rejected", "error", err.Error())
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
			}

			ctx := model.WithIdentity(c.Request().Context(), identity)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// RequireAuth rejects requests that did not present a valid token.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !model.IsAuthenticated(c.Request().Context()) {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			return next(c)
		}
	}
}

// RequireRole rejects authenticated callers missing the given role.
func RequireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := model.IdentityFromContext(c.Request().Context())
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			if !identity.HasRole(role) {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient role")
			}
			return next(c)
		}
	}
}
