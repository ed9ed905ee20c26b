package middleware

import (
	"strings"
	"time"

	"gestimmo-api/core/config"
	"gestimmo-api/core/constants"
	"gestimmo-api/core/controller"
	"gestimmo-api/core/errors"
	"gestimmo-api/core/logger"
	"gestimmo-api/core/utils"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Middleware bundles the request middlewares shared by all modules.
type Middleware struct {
	cfg *config.Config
}

func NewMiddleware(cfg *config.Config) *Middleware {
	return &Middleware{cfg: cfg}
}

// AuthMiddleware validates the bearer token and stores its claims in the
// request context.
func (m *Middleware) AuthMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return controller.NewErrorResponse(401, errors.ErrMissingAuthorizationHeader, "Missing authorization header")
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return controller.NewErrorResponse(401, errors.ErrInvalidTokenFormat, "Invalid authorization header format")
			}

			claims, err := utils.ParseToken(parts[1], m.cfg.JWT.Secret)
			if err != nil {
				code := errors.ErrUnauthorized
				msg := "Invalid token"
				if err == jwt.ErrTokenExpired || strings.Contains(err.Error(), "expired") {
					code = errors.ErrTokenExpired
					msg = "Token expired"
				}
				return controller.NewErrorResponse(401, code, msg)
			}

			c.Set(constants.ContextTokenData, claims)
			return next(c)
		}
	}
}

// RequestLogger logs one line per request with latency and status.
func (m *Middleware) RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("HTTP:Request",
				"method", c.Request().Method,
				"path", c.Request().URL.Path,
				"status", c.Response().Status,
				"latency_ms", time.Since(start).Milliseconds(),
			)
			return err
		}
	}
}
