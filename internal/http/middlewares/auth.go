package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"taskboard.com/taskboard/internal/constants"
	model "taskboard.com/taskboard/internal/models"
)

const actorContextKey = "actor"

// Claims is the token shape the identity provider issues: the subject
// is the user id, role is one of the board roles.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Auth verifies the bearer token and stores the resulting Actor on the
// request context. Everything below the handler takes the actor as an
// explicit parameter.
func Auth(secret string) echo.MiddlewareFunc {
	key := []byte(secret)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			tokenString := strings.TrimPrefix(header, "Bearer ")

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, errors.New("unexpected signing method")
				}
				return key, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			role, ok := constants.ParseRole(claims.Role)
			if !ok || claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(actorContextKey, model.Actor{ID: claims.Subject, Role: role})
			return next(c)
		}
	}
}

// ActorFrom returns the authenticated actor, or the zero Actor when
// the middleware did not run. Services reject the zero actor.
func ActorFrom(c echo.Context) model.Actor {
	if actor, ok := c.Get(actorContextKey).(model.Actor); ok {
		return actor
	}
	return model.Actor{}
}
