package middleware // middleware contains reusable HTTP middleware for the editor API

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/cinema-seat-editor/internal/utils"
)

// JWTAuth validates a Bearer access token and stores the caller's id and
// role in the context under "user_id" (uint64) and "role" (string).
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			id, _ := claims.UserID()
			c.Set(ctxUserID, id)
			c.Set(ctxRole, claims.Role)
			return next(c)
		}
	}
}
