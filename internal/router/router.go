// Package router wires handlers and middleware onto an echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/iliyamo/cinema-seat-editor/internal/config"
	"github.com/iliyamo/cinema-seat-editor/internal/handler"
	"github.com/iliyamo/cinema-seat-editor/internal/middleware"
	"github.com/iliyamo/cinema-seat-editor/internal/model"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth   *handler.AuthHandler
	Rooms  *handler.RoomHandler
	Editor *handler.EditorHandler
	Movies *handler.MovieHandler
}

// Options carries the settings of the optional Redis backed middleware.
// A nil Redis client disables rate limiting and response caching.
type Options struct {
	JWTSecret     string
	Redis         *redis.Client
	RateLimit     config.RateLimitConfig
	ResponseCache config.ResponseCacheConfig
	Log           *zap.Logger
}

// New builds the echo instance with all routes registered.
func New(h Handlers, opt Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Use(middleware.RequestID(), middleware.AccessLog(opt.Log), middleware.Recover(opt.Log))

	RegisterPublic(e, h, opt)
	RegisterAuth(e, h.Auth, opt.JWTSecret)
	RegisterRooms(e, h.Rooms, opt.JWTSecret)
	RegisterEditor(e, h.Editor, opt)
	return e
}

// RegisterPublic mounts routes that need no authentication.
func RegisterPublic(e *echo.Echo, h Handlers, opt Options) {
	e.GET("/healthz", handler.Health)
	e.GET("/v1/rooms/:id/layout", h.Rooms.Layout)
	e.GET("/v1/movies", h.Movies.List, middleware.ResponseCache(opt.ResponseCache, opt.Redis, opt.Log))
}

// RegisterAuth mounts token endpoints under /v1/auth and /v1/me.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	e.GET("/v1/me", a.Me, middleware.JWTAuth(jwtSecret))
}

// RegisterRooms mounts room management for admins and operators.
func RegisterRooms(e *echo.Echo, r *handler.RoomHandler, jwtSecret string) {
	g := e.Group("/v1/rooms",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleOperator),
	)
	g.POST("", r.Create)
	g.GET("", r.List)
	g.GET("/:id", r.Get)
	g.DELETE("/:id", r.Delete)
}

// RegisterEditor mounts editing sessions for admins and operators.
// Mutating routes are rate limited.
func RegisterEditor(e *echo.Echo, h *handler.EditorHandler, opt Options) {
	auth := []echo.MiddlewareFunc{
		middleware.JWTAuth(opt.JWTSecret),
		middleware.RequireRole(model.RoleAdmin, model.RoleOperator),
	}
	limit := middleware.RateLimit(opt.RateLimit, opt.Redis, opt.Log)

	e.POST("/v1/rooms/:id/editor", h.Open, append(auth, limit)...)

	g := e.Group("/v1/editor/:sid", auth...)
	g.GET("", h.State)
	g.GET("/preview", h.Preview)

	m := g.Group("", limit)
	m.POST("/seats/click", h.ClickSeat)
	m.PUT("/rows/:row/type", h.SetRowType)
	m.POST("/selection/apply", h.ApplySelection)
	m.DELETE("/selection", h.ClearSelection)
	m.POST("/mode/toggle", h.ToggleMode)
	m.POST("/actions", h.RequestAction)
	m.POST("/actions/confirm", h.ConfirmAction)
	m.POST("/actions/cancel", h.CancelAction)
	m.POST("/save", h.Save)
	m.DELETE("", h.Back)
}
