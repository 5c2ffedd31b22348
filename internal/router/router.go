// Package router wires handlers and middleware onto the Echo instance.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/event-hotel-booking/internal/config"
	"github.com/iliyamo/event-hotel-booking/internal/handler"
	"github.com/iliyamo/event-hotel-booking/internal/middleware"
)

// RegisterRoutes registers routes that require no authentication.
func RegisterRoutes(e *echo.Echo) {
	// For load balancers and monitoring.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers the auth endpoints: the /v1/auth group issues and
// exchanges tokens, while /v1/me sits behind the JWT middleware.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	g.POST("/refresh", a.Refresh)
	g.POST("/logout", a.Logout)

	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.GET("/me", a.Me)
	auth.POST("/logout-all", a.LogoutAll)
}

// RegisterPublic registers the unauthenticated hotel catalogue behind the
// Redis response cache.
func RegisterPublic(e *echo.Echo, h *handler.HotelHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	cache := middleware.NewRedisCache(cacheCfg, rdb)
	e.GET("/v1/hotels", h.List, cache)
	e.GET("/v1/hotels/:id/rooms", h.ListRooms, cache)
}

// RegisterBooking registers the booking endpoints. All three require a
// valid access token; the mutations additionally pass through the token
// bucket so a single client cannot hammer the reservation path.
func RegisterBooking(e *echo.Echo, b *handler.BookingHandler, jwtSecret string, rlCfg config.RateLimitConfig, rdb *redis.Client) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))

	limit := middleware.NewTokenBucket(rlCfg, rdb)
	g.GET("/booking", b.Get)
	g.POST("/booking", b.Create, limit)
	g.PUT("/booking/:bookingId", b.Update, limit)
}
