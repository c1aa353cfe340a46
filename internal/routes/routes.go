package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/moodlog-app/moodlog-backend/internal/config"
	"github.com/moodlog-app/moodlog-backend/internal/handlers"
	"github.com/moodlog-app/moodlog-backend/internal/insights"
	"github.com/moodlog-app/moodlog-backend/internal/middleware"
	"github.com/moodlog-app/moodlog-backend/internal/moods"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	moodHandler *moods.Handler,
	insightHandler *insights.Handler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)

	// Protected auth routes
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	api.Get("/auth/me", middleware.JWTProtected(cfg), authHandler.Me)
	api.Delete("/auth/account", middleware.JWTProtected(cfg), authHandler.DeleteAccount)

	// Mood entries (JWT required)
	moodsGroup := api.Group("/moods", middleware.JWTProtected(cfg))
	moodsGroup.Post("/", moodHandler.Create)
	moodsGroup.Get("/recent", moodHandler.Recent)
	moodsGroup.Get("/stats", moodHandler.Stats)
	moodsGroup.Get("/export", moodHandler.ExportAll)
	moodsGroup.Delete("/", moodHandler.DeleteAll)

	// Insights (JWT required)
	insightsGroup := api.Group("/insights", middleware.JWTProtected(cfg))
	insightsGroup.Get("/", insightHandler.GetSummary)
	insightsGroup.Get("/suggestions", insightHandler.GetSuggestions)
}
