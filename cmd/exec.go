package cmd

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"

	"ticketsmaster/config"
	"ticketsmaster/handlers"
	"ticketsmaster/internal/realtime"
	_ "ticketsmaster/migrations"
	"ticketsmaster/monitoring"
	"ticketsmaster/security"
	"ticketsmaster/services"
	"ticketsmaster/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Default to serving on the configured port when no CLI command is given
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve", "--http=0.0.0.0:"+cfg.Port)
	}

	// Initialize Redis (login rate limiting only; fails open when absent)
	redisClient := utils.NewRedisClient(cfg.RedisURL)
	defer redisClient.Close()

	// Initialize the realtime notifier
	notifier := realtime.NewNotifier(cfg.PubNubPublishKey, cfg.PubNubSubscribeKey, cfg.PubNubSecretKey)

	// Initialize services
	authService := services.NewAuthService(app, cfg)
	eventService := services.NewEventService(app, notifier)
	userService := services.NewUserService(app, cfg)
	paymentService := services.NewPaymentService(app)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	eventHandler := handlers.NewEventHandler(eventService)
	adminHandler := handlers.NewAdminHandler(userService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)

	mw := handlers.NewMiddleware(authService)
	limiter := security.NewRateLimiter(redisClient, cfg.LoginRateLimit, cfg.LoginRateWindow)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	if cfg.EnableMetrics {
		monitoring.StartServer(cfg.MetricsPort)
	}

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		ctx := context.Background()

		// Seed default data before accepting traffic
		if err := eventService.SeedIfEmpty(ctx); err != nil {
			slog.Error("seed events", "error", err)
		}
		if err := userService.EnsureDefaultAdmin(ctx); err != nil {
			slog.Error("create default admin", "error", err)
		}

		track := monitoring.TrackRoute

		// Auth endpoints
		e.Router.POST("/api/users/register",
			track("POST", "/api/users/register", authHandler.Register))
		e.Router.POST("/api/users/login",
			track("POST", "/api/users/login", limiter.LimitLogin(authHandler.Login)))
		e.Router.POST("/api/admin/login",
			track("POST", "/api/admin/login", limiter.LimitLogin(authHandler.AdminLogin)))
		e.Router.POST("/api/users/payment",
			track("POST", "/api/users/payment", paymentHandler.SavePaymentMethod))

		// Event endpoints
		e.Router.GET("/api/events",
			track("GET", "/api/events", eventHandler.List))
		e.Router.POST("/api/events",
			track("POST", "/api/events", eventHandler.Create))
		e.Router.GET("/api/events/{id}",
			track("GET", "/api/events/{id}", eventHandler.Get))
		e.Router.PUT("/api/events/{id}",
			track("PUT", "/api/events/{id}", mw.RequireAdmin(eventHandler.Update)))
		e.Router.DELETE("/api/events/{id}",
			track("DELETE", "/api/events/{id}", mw.RequireAdmin(eventHandler.Delete)))
		e.Router.POST("/api/events/reset",
			track("POST", "/api/events/reset", mw.RequireAdmin(eventHandler.Reset)))
		e.Router.POST("/api/events/{id}/purchase",
			track("POST", "/api/events/{id}/purchase", mw.RequireAuth(eventHandler.Purchase)))

		// Admin endpoints
		e.Router.GET("/api/admin/users",
			track("GET", "/api/admin/users", mw.RequireAdmin(adminHandler.ListUsers)))
		e.Router.DELETE("/api/admin/users/{id}",
			track("DELETE", "/api/admin/users/{id}", mw.RequireAdmin(adminHandler.DeleteUser)))

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if err := utils.RedisHealthCheck(redisClient); err != nil {
				return e.JSON(http.StatusServiceUnavailable, map[string]string{
					"status": "degraded",
					"error":  err.Error(),
				})
			}
			return e.JSON(http.StatusOK, map[string]string{"status": "healthy"})
		})

		log.Println("Server routes registered")

		return e.Next()
	})

	// Start server
	return app.Start()
}
