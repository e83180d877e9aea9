package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/KushalZanzari/neuroq-backend/internal/api/http/handlers"
	"github.com/KushalZanzari/neuroq-backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Analyze        *handlers.AnalyzeHandler
	CheckIn        *handlers.CheckInHandler
	Chat           *handlers.ChatHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	authGroup.Put("/update-profile", cfg.AuthMiddleware.Handle, cfg.Auth.UpdateProfile)

	analyzeGroup := app.Group("/analyze", cfg.AuthMiddleware.Handle)
	analyzeGroup.Post("/", cfg.Analyze.Analyze)

	checkinGroup := app.Group("/checkin", cfg.AuthMiddleware.Handle)
	checkinGroup.Post("/", cfg.CheckIn.Submit)
	checkinGroup.Get("/", cfg.CheckIn.History)
	checkinGroup.Get("/stats", cfg.CheckIn.Stats)
	checkinGroup.Get("/recent", cfg.CheckIn.Recent)
	checkinGroup.Post("/save", cfg.CheckIn.Save)
	checkinGroup.Delete("/delete/:id", cfg.CheckIn.Delete)

	chatGroup := app.Group("/chat", cfg.AuthMiddleware.Handle)
	chatGroup.Post("/", cfg.Chat.Chat)

	languageGroup := app.Group("/language")
	languageGroup.Post("/detect-language", cfg.Chat.DetectLanguage)
}
