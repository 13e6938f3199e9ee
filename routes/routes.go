package routes

import (
	"app/handlers"
	"app/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	app.Get("/health", handlers.HandleHealth)

	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", handlers.HandleLogin)

	// --- Prediction Routes ---
	predictions := api.Group("/predictions", middleware.JWTMiddleware)
	predictions.Post("/score", handlers.HandlePredictionScore)

	// --- Chart & Timeline Routes ---
	charts := api.Group("/charts", middleware.JWTMiddleware)
	charts.Get("/birth", handlers.HandleGetBirthChart)

	dashas := api.Group("/dashas", middleware.JWTMiddleware)
	dashas.Get("/timeline", handlers.HandleGetDashaTimeline)

	// --- Localization ---
	api.Get("/labels", handlers.HandleGetLabels)
}
