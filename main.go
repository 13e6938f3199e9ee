package main

import (
	"log"
	"os"
	"strconv"

	"app/config"
	"app/database"
	"app/engine"
	"app/ephemeris"
	"app/handlers"
	"app/routes"
	"app/timemode"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	// Load configuration
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	clientID := os.Getenv("API_CLIENT_ID")
	if clientID == "" {
		log.Fatal("API_CLIENT_ID is not set")
	}
	passwordHash := os.Getenv("API_PASSWORD_HASH")
	if passwordHash == "" {
		log.Fatal("API_PASSWORD_HASH is not set")
	}

	engineVersion := os.Getenv("ENGINE_VERSION")
	if engineVersion == "" {
		engineVersion = engine.VersionTimeAdaptive
	}

	pastThreshold := timemode.DefaultPastThresholdDays
	if v := os.Getenv("PAST_THRESHOLD_DAYS"); v != "" {
		pastThreshold, err = strconv.ParseFloat(v, 64)
		if err != nil {
			log.Fatalf("Invalid PAST_THRESHOLD_DAYS: %v", err)
		}
	}

	// Set up the application configuration
	config.AppConfig.JWTSecret = jwtSecret
	config.AppConfig.APIClientID = clientID
	config.AppConfig.APIPasswordHash = passwordHash
	config.AppConfig.EngineVersion = engineVersion
	config.AppConfig.PastThresholdDays = pastThreshold

	// Optional ephemeris cache store. Without it the adapter runs pure-compute.
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL != "" {
		database.Connect(databaseURL)
		defer database.Close()
	} else {
		log.Println("DATABASE_URL not set, ephemeris cache disabled")
	}

	// Wire the ephemeris provider and the scoring engine.
	provider := ephemeris.NewCachedProvider(ephemeris.NewMeeusProvider(), database.GetDB())
	scoringEngine, err := engine.New(engineVersion, engine.Config{
		Provider:          provider,
		PastThresholdDays: pastThreshold,
	})
	if err != nil {
		log.Fatalf("Failed to initialize scoring engine: %v", err)
	}
	log.Printf("🚀 [ENGINE] Using %q (available: %v)", scoringEngine.Version(), engine.Versions())

	handlers.Setup(scoringEngine, provider)

	app := fiber.New()

	// Add CORS middleware
	app.Use(cors.New())

	// Setup routes
	routes.SetupRoutes(app)

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	log.Fatal(app.Listen(":" + port))
}
