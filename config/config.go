package config

// Config struct holds application configuration
// This is a simple way to make config accessible globally.
// A more advanced approach might use dependency injection.
type Config struct {
	JWTSecret         string
	APIClientID       string
	APIPasswordHash   string // bcrypt hash of the API client password
	EngineVersion     string
	PastThresholdDays float64
}

// AppConfig holds the application-wide configuration
var AppConfig Config
