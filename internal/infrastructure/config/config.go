// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string
	LogLevel   string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// PostgreSQL
	PostgresURI string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Gmail
	GmailClientID     string
	GmailClientSecret string
	GmailRefreshToken string
	GmailSender       string

	// OpenAI
	OpenAIAPIKey string
	OpenAIModel  string

	// Calendar sync
	CalendarWebhookURL   string
	CalendarWebhookToken string

	// Scheduling
	ReminderPollInterval time.Duration

	// Billing rates (cents per hour)
	FlightInstructionRateCents    int64
	GroundInstructionRateCents    int64
	SimulatorInstructionRateCents int64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		PostgresURI: getEnv("POSTGRES_DSN", "postgres://localhost:5432/trainops"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "trainops"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),
		GmailSender:       getEnv("GMAIL_SENDER", "operations@trainops.dev"),

		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o"),

		CalendarWebhookURL:   getEnv("CALENDAR_WEBHOOK_URL", ""),
		CalendarWebhookToken: getEnv("CALENDAR_WEBHOOK_TOKEN", ""),

		ReminderPollInterval: time.Duration(getEnvAsInt("REMINDER_POLL_INTERVAL", 300)) * time.Second,

		FlightInstructionRateCents:    int64(getEnvAsInt("FLIGHT_RATE_CENTS", 7500)),
		GroundInstructionRateCents:    int64(getEnvAsInt("GROUND_RATE_CENTS", 6000)),
		SimulatorInstructionRateCents: int64(getEnvAsInt("SIMULATOR_RATE_CENTS", 6500)),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
