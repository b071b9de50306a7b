package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Session  SessionConfig
	API      APIConfig
	Square   SquareConfig
	Campaign CampaignConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type SessionConfig struct {
	Secret string
}

// APIConfig configures the remote campaign backend that owns all durable state.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type SquareConfig struct {
	ApplicationID string
	LocationID    string
	Environment   string // "sandbox" or "production"
}

type CampaignConfig struct {
	ProjectID   int
	GoalAmount  int // campaign goal in cents
	EndDate     time.Time
	CostPerMeal float64 // display units per meal for gift-a-meal purchases
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", "your-secret-key-change-in-production"),
		},
		API: APIConfig{
			BaseURL: getEnv("CAMPAIGN_API_URL", "http://localhost:3000/api"),
			Timeout: time.Duration(getEnvAsInt("CAMPAIGN_API_TIMEOUT_SECONDS", 30)) * time.Second,
		},
		Square: SquareConfig{
			ApplicationID: getEnv("SQUARE_APPLICATION_ID", ""),
			LocationID:    getEnv("SQUARE_LOCATION_ID", ""),
			Environment:   getEnv("SQUARE_ENVIRONMENT", "sandbox"),
		},
		Campaign: CampaignConfig{
			ProjectID:   getEnvAsInt("CAMPAIGN_PROJECT_ID", 1),
			GoalAmount:  getEnvAsInt("CAMPAIGN_GOAL_AMOUNT", 5000000),
			EndDate:     getEnvAsDate("CAMPAIGN_END_DATE", time.Date(2020, time.December, 15, 0, 0, 0, 0, time.UTC)),
			CostPerMeal: getEnvAsFloat("CAMPAIGN_COST_PER_MEAL", 10),
		},
	}

	return config, nil
}

// IsSandbox reports whether payments should go to the sandbox endpoint.
func (c SquareConfig) IsSandbox() bool {
	return c.Environment != "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDate(key string, defaultValue time.Time) time.Time {
	if value := os.Getenv(key); value != "" {
		if t, err := time.Parse("2006-01-02", value); err == nil {
			return t
		}
	}
	return defaultValue
}
