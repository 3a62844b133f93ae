package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	GitHub    GitHubConfig
	Story     StoryConfig
	Scheduler SchedulerConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

// GitHubConfig holds GitHub API configuration
type GitHubConfig struct {
	Token      string
	APIBaseURL string
}

// StoryConfig holds narrative generation configuration
type StoryConfig struct {
	OpenAIAPIKey string
	Model        string
}

// SchedulerConfig holds the refresh/advance intervals and fetch bounds
type SchedulerConfig struct {
	RefreshInterval time.Duration
	AdvanceInterval time.Duration
	CommitPageSize  int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		// .env file is optional, so we don't return error if it doesn't exist
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 120),
		},
		GitHub: GitHubConfig{
			Token:      getEnv("GITHUB_TOKEN", ""),
			APIBaseURL: getEnv("GITHUB_API_BASE_URL", "https://api.github.com"),
		},
		Story: StoryConfig{
			OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
			Model:        getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		},
		Scheduler: SchedulerConfig{
			RefreshInterval: getEnvAsDuration("REFRESH_INTERVAL", 15*time.Minute),
			AdvanceInterval: getEnvAsDuration("ADVANCE_INTERVAL", 5*time.Minute),
			CommitPageSize:  getEnvAsInt("COMMIT_PAGE_SIZE", 5),
		},
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.GitHub.Token == "" {
		return fmt.Errorf("GITHUB_TOKEN is required")
	}
	if c.Scheduler.RefreshInterval <= 0 {
		return fmt.Errorf("REFRESH_INTERVAL must be positive")
	}
	if c.Scheduler.AdvanceInterval <= 0 {
		return fmt.Errorf("ADVANCE_INTERVAL must be positive")
	}
	if c.Scheduler.CommitPageSize < 1 {
		return fmt.Errorf("COMMIT_PAGE_SIZE must be at least 1")
	}
	return nil
}

// GetServerAddress returns the server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getEnvAsInt gets an environment variable as integer with a fallback value
func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getEnvAsDuration gets an environment variable as duration with a fallback value
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}
