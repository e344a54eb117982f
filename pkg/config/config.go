package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Backend  BackendConfig
	Gemini   GeminiConfig
	Groq     GroqConfig
	Agent    AgentConfig
}

// ServerConfig holds record-keeping API server configuration
type ServerConfig struct {
	Host   string
	Port   int
	APIKey string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
	SSLMode  string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// BackendConfig holds the persistence API endpoint used by the delivery layer
type BackendConfig struct {
	URL    string
	APIKey string
}

// GeminiConfig holds Gemini provider configuration
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GroqConfig holds Groq provider configuration
type GroqConfig struct {
	APIKey string
	Model  string
}

// AgentConfig holds pipeline agent configuration
type AgentConfig struct {
	// ProviderPriority is the ordered failover list of provider names.
	ProviderPriority []string
	// ForceProvider bypasses failover ordering when set.
	ForceProvider string
	// SyncCron is the cron expression for the periodic sync run.
	SyncCron string
	Env      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Server: ServerConfig{
			Host:   getEnv("SERVER_HOST", "0.0.0.0"),
			Port:   getEnvAsInt("SERVER_PORT", 8080),
			APIKey: getEnv("AGENT_API_KEY", ""),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Database: getEnv("DB_NAME", "assignment_solver"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Backend: BackendConfig{
			URL:    getEnv("BACKEND_API_URL", "http://localhost:8080"),
			APIKey: getEnv("BACKEND_API_KEY", ""),
		},
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		},
		Groq: GroqConfig{
			APIKey: getEnv("GROQ_API_KEY", ""),
			Model:  getEnv("GROQ_MODEL", "llama-3.1-70b-versatile"),
		},
		Agent: AgentConfig{
			ProviderPriority: getEnvAsSlice("LLM_PROVIDER_PRIORITY", []string{"gemini", "groq"}),
			ForceProvider:    getEnv("LLM_FORCE_PROVIDER", ""),
			SyncCron:         getEnv("SYNC_SCHEDULE_CRON", "0 8 * * *"),
			Env:              getEnv("APP_ENV", "development"),
		},
	}, nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *DatabaseConfig) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsSlice retrieves a comma-separated environment variable as a slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
