package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"sheetboard/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	AI       AIConfig
	Server   ServerConfig
	Import   ImportConfig
	LogLevel string
}

// DatabaseConfig holds database connection settings.
// An empty URL selects the in-memory board store.
type DatabaseConfig struct {
	URL string
}

// UsesMemoryStore reports whether no database is configured
func (d DatabaseConfig) UsesMemoryStore() bool {
	return strings.TrimSpace(d.URL) == ""
}

// AIConfig holds the external classifier settings
type AIConfig struct {
	OpenAIKey   string
	Model       string
	BaseURL     string
	Timeout     time.Duration
	MaxTokens   int
	Temperature float64
	PromptsDir  string
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port        string
	APIPort     string
	GinMode     string
	CORSOrigins []string
}

// ImportConfig holds upload and import defaults
type ImportConfig struct {
	MaxUploadBytes int64
	DefaultUserID  string
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: DatabaseConfig{URL: os.Getenv("DATABASE_URL")},
		AI:       *loadAIConfig(),
		Server:   *loadServerConfig(),
		Import:   *loadImportConfig(),
		LogLevel: getEnvOrDefault("LOG_LEVEL", "INFO"),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadAIConfig() *AIConfig {
	return &AIConfig{
		OpenAIKey:   os.Getenv("OPENAI_API_KEY"),
		Model:       getEnvOrDefault("LLM_MODEL", "gpt-4o-mini"),
		BaseURL:     getEnvOrDefault("LLM_BASE_URL", "https://api.openai.com/v1"),
		Timeout:     time.Duration(getEnvIntOrDefault("LLM_TIMEOUT_SECONDS", 60)) * time.Second,
		MaxTokens:   getEnvIntOrDefault("MAX_TOKENS", 2000),
		Temperature: getEnvFloatOrDefault("TEMPERATURE", 0.2),
		PromptsDir:  os.Getenv("PROMPTS_DIR"),
	}
}

func loadServerConfig() *ServerConfig {
	return &ServerConfig{
		Port:        getEnvOrDefault("PORT", "8080"),
		APIPort:     getEnvOrDefault("API_PORT", "8081"),
		GinMode:     getEnvOrDefault("GIN_MODE", "debug"),
		CORSOrigins: getEnvListOrDefault("CORS_ORIGINS", []string{"*"}),
	}
}

func loadImportConfig() *ImportConfig {
	return &ImportConfig{
		MaxUploadBytes: int64(getEnvIntOrDefault("MAX_UPLOAD_MB", 50)) * 1024 * 1024,
		DefaultUserID:  os.Getenv("DEFAULT_USER_ID"),
	}
}

func validateConfig(config *Config) error {
	for name, port := range map[string]string{"PORT": config.Server.Port, "API_PORT": config.Server.APIPort} {
		if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
			return errors.ConfigInvalid(name + " must be a valid TCP port")
		}
	}
	if config.Import.MaxUploadBytes <= 0 {
		return errors.ConfigInvalid("MAX_UPLOAD_MB must be positive")
	}
	if config.AI.Timeout <= 0 {
		return errors.ConfigInvalid("LLM_TIMEOUT_SECONDS must be positive")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
