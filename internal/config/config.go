package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config structure represents the application configuration
type Config struct {
	Server struct {
		Port string `yaml:"port"`
		Mode string `yaml:"mode"`
	} `yaml:"server"`

	// Backend is the ClassLens REST API every outbound call goes through.
	// One configured base URL, resolved at startup, used everywhere.
	Backend struct {
		BaseURL string `yaml:"base_url"`
		Timeout string `yaml:"timeout"`
	} `yaml:"backend"`

	Session struct {
		CookieName string `yaml:"cookie_name"`
		TTL        string `yaml:"ttl"`
		StateFile  string `yaml:"state_file"`
	} `yaml:"session"`

	Upload struct {
		// AutoCloseDelay is how long the bulk-upload panel stays on a clean
		// success before closing itself.
		AutoCloseDelay string `yaml:"auto_close_delay"`
	} `yaml:"upload"`

	Students struct {
		// PageSize must match the backend's StudentPagination.page_size.
		PageSize int `yaml:"page_size"`
	} `yaml:"students"`

	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
}

// LoadConfig loads configuration from an optional .env file, a YAML file and
// environment variable overrides, in that order.
func LoadConfig(configPath string) (*Config, error) {
	// .env is optional; ignore a missing file
	_ = godotenv.Load()

	config := &Config{}
	setDefaults(config)

	if _, err := os.Stat(configPath); err == nil {
		file, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(file, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	loadFromEnv(config)

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Server.Port = "3000"
	config.Server.Mode = "development"

	config.Backend.BaseURL = "http://127.0.0.1:8000"
	config.Backend.Timeout = "30s"

	config.Session.CookieName = "classlens_session"
	config.Session.TTL = "12h"
	config.Session.StateFile = "sessions.json"

	config.Upload.AutoCloseDelay = "900ms"
	config.Students.PageSize = 25

	config.Logging.Level = "info"
	config.Logging.Format = "json"
}

// loadFromEnv overrides configuration with environment variables
func loadFromEnv(config *Config) {
	config.Server.Port = GetEnv("SERVER_PORT", config.Server.Port)
	config.Server.Mode = GetEnv("SERVER_MODE", config.Server.Mode)
	config.Backend.BaseURL = GetEnv("BACKEND_BASE_URL", config.Backend.BaseURL)
	config.Backend.Timeout = GetEnv("BACKEND_TIMEOUT", config.Backend.Timeout)
	config.Session.CookieName = GetEnv("SESSION_COOKIE_NAME", config.Session.CookieName)
	config.Session.TTL = GetEnv("SESSION_TTL", config.Session.TTL)
	config.Session.StateFile = GetEnv("SESSION_STATE_FILE", config.Session.StateFile)
	config.Upload.AutoCloseDelay = GetEnv("UPLOAD_AUTO_CLOSE_DELAY", config.Upload.AutoCloseDelay)
	config.Students.PageSize = GetEnvAsInt("STUDENTS_PAGE_SIZE", config.Students.PageSize)
	config.Logging.Level = GetEnv("LOG_LEVEL", config.Logging.Level)
	config.Logging.Format = GetEnv("LOG_FORMAT", config.Logging.Format)
}

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	if config.Backend.BaseURL == "" {
		return fmt.Errorf("backend base URL is required")
	}
	parsed, err := url.Parse(config.Backend.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("backend base URL %q is not a valid URL", config.Backend.BaseURL)
	}

	if _, err := time.ParseDuration(config.Backend.Timeout); err != nil {
		return fmt.Errorf("invalid backend timeout format: %w", err)
	}
	if _, err := time.ParseDuration(config.Session.TTL); err != nil {
		return fmt.Errorf("invalid session TTL format: %w", err)
	}
	if _, err := time.ParseDuration(config.Upload.AutoCloseDelay); err != nil {
		return fmt.Errorf("invalid upload auto-close delay format: %w", err)
	}
	if config.Students.PageSize <= 0 {
		return fmt.Errorf("students page size must be positive")
	}

	return nil
}

// BackendTimeout returns the backend request timeout as a duration.
func (c *Config) BackendTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Backend.Timeout)
	return d
}

// SessionTTL returns the session lifetime as a duration.
func (c *Config) SessionTTL() time.Duration {
	d, _ := time.ParseDuration(c.Session.TTL)
	return d
}

// UploadAutoCloseDelay returns the bulk-upload auto-close delay as a duration.
func (c *Config) UploadAutoCloseDelay() time.Duration {
	d, _ := time.ParseDuration(c.Upload.AutoCloseDelay)
	return d
}

// GetEnv gets an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// GetEnvAsInt gets an environment variable as an integer or returns a default value
func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := GetEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// GetEnvAsBool gets an environment variable as a boolean or returns a default value
func GetEnvAsBool(key string, defaultValue bool) bool {
	valueStr := strings.ToLower(GetEnv(key, ""))
	switch valueStr {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}
