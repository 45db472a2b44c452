// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for our application
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Redis    RedisConfig
	Security SecurityConfig
	CMS      CMSConfig
	Square   SquareConfig
	Email    EmailConfig
	Checkout CheckoutConfig
	Logging  LoggingConfig
}

// AppConfig contains application-level configuration
type AppConfig struct {
	Name        string
	Version     string
	Environment string
	Debug       bool
	StoreName   string
	StorePhone  string
	StoreURL    string
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	DB           int
	PoolSize     int
	MinIdleConns int
}

// SecurityConfig contains security-related configuration
type SecurityConfig struct {
	RateLimitPerMinute int
	CORSAllowedOrigins []string
	CORSAllowedMethods []string
	CORSAllowedHeaders []string
	TrustedProxies     []string
}

// CMSConfig contains headless CMS (Sanity) configuration
type CMSConfig struct {
	ProjectID string
	Dataset   string
	APIToken  string
	BaseURL   string
	Timeout   time.Duration
}

// SquareConfig contains Square payment gateway configuration
type SquareConfig struct {
	AccessToken string
	LocationID  string
	Environment string
	BaseURL     string
	Timeout     time.Duration
}

// EmailConfig contains transactional email (Resend) configuration
type EmailConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	ReplyTo   string
}

// CheckoutConfig contains checkout defaults used when the CMS
// checkout settings document is missing or incomplete.
type CheckoutConfig struct {
	FallbackShippingCents int64
	FallbackTaxRate       float64
	MaxBookingWindowDays  int
	Currency              string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found, using environment variables")
	}

	config := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Coral Store Backend"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
			Debug:       getEnvAsBool("APP_DEBUG", true),
			StoreName:   getEnv("STORE_NAME", "Down South Corals"),
			StorePhone:  getEnv("STORE_PHONE", "(205) 719-7314"),
			StoreURL:    getEnv("STORE_URL", "https://downsouthcorals.com"),
		},
		Server: ServerConfig{
			Port:         getEnv("APP_PORT", "8080"),
			ReadTimeout:  getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout: getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Redis: RedisConfig{
			Host:         getEnv("REDIS_HOST", "localhost"),
			Port:         getEnv("REDIS_PORT", "6379"),
			Password:     getEnv("REDIS_PASSWORD", ""),
			DB:           getEnvAsInt("REDIS_DB", 0),
			PoolSize:     getEnvAsInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getEnvAsInt("REDIS_MIN_IDLE_CONNS", 5),
		},
		Security: SecurityConfig{
			RateLimitPerMinute: getEnvAsInt("RATE_LIMIT_PER_MINUTE", 100),
			CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
			CORSAllowedMethods: getEnvAsSlice("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
			CORSAllowedHeaders: getEnvAsSlice("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Accept", "Authorization"}),
			TrustedProxies:     getEnvAsSlice("TRUSTED_PROXIES", []string{}),
		},
		CMS: CMSConfig{
			ProjectID: getEnv("SANITY_PROJECT_ID", ""),
			Dataset:   getEnv("SANITY_DATASET", "production"),
			APIToken:  getEnv("SANITY_API_TOKEN", ""),
			BaseURL:   getEnv("SANITY_BASE_URL", ""),
			Timeout:   getEnvAsDuration("SANITY_TIMEOUT", 15*time.Second),
		},
		Square: SquareConfig{
			AccessToken: getEnv("SQUARE_ACCESS_TOKEN", ""),
			LocationID:  getEnv("SQUARE_LOCATION_ID", ""),
			Environment: getEnv("SQUARE_ENVIRONMENT", "sandbox"),
			BaseURL:     getEnv("SQUARE_BASE_URL", ""),
			Timeout:     getEnvAsDuration("SQUARE_TIMEOUT", 30*time.Second),
		},
		Email: EmailConfig{
			APIKey:    getEnv("RESEND_API_KEY", ""),
			FromEmail: getEnv("FROM_EMAIL", "receipts@downsouthcorals.com"),
			FromName:  getEnv("FROM_NAME", "Down South Corals"),
			ReplyTo:   getEnv("REPLY_TO_EMAIL", ""),
		},
		Checkout: CheckoutConfig{
			FallbackShippingCents: getEnvAsInt64("FALLBACK_SHIPPING_CENTS", 3999),
			FallbackTaxRate:       getEnvAsFloat("FALLBACK_TAX_RATE", 0),
			MaxBookingWindowDays:  getEnvAsInt("MAX_BOOKING_WINDOW_DAYS", 30),
			Currency:              getEnv("STORE_CURRENCY", "USD"),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "debug"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("APP_PORT is required")
	}

	if c.Redis.Host == "" {
		return fmt.Errorf("REDIS_HOST is required")
	}

	if c.CMS.ProjectID == "" && c.CMS.BaseURL == "" {
		return fmt.Errorf("SANITY_PROJECT_ID or SANITY_BASE_URL is required")
	}

	if c.IsProduction() {
		if c.Square.AccessToken == "" {
			return fmt.Errorf("SQUARE_ACCESS_TOKEN is required in production")
		}
		if c.Square.LocationID == "" {
			return fmt.Errorf("SQUARE_LOCATION_ID is required in production")
		}
	}

	return nil
}

// IsDevelopment returns true if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction returns true if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetCMSBaseURL returns the CMS API base URL, deriving it from the
// project id when no explicit override is set.
func (c *Config) GetCMSBaseURL() string {
	if c.CMS.BaseURL != "" {
		return c.CMS.BaseURL
	}
	return fmt.Sprintf("https://%s.api.sanity.io/v2024-01-01", c.CMS.ProjectID)
}

// GetSquareBaseURL returns the Square API base URL for the configured environment
func (c *Config) GetSquareBaseURL() string {
	if c.Square.BaseURL != "" {
		return c.Square.BaseURL
	}
	if c.Square.Environment == "production" {
		return "https://connect.squareup.com/v2"
	}
	return "https://connect.squareupsandbox.com/v2"
}

// Helper functions for environment variable parsing

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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
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

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return strings.Split(value, ",")
	}
	return defaultValue
}
