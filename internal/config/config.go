package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSecretKey is the development-only signing secret. Running with
// it in production is unsafe; Load logs a warning whenever it is in use.
const DefaultSecretKey = "dev-secret-key-change-in-production"

// Config holds all configuration for the application. It is built once
// at startup and passed by reference into constructors; request-handling
// code never reads the process environment.
type Config struct {
	AppMode  string
	Port     string
	Database DatabaseConfig
	JWT      JWTConfig
	Bcrypt   BcryptConfig
}

// DatabaseConfig holds PostgreSQL configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret          string
	Algorithm       string
	AccessTokenMins int
}

// AccessTokenTTL returns the access token lifetime as a duration
func (j JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(j.AccessTokenMins) * time.Minute
}

// BcryptConfig holds password hashing configuration
type BcryptConfig struct {
	Cost int
}

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Load .env file (ignore error if file doesn't exist in production)
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	accessMins, _ := strconv.Atoi(getEnv("ACCESS_TOKEN_MINUTES", "30"))
	if accessMins < 1 {
		accessMins = 30
	}
	bcryptCost, _ := strconv.Atoi(getEnv("BCRYPT_COST", "12"))

	config := &Config{
		AppMode: appMode,
		Port:    getEnv("PORT", "8000"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASS", ""),
			DBName:   getEnv("DB_NAME", "caelo"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:          getEnv("SECRET_KEY", DefaultSecretKey),
			Algorithm:       getEnv("JWT_ALGORITHM", "HS256"),
			AccessTokenMins: accessMins,
		},
		Bcrypt: BcryptConfig{
			Cost: bcryptCost,
		},
	}

	if config.JWT.Secret == DefaultSecretKey {
		if appMode == "prod" {
			return nil, fmt.Errorf("SECRET_KEY must be set in production")
		}
		log.Println("⚠️ Warning: using insecure default SECRET_KEY, set SECRET_KEY before deploying")
	}

	log.Printf("✅ Configuration loaded successfully [MODE: %s]", appMode)
	return config, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	origins := getEnv("ALLOWED_ORIGINS", "")
	if origins == "" {
		if c.IsDev() {
			return "*"
		}
		return "https://login.withcaelo.ai,https://cdfi.withcaelo.ai"
	}
	return origins
}
