package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Backend BackendConfig
	Redis   RedisConfig
	JWT     JWTConfig
	Polling PollingConfig
	Uploads UploadConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Environment  string
	ServiceName  string
	ReadTimeout  int
	WriteTimeout int
	CORSOrigins  string // Comma-separated list of allowed origins
}

// BackendConfig holds the complaint backend REST API configuration
type BackendConfig struct {
	BaseURL string
	Timeout int // in seconds
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret     string
	Expiration int // in hours
}

// PollingConfig holds the fixed refresh intervals for background polls
type PollingConfig struct {
	ComplaintRefresh  time.Duration
	MaintenanceNotice time.Duration
}

// UploadConfig holds the complaint attachment policy
type UploadConfig struct {
	MaxFiles    int
	MaxFileSize int64 // in bytes
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			Environment:  getEnv("ENVIRONMENT", "development"),
			ServiceName:  serviceName,
			ReadTimeout:  getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout: getEnvAsInt("WRITE_TIMEOUT", 10),
			CORSOrigins:  getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Backend: BackendConfig{
			BaseURL: getEnv("BACKEND_BASE_URL", "http://localhost:8000/api"),
			Timeout: getEnvAsInt("BACKEND_TIMEOUT", 15),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			Secret:     getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
			Expiration: getEnvAsInt("JWT_EXPIRATION", 24),
		},
		Polling: PollingConfig{
			ComplaintRefresh:  time.Duration(getEnvAsInt("COMPLAINT_REFRESH_SECONDS", 30)) * time.Second,
			MaintenanceNotice: time.Duration(getEnvAsInt("MAINTENANCE_POLL_SECONDS", 60)) * time.Second,
		},
		Uploads: UploadConfig{
			MaxFiles:    getEnvAsInt("UPLOAD_MAX_FILES", 5),
			MaxFileSize: int64(getEnvAsInt("UPLOAD_MAX_FILE_MB", 5)) * 1024 * 1024,
		},
	}

	return cfg, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
