// internal/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Environment string `json:"environment"`

	Server struct {
		Port          string        `json:"port"`
		CORSOrigin    string        `json:"cors_origin"`
		MaxUploadSize int64         `json:"max_upload_size"`
		ReadTimeout   time.Duration `json:"read_timeout"`
		WriteTimeout  time.Duration `json:"write_timeout"`
	} `json:"server"`

	Database struct {
		Host       string `json:"host"`
		Port       string `json:"port"`
		User       string `json:"user"`
		Password   string `json:"password"`
		Name       string `json:"name"`
		SSLMode    string `json:"sslmode"`
		SearchPath string `json:"schema"`
	} `json:"database"`

	Storage struct {
		Bucket   string `json:"bucket"`
		Region   string `json:"region"`
		Endpoint string `json:"endpoint"`
	} `json:"storage"`

	Upload struct {
		AllowedImageTypes []string      `json:"allowed_image_types"`
		AllowedFileTypes  []string      `json:"allowed_file_types"`
		MaxFileSize       int64         `json:"max_file_size"`
		PresignExpiry     time.Duration `json:"presign_expiry"`
	} `json:"upload"`

	JWT struct {
		Secret       string        `json:"secret"`
		ExpiryPeriod time.Duration `json:"expiry_period"`
	} `json:"jwt"`

	Sendgrid struct {
		APIKey string `json:"api_key"`
		From   string `json:"from"`
	} `json:"sendgrid"`
}

func Load() *Config {
	cfg := &Config{}

	cfg.Environment = getEnv("ENVIRONMENT", "development")

	// Server configuration
	cfg.Server.Port = getEnv("PORT", "3002")
	cfg.Server.CORSOrigin = getEnv("CORS_ORIGIN", "http://localhost:5173")
	cfg.Server.MaxUploadSize = getEnvBytes("MAX_UPLOAD_SIZE", 10<<20)
	cfg.Server.ReadTimeout = time.Second * 15
	cfg.Server.WriteTimeout = time.Second * 15

	// Database configuration
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Name = getEnv("DB_NAME", "nexus")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.SearchPath = getEnv("DB_SCHEMA", "public")

	// Storage configuration
	cfg.Storage.Bucket = getEnv("AWS_S3_BUCKET_NAME", "nexus-app-uploads")
	cfg.Storage.Region = getEnv("AWS_S3_BUCKET_REGION", getEnv("AWS_REGION", "us-east-1"))
	cfg.Storage.Endpoint = getEnv("AWS_S3_ENDPOINT", "")

	// Upload configuration
	cfg.Upload.AllowedImageTypes = getEnvList("ALLOWED_IMAGE_TYPES",
		"image/jpeg,image/png,image/gif,image/webp")
	cfg.Upload.AllowedFileTypes = getEnvList("ALLOWED_FILE_TYPES",
		"application/pdf,application/msword,application/vnd.openxmlformats-officedocument.wordprocessingml.document,text/plain")
	cfg.Upload.MaxFileSize = getEnvBytes("MAX_FILE_SIZE", 50<<20)
	cfg.Upload.PresignExpiry = time.Hour

	// JWT configuration
	cfg.JWT.Secret = getEnv("JWT_SECRET", "your-secret-key")
	cfg.JWT.ExpiryPeriod = time.Hour * 24

	// Sendgrid configuration
	cfg.Sendgrid.APIKey = getEnv("SENDGRID_API_KEY", "")
	cfg.Sendgrid.From = getEnv("SENDGRID_FROM", "")

	return cfg
}

// IsProduction gates error detail in API responses.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvList(key, defaultValue string) []string {
	raw := getEnv(key, defaultValue)
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getEnvBytes parses sizes like "50mb" or plain byte counts.
func getEnvBytes(key string, defaultValue int64) int64 {
	raw := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if raw == "" {
		return defaultValue
	}
	mult := int64(1)
	switch {
	case strings.HasSuffix(raw, "mb"):
		mult = 1 << 20
		raw = strings.TrimSuffix(raw, "mb")
	case strings.HasSuffix(raw, "kb"):
		mult = 1 << 10
		raw = strings.TrimSuffix(raw, "kb")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n * mult
}
