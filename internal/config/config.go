package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port        string
	DatabaseDSN string
	Env         string
	UploadDir   string
	ReportDir   string
	Location    *time.Location

	AdminUser         string
	AdminPasswordHash string // bcrypt; takes precedence over AdminPassword
	AdminPassword     string // dev fallback, plain comparison
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabaseDSN = getEnv("DATABASE_DSN", "jyotish.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.UploadDir = getEnv("UPLOAD_DIR", "uploads")
	cfg.ReportDir = getEnv("REPORT_DIR", "reports")
	cfg.AdminUser = getEnv("ADMIN_USER", "admin")
	cfg.AdminPasswordHash = os.Getenv("ADMIN_PASSWORD_HASH")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")

	tz := getEnv("TIMEZONE", "Asia/Kolkata")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Printf("invalid TIMEZONE %q, falling back to UTC: %v", tz, err)
		loc = time.UTC
	}
	cfg.Location = loc
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
