package db

import (
	"os"
	"strings"
)

// NormalizeDSN trims quotes and whitespace around DATABASE_DSN values.
// Anything that does not look like a postgres URL is treated as a sqlite
// file path (the embedded default).
func NormalizeDSN(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.Trim(s, "\"'")
	return s
}

// IsPostgres reports whether the DSN selects the postgres driver.
func IsPostgres(dsn string) bool {
	lower := strings.ToLower(dsn)
	return strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://")
}

// GetNormalizedDSN fetches DATABASE_DSN env var and normalizes it,
// defaulting to the embedded sqlite file.
func GetNormalizedDSN() string {
	dsn := NormalizeDSN(os.Getenv("DATABASE_DSN"))
	if dsn == "" {
		dsn = "jyotish.db"
	}
	return dsn
}
