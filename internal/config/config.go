package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all service configuration, assembled once at startup and
// never mutated afterwards.
type Config struct {
	Port string

	// DBDriver is "sqlite3" for the embedded engine or "pgx" for postgres.
	DBDriver string
	DBDSN    string

	BcryptCost int

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	CORSOrigins []string
}

// Load reads configuration from the environment, with a .env file as
// fallback source when present.
func Load() *Config {
	godotenv.Load()

	return &Config{
		Port:           getenv("PORT", "8080"),
		DBDriver:       getenv("DB_DRIVER", "sqlite3"),
		DBDSN:          getenv("DB_DSN", "wishd.db"),
		BcryptCost:     getint("BCRYPT_COST", 0),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "wishd-images"),
		MinioUseSSL:    getenv("MINIO_USE_SSL", "false") == "true",
		CORSOrigins: strings.Split(
			getenv("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"), ","),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getint(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
