package config

import (
	"errors"
	"io/fs"
	"log"
	"time"

	"github.com/joho/godotenv"
)

// APIConfig holds runtime configuration for the API service.
type APIConfig struct {
	Environment        string
	Addr               string
	DatabaseURL        string
	MigrationsDir      string
	JWTSecret          string
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
	AdminEmail         string
	AdminPassword      string
	AdminName          string
	DataEncryptionKey  string
	UploadDir          string
	UploadMaxBytes     int64
	PublicBaseURL      string
	CORSAllowedOrigins []string
	RateLimitRedisAddr string
	RateLimitRedisPass string
	RateLimitRedisDB   int
	RateLimitPerMinute int
	VisitorSalt        string
	LogLevel           string
}

// LoadDotEnv loads variables from files (default .env) without overriding
// values already present in the environment. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Printf("load %s: %v", file, err)
		}
	}
}

// LoadAPIConfig constructs an APIConfig from .env and environment variables.
func LoadAPIConfig() APIConfig {
	LoadDotEnv()
	return APIConfig{
		Environment:        GetString("APP_ENV", "development"),
		Addr:               GetString("API_ADDR", ":4000"),
		DatabaseURL:        GetString("DATABASE_URL", ""),
		MigrationsDir:      GetString("DB_MIGRATIONS_DIR", "db/migrations"),
		JWTSecret:          GetString("JWT_SECRET", "supersecuresecret"),
		AccessTokenTTL:     time.Duration(GetInt("ACCESS_TOKEN_TTL_MIN", 60)) * time.Minute,
		RefreshTokenTTL:    time.Duration(GetInt("REFRESH_TOKEN_TTL_HOURS", 168)) * time.Hour,
		AdminEmail:         GetString("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:      GetString("ADMIN_PASSWORD", ""),
		AdminName:          GetString("ADMIN_NAME", "Admin"),
		DataEncryptionKey:  GetString("DATA_ENCRYPTION_KEY", "supersecuresecret"),
		UploadDir:          GetString("UPLOAD_DIR", "uploads"),
		UploadMaxBytes:     int64(GetInt("UPLOAD_MAX_MB", 10)) << 20,
		PublicBaseURL:      GetString("PUBLIC_BASE_URL", ""),
		CORSAllowedOrigins: GetList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		RateLimitRedisAddr: GetString("RATE_LIMIT_REDIS_ADDR", ""),
		RateLimitRedisPass: GetString("RATE_LIMIT_REDIS_PASSWORD", ""),
		RateLimitRedisDB:   GetInt("RATE_LIMIT_REDIS_DB", 0),
		RateLimitPerMinute: GetInt("RATE_LIMIT_PER_MINUTE", 30),
		VisitorSalt:        GetString("VISITOR_SALT", "folio"),
		LogLevel:           GetString("LOG_LEVEL", "info"),
	}
}
