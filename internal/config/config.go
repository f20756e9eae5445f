package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	// Server
	ServerPort string
	ServerEnv  string
	ServerHost string

	// Database
	DatabaseURL string

	// Redis / listing cache
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	CacheTTLSeconds int

	// JWT
	JWTSecretKey              string
	JWTAccessTokenExpireMin   int
	JWTRefreshTokenExpireDays int

	// Google
	GoogleClientIDWeb string

	// Email (enquiry notifications)
	EmailHost          string
	EmailPort          int
	EmailHostUser      string
	EmailHostPassword  string
	EmailUseTLS        bool
	DefaultFromEmail   string
	EnquiryNotifyEmail string

	// SigNoz
	SigNozEndpoint string
}

func Load() *Config {
	return &Config{
		// Server
		ServerPort: getEnv("SERVER_PORT", "3000"),
		ServerEnv:  getEnv("SERVER_ENV", "development"),
		ServerHost: getEnv("SERVER_HOST", "localhost:3000"),

		// Database - DATABASE_URL wins, otherwise built from POSTGRES_* vars
		DatabaseURL: getDatabaseURL(),

		// Redis - listing cache backend. CACHE_TTL_SECONDS is the staleness
		// knob for cached listings; writes do not invalidate.
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		RedisDB:         getEnvAsInt("REDIS_DB", 0),
		CacheTTLSeconds: getEnvAsInt("CACHE_TTL_SECONDS", 300),

		// JWT
		JWTSecretKey:              getEnv("JWT_SECRET_KEY", ""),
		JWTAccessTokenExpireMin:   getEnvAsInt("JWT_ACCESS_TOKEN_EXPIRE_MINUTES", 15),
		JWTRefreshTokenExpireDays: getEnvAsInt("JWT_REFRESH_TOKEN_EXPIRE_DAYS", 7),

		// Google
		GoogleClientIDWeb: getEnv("GOOGLE_CLIENT_ID_WEB", ""),

		// Email
		EmailHost:          getEnv("EMAIL_HOST", ""),
		EmailPort:          getEnvAsInt("EMAIL_PORT", 587),
		EmailHostUser:      getEnv("EMAIL_HOST_USER", ""),
		EmailHostPassword:  getEnv("EMAIL_HOST_PASSWORD", ""),
		EmailUseTLS:        getEnvAsBool("EMAIL_USE_TLS", true),
		DefaultFromEmail:   getEnv("DEFAULT_FROM_EMAIL", ""),
		EnquiryNotifyEmail: getEnv("ENQUIRY_NOTIFY_EMAIL", ""),

		// SigNoz
		SigNozEndpoint: getEnv("SIGNOZ_ENDPOINT", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getDatabaseURL returns DATABASE_URL or builds it from individual env vars
func getDatabaseURL() string {
	// 1. Use DATABASE_URL as-is when present
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}

	// 2. Build from individual env vars (matches k8s secret key names)
	host := getEnv("POSTGRES_HOST", "localhost")
	port := getEnv("POSTGRES_PORT", "5432")
	user := getEnv("POSTGRES_USER", "postgres")
	password := getEnv("POSTGRES_PASSWORD", "")
	dbname := getEnv("POSTGRES_DB", "wareongo")
	sslmode := getEnv("POSTGRES_SSLMODE", "disable")

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		user, password, host, port, dbname, sslmode)
}
