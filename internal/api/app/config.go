package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer string // Optional: issuer claim for tokens (default: portside-api)
	Secret string // HMAC secret for token signing (min 32 bytes); generated per process when empty

	Algorithm   string        // Optional: JWT signing algorithm (HS256, HS384, HS512) (default: HS256)
	AccessTTL   time.Duration // Optional: access token lifetime (default: 192h)
	RecoveryTTL time.Duration // Optional: password recovery token lifetime (default: 48h)

	DatabaseDriver string // Optional: database driver (sqlite, postgres) (default: sqlite)
	DatabaseFile   string // Optional: path to SQLite database file (default: ./api.db)
	DatabaseURL    string // Required for postgres: connection string
	PepperFile     string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	OpenRegistration       bool   // Optional: allow self-service signup (default: false)
	FirstSuperuserEmail    string // Optional: email of the superuser seeded at startup
	FirstSuperuserPassword string // Optional: password of the seeded superuser (generated when empty)
	FirstSuperuserName     string // Optional: full name of the seeded superuser (default: Admin)

	ProjectName string // Optional: name used in outgoing mail (default: Portside)
	FrontendURL string // Optional: base URL for links in outgoing mail (default: http://localhost:3000)

	SMTPHost     string // Optional: SMTP relay host; mail goes to the log when empty
	SMTPPort     int    // Optional: SMTP relay port (default: 587)
	SMTPUser     string // Optional: SMTP username
	SMTPPassword string // Optional: SMTP password
	SMTPFrom     string // Optional: From address for outgoing mail

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		Issuer: getEnvOrDefault("API_ISSUER", "portside-api"),
		Secret: os.Getenv("API_SECRET"), // Optional: generated per process when empty

		Algorithm:   getEnvOrDefault("API_ALGORITHM", "HS256"),
		AccessTTL:   getEnvDurationOrDefault("API_ACCESS_TTL", 192*time.Hour),
		RecoveryTTL: getEnvDurationOrDefault("API_RECOVERY_TTL", 48*time.Hour),

		DatabaseDriver: getEnvOrDefault("API_DATABASE_DRIVER", "sqlite"),
		DatabaseFile:   getEnvOrDefault("API_DATABASE_FILE", "api.db"),
		DatabaseURL:    os.Getenv("API_DATABASE_URL"),
		PepperFile:     getEnvOrDefault("API_PEPPER_FILE", "pepper"),

		OpenRegistration:       getEnvBoolOrDefault("API_OPEN_REGISTRATION", false),
		FirstSuperuserEmail:    os.Getenv("API_FIRST_SUPERUSER"),
		FirstSuperuserPassword: os.Getenv("API_FIRST_SUPERUSER_PASSWORD"),
		FirstSuperuserName:     getEnvOrDefault("API_FIRST_SUPERUSER_NAME", "Admin"),

		ProjectName: getEnvOrDefault("API_PROJECT_NAME", "Portside"),
		FrontendURL: getEnvOrDefault("API_FRONTEND_URL", "http://localhost:3000"),

		SMTPHost:     os.Getenv("API_SMTP_HOST"), // Optional: mail goes to the log when empty
		SMTPPort:     getEnvIntOrDefault("API_SMTP_PORT", 587),
		SMTPUser:     os.Getenv("API_SMTP_USER"),
		SMTPPassword: os.Getenv("API_SMTP_PASSWORD"),
		SMTPFrom:     os.Getenv("API_SMTP_FROM"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
