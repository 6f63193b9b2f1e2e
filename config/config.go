package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	AppURL      string
	// Local database (development)
	DBPath string
	// Hosted database (production)
	LibsqlDatabaseURL string
	LibsqlAuthToken   string
	// SMTP relay (Naver)
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	// Recipient for consultation notifications; falls back to SMTPUser
	NotifyEmail   string
	EmailTestMode bool // When true, emails are logged to console instead of sent
	// Other
	AllowedOrigins []string
}

func Load() *Config {
	// Load .env file (ignore error if not present - use system env vars)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	environment := getEnv("ENVIRONMENT", "development")

	cfg := &Config{
		ServerPort:        getEnv("SERVER_PORT", "8080"),
		Environment:       environment,
		AppURL:            getEnv("APP_URL", "http://localhost:8080"),
		DBPath:            getEnv("DB_PATH", "db/app.db"),
		LibsqlDatabaseURL: getEnv("LIBSQL_DATABASE_URL", ""),
		LibsqlAuthToken:   getEnv("LIBSQL_AUTH_TOKEN", ""),
		SMTPHost:          getEnv("SMTP_HOST", "smtp.naver.com"),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUser:          getEnv("SMTP_USER", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		NotifyEmail:       getEnv("NOTIFY_EMAIL", ""),
		EmailTestMode:     getEnvBool("EMAIL_TEST_MODE", true), // Default true for safety
		AllowedOrigins:    strings.Split(getEnv("ALLOWED_ORIGINS", "*"), ","),
	}

	ValidateStoreCredentials(cfg)

	if !cfg.NotificationsConfigured() {
		log.Println("[WARNING] SMTP_USER or SMTP_PASSWORD not set; consultation notifications are disabled")
	}

	return cfg
}

// ValidateStoreCredentials enforces the fail-closed credential policy for the
// hosted store. In production both the URL and the service token must be set;
// a partial credential would silently downgrade writes under the store's
// access policies, so we refuse to start instead.
func ValidateStoreCredentials(cfg *Config) {
	if cfg.Environment != "production" {
		if cfg.LibsqlDatabaseURL == "" {
			log.Printf("[INFO] LIBSQL_DATABASE_URL not set, using local database at %s", cfg.DBPath)
		}
		return
	}

	if cfg.LibsqlDatabaseURL == "" {
		log.Fatal("[CRITICAL] LIBSQL_DATABASE_URL is required in production")
	}
	if cfg.LibsqlAuthToken == "" {
		log.Fatal("[CRITICAL] LIBSQL_AUTH_TOKEN is required in production; refusing to start without the service credential")
	}
}

// StoreConfigured reports whether a usable data store is configured.
func (c *Config) StoreConfigured() bool {
	return c.LibsqlDatabaseURL != "" || c.DBPath != ""
}

// NotificationsConfigured reports whether the SMTP relay credentials are set.
func (c *Config) NotificationsConfigured() bool {
	return c.SMTPUser != "" && c.SMTPPassword != ""
}

// NotifyRecipient returns the notification recipient, falling back to the
// sender account when no distinct recipient is configured.
func (c *Config) NotifyRecipient() string {
	if c.NotifyEmail != "" {
		return c.NotifyEmail
	}
	return c.SMTPUser
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	// Accept common boolean representations
	switch strings.ToLower(value) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultValue
	}
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid value for %s: %q, using default %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}
