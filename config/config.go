package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// SMTP configuration
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPUseTLS         bool
	SMTPUseSSL         bool
	SMTPTimeoutSeconds int
	MailFromEmail      string
	MailFromName       string
	// Where owner notifications for new contact messages go. Optional:
	// when empty the owner notification is skipped and the API reports a
	// delivery issue.
	ContactInboxEmail string
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production when absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// SMTP configuration
		SMTPHost:           getEnv("SMTP_HOST", ""),
		SMTPPort:           getEnvInt("SMTP_PORT", 587),
		SMTPUsername:       getEnv("SMTP_USERNAME", ""),
		SMTPPassword:       getEnv("SMTP_PASSWORD", ""),
		SMTPUseTLS:         getEnvBool("SMTP_USE_TLS", true),
		SMTPUseSSL:         getEnvBool("SMTP_USE_SSL", false),
		SMTPTimeoutSeconds: getEnvInt("SMTP_TIMEOUT_SECONDS", 20),
		MailFromEmail:      getEnv("MAIL_FROM_EMAIL", ""),
		MailFromName:       getEnv("MAIL_FROM_NAME", "Portfolio"),
		ContactInboxEmail:  getEnv("CONTACT_INBOX_EMAIL", ""),
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.SMTPHost == "" {
		log.Println("WARNING: SMTP_HOST not configured. Contact notifications will not be delivered.")
	}
	if cfg.ContactInboxEmail == "" {
		log.Println("WARNING: CONTACT_INBOX_EMAIL not configured. Owner notifications will be skipped.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}
