package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type Config struct {
	DBPath         string
	RawIntakeDir   string
	OutputDir      string
	VocabularyPath string

	// DefaultMarkup turns cost into retail when a vendor has no explicit
	// RRP source and no contract factor of its own.
	DefaultMarkup decimal.Decimal

	GmailClientID     string
	GmailClientSecret string
	GmailRedirectURI  string
	GmailRefreshToken string

	IMAPHost     string
	IMAPPort     int
	IMAPSecure   bool
	IMAPUser     string
	IMAPPassword string
	IMAPMarkSeen bool

	IntakeProvider    string
	IntakeLabel       string
	IntakeIntervalSec int
	IntakeFetchMax    int
	IntakeBatch       int
	IntakeAutoExport  bool
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		DBPath:         getEnv("DB_PATH", filepath.Join(cwd, "data", "app.db")),
		RawIntakeDir:   getEnv("INTAKE_RAW_DIR", filepath.Join(cwd, "data", "intake")),
		OutputDir:      getEnv("OUTPUT_DIR", filepath.Join(cwd, "out")),
		VocabularyPath: getEnv("CATEGORY_VOCABULARY_PATH", filepath.Join(cwd, "data", "categories.csv")),

		DefaultMarkup: getEnvDecimal("DEFAULT_MARKUP_FACTOR", "2.5"),

		GmailClientID:     getEnv("GMAIL_CLIENT_ID", ""),
		GmailClientSecret: getEnv("GMAIL_CLIENT_SECRET", ""),
		GmailRedirectURI:  getEnv("GMAIL_REDIRECT_URI", "https://developers.google.com/oauthplayground"),
		GmailRefreshToken: getEnv("GMAIL_REFRESH_TOKEN", ""),

		IMAPHost:     getEnv("IMAP_HOST", ""),
		IMAPPort:     getEnvInt("IMAP_PORT", 993),
		IMAPSecure:   getEnvBool("IMAP_SECURE", true),
		IMAPUser:     getEnv("IMAP_USER", ""),
		IMAPPassword: getEnv("IMAP_PASSWORD", ""),
		IMAPMarkSeen: getEnvBool("IMAP_MARK_SEEN", false),

		IntakeProvider:    getEnv("INTAKE_PROVIDER", "imap"),
		IntakeLabel:       getEnv("INTAKE_LABEL", "INBOX"),
		IntakeIntervalSec: getEnvInt("INTAKE_INTERVAL_SEC", 60),
		IntakeFetchMax:    getEnvInt("INTAKE_FETCH_MAX", 20),
		IntakeBatch:       getEnvInt("INTAKE_PROCESS_BATCH", 20),
		IntakeAutoExport:  getEnvBool("INTAKE_AUTO_EXPORT", true),
	}

	return cfg, nil
}

func (c Config) Require(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("missing required env var: %s", name)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}

func getEnvDecimal(key, fallback string) decimal.Decimal {
	value := getEnv(key, fallback)
	parsed, err := decimal.NewFromString(value)
	if err != nil || !parsed.IsPositive() {
		parsed, _ = decimal.NewFromString(fallback)
	}
	return parsed
}
