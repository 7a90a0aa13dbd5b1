package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/joho/godotenv"

	"github.com/ndewijer/pnl-dashboard/internal/apperrors"
	"github.com/ndewijer/pnl-dashboard/internal/metrics"
)

// Source kinds accepted in SOURCE_KIND.
const (
	SourceSheet   = "sheet"
	SourceFile    = "file"
	SourceJournal = "journal"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	CORS      CORSConfig
	Source    SourceConfig
	Dashboard DashboardConfig
	Cache     CacheConfig
	Log       LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// SourceConfig selects and locates the data source.
type SourceConfig struct {
	Kind        string
	SheetID     string
	SheetName   string
	SheetURL    string // Overrides SheetID/SheetName when set
	FilePath    string
	DBPath      string
	HTTPTimeout time.Duration
}

// DashboardConfig holds the figures the metrics are computed against.
type DashboardConfig struct {
	StartingCapital   float64
	DefaultInvestment float64
	Currency          string
	Title             string
}

// CacheConfig controls how long a loaded table is reused.
type CacheConfig struct {
	TTL             time.Duration
	RefreshSchedule string // cron schedule, empty disables background refresh
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost",
			}),
		},
		Source: SourceConfig{
			Kind:      strings.ToLower(getEnv("SOURCE_KIND", SourceFile)),
			SheetID:   getEnv("SHEET_ID", ""),
			SheetName: getEnv("SHEET_NAME", "Gain"),
			SheetURL:  getEnv("SHEET_URL", ""),
			FilePath:  getEnv("FILE_PATH", "./data/pnl.csv"),
			DBPath:    getEnv("DB_PATH", "./data/journal.db"),
		},
		Dashboard: DashboardConfig{
			Currency: strings.ToUpper(getEnv("CURRENCY", "VND")),
			Title:    getEnv("DASHBOARD_TITLE", "Trading Performance"),
		},
		Cache: CacheConfig{
			RefreshSchedule: getEnv("REFRESH_SCHEDULE", "@every 1m"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
			Pretty: getEnvAsBool("LOG_PRETTY", false),
		},
	}

	var err error
	if config.Dashboard.StartingCapital, err = getEnvAsFloat("STARTING_CAPITAL", 70000000); err != nil {
		return nil, err
	}
	if config.Dashboard.DefaultInvestment, err = getEnvAsFloat("DEFAULT_INVESTMENT", 50000000); err != nil {
		return nil, err
	}
	if config.Cache.TTL, err = getEnvAsDuration("CACHE_TTL", 60*time.Second); err != nil {
		return nil, err
	}
	if config.Source.HTTPTimeout, err = getEnvAsDuration("HTTP_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}

	if encrypted := os.Getenv("SHEET_ID_ENCRYPTED"); encrypted != "" && config.Source.SheetID == "" {
		config.Source.SheetID, err = DecryptSecret(encrypted, os.Getenv("FERNET_KEY"))
		if err != nil {
			return nil, err
		}
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks that the configuration can run the dashboard.
func (c *Config) Validate() error {
	if err := metrics.ValidateStartingCapital(c.Dashboard.StartingCapital); err != nil {
		return fmt.Errorf("STARTING_CAPITAL: %w", err)
	}
	if c.Dashboard.DefaultInvestment < 0 {
		return fmt.Errorf("%w: DEFAULT_INVESTMENT cannot be negative", apperrors.ErrInvalidConfiguration)
	}
	if c.Cache.TTL <= 0 {
		return fmt.Errorf("%w: CACHE_TTL must be positive", apperrors.ErrInvalidConfiguration)
	}

	switch c.Source.Kind {
	case SourceSheet:
		if c.Source.SheetURL == "" && c.Source.SheetID == "" {
			return fmt.Errorf("%w: SHEET_ID, SHEET_ID_ENCRYPTED or SHEET_URL is required for the sheet source",
				apperrors.ErrInvalidConfiguration)
		}
	case SourceFile:
		if c.Source.FilePath == "" {
			return fmt.Errorf("%w: FILE_PATH is required for the file source", apperrors.ErrInvalidConfiguration)
		}
	case SourceJournal:
		if c.Source.DBPath == "" {
			return fmt.Errorf("%w: DB_PATH is required for the journal source", apperrors.ErrInvalidConfiguration)
		}
	default:
		return fmt.Errorf("%w: %q", apperrors.ErrUnknownSource, c.Source.Kind)
	}

	return nil
}

// DecryptSecret decrypts a fernet token with the given base64 key.
// Tokens do not expire.
func DecryptSecret(token, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("%w: FERNET_KEY is required to decrypt secrets", apperrors.ErrInvalidConfiguration)
	}
	k, err := fernet.DecodeKey(key)
	if err != nil {
		return "", fmt.Errorf("%w: invalid FERNET_KEY: %v", apperrors.ErrInvalidConfiguration, err)
	}
	msg := fernet.VerifyAndDecrypt([]byte(token), 0, []*fernet.Key{k})
	if msg == nil {
		return "", fmt.Errorf("%w: secret could not be decrypted", apperrors.ErrInvalidConfiguration)
	}
	return string(msg), nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, "_", ""), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a number: %q", apperrors.ErrInvalidConfiguration, key, value)
	}
	return f, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s is not a duration: %q", apperrors.ErrInvalidConfiguration, key, value)
	}
	return d, nil
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
