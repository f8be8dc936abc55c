package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"ledger-reports/internal/ledger"
)

const (
	transferBetweenAccounts = "Перевод между счетами"
	depositClosed           = "Закрытие вклада Тинькофф Банк"
	selfTransferByRequest   = "Перевод по запросу самому себе"
	depositTopUp            = "Пополнение вклада"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Reports   ReportsConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port             string
	Host             string
	Environment      string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	ShutdownTimeout  time.Duration
	CORSAllowOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	Schema          string
	MaxConnections  int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
	SeedDatabase    bool
	MigrationsPath  string
	SeedsPath       string
}

// ReportsConfig holds the report timezone and the cleaning policy of each report family.
type ReportsConfig struct {
	Timezone string
	Summary  PolicyConfig
	Listing  PolicyConfig
	Category PolicyConfig
	Daily    PolicyConfig
}

type PolicyConfig struct {
	ExcludedDescriptions []string
	Deduplicate          bool
	Tolerance            time.Duration
	MatchMode            string
}

type RateLimitConfig struct {
	RequestsPerSecond int
	Burst             int
	ExpiresIn         time.Duration
}

func Load() *Config {
	defaultExclusions := []string{transferBetweenAccounts, depositClosed}
	categoryExclusions := []string{transferBetweenAccounts, depositClosed, selfTransferByRequest, depositTopUp}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("SERVER_PORT", "8080"),
			Host:            getEnv("SERVER_HOST", "localhost"),
			Environment:     getEnv("APP_ENV", "development"),
			ReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 15*time.Second),
			ShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "ledger_user"),
			Password:        getEnv("DB_PASSWORD", "ledger_password"),
			Name:            getEnv("DB_NAME", "ledger_db"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			Schema:          getEnv("DB_SCHEMA", "dbo"),
			MaxConnections:  getIntEnv("DB_MAX_CONNECTIONS", 25),
			MaxIdleConns:    getIntEnv("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("DB_CONN_MAX_LIFETIME", time.Hour),
			AutoMigrate:     getBoolEnv("AUTO_MIGRATE", false),
			SeedDatabase:    getBoolEnv("SEED_DATABASE", false),
			MigrationsPath:  getEnv("DB_MIGRATIONS_PATH", "db/migrations"),
			SeedsPath:       getEnv("DB_SEEDS_PATH", "db/seeds"),
		},
		Reports: ReportsConfig{
			Timezone: getEnv("REPORT_TIMEZONE", "UTC"),
			Summary:  loadPolicyConfig("SUMMARY", defaultExclusions, false),
			Listing:  loadPolicyConfig("LISTING", defaultExclusions, true),
			Category: loadPolicyConfig("CATEGORY", categoryExclusions, false),
			Daily:    loadPolicyConfig("DAILY", defaultExclusions, false),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: getIntEnv("RATE_LIMIT_PER_SECOND", 20),
			Burst:             getIntEnv("RATE_LIMIT_BURST", 40),
			ExpiresIn:         getDurationEnv("RATE_LIMIT_EXPIRES_IN", 3*time.Minute),
		},
	}

	config.Server.CORSAllowOrigins = config.loadCORSAllowOrigins()

	return config
}

// loadPolicyConfig reads REPORT_<NAME>_* variables on top of the given defaults.
func loadPolicyConfig(name string, exclusions []string, deduplicate bool) PolicyConfig {
	prefix := "REPORT_" + name + "_"

	return PolicyConfig{
		ExcludedDescriptions: getListEnv(prefix+"EXCLUDED_DESCRIPTIONS", exclusions),
		Deduplicate:          getBoolEnv(prefix+"DEDUPLICATE", deduplicate),
		Tolerance:            getDurationEnv(prefix+"TOLERANCE", 30*time.Minute),
		MatchMode:            getEnv(prefix+"MATCH_MODE", string(ledger.MatchAny)),
	}
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port == "" {
		errs = append(errs, errors.New("SERVER_PORT must not be empty"))
	}

	if _, err := c.Reports.Location(); err != nil {
		errs = append(errs, err)
	}

	policies := map[string]PolicyConfig{
		"summary":  c.Reports.Summary,
		"listing":  c.Reports.Listing,
		"category": c.Reports.Category,
		"daily":    c.Reports.Daily,
	}
	for name, policy := range policies {
		if err := policy.Policy(name).Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	if c.RateLimit.RequestsPerSecond <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_PER_SECOND must be positive, got %d", c.RateLimit.RequestsPerSecond))
	}
	if c.RateLimit.Burst <= 0 {
		errs = append(errs, fmt.Errorf("RATE_LIMIT_BURST must be positive, got %d", c.RateLimit.Burst))
	}

	return errors.Join(errs...)
}

// Location resolves the report timezone.
func (c ReportsConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Policy converts the configuration into a ledger cleaning policy.
func (p PolicyConfig) Policy(name string) ledger.Policy {
	return ledger.Policy{
		Name:                 name,
		ExcludedDescriptions: p.ExcludedDescriptions,
		Deduplicate:          p.Deduplicate,
		Tolerance:            p.Tolerance,
		MatchMode:            ledger.MatchMode(p.MatchMode),
	}
}

func (c *DatabaseConfig) DSN() string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
	if c.Schema != "" {
		dsn += " search_path=" + c.Schema
	}
	return dsn
}

// TablePrefix qualifies table names with the configured schema.
func (c *DatabaseConfig) TablePrefix() string {
	if c.Schema == "" {
		return ""
	}
	return c.Schema + "."
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func (c *Config) IsTesting() bool {
	return c.Server.Environment == "testing"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getListEnv splits a comma-separated value. A variable set to "-" yields an empty list.
func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if value == "-" {
		return []string{}
	}

	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// loadCORSAllowOrigins retrieves CORS allowed origins from environment or returns default
func (c *Config) loadCORSAllowOrigins() []string {
	corsOrigins := os.Getenv("CORS_ALLOW_ORIGINS")

	if corsOrigins == "" {
		if c.IsProduction() {
			slog.Warn("CORS_ALLOW_ORIGINS not set in production, defaulting to all origins")
		}
		return []string{"*"}
	}

	origins := strings.Split(corsOrigins, ",")
	for i, origin := range origins {
		origins[i] = strings.TrimSpace(origin)
	}

	slog.Info("CORS allowed origins configured", "origins", origins)
	return origins
}
