package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	StorageDynamoDB = "dynamodb"
	StoragePostgres = "postgres"
	StorageMemory   = "memory"

	NotifierLog   = "log"
	NotifierMongo = "mongo"
)

// Config holds every runtime setting of the API.
type Config struct {
	Port           string
	AllowedOrigins []string

	JWTSecret string
	JWTIssuer string

	StorageDriver      string
	AWSRegion          string
	DynamoDBEndpoint   string
	QuoteRequestsTable string
	PostgresConn       string

	NotifierDriver          string
	MongoURI                string
	DatabaseName            string
	NotificationsCollection string
	NotifyTimeout           time.Duration

	CounterMessageMaxLength int

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Port:                    "8080",
		AllowedOrigins:          []string{"http://localhost:3000"},
		StorageDriver:           StorageDynamoDB,
		AWSRegion:               "us-east-1",
		QuoteRequestsTable:      "quote_requests",
		NotifierDriver:          NotifierLog,
		DatabaseName:            "quotes",
		NotificationsCollection: "notifications",
		NotifyTimeout:           5 * time.Second,
		CounterMessageMaxLength: 4000,
		LogLevel:                "info",
		LogFormat:               "json",
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}

	switch c.StorageDriver {
	case StorageDynamoDB:
		if c.QuoteRequestsTable == "" {
			return fmt.Errorf("QUOTE_REQUESTS_TABLE is required for the dynamodb driver")
		}
	case StoragePostgres:
		if c.PostgresConn == "" {
			return fmt.Errorf("POSTGRES_CONN is required for the postgres driver")
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	switch c.NotifierDriver {
	case NotifierLog:
	case NotifierMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGODB_URI is required for the mongo notifier")
		}
		if c.DatabaseName == "" || c.NotificationsCollection == "" {
			return fmt.Errorf("DATABASE_NAME and NOTIFICATIONS_COLLECTION are required for the mongo notifier")
		}
	default:
		return fmt.Errorf("unknown notifier driver %q", c.NotifierDriver)
	}

	if c.NotifyTimeout <= 0 {
		return fmt.Errorf("notify timeout must be positive")
	}
	if c.CounterMessageMaxLength <= 0 {
		return fmt.Errorf("counter message max length must be positive")
	}
	return nil
}

// Redacted returns a copy safe to log.
func (c Config) Redacted() Config {
	if c.JWTSecret != "" {
		c.JWTSecret = "*****"
	}
	if c.PostgresConn != "" {
		c.PostgresConn = "*****"
	}
	if c.MongoURI != "" {
		c.MongoURI = "*****"
	}
	return c
}

// setter applies values while respecting flag precedence: a value is only
// applied when the flag of the same name was not set explicitly.
type setter struct {
	changed map[string]bool
}

func newSetter(changed map[string]bool) *setter {
	return &setter{changed: changed}
}

func (s *setter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *setter) setList(flag string, value []string, dst *[]string) {
	if len(value) == 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *setter) setListFromString(flag, value string, dst *[]string) {
	s.setList(flag, splitList(value), dst)
}

func (s *setter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

func (s *setter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	s.setInt(flag, i, dst)
	return nil
}

func (s *setter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

func splitList(v string) []string {
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Load layers an optional TOML file and then the environment onto cfg.
// Values for flags named in changed are left untouched. An empty path or a
// missing file is skipped. Validation is left to the caller.
func Load(cfg *Config, path string, changed map[string]bool) error {
	if path != "" && FileExists(path) {
		fc, err := LoadFileConfig(path)
		if err != nil {
			return fmt.Errorf("load config file: %w", err)
		}
		if err := ApplyFileConfig(cfg, fc, changed); err != nil {
			return err
		}
	}
	return ApplyEnvConfig(cfg, changed)
}
