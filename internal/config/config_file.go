package config

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
)

// FileConfig mirrors Config with TOML friendly types.
type FileConfig struct {
	Port           string   `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`

	JWTSecret string `toml:"jwt_secret"`
	JWTIssuer string `toml:"jwt_issuer"`

	StorageDriver      string `toml:"storage_driver"`
	AWSRegion          string `toml:"aws_region"`
	DynamoDBEndpoint   string `toml:"dynamodb_endpoint"`
	QuoteRequestsTable string `toml:"quote_requests_table"`
	PostgresConn       string `toml:"postgres_conn"`

	NotifierDriver          string `toml:"notifier_driver"`
	MongoURI                string `toml:"mongodb_uri"`
	DatabaseName            string `toml:"database_name"`
	NotificationsCollection string `toml:"notifications_collection"`
	NotifyTimeout           string `toml:"notify_timeout"`

	CounterMessageMaxLength int `toml:"counter_message_max_length"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// LoadFileConfig reads and parses a TOML config file.
func LoadFileConfig(path string) (FileConfig, error) {
	var fc FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return fc, err
	}
	if err := toml.Unmarshal(b, &fc); err != nil {
		return fc, err
	}
	return fc, nil
}

// ApplyFileConfig copies the values set in fc onto cfg, skipping changed flags.
func ApplyFileConfig(cfg *Config, fc FileConfig, changed map[string]bool) error {
	s := newSetter(changed)

	s.setString("port", fc.Port, &cfg.Port)
	s.setList("allowed-origins", fc.AllowedOrigins, &cfg.AllowedOrigins)
	s.setString("jwt-secret", fc.JWTSecret, &cfg.JWTSecret)
	s.setString("jwt-issuer", fc.JWTIssuer, &cfg.JWTIssuer)
	s.setString("storage-driver", fc.StorageDriver, &cfg.StorageDriver)
	s.setString("aws-region", fc.AWSRegion, &cfg.AWSRegion)
	s.setString("dynamodb-endpoint", fc.DynamoDBEndpoint, &cfg.DynamoDBEndpoint)
	s.setString("quote-requests-table", fc.QuoteRequestsTable, &cfg.QuoteRequestsTable)
	s.setString("postgres-conn", fc.PostgresConn, &cfg.PostgresConn)
	s.setString("notifier-driver", fc.NotifierDriver, &cfg.NotifierDriver)
	s.setString("mongodb-uri", fc.MongoURI, &cfg.MongoURI)
	s.setString("database-name", fc.DatabaseName, &cfg.DatabaseName)
	s.setString("notifications-collection", fc.NotificationsCollection, &cfg.NotificationsCollection)
	s.setString("log-level", fc.LogLevel, &cfg.LogLevel)
	s.setString("log-format", fc.LogFormat, &cfg.LogFormat)
	s.setInt("counter-message-max-length", fc.CounterMessageMaxLength, &cfg.CounterMessageMaxLength)

	return s.setDuration("notify-timeout", fc.NotifyTimeout, &cfg.NotifyTimeout)
}

// FileExists checks if a file exists at the given path.
func FileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}
