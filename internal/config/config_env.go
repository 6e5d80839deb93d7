package config

import "os"

// ApplyEnvConfig applies configuration from environment variables.
// It respects flags that have been explicitly set (changed map).
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newSetter(changed)

	s.setString("port", os.Getenv("PORT"), &cfg.Port)
	s.setListFromString("allowed-origins", os.Getenv("ALLOWED_ORIGINS"), &cfg.AllowedOrigins)
	s.setString("jwt-secret", os.Getenv("JWT_SECRET"), &cfg.JWTSecret)
	s.setString("jwt-issuer", os.Getenv("JWT_ISSUER"), &cfg.JWTIssuer)
	s.setString("storage-driver", os.Getenv("STORAGE_DRIVER"), &cfg.StorageDriver)
	s.setString("aws-region", os.Getenv("AWS_REGION"), &cfg.AWSRegion)
	s.setString("dynamodb-endpoint", os.Getenv("DYNAMODB_ENDPOINT"), &cfg.DynamoDBEndpoint)
	s.setString("quote-requests-table", os.Getenv("QUOTE_REQUESTS_TABLE"), &cfg.QuoteRequestsTable)
	s.setString("postgres-conn", os.Getenv("POSTGRES_CONN"), &cfg.PostgresConn)
	s.setString("notifier-driver", os.Getenv("NOTIFIER_DRIVER"), &cfg.NotifierDriver)
	s.setString("mongodb-uri", os.Getenv("MONGODB_URI"), &cfg.MongoURI)
	s.setString("database-name", os.Getenv("DATABASE_NAME"), &cfg.DatabaseName)
	s.setString("notifications-collection", os.Getenv("NOTIFICATIONS_COLLECTION"), &cfg.NotificationsCollection)
	s.setString("log-level", os.Getenv("LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("LOG_FORMAT"), &cfg.LogFormat)

	if err := s.setIntFromString("counter-message-max-length", os.Getenv("COUNTER_MESSAGE_MAX_LENGTH"), &cfg.CounterMessageMaxLength); err != nil {
		return err
	}
	return s.setDuration("notify-timeout", os.Getenv("NOTIFY_TIMEOUT"), &cfg.NotifyTimeout)
}
