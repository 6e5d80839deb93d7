package main

import (
	"fmt"
	"os"
	"runtime/debug"

	_ "quote_negotiation/docs"
	"quote_negotiation/internal/config"
	"quote_negotiation/internal/infrastructure/logging"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"
)

// @title           Quote Negotiation API
// @version         1.0
// @description     Quote requests between clients and freelancers: create, resolve (accept, decline, counter) and delete.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type cli struct {
	cfg     config.Config
	cfgPath string
}

func newRootCommand() *cobra.Command {
	c := &cli{cfg: config.DefaultConfig()}

	root := &cobra.Command{
		Use:           "quotes-api",
		Short:         "Quote negotiation API between clients and freelancers",
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	serve := newServeCommand(c)
	root.RunE = serve.RunE
	root.AddCommand(serve, newMigrateCommand(c), newTokenCommand(c))

	f := root.PersistentFlags()
	f.StringVar(&c.cfgPath, "config", "", "path to a TOML config file")
	f.StringVar(&c.cfg.Port, "port", c.cfg.Port, "HTTP listen port")
	f.StringSliceVar(&c.cfg.AllowedOrigins, "allowed-origins", c.cfg.AllowedOrigins, "CORS allowed origins (\"*\" allows any)")
	f.StringVar(&c.cfg.JWTSecret, "jwt-secret", c.cfg.JWTSecret, "HS256 secret used to verify bearer tokens")
	f.StringVar(&c.cfg.JWTIssuer, "jwt-issuer", c.cfg.JWTIssuer, "expected token issuer (optional)")
	f.StringVar(&c.cfg.StorageDriver, "storage-driver", c.cfg.StorageDriver, "quote request storage: dynamodb, postgres or memory")
	f.StringVar(&c.cfg.AWSRegion, "aws-region", c.cfg.AWSRegion, "AWS region for DynamoDB")
	f.StringVar(&c.cfg.DynamoDBEndpoint, "dynamodb-endpoint", c.cfg.DynamoDBEndpoint, "DynamoDB endpoint override, e.g. http://localhost:8000")
	f.StringVar(&c.cfg.QuoteRequestsTable, "quote-requests-table", c.cfg.QuoteRequestsTable, "DynamoDB table name")
	f.StringVar(&c.cfg.PostgresConn, "postgres-conn", c.cfg.PostgresConn, "PostgreSQL connection URL")
	f.StringVar(&c.cfg.NotifierDriver, "notifier-driver", c.cfg.NotifierDriver, "notification sink: log or mongo")
	f.StringVar(&c.cfg.MongoURI, "mongodb-uri", c.cfg.MongoURI, "MongoDB connection URI")
	f.StringVar(&c.cfg.DatabaseName, "database-name", c.cfg.DatabaseName, "MongoDB database name")
	f.StringVar(&c.cfg.NotificationsCollection, "notifications-collection", c.cfg.NotificationsCollection, "MongoDB notifications collection")
	f.DurationVar(&c.cfg.NotifyTimeout, "notify-timeout", c.cfg.NotifyTimeout, "deadline for a single notification delivery")
	f.IntVar(&c.cfg.CounterMessageMaxLength, "counter-message-max-length", c.cfg.CounterMessageMaxLength, "maximum counter message length in characters")
	f.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level: debug, info, warn, error")
	f.StringVar(&c.cfg.LogFormat, "log-format", c.cfg.LogFormat, "log format: json or console")

	return root
}

// load layers the config file and environment under the flags set on cmd
// and builds the logger.
func (c *cli) load(cmd *cobra.Command) (zerolog.Logger, error) {
	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if err := config.Load(&c.cfg, c.cfgPath, changed); err != nil {
		return zerolog.Nop(), err
	}
	return logging.New(c.cfg.LogLevel, c.cfg.LogFormat, os.Stderr)
}
