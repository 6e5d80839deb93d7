package main

import (
	"fmt"

	"quote_negotiation/internal/config"
	"quote_negotiation/internal/infrastructure/database"

	"github.com/spf13/cobra"
)

func newMigrateCommand(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Prepare storage: apply PostgreSQL migrations or create the DynamoDB table",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := c.load(cmd)
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			switch c.cfg.StorageDriver {
			case config.StoragePostgres:
				if c.cfg.PostgresConn == "" {
					return fmt.Errorf("POSTGRES_CONN is required for the postgres driver")
				}
				pg, err := database.NewPostgres(ctx, c.cfg.PostgresConn)
				if err != nil {
					return err
				}
				defer pg.Close()

				applied, err := database.MigratePostgres(pg.Database)
				if err != nil {
					return err
				}
				log.Info().Bool("applied", applied).Msg("postgres migrations done")

			case config.StorageDynamoDB:
				ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBSettings{
					Region:   c.cfg.AWSRegion,
					Endpoint: c.cfg.DynamoDBEndpoint,
				})
				if err != nil {
					return err
				}
				created, err := database.EnsureQuoteRequestsTable(ctx, ddb, c.cfg.QuoteRequestsTable)
				if err != nil {
					return err
				}
				log.Info().Bool("created", created).Str("table", c.cfg.QuoteRequestsTable).Msg("dynamodb table ready")

			case config.StorageMemory:
				log.Info().Msg("memory storage needs no migration")

			default:
				return fmt.Errorf("unknown storage driver %q", c.cfg.StorageDriver)
			}
			return nil
		},
	}
}
