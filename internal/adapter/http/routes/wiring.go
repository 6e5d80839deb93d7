package routes

import (
	"context"
	"fmt"

	"quote_negotiation/internal/adapter/persistence/repository"
	"quote_negotiation/internal/config"
	"quote_negotiation/internal/infrastructure/database"
	"quote_negotiation/internal/infrastructure/logging"
	"quote_negotiation/internal/infrastructure/notifications"
	"quote_negotiation/internal/usecase/interfaces"

	"github.com/rs/zerolog"
)

type dependencies struct {
	repo     interfaces.IQuoteRequestRepository
	notifier *notifications.AsyncNotifier
	closers  []func(context.Context) error
	log      zerolog.Logger
}

func newDependencies(ctx context.Context, cfg config.Config, logger zerolog.Logger) (*dependencies, error) {
	d := &dependencies{log: logging.Component(logger, "wiring")}

	repo, err := d.openRepository(ctx, cfg)
	if err != nil {
		d.close(ctx)
		return nil, err
	}
	d.repo = repo

	next, err := d.openNotifier(ctx, cfg, logger)
	if err != nil {
		d.close(ctx)
		return nil, err
	}
	d.notifier = notifications.NewAsyncNotifier(next, cfg.NotifyTimeout, logger)
	return d, nil
}

func (d *dependencies) openRepository(ctx context.Context, cfg config.Config) (interfaces.IQuoteRequestRepository, error) {
	switch cfg.StorageDriver {
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, database.DynamoDBSettings{
			Region:   cfg.AWSRegion,
			Endpoint: cfg.DynamoDBEndpoint,
		})
		if err != nil {
			return nil, err
		}
		d.log.Info().Str("table", cfg.QuoteRequestsTable).Str("region", cfg.AWSRegion).Msg("using dynamodb storage")
		return repository.NewQuoteRequestDynamoRepository(ddb, cfg.QuoteRequestsTable), nil

	case config.StoragePostgres:
		pg, err := database.NewPostgres(ctx, cfg.PostgresConn)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, func(context.Context) error { return pg.Close() })
		d.log.Info().Msg("using postgres storage")
		return repository.NewQuoteRequestPostgresRepository(pg), nil

	case config.StorageMemory:
		d.log.Warn().Msg("using in-memory storage, data is lost on restart")
		return repository.NewQuoteRequestMemoryRepository(), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
}

func (d *dependencies) openNotifier(ctx context.Context, cfg config.Config, logger zerolog.Logger) (interfaces.INotifier, error) {
	switch cfg.NotifierDriver {
	case config.NotifierLog:
		return notifications.NewLogNotifier(logger), nil

	case config.NotifierMongo:
		client, err := database.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, client.Disconnect)
		col := client.Database(cfg.DatabaseName).Collection(cfg.NotificationsCollection)
		d.log.Info().Str("database", cfg.DatabaseName).Str("collection", cfg.NotificationsCollection).Msg("using mongo notifications")
		return notifications.NewMongoNotifier(col), nil
	}
	return nil, fmt.Errorf("unknown notifier driver %q", cfg.NotifierDriver)
}

// close waits for in-flight notifications, then releases connections in
// reverse order of opening.
func (d *dependencies) close(ctx context.Context) {
	if d.notifier != nil {
		d.notifier.Wait()
	}
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](ctx); err != nil {
			d.log.Warn().Err(err).Msg("closing resource failed")
		}
	}
	d.closers = nil
}
