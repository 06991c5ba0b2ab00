package wire

import (
	"context"
	"fmt"
	"log/slog"
	"patient-panel/cmd/config"
	"patient-panel/internal/infra/pubsub"
	"patient-panel/internal/infra/sql"
	"patient-panel/internal/panel/communication"
	"patient-panel/internal/panel/persistence"
	"patient-panel/internal/panel/usecases"
)

const _memoryDatabaseName = "patient_panel"

func provideAppConfig() config.AppConfig {
	return config.LoadConfig()
}

func provideRemoteStore(cfg config.AppConfig) (usecases.RemoteStore, error) {
	ctx := context.Background()

	switch cfg.Remote.Mode {
	case config.RemoteModeApex:
		store, err := communication.NewApexRemoteStore(ctx, communication.ApexConfig{
			BaseURL:      cfg.Remote.BaseURL,
			AccessToken:  cfg.Remote.AccessToken,
			ClientID:     cfg.Remote.ClientID,
			ClientSecret: cfg.Remote.ClientSecret,
			Timeout:      cfg.Remote.Timeout,
			MaxRetries:   cfg.Remote.MaxRetries,
			RetryDelay:   cfg.Remote.RetryDelay,
		})
		if err != nil {
			return nil, fmt.Errorf("creating apex remote store: %w", err)
		}
		return store, nil

	case config.RemoteModeSQL:
		orm, err := provideDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}

		store, err := persistence.NewSQLRemoteStore(orm)
		if err != nil {
			return nil, err
		}

		if cfg.Database.Seed {
			if err := persistence.Seed(ctx, orm); err != nil {
				return nil, fmt.Errorf("seeding database: %w", err)
			}
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown remote mode %q", cfg.Remote.Mode)
	}
}

func provideDatabase(ctx context.Context, cfg config.AppConfig) (sql.ORM, error) {
	if cfg.IsLocal() {
		slog.Info("using in-memory database")
		orm, err := sql.NewMemoryORM(_memoryDatabaseName)
		if err != nil {
			return nil, err
		}
		return orm, nil
	}

	orm, err := sql.NewPostgreORM(ctx, cfg.Database.DSN)
	if err != nil {
		return nil, err
	}
	return orm, nil
}

func providePubSubFactory(cfg config.AppConfig) *pubsub.Factory {
	return pubsub.NewFactory(pubsub.FactoryOptions{
		Environment:  cfg.General.Environment,
		KafkaBrokers: cfg.Kafka.Brokers,
	})
}

func providePublisherFactory(factory *pubsub.Factory) pubsub.PublisherFactory {
	return factory.GetPublisherFactory()
}
