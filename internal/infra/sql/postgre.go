package sql

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	_queryTimeout   = 5 * time.Second
	_connectRetries = 5
	_connectDelay   = 2 * time.Second
	_passwordEnv    = "PATIENT_PANEL_POSTGRES_PASSWORD"
)

// NewPostgreORM connects a pgx pool to dsn, retrying while the server comes up,
// and hands the pool to gorm.
func NewPostgreORM(ctx context.Context, dsn string) (*DB, error) {
	if pass, ok := os.LookupEnv(_passwordEnv); ok {
		dsn = fmt.Sprintf("%s password=%s", dsn, pass)
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing postgres dsn: %w", err)
	}

	pool, err := connect(ctx, config)
	if err != nil {
		return nil, err
	}

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: stdlib.OpenDBFromPool(pool),
	}), &gorm.Config{})
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("opening gorm: %w", err)
	}

	return &DB{
		DB:                   gormDB,
		autoMigrationEnabled: true,
		timeout:              _queryTimeout,
		system:               "postgresql",
	}, nil
}

func connect(ctx context.Context, config *pgxpool.Config) (*pgxpool.Pool, error) {
	var pool *pgxpool.Pool

	operation := func() error {
		candidate, err := pgxpool.NewWithConfig(ctx, config)
		if err != nil {
			return err
		}
		if err := candidate.Ping(ctx); err != nil {
			candidate.Close()
			return err
		}
		pool = candidate
		return nil
	}

	notify := func(err error, wait time.Duration) {
		slog.Warn("postgres not ready", slog.Duration("wait", wait), slog.String("error", err.Error()))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(_connectDelay), _connectRetries), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return nil, fmt.Errorf("connecting to postgres after %d retries: %w", _connectRetries, err)
	}

	return pool, nil
}
