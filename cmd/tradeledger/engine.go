package main

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AntonStoeckl/commodity-ledger-go/internal/config"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/leveldbengine"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/memengine"
	"github.com/AntonStoeckl/commodity-ledger-go/ledger/postgresengine"
)

// openLedger opens the configured engine. The returned release func closes what was opened.
func openLedger(ctx context.Context, cfg config.Config, logger *slog.Logger, obs observability) (ledger.Ledger, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Engine {
	case config.EngineMemory:
		return memengine.NewLedger(), noop, nil

	case config.EngineLevelDB:
		l, err := leveldbengine.Open(cfg.LevelDB.Path, leveldbengine.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}

		return l, l.Close, nil

	case config.EnginePostgres:
		return openPostgres(ctx, cfg.Postgres, postgresOptions(cfg.Postgres, logger, obs))

	default:
		return nil, nil, config.ErrUnknownEngine
	}
}

func postgresOptions(cfg config.PostgresConfig, logger *slog.Logger, obs observability) []postgresengine.Option {
	opts := []postgresengine.Option{
		postgresengine.WithTableName(cfg.TableName),
		postgresengine.WithLogger(logger),
	}

	if obs.contextualLogger != nil {
		opts = append(opts, postgresengine.WithContextualLogger(obs.contextualLogger))
	}
	if obs.metricsCollector != nil {
		opts = append(opts, postgresengine.WithMetrics(obs.metricsCollector))
	}
	if obs.tracingCollector != nil {
		opts = append(opts, postgresengine.WithTracing(obs.tracingCollector))
	}

	return opts
}

func openPostgres(ctx context.Context, cfg config.PostgresConfig, opts []postgresengine.Option) (ledger.Ledger, func() error, error) {
	var (
		l       *postgresengine.Ledger
		release func() error
		err     error
	)

	switch cfg.Adapter {
	case config.AdapterPGX:
		l, release, err = openPGX(ctx, cfg, opts)

	case config.AdapterSQL:
		var db *sql.DB
		if db, err = cfg.OpenSQLDB(ctx); err != nil {
			return nil, nil, err
		}
		release = db.Close
		l, err = postgresengine.NewLedgerFromSQLDB(db, opts...)

	case config.AdapterSQLX:
		db, openErr := cfg.OpenSQLX(ctx)
		if openErr != nil {
			return nil, nil, openErr
		}
		release = db.Close
		l, err = postgresengine.NewLedgerFromSQLX(db, opts...)

	default:
		return nil, nil, config.ErrUnknownAdapter
	}

	if err != nil {
		if release != nil {
			_ = release()
		}
		return nil, nil, err
	}

	if cfg.EnsureSchema {
		if err := l.EnsureSchema(ctx); err != nil {
			_ = release()
			return nil, nil, err
		}
	}

	return l, release, nil
}

func openPGX(ctx context.Context, cfg config.PostgresConfig, opts []postgresengine.Option) (*postgresengine.Ledger, func() error, error) {
	primary, err := cfg.OpenPGXPool(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, err
	}

	var replica *pgxpool.Pool
	if cfg.ReplicaDSN != "" {
		if replica, err = cfg.OpenPGXPool(ctx, cfg.ReplicaDSN); err != nil {
			primary.Close()
			return nil, nil, err
		}
	}

	release := func() error {
		primary.Close()
		if replica != nil {
			replica.Close()
		}
		return nil
	}

	l, err := postgresengine.NewLedgerFromPGXPoolWithReplica(primary, replica, opts...)
	if err != nil {
		return nil, release, err
	}

	return l, release, nil
}
