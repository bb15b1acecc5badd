package config

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver
)

const (
	driverName = "postgres"

	defaultMaxConnLifetime   = time.Hour
	defaultMaxConnIdleTime   = time.Minute * 5
	defaultHealthCheckPeriod = time.Minute
	defaultConnectTimeout    = time.Second * 5
	idleConnectionsDivisor   = 4
)

var ErrEmptyDSN = errors.New("postgres dsn is empty")

// PGXPoolConfig creates a pgxpool.Config for dsn with the pool limits of c.
func (c PostgresConfig) PGXPoolConfig(dsn string) (*pgxpool.Config, error) {
	if dsn == "" {
		return nil, ErrEmptyDSN
	}

	dbConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	dbConfig.MaxConns = int32(c.MaxConns) //nolint:gosec
	dbConfig.MinConns = int32(c.MinConns) //nolint:gosec
	dbConfig.MaxConnLifetime = defaultMaxConnLifetime
	dbConfig.MaxConnIdleTime = defaultMaxConnIdleTime
	dbConfig.HealthCheckPeriod = defaultHealthCheckPeriod
	dbConfig.ConnConfig.ConnectTimeout = defaultConnectTimeout

	return dbConfig, nil
}

// OpenPGXPool connects a pgxpool to dsn and pings it.
func (c PostgresConfig) OpenPGXPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	dbConfig, err := c.PGXPoolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, dbConfig)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}

// OpenSQLDB opens a *sql.DB on the lib/pq driver and pings it.
func (c PostgresConfig) OpenSQLDB(ctx context.Context) (*sql.DB, error) {
	if c.DSN == "" {
		return nil, ErrEmptyDSN
	}

	db, err := sql.Open(driverName, c.DSN)
	if err != nil {
		return nil, err
	}

	c.configurePool(db)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return db, nil
}

// OpenSQLX opens a *sqlx.DB on the lib/pq driver and pings it.
func (c PostgresConfig) OpenSQLX(ctx context.Context) (*sqlx.DB, error) {
	if c.DSN == "" {
		return nil, ErrEmptyDSN
	}

	db, err := sqlx.Open(driverName, c.DSN)
	if err != nil {
		return nil, err
	}

	c.configurePool(db.DB)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, pingErr
	}

	return db, nil
}

func (c PostgresConfig) configurePool(db *sql.DB) {
	db.SetMaxOpenConns(c.MaxConns)
	db.SetMaxIdleConns(max(c.MinConns, c.MaxConns/idleConnectionsDivisor))
	db.SetConnMaxLifetime(defaultMaxConnLifetime)
	db.SetConnMaxIdleTime(defaultMaxConnIdleTime)
}
