// Package database provides the shared PostgreSQL connection pool and the
// transactional unit-of-work used by all repositories.
//
// Transactions are carried in context: WithTx opens a *sql.Tx, stores it in
// the derived context, and every repository operation routed through Exec /
// QueryRow / Query automatically joins it. Code outside a WithTx scope runs
// directly against the pool.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/victordehoyos/ProductCatalog/pkg/logger"
)

// Database wraps *sql.DB with transaction scoping helpers.
type Database struct {
	db  *sql.DB
	log logger.Logger
}

// NewPool opens a pgx-backed connection pool against dbURL and verifies
// connectivity with a short ping.
func NewPool(ctx context.Context, dbURL string, log logger.Logger) (*Database, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &Database{db: db, log: log}, nil
}

// DB returns the underlying *sql.DB for libraries that need direct access
// (migrations, the event bus schema).
func (d *Database) DB() *sql.DB {
	return d.db
}

// Ping checks database connectivity; satisfies httpx.HealthChecker.
func (d *Database) Ping(ctx context.Context) error {
	if err := d.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping: %w", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (d *Database) Close() error {
	return d.db.Close()
}

type txKey struct{}

// WithTx runs fn inside a single database transaction. The transaction is
// committed when fn returns nil and rolled back when fn returns an error,
// panics, or the context is cancelled mid-flight. A WithTx call inside an
// already-open transaction joins it instead of nesting.
func (d *Database) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if TxFromContext(ctx) != nil {
		return fn(ctx)
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	txCtx := context.WithValue(ctx, txKey{}, tx)

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			d.log.ErrorContext(ctx, "tx rollback failed", "error", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

// TxFromContext returns the transaction opened by WithTx, or nil when the
// context carries none.
func TxFromContext(ctx context.Context) *sql.Tx {
	tx, _ := ctx.Value(txKey{}).(*sql.Tx)
	return tx
}

// ExecContext runs stmt on the context's transaction when one is open,
// otherwise directly on the pool.
func (d *Database) ExecContext(ctx context.Context, stmt string, args ...any) (sql.Result, error) {
	if tx := TxFromContext(ctx); tx != nil {
		return tx.ExecContext(ctx, stmt, args...)
	}
	return d.db.ExecContext(ctx, stmt, args...)
}

// QueryRowContext runs query on the context's transaction when one is open,
// otherwise directly on the pool.
func (d *Database) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	if tx := TxFromContext(ctx); tx != nil {
		return tx.QueryRowContext(ctx, query, args...)
	}
	return d.db.QueryRowContext(ctx, query, args...)
}

// QueryContext runs query on the context's transaction when one is open,
// otherwise directly on the pool.
func (d *Database) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	if tx := TxFromContext(ctx); tx != nil {
		return tx.QueryContext(ctx, query, args...)
	}
	return d.db.QueryContext(ctx, query, args...)
}
