package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite"

	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/errs"
)

const (
	maxRetries = 10
	retryDelay = 2 * time.Second
	pingTTL    = 5 * time.Second
)

type Conn struct{ *pgxpool.Pool }

// Connect opens a pgx pool and retries the ping until the server answers or ctx ends.
func Connect(ctx context.Context, cfg config.DB) (*Conn, error) {
	pcfg, err := pgxpool.ParseConfig(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDBConn, err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDBConn, err)
	}

	for i := 1; i <= maxRetries; i++ {
		pctx, cancel := context.WithTimeout(ctx, pingTTL)
		err = pool.Ping(pctx)
		cancel()
		if err == nil {
			return &Conn{Pool: pool}, nil
		}
		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			pool.Close()
			return nil, fmt.Errorf("db ping canceled: %w", ctx.Err())
		}
	}
	pool.Close()
	return nil, fmt.Errorf("%w: unreachable after %d attempts: %v", errs.ErrDBConn, maxRetries, err)
}

func (c *Conn) Close() {
	if c != nil && c.Pool != nil {
		c.Pool.Close()
	}
}

// OpenSQLite opens a SQLite database file (":memory:" works too) and pings it.
func OpenSQLite(ctx context.Context, path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrDBConn, err)
	}
	// a second connection to ":memory:" would see an empty database
	db.SetMaxOpenConns(1)

	pctx, cancel := context.WithTimeout(ctx, pingTTL)
	defer cancel()
	if err := db.PingContext(pctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%w: %v", errs.ErrDBConn, err)
	}
	return db, nil
}
