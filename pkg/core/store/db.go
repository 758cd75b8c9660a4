package store

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrPoolNotInitialized is returned by repository calls made before InitDB.
var ErrPoolNotInitialized = errors.New("database pool not initialized")

var (
	pool *pgxpool.Pool
	mu   sync.Mutex
)

// InitDB opens the connection pool for dbURL. Calling it again after a
// successful open is a no-op.
func InitDB(ctx context.Context, dbURL string) error {
	mu.Lock()
	defer mu.Unlock()

	if pool != nil {
		return nil
	}
	if dbURL == "" {
		return fmt.Errorf("database URL not set")
	}

	config, err := pgxpool.ParseConfig(dbURL)
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	p, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return fmt.Errorf("failed to open database pool: %w", err)
	}
	pool = p
	return nil
}

// GetPool returns the database connection pool
func GetPool() *pgxpool.Pool {
	mu.Lock()
	defer mu.Unlock()
	return pool
}

// Close closes the database connection pool
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if pool != nil {
		pool.Close()
		pool = nil
	}
}
