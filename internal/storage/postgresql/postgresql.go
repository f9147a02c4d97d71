package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

// New builds the shared connection pool. The pool is created once at startup
// and injected into every repository; nothing else in the process holds
// database state.
func New(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return db, nil
}
