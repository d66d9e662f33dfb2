//go:build e2e

package dbtest

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ResetDB wipes mutable state between subtests. Schema and extensions stay.
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := pool.Exec(ctx, "TRUNCATE TABLE reservations")
	return err
}
