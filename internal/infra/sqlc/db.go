// Query layer in sqlc output shape: typed params and rows over a DBTX so the
// same queries run against a pool, a transaction, or a test double.
package sqlc

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func New() *Queries {
	return &Queries{}
}

type Queries struct{}
