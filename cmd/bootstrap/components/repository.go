package components

import (
	"resort-reservations/internal/infra/readstore"
	"resort-reservations/internal/infra/sqlc"
	"resort-reservations/internal/infra/uow"
	"resort-reservations/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewSQLQueries,
		NewDBTX,
		uow.NewPostgresUoW,
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
	),
)

func NewSQLQueries(_ *pgxpool.Pool) *sqlc.Queries {
	return sqlc.New()
}

func NewDBTX(pool *pgxpool.Pool) sqlc.DBTX {
	return pool
}
