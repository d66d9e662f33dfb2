package components

import (
	"math/rand/v2"

	"resort-reservations/internal/domain/reservation"
	"resort-reservations/internal/pkg/clock"
	"resort-reservations/internal/usecase"
	"resort-reservations/internal/usecase/commands"
	"resort-reservations/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewCodeGenerator,
	reservation.NewFactory,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewReservationUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewCodeGenerator() *reservation.CodeGenerator {
	src := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return reservation.NewCodeGenerator(src)
}
