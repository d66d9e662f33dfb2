package components

import (
	"resort-reservations/internal/handler"
	"resort-reservations/internal/handler/api"
	"resort-reservations/internal/handler/middleware"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewReservationHandler,
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
