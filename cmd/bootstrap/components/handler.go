package components

import (
	"go.uber.org/fx"

	"table-booking/internal/handler"
	"table-booking/internal/handler/api"
	"table-booking/internal/handler/middleware"
	"table-booking/internal/pkg/jwt"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewAvailabilityHandler,
		api.NewSettingsHandler,
		api.NewBookingHandler,
		NewHandlers,
		fx.Annotate(
			func(s *jwt.Service) *jwt.Service { return s },
			fx.As(new(middleware.TokenValidator)),
		),
		middleware.NewAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)

func NewHandlers(a *api.AvailabilityHandler, s *api.SettingsHandler, b *api.BookingHandler) handler.Handlers {
	return handler.Handlers{Availability: a, Settings: s, Bookings: b}
}
