package components

import (
	"go.uber.org/fx"

	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/config"
	"table-booking/internal/usecase/commands"
	"table-booking/internal/usecase/queries"
	"table-booking/internal/usecase/shared"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	NewBookingPolicy,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewBookingUseCase,
		commands.NewSettingsUseCase,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewAvailabilityQueries,
		queries.NewBookingQueries,
	),
)

func NewBookingPolicy(cfg config.Config) shared.BookingPolicy {
	return shared.BookingPolicy{
		DefaultDuration: cfg.Booking.DefaultDuration,
		WindowDays:      cfg.Booking.WindowDays,
		Location:        cfg.Booking.Location(),
		DialCode:        cfg.Booking.DefaultDialCode,
	}
}
