package components

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"

	"table-booking/internal/infra/db"
	"table-booking/internal/infra/readstore"
	"table-booking/internal/infra/uow"
	"table-booking/internal/usecase/queries"
	"table-booking/internal/usecase/shared"
)

var PersistenceModule = fx.Module("persistence",
	fx.Provide(
		NewDBTX,
		NewTxBeginner,
		// UnitOfWork
		fx.Annotate(
			uow.NewPostgresUoW,
			fx.As(new(shared.UnitOfWork)),
		),
		// Booking views
		fx.Annotate(
			readstore.NewBookingViewReadStore,
			fx.As(new(queries.BookingViewStore)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}

func NewTxBeginner(pool *pgxpool.Pool) uow.TxBeginner {
	return pool
}
