package bootstrap

import (
	"go.uber.org/fx"

	"table-booking/internal/infra/metrics"
	"table-booking/internal/usecase/shared"
)

var MetricsModule = fx.Module("metrics",
	fx.Provide(
		fx.Annotate(
			metrics.NewRecorder,
			fx.As(new(shared.Metrics)),
		),
	),
	fx.Invoke(metrics.Register),
)
