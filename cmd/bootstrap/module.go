package bootstrap

import (
	"go.uber.org/fx"

	"table-booking/cmd/bootstrap/components"
)

var Module = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	JWTModule,
	MetricsModule,
	components.PersistenceModule,
	components.UseCaseModule,
	components.HandlerModule,
)
