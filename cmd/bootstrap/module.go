package bootstrap

import (
	"hotel-checkout/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// Infrastructure opens every outbound connection the checkout needs:
// postgres, the prebook redis, the confirmation mail topic and the gateways.
var Infrastructure = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	KafkaModule,
	JWTModule,
	GatewayModule,
)

var Module = fx.Options(
	Infrastructure,
	components.PersistenceModule,
	components.ExternalModule,
	components.UseCaseModule,
	components.HandlerModule,
)
