package bootstrap

import (
	"desayuno/cmd/bootstrap/components"

	"go.uber.org/fx"
)

var Module = fx.Options(
	ConfigModule,
	DBModule,
	JWTModule,
	SignerModule,
	components.RepositoryModule,
	components.UseCaseModule,
	components.HandlerModule,
)
