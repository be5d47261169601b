package components

import (
	"desayuno/internal/pkg/clock"
	"desayuno/internal/usecase"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	fx.Provide(
		clock.NewRealClock,
		usecase.NewAuthUseCase,
		usecase.NewIssuanceUseCase,
		usecase.NewRedemptionUseCase,
		usecase.NewSyncUseCase,
	),
)
