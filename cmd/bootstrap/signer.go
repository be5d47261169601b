package bootstrap

import (
	"desayuno/internal/pkg/config"
	"desayuno/internal/pkg/signer"
	"desayuno/internal/usecase"

	"go.uber.org/fx"
)

var SignerModule = fx.Module("signer",
	fx.Provide(
		fx.Annotate(
			NewSigner,
			fx.As(new(usecase.VoucherSigner)),
		),
	),
)

func NewSigner(cfg config.Config) (*signer.Signer, error) {
	return signer.New(cfg.Signer.KeySeed)
}
