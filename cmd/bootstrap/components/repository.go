package components

import (
	"desayuno/internal/infra/db"
	"desayuno/internal/infra/gateway"
	repo_impl "desayuno/internal/infra/repository"
	"desayuno/internal/usecase"
	"desayuno/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		shared.NewTxManager,
		fx.Annotate(
			repo_impl.NewVoucherRepository,
			fx.As(new(usecase.VoucherRepository)),
		),
		fx.Annotate(
			repo_impl.NewRedemptionRepository,
			fx.As(new(usecase.RedemptionRepository)),
		),
		fx.Annotate(
			repo_impl.NewAuditLogRepository,
			fx.As(new(usecase.AuditLogRepository)),
		),
		fx.Annotate(
			repo_impl.NewDeviceRepository,
			fx.As(new(usecase.DeviceRepository)),
		),
		fx.Annotate(
			gateway.NewStayGateway,
			fx.As(new(usecase.StayGateway)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
