package gateway

import (
	"context"

	"desayuno/internal/infra"
	"desayuno/internal/infra/db"
	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// StayGateway reads stays owned by the property-management system. The
// table is a shared read-only view; this service never writes it.
type StayGateway struct {
	pool *pgxpool.Pool
}

func NewStayGateway(pool *pgxpool.Pool) *StayGateway {
	return &StayGateway{pool: pool}
}

func (g *StayGateway) GetStay(ctx context.Context, stayID uuid.UUID) (*readmodel.StayRM, error) {
	return g.getStay(ctx, g.pool, stayID)
}

func (g *StayGateway) getStay(ctx context.Context, dbtx db.DBTX, stayID uuid.UUID) (*readmodel.StayRM, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, guest_name, check_in, check_out, status
		FROM stays
		WHERE id = $1
	`, stayID)

	var rm readmodel.StayRM
	err := row.Scan(&rm.ID, &rm.GuestName, &rm.CheckIn, &rm.CheckOut, &rm.Status)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find stay", err)
	}
	return &rm, nil
}
