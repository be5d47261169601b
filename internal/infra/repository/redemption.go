package repository

import (
	"context"
	"errors"

	"desayuno/internal/domain/redemption"
	"desayuno/internal/infra"
	"desayuno/internal/infra/db"
	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const deviceLocalConstraint = "redemptions_device_local_key"

// ErrLocalIDReused fires when a client resubmits a localId against a
// different voucher than its first use. The localId is scoped to one
// (device, voucher) pair.
var ErrLocalIDReused = errors.New("local id already bound to another voucher")

type RedemptionRepository struct{}

func NewRedemptionRepository() *RedemptionRepository {
	return &RedemptionRepository{}
}

// Insert attempts to record a redemption. The ON CONFLICT clause targets
// the voucher_id unique index: when another redemption already exists the
// insert is a no-op and Insert returns false, turning a concurrent race
// into a deterministic single-winner outcome. A violation of the
// (device_id, local_id) index means localId reuse across vouchers and
// surfaces as ErrLocalIDReused.
func (r *RedemptionRepository) Insert(ctx context.Context, tx db.DBTX, red *redemption.Redemption) (bool, error) {
	tag, err := tx.Exec(ctx, `
		INSERT INTO redemptions (id, voucher_id, cafeteria_id, device_id, local_id, redeemed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (voucher_id) DO NOTHING
	`, red.ID(), red.VoucherID(), red.CafeteriaID(), red.DeviceID(), red.LocalID(), red.RedeemedAt())
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == deviceLocalConstraint {
			return false, infra.WrapRepoErr("local id reused", ErrLocalIDReused, infra.KindDuplicateKey)
		}
		return false, infra.WrapRepoErr("failed to insert redemption", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *RedemptionRepository) FindByVoucherID(ctx context.Context, dbtx db.DBTX, voucherID uuid.UUID) (*readmodel.RedemptionRM, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, voucher_id, cafeteria_id, device_id, local_id, redeemed_at, created_at
		FROM redemptions
		WHERE voucher_id = $1
	`, voucherID)
	return scanRedemption(row)
}

func (r *RedemptionRepository) FindByDeviceLocalID(ctx context.Context, dbtx db.DBTX, deviceID uuid.UUID, localID string) (*readmodel.RedemptionRM, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, voucher_id, cafeteria_id, device_id, local_id, redeemed_at, created_at
		FROM redemptions
		WHERE device_id = $1 AND local_id = $2
	`, deviceID, localID)
	return scanRedemption(row)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRedemption(row rowScanner) (*readmodel.RedemptionRM, error) {
	var rm readmodel.RedemptionRM
	err := row.Scan(&rm.ID, &rm.VoucherID, &rm.CafeteriaID, &rm.DeviceID, &rm.LocalID, &rm.RedeemedAt, &rm.CreatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find redemption", err)
	}
	return &rm, nil
}
