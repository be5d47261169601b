package repository

import (
	"context"

	"desayuno/internal/domain/voucher"
	"desayuno/internal/infra"
	"desayuno/internal/infra/db"
	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type VoucherRepository struct{}

func NewVoucherRepository() *VoucherRepository {
	return &VoucherRepository{}
}

// ReserveSequence atomically reserves a block of n sequential code numbers
// for a stay and returns the first number of the block. Running inside the
// issuance transaction keeps numbering race-free across concurrent calls.
func (r *VoucherRepository) ReserveSequence(ctx context.Context, tx db.DBTX, stayID uuid.UUID, n int) (int, error) {
	var next int
	err := tx.QueryRow(ctx, `
		INSERT INTO voucher_sequences (stay_id, next_seq)
		VALUES ($1, $2 + 1)
		ON CONFLICT (stay_id)
		DO UPDATE SET next_seq = voucher_sequences.next_seq + $2
		RETURNING next_seq
	`, stayID, n).Scan(&next)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to reserve voucher sequence", err)
	}
	return next - n, nil
}

func (r *VoucherRepository) CreateBatch(ctx context.Context, tx db.DBTX, vouchers []*voucher.Voucher) error {
	for _, v := range vouchers {
		_, err := tx.Exec(ctx, `
			INSERT INTO vouchers (id, code, stay_id, valid_from, valid_until, status, signature)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, v.ID(), v.Code().String(), v.StayID(), v.Window().From(), v.Window().Until(), v.Status().String(), v.Signature())
		if err != nil {
			return infra.WrapRepoErr("failed to create voucher", err)
		}
	}
	return nil
}

func (r *VoucherRepository) FindByCode(ctx context.Context, dbtx db.DBTX, code string) (*readmodel.VoucherRM, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, code, stay_id, valid_from, valid_until, status, signature, created_at, updated_at
		FROM vouchers
		WHERE code = $1
	`, code)

	var rm readmodel.VoucherRM
	err := row.Scan(&rm.ID, &rm.Code, &rm.StayID, &rm.ValidFrom, &rm.ValidUntil, &rm.Status, &rm.Signature, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find voucher by code", err)
	}
	return &rm, nil
}

func (r *VoucherRepository) FindByStayID(ctx context.Context, dbtx db.DBTX, stayID uuid.UUID) ([]*readmodel.VoucherRM, error) {
	rows, err := dbtx.Query(ctx, `
		SELECT id, code, stay_id, valid_from, valid_until, status, signature, created_at, updated_at
		FROM vouchers
		WHERE stay_id = $1
		ORDER BY code
	`, stayID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list vouchers by stay", err)
	}
	defer rows.Close()

	var result []*readmodel.VoucherRM
	for rows.Next() {
		var rm readmodel.VoucherRM
		if err := rows.Scan(&rm.ID, &rm.Code, &rm.StayID, &rm.ValidFrom, &rm.ValidUntil, &rm.Status, &rm.Signature, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan voucher row", err)
		}
		result = append(result, &rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate voucher rows", err)
	}
	return result, nil
}

// UpdateStatus transitions a voucher from one status to another. The
// `status = $3` guard keeps transitions monotonic even when two processes
// race; zero rows affected means the voucher was no longer in the expected
// state and the caller must re-read.
func (r *VoucherRepository) UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, from, to voucher.Status) (bool, error) {
	tag, err := dbtx.Exec(ctx, `
		UPDATE vouchers
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = $3
	`, id, to.String(), from.String())
	if err != nil {
		return false, infra.WrapRepoErr("failed to update voucher status", err)
	}
	return tag.RowsAffected() == 1, nil
}
