package usecase

import (
	"context"
	"encoding/json"
	"time"

	"desayuno/internal/domain/voucher"
	"desayuno/internal/infra"
	"desayuno/internal/infra/db"
	"desayuno/internal/pkg/errs"
	"desayuno/internal/usecase/readmodel"
	"desayuno/internal/usecase/shared"

	"github.com/google/uuid"
)

const stayStatusActive = "active"

type IssueVouchersParams struct {
	StayID     uuid.UUID
	Quantity   int
	ValidFrom  time.Time
	ValidUntil time.Time
	Actor      string
}

type IssuanceUseCase interface {
	IssueVouchers(ctx context.Context, params IssueVouchersParams) ([]*readmodel.VoucherRM, error)
	GetStayVouchers(ctx context.Context, stayID uuid.UUID) ([]*readmodel.VoucherRM, error)
}

type issuanceUseCaseImpl struct {
	voucherRepo VoucherRepository
	auditRepo   AuditLogRepository
	stays       StayGateway
	signer      VoucherSigner
	db          db.DBTX
	tx          shared.TxManager
}

func NewIssuanceUseCase(
	voucherRepo VoucherRepository,
	auditRepo AuditLogRepository,
	stays StayGateway,
	signer VoucherSigner,
	dbtx db.DBTX,
	tx shared.TxManager,
) IssuanceUseCase {
	return &issuanceUseCaseImpl{
		voucherRepo: voucherRepo,
		auditRepo:   auditRepo,
		stays:       stays,
		signer:      signer,
		db:          dbtx,
		tx:          tx,
	}
}

func (u *issuanceUseCaseImpl) IssueVouchers(ctx context.Context, params IssueVouchersParams) ([]*readmodel.VoucherRM, error) {
	if params.Quantity < 1 {
		return nil, errs.Mark(errs.New("quantity must be at least 1"), errs.ErrDomainValidation)
	}

	stay, err := u.stays.GetStay(ctx, params.StayID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrStayNotFound
		}
		return nil, errs.Wrap(err, "failed to find stay")
	}
	if stay.Status != stayStatusActive {
		return nil, errs.ErrStayNotActive
	}

	window, err := voucher.NewDateWindowWithinStay(params.ValidFrom, params.ValidUntil, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	var vouchers []*voucher.Voucher
	err = u.tx.WithTx(ctx, func(tx db.DBTX) error {
		start, err := u.voucherRepo.ReserveSequence(ctx, tx, params.StayID, params.Quantity)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		batch := make([]*voucher.Voucher, 0, params.Quantity)
		for i := 0; i < params.Quantity; i++ {
			code := voucher.NewCode(params.StayID, start+i)
			sig := u.signer.Sign(code.String(), params.StayID, window.From(), window.Until())
			batch = append(batch, voucher.NewVoucher(code, params.StayID, window, sig))
		}

		if err := u.voucherRepo.CreateBatch(ctx, tx, batch); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		if err := u.writeAuditEntry(ctx, tx, params, batch); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		vouchers = batch
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := make([]*readmodel.VoucherRM, len(vouchers))
	for i, v := range vouchers {
		result[i] = voucherToRM(v)
	}
	return result, nil
}

func (u *issuanceUseCaseImpl) GetStayVouchers(ctx context.Context, stayID uuid.UUID) ([]*readmodel.VoucherRM, error) {
	vouchers, err := u.voucherRepo.FindByStayID(ctx, u.db, stayID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list stay vouchers")
	}
	return vouchers, nil
}

// One audit entry per issuance batch, not per voucher.
func (u *issuanceUseCaseImpl) writeAuditEntry(ctx context.Context, tx db.DBTX, params IssueVouchersParams, batch []*voucher.Voucher) error {
	codes := make([]string, len(batch))
	for i, v := range batch {
		codes[i] = v.Code().String()
	}
	payload, err := json.Marshal(map[string]any{
		"stay_id":     params.StayID,
		"quantity":    params.Quantity,
		"valid_from":  params.ValidFrom,
		"valid_until": params.ValidUntil,
		"codes":       codes,
	})
	if err != nil {
		return err
	}
	return u.auditRepo.Insert(ctx, tx, "vouchers_issued", params.Actor, payload)
}

func voucherToRM(v *voucher.Voucher) *readmodel.VoucherRM {
	return &readmodel.VoucherRM{
		ID:         v.ID(),
		Code:       v.Code().String(),
		StayID:     v.StayID(),
		ValidFrom:  v.Window().From(),
		ValidUntil: v.Window().Until(),
		Status:     v.Status().String(),
		Signature:  v.Signature(),
		CreatedAt:  v.CreatedAt(),
		UpdatedAt:  v.UpdatedAt(),
	}
}
