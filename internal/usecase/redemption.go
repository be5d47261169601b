package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"desayuno/internal/domain/redemption"
	"desayuno/internal/domain/voucher"
	"desayuno/internal/infra"
	"desayuno/internal/infra/db"
	"desayuno/internal/pkg/clock"
	"desayuno/internal/pkg/errs"
	"desayuno/internal/usecase/readmodel"
	"desayuno/internal/usecase/shared"

	"github.com/google/uuid"
)

type RedeemParams struct {
	Code        string
	Signature   string // optional; verified when supplied
	CafeteriaID uuid.UUID
	DeviceID    uuid.UUID
	LocalID     string
	// RedeemedAt is the client-observed redemption time. Zero means "now";
	// offline intents replayed by the sync reconciler carry their original
	// local timestamp.
	RedeemedAt time.Time
}

type ValidationResult struct {
	Valid   bool
	Reason  string
	Voucher *readmodel.VoucherRM
}

type RedemptionUseCase interface {
	Redeem(ctx context.Context, params RedeemParams) (*readmodel.RedemptionRM, error)
	Validate(ctx context.Context, code, signature string) (*ValidationResult, error)
	Cancel(ctx context.Context, code, reason, userID string) error
}

type redemptionUseCaseImpl struct {
	voucherRepo    VoucherRepository
	redemptionRepo RedemptionRepository
	auditRepo      AuditLogRepository
	signer         VoucherSigner
	db             db.DBTX
	tx             shared.TxManager
	clock          clock.Clock
}

func NewRedemptionUseCase(
	voucherRepo VoucherRepository,
	redemptionRepo RedemptionRepository,
	auditRepo AuditLogRepository,
	signer VoucherSigner,
	dbtx db.DBTX,
	tx shared.TxManager,
	clk clock.Clock,
) RedemptionUseCase {
	return &redemptionUseCaseImpl{
		voucherRepo:    voucherRepo,
		redemptionRepo: redemptionRepo,
		auditRepo:      auditRepo,
		signer:         signer,
		db:             dbtx,
		tx:             tx,
		clock:          clk,
	}
}

// Redeem consumes a voucher exactly once. The storage layer's unique
// constraint on voucher_id decides concurrent races; a retry with the same
// (device, localId) returns the original redemption.
func (u *redemptionUseCaseImpl) Redeem(ctx context.Context, params RedeemParams) (*readmodel.RedemptionRM, error) {
	now := u.clock.Now()
	redeemedAt := params.RedeemedAt
	if redeemedAt.IsZero() {
		redeemedAt = now
	}

	rm, v, err := u.loadVoucher(ctx, params.Code, params.Signature)
	if err != nil {
		return nil, err
	}

	if v.ShouldExpire(now) {
		if err := u.expire(ctx, v.ID()); err != nil {
			return nil, err
		}
		return nil, errs.ErrVoucherExpired
	}

	if err := v.CanRedeem(now); err != nil {
		return u.mapRedeemGuard(ctx, err, rm.ID, params)
	}

	red := redemption.New(rm.ID, params.CafeteriaID, params.DeviceID, params.LocalID, redeemedAt)

	err = u.tx.WithTx(ctx, func(tx db.DBTX) error {
		inserted, err := u.redemptionRepo.Insert(ctx, tx, red)
		if err != nil {
			// DUPLICATE_KEY here can only be the (device_id, local_id)
			// index: the voucher_id index is absorbed by the insert's
			// conflict clause. The localId was reused against a
			// different voucher.
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return errs.ErrLocalIDMismatch
			}
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !inserted {
			// Another redemption won the race inside the constraint.
			return errRedemptionLost
		}

		ok, err := u.voucherRepo.UpdateStatus(ctx, tx, rm.ID, voucher.StatusActive, voucher.StatusRedeemed)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !ok {
			// The voucher left Active between our read and this write
			// (e.g. a concurrent cancellation). Abort and report the
			// terminal state.
			return errVoucherStateMoved
		}

		if err := u.writeRedemptionAudit(ctx, tx, red, params.Code); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}

		return nil
	})
	if err == nil {
		return redemptionToRM(red), nil
	}

	switch {
	case errors.Is(err, errRedemptionLost):
		return u.resolveExistingRedemption(ctx, rm.ID, params)
	case errors.Is(err, errVoucherStateMoved):
		return nil, u.terminalStateError(ctx, params.Code)
	default:
		return nil, err
	}
}

// Validate runs the same checks as Redeem without consuming the voucher.
// Its only permitted mutation is the lazy-expiry status flip.
func (u *redemptionUseCaseImpl) Validate(ctx context.Context, code, signature string) (*ValidationResult, error) {
	now := u.clock.Now()

	rm, v, err := u.loadVoucher(ctx, code, signature)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrVoucherNotFound):
			return &ValidationResult{Valid: false, Reason: ReasonNotFound}, nil
		case errors.Is(err, errs.ErrSignatureInvalid):
			return &ValidationResult{Valid: false, Reason: ReasonSignatureInvalid}, nil
		default:
			return nil, err
		}
	}

	if v.ShouldExpire(now) {
		if err := u.expire(ctx, v.ID()); err != nil {
			return nil, err
		}
		rm.Status = voucher.StatusExpired.String()
		return &ValidationResult{Valid: false, Reason: ReasonExpired, Voucher: rm}, nil
	}

	if err := v.CanRedeem(now); err != nil {
		return &ValidationResult{Valid: false, Reason: guardReason(err), Voucher: rm}, nil
	}

	return &ValidationResult{Valid: true, Voucher: rm}, nil
}

// Cancel flips an Active voucher to Cancelled. Vouchers in a terminal
// state report that state instead of cancelling.
func (u *redemptionUseCaseImpl) Cancel(ctx context.Context, code, reason, userID string) error {
	now := u.clock.Now()

	rm, v, err := u.loadVoucher(ctx, code, "")
	if err != nil {
		return err
	}

	if v.ShouldExpire(now) {
		if err := u.expire(ctx, v.ID()); err != nil {
			return err
		}
		return errs.ErrVoucherExpired
	}

	if err := v.Cancel(now); err != nil {
		return errs.Mark(err, guardSentinel(err))
	}

	err = u.tx.WithTx(ctx, func(tx db.DBTX) error {
		ok, err := u.voucherRepo.UpdateStatus(ctx, tx, rm.ID, voucher.StatusActive, voucher.StatusCancelled)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if !ok {
			return errVoucherStateMoved
		}

		payload, err := json.Marshal(map[string]any{
			"code":   code,
			"reason": reason,
		})
		if err != nil {
			return err
		}
		if err := u.auditRepo.Insert(ctx, tx, "voucher_cancelled", userID, payload); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if errors.Is(err, errVoucherStateMoved) {
		return u.terminalStateError(ctx, code)
	}
	return err
}

var (
	errRedemptionLost    = errs.New("redemption lost the unique-constraint race")
	errVoucherStateMoved = errs.New("voucher status changed concurrently")
)

func (u *redemptionUseCaseImpl) loadVoucher(ctx context.Context, code, signature string) (*readmodel.VoucherRM, *voucher.Voucher, error) {
	rm, err := u.voucherRepo.FindByCode(ctx, u.db, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, errs.ErrVoucherNotFound
		}
		return nil, nil, errs.Wrap(err, "failed to find voucher")
	}

	if signature != "" {
		if err := u.signer.Verify(rm.Code, rm.StayID, rm.ValidFrom, rm.ValidUntil, signature); err != nil {
			return nil, nil, errs.ErrSignatureInvalid
		}
	}

	v, err := voucherFromRM(rm)
	if err != nil {
		return nil, nil, err
	}
	return rm, v, nil
}

// expire durably records lazy expiry before the operation is rejected, so
// later validations read the terminal state instead of re-deriving it.
func (u *redemptionUseCaseImpl) expire(ctx context.Context, voucherID uuid.UUID) error {
	_, err := u.voucherRepo.UpdateStatus(ctx, u.db, voucherID, voucher.StatusActive, voucher.StatusExpired)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	return nil
}

// mapRedeemGuard handles guard failures on the initial read. A voucher
// already redeemed by the same (device, localId) is an idempotent retry
// and returns the original record.
func (u *redemptionUseCaseImpl) mapRedeemGuard(ctx context.Context, guardErr error, voucherID uuid.UUID, params RedeemParams) (*readmodel.RedemptionRM, error) {
	if errors.Is(guardErr, voucher.ErrAlreadyRedeemed) {
		return u.resolveExistingRedemption(ctx, voucherID, params)
	}
	return nil, errs.Mark(guardErr, guardSentinel(guardErr))
}

func (u *redemptionUseCaseImpl) resolveExistingRedemption(ctx context.Context, voucherID uuid.UUID, params RedeemParams) (*readmodel.RedemptionRM, error) {
	existing, err := u.redemptionRepo.FindByVoucherID(ctx, u.db, voucherID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if existing.DeviceID == params.DeviceID && existing.LocalID == params.LocalID {
		return existing, nil
	}
	return nil, &AlreadyRedeemedError{Existing: existing}
}

func (u *redemptionUseCaseImpl) terminalStateError(ctx context.Context, code string) error {
	rm, err := u.voucherRepo.FindByCode(ctx, u.db, code)
	if err != nil {
		return errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	switch voucher.Status(rm.Status) {
	case voucher.StatusRedeemed:
		return errs.ErrVoucherAlreadyUsed
	case voucher.StatusCancelled:
		return errs.ErrVoucherCancelled
	case voucher.StatusExpired:
		return errs.ErrVoucherExpired
	default:
		return errs.ErrDatabaseOperationFailed
	}
}

func (u *redemptionUseCaseImpl) writeRedemptionAudit(ctx context.Context, tx db.DBTX, red *redemption.Redemption, code string) error {
	payload, err := json.Marshal(map[string]any{
		"code":         code,
		"cafeteria_id": red.CafeteriaID(),
		"local_id":     red.LocalID(),
		"redeemed_at":  red.RedeemedAt(),
	})
	if err != nil {
		return err
	}
	return u.auditRepo.Insert(ctx, tx, "voucher_redeemed", red.DeviceID().String(), payload)
}

func guardSentinel(err error) error {
	switch {
	case errors.Is(err, voucher.ErrAlreadyRedeemed):
		return errs.ErrVoucherAlreadyUsed
	case errors.Is(err, voucher.ErrAlreadyCancelled):
		return errs.ErrVoucherCancelled
	case errors.Is(err, voucher.ErrExpired):
		return errs.ErrVoucherExpired
	case errors.Is(err, voucher.ErrNotYetValid):
		return errs.ErrVoucherNotYetValid
	default:
		return errs.ErrDomainValidation
	}
}

func guardReason(err error) string {
	return ReasonFor(guardSentinel(err))
}

func voucherFromRM(rm *readmodel.VoucherRM) (*voucher.Voucher, error) {
	window, err := voucher.NewDateWindow(rm.ValidFrom, rm.ValidUntil)
	if err != nil {
		return nil, errs.Wrap(err, "stored voucher has invalid window")
	}
	status, err := voucher.NewStatus(rm.Status)
	if err != nil {
		return nil, errs.Wrap(err, "stored voucher has invalid status")
	}
	return voucher.Reconstruct(
		rm.ID,
		voucher.Code(rm.Code),
		rm.StayID,
		window,
		status,
		rm.Signature,
		rm.CreatedAt,
		rm.UpdatedAt,
	), nil
}

func redemptionToRM(r *redemption.Redemption) *readmodel.RedemptionRM {
	return &readmodel.RedemptionRM{
		ID:          r.ID(),
		VoucherID:   r.VoucherID(),
		CafeteriaID: r.CafeteriaID(),
		DeviceID:    r.DeviceID(),
		LocalID:     r.LocalID(),
		RedeemedAt:  r.RedeemedAt(),
		CreatedAt:   r.CreatedAt(),
	}
}
