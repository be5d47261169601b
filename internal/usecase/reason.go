package usecase

import (
	"errors"

	"desayuno/internal/pkg/errs"
	"desayuno/internal/usecase/readmodel"
)

// Machine-readable reason codes reported across the API boundary.
const (
	ReasonNotFound         = "VOUCHER_NOT_FOUND"
	ReasonAlreadyRedeemed  = "ALREADY_REDEEMED"
	ReasonCancelled        = "VOUCHER_CANCELLED"
	ReasonExpired          = "VOUCHER_EXPIRED"
	ReasonNotYetValid      = "VOUCHER_NOT_YET_VALID"
	ReasonSignatureInvalid = "SIGNATURE_INVALID"
	ReasonLocalIDMismatch  = "LOCAL_ID_MISMATCH"
	ReasonValidation       = "VALIDATION_ERROR"
	ReasonInternal         = "INTERNAL_ERROR"
)

func ReasonFor(err error) string {
	switch {
	case errors.Is(err, errs.ErrVoucherNotFound):
		return ReasonNotFound
	case errors.Is(err, errs.ErrVoucherAlreadyUsed):
		return ReasonAlreadyRedeemed
	case errors.Is(err, errs.ErrVoucherCancelled):
		return ReasonCancelled
	case errors.Is(err, errs.ErrVoucherExpired):
		return ReasonExpired
	case errors.Is(err, errs.ErrVoucherNotYetValid):
		return ReasonNotYetValid
	case errors.Is(err, errs.ErrSignatureInvalid):
		return ReasonSignatureInvalid
	case errors.Is(err, errs.ErrLocalIDMismatch):
		return ReasonLocalIDMismatch
	case errors.Is(err, errs.ErrDomainValidation):
		return ReasonValidation
	default:
		return ReasonInternal
	}
}

// AlreadyRedeemedError carries the winning redemption so callers can
// report the server-side timestamp with the conflict.
type AlreadyRedeemedError struct {
	Existing *readmodel.RedemptionRM
}

func (e *AlreadyRedeemedError) Error() string {
	return "voucher already redeemed"
}

func (e *AlreadyRedeemedError) Is(target error) bool {
	return target == errs.ErrVoucherAlreadyUsed
}
