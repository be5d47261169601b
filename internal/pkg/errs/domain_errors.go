package errs

import "errors"

// Sentinel errors shared across usecase layers. Handlers map these to
// machine-readable reason codes at the boundary.
var (
	// Stay errors
	ErrStayNotFound  = errors.New("stay not found")
	ErrStayNotActive = errors.New("stay not active")

	// Voucher errors
	ErrVoucherNotFound     = errors.New("voucher not found")
	ErrVoucherExpired      = errors.New("voucher expired")
	ErrVoucherCancelled    = errors.New("voucher cancelled")
	ErrVoucherNotYetValid  = errors.New("voucher not yet valid")
	ErrVoucherAlreadyUsed  = errors.New("voucher already redeemed")
	ErrSignatureInvalid    = errors.New("signature verification failed")
	ErrLocalIDMismatch     = errors.New("local id already used for another voucher")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)
