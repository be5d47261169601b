package voucher

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrAlreadyRedeemed  = errors.New("Voucher ya está redimido")
	ErrAlreadyCancelled = errors.New("Voucher ya está cancelado")
	ErrExpired          = errors.New("voucher expired")
	ErrNotYetValid      = errors.New("voucher not yet valid")
)

// Voucher is a signed, single-use breakfast entitlement bound to a stay.
// Status transitions are monotonic: once a voucher leaves Active it never
// returns.
type Voucher struct {
	id        uuid.UUID
	code      Code
	stayID    uuid.UUID
	window    DateWindow
	status    Status
	signature string
	createdAt time.Time
	updatedAt time.Time
}

func NewVoucher(code Code, stayID uuid.UUID, window DateWindow, signature string) *Voucher {
	return &Voucher{
		id:        uuid.New(),
		code:      code,
		stayID:    stayID,
		window:    window,
		status:    StatusActive,
		signature: signature,
	}
}

func Reconstruct(
	id uuid.UUID,
	code Code,
	stayID uuid.UUID,
	window DateWindow,
	status Status,
	signature string,
	createdAt, updatedAt time.Time,
) *Voucher {
	return &Voucher{
		id:        id,
		code:      code,
		stayID:    stayID,
		window:    window,
		status:    status,
		signature: signature,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// CanRedeem reports whether a redemption at time now is allowed, with the
// terminal status or window violation as the error.
func (v *Voucher) CanRedeem(now time.Time) error {
	if err := v.guardActive(now); err != nil {
		return err
	}
	if v.window.StartsAfter(now) {
		return ErrNotYetValid
	}
	return nil
}

// MarkRedeemed flips Active → Redeemed.
func (v *Voucher) MarkRedeemed(now time.Time) error {
	if err := v.CanRedeem(now); err != nil {
		return err
	}
	v.status = StatusRedeemed
	return nil
}

// Cancel flips Active → Cancelled. Cancelling a redeemed or cancelled
// voucher reports which terminal state blocked it.
func (v *Voucher) Cancel(now time.Time) error {
	if err := v.guardActive(now); err != nil {
		return err
	}
	v.status = StatusCancelled
	return nil
}

// ShouldExpire reports whether a still-Active voucher is past its window
// and must be durably flipped to Expired before the attempted operation
// is rejected.
func (v *Voucher) ShouldExpire(now time.Time) bool {
	return v.status == StatusActive && v.window.ExpiredAt(now)
}

// MarkExpired records lazy expiry.
func (v *Voucher) MarkExpired() {
	if v.status == StatusActive {
		v.status = StatusExpired
	}
}

func (v *Voucher) guardActive(now time.Time) error {
	switch v.status {
	case StatusRedeemed:
		return ErrAlreadyRedeemed
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusExpired:
		return ErrExpired
	}
	if v.window.ExpiredAt(now) {
		return ErrExpired
	}
	return nil
}

func (v *Voucher) IsActive() bool { return v.status == StatusActive }

func (v *Voucher) ID() uuid.UUID        { return v.id }
func (v *Voucher) Code() Code           { return v.code }
func (v *Voucher) StayID() uuid.UUID    { return v.stayID }
func (v *Voucher) Window() DateWindow   { return v.window }
func (v *Voucher) Status() Status       { return v.status }
func (v *Voucher) Signature() string    { return v.signature }
func (v *Voucher) CreatedAt() time.Time { return v.createdAt }
func (v *Voucher) UpdatedAt() time.Time { return v.updatedAt }
