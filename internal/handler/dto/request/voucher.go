package request

import (
	"strings"
	"time"

	"desayuno/internal/usecase"

	"github.com/google/uuid"
)

type IssueVouchersRequest struct {
	StayID     uuid.UUID `json:"stay_id" binding:"required"`
	Quantity   int       `json:"quantity" binding:"required,min=1,max=100"`
	ValidFrom  time.Time `json:"valid_from" binding:"required"`
	ValidUntil time.Time `json:"valid_until" binding:"required"`
}

func (r IssueVouchersRequest) ToParams(actor string) usecase.IssueVouchersParams {
	return usecase.IssueVouchersParams{
		StayID:     r.StayID,
		Quantity:   r.Quantity,
		ValidFrom:  r.ValidFrom,
		ValidUntil: r.ValidUntil,
		Actor:      actor,
	}
}

type ValidateVoucherRequest struct {
	Code      string `json:"code" binding:"required"`
	Signature string `json:"signature,omitempty"`
}

type RedeemVoucherRequest struct {
	Code      string `json:"code" binding:"required"`
	Signature string `json:"signature,omitempty"`
	LocalID   string `json:"local_id" binding:"required"`
	// Zero means the server clock is authoritative; replayed offline
	// intents carry the time the meal was actually served.
	RedeemedAt time.Time `json:"redeemed_at,omitempty"`
}

func (r RedeemVoucherRequest) ToParams(deviceID, cafeteriaID uuid.UUID) usecase.RedeemParams {
	return usecase.RedeemParams{
		Code:        strings.TrimSpace(r.Code),
		Signature:   r.Signature,
		CafeteriaID: cafeteriaID,
		DeviceID:    deviceID,
		LocalID:     r.LocalID,
		RedeemedAt:  r.RedeemedAt,
	}
}

type CancelVoucherRequest struct {
	Code   string `json:"code" binding:"required"`
	Reason string `json:"reason" binding:"required"`
	UserID string `json:"user_id" binding:"required"`
}
