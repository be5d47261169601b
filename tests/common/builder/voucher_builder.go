//go:build unit || e2e

package builder

import (
	"time"

	reqdto "desayuno/internal/handler/dto/request"
	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type VoucherBuilder struct {
	ID         uuid.UUID
	Code       string
	StayID     uuid.UUID
	ValidFrom  time.Time
	ValidUntil time.Time
	Status     string
	Signature  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func NewVoucherBuilder() *VoucherBuilder {
	now := time.Now().UTC().Truncate(time.Second)
	return &VoucherBuilder{
		ID:         uuid.New(),
		Code:       "BRK-A1B2C3D4-001",
		StayID:     uuid.New(),
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(48 * time.Hour),
		Status:     "active",
		Signature:  "c2lnbmF0dXJl",
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (b *VoucherBuilder) With(mutate func(*VoucherBuilder)) *VoucherBuilder {
	mutate(b)
	return b
}

func (b *VoucherBuilder) BuildRM() *readmodel.VoucherRM {
	return &readmodel.VoucherRM{
		ID:         b.ID,
		Code:       b.Code,
		StayID:     b.StayID,
		ValidFrom:  b.ValidFrom,
		ValidUntil: b.ValidUntil,
		Status:     b.Status,
		Signature:  b.Signature,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

func (b *VoucherBuilder) BuildIssueRequestDTO() reqdto.IssueVouchersRequest {
	return reqdto.IssueVouchersRequest{
		StayID:     b.StayID,
		Quantity:   2,
		ValidFrom:  b.ValidFrom,
		ValidUntil: b.ValidUntil,
	}
}

func (b *VoucherBuilder) BuildRedeemRequestDTO() reqdto.RedeemVoucherRequest {
	return reqdto.RedeemVoucherRequest{
		Code:      b.Code,
		Signature: b.Signature,
		LocalID:   uuid.New().String(),
	}
}

type RedemptionBuilder struct {
	ID          uuid.UUID
	VoucherID   uuid.UUID
	CafeteriaID uuid.UUID
	DeviceID    uuid.UUID
	LocalID     string
	RedeemedAt  time.Time
}

func NewRedemptionBuilder() *RedemptionBuilder {
	return &RedemptionBuilder{
		ID:          uuid.New(),
		VoucherID:   uuid.New(),
		CafeteriaID: uuid.New(),
		DeviceID:    uuid.New(),
		LocalID:     uuid.New().String(),
		RedeemedAt:  time.Now().UTC().Truncate(time.Second),
	}
}

func (b *RedemptionBuilder) With(mutate func(*RedemptionBuilder)) *RedemptionBuilder {
	mutate(b)
	return b
}

func (b *RedemptionBuilder) BuildRM() *readmodel.RedemptionRM {
	return &readmodel.RedemptionRM{
		ID:          b.ID,
		VoucherID:   b.VoucherID,
		CafeteriaID: b.CafeteriaID,
		DeviceID:    b.DeviceID,
		LocalID:     b.LocalID,
		RedeemedAt:  b.RedeemedAt,
		CreatedAt:   b.RedeemedAt,
	}
}
