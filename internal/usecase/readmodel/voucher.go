package readmodel

import (
	"time"

	"github.com/google/uuid"
)

// Read models cross the usecase boundary; handlers convert them to
// response DTOs without reaching into domain entities.

type VoucherRM struct {
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

type RedemptionRM struct {
	ID          uuid.UUID
	VoucherID   uuid.UUID
	CafeteriaID uuid.UUID
	DeviceID    uuid.UUID
	LocalID     string
	RedeemedAt  time.Time
	CreatedAt   time.Time
}

type StayRM struct {
	ID        uuid.UUID
	GuestName string
	CheckIn   time.Time
	CheckOut  time.Time
	Status    string
}

type DeviceRM struct {
	ID          uuid.UUID
	CafeteriaID uuid.UUID
	Name        string
	KeyHash     string
	IsActive    bool
}
