package redemption

import (
	"time"

	"github.com/google/uuid"
)

// Redemption is the durable record of a voucher having been consumed.
// Exactly one exists per voucher; rows are never updated or deleted.
type Redemption struct {
	id          uuid.UUID
	voucherID   uuid.UUID
	cafeteriaID uuid.UUID
	deviceID    uuid.UUID
	localID     string
	redeemedAt  time.Time
	createdAt   time.Time
}

func New(voucherID, cafeteriaID, deviceID uuid.UUID, localID string, redeemedAt time.Time) *Redemption {
	return &Redemption{
		id:          uuid.New(),
		voucherID:   voucherID,
		cafeteriaID: cafeteriaID,
		deviceID:    deviceID,
		localID:     localID,
		redeemedAt:  redeemedAt,
	}
}

func Reconstruct(id, voucherID, cafeteriaID, deviceID uuid.UUID, localID string, redeemedAt, createdAt time.Time) *Redemption {
	return &Redemption{
		id:          id,
		voucherID:   voucherID,
		cafeteriaID: cafeteriaID,
		deviceID:    deviceID,
		localID:     localID,
		redeemedAt:  redeemedAt,
		createdAt:   createdAt,
	}
}

func (r *Redemption) ID() uuid.UUID          { return r.id }
func (r *Redemption) VoucherID() uuid.UUID   { return r.voucherID }
func (r *Redemption) CafeteriaID() uuid.UUID { return r.cafeteriaID }
func (r *Redemption) DeviceID() uuid.UUID    { return r.deviceID }
func (r *Redemption) LocalID() string        { return r.localID }
func (r *Redemption) RedeemedAt() time.Time  { return r.redeemedAt }
func (r *Redemption) CreatedAt() time.Time   { return r.createdAt }

// MatchesIntent reports whether this record was created by the same
// client intent (same device, same idempotency key).
func (r *Redemption) MatchesIntent(deviceID uuid.UUID, localID string) bool {
	return r.deviceID == deviceID && r.localID == localID
}
