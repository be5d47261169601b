package usecase

import (
	"context"
	"time"

	"desayuno/internal/domain/redemption"
	"desayuno/internal/domain/voucher"
	"desayuno/internal/infra/db"
	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type VoucherRepository interface {
	ReserveSequence(ctx context.Context, tx db.DBTX, stayID uuid.UUID, n int) (int, error)
	CreateBatch(ctx context.Context, tx db.DBTX, vouchers []*voucher.Voucher) error
	FindByCode(ctx context.Context, dbtx db.DBTX, code string) (*readmodel.VoucherRM, error)
	FindByStayID(ctx context.Context, dbtx db.DBTX, stayID uuid.UUID) ([]*readmodel.VoucherRM, error)
	UpdateStatus(ctx context.Context, dbtx db.DBTX, id uuid.UUID, from, to voucher.Status) (bool, error)
}

type RedemptionRepository interface {
	Insert(ctx context.Context, tx db.DBTX, red *redemption.Redemption) (bool, error)
	FindByVoucherID(ctx context.Context, dbtx db.DBTX, voucherID uuid.UUID) (*readmodel.RedemptionRM, error)
	FindByDeviceLocalID(ctx context.Context, dbtx db.DBTX, deviceID uuid.UUID, localID string) (*readmodel.RedemptionRM, error)
}

type AuditLogRepository interface {
	Insert(ctx context.Context, dbtx db.DBTX, kind, actor string, payload []byte) error
}

type DeviceRepository interface {
	FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*readmodel.DeviceRM, error)
}

// StayGateway is the external PMS collaborator.
type StayGateway interface {
	GetStay(ctx context.Context, stayID uuid.UUID) (*readmodel.StayRM, error)
}

// VoucherSigner covers the signing side; verification-only callers hold
// just the public key.
type VoucherSigner interface {
	Sign(code string, stayID uuid.UUID, validFrom, validUntil time.Time) string
	Verify(code string, stayID uuid.UUID, validFrom, validUntil time.Time, signature string) error
	PublicKey() string
}
