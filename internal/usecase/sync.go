package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Sync outcome tags. Every intent resolves to exactly one; an exception
// in one item never aborts its siblings.
const (
	OutcomeSynced   = "synced"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

type SyncIntent struct {
	LocalID        string
	VoucherCode    string
	CafeteriaID    uuid.UUID
	LocalTimestamp time.Time
}

type SyncItemResult struct {
	LocalID         string
	Status          string
	Reason          string
	ServerTimestamp *time.Time
}

type SyncUseCase interface {
	SyncBatch(ctx context.Context, deviceID uuid.UUID, intents []SyncIntent) []SyncItemResult
}

type syncUseCaseImpl struct {
	redemptions RedemptionUseCase
	logger      *slog.Logger
}

func NewSyncUseCase(redemptions RedemptionUseCase, logger *slog.Logger) SyncUseCase {
	return &syncUseCaseImpl{
		redemptions: redemptions,
		logger:      logger,
	}
}

// SyncBatch replays a device's offline redemption intents. Items are
// independent: atomicity is per voucher, not per batch, and resubmitting
// an already-synced localId reports synced again without side effects.
func (u *syncUseCaseImpl) SyncBatch(ctx context.Context, deviceID uuid.UUID, intents []SyncIntent) []SyncItemResult {
	results := make([]SyncItemResult, len(intents))
	for i, intent := range intents {
		results[i] = u.syncOne(ctx, deviceID, intent)
	}
	return results
}

func (u *syncUseCaseImpl) syncOne(ctx context.Context, deviceID uuid.UUID, intent SyncIntent) SyncItemResult {
	rm, err := u.redemptions.Redeem(ctx, RedeemParams{
		Code:        intent.VoucherCode,
		CafeteriaID: intent.CafeteriaID,
		DeviceID:    deviceID,
		LocalID:     intent.LocalID,
		RedeemedAt:  intent.LocalTimestamp,
	})
	if err == nil {
		ts := rm.RedeemedAt
		return SyncItemResult{
			LocalID:         intent.LocalID,
			Status:          OutcomeSynced,
			ServerTimestamp: &ts,
		}
	}

	var redeemed *AlreadyRedeemedError
	if errors.As(err, &redeemed) {
		ts := redeemed.Existing.RedeemedAt
		return SyncItemResult{
			LocalID:         intent.LocalID,
			Status:          OutcomeConflict,
			Reason:          ReasonAlreadyRedeemed,
			ServerTimestamp: &ts,
		}
	}

	u.logger.Warn("sync intent failed",
		"device_id", deviceID.String(),
		"local_id", intent.LocalID,
		"code", intent.VoucherCode,
		"reason", ReasonFor(err))

	return SyncItemResult{
		LocalID: intent.LocalID,
		Status:  OutcomeError,
		Reason:  ReasonFor(err),
	}
}
