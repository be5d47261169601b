//go:build unit

package usecase

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"desayuno/internal/pkg/errs"
	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRedemptions maps voucher codes to canned Redeem outcomes.
type stubRedemptions struct {
	results map[string]*readmodel.RedemptionRM
	errors  map[string]error
}

func (s *stubRedemptions) Redeem(_ context.Context, params RedeemParams) (*readmodel.RedemptionRM, error) {
	if err, ok := s.errors[params.Code]; ok {
		return nil, err
	}
	if rm, ok := s.results[params.Code]; ok {
		return rm, nil
	}
	return nil, errs.ErrVoucherNotFound
}

func (s *stubRedemptions) Validate(_ context.Context, _, _ string) (*ValidationResult, error) {
	panic("not used")
}

func (s *stubRedemptions) Cancel(_ context.Context, _, _, _ string) error {
	panic("not used")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestSyncBatch(t *testing.T) {
	ctx := context.Background()
	deviceID := uuid.New()
	serverTS := time.Date(2026, 3, 11, 8, 15, 0, 0, time.UTC)
	winnerTS := time.Date(2026, 3, 11, 7, 50, 0, 0, time.UTC)

	stub := &stubRedemptions{
		results: map[string]*readmodel.RedemptionRM{
			"BRK-AAAA0001-001": {ID: uuid.New(), LocalID: "l-ok", RedeemedAt: serverTS},
		},
		errors: map[string]error{
			"BRK-AAAA0001-002": &AlreadyRedeemedError{Existing: &readmodel.RedemptionRM{
				ID:         uuid.New(),
				DeviceID:   uuid.New(),
				RedeemedAt: winnerTS,
			}},
			"BRK-AAAA0001-003": errs.ErrVoucherExpired,
		},
	}
	uc := NewSyncUseCase(stub, discardLogger())

	t.Run("items resolve independently", func(t *testing.T) {
		results := uc.SyncBatch(ctx, deviceID, []SyncIntent{
			{LocalID: "l-conflict", VoucherCode: "BRK-AAAA0001-002"},
			{LocalID: "l-ok", VoucherCode: "BRK-AAAA0001-001"},
			{LocalID: "l-error", VoucherCode: "BRK-AAAA0001-003"},
		})
		require.Len(t, results, 3)

		assert.Equal(t, "l-conflict", results[0].LocalID)
		assert.Equal(t, OutcomeConflict, results[0].Status)
		assert.Equal(t, ReasonAlreadyRedeemed, results[0].Reason)
		require.NotNil(t, results[0].ServerTimestamp)
		assert.Equal(t, winnerTS, *results[0].ServerTimestamp)

		assert.Equal(t, OutcomeSynced, results[1].Status)
		assert.Empty(t, results[1].Reason)
		require.NotNil(t, results[1].ServerTimestamp)
		assert.Equal(t, serverTS, *results[1].ServerTimestamp)

		assert.Equal(t, OutcomeError, results[2].Status)
		assert.Equal(t, ReasonExpired, results[2].Reason)
		assert.Nil(t, results[2].ServerTimestamp)
	})

	t.Run("unknown voucher reports an error item", func(t *testing.T) {
		results := uc.SyncBatch(ctx, deviceID, []SyncIntent{
			{LocalID: "l-missing", VoucherCode: "BRK-FFFF0001-001"},
		})
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeError, results[0].Status)
		assert.Equal(t, ReasonNotFound, results[0].Reason)
	})

	t.Run("empty batch returns an empty result set", func(t *testing.T) {
		results := uc.SyncBatch(ctx, deviceID, nil)
		assert.Empty(t, results)
	})

	t.Run("resubmitted intent replays as synced", func(t *testing.T) {
		// An intent retried after a lost response hits the idempotent
		// path in Redeem and is reported synced again, not conflicted.
		results := uc.SyncBatch(ctx, deviceID, []SyncIntent{
			{LocalID: "l-ok", VoucherCode: "BRK-AAAA0001-001"},
		})
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeSynced, results[0].Status)
	})

	t.Run("end to end against the real redemption flow", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)
		sync := NewSyncUseCase(f.uc, discardLogger())

		localTS := f.now.Add(-20 * time.Minute)
		intents := []SyncIntent{{
			LocalID:        "l-1",
			VoucherCode:    v.Code().String(),
			CafeteriaID:    uuid.New(),
			LocalTimestamp: localTS,
		}}

		results := sync.SyncBatch(ctx, deviceID, intents)
		require.Len(t, results, 1)
		assert.Equal(t, OutcomeSynced, results[0].Status)
		require.NotNil(t, results[0].ServerTimestamp)
		assert.Equal(t, localTS, *results[0].ServerTimestamp)

		// A second device replaying the same voucher conflicts.
		other := sync.SyncBatch(ctx, uuid.New(), []SyncIntent{{
			LocalID:     "l-other",
			VoucherCode: v.Code().String(),
			CafeteriaID: uuid.New(),
		}})
		require.Len(t, other, 1)
		assert.Equal(t, OutcomeConflict, other[0].Status)
		require.NotNil(t, other[0].ServerTimestamp)
		assert.Equal(t, localTS, *other[0].ServerTimestamp)
	})
}
