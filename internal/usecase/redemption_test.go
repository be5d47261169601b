//go:build unit

package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"desayuno/internal/domain/voucher"
	"desayuno/internal/pkg/clock"
	"desayuno/internal/pkg/errs"
	"desayuno/internal/pkg/signer"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type redemptionFixture struct {
	uc          RedemptionUseCase
	vouchers    *fakeVoucherRepo
	redemptions *fakeRedemptionRepo
	audit       *fakeAuditRepo
	signer      *signer.Signer
	clock       *clock.MockClock
	now         time.Time
}

func newRedemptionFixture(t *testing.T) *redemptionFixture {
	t.Helper()

	s, err := signer.New(testSigningSeed)
	require.NoError(t, err)

	now := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)
	vouchers := newFakeVoucherRepo()
	redemptions := newFakeRedemptionRepo()
	audit := &fakeAuditRepo{}
	clk := clock.NewMockClock(now)

	return &redemptionFixture{
		uc:          NewRedemptionUseCase(vouchers, redemptions, audit, s, nil, fakeTxManager{}, clk),
		vouchers:    vouchers,
		redemptions: redemptions,
		audit:       audit,
		signer:      s,
		clock:       clk,
		now:         now,
	}
}

// seedVoucher stores an active voucher whose window spans the fixture's
// current time, shifted by the given offsets.
func (f *redemptionFixture) seedVoucher(t *testing.T, fromOffset, untilOffset time.Duration) *voucher.Voucher {
	t.Helper()
	stayID := uuid.New()
	window, err := voucher.NewDateWindow(f.now.Add(fromOffset), f.now.Add(untilOffset))
	require.NoError(t, err)

	code := voucher.NewCode(stayID, 1)
	sig := f.signer.Sign(code.String(), stayID, window.From(), window.Until())
	v := voucher.NewVoucher(code, stayID, window, sig)
	require.NoError(t, f.vouchers.CreateBatch(context.Background(), nil, []*voucher.Voucher{v}))
	return v
}

func (f *redemptionFixture) redeemParams(v *voucher.Voucher, localID string) RedeemParams {
	return RedeemParams{
		Code:        v.Code().String(),
		CafeteriaID: uuid.New(),
		DeviceID:    uuid.New(),
		LocalID:     localID,
	}
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()

	t.Run("redeems an active voucher once", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)

		rm, err := f.uc.Redeem(ctx, f.redeemParams(v, "local-1"))
		require.NoError(t, err)
		assert.Equal(t, v.ID(), rm.VoucherID)
		assert.Equal(t, "local-1", rm.LocalID)
		assert.Equal(t, f.now, rm.RedeemedAt)

		assert.Equal(t, "redeemed", f.vouchers.status(v.ID()))
		assert.Len(t, f.audit.byKind("voucher_redeemed"), 1)
	})

	t.Run("retry with same device and localId returns the original redemption", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)
		params := f.redeemParams(v, "local-1")

		first, err := f.uc.Redeem(ctx, params)
		require.NoError(t, err)

		second, err := f.uc.Redeem(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, first.ID, second.ID)
		assert.Equal(t, first.RedeemedAt, second.RedeemedAt)

		assert.Len(t, f.audit.byKind("voucher_redeemed"), 1, "no second audit entry on retry")
	})

	t.Run("second device gets the winning redemption in the conflict", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)

		winner, err := f.uc.Redeem(ctx, f.redeemParams(v, "local-1"))
		require.NoError(t, err)

		_, err = f.uc.Redeem(ctx, f.redeemParams(v, "local-2"))
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrVoucherAlreadyUsed)

		var conflict *AlreadyRedeemedError
		require.ErrorAs(t, err, &conflict)
		require.NotNil(t, conflict.Existing)
		assert.Equal(t, winner.ID, conflict.Existing.ID)
		assert.Equal(t, winner.RedeemedAt, conflict.Existing.RedeemedAt)
	})

	t.Run("concurrent redemptions have exactly one winner", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)

		const n = 16
		var wg sync.WaitGroup
		errors := make([]error, n)
		for i := range n {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				_, errors[i] = f.uc.Redeem(ctx, f.redeemParams(v, uuid.New().String()))
			}(i)
		}
		wg.Wait()

		wins := 0
		for _, err := range errors {
			if err == nil {
				wins++
			} else {
				assert.ErrorIs(t, err, errs.ErrVoucherAlreadyUsed)
			}
		}
		assert.Equal(t, 1, wins)
		assert.Equal(t, "redeemed", f.vouchers.status(v.ID()))
	})

	t.Run("expired voucher is durably flipped before rejection", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -48*time.Hour, -time.Hour)

		_, err := f.uc.Redeem(ctx, f.redeemParams(v, "local-1"))
		assert.ErrorIs(t, err, errs.ErrVoucherExpired)
		assert.Equal(t, "expired", f.vouchers.status(v.ID()), "lazy expiry must be persisted")
	})

	t.Run("voucher before its window is rejected without mutation", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, time.Hour, 24*time.Hour)

		_, err := f.uc.Redeem(ctx, f.redeemParams(v, "local-1"))
		assert.ErrorIs(t, err, errs.ErrVoucherNotYetValid)
		assert.Equal(t, "active", f.vouchers.status(v.ID()))
	})

	t.Run("cancelled voucher is rejected", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)
		require.NoError(t, f.uc.Cancel(ctx, v.Code().String(), "guest request", "front-desk"))

		_, err := f.uc.Redeem(ctx, f.redeemParams(v, "local-1"))
		assert.ErrorIs(t, err, errs.ErrVoucherCancelled)
	})

	t.Run("unknown code", func(t *testing.T) {
		f := newRedemptionFixture(t)

		_, err := f.uc.Redeem(ctx, RedeemParams{Code: "BRK-DEADBEEF-001", DeviceID: uuid.New(), LocalID: "x"})
		assert.ErrorIs(t, err, errs.ErrVoucherNotFound)
	})

	t.Run("signature is verified when supplied", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)

		params := f.redeemParams(v, "local-1")
		params.Signature = "AAAA"
		_, err := f.uc.Redeem(ctx, params)
		assert.ErrorIs(t, err, errs.ErrSignatureInvalid)

		params.Signature = v.Signature()
		_, err = f.uc.Redeem(ctx, params)
		assert.NoError(t, err)
	})

	t.Run("localId reuse against a different voucher is rejected", func(t *testing.T) {
		f := newRedemptionFixture(t)
		first := f.seedVoucher(t, -time.Hour, 24*time.Hour)
		second := f.seedVoucher(t, -time.Hour, 24*time.Hour)
		deviceID := uuid.New()

		_, err := f.uc.Redeem(ctx, RedeemParams{Code: first.Code().String(), CafeteriaID: uuid.New(), DeviceID: deviceID, LocalID: "local-1"})
		require.NoError(t, err)

		_, err = f.uc.Redeem(ctx, RedeemParams{Code: second.Code().String(), CafeteriaID: uuid.New(), DeviceID: deviceID, LocalID: "local-1"})
		assert.ErrorIs(t, err, errs.ErrLocalIDMismatch)
		assert.Equal(t, "active", f.vouchers.status(second.ID()), "losing insert must not consume the voucher")
	})

	t.Run("replayed offline intent keeps its local timestamp", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)

		servedAt := f.now.Add(-30 * time.Minute)
		params := f.redeemParams(v, "local-1")
		params.RedeemedAt = servedAt

		rm, err := f.uc.Redeem(ctx, params)
		require.NoError(t, err)
		assert.Equal(t, servedAt, rm.RedeemedAt)
	})
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("active voucher inside window", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)

		result, err := f.uc.Validate(ctx, v.Code().String(), "")
		require.NoError(t, err)
		assert.True(t, result.Valid)
		assert.Empty(t, result.Reason)
		require.NotNil(t, result.Voucher)
		assert.Equal(t, v.ID(), result.Voucher.ID)
	})

	t.Run("redeemed voucher reports ALREADY_REDEEMED", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)
		_, err := f.uc.Redeem(ctx, f.redeemParams(v, "local-1"))
		require.NoError(t, err)

		result, err := f.uc.Validate(ctx, v.Code().String(), "")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, ReasonAlreadyRedeemed, result.Reason)
	})

	t.Run("validation persists lazy expiry", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -48*time.Hour, -time.Hour)

		result, err := f.uc.Validate(ctx, v.Code().String(), "")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, ReasonExpired, result.Reason)
		assert.Equal(t, "expired", f.vouchers.status(v.ID()))
	})

	t.Run("unknown code is a reason, not an error", func(t *testing.T) {
		f := newRedemptionFixture(t)

		result, err := f.uc.Validate(ctx, "BRK-DEADBEEF-001", "")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, ReasonNotFound, result.Reason)
	})

	t.Run("bad signature is a reason, not an error", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)

		result, err := f.uc.Validate(ctx, v.Code().String(), "AAAA")
		require.NoError(t, err)
		assert.False(t, result.Valid)
		assert.Equal(t, ReasonSignatureInvalid, result.Reason)
	})
}

func TestCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels an active voucher", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)

		require.NoError(t, f.uc.Cancel(ctx, v.Code().String(), "guest request", "front-desk"))
		assert.Equal(t, "cancelled", f.vouchers.status(v.ID()))

		entries := f.audit.byKind("voucher_cancelled")
		require.Len(t, entries, 1)
		assert.Equal(t, "front-desk", entries[0].actor)
	})

	t.Run("cancelling a redeemed voucher reports the redemption", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)
		_, err := f.uc.Redeem(ctx, f.redeemParams(v, "local-1"))
		require.NoError(t, err)

		err = f.uc.Cancel(ctx, v.Code().String(), "guest request", "front-desk")
		assert.ErrorIs(t, err, errs.ErrVoucherAlreadyUsed)
		assert.ErrorContains(t, err, "Voucher ya está redimido")
	})

	t.Run("cancelling twice reports the cancellation", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -time.Hour, 24*time.Hour)
		require.NoError(t, f.uc.Cancel(ctx, v.Code().String(), "guest request", "front-desk"))

		err := f.uc.Cancel(ctx, v.Code().String(), "again", "front-desk")
		assert.ErrorIs(t, err, errs.ErrVoucherCancelled)
		assert.ErrorContains(t, err, "Voucher ya está cancelado")
	})

	t.Run("cancelling past the window expires instead", func(t *testing.T) {
		f := newRedemptionFixture(t)
		v := f.seedVoucher(t, -48*time.Hour, -time.Hour)

		err := f.uc.Cancel(ctx, v.Code().String(), "late", "front-desk")
		assert.ErrorIs(t, err, errs.ErrVoucherExpired)
		assert.Equal(t, "expired", f.vouchers.status(v.ID()))
	})
}
