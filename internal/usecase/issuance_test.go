//go:build unit

package usecase

import (
	"context"
	"testing"
	"time"

	"desayuno/internal/pkg/errs"
	"desayuno/internal/pkg/signer"
	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningSeed = "6465736179756e6f2d746573742d7369676e696e672d736565642d3030303031"

type issuanceFixture struct {
	uc       IssuanceUseCase
	vouchers *fakeVoucherRepo
	audit    *fakeAuditRepo
	signer   *signer.Signer
	stayID   uuid.UUID
	checkIn  time.Time
	checkOut time.Time
}

func newIssuanceFixture(t *testing.T) *issuanceFixture {
	t.Helper()

	s, err := signer.New(testSigningSeed)
	require.NoError(t, err)

	stayID := uuid.New()
	checkIn := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)
	checkOut := checkIn.Add(4 * 24 * time.Hour)

	vouchers := newFakeVoucherRepo()
	audit := &fakeAuditRepo{}
	stays := &fakeStayGateway{stays: map[uuid.UUID]*readmodel.StayRM{
		stayID: {ID: stayID, GuestName: "Ana Torres", CheckIn: checkIn, CheckOut: checkOut, Status: "active"},
	}}

	return &issuanceFixture{
		uc:       NewIssuanceUseCase(vouchers, audit, stays, s, nil, fakeTxManager{}),
		vouchers: vouchers,
		audit:    audit,
		signer:   s,
		stayID:   stayID,
		checkIn:  checkIn,
		checkOut: checkOut,
	}
}

func (f *issuanceFixture) params(quantity int) IssueVouchersParams {
	return IssueVouchersParams{
		StayID:     f.stayID,
		Quantity:   quantity,
		ValidFrom:  f.checkIn.Add(time.Hour),
		ValidUntil: f.checkOut.Add(-time.Hour),
		Actor:      "front-desk",
	}
}

func TestIssueVouchers(t *testing.T) {
	ctx := context.Background()

	t.Run("issues signed vouchers with sequential codes", func(t *testing.T) {
		f := newIssuanceFixture(t)

		rms, err := f.uc.IssueVouchers(ctx, f.params(3))
		require.NoError(t, err)
		require.Len(t, rms, 3)

		for i, rm := range rms {
			assert.Equal(t, "active", rm.Status)
			assert.Equal(t, f.stayID, rm.StayID)
			assert.Regexp(t, `^BRK-[0-9A-F]{8}-\d{3}$`, rm.Code)
			assert.NoError(t, f.signer.Verify(rm.Code, rm.StayID, rm.ValidFrom, rm.ValidUntil, rm.Signature))
			if i > 0 {
				assert.NotEqual(t, rms[i-1].Code, rm.Code)
			}
		}

		entries := f.audit.byKind("vouchers_issued")
		require.Len(t, entries, 1, "one audit entry per batch")
		assert.Equal(t, "front-desk", entries[0].actor)
	})

	t.Run("sequence continues across batches", func(t *testing.T) {
		f := newIssuanceFixture(t)

		first, err := f.uc.IssueVouchers(ctx, f.params(2))
		require.NoError(t, err)
		second, err := f.uc.IssueVouchers(ctx, f.params(2))
		require.NoError(t, err)

		codes := map[string]bool{}
		for _, rm := range append(first, second...) {
			codes[rm.Code] = true
		}
		assert.Len(t, codes, 4, "codes never repeat for a stay")
	})

	t.Run("rejects inverted window", func(t *testing.T) {
		f := newIssuanceFixture(t)
		params := f.params(1)
		params.ValidFrom, params.ValidUntil = params.ValidUntil, params.ValidFrom

		_, err := f.uc.IssueVouchers(ctx, params)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
		assert.ErrorContains(t, err, "inicio debe ser anterior a fin")
	})

	t.Run("rejects window outside the stay", func(t *testing.T) {
		f := newIssuanceFixture(t)
		params := f.params(1)
		params.ValidUntil = f.checkOut.Add(24 * time.Hour)

		_, err := f.uc.IssueVouchers(ctx, params)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
		assert.ErrorContains(t, err, "fechas deben estar dentro del período de estadía")
	})

	t.Run("rejects unknown stay", func(t *testing.T) {
		f := newIssuanceFixture(t)
		params := f.params(1)
		params.StayID = uuid.New()

		_, err := f.uc.IssueVouchers(ctx, params)
		assert.ErrorIs(t, err, errs.ErrStayNotFound)
	})

	t.Run("rejects inactive stay", func(t *testing.T) {
		f := newIssuanceFixture(t)
		stays := &fakeStayGateway{stays: map[uuid.UUID]*readmodel.StayRM{
			f.stayID: {ID: f.stayID, CheckIn: f.checkIn, CheckOut: f.checkOut, Status: "checked_out"},
		}}
		uc := NewIssuanceUseCase(f.vouchers, f.audit, stays, f.signer, nil, fakeTxManager{})

		_, err := uc.IssueVouchers(ctx, f.params(1))
		assert.ErrorIs(t, err, errs.ErrStayNotActive)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		f := newIssuanceFixture(t)

		_, err := f.uc.IssueVouchers(ctx, f.params(0))
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
	})
}

func TestGetStayVouchers(t *testing.T) {
	ctx := context.Background()
	f := newIssuanceFixture(t)

	issued, err := f.uc.IssueVouchers(ctx, f.params(2))
	require.NoError(t, err)

	listed, err := f.uc.GetStayVouchers(ctx, f.stayID)
	require.NoError(t, err)
	assert.Len(t, listed, len(issued))

	other, err := f.uc.GetStayVouchers(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}
