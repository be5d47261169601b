//go:build unit

package usecase

import (
	"context"
	"sync"
	"time"

	"desayuno/internal/domain/redemption"
	"desayuno/internal/domain/voucher"
	"desayuno/internal/infra"
	"desayuno/internal/infra/db"
	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
)

// In-memory fakes mirroring the storage guarantees the real repositories
// get from Postgres: the voucher_id and (device_id, local_id) unique
// constraints, and compare-and-set status updates.

type fakeTxManager struct{}

func (fakeTxManager) WithTx(_ context.Context, fn func(tx db.DBTX) error) error {
	return fn(nil)
}

type fakeVoucherRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]*readmodel.VoucherRM
	seqs map[uuid.UUID]int
}

func newFakeVoucherRepo() *fakeVoucherRepo {
	return &fakeVoucherRepo{
		byID: make(map[uuid.UUID]*readmodel.VoucherRM),
		seqs: make(map[uuid.UUID]int),
	}
}

func (f *fakeVoucherRepo) ReserveSequence(_ context.Context, _ db.DBTX, stayID uuid.UUID, n int) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := f.seqs[stayID] + 1
	f.seqs[stayID] += n
	return start, nil
}

func (f *fakeVoucherRepo) CreateBatch(_ context.Context, _ db.DBTX, vouchers []*voucher.Voucher) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, v := range vouchers {
		f.byID[v.ID()] = &readmodel.VoucherRM{
			ID:         v.ID(),
			Code:       v.Code().String(),
			StayID:     v.StayID(),
			ValidFrom:  v.Window().From(),
			ValidUntil: v.Window().Until(),
			Status:     v.Status().String(),
			Signature:  v.Signature(),
			CreatedAt:  time.Now().UTC(),
			UpdatedAt:  time.Now().UTC(),
		}
	}
	return nil
}

func (f *fakeVoucherRepo) FindByCode(_ context.Context, _ db.DBTX, code string) (*readmodel.VoucherRM, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rm := range f.byID {
		if rm.Code == code {
			copied := *rm
			return &copied, nil
		}
	}
	return nil, infra.WrapRepoErr("voucher not found", nil, infra.KindNotFound)
}

func (f *fakeVoucherRepo) FindByStayID(_ context.Context, _ db.DBTX, stayID uuid.UUID) ([]*readmodel.VoucherRM, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*readmodel.VoucherRM
	for _, rm := range f.byID {
		if rm.StayID == stayID {
			copied := *rm
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeVoucherRepo) UpdateStatus(_ context.Context, _ db.DBTX, id uuid.UUID, from, to voucher.Status) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rm, ok := f.byID[id]
	if !ok || rm.Status != from.String() {
		return false, nil
	}
	rm.Status = to.String()
	rm.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (f *fakeVoucherRepo) status(id uuid.UUID) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byID[id].Status
}

type fakeRedemptionRepo struct {
	mu            sync.Mutex
	byVoucher     map[uuid.UUID]*readmodel.RedemptionRM
	byDeviceLocal map[string]*readmodel.RedemptionRM
}

func newFakeRedemptionRepo() *fakeRedemptionRepo {
	return &fakeRedemptionRepo{
		byVoucher:     make(map[uuid.UUID]*readmodel.RedemptionRM),
		byDeviceLocal: make(map[string]*readmodel.RedemptionRM),
	}
}

func deviceLocalKey(deviceID uuid.UUID, localID string) string {
	return deviceID.String() + "|" + localID
}

func (f *fakeRedemptionRepo) Insert(_ context.Context, _ db.DBTX, red *redemption.Redemption) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// The voucher_id conflict is absorbed, mirroring ON CONFLICT DO NOTHING.
	if _, exists := f.byVoucher[red.VoucherID()]; exists {
		return false, nil
	}
	// The (device_id, local_id) index raises instead.
	key := deviceLocalKey(red.DeviceID(), red.LocalID())
	if _, exists := f.byDeviceLocal[key]; exists {
		return false, infra.WrapRepoErr("local id already used", nil, infra.KindDuplicateKey)
	}

	rm := &readmodel.RedemptionRM{
		ID:          red.ID(),
		VoucherID:   red.VoucherID(),
		CafeteriaID: red.CafeteriaID(),
		DeviceID:    red.DeviceID(),
		LocalID:     red.LocalID(),
		RedeemedAt:  red.RedeemedAt(),
		CreatedAt:   time.Now().UTC(),
	}
	f.byVoucher[red.VoucherID()] = rm
	f.byDeviceLocal[key] = rm
	return true, nil
}

func (f *fakeRedemptionRepo) FindByVoucherID(_ context.Context, _ db.DBTX, voucherID uuid.UUID) (*readmodel.RedemptionRM, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rm, ok := f.byVoucher[voucherID]
	if !ok {
		return nil, infra.WrapRepoErr("redemption not found", nil, infra.KindNotFound)
	}
	copied := *rm
	return &copied, nil
}

func (f *fakeRedemptionRepo) FindByDeviceLocalID(_ context.Context, _ db.DBTX, deviceID uuid.UUID, localID string) (*readmodel.RedemptionRM, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rm, ok := f.byDeviceLocal[deviceLocalKey(deviceID, localID)]
	if !ok {
		return nil, infra.WrapRepoErr("redemption not found", nil, infra.KindNotFound)
	}
	copied := *rm
	return &copied, nil
}

type auditEntry struct {
	kind    string
	actor   string
	payload []byte
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []auditEntry
}

func (f *fakeAuditRepo) Insert(_ context.Context, _ db.DBTX, kind, actor string, payload []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, auditEntry{kind: kind, actor: actor, payload: payload})
	return nil
}

func (f *fakeAuditRepo) byKind(kind string) []auditEntry {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []auditEntry
	for _, e := range f.entries {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type fakeStayGateway struct {
	stays map[uuid.UUID]*readmodel.StayRM
}

func (f *fakeStayGateway) GetStay(_ context.Context, stayID uuid.UUID) (*readmodel.StayRM, error) {
	stay, ok := f.stays[stayID]
	if !ok {
		return nil, infra.WrapRepoErr("stay not found", nil, infra.KindNotFound)
	}
	return stay, nil
}

type fakeDeviceRepo struct {
	devices map[uuid.UUID]*readmodel.DeviceRM
}

func (f *fakeDeviceRepo) FindByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*readmodel.DeviceRM, error) {
	device, ok := f.devices[id]
	if !ok {
		return nil, infra.WrapRepoErr("device not found", nil, infra.KindNotFound)
	}
	return device, nil
}
