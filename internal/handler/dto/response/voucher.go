package response

import (
	"time"

	"desayuno/internal/pkg/signer"
	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type VoucherResponse struct {
	ID         uuid.UUID `json:"id"`
	Code       string    `json:"code"`
	StayID     uuid.UUID `json:"stayId"`
	ValidFrom  time.Time `json:"validFrom"`
	ValidUntil time.Time `json:"validUntil"`
	Status     string    `json:"status"`
	Signature  string    `json:"signature"`
	QRPayload  string    `json:"qrPayload,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func FromVoucherRM(rm *readmodel.VoucherRM) *VoucherResponse {
	var resp VoucherResponse
	_ = copier.Copy(&resp, rm)

	// QR payload is derivable from the signed attributes; encoding can
	// only fail on a corrupt signature, in which case the field is omitted.
	if p, err := signer.NewPayload(rm.Code, rm.StayID, rm.ValidFrom, rm.ValidUntil, rm.Signature); err == nil {
		if encoded, err := p.Encode(); err == nil {
			resp.QRPayload = encoded
		}
	}
	return &resp
}

func FromVoucherRMs(rms []*readmodel.VoucherRM) []*VoucherResponse {
	out := make([]*VoucherResponse, 0, len(rms))
	for _, rm := range rms {
		out = append(out, FromVoucherRM(rm))
	}
	return out
}

type IssueVouchersResponse struct {
	Vouchers []*VoucherResponse `json:"vouchers"`
}

type ValidationResponse struct {
	Valid   bool             `json:"valid"`
	Reason  string           `json:"reason,omitempty"`
	Voucher *VoucherResponse `json:"voucher,omitempty"`
}
