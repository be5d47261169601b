package response

import (
	"time"

	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RedemptionResponse struct {
	ID          uuid.UUID `json:"id"`
	VoucherID   uuid.UUID `json:"voucherId"`
	CafeteriaID uuid.UUID `json:"cafeteriaId"`
	DeviceID    uuid.UUID `json:"deviceId"`
	LocalID     string    `json:"localId"`
	RedeemedAt  time.Time `json:"redeemedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

func FromRedemptionRM(rm *readmodel.RedemptionRM) *RedemptionResponse {
	var resp RedemptionResponse
	_ = copier.Copy(&resp, rm)
	return &resp
}
