package request

import (
	"time"

	"desayuno/internal/usecase"

	"github.com/google/uuid"
)

type SyncIntentRequest struct {
	LocalID        string    `json:"local_id" binding:"required"`
	VoucherCode    string    `json:"voucher_code" binding:"required"`
	CafeteriaID    uuid.UUID `json:"cafeteria_id" binding:"required"`
	LocalTimestamp time.Time `json:"local_timestamp" binding:"required"`
}

type SyncRequest struct {
	Intents []SyncIntentRequest `json:"intents" binding:"required,min=1,max=500,dive"`
}

func (r SyncRequest) ToIntents() []usecase.SyncIntent {
	intents := make([]usecase.SyncIntent, 0, len(r.Intents))
	for _, item := range r.Intents {
		intents = append(intents, usecase.SyncIntent{
			LocalID:        item.LocalID,
			VoucherCode:    item.VoucherCode,
			CafeteriaID:    item.CafeteriaID,
			LocalTimestamp: item.LocalTimestamp,
		})
	}
	return intents
}
