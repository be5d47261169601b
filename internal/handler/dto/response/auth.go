package response

import (
	"desayuno/internal/usecase"

	"github.com/google/uuid"
)

type LoginResponse struct {
	Token           string    `json:"token"`
	DeviceID        uuid.UUID `json:"deviceId"`
	CafeteriaID     uuid.UUID `json:"cafeteriaId"`
	DeviceName      string    `json:"deviceName"`
	SignerPublicKey string    `json:"signerPublicKey"`
}

func FromLoginResult(result *usecase.LoginResult) *LoginResponse {
	return &LoginResponse{
		Token:           result.Token,
		DeviceID:        result.Device.ID,
		CafeteriaID:     result.Device.CafeteriaID,
		DeviceName:      result.Device.Name,
		SignerPublicKey: result.SignerPubKey,
	}
}
