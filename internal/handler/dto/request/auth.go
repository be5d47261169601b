package request

import (
	"github.com/google/uuid"
)

type LoginRequest struct {
	DeviceID  uuid.UUID `json:"device_id" binding:"required"`
	DeviceKey string    `json:"device_key" binding:"required"`
}
