package repository

import (
	"context"

	"desayuno/internal/infra"
	"desayuno/internal/infra/db"
	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type DeviceRepository struct{}

func NewDeviceRepository() *DeviceRepository {
	return &DeviceRepository{}
}

func (r *DeviceRepository) FindByID(ctx context.Context, dbtx db.DBTX, id uuid.UUID) (*readmodel.DeviceRM, error) {
	row := dbtx.QueryRow(ctx, `
		SELECT id, cafeteria_id, name, key_hash, is_active
		FROM devices
		WHERE id = $1
	`, id)

	var rm readmodel.DeviceRM
	err := row.Scan(&rm.ID, &rm.CafeteriaID, &rm.Name, &rm.KeyHash, &rm.IsActive)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find device", err)
	}
	return &rm, nil
}
