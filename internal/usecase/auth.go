package usecase

import (
	"context"
	"errors"

	"desayuno/internal/infra"
	"desayuno/internal/infra/db"
	"desayuno/internal/pkg/errs"
	"desayuno/internal/pkg/jwt"
	"desayuno/internal/pkg/password"
	"desayuno/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var (
	ErrDeviceInactive = errors.New("device is deactivated")
	// ErrInvalidCredentials covers both unknown devices and wrong keys so
	// login failures don't reveal which half was wrong.
	ErrInvalidCredentials = errors.New("invalid device credentials")
)

type LoginResult struct {
	Token        string
	Device       *readmodel.DeviceRM
	SignerPubKey string
}

type AuthUseCase interface {
	Login(ctx context.Context, deviceID uuid.UUID, deviceKey string) (*LoginResult, error)
}

type authUseCaseImpl struct {
	deviceRepo DeviceRepository
	jwtService *jwt.Service
	signer     VoucherSigner
	db         db.DBTX
}

func NewAuthUseCase(deviceRepo DeviceRepository, jwtService *jwt.Service, signer VoucherSigner, dbtx db.DBTX) AuthUseCase {
	return &authUseCaseImpl{
		deviceRepo: deviceRepo,
		jwtService: jwtService,
		signer:     signer,
		db:         dbtx,
	}
}

func (u *authUseCaseImpl) Login(ctx context.Context, deviceID uuid.UUID, deviceKey string) (*LoginResult, error) {
	device, err := u.deviceRepo.FindByID(ctx, u.db, deviceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Wrap(err, "failed to find device")
	}
	if !device.IsActive {
		return nil, ErrDeviceInactive
	}

	if err := password.CompareKey(device.KeyHash, deviceKey); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(device.ID, device.CafeteriaID)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{
		Token:        token,
		Device:       device,
		SignerPubKey: u.signer.PublicKey(),
	}, nil
}
