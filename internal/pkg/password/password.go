package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed    = errors.New("key hashing failed")
	ErrComparisonFailed = errors.New("key comparison failed")
	ErrInvalidKey       = errors.New("invalid device key")
)

const DefaultCost = bcrypt.DefaultCost

// HashKey hashes a device provisioning key for storage in the device
// registry.
func HashKey(key string) (string, error) {
	if key == "" {
		return "", ErrInvalidKey
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(key), DefaultCost)
	if err != nil {
		return "", ErrHashingFailed
	}

	return string(hashedBytes), nil
}

func CompareKey(hashedKey, key string) error {
	if hashedKey == "" || key == "" {
		return ErrInvalidKey
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedKey), []byte(key))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrComparisonFailed
		}
		return err
	}

	return nil
}
