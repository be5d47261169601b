package signer

import (
	"crypto/ed25519"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidSeed      = errors.New("signing seed must be 32 bytes, hex-encoded")
	ErrInvalidSignature = errors.New("signature verification failed")
	ErrInvalidPublicKey = errors.New("invalid public key")
)

// Signer binds a voucher's attributes together with an Ed25519 signature
// so a code cannot be forged or re-dated. Terminals verify with the public
// key only, which keeps offline QR pre-validation from exposing any
// server-held secret.
type Signer struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

func New(seedHex string) (*Signer, error) {
	seed, err := hex.DecodeString(seedHex)
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, ErrInvalidSeed
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Signer{
		priv: priv,
		pub:  priv.Public().(ed25519.PublicKey),
	}, nil
}

// Sign produces a base64url signature over (code, stayID, validFrom, validUntil).
func (s *Signer) Sign(code string, stayID uuid.UUID, validFrom, validUntil time.Time) string {
	sig := ed25519.Sign(s.priv, message(code, stayID, validFrom, validUntil))
	return base64.RawURLEncoding.EncodeToString(sig)
}

func (s *Signer) Verify(code string, stayID uuid.UUID, validFrom, validUntil time.Time, signature string) error {
	return Verify(s.pub, code, stayID, validFrom, validUntil, signature)
}

// PublicKey returns the hex-encoded verification key distributed to
// terminals at login.
func (s *Signer) PublicKey() string {
	return hex.EncodeToString(s.pub)
}

// Verifier checks signatures with the public key alone. This is the half
// a cafeteria terminal holds.
type Verifier struct {
	pub ed25519.PublicKey
}

func NewVerifier(pubHex string) (*Verifier, error) {
	pub, err := hex.DecodeString(pubHex)
	if err != nil || len(pub) != ed25519.PublicKeySize {
		return nil, ErrInvalidPublicKey
	}
	return &Verifier{pub: pub}, nil
}

func (v *Verifier) Verify(code string, stayID uuid.UUID, validFrom, validUntil time.Time, signature string) error {
	return Verify(v.pub, code, stayID, validFrom, validUntil, signature)
}

func Verify(pub ed25519.PublicKey, code string, stayID uuid.UUID, validFrom, validUntil time.Time, signature string) error {
	sig, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return ErrInvalidSignature
	}
	if !ed25519.Verify(pub, message(code, stayID, validFrom, validUntil), sig) {
		return ErrInvalidSignature
	}
	return nil
}

// message is the canonical byte form of the signed attributes. Timestamps
// are second-precision UTC so the message survives database round trips.
func message(code string, stayID uuid.UUID, validFrom, validUntil time.Time) []byte {
	parts := []string{
		code,
		stayID.String(),
		strconv.FormatInt(validFrom.UTC().Unix(), 10),
		strconv.FormatInt(validUntil.UTC().Unix(), 10),
	}
	return []byte(strings.Join(parts, "\n"))
}
