package signer

import (
	"encoding/base64"
	"errors"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

var ErrMalformedPayload = errors.New("malformed voucher payload")

const payloadVersion = 1

// Payload is the optical (QR) form of a voucher: the signed attributes
// plus the signature, so a terminal can run a first-pass validity check
// with no database round trip. CBOR keeps it compact enough for optical
// encoding; the wire form is base64url over the CBOR bytes.
type Payload struct {
	Version    int       `cbor:"1,keyasint"`
	Code       string    `cbor:"2,keyasint"`
	StayID     uuid.UUID `cbor:"3,keyasint"`
	ValidFrom  int64     `cbor:"4,keyasint"`
	ValidUntil int64     `cbor:"5,keyasint"`
	Signature  []byte    `cbor:"6,keyasint"`
}

func NewPayload(code string, stayID uuid.UUID, validFrom, validUntil time.Time, signature string) (Payload, error) {
	sig, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return Payload{}, ErrMalformedPayload
	}
	return Payload{
		Version:    payloadVersion,
		Code:       code,
		StayID:     stayID,
		ValidFrom:  validFrom.UTC().Unix(),
		ValidUntil: validUntil.UTC().Unix(),
		Signature:  sig,
	}, nil
}

// SignatureString returns the signature in the wire form the server
// expects on redeem requests.
func (p Payload) SignatureString() string {
	return base64.RawURLEncoding.EncodeToString(p.Signature)
}

func (p Payload) Encode() (string, error) {
	raw, err := cbor.Marshal(p)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

func DecodePayload(encoded string) (Payload, error) {
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return Payload{}, ErrMalformedPayload
	}

	var p Payload
	if err := cbor.Unmarshal(raw, &p); err != nil {
		return Payload{}, ErrMalformedPayload
	}
	if p.Version != payloadVersion || p.Code == "" || len(p.Signature) == 0 {
		return Payload{}, ErrMalformedPayload
	}
	return p, nil
}

// Verify checks the embedded signature against the embedded attributes.
// A valid payload proves issuance; it says nothing about redemption state,
// which only the server knows.
func (p Payload) Verify(v *Verifier) error {
	sig := base64.RawURLEncoding.EncodeToString(p.Signature)
	return v.Verify(p.Code, p.StayID, time.Unix(p.ValidFrom, 0).UTC(), time.Unix(p.ValidUntil, 0).UTC(), sig)
}

// WindowContains reports whether t falls inside the payload's validity
// window. Used for offline pre-validation only; the server remains the
// authority.
func (p Payload) WindowContains(t time.Time) bool {
	u := t.UTC().Unix()
	return u >= p.ValidFrom && u <= p.ValidUntil
}
