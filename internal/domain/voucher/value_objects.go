package voucher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidWindow      = errors.New("inicio debe ser anterior a fin")
	ErrWindowOutsideStay  = errors.New("fechas deben estar dentro del período de estadía")
	ErrInvalidStatus      = errors.New("invalid voucher status")
	ErrInvalidCode        = errors.New("invalid voucher code")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusRedeemed  Status = "redeemed"
	StatusCancelled Status = "cancelled"
	StatusExpired   Status = "expired"
)

func NewStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusRedeemed, StatusCancelled, StatusExpired:
		return Status(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

func (s Status) String() string { return string(s) }

// IsTerminal reports whether the status can never change again. Terminal
// vouchers are kept for audit, not reused.
func (s Status) IsTerminal() bool {
	return s != StatusActive
}

const codePrefix = "BRK"

// Code is the human-shareable voucher token. The middle segment ties the
// code to its stay, the numeric suffix is the sequence reserved for that
// stay at issuance time.
type Code string

func NewCode(stayID uuid.UUID, seq int) Code {
	short := strings.ReplaceAll(stayID.String(), "-", "")[:8]
	return Code(fmt.Sprintf("%s-%s-%03d", codePrefix, strings.ToUpper(short), seq))
}

func ParseCode(s string) (Code, error) {
	trimmed := strings.TrimSpace(s)
	parts := strings.Split(trimmed, "-")
	if len(parts) != 3 || parts[0] != codePrefix || len(parts[1]) != 8 || len(parts[2]) == 0 {
		return "", ErrInvalidCode
	}
	return Code(trimmed), nil
}

func (c Code) String() string { return string(c) }

// DateWindow bounds the days a voucher can be redeemed on.
type DateWindow struct {
	from  time.Time
	until time.Time
}

func NewDateWindow(from, until time.Time) (DateWindow, error) {
	if from.After(until) {
		return DateWindow{}, ErrInvalidWindow
	}
	return DateWindow{from: from.UTC(), until: until.UTC()}, nil
}

// NewDateWindowWithinStay additionally requires the window to be a subset
// of the stay's check-in/check-out dates.
func NewDateWindowWithinStay(from, until, checkIn, checkOut time.Time) (DateWindow, error) {
	w, err := NewDateWindow(from, until)
	if err != nil {
		return DateWindow{}, err
	}
	if w.from.Before(checkIn.UTC()) || w.until.After(checkOut.UTC()) {
		return DateWindow{}, ErrWindowOutsideStay
	}
	return w, nil
}

func (w DateWindow) From() time.Time  { return w.from }
func (w DateWindow) Until() time.Time { return w.until }

func (w DateWindow) Contains(t time.Time) bool {
	u := t.UTC()
	return !u.Before(w.from) && !u.After(w.until)
}

func (w DateWindow) ExpiredAt(t time.Time) bool {
	return t.UTC().After(w.until)
}

func (w DateWindow) StartsAfter(t time.Time) bool {
	return t.UTC().Before(w.from)
}
