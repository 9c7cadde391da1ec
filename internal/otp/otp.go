// Package otp issues and checks the six digit one-time codes that gate
// account and lead activation.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"
)

const (
	Length = 6
	TTL    = 5 * time.Minute
)

var (
	ErrNotRegistered   = errors.New("email not registered")
	ErrAlreadyVerified = errors.New("account already verified")
	ErrMismatch        = errors.New("invalid OTP")
	ErrExpired         = errors.New("OTP expired")
	ErrMalformed       = errors.New("invalid OTP format")
)

var codeSpace = big.NewInt(1_000_000)

// State is the OTP bookkeeping carried on a user or lead row.
type State struct {
	Code     *string
	IssuedAt *time.Time
	Verified bool
}

// Generate returns a uniformly random code in 000000..999999.
func Generate() (string, error) {
	n, err := rand.Int(rand.Reader, codeSpace)
	if err != nil {
		return "", fmt.Errorf("failed to generate otp: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func ValidateFormat(code string) error {
	if len(code) != Length {
		return ErrMalformed
	}
	return nil
}

// Check verifies a submitted code against the stored state. Callers resolve
// ErrNotRegistered themselves since it depends on the lookup.
func Check(state State, submitted string, now time.Time) error {
	if err := ValidateFormat(submitted); err != nil {
		return err
	}
	if state.Verified {
		return ErrAlreadyVerified
	}
	if state.Code == nil || *state.Code != submitted {
		return ErrMismatch
	}
	if state.IssuedAt == nil || now.Sub(*state.IssuedAt) > TTL {
		return ErrExpired
	}
	return nil
}

// Message returns the user-facing text for an OTP failure.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrNotRegistered):
		return "Email not registered"
	case errors.Is(err, ErrAlreadyVerified):
		return "Account already verified"
	case errors.Is(err, ErrMismatch):
		return "Invalid OTP"
	case errors.Is(err, ErrExpired):
		return "OTP expired"
	case errors.Is(err, ErrMalformed):
		return "Invalid OTP format"
	default:
		return "OTP verification failed"
	}
}
