package ks13

import (
	"errors"
	"fmt"
)

// Kind classifies the errors this package returns. Callers that need to
// react differently to, say, a bad Finished MAC versus an internal HMAC
// failure should switch on Kind rather than string-matching Error().
type Kind int

const (
	// InvalidLength means a caller-supplied buffer had the wrong size, or
	// an HKDF-Expand length exceeded 255*Hlen.
	InvalidLength Kind = iota
	// WrongStage means a KeySchedule stage transition was requested out
	// of order (e.g. DeriveApplication before DeriveHandshake).
	WrongStage
	// HmacFailure wraps a lower-level HMAC/HKDF primitive failure.
	HmacFailure
	// BadFinished means a received Finished verify_data did not match
	// what the local transcript and key predict.
	BadFinished
)

func (k Kind) String() string {
	switch k {
	case InvalidLength:
		return "invalid length"
	case WrongStage:
		return "wrong stage"
	case HmacFailure:
		return "hmac failure"
	case BadFinished:
		return "bad finished"
	default:
		return "unknown"
	}
}

// Error is the single error type this package returns. Op names the
// operation that failed (e.g. "derive_handshake", "HKDF-Expand-Label"),
// and Err, when non-nil, is the wrapped lower-level cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("ks13: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("ks13: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether err is a *Error of the given Kind, unwrapping as
// needed. Prefer this over errors.Is(err, someSentinel): Kind values are
// not sentinel errors, they're a closed enum compared by value.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}
