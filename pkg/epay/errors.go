package epay

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrTemporary                  = errors.New("epay: temporary gateway error")
	ErrTransactionAlreadyCaptured = errors.New("epay: transaction already captured")
	ErrTransactionNotFound        = errors.New("epay: transaction not found")
	ErrAuthorizationNotFound      = errors.New("epay: authorization not found")
	ErrTransactionInGracePeriod   = errors.New("epay: transaction in grace period")
	ErrSubscriptionNotFound       = errors.New("epay: subscription not found")
	ErrInvalidMerchantNumber      = errors.New("epay: invalid merchant number")
	ErrTimeout                    = errors.New("epay: timeout")
	ErrUnknownCurrency            = errors.New("epay: unknown currency")
	ErrMissingTransactionID       = errors.New("epay: accepted without a transaction id")
)

// GatewayError is a failure reported by the gateway itself. Err is the known
// condition the code maps to for the failing action and nil when the code is unknown.
type GatewayError struct {
	Action  string
	Code    string
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	msg := fmt.Sprintf("epay: %s failed with code %s", e.Action, e.Code)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += " (" + e.Err.Error() + ")"
	}

	return msg
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

func (e *GatewayError) Temporary() bool {
	return IsTemporaryErrorCode(e.Code)
}

// AcceptedError means the gateway accepted Action and created TransactionID,
// but loading the new transaction failed. The charge stands, so repeating
// Action would charge the card again.
type AcceptedError struct {
	Action        string
	TransactionID int64
	Err           error
}

func (e *AcceptedError) Error() string {
	return fmt.Sprintf("epay: %s accepted as transaction %d, lookup failed: %v", e.Action, e.TransactionID, e.Err)
}

func (e *AcceptedError) Unwrap() error {
	return e.Err
}

// Temporary is always false; it shadows the Temporary of the wrapped lookup error.
func (e *AcceptedError) Temporary() bool {
	return false
}

// TransportError means the gateway could not be reached or did not answer
// with a decodable 2xx reply. It never carries a business outcome.
type TransportError struct {
	Action     string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("epay: %s: %s returned status %d: %v", e.Action, e.URL, e.StatusCode, e.Err)
	}

	return fmt.Sprintf("epay: %s: %s: %v", e.Action, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	var t interface{ Timeout() bool }
	return errors.As(e.Err, &t) && t.Timeout()
}

func (e *TransportError) Is(target error) bool {
	return target == ErrTimeout && e.Timeout()
}

// Transport failures are always worth another attempt.
func (e *TransportError) Temporary() bool {
	return true
}

// IsTemporary reports whether err is a transport failure or a transient gateway code.
func IsTemporary(err error) bool {
	var t interface{ Temporary() bool }
	return errors.As(err, &t) && t.Temporary()
}
