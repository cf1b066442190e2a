package service

import (
	"errors"

	"github.com/Behyna/epay/internal/constants"
	"github.com/Behyna/epay/pkg/epay"
)

type Error struct {
	Code  string
	Cause error
}

func NewServiceError(code string, cause error) error {
	return Error{Code: code, Cause: cause}
}

func (e Error) Error() string {
	return e.Cause.Error()
}

func (e Error) Unwrap() error {
	return e.Cause
}

var gatewayErrorCodes = []struct {
	err  error
	code string
}{
	{epay.ErrMissingTransactionID, constants.ErrCodeChargeUnconfirmed},
	{epay.ErrSubscriptionNotFound, constants.ErrCodeSubscriptionNotFound},
	{epay.ErrTransactionNotFound, constants.ErrCodeTransactionNotFound},
	{epay.ErrAuthorizationNotFound, constants.ErrCodeAuthorizationNotFound},
	{epay.ErrTransactionAlreadyCaptured, constants.ErrCodeTransactionAlreadyCaptured},
	{epay.ErrTransactionInGracePeriod, constants.ErrCodeTransactionInGracePeriod},
	{epay.ErrInvalidMerchantNumber, constants.ErrCodeInvalidMerchant},
	{epay.ErrUnknownCurrency, constants.ErrCodeUnknownCurrency},
	{epay.ErrTimeout, constants.ErrCodeGatewayTimeout},
	{epay.ErrTemporary, constants.ErrCodeGatewayTemporary},
}

// fromGateway wraps an error returned by the gateway client into an Error
// whose code the HTTP layer and the billing worker understand.
func fromGateway(err error) error {
	if err == nil {
		return nil
	}

	var serviceErr Error
	if errors.As(err, &serviceErr) {
		return err
	}

	var acceptedErr *epay.AcceptedError
	if errors.As(err, &acceptedErr) {
		return NewServiceError(constants.ErrCodeChargeUnconfirmed, err)
	}

	for _, m := range gatewayErrorCodes {
		if errors.Is(err, m.err) {
			return NewServiceError(m.code, err)
		}
	}

	var transportErr *epay.TransportError
	if errors.As(err, &transportErr) {
		return NewServiceError(constants.ErrCodeGatewayUnavailable, err)
	}

	var gatewayErr *epay.GatewayError
	if errors.As(err, &gatewayErr) {
		return NewServiceError(constants.ErrCodeGatewayError, err)
	}

	return NewServiceError(constants.ErrCodeInternalError, err)
}

func declined(action string, tx *epay.Transaction) error {
	return NewServiceError(constants.ErrCodeCardDeclined, &epay.GatewayError{
		Action:  action,
		Code:    tx.ErrorCode(),
		Message: tx.ErrorMessage(),
	})
}
