package constants

import "net/http"

const (
	ErrCodeInvalidRequestBody         = "INVALID_REQUEST_BODY"
	ErrCodeValidationFailed           = "VALIDATION_FAILED"
	ErrCodeSubscriptionNotFound       = "SUBSCRIPTION_NOT_FOUND"
	ErrCodeTransactionNotFound        = "TRANSACTION_NOT_FOUND"
	ErrCodeAuthorizationNotFound      = "AUTHORIZATION_NOT_FOUND"
	ErrCodeTransactionAlreadyCaptured = "TRANSACTION_ALREADY_CAPTURED"
	ErrCodeTransactionInGracePeriod   = "TRANSACTION_IN_GRACE_PERIOD"
	ErrCodeCardDeclined               = "CARD_DECLINED"
	ErrCodeUnknownCurrency            = "UNKNOWN_CURRENCY"
	ErrCodeOperationFailed            = "OPERATION_FAILED"
	ErrCodeInvalidMerchant            = "INVALID_MERCHANT"
	ErrCodeGatewayTemporary           = "GATEWAY_TEMPORARY_ERROR"
	ErrCodeGatewayTimeout             = "GATEWAY_TIMEOUT"
	ErrCodeGatewayUnavailable         = "GATEWAY_UNAVAILABLE"
	ErrCodeGatewayError               = "GATEWAY_ERROR"
	ErrCodeRouteNotFound              = "ROUTE_NOT_FOUND"
	ErrCodeChargeUnconfirmed          = "CHARGE_UNCONFIRMED"
	ErrCodeInternalError              = "INTERNAL_ERROR"
)

const (
	ErrMsgInvalidRequestBody         = "failed to parse request body"
	ErrMsgValidationFailed           = "request validation failed"
	ErrMsgSubscriptionNotFound       = "subscription not found"
	ErrMsgTransactionNotFound        = "transaction not found"
	ErrMsgAuthorizationNotFound      = "authorization not found"
	ErrMsgTransactionAlreadyCaptured = "transaction already captured"
	ErrMsgTransactionInGracePeriod   = "transaction is in its grace period"
	ErrMsgCardDeclined               = "card was declined"
	ErrMsgUnknownCurrency            = "unknown currency"
	ErrMsgOperationFailed            = "gateway did not complete the operation"
	ErrMsgInvalidMerchant            = "gateway rejected the merchant number"
	ErrMsgGatewayTemporary           = "gateway reported a temporary error, try again later"
	ErrMsgGatewayTimeout             = "gateway timed out"
	ErrMsgGatewayUnavailable         = "gateway unavailable"
	ErrMsgGatewayError               = "gateway error"
	ErrMsgRouteNotFound              = "route not found"
	ErrMsgChargeUnconfirmed          = "payment was accepted but its transaction could not be loaded, do not retry"
	ErrMsgInternalError              = "Internal server error"
)

const MessageErrorFormat = "%s is invalid"

var errorMessages = map[string]string{
	ErrCodeInvalidRequestBody:         ErrMsgInvalidRequestBody,
	ErrCodeValidationFailed:           ErrMsgValidationFailed,
	ErrCodeSubscriptionNotFound:       ErrMsgSubscriptionNotFound,
	ErrCodeTransactionNotFound:        ErrMsgTransactionNotFound,
	ErrCodeAuthorizationNotFound:      ErrMsgAuthorizationNotFound,
	ErrCodeTransactionAlreadyCaptured: ErrMsgTransactionAlreadyCaptured,
	ErrCodeTransactionInGracePeriod:   ErrMsgTransactionInGracePeriod,
	ErrCodeCardDeclined:               ErrMsgCardDeclined,
	ErrCodeUnknownCurrency:            ErrMsgUnknownCurrency,
	ErrCodeOperationFailed:            ErrMsgOperationFailed,
	ErrCodeInvalidMerchant:            ErrMsgInvalidMerchant,
	ErrCodeGatewayTemporary:           ErrMsgGatewayTemporary,
	ErrCodeGatewayTimeout:             ErrMsgGatewayTimeout,
	ErrCodeGatewayUnavailable:         ErrMsgGatewayUnavailable,
	ErrCodeGatewayError:               ErrMsgGatewayError,
	ErrCodeRouteNotFound:              ErrMsgRouteNotFound,
	ErrCodeChargeUnconfirmed:          ErrMsgChargeUnconfirmed,
	ErrCodeInternalError:              ErrMsgInternalError,
}

func GetErrorMessage(code string) string {
	if msg, exists := errorMessages[code]; exists {
		return msg
	}
	return ErrMsgInternalError
}

func GetHTTPStatus(code string) int {
	switch code {
	case ErrCodeChargeUnconfirmed:
		return http.StatusAccepted
	case ErrCodeInvalidRequestBody:
		return http.StatusBadRequest
	case ErrCodeValidationFailed, ErrCodeUnknownCurrency, ErrCodeOperationFailed:
		return http.StatusUnprocessableEntity
	case ErrCodeSubscriptionNotFound, ErrCodeTransactionNotFound, ErrCodeAuthorizationNotFound, ErrCodeRouteNotFound:
		return http.StatusNotFound
	case ErrCodeTransactionAlreadyCaptured, ErrCodeTransactionInGracePeriod:
		return http.StatusConflict
	case ErrCodeCardDeclined:
		return http.StatusPaymentRequired
	case ErrCodeGatewayTemporary, ErrCodeGatewayUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeGatewayTimeout:
		return http.StatusGatewayTimeout
	case ErrCodeInvalidMerchant, ErrCodeGatewayError:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

const (
	SubscriptionCreated    = "subscription created successfully"
	SubscriptionRetrieved  = "subscription retrieved successfully"
	SubscriptionsRetrieved = "subscriptions retrieved successfully"
	SubscriptionDeleted    = "subscription deleted successfully"
	SubscriptionAuthorized = "subscription charged successfully"
	TransactionCreated     = "transaction created successfully"
	TransactionRetrieved   = "transaction retrieved successfully"
	TransactionCaptured    = "transaction captured successfully"
	TransactionCredited    = "transaction credited successfully"
	TransactionDeleted     = "transaction deleted successfully"
)
