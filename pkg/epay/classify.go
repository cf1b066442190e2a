package epay

type Class int

const (
	ClassUnknown Class = iota
	ClassTransient
	ClassDomain
)

func (c Class) String() string {
	switch c {
	case ClassTransient:
		return "transient"
	case ClassDomain:
		return "domain"
	default:
		return "unknown"
	}
}

type Classification struct {
	Class Class
	Err   error
}

var temporaryErrorCodes = map[string]struct{}{
	"-5511": {}, "100": {}, "102": {}, "116": {}, "121": {}, "255": {}, "256": {}, "906": {},
	"907": {}, "910": {}, "911": {}, "912": {}, "915": {}, "920": {}, "921": {}, "923": {},
	"945": {}, "946": {}, "-1000": {}, "-1005": {}, "-23": {}, "-3": {}, "-4": {},
}

const (
	CodeInvalidMerchantNumber      = "-1002"
	CodeTransactionNotFound        = "-1008"
	CodeSubscriptionNotFound       = "-1009"
	CodeTransactionAlreadyCaptured = "-1010"
	CodeAuthorizationNotFound      = "-1021"
	CodeTransactionInGracePeriod   = "-1023"
)

var domainErrorCodes = map[string]error{
	CodeInvalidMerchantNumber:      ErrInvalidMerchantNumber,
	CodeTransactionNotFound:        ErrTransactionNotFound,
	CodeSubscriptionNotFound:       ErrSubscriptionNotFound,
	CodeTransactionAlreadyCaptured: ErrTransactionAlreadyCaptured,
	CodeAuthorizationNotFound:      ErrAuthorizationNotFound,
	CodeTransactionInGracePeriod:   ErrTransactionInGracePeriod,
}

// IsTemporaryErrorCode is an exact match on the code string.
func IsTemporaryErrorCode(code string) bool {
	_, ok := temporaryErrorCodes[code]
	return ok
}

func Classify(code string) Classification {
	if IsTemporaryErrorCode(code) {
		return Classification{Class: ClassTransient, Err: ErrTemporary}
	}

	if err, ok := domainErrorCodes[code]; ok {
		return Classification{Class: ClassDomain, Err: err}
	}

	return Classification{Class: ClassUnknown}
}

// mapFailure turns a failed reply into a GatewayError. Domain conditions are
// kept only when they are listed in allowed for this action; any other domain
// code is reported as unknown with the raw code preserved.
func mapFailure(action string, resp Response, allowed ...error) *GatewayError {
	gerr := &GatewayError{
		Action:  action,
		Code:    resp.ErrorCode(),
		Message: resp.ErrorMessage(),
	}

	c := Classify(gerr.Code)
	switch c.Class {
	case ClassTransient:
		gerr.Err = ErrTemporary
	case ClassDomain:
		for _, err := range allowed {
			if err == c.Err {
				gerr.Err = err
				break
			}
		}
	}

	return gerr
}
