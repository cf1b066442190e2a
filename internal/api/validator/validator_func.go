package validator

import (
	"github.com/Behyna/epay/pkg/epay"
	"github.com/go-playground/validator/v10"
)

const (
	CurrencyTag = "currency"
	CardNoTag   = "cardno"
)

var valid = map[string]func(fl validator.FieldLevel) bool{
	CurrencyTag: ValidateCurrency,
	CardNoTag:   ValidateCardNo,
}

func ValidateCurrency(fl validator.FieldLevel) bool {
	_, ok := epay.CurrencyCode(fl.Field().String())
	return ok
}

// ValidateCardNo accepts 12 to 19 digits passing the Luhn checksum.
func ValidateCardNo(fl validator.FieldLevel) bool {
	number := fl.Field().String()
	if len(number) < 12 || len(number) > 19 {
		return false
	}

	sum := 0
	double := false
	for i := len(number) - 1; i >= 0; i-- {
		d := int(number[i] - '0')
		if d < 0 || d > 9 {
			return false
		}

		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}

		sum += d
		double = !double
	}

	return sum%10 == 0
}
