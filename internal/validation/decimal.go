package validation

import (
	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"
)

// MaxAmountScale is the number of fractional digits accepted in money amounts.
const MaxAmountScale = 2

// Amount validates a money amount given as a decimal string with at most two
// fractional digits. Empty strings are left to Required.
var Amount = validation.By(func(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_amount_type", "must be a string")
	}
	if s == "" {
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return validation.NewError("validation_amount", "must be a decimal number")
	}
	if -d.Exponent() > MaxAmountScale {
		return validation.NewError("validation_amount_scale", "must have at most 2 decimal places")
	}
	return nil
})

// NonNegativeAmount validates that a decimal string is zero or greater.
var NonNegativeAmount = validation.By(func(value interface{}) error {
	s, _ := value.(string)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	if d.IsNegative() {
		return validation.NewError("validation_amount_negative", "must not be negative")
	}
	return nil
})
