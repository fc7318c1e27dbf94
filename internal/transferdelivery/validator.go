package transferdelivery

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ValidAmount validates that the field holds a positive decimal number.
var ValidAmount validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		amount, err := decimal.NewFromString(s)
		return err == nil && amount.IsPositive()
	}

	return false
}
