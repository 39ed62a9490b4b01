// Package validation registers the request-binding rules for decimal
// money fields.
package validation

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var oneHundred = decimal.NewFromInt(100)

// RegisterCustomValidators installs the decimal rules into gin's binding
// validator. Call once at startup before the engine serves requests.
func RegisterCustomValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	// gtzero: a decimal amount strictly greater than zero.
	_ = v.RegisterValidation("gtzero", func(fl validator.FieldLevel) bool {
		value, ok := decimalValue(fl)
		if !ok {
			return false
		}
		return value.IsPositive()
	})

	// feepercent: a decimal percentage within [0, 100].
	_ = v.RegisterValidation("feepercent", func(fl validator.FieldLevel) bool {
		value, ok := decimalValue(fl)
		if !ok {
			return false
		}
		return !value.IsNegative() && value.LessThanOrEqual(oneHundred)
	})
}

func decimalValue(fl validator.FieldLevel) (decimal.Decimal, bool) {
	switch value := fl.Field().Interface().(type) {
	case decimal.Decimal:
		return value, true
	case *decimal.Decimal:
		if value == nil {
			return decimal.Zero, false
		}
		return *value, true
	default:
		return decimal.Zero, false
	}
}
