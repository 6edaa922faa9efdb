package models

import (
	"reflect"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Decimals are checked through their string form so that the precision
	// of the input is kept ("12.990" has three decimal places).
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			return d.String()
		}
		return nil
	}, decimal.Decimal{})

	_ = v.RegisterValidation("max_digits", func(fl validator.FieldLevel) bool {
		digits, _, ok := decimalShape(fl.Field().String())
		return ok && digits <= paramInt(fl.Param())
	})
	_ = v.RegisterValidation("decimal_places", func(fl validator.FieldLevel) bool {
		_, places, ok := decimalShape(fl.Field().String())
		return ok && places <= paramInt(fl.Param())
	})
	_ = v.RegisterValidation("max_whole_digits", func(fl validator.FieldLevel) bool {
		digits, places, ok := decimalShape(fl.Field().String())
		return ok && digits-places <= paramInt(fl.Param())
	})

	return v
}

// Validate checks the field constraints declared on a record.
// A failure is reported as validator.ValidationErrors.
func Validate(record any) error {
	return validate.Struct(record)
}

// decimalShape returns the total number of significant digits and the
// number of digits after the decimal point of a decimal literal.
func decimalShape(s string) (digits, places int, ok bool) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, 0, false
	}
	coefficient := d.Coefficient()
	digitCount := len(coefficient.Abs(coefficient).String())
	exp := int(d.Exponent())

	if exp >= 0 {
		if coefficient.Sign() == 0 {
			return 0, 0, true
		}
		return digitCount + exp, 0, true
	}
	places = -exp
	if places > digitCount {
		return places, places, true
	}
	return digitCount, places, true
}

func paramInt(param string) int {
	n, err := strconv.Atoi(param)
	if err != nil {
		return 0
	}
	return n
}
