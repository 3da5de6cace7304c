// Package validation wraps go-playground/validator with the rules expense
// records are checked against.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// ErrInvalidRecord is returned when a record fails struct validation.
var ErrInvalidRecord = errors.New("invalid record")

// Validator wraps the go-playground validator with custom rules and error formatting
type Validator struct {
	validate *validator.Validate
}

var instance *Validator

// GetValidator returns the shared validator instance.
func GetValidator() *Validator {
	if instance == nil {
		instance = NewValidator()
	}
	return instance
}

// NewValidator creates a validator with the decimal type adapter and the
// positive_amount rule registered.
func NewValidator() *Validator {
	v := validator.New()

	// Decimals are validated by sign so arbitrarily small positive amounts pass.
	v.RegisterCustomTypeFunc(decimalSign, decimal.Decimal{})
	_ = v.RegisterValidation("positive_amount", validatePositiveAmount)

	return &Validator{validate: v}
}

// Struct validates s and folds any failures into a single ErrInvalidRecord.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return fmt.Errorf("%w: %s", ErrInvalidRecord, strings.Join(msgs, ", "))
}

func decimalSign(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.Sign()
	}
	return nil
}

// validatePositiveAmount validates that an amount is greater than 0
func validatePositiveAmount(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return fl.Field().Int() > 0
	case reflect.Float32, reflect.Float64:
		return fl.Field().Float() > 0
	default:
		return false
	}
}
