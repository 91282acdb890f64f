package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/leaderturk/property-management/pkg/errors"
	"github.com/leaderturk/property-management/pkg/types"
	"github.com/shopspring/decimal"
)

// maxMoney is the largest amount a NUMERIC(10,2) column holds.
var maxMoney = decimal.RequireFromString("99999999.99")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// Errors collects field → message pairs.
type Errors map[string]string

// Add records a message for field unless one is already present.
func (e Errors) Add(field, message string) {
	if _, exists := e[field]; !exists {
		e[field] = message
	}
}

// Err returns a VALIDATION_ERROR carrying the collected details, or nil.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(map[string]string(e))
}

// Self is implemented by payloads with rules that struct tags cannot express.
type Self interface {
	Validate() error
}

// Struct validates tagged fields and then the payload's own Validate method.
func Struct(dest any) error {
	if err := validate.Struct(dest); err != nil {
		return format(err)
	}
	if sv, ok := dest.(Self); ok {
		return sv.Validate()
	}
	return nil
}

// Check runs a validator tag against a single value.
func Check(errs Errors, field string, value any, tag string) {
	if err := validate.Var(value, tag); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			errs.Add(field, Message(fieldErrs[0]))
			return
		}
		errs.Add(field, "is invalid")
	}
}

// CheckOptional validates an Optional only when the field was supplied.
func CheckOptional[T any](errs Errors, field string, o types.Optional[T], tag string) {
	if o.Set {
		Check(errs, field, o.Value, tag)
	}
}

// CheckNullable validates a Nullable only when it carries a value.
func CheckNullable[T any](errs Errors, field string, n types.Nullable[T], tag string) {
	if n.Set && n.Value != nil {
		Check(errs, field, *n.Value, tag)
	}
}

// CheckMoney enforces a non-negative amount that fits the storage column.
func CheckMoney(errs Errors, field string, m types.Money) {
	switch {
	case m.IsNegative():
		errs.Add(field, "must not be negative")
	case m.GreaterThan(maxMoney):
		errs.Add(field, "must be at most "+maxMoney.StringFixed(2))
	}
}

func format(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		details := Errors{}
		for _, fieldErr := range errs {
			details.Add(fieldErr.Field(), Message(fieldErr))
		}
		return details.Err()
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "validation failed")
}

// Message renders a validator failure as a client-facing sentence fragment.
func Message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if isString(fe) {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if isString(fe) {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at most %s", fe.Param())
	case "email":
		return "must be a valid email"
	case "uuid", "uuid4":
		return "must be a valid identifier"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	}
	return "is invalid"
}

func isString(fe validator.FieldError) bool {
	return fe.Kind() == reflect.String
}
