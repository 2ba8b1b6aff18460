package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// now is the clock used by the notfuture rule.
var now = time.Now

// echoValidator wraps go-playground/validator so Echo can call c.Validate(req).
type echoValidator struct {
	v *validator.Validate
}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
// Besides the built-in rules it understands:
//
//	digits=I.F  decimal with at most I integer and F fraction digits
//	notfuture   timestamp not after the current time
func NewValidator() *echoValidator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{}, decimal.NullDecimal{})

	_ = v.RegisterValidation("digits", validateDigits)
	_ = v.RegisterValidation("notfuture", validateNotFuture)

	return &echoValidator{v: v}
}

// Validate satisfies the echo.Validator interface.
func (ev *echoValidator) Validate(i any) error {
	if err := ev.v.Struct(i); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			msgs := make([]string, 0, len(ve))
			for _, fe := range ve {
				msgs = append(msgs, fieldError(fe))
			}
			return fmt.Errorf("%s", strings.Join(msgs, "; "))
		}
		return err
	}
	return nil
}

// decimalValue exposes decimals to the validator as strings. An absent
// NullDecimal becomes nil so required and omitempty behave as for pointers.
func decimalValue(field reflect.Value) any {
	switch d := field.Interface().(type) {
	case decimal.Decimal:
		return d.String()
	case decimal.NullDecimal:
		if !d.Valid {
			return nil
		}
		return d.Decimal.String()
	}
	return nil
}

func validateDigits(fl validator.FieldLevel) bool {
	maxInt, maxFrac, ok := parseDigitsParam(fl.Param())
	if !ok {
		return false
	}
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	intDigits, fracDigits := countDigits(d)
	return intDigits <= maxInt && fracDigits <= maxFrac
}

func parseDigitsParam(param string) (int, int, bool) {
	intPart, fracPart, found := strings.Cut(param, ".")
	if !found {
		return 0, 0, false
	}
	i, err := strconv.Atoi(intPart)
	if err != nil {
		return 0, 0, false
	}
	f, err := strconv.Atoi(fracPart)
	if err != nil {
		return 0, 0, false
	}
	return i, f, true
}

// countDigits reports the integer and significant fraction digits of d.
// Trailing fraction zeros do not count, so 36.500 has two fraction digits.
func countDigits(d decimal.Decimal) (int, int) {
	s := d.Abs().String()
	intPart, fracPart, _ := strings.Cut(s, ".")
	intPart = strings.TrimLeft(intPart, "0")
	fracPart = strings.TrimRight(fracPart, "0")
	return len(intPart), len(fracPart)
}

func validateNotFuture(fl validator.FieldLevel) bool {
	ts, ok := fl.Field().Interface().(time.Time)
	if !ok {
		return false
	}
	return !ts.After(now())
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "digits":
		i, f, _ := parseDigitsParam(fe.Param())
		return fmt.Sprintf("%s must have at most %d integer digits and %d decimal places", field, i, f)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "hexcolor":
		return field + " must be a valid hex color code (#RRGGBB)"
	case "notfuture":
		return field + " cannot be in the future"
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
