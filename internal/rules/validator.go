package rules

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	customError "github.com/segyhp/loan-simulator/pkg/errors"
)

// Tag is the struct tag that binds a field to a table entry, e.g. `validate:"loanrule=loanDetails.loanTerm"`
const Tag = "loanrule"

// Validator checks request DTOs against the rule table
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})

	// Nil pointers must reach the rule so optional fields can be skipped and required ones rejected.
	if err := v.RegisterValidation(Tag, validateRule, true); err != nil {
		panic(err)
	}

	return &Validator{validate: v}
}

// Struct validates s and returns a *errors.ValidationError listing each
// offending field with the message from the rule table.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return err
	}

	fields := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		message := fe.Error()
		if rule, ok := lookup(fe.Param()); ok && fe.Tag() == Tag {
			message = rule.ErrorMessage
		}
		fields[fieldPath(fe.Namespace())] = message
	}

	return customError.NewValidationError(fields)
}

// fieldPath drops the root struct name from a validator namespace
func fieldPath(namespace string) string {
	_, path, ok := strings.Cut(namespace, ".")
	if !ok {
		return namespace
	}
	return path
}

func decimalValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

func validateRule(fl validator.FieldLevel) bool {
	rule, ok := lookup(fl.Param())
	if !ok {
		return false
	}

	field := fl.Field()
	if !field.IsValid() {
		return !rule.Required
	}
	if field.Kind() == reflect.Ptr || field.Kind() == reflect.Interface {
		if field.IsNil() {
			return !rule.Required
		}
		field = field.Elem()
	}

	switch field.Kind() {
	case reflect.String:
		return acceptsOption(rule.Options, rule.Required, field.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return withinBounds(rule.Min, rule.Max, float64(field.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return withinBounds(rule.Min, rule.Max, float64(field.Uint()))
	case reflect.Float32, reflect.Float64:
		return withinBounds(rule.Min, rule.Max, field.Float())
	}

	return false
}

func withinBounds(lower, upper *float64, value float64) bool {
	if lower != nil && value < *lower {
		return false
	}
	if upper != nil && value > *upper {
		return false
	}
	return true
}

func acceptsOption(options []string, required bool, value string) bool {
	if len(options) == 0 {
		return !required || value != ""
	}
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}
