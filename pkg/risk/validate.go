package risk

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is a single input violation.
type FieldError interface {
	error
	FieldName() string
	Reason() string
}

// MissingFieldError reports a required field that was not supplied, or a
// categorical field not set to one of its Allowed values.
type MissingFieldError struct {
	Field   string
	Allowed []string
}

func (e *MissingFieldError) FieldName() string { return e.Field }

func (e *MissingFieldError) Reason() string {
	if len(e.Allowed) > 0 {
		return "required, must be one of: " + strings.Join(e.Allowed, ", ")
	}
	return "required"
}

func (e *MissingFieldError) Error() string {
	return e.Field + ": " + e.Reason()
}

// RangeError reports a numeric field outside its inclusive bounds.
type RangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *RangeError) FieldName() string { return e.Field }

func (e *RangeError) Reason() string {
	return fmt.Sprintf("value %v outside allowed range [%v,%v]", e.Value, e.Min, e.Max)
}

func (e *RangeError) Error() string {
	return e.Field + ": " + e.Reason()
}

// Violation is the transport form of a FieldError.
type Violation struct {
	Field  string `json:"field" yaml:"field"`
	Reason string `json:"reason" yaml:"reason"`
}

// ValidationError carries every violation found in one input, ordered by
// field declaration order.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		msgs = append(msgs, fe.Error())
	}
	return "invalid input: " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Errors))
	for _, fe := range e.Errors {
		errs = append(errs, fe)
	}
	return errs
}

// Violations returns the field/reason pairs for display.
func (e *ValidationError) Violations() []Violation {
	list := make([]Violation, 0, len(e.Errors))
	for _, fe := range e.Errors {
		list = append(list, Violation{Field: fe.FieldName(), Reason: fe.Reason()})
	}
	return list
}

// Validator checks inputs against the measurement ranges. It is safe for
// concurrent use.
type Validator struct {
	validate *validator.Validate
	order    map[string]int
}

// NewValidator returns a Validator for the measurement field table.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their wire names
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	order := make(map[string]int, len(fields)+2)
	for i, f := range fields {
		order[f.Name] = i
	}
	order[FieldSex] = len(fields)
	order[FieldRace] = len(fields) + 1

	return &Validator{validate: v, order: order}
}

// Validate returns the validated measurement or a *ValidationError listing
// all violations. A nil input reports every field as missing.
func (v *Validator) Validate(in *Input) (*Measurement, error) {
	if in == nil {
		in = &Input{}
	}

	err := v.validate.Struct(in)
	if err == nil {
		return in.measurement(), nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, fmt.Errorf("validating input: %w", err)
	}

	ve := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		ve.Errors = append(ve.Errors, toFieldError(fe))
	}

	slices.SortStableFunc(ve.Errors, func(a, b FieldError) int {
		return v.order[a.FieldName()] - v.order[b.FieldName()]
	})

	return nil, ve
}

func toFieldError(fe validator.FieldError) FieldError {
	name := fe.Field()

	switch fe.Tag() {
	case "gte", "lte":
		spec, _ := LookupField(name)
		return &RangeError{
			Field: name,
			Value: toFloat(fe.Value()),
			Min:   spec.Min,
			Max:   spec.Max,
		}
	default:
		return &MissingFieldError{Field: name, Allowed: allowedValues(name)}
	}
}

func allowedValues(name string) []string {
	switch name {
	case FieldSex:
		return slices.Clone(sexValues)
	case FieldRace:
		return slices.Clone(raceValues)
	default:
		return nil
	}
}

func toFloat(v any) float64 {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return 0
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return 0
	}
}
