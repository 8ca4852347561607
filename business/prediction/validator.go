package prediction

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"liverRisk/domain"

	"github.com/go-playground/validator/v10"
)

// ValidationError lists every rejected field as "field: message".
type ValidationError struct {
	Details []string
}

func (e *ValidationError) Error() string {
	return "invalid input data: " + strings.Join(e.Details, "; ")
}

// NewValidator returns a validator that reports JSON field names and
// enforces direct bilirubin <= total bilirubin.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(bilirubinRule, domain.PredictionInput{})
	return v
}

func bilirubinRule(sl validator.StructLevel) {
	in := sl.Current().Interface().(domain.PredictionInput)
	if in.DirectBilirubin == nil || in.TotalBilirubin == nil {
		return
	}
	if *in.DirectBilirubin > *in.TotalBilirubin {
		sl.ReportError(in.DirectBilirubin, "direct_bilirubin", "DirectBilirubin", "bilirubin", "")
	}
}

// Validate checks in without modifying it. Out-of-range values are rejected,
// never clamped.
func Validate(v *validator.Validate, in domain.PredictionInput) error {
	err := v.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Details: []string{err.Error()}}
	}
	details := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		details = append(details, fmt.Sprintf("%s: %s", fe.Field(), message(fe)))
	}
	return &ValidationError{Details: details}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "gte":
		return "must be greater than or equal to " + fe.Param()
	case "lte":
		return "must be less than or equal to " + fe.Param()
	case "oneof":
		return "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "bilirubin":
		return "direct_bilirubin cannot exceed total_bilirubin"
	default:
		return "failed " + fe.Tag() + " check"
	}
}
