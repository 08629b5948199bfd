package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

// newValidator builds a validator that reports fields by their config key
// names (e.g. "workload.mix") rather than Go field names.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(validateWorkload, WorkloadConfig{})
	return v
}

// validateWorkload enforces the cross-field rules of a workload.
func validateWorkload(sl validator.StructLevel) {
	w := sl.Current().Interface().(WorkloadConfig)
	if w.Mix.Total() == 0 {
		sl.ReportError(w.Mix, "mix", "Mix", "mix_total", "")
	}
}

// Validate checks cfg against its struct tags and cross-field rules.
// All violations are reported in one error, one line per field.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, formatFieldError(fe))
	}
	return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(msgs, "\n  - "))
}

func formatFieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}

	switch fe.Tag() {
	case "required", "required_if":
		return fmt.Sprintf("%s is required (%s)", field, fe.Tag())
	case "mix_total":
		return fmt.Sprintf("%s must have at least one positive weight (%s)", field, fe.Tag())
	}
	if fe.Param() != "" {
		return fmt.Sprintf("%s: value %v fails %s=%s", field, fe.Value(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s: value %v fails %s", field, fe.Value(), fe.Tag())
}
