package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Constraint rejects values a field must not take.
type Constraint func(v any) error

// ValueError reports a configuration value breaking one of its field's constraints.
type ValueError struct {
	Key    string
	Value  any
	Reason string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value %v for %s: %s", e.Value, e.Key, e.Reason)
}

// AtLeast accepts numbers greater than or equal to min.
func AtLeast(min float64) Constraint {
	return func(v any) error {
		var n float64
		switch value := v.(type) {
		case int:
			n = float64(value)
		case float64:
			n = value
		default:
			return fmt.Errorf("expected a number")
		}

		if n < min {
			return fmt.Errorf("must be at least %s", strconv.FormatFloat(min, 'f', -1, 64))
		}
		return nil
	}
}

// OneOf accepts only the listed strings.
func OneOf(options ...string) Constraint {
	return func(v any) error {
		if s, ok := v.(string); ok && lo.Contains(options, s) {
			return nil
		}
		return fmt.Errorf("must be one of %s", strings.Join(options, ", "))
	}
}

// NotEmpty rejects the empty string.
func NotEmpty(v any) error {
	if s, ok := v.(string); ok && strings.TrimSpace(s) != "" {
		return nil
	}
	return fmt.Errorf("must not be empty")
}

// Containing accepts strings holding sub.
func Containing(sub string) Constraint {
	return func(v any) error {
		if s, ok := v.(string); ok && strings.Contains(s, sub) {
			return nil
		}
		return fmt.Errorf("must contain %q", sub)
	}
}

// Parse converts command line values into the type of the field's default.
func (f *Field) Parse(values []string) (any, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("no value given for %s", f.Key)
	}

	switch f.Value.(type) {
	case string:
		return values[0], nil
	case int:
		n, err := strconv.Atoi(values[0])
		if err != nil {
			return nil, &ValueError{Key: f.Key, Value: values[0], Reason: "expected an integer"}
		}
		return n, nil
	case float64:
		n, err := strconv.ParseFloat(values[0], 64)
		if err != nil {
			return nil, &ValueError{Key: f.Key, Value: values[0], Reason: "expected a number"}
		}
		return n, nil
	case bool:
		b, err := strconv.ParseBool(values[0])
		if err != nil {
			return nil, &ValueError{Key: f.Key, Value: values[0], Reason: "expected true or false"}
		}
		return b, nil
	case []string:
		return values, nil
	default:
		return nil, fmt.Errorf("%s has an unsupported type", f.Key)
	}
}

// Check runs the field's constraints against v.
func (f *Field) Check(v any) error {
	for _, constraint := range f.Constraints {
		if err := constraint(v); err != nil {
			return &ValueError{Key: f.Key, Value: v, Reason: err.Error()}
		}
	}
	return nil
}

// Current returns the effective value of the field, typed like its default.
func (f *Field) Current() any {
	switch f.Value.(type) {
	case string:
		return viper.GetString(f.Key)
	case int:
		return viper.GetInt(f.Key)
	case float64:
		return viper.GetFloat64(f.Key)
	case bool:
		return viper.GetBool(f.Key)
	case []string:
		return viper.GetStringSlice(f.Key)
	default:
		return viper.Get(f.Key)
	}
}

// Validate checks the effective value of every field, in key order.
func Validate() error {
	keys := lo.Keys(Default)
	sort.Strings(keys)

	for _, k := range keys {
		field := Default[k]
		if err := field.Check(field.Current()); err != nil {
			return err
		}
	}
	return nil
}
