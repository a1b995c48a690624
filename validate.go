package clip

import (
	"fmt"
	"os"
	"strconv"
)

// Validator is a predicate over a coerced value. A nil return passes,
// anything else rejects the value with a reason.
type Validator func(v any) error

// StatFunc is the filesystem collaborator consulted by Exists. It has
// the shape of os.Stat so tests can substitute an in-memory variant.
type StatFunc func(name string) (os.FileInfo, error)

// Range accepts numeric values inside the inclusive [min, max] bounds.
func Range(min, max float64) Validator {
	return func(v any) error {
		f, ok := asFloat(v)
		if !ok {
			return fmt.Errorf("value %v is not numeric", v)
		}
		if f < min || f > max {
			return fmt.Errorf("value %v is outside range [%v, %v]", v, min, max)
		}
		return nil
	}
}

// Choice accepts values whose string form is one of the given choices.
// The membership test is case-sensitive.
func Choice(choices ...string) Validator {
	return func(v any) error {
		s := fmt.Sprint(v)
		for _, c := range choices {
			if s == c {
				return nil
			}
		}
		return fmt.Errorf("value %q is not one of %v", s, choices)
	}
}

// Exists accepts path values that exist on the filesystem, checked
// through os.Stat.
func Exists() Validator {
	return ExistsOn(os.Stat)
}

// ExistsOn is Exists with an explicit filesystem collaborator.
func ExistsOn(stat StatFunc) Validator {
	return func(v any) error {
		path, ok := v.(string)
		if !ok {
			return fmt.Errorf("value %v is not a path", v)
		}
		if _, err := stat(path); err != nil {
			return fmt.Errorf("path %q does not exist", path)
		}
		return nil
	}
}

// Custom wraps a caller-supplied predicate.
func Custom(fn func(v any) error) Validator {
	return Validator(fn)
}

func asFloat(v any) (float64, bool) {
	switch ty := v.(type) {
	case int:
		return float64(ty), true
	case int64:
		return float64(ty), true
	case float64:
		return ty, true
	}
	return 0, false
}

// runValidators applies the chain in declaration order and stops at the
// first failure. A panicking validator is reported as a validation
// failure instead of crashing the resolve call.
func runValidators(arg string, v any, chain []Validator) (verr *Error) {
	defer func() {
		if r := recover(); r != nil {
			verr = &Error{
				Arg:     arg,
				Kind:    ValidationFailed,
				Message: fmt.Sprintf(errValidatorPanic, arg),
			}
		}
	}()
	for _, validate := range chain {
		if err := validate(v); err != nil {
			return &Error{
				Arg:     arg,
				Kind:    ValidationFailed,
				Message: fmt.Sprintf(errValidateArg, arg, err),
			}
		}
	}
	return nil
}

// ValidatorCtor builds a Validator from string arguments, so that spec
// declarations loaded from data can name their validators.
type ValidatorCtor func(args ...string) (Validator, error)

var validatorRegistry = map[string]ValidatorCtor{}

// RegisterValidator adds a named constructor to the registry. It is
// meant to be called during program initialization, before parsers are
// built; it is not safe for concurrent use. Registering a taken name
// panics, like redeclaring an argument does.
func RegisterValidator(name string, ctor ValidatorCtor) {
	if _, has := validatorRegistry[name]; has {
		panic(fmt.Sprintf("validator %q is registered twice", name))
	}
	validatorRegistry[name] = ctor
}

// ValidatorByName resolves a registered constructor. Built-ins: "range"
// with min and max, "choice" with the allowed values, "exists" with no
// arguments.
func ValidatorByName(name string, args ...string) (Validator, error) {
	ctor, has := validatorRegistry[name]
	if !has {
		return nil, fmt.Errorf("unknown validator %q", name)
	}
	return ctor(args...)
}

func init() {
	RegisterValidator("range", func(args ...string) (Validator, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("range takes min and max, got %d arguments", len(args))
		}
		min, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("range min: %w", err)
		}
		max, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return nil, fmt.Errorf("range max: %w", err)
		}
		return Range(min, max), nil
	})
	RegisterValidator("choice", func(args ...string) (Validator, error) {
		if len(args) == 0 {
			return nil, fmt.Errorf("choice takes at least one value")
		}
		return Choice(args...), nil
	})
	RegisterValidator("exists", func(args ...string) (Validator, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("exists takes no arguments")
		}
		return Exists(), nil
	})
}
