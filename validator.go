package confz

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
)

// Validator decides whether a candidate value is acceptable for a key.
// A nil value is only rejected when the validator explicitly says so.
type Validator interface {
	Validate(value any) error
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(value any) error

// Validate calls f(value).
func (f ValidatorFunc) Validate(value any) error {
	return f(value)
}

// Ensure ValidatorFunc implements Validator.
var _ Validator = ValidatorFunc(nil)

// Accept returns a Validator that accepts every value.
func Accept() Validator {
	return ValidatorFunc(func(any) error { return nil })
}

// Predicate returns a Validator that accepts values for which fn returns true.
// The reason is used as the rejection message.
func Predicate(fn func(value any) bool, reason string) Validator {
	return ValidatorFunc(func(value any) error {
		if fn(value) {
			return nil
		}
		return errors.New(reason)
	})
}

// OneOf accepts values equal to one of the allowed values.
func OneOf(allowed ...any) Validator {
	return ValidatorFunc(func(value any) error {
		for _, a := range allowed {
			if reflect.DeepEqual(a, value) {
				return nil
			}
		}
		return fmt.Errorf("must be one of %v", allowed)
	})
}

// OfType accepts nil and values of type T.
func OfType[T any]() Validator {
	return ValidatorFunc(func(value any) error {
		if value == nil {
			return nil
		}
		if _, ok := value.(T); ok {
			return nil
		}
		var zero T
		return fmt.Errorf("must be of type %T, got %T", zero, value)
	})
}

// NotNil rejects nil.
func NotNil() Validator {
	return ValidatorFunc(func(value any) error {
		if value == nil {
			return errors.New("must not be nil")
		}
		return nil
	})
}

// Matches accepts nil and strings matching re.
func Matches(re *regexp.Regexp) Validator {
	return ValidatorFunc(func(value any) error {
		if value == nil {
			return nil
		}
		s, ok := value.(string)
		if !ok {
			return fmt.Errorf("must be a string, got %T", value)
		}
		if !re.MatchString(s) {
			return fmt.Errorf("must match %s", re)
		}
		return nil
	})
}

// All accepts a value only if every validator accepts it. The first
// rejection is returned.
func All(validators ...Validator) Validator {
	return ValidatorFunc(func(value any) error {
		for _, v := range validators {
			if v == nil {
				continue
			}
			if err := v.Validate(value); err != nil {
				return err
			}
		}
		return nil
	})
}
