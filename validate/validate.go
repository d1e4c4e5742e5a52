// Package validate adapts go-playground/validator tags to confz validators.
//
//	cfg.Rules().Has("port", confz.Default(8080), confz.Validate(validate.Tag("min=1,max=65535")))
//	cfg.Rules().Has("level", confz.Validate(validate.Tag("omitempty,oneof=debug info warn error")))
//
// Tags are evaluated with Validate.Var against the candidate value. A nil
// candidate fails any tag that does not start with omitempty, so use
// omitempty for keys that may be cleared to nil.
package validate

import (
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/confz"
)

var (
	defaultOnce     sync.Once
	defaultValidate *validator.Validate
)

func shared() *validator.Validate {
	defaultOnce.Do(func() {
		defaultValidate = validator.New(validator.WithRequiredStructEnabled())
	})
	return defaultValidate
}

// Tag returns a Validator that checks values against tag using a shared
// validator instance.
func Tag(tag string) confz.Validator {
	return New(shared()).Tag(tag)
}

// Engine binds tags to a caller-owned *validator.Validate, which is where
// custom validations are registered.
type Engine struct {
	v *validator.Validate
}

// New wraps v.
func New(v *validator.Validate) *Engine {
	return &Engine{v: v}
}

// Tag returns a Validator that checks values against tag.
func (e *Engine) Tag(tag string) confz.Validator {
	return confz.ValidatorFunc(func(value any) error {
		return e.v.Var(value, tag)
	})
}
