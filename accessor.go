package confz

import "fmt"

// Accessor is a typed view of one registered key. It is sugar over
// Configuration.Get and Configuration.Set and validates identically.
type Accessor[T any] struct {
	cfg *Configuration
	key string
}

// Bind returns an Accessor for key. The key must already be registered.
func Bind[T any](c *Configuration, key string) (Accessor[T], error) {
	if !c.rules.registered(key) {
		return Accessor[T]{}, &UnknownKeyError{Key: key}
	}
	return Accessor[T]{cfg: c, key: key}, nil
}

// MustBind is Bind that panics on an unregistered key. Use it during setup.
func MustBind[T any](c *Configuration, key string) Accessor[T] {
	a, err := Bind[T](c, key)
	if err != nil {
		panic(err)
	}
	return a
}

// BindAll returns an untyped Accessor for every registered key.
func BindAll(c *Configuration) map[string]Accessor[any] {
	keys := c.rules.Keys()
	out := make(map[string]Accessor[any], len(keys))
	for _, key := range keys {
		out[key] = Accessor[any]{cfg: c, key: key}
	}
	return out
}

// Key returns the bound key.
func (a Accessor[T]) Key() string {
	return a.key
}

// Get returns the effective value as a T. A nil value yields the zero T.
func (a Accessor[T]) Get() (T, error) {
	var zero T
	v, err := a.cfg.Get(a.key)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T, want %T", ErrTypeMismatch, a.key, v, zero)
	}
	return typed, nil
}

// Set assigns v to the key.
func (a Accessor[T]) Set(v T) error {
	return a.cfg.Set(a.key, v)
}

// Unset removes the explicit value for the key.
func (a Accessor[T]) Unset() error {
	return a.cfg.Unset(a.key)
}
