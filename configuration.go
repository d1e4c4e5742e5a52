package confz

import (
	"maps"
	"slices"
)

// Configuration holds explicitly set values and answers reads with the
// value or the registered default. Every write is checked against Rules.
//
// A Configuration performs no locking. Hosts sharing one across goroutines
// must synchronize access themselves.
type Configuration struct {
	rules  *Rules
	values map[string]any
}

// New creates a Configuration with an empty Rules registry.
func New() *Configuration {
	return &Configuration{
		rules:  NewRules(),
		values: make(map[string]any),
	}
}

// Rules returns the registry owned by this Configuration.
func (c *Configuration) Rules() *Rules {
	return c.rules
}

// Get returns the explicit value for key, or its default if none is set.
// An explicit nil is returned as nil, not as the default.
func (c *Configuration) Get(key string) (any, error) {
	if !c.rules.registered(key) {
		return nil, &UnknownKeyError{Key: key}
	}
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return c.rules.DefaultFor(key)
}

// Set checks value against the rule for key and stores it.
// On error the configuration is left unchanged.
func (c *Configuration) Set(key string, value any) error {
	if err := c.rules.Check(key, value); err != nil {
		return err
	}
	c.values[key] = value
	return nil
}

// Unset removes the explicit value for key so reads fall back to the
// default. Unsetting a key that was never set does nothing.
func (c *Configuration) Unset(key string) error {
	if !c.rules.registered(key) {
		return &UnknownKeyError{Key: key}
	}
	delete(c.values, key)
	return nil
}

// Reset removes every explicit value.
func (c *Configuration) Reset() {
	clear(c.values)
}

// IsSet reports whether key has an explicit value.
func (c *Configuration) IsSet(key string) (bool, error) {
	if !c.rules.registered(key) {
		return false, &UnknownKeyError{Key: key}
	}
	_, ok := c.values[key]
	return ok, nil
}

// Current returns the effective value of every registered key, in
// registration order.
func (c *Configuration) Current() Snapshot {
	keys := c.rules.Keys()
	values := make(map[string]any, len(keys))
	for _, key := range keys {
		if v, ok := c.values[key]; ok {
			values[key] = v
			continue
		}
		values[key] = c.rules.entries[key].Default
	}
	return Snapshot{keys: keys, values: values}
}

// Merge sets every pair in values. All pairs are checked before any is
// stored, so either all are applied or none are.
func (c *Configuration) Merge(values map[string]any) error {
	if err := c.checkAll(values); err != nil {
		return err
	}
	maps.Copy(c.values, values)
	return nil
}

// Replace makes values the complete set of explicit values. Keys absent
// from values revert to their defaults. On error nothing changes.
func (c *Configuration) Replace(values map[string]any) error {
	if err := c.checkAll(values); err != nil {
		return err
	}
	clear(c.values)
	maps.Copy(c.values, values)
	return nil
}

// checkAll validates unknown keys first (sorted) and then registered keys
// in registration order, returning the first failure.
func (c *Configuration) checkAll(values map[string]any) error {
	unknown := make([]string, 0)
	for key := range values {
		if !c.rules.registered(key) {
			unknown = append(unknown, key)
		}
	}
	if len(unknown) > 0 {
		slices.Sort(unknown)
		return &UnknownKeyError{Key: unknown[0]}
	}
	for _, key := range c.rules.order {
		v, ok := values[key]
		if !ok {
			continue
		}
		if err := c.rules.Check(key, v); err != nil {
			return err
		}
	}
	return nil
}
