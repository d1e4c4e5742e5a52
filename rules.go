package confz

// Rule is the default value and validator registered for one key.
type Rule struct {
	Key         string
	Default     any
	Validator   Validator
	Description string
}

// RuleOption configures a Rule during registration.
type RuleOption func(*Rule)

// Default sets the value returned for the key when nothing is set.
// A nil default is valid.
func Default(v any) RuleOption {
	return func(r *Rule) {
		r.Default = v
	}
}

// Validate sets the validator applied to values assigned to the key.
func Validate(v Validator) RuleOption {
	return func(r *Rule) {
		r.Validator = v
	}
}

// ValidateFunc is Validate for a plain function.
func ValidateFunc(fn func(value any) error) RuleOption {
	return Validate(ValidatorFunc(fn))
}

// Describe attaches human-readable documentation to the key.
func Describe(text string) RuleOption {
	return func(r *Rule) {
		r.Description = text
	}
}

// Rules is the registry of recognized configuration keys.
// Keys keep the position of their first registration.
type Rules struct {
	entries map[string]*Rule
	order   []string
}

// NewRules creates an empty registry.
func NewRules() *Rules {
	return &Rules{entries: make(map[string]*Rule)}
}

// Has registers key. Registering the same key again replaces its rule.
func (r *Rules) Has(key string, opts ...RuleOption) {
	rule := &Rule{Key: key}
	for _, opt := range opts {
		opt(rule)
	}
	if _, exists := r.entries[key]; !exists {
		r.order = append(r.order, key)
	}
	r.entries[key] = rule
}

// DefaultFor returns the registered default for key.
func (r *Rules) DefaultFor(key string) (any, error) {
	rule, ok := r.entries[key]
	if !ok {
		return nil, &UnknownKeyError{Key: key}
	}
	return rule.Default, nil
}

// Check validates value against the rule for key. Keys without a
// validator accept anything.
func (r *Rules) Check(key string, value any) error {
	rule, ok := r.entries[key]
	if !ok {
		return &UnknownKeyError{Key: key}
	}
	if rule.Validator == nil {
		return nil
	}
	if err := rule.Validator.Validate(value); err != nil {
		return &InvalidValueError{Key: key, Value: value, Err: err}
	}
	return nil
}

// Keys returns the registered keys in registration order.
func (r *Rules) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Lookup returns a copy of the rule for key.
func (r *Rules) Lookup(key string) (Rule, bool) {
	rule, ok := r.entries[key]
	if !ok {
		return Rule{}, false
	}
	return *rule, true
}

// Len returns the number of registered keys.
func (r *Rules) Len() int {
	return len(r.order)
}

func (r *Rules) registered(key string) bool {
	_, ok := r.entries[key]
	return ok
}
