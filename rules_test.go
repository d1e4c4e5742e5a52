package confz

import (
	"errors"
	"slices"
	"testing"
)

func TestRules_HasAndDefaultFor(t *testing.T) {
	r := NewRules()
	r.Has("foo", Default("bar"))
	r.Has("bar")

	v, err := r.DefaultFor("foo")
	if err != nil {
		t.Fatalf("DefaultFor failed: %v", err)
	}
	if v != "bar" {
		t.Errorf("expected 'bar', got %v", v)
	}

	v, err = r.DefaultFor("bar")
	if err != nil {
		t.Fatalf("DefaultFor failed: %v", err)
	}
	if v != nil {
		t.Errorf("expected nil default, got %v", v)
	}
}

func TestRules_DefaultForUnknownKey(t *testing.T) {
	r := NewRules()

	_, err := r.DefaultFor("missing")
	var unknown *UnknownKeyError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownKeyError, got %v", err)
	}
	if unknown.Key != "missing" {
		t.Errorf("expected key 'missing', got %q", unknown.Key)
	}
}

func TestRules_ReRegistrationOverwritesAndKeepsOrder(t *testing.T) {
	r := NewRules()
	r.Has("a", Default(1))
	r.Has("b", Default(2))
	r.Has("a", Default(10), Validate(NotNil()))

	if got := r.Keys(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("expected [a b], got %v", got)
	}
	if r.Len() != 2 {
		t.Errorf("expected 2 keys, got %d", r.Len())
	}

	v, _ := r.DefaultFor("a")
	if v != 10 {
		t.Errorf("expected overwritten default 10, got %v", v)
	}
	if err := r.Check("a", nil); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("expected re-registered validator to apply, got %v", err)
	}
}

func TestRules_CheckWithoutValidatorAcceptsAnything(t *testing.T) {
	r := NewRules()
	r.Has("any")

	for _, v := range []any{nil, 1, "x", []int{1}, map[string]any{"k": 1}} {
		if err := r.Check("any", v); err != nil {
			t.Errorf("expected %v to be accepted, got %v", v, err)
		}
	}
}

func TestRules_CheckNilAcceptedUnlessRejected(t *testing.T) {
	r := NewRules()
	r.Has("port", Validate(OfType[int]()))

	if err := r.Check("port", nil); err != nil {
		t.Errorf("expected nil to pass a type validator, got %v", err)
	}
}

func TestRules_CheckRejects(t *testing.T) {
	r := NewRules()
	r.Has("count", ValidateFunc(func(v any) error {
		if n, ok := v.(int); ok && n > 100 {
			return errors.New("too large")
		}
		return nil
	}))

	if err := r.Check("count", 50); err != nil {
		t.Errorf("expected 50 accepted, got %v", err)
	}

	err := r.Check("count", 500)
	var invalid *InvalidValueError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidValueError, got %v", err)
	}
	if invalid.Key != "count" || invalid.Value != 500 {
		t.Errorf("unexpected error fields: %+v", invalid)
	}
}

func TestRules_CheckUnknownKey(t *testing.T) {
	r := NewRules()
	if err := r.Check("nope", 1); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
}

func TestRules_KeysReturnsCopy(t *testing.T) {
	r := NewRules()
	r.Has("a")
	r.Has("b")

	keys := r.Keys()
	keys[0] = "mutated"

	if got := r.Keys(); got[0] != "a" {
		t.Errorf("expected registry order untouched, got %v", got)
	}
}

func TestRules_Lookup(t *testing.T) {
	r := NewRules()
	r.Has("api_key", Default("foobarbaz"), Describe("Key used for upstream calls"))

	rule, ok := r.Lookup("api_key")
	if !ok {
		t.Fatal("expected rule to exist")
	}
	if rule.Key != "api_key" || rule.Default != "foobarbaz" {
		t.Errorf("unexpected rule %+v", rule)
	}
	if rule.Description != "Key used for upstream calls" {
		t.Errorf("unexpected description %q", rule.Description)
	}
	if rule.Validator != nil {
		t.Error("expected no validator")
	}

	if _, ok := r.Lookup("missing"); ok {
		t.Error("expected missing key lookup to fail")
	}
}
