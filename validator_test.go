package confz

import (
	"regexp"
	"testing"
)

func TestAccept(t *testing.T) {
	v := Accept()
	for _, value := range []any{nil, 0, "", struct{}{}} {
		if err := v.Validate(value); err != nil {
			t.Errorf("expected %v accepted, got %v", value, err)
		}
	}
}

func TestPredicate(t *testing.T) {
	positive := Predicate(func(v any) bool {
		n, ok := v.(int)
		return ok && n > 0
	}, "must be a positive int")

	if err := positive.Validate(3); err != nil {
		t.Errorf("expected 3 accepted, got %v", err)
	}
	err := positive.Validate(-1)
	if err == nil {
		t.Fatal("expected -1 rejected")
	}
	if err.Error() != "must be a positive int" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestOneOf(t *testing.T) {
	v := OneOf("debug", "info", nil)

	for _, ok := range []any{"debug", "info", nil} {
		if err := v.Validate(ok); err != nil {
			t.Errorf("expected %v accepted, got %v", ok, err)
		}
	}
	if err := v.Validate("trace"); err == nil {
		t.Error("expected 'trace' rejected")
	}
}

func TestOfType(t *testing.T) {
	v := OfType[int]()

	if err := v.Validate(1); err != nil {
		t.Errorf("expected int accepted, got %v", err)
	}
	if err := v.Validate(nil); err != nil {
		t.Errorf("expected nil accepted, got %v", err)
	}
	err := v.Validate("1")
	if err == nil {
		t.Fatal("expected string rejected")
	}
	if err.Error() != "must be of type int, got string" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestNotNil(t *testing.T) {
	v := NotNil()
	if err := v.Validate(nil); err == nil {
		t.Error("expected nil rejected")
	}
	if err := v.Validate(0); err != nil {
		t.Errorf("expected 0 accepted, got %v", err)
	}
}

func TestMatches(t *testing.T) {
	v := Matches(regexp.MustCompile(`^[a-z]+$`))

	if err := v.Validate("abc"); err != nil {
		t.Errorf("expected 'abc' accepted, got %v", err)
	}
	if err := v.Validate(nil); err != nil {
		t.Errorf("expected nil accepted, got %v", err)
	}
	if err := v.Validate("ABC"); err == nil {
		t.Error("expected 'ABC' rejected")
	}
	if err := v.Validate(12); err == nil {
		t.Error("expected non-string rejected")
	}
}

func TestAll(t *testing.T) {
	v := All(NotNil(), nil, OfType[string](), OneOf("a", "b"))

	if err := v.Validate("a"); err != nil {
		t.Errorf("expected 'a' accepted, got %v", err)
	}
	if err := v.Validate(nil); err == nil || err.Error() != "must not be nil" {
		t.Errorf("expected NotNil rejection first, got %v", err)
	}
	if err := v.Validate(1); err == nil {
		t.Error("expected 1 rejected")
	}
	if err := v.Validate("c"); err == nil {
		t.Error("expected 'c' rejected")
	}
}
