package validate

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/zoobzio/confz"
)

func TestTag_Range(t *testing.T) {
	v := Tag("min=1,max=65535")

	if err := v.Validate(8080); err != nil {
		t.Errorf("expected 8080 accepted, got %v", err)
	}
	if err := v.Validate(0); err == nil {
		t.Error("expected 0 rejected")
	}
	if err := v.Validate(70000); err == nil {
		t.Error("expected 70000 rejected")
	}
}

func TestTag_RequiredRejectsNil(t *testing.T) {
	v := Tag("required")

	if err := v.Validate(nil); err == nil {
		t.Error("expected nil rejected")
	}
	if err := v.Validate("x"); err != nil {
		t.Errorf("expected 'x' accepted, got %v", err)
	}
}

func TestTag_OmitemptyAcceptsNil(t *testing.T) {
	v := Tag("omitempty,oneof=debug info")

	if err := v.Validate(nil); err != nil {
		t.Errorf("expected nil accepted, got %v", err)
	}
	if err := v.Validate("info"); err != nil {
		t.Errorf("expected 'info' accepted, got %v", err)
	}
	if err := v.Validate("trace"); err == nil {
		t.Error("expected 'trace' rejected")
	}
}

func TestTag_WithConfiguration(t *testing.T) {
	cfg := confz.New()
	cfg.Rules().Has("port", confz.Default(8080), confz.Validate(Tag("min=1,max=65535")))

	err := cfg.Set("port", 0)
	if !errors.Is(err, confz.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validator.ValidationErrors in chain, got %T", errors.Unwrap(err))
	}
	if verrs[0].Tag() != "min" {
		t.Errorf("expected failing tag 'min', got %q", verrs[0].Tag())
	}

	if v, _ := cfg.Get("port"); v != 8080 {
		t.Errorf("expected default 8080, got %v", v)
	}
}

func TestEngine_CustomValidation(t *testing.T) {
	v := validator.New()
	if err := v.RegisterValidation("lower", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == strings.ToLower(s)
	}); err != nil {
		t.Fatalf("RegisterValidation failed: %v", err)
	}

	lower := New(v).Tag("lower")
	if err := lower.Validate("abc"); err != nil {
		t.Errorf("expected 'abc' accepted, got %v", err)
	}
	if err := lower.Validate("ABC"); err == nil {
		t.Error("expected 'ABC' rejected")
	}
}
