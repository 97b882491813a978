package validator

import (
	"errors"
	"testing"
)

type contactForm struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Message string `json:"message" validate:"required"`
}

func newValidator(t *testing.T) *V10Validator {
	t.Helper()

	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator() error = %v", err)
	}
	return v
}

func TestValidateOK(t *testing.T) {
	v := newValidator(t)

	if err := v.Validate(contactForm{Name: "Jane", Email: "jane@example.com", Message: "Hello"}); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
}

func TestValidateViolations(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name  string
		in    contactForm
		paths []string
	}{
		{name: "empty name", in: contactForm{Email: "jane@example.com", Message: "Hello"}, paths: []string{"name"}},
		{name: "bad email", in: contactForm{Name: "Jane", Email: "not-an-email", Message: "Hello"}, paths: []string{"email"}},
		{name: "empty message", in: contactForm{Name: "Jane", Email: "jane@example.com"}, paths: []string{"message"}},
		{name: "all empty", in: contactForm{}, paths: []string{"name", "email", "message"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.in)

			var verr V10ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected V10ValidationError, got %T (%v)", err, err)
			}
			if len(verr) != len(tt.paths) {
				t.Fatalf("got %d violations, want %d: %v", len(verr), len(tt.paths), verr)
			}
			for i, p := range tt.paths {
				if verr[i].Path != p {
					t.Fatalf("violation[%d].Path = %q, want %q", i, verr[i].Path, p)
				}
				if verr[i].Location != "body" || verr[i].Type != "field" || verr[i].Msg == "" {
					t.Fatalf("violation[%d] incomplete: %+v", i, verr[i])
				}
			}
		})
	}
}

func TestValidateKeepsRejectedValue(t *testing.T) {
	v := newValidator(t)

	var verr V10ValidationError
	if !errors.As(v.Validate(contactForm{Name: "Jane", Email: "not-an-email", Message: "Hi"}), &verr) {
		t.Fatal("expected V10ValidationError")
	}
	if !verr.Has("email") {
		t.Fatalf("expected an email violation, got %v", verr)
	}
	if verr[0].Value != "not-an-email" {
		t.Fatalf("Value = %v, want the submitted value", verr[0].Value)
	}
	if verr[0].Msg != "email must be a valid email address" {
		t.Fatalf("Msg = %q", verr[0].Msg)
	}
}
