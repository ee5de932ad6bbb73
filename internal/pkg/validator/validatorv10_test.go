package validator

import (
	"errors"
	"testing"
)

type registerForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,password"`
	FullName string `validate:"required,min=3,max=100,alphaspace"`
}

func newValidator(t *testing.T) *V10Validator {
	t.Helper()

	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}
	return v
}

func TestValidateOK(t *testing.T) {
	v := newValidator(t)

	err := v.Validate(registerForm{
		Email:    "alice@example.com",
		Password: "Secret123!",
		FullName: "Alice Liddell",
	})
	if err != nil {
		t.Fatalf("expected valid struct, got %v", err)
	}
}

func TestValidateFieldKeys(t *testing.T) {
	v := newValidator(t)

	err := v.Validate(registerForm{Email: "not-an-email", Password: "short", FullName: "Alice 123"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected V10ValidationError, got %T", err)
	}

	for _, field := range []string{"email", "password", "full_name"} {
		if _, ok := verr[field]; !ok {
			t.Errorf("missing error for field %q in %v", field, verr)
		}
	}
}

func TestPasswordRule(t *testing.T) {
	v := newValidator(t)

	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{"MinLength", "12345678", true},
		{"TooShort", "1234567", false},
		{"TooLong", string(make([]byte, 73)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(struct {
				Password string `validate:"password"`
			}{tt.password})

			if tt.valid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.valid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
