package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func asError(t *testing.T, err error) *Error {
	t.Helper()

	var ge *Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *Error, got %T", err)
	}
	return ge
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Server", NewServer(errors.New("boom")), http.StatusInternalServerError},
		{"InvalidInput", NewInvalidInput(errors.New("bad")), http.StatusUnprocessableEntity},
		{"InvalidFormat", NewInvalidFormat("bad json"), http.StatusBadRequest},
		{"NotFound", NewBusiness("missing", CodeNotFound), http.StatusNotFound},
		{"Conflict", NewBusiness("dup", CodeConflict), http.StatusConflict},
		{"Unauthorized", NewBusiness("denied", CodeUnauthorized), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := asError(t, tt.err).StatusCode(); got != tt.want {
				t.Fatalf("StatusCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestServerKeepsCauseButMasksMsg(t *testing.T) {
	cause := errors.New("pq: connection refused")
	ge := asError(t, NewServer(cause))

	if ge.Msg() != "Internal server error" {
		t.Fatalf("Msg() = %q, internal cause must stay out of the client message", ge.Msg())
	}
	if !errors.Is(ge, cause) {
		t.Fatal("server error should keep its cause for logging")
	}
}

func TestNewInvalidInputFields(t *testing.T) {
	ge := asError(t, NewInvalidInput(nil, "email", "must be a valid email"))

	if got := ge.Fields()["email"]; got != "must be a valid email" {
		t.Fatalf("Fields()[email] = %q", got)
	}
	if ge.Code() != CodeInvalidInput {
		t.Fatalf("Code() = %v, want CodeInvalidInput", ge.Code())
	}
}

func TestBusinessMessage(t *testing.T) {
	ge := asError(t, NewBusiness("Email already registered", CodeConflict))

	if ge.Error() != "Email already registered" {
		t.Fatalf("Error() = %q", ge.Error())
	}
	if ge.Type() != TypeBusiness {
		t.Fatalf("Type() = %v, want TypeBusiness", ge.Type())
	}
}
