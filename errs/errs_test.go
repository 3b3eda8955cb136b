package errs

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifiers(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		credential bool
		notFound   bool
		validation bool
	}{
		{"credential", &CredentialError{Op: "checkout", Required: 1, Held: 0, LoggedIn: true}, true, false, false},
		{"no session", &CredentialError{Op: "scan"}, true, false, false},
		{"not found", NotFound("item", "999"), false, true, false},
		{"validation", Invalid("amount", "must be positive"), false, false, true},
		{"wrapped not found", fmt.Errorf("remove: %w", NotFound("order line", "001")), false, true, false},
		{"plain", errors.New("boom"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCredential(tt.err); got != tt.credential {
				t.Errorf("IsCredential: got %v, want %v", got, tt.credential)
			}
			if got := IsNotFound(tt.err); got != tt.notFound {
				t.Errorf("IsNotFound: got %v, want %v", got, tt.notFound)
			}
			if got := IsValidation(tt.err); got != tt.validation {
				t.Errorf("IsValidation: got %v, want %v", got, tt.validation)
			}
		})
	}
}

func TestCredentialErrorNoSession(t *testing.T) {
	loggedOut := &CredentialError{Op: "scan"}
	if !errors.Is(loggedOut, ErrNoSession) {
		t.Error("expected logged-out credential error to match ErrNoSession")
	}
	if !strings.Contains(loggedOut.Error(), "no employee logged in") {
		t.Errorf("unexpected message: %s", loggedOut.Error())
	}

	insufficient := &CredentialError{Op: "adjust", Required: 2, Held: 1, LoggedIn: true}
	if errors.Is(insufficient, ErrNoSession) {
		t.Error("insufficient privilege must not match ErrNoSession")
	}
	if !strings.Contains(insufficient.Error(), "requires 2") {
		t.Errorf("unexpected message: %s", insufficient.Error())
	}
}

func TestMultiError(t *testing.T) {
	var m MultiError
	if m.HasErrors() || m.First() != nil {
		t.Fatal("expected empty multi-error")
	}
	m.Add(nil)
	m.Add(Invalid("line 2", "wrong field count"))
	m.Add(Invalid("line 5", "non-numeric price"))

	if len(m.Errors) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(m.Errors))
	}
	if m.Error() != "register: 2 errors occurred" {
		t.Errorf("unexpected message: %s", m.Error())
	}
	if !errors.Is(m, ErrValidation) {
		t.Error("expected multi-error to unwrap to ErrValidation")
	}
}

func TestCredentialErrorReason(t *testing.T) {
	err := &CredentialError{Op: "login", LoggedIn: true, Reason: "no employee matches the given token"}
	if err.Error() != "register: login: no employee matches the given token" {
		t.Errorf("unexpected message: %s", err.Error())
	}
	if !IsCredential(err) {
		t.Error("expected credential error")
	}
}
