package access

import (
	"github.com/caisseplanck/register/errs"
	"github.com/caisseplanck/register/staff"
)

// NoOperator is the display name used while nobody is logged in.
const NoOperator = "None"

// Session tracks the single logged-in identity of a register.
type Session struct {
	current *staff.Identity
}

// Login resolves token against dir by barcode or permanent code and makes
// the match the current identity. An unknown token is a credential failure
// and leaves the session unchanged.
func (s *Session) Login(dir *staff.Directory, token string) (staff.Identity, error) {
	id, err := dir.Lookup(token)
	if err != nil {
		return staff.Identity{}, &errs.CredentialError{
			Op:       string(OpLogin),
			LoggedIn: s.current != nil,
			Reason:   "no employee matches the given token",
		}
	}
	s.current = &id
	return id, nil
}

// Logout clears the session and returns who was logged in.
func (s *Session) Logout() (staff.Identity, bool) {
	if s.current == nil {
		return staff.Identity{}, false
	}
	prev := *s.current
	s.current = nil
	return prev, true
}

// Current returns the logged-in identity, or nil.
func (s *Session) Current() *staff.Identity {
	if s.current == nil {
		return nil
	}
	id := *s.current
	return &id
}

// Name returns the operator's name, or NoOperator.
func (s *Session) Name() string {
	if s.current == nil {
		return NoOperator
	}
	return s.current.Name
}

// Authorize verifies the current identity against op.
func (s *Session) Authorize(op Op) error {
	return Authorize(s.current, op)
}
