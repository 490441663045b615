package notation

import "fmt"

// ErrScopeTaken is returned when registering a scope that already has
// an interpreter.
type ErrScopeTaken struct {
	Scope  string
	Holder string
}

func (e ErrScopeTaken) Error() string {
	return fmt.Sprintf("numeral scope %q is already interpreted by %s", e.Scope, e.Holder)
}

// ErrBadRegistration is returned for registrations that cannot be
// installed.
type ErrBadRegistration struct {
	Registration Registration
	Reason       string
}

func (e ErrBadRegistration) Error() string {
	return fmt.Sprintf("bad registration for scope %q: %s", e.Registration.Scope, e.Reason)
}
