package globals

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when no registered entity matches a path
// and name.
type ErrNotFound struct {
	Path Path
	Name string
}

func (e ErrNotFound) Error() string {
	return fmt.Sprintf("no entity found for %v.%s", e.Path, e.Name)
}

func IsErrNotFound(err error) bool {
	return errors.As(err, &ErrNotFound{})
}

// ErrExists is returned when registering over an existing entity.
type ErrExists struct {
	Path Path
	Name string
}

func (e ErrExists) Error() string {
	return fmt.Sprintf("entity already registered at %v.%s", e.Path, e.Name)
}

// ErrBadDecl is returned for declarations that cannot be registered.
type ErrBadDecl struct {
	Decl   Decl
	Reason string
}

func (e ErrBadDecl) Error() string {
	return fmt.Sprintf("bad declaration %v: %s", e.Decl, e.Reason)
}
