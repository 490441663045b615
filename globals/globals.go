// Package globals is the registry of global entities that notation
// code refers to by path and name: inductive types and their
// constructors.
//
// Lookups go through opaque handles (Ref) so that callers can hold on
// to an entity without caring where it is registered.
package globals

import (
	"encoding/binary"
	"fmt"
	"strings"

	"myceliumweb.org/lichen"
	"myceliumweb.org/lichen/internal/ident"
)

// Path locates a module in the hierarchy.
// e.g. {"lichen", "init", "nat"}
type Path []string

func (p Path) String() string {
	return strings.Join(p, "/")
}

func (p Path) Equals(q Path) bool {
	if len(p) != len(q) {
		return false
	}
	for i := range p {
		if p[i] != q[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether p begins with the segments of prefix.
func (p Path) HasPrefix(prefix Path) bool {
	if len(p) < len(prefix) {
		return false
	}
	for i := range prefix {
		if p[i] != prefix[i] {
			return false
		}
	}
	return true
}

// ParsePath splits a slash separated path.
func ParsePath(x string) Path {
	if x == "" {
		return nil
	}
	return Path(strings.Split(x, "/"))
}

// Kind says which sort of entity a Decl introduces.
type Kind uint8

const (
	// KindInductive is an inductive type.
	KindInductive Kind = 1 + iota
	// KindConstructor is a constructor of an inductive type.
	KindConstructor
)

func (k Kind) String() string {
	switch k {
	case KindInductive:
		return "inductive"
	case KindConstructor:
		return "constructor"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Decl declares one global entity.
type Decl struct {
	Path Path
	Name string
	Kind Kind

	// Arity is the number of arguments a constructor takes.
	Arity int
	// Parent is the name of the inductive a constructor belongs to.
	// It is empty for inductives.
	Parent string
}

func (d Decl) String() string {
	return d.Path.String() + "." + d.Name
}

// Fingerprint is the identity of the declared entity.
// It covers the path, name, and kind; not the arity or parent.
func (d Decl) Fingerprint() ident.ID {
	var out []byte
	out = binary.AppendUvarint(out, uint64(len(d.Path)))
	for _, seg := range d.Path {
		out = binary.AppendUvarint(out, uint64(len(seg)))
		out = append(out, seg...)
	}
	out = binary.AppendUvarint(out, uint64(len(d.Name)))
	out = append(out, d.Name...)
	out = append(out, byte(d.Kind))
	return lichen.Hash(nil, out)
}

// Ref is an opaque handle to a registered entity.
// Refs are comparable; two Refs are equal iff they refer to the same
// entity. The zero Ref refers to nothing.
type Ref struct {
	fid ident.ID
}

func (r Ref) IsZero() bool {
	return r.fid.IsZero()
}

// FID returns the fingerprint backing the handle.
func (r Ref) FID() ident.ID {
	return r.fid
}

func (r Ref) String() string {
	if r.IsZero() {
		return "@nil"
	}
	return "@" + r.fid.String()[:8]
}
