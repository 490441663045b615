// Package notation implements numeral notation registration: the
// binding between numeral scopes and the interpreters that turn
// literals into terms and terms back into literals.
package notation

import (
	"math/big"
	"slices"
	"sync"

	"go.brendoncarroll.net/exp/slices2"
	"golang.org/x/exp/maps"

	"myceliumweb.org/lichen/globals"
	"myceliumweb.org/lichen/term"
)

// InterpFn builds the term for a literal's value.
type InterpFn = func(loc term.Loc, n *big.Int) (term.Term, error)

// UninterpFn recovers a literal's value from a term.
// ok reports whether x is a numeral of the scope.
type UninterpFn = func(x term.Term) (*big.Int, bool)

// Uninterp is the print-time half of a registration.
type Uninterp struct {
	// Refs are reference terms for the heads the printer should try
	// this uninterp on.
	Refs []term.Term
	Fn   UninterpFn
	// AlsoOnTerms matches any term whose head is one of Refs, not
	// just the exact shapes listed in Refs.
	AlsoOnTerms bool
}

// Registration binds a numeral scope to an interpreter.
type Registration struct {
	// Scope is the numeral scope key. e.g. "nat"
	Scope string
	// Path and Name say where the interpreter came from.
	// They only appear in diagnostics.
	Path globals.Path
	Name string

	Interp   InterpFn
	Uninterp Uninterp
}

// Table holds the numeral interpreters for one session.
type Table struct {
	mu      sync.RWMutex
	interps map[string]Registration
	byHead  map[globals.Ref][]string
}

func NewTable() *Table {
	return &Table{
		interps: make(map[string]Registration),
		byHead:  make(map[globals.Ref][]string),
	}
}

// Register installs r.
// A scope holds at most one interpreter; a second registration for
// the same scope is refused with ErrScopeTaken.
func (t *Table) Register(r Registration) error {
	if r.Scope == "" {
		return ErrBadRegistration{Registration: r, Reason: "empty scope"}
	}
	if r.Interp == nil {
		return ErrBadRegistration{Registration: r, Reason: "nil interp"}
	}
	if r.Uninterp.Fn == nil {
		return ErrBadRegistration{Registration: r, Reason: "nil uninterp"}
	}
	var heads []globals.Ref
	for _, x := range r.Uninterp.Refs {
		head, ok := term.HeadRef(x)
		if !ok {
			return ErrBadRegistration{Registration: r, Reason: "uninterp ref has no global head"}
		}
		heads = append(heads, head)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if prev, exists := t.interps[r.Scope]; exists {
		return ErrScopeTaken{Scope: r.Scope, Holder: prev.Path.String() + "." + prev.Name}
	}
	t.interps[r.Scope] = r
	for _, h := range heads {
		if !slices.Contains(t.byHead[h], r.Scope) {
			t.byHead[h] = append(t.byHead[h], r.Scope)
		}
	}
	return nil
}

// Interp returns the interpreter registered for scope.
func (t *Table) Interp(scope string) (Registration, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, exists := t.interps[scope]
	return r, exists
}

// UninterpsFor returns the registrations whose print refs have head.
func (t *Table) UninterpsFor(head globals.Ref) []Registration {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices2.Map(t.byHead[head], func(scope string) Registration {
		return t.interps[scope]
	})
}

// TryUninterp attempts to read x back as a numeral.
// It consults the registrations for x's head reference, honoring each
// one's AlsoOnTerms flag, and returns the value and the scope of the
// first that accepts.
func (t *Table) TryUninterp(x term.Term) (*big.Int, string, bool) {
	head, ok := term.HeadRef(x)
	if !ok {
		return nil, "", false
	}
	regs := t.UninterpsFor(head)
	for _, r := range regs {
		if !r.Uninterp.AlsoOnTerms && !containsTerm(r.Uninterp.Refs, x) {
			continue
		}
		if n, ok := r.Uninterp.Fn(x); ok {
			return n, r.Scope, true
		}
	}
	return nil, "", false
}

// Scopes lists the registered scopes in order.
func (t *Table) Scopes() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ret := maps.Keys(t.interps)
	slices.Sort(ret)
	return ret
}

func containsTerm(xs []term.Term, x term.Term) bool {
	for _, y := range xs {
		if term.Equal(x, y) {
			return true
		}
	}
	return false
}
