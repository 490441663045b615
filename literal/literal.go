// Package literal scans numeral literals and elaborates them into
// terms through the notation table.
//
// The literal syntax is a decimal digit sequence with an optional
// sign and an optional %scope suffix. e.g. 42, 42%nat, -3%nat
package literal

import (
	"fmt"
	"math/big"
	"strings"

	"myceliumweb.org/lichen/notation"
	"myceliumweb.org/lichen/term"
)

// Lit is a scanned numeral literal, before elaboration.
type Lit struct {
	// N is the literal's value. The sign is kept; rejecting negative
	// values is the interpreter's call, not the scanner's.
	N *big.Int
	// Scope is the numeral scope named by the %suffix, or empty.
	Scope string
	// Span covers the whole literal, suffix included.
	Span term.Loc
}

func (l Lit) String() string {
	if l.Scope == "" {
		return l.N.String()
	}
	return l.N.String() + "%" + l.Scope
}

// Scan reads a numeral literal out of x.
// The whole input must be consumed.
func Scan(x string) (Lit, error) {
	digits, scope, suffixed := strings.Cut(x, "%")
	if suffixed {
		if scope == "" {
			return Lit{}, ErrBadLiteral{Input: x, Reason: "empty scope after %"}
		}
		for _, r := range scope {
			if !isScopeRune(r) {
				return Lit{}, ErrBadLiteral{Input: x, Reason: fmt.Sprintf("bad scope rune %q", r)}
			}
		}
	}
	if digits == "" {
		return Lit{}, ErrBadLiteral{Input: x, Reason: "no digits"}
	}
	n, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Lit{}, ErrBadLiteral{Input: x, Reason: "not a decimal number"}
	}
	return Lit{
		N:     n,
		Scope: scope,
		Span:  term.Loc{Begin: 0, End: term.Pos(len(x))},
	}, nil
}

// Elaborate turns lit into a term using the interpreter registered
// for its scope.
func Elaborate(tab *notation.Table, lit Lit) (term.Term, error) {
	reg, exists := tab.Interp(lit.Scope)
	if !exists {
		return nil, ErrNoInterp{Scope: lit.Scope}
	}
	return reg.Interp(lit.Span, lit.N)
}

// Parse scans x and elaborates it in one step.
// A literal without a scope marker falls back to defaultScope.
func Parse(tab *notation.Table, x string, defaultScope string) (term.Term, error) {
	lit, err := Scan(x)
	if err != nil {
		return nil, err
	}
	if lit.Scope == "" {
		lit.Scope = defaultScope
	}
	return Elaborate(tab, lit)
}

func isScopeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		return true
	}
	return false
}

// ErrBadLiteral is returned by Scan for inputs that are not numeral
// literals.
type ErrBadLiteral struct {
	Input  string
	Reason string
}

func (e ErrBadLiteral) Error() string {
	return fmt.Sprintf("bad numeral literal %q: %s", e.Input, e.Reason)
}

// ErrNoInterp is returned when no interpreter is registered for a
// literal's scope.
type ErrNoInterp struct {
	Scope string
}

func (e ErrNoInterp) Error() string {
	return fmt.Sprintf("no numeral interpreter for scope %q", e.Scope)
}
