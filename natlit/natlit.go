// Package natlit implements the unary numeral codec: decimal
// literals become chains of successor applications around the zero
// constructor, and such chains print back as decimals.
package natlit

import (
	"math/big"

	"myceliumweb.org/lichen/globals"
	"myceliumweb.org/lichen/notation"
	"myceliumweb.org/lichen/term"
)

// Scope is the numeral scope the codec registers under.
const Scope = "nat"

// Paths names the globals the codec needs.
type Paths struct {
	// Module is the path under which the inductive and its
	// constructors are resolved.
	Module globals.Path
	// Type, Zero and Succ are the names within Module.
	Type string
	Zero string
	Succ string
}

// Codec encodes and decodes unary numerals.
// The zero value is not usable; codecs come from New.
type Codec struct {
	typ  globals.Ref
	zero globals.Ref
	succ globals.Ref
}

// New resolves the codec's globals in env.
// It fails with the resolver's error if any of them is missing, and
// then no Codec exists, so a partially resolved codec cannot be
// observed.
func New(env *globals.Env, ps Paths) (*Codec, error) {
	typ, err := env.Resolve(ps.Module, ps.Type)
	if err != nil {
		return nil, err
	}
	zero, err := env.Resolve(ps.Module, ps.Zero)
	if err != nil {
		return nil, err
	}
	succ, err := env.Resolve(ps.Module, ps.Succ)
	if err != nil {
		return nil, err
	}
	return &Codec{typ: typ, zero: zero, succ: succ}, nil
}

// Encode builds the unary numeral for n, locating every node at loc.
// The result is the zero reference wrapped in n successor
// applications, so its depth is n.
// n < 0 has no unary representation and fails with ErrNegative.
func (c *Codec) Encode(loc term.Loc, n *big.Int) (term.Term, error) {
	if n.Sign() < 0 {
		return nil, ErrNegative{Loc: loc, N: n}
	}
	ret := term.Term(term.Ref{Global: c.zero, Loc: loc})
	one := big.NewInt(1)
	for i := new(big.Int).Set(n); i.Sign() > 0; i.Sub(i, one) {
		ret = term.App{
			Fn:   term.Ref{Global: c.succ, Loc: loc},
			Args: []term.Term{ret},
			Loc:  loc,
		}
	}
	return ret, nil
}

// Decode reads a unary numeral out of x.
// ok is false when x is not a numeral: a reference other than zero, a
// head other than successor, an application of successor to anything
// but one argument, or a non reference head. Decode is total; it does
// not fail in any other way.
func (c *Codec) Decode(x term.Term) (*big.Int, bool) {
	n := new(big.Int)
	one := big.NewInt(1)
	for {
		switch t := x.(type) {
		case term.Ref:
			if t.Global == c.zero {
				return n, true
			}
			return nil, false
		case term.App:
			head, ok := term.AsRef(t.Fn)
			if !ok || head != c.succ || len(t.Args) != 1 {
				return nil, false
			}
			n.Add(n, one)
			x = t.Args[0]
		default:
			return nil, false
		}
	}
}

// Type returns the handle of the inductive the codec targets.
func (c *Codec) Type() globals.Ref {
	return c.typ
}

// PrintRefs returns the reference terms print-time dispatch matches
// on.
func (c *Codec) PrintRefs() []term.Term {
	return []term.Term{
		term.Ref{Global: c.zero},
		term.Ref{Global: c.succ},
	}
}

// Install resolves the codec in env and registers it in table under
// Scope. Resolution failure leaves table untouched.
func Install(env *globals.Env, table *notation.Table, ps Paths) (*Codec, error) {
	c, err := New(env, ps)
	if err != nil {
		return nil, err
	}
	if err := table.Register(notation.Registration{
		Scope:  Scope,
		Path:   ps.Module,
		Name:   ps.Type,
		Interp: c.Encode,
		Uninterp: notation.Uninterp{
			Refs:        c.PrintRefs(),
			Fn:          c.Decode,
			AlsoOnTerms: true,
		},
	}); err != nil {
		return nil, err
	}
	return c, nil
}
