package notation

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"myceliumweb.org/lichen/globals"
	"myceliumweb.org/lichen/term"
)

func testRefs(t *testing.T) (zero, succ globals.Ref) {
	e := globals.NewEnv()
	p := globals.Path{"lichen", "init", "nat"}
	var err error
	zero, err = e.Register(globals.Decl{Path: p, Name: "O", Kind: globals.KindConstructor, Parent: "Nat"})
	require.NoError(t, err)
	succ, err = e.Register(globals.Decl{Path: p, Name: "S", Kind: globals.KindConstructor, Arity: 1, Parent: "Nat"})
	require.NoError(t, err)
	return zero, succ
}

// chainDecode counts successor applications down to the zero
// reference, the way a real uninterp does.
func chainDecode(zero, succ globals.Ref) UninterpFn {
	return func(x term.Term) (*big.Int, bool) {
		n := new(big.Int)
		for {
			switch t := x.(type) {
			case term.Ref:
				if t.Global == zero {
					return n, true
				}
				return nil, false
			case term.App:
				head, ok := term.AsRef(t.Fn)
				if !ok || head != succ || len(t.Args) != 1 {
					return nil, false
				}
				n.Add(n, big.NewInt(1))
				x = t.Args[0]
			default:
				return nil, false
			}
		}
	}
}

func testReg(scope string, zero, succ globals.Ref, alsoOnTerms bool) Registration {
	return Registration{
		Scope: scope,
		Path:  globals.Path{"lichen", "init", "nat"},
		Name:  "Nat",
		Interp: func(loc term.Loc, n *big.Int) (term.Term, error) {
			return term.Ref{Global: zero, Loc: loc}, nil
		},
		Uninterp: Uninterp{
			Refs:        []term.Term{term.Ref{Global: zero}, term.Ref{Global: succ}},
			Fn:          chainDecode(zero, succ),
			AlsoOnTerms: alsoOnTerms,
		},
	}
}

func TestRegisterInterp(t *testing.T) {
	t.Parallel()
	zero, succ := testRefs(t)
	tab := NewTable()
	require.NoError(t, tab.Register(testReg("nat", zero, succ, true)))

	r, exists := tab.Interp("nat")
	require.True(t, exists)
	require.Equal(t, "nat", r.Scope)
	_, exists = tab.Interp("dec")
	require.False(t, exists)
}

func TestScopeTaken(t *testing.T) {
	t.Parallel()
	zero, succ := testRefs(t)
	tab := NewTable()
	first := testReg("nat", zero, succ, true)
	require.NoError(t, tab.Register(first))

	err := tab.Register(testReg("nat", zero, succ, false))
	require.Error(t, err)
	require.ErrorAs(t, err, &ErrScopeTaken{})
	require.ErrorContains(t, err, "lichen/init/nat.Nat")

	// the first registration is still the one in effect
	r, exists := tab.Interp("nat")
	require.True(t, exists)
	require.True(t, r.Uninterp.AlsoOnTerms)
}

func TestBadRegistration(t *testing.T) {
	t.Parallel()
	zero, succ := testRefs(t)
	good := testReg("nat", zero, succ, true)

	noScope := good
	noScope.Scope = ""
	require.ErrorAs(t, NewTable().Register(noScope), &ErrBadRegistration{})

	noInterp := good
	noInterp.Interp = nil
	require.ErrorAs(t, NewTable().Register(noInterp), &ErrBadRegistration{})

	noUninterp := good
	noUninterp.Uninterp.Fn = nil
	require.ErrorAs(t, NewTable().Register(noUninterp), &ErrBadRegistration{})

	headless := good
	headless.Uninterp.Refs = []term.Term{term.Lam{Binder: "x", Body: term.Local{Index: 0}}}
	require.ErrorAs(t, NewTable().Register(headless), &ErrBadRegistration{})
}

func TestUninterpsFor(t *testing.T) {
	t.Parallel()
	zero, succ := testRefs(t)
	tab := NewTable()
	require.NoError(t, tab.Register(testReg("nat", zero, succ, true)))

	for _, head := range []globals.Ref{zero, succ} {
		regs := tab.UninterpsFor(head)
		require.Len(t, regs, 1)
		require.Equal(t, "nat", regs[0].Scope)
	}
	require.Empty(t, tab.UninterpsFor(globals.Ref{}))
}

func TestTryUninterp(t *testing.T) {
	t.Parallel()
	zero, succ := testRefs(t)
	two := term.App{
		Fn: term.Ref{Global: succ},
		Args: []term.Term{term.App{
			Fn:   term.Ref{Global: succ},
			Args: []term.Term{term.Ref{Global: zero}},
		}},
	}

	tab := NewTable()
	require.NoError(t, tab.Register(testReg("nat", zero, succ, true)))
	n, scope, ok := tab.TryUninterp(two)
	require.True(t, ok)
	require.Equal(t, "nat", scope)
	require.Equal(t, int64(2), n.Int64())

	n, scope, ok = tab.TryUninterp(term.Ref{Global: zero})
	require.True(t, ok)
	require.Equal(t, "nat", scope)
	require.Equal(t, int64(0), n.Int64())

	_, _, ok = tab.TryUninterp(term.Local{Index: 0})
	require.False(t, ok)
}

// With AlsoOnTerms off, only the exact print ref shapes match.
func TestTryUninterpExactOnly(t *testing.T) {
	t.Parallel()
	zero, succ := testRefs(t)
	tab := NewTable()
	require.NoError(t, tab.Register(testReg("nat", zero, succ, false)))

	n, _, ok := tab.TryUninterp(term.Ref{Global: zero})
	require.True(t, ok)
	require.Equal(t, int64(0), n.Int64())

	one := term.App{Fn: term.Ref{Global: succ}, Args: []term.Term{term.Ref{Global: zero}}}
	_, _, ok = tab.TryUninterp(one)
	require.False(t, ok)
}

func TestScopes(t *testing.T) {
	t.Parallel()
	zero, succ := testRefs(t)
	tab := NewTable()
	require.NoError(t, tab.Register(testReg("nat", zero, succ, true)))
	require.NoError(t, tab.Register(testReg("N", zero, succ, true)))
	require.Equal(t, []string{"N", "nat"}, tab.Scopes())
}
