package corelib

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"myceliumweb.org/lichen/globals"
	"myceliumweb.org/lichen/internal/testutil"
	"myceliumweb.org/lichen/natlit"
	"myceliumweb.org/lichen/notation"
	"myceliumweb.org/lichen/term"
)

func TestSetupPermanent(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)
	env := globals.NewEnv()
	tab := notation.NewTable()
	c, err := Setup(ctx, env, tab, nil)
	require.NoError(t, err)
	require.NotNil(t, c)

	require.Len(t, env.All(), len(Decls(PermanentRoot)))
	_, exists := tab.Interp(natlit.Scope)
	require.True(t, exists)
	require.Empty(t, env.Aliases())

	x, err := c.Encode(term.Loc{}, big.NewInt(5))
	require.NoError(t, err)
	n, ok := c.Decode(x)
	require.True(t, ok)
	require.Equal(t, int64(5), n.Int64())
}

// Registering under a session root leaves the permanent paths
// resolvable, and they resolve to the session's entities.
func TestSetupSessionRoot(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)
	env := globals.NewEnv()
	tab := notation.NewTable()
	sessionRoot := globals.Path{"dev", "session0"}
	c, err := Setup(ctx, env, tab, sessionRoot)
	require.NoError(t, err)

	permanent, err := env.Resolve(NatPaths(PermanentRoot).Module, "S")
	require.NoError(t, err)
	session, err := env.Resolve(NatPaths(sessionRoot).Module, "S")
	require.NoError(t, err)
	require.Equal(t, session, permanent)

	// the codec built against permanent paths decodes session terms
	one := term.App{
		Fn:   term.Ref{Global: session},
		Args: []term.Term{zeroRef(t, env, sessionRoot)},
	}
	n, ok := c.Decode(one)
	require.True(t, ok)
	require.Equal(t, int64(1), n.Int64())
}

func zeroRef(t testing.TB, env *globals.Env, root globals.Path) term.Term {
	r, err := env.Resolve(NatPaths(root).Module, "O")
	require.NoError(t, err)
	return term.Ref{Global: r}
}

// Setup twice in one env fails on the already-registered decls.
func TestSetupTwice(t *testing.T) {
	t.Parallel()
	ctx := testutil.Context(t)
	env := globals.NewEnv()
	tab := notation.NewTable()
	_, err := Setup(ctx, env, tab, nil)
	require.NoError(t, err)
	_, err = Setup(ctx, env, tab, nil)
	require.ErrorAs(t, err, &globals.ErrExists{})
}

func TestNatPaths(t *testing.T) {
	t.Parallel()
	ps := NatPaths(PermanentRoot)
	require.Equal(t, globals.Path{"lichen", "init", "nat"}, ps.Module)
	// building the module path does not mutate the root
	require.Equal(t, globals.Path{"lichen", "init"}, PermanentRoot)
}
