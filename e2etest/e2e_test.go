package main

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"myceliumweb.org/lichen/corelib"
	"myceliumweb.org/lichen/envdb"
	"myceliumweb.org/lichen/globals"
	"myceliumweb.org/lichen/internal/testutil"
	"myceliumweb.org/lichen/literal"
	"myceliumweb.org/lichen/natlit"
	"myceliumweb.org/lichen/notation"
	"myceliumweb.org/lichen/printer"
	"myceliumweb.org/lichen/term"
)

// devRoot is where this session mounts its declarations during
// development. The permanent path stays valid through the alias.
const devRoot = "dev/session0"

func TestNumeralFlow(t *testing.T) {
	db := envdb.NewTestDB(t)
	s1 := newSide(t, db)
	s2 := newSide(t, db)

	// both sides agree on the handle, whether resolved through the
	// dev root or the permanent path.
	r1, err := s1.env.Resolve(globals.ParsePath(devRoot+"/nat"), "S")
	require.NoError(t, err)
	r2, err := s2.env.Resolve(globals.ParsePath("lichen/init/nat"), "S")
	require.NoError(t, err)
	require.Equal(t, r1, r2)

	x := s2.parse(t, "3%nat")
	require.Equal(t, "(S (S (S O)))", s2.structural(x))
	require.Equal(t, "3", s2.printString(x))

	codec, err := natlit.New(s2.env, corelib.NatPaths(corelib.PermanentRoot))
	require.NoError(t, err)
	n, ok := codec.Decode(x)
	require.True(t, ok)
	require.Equal(t, big.NewInt(3), n)
}

func TestSuccessorOfZero(t *testing.T) {
	s := newSide(t, envdb.NewTestDB(t))
	natPath := globals.ParsePath(devRoot + "/nat")
	zero, err := s.env.Resolve(natPath, "O")
	require.NoError(t, err)
	succ, err := s.env.Resolve(natPath, "S")
	require.NoError(t, err)

	x := term.App{
		Fn:   term.Ref{Global: succ},
		Args: []term.Term{term.Ref{Global: zero}},
	}
	require.Equal(t, "1", s.printString(x))
}

type side struct {
	env *globals.Env
	tab *notation.Table
}

// newSide stands in for one process attached to db. The first side
// bootstraps the core declarations and saves them; later sides load
// what the first one wrote.
func newSide(t *testing.T, db *envdb.DB) *side {
	ctx := testutil.Context(t)
	tab := notation.NewTable()
	n, err := db.CountDecls(ctx)
	require.NoError(t, err)
	var env *globals.Env
	if n == 0 {
		env = globals.NewEnv()
		_, err := corelib.Setup(ctx, env, tab, globals.ParsePath(devRoot))
		require.NoError(t, err)
		require.NoError(t, db.SaveEnv(ctx, env))
	} else {
		env, err = db.LoadEnv(ctx)
		require.NoError(t, err)
		_, err = natlit.Install(env, tab, corelib.NatPaths(corelib.PermanentRoot))
		require.NoError(t, err)
	}
	return &side{env: env, tab: tab}
}

func (s *side) parse(t *testing.T, in string) term.Term {
	x, err := literal.Parse(s.tab, in, natlit.Scope)
	require.NoError(t, err)
	return x
}

func (s *side) printString(x term.Term) string {
	return printer.New(s.tab, printer.EnvNames(s.env)).PrintString(x)
}

func (s *side) structural(x term.Term) string {
	pr := printer.Printer{Names: printer.EnvNames(s.env)}
	return pr.PrintString(x)
}
