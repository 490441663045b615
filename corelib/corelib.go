// Package corelib declares the base inductive types and installs
// their numeral notations.
//
// The declarations normally live under the permanent root
// lichen/init. While that module is still being authored they can be
// registered under a session root instead; an alias then makes the
// permanent paths resolve to the session's declarations, so nothing
// that names the permanent paths has to change.
package corelib

import (
	"context"
	"slices"

	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"myceliumweb.org/lichen/globals"
	"myceliumweb.org/lichen/natlit"
	"myceliumweb.org/lichen/notation"
)

// PermanentRoot is where the core declarations are installed.
var PermanentRoot = globals.Path{"lichen", "init"}

// NatPaths names the unary naturals under root.
func NatPaths(root globals.Path) natlit.Paths {
	return natlit.Paths{
		Module: append(slices.Clone(root), "nat"),
		Type:   "Nat",
		Zero:   "O",
		Succ:   "S",
	}
}

// Decls is everything corelib registers, rooted at root.
func Decls(root globals.Path) []globals.Decl {
	nat := append(slices.Clone(root), "nat")
	boolp := append(slices.Clone(root), "bool")
	return []globals.Decl{
		{Path: nat, Name: "Nat", Kind: globals.KindInductive},
		{Path: nat, Name: "O", Kind: globals.KindConstructor, Arity: 0, Parent: "Nat"},
		{Path: nat, Name: "S", Kind: globals.KindConstructor, Arity: 1, Parent: "Nat"},

		{Path: boolp, Name: "Bool", Kind: globals.KindInductive},
		{Path: boolp, Name: "true", Kind: globals.KindConstructor, Arity: 0, Parent: "Bool"},
		{Path: boolp, Name: "false", Kind: globals.KindConstructor, Arity: 0, Parent: "Bool"},
	}
}

// Setup registers the core declarations under root and installs the
// numeral notation in tab.
//
// The notation always resolves its constructors by their permanent
// paths. When root is not the permanent root, Setup adds the alias
// that points those paths at root before installing, which is how the
// defining module can use its own notation before it is installed
// permanently.
func Setup(ctx context.Context, env *globals.Env, tab *notation.Table, root globals.Path) (*natlit.Codec, error) {
	if root == nil {
		root = PermanentRoot
	}
	for _, d := range Decls(root) {
		if _, err := env.Register(d); err != nil {
			return nil, err
		}
	}
	if !root.Equals(PermanentRoot) {
		env.AddAlias(PermanentRoot, root)
	}
	c, err := natlit.Install(env, tab, NatPaths(PermanentRoot))
	if err != nil {
		return nil, err
	}
	logctx.Info(ctx, "installed numeral notation",
		zap.String("scope", natlit.Scope),
		zap.String("root", root.String()),
	)
	return c, nil
}
