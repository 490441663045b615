package licmd

import (
	"context"

	"go.brendoncarroll.net/star"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"myceliumweb.org/lichen/corelib"
	"myceliumweb.org/lichen/envdb"
	"myceliumweb.org/lichen/globals"
	"myceliumweb.org/lichen/natlit"
	"myceliumweb.org/lichen/notation"
)

var initCmd = star.Command{
	Metadata: star.Metadata{
		Short: "initialize a session database with the core declarations",
		Tags:  []string{"env"},
	},
	Flags: []star.IParam{DBParam, rootParam},
	F: func(c star.Context) error {
		db := DBParam.Load(c)
		env := globals.NewEnv()
		tab := notation.NewTable()
		if _, err := corelib.Setup(c, env, tab, rootParam.Load(c)); err != nil {
			return err
		}
		if err := db.SaveEnv(c, env); err != nil {
			return err
		}
		c.Printf("initialized %d declarations under %v\n", env.Len(), rootParam.Load(c))
		return nil
	},
}

var decls = star.Command{
	Metadata: star.Metadata{
		Short: "list the declarations in a session",
		Tags:  []string{"env"},
	},
	Flags: []star.IParam{DBParam},
	F: func(c star.Context) error {
		env, _, err := loadSession(c, DBParam.Load(c))
		if err != nil {
			return err
		}
		c.Printf("PATH NAME KIND ARITY FID\n")
		for _, d := range env.All() {
			c.Printf("%v %s %v %d %v\n", d.Path, d.Name, d.Kind, d.Arity, d.Fingerprint())
		}
		return nil
	},
}

var resolve = star.Command{
	Metadata: star.Metadata{
		Short: "resolve a path and name to a global handle",
		Tags:  []string{"env"},
	},
	Flags: []star.IParam{DBParam},
	Pos:   []star.IParam{pathParam, nameParam},
	F: func(c star.Context) error {
		env, _, err := loadSession(c, DBParam.Load(c))
		if err != nil {
			return err
		}
		ref, err := env.Resolve(pathParam.Load(c), nameParam.Load(c))
		if err != nil {
			return err
		}
		d, _ := env.Lookup(ref)
		c.Printf("%v %v.%s\n", ref, d.Path, d.Name)
		return nil
	},
}

var rootParam = star.Param[globals.Path]{
	Name:    "root",
	Default: star.Ptr(corelib.PermanentRoot.String()),
	Parse: func(x string) (globals.Path, error) {
		return globals.ParsePath(x), nil
	},
}

var pathParam = star.Param[globals.Path]{
	Name: "path",
	Parse: func(x string) (globals.Path, error) {
		return globals.ParsePath(x), nil
	},
}

var nameParam = star.Param[string]{Name: "name", Parse: star.ParseString}

// loadSession restores an environment from db and installs the numeral
// notation against it. An empty database is bootstrapped with the core
// declarations instead.
func loadSession(ctx context.Context, db *envdb.DB) (*globals.Env, *notation.Table, error) {
	tab := notation.NewTable()
	n, err := db.CountDecls(ctx)
	if err != nil {
		return nil, nil, err
	}
	if n == 0 {
		env := globals.NewEnv()
		if _, err := corelib.Setup(ctx, env, tab, nil); err != nil {
			return nil, nil, err
		}
		return env, tab, nil
	}
	env, err := db.LoadEnv(ctx)
	if err != nil {
		return nil, nil, err
	}
	if _, err := natlit.Install(env, tab, corelib.NatPaths(corelib.PermanentRoot)); err != nil {
		return nil, nil, err
	}
	logctx.Info(ctx, "restored environment", zap.Int("decls", env.Len()))
	return env, tab, nil
}
