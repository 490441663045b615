// package licmd implements the lichen command line tool.
package licmd

import (
	"context"
	"net"

	"go.brendoncarroll.net/star"

	"myceliumweb.org/lichen/envdb"
)

func Root() star.Command {
	return root
}

var root = star.NewDir(star.Metadata{
	Short: "Lichen Proof Environment",
}, map[star.Symbol]star.Command{
	// env commands
	"init":    initCmd,
	"decls":   decls,
	"resolve": resolve,

	// numeral commands
	"eval":      eval,
	"selfcheck": selfcheck,

	"serve":  serve,
	"status": status,
})

var status = star.Command{
	Flags: []star.IParam{DBParam},
	Pos:   []star.IParam{},
	F: func(ctx star.Context) error {
		ctx.Printf("STATUS\n")
		db := DBParam.Load(ctx)
		n, err := db.CountDecls(ctx)
		if err != nil {
			return err
		}
		ctx.Printf("decls: %d\n", n)
		return nil
	},
}

var DBParam = star.Param[*envdb.DB]{
	Name:    "db",
	Default: star.Ptr(":memory:"),
	Parse: func(x string) (*envdb.DB, error) {
		db, err := envdb.OpenDB(x)
		if err != nil {
			return nil, err
		}
		if err := envdb.SetupDB(context.Background(), db); err != nil {
			return nil, err
		}
		return envdb.New(db), nil
	},
}

var ListenerParam = star.Param[net.Listener]{
	Name:    "l",
	Default: star.Ptr("127.0.0.1:7650"),
	Parse: func(x string) (net.Listener, error) {
		return net.Listen("tcp", x)
	},
}
