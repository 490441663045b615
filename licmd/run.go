package licmd

import (
	"fmt"
	"math/big"
	"strconv"

	"go.brendoncarroll.net/star"
	"golang.org/x/sync/errgroup"

	"myceliumweb.org/lichen/corelib"
	"myceliumweb.org/lichen/lichui"
	"myceliumweb.org/lichen/natlit"
	"myceliumweb.org/lichen/printer"
	"myceliumweb.org/lichen/term"
)

var serve = star.Command{
	Metadata: star.Metadata{
		Short: "serve the HTTP UI for a session",
	},
	Flags: []star.IParam{DBParam, ListenerParam},
	F: func(c star.Context) error {
		db := DBParam.Load(c)
		env, tab, err := loadSession(c, db)
		if err != nil {
			return err
		}
		lis := ListenerParam.Load(c)

		eg, ctx := errgroup.WithContext(c.Context)
		eg.Go(func() error { return lichui.Serve(ctx, lis, env, tab) })
		eg.Go(func() error {
			<-ctx.Done()
			return lis.Close()
		})
		return eg.Wait()
	},
}

var selfcheck = star.Command{
	Metadata: star.Metadata{
		Short: "round-trip numerals through encode and decode",
	},
	Flags: []star.IParam{DBParam, nParam},
	F: func(c star.Context) error {
		env, tab, err := loadSession(c, DBParam.Load(c))
		if err != nil {
			return err
		}
		codec, err := natlit.New(env, corelib.NatPaths(corelib.PermanentRoot))
		if err != nil {
			return err
		}
		n := nParam.Load(c)
		const numWorkers = 8
		eg, _ := errgroup.WithContext(c.Context)
		for w := 0; w < numWorkers; w++ {
			w := w
			eg.Go(func() error {
				for i := w; i < n; i += numWorkers {
					x, err := codec.Encode(term.Loc{}, big.NewInt(int64(i)))
					if err != nil {
						return err
					}
					got, ok := codec.Decode(x)
					if !ok || got.Int64() != int64(i) {
						return fmt.Errorf("round trip failed for %d HAVE: %v", i, got)
					}
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return err
		}
		pr := printer.New(tab, printer.EnvNames(env))
		for _, i := range []int64{0, 1, 42} {
			x, err := codec.Encode(term.Loc{}, big.NewInt(i))
			if err != nil {
				return err
			}
			if got, want := pr.PrintString(x), strconv.FormatInt(i, 10); got != want {
				return fmt.Errorf("print mismatch HAVE: %s WANT: %s", got, want)
			}
		}
		c.Printf("OK count=%d\n", n)
		return nil
	},
}

var nParam = star.Param[int]{
	Name:    "n",
	Default: star.Ptr("1000"),
	Parse:   strconv.Atoi,
}
