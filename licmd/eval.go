package licmd

import (
	"go.brendoncarroll.net/star"

	"myceliumweb.org/lichen/literal"
	"myceliumweb.org/lichen/natlit"
	"myceliumweb.org/lichen/printer"
)

var eval = star.Command{
	Metadata: star.Metadata{
		Short: "elaborate a numeral literal and print the resulting term",
	},
	Flags: []star.IParam{DBParam},
	Pos:   []star.IParam{litParam},
	F: func(c star.Context) error {
		env, tab, err := loadSession(c, DBParam.Load(c))
		if err != nil {
			return err
		}
		x, err := literal.Parse(tab, litParam.Load(c), natlit.Scope)
		if err != nil {
			return err
		}
		structural := printer.Printer{Names: printer.EnvNames(env)}
		c.Printf("%s\n", structural.PrintString(x))
		pr := printer.New(tab, printer.EnvNames(env))
		c.Printf("%s\n", pr.PrintString(x))
		return nil
	},
}

var litParam = star.Param[string]{Name: "lit", Parse: star.ParseString}
