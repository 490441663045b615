// Package printer renders terms, substituting decimal numerals for
// the constructor chains the notation table recognizes.
package printer

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/hashicorp/golang-lru/v2/simplelru"

	"myceliumweb.org/lichen/globals"
	"myceliumweb.org/lichen/internal/ident"
	"myceliumweb.org/lichen/notation"
	"myceliumweb.org/lichen/term"
)

// Writer is used by the Print functions
type Writer interface {
	io.Writer
	io.StringWriter
}

// NameFunc resolves a display name for a global.
type NameFunc = func(globals.Ref) (string, bool)

// EnvNames displays globals by their registered short name.
func EnvNames(env *globals.Env) NameFunc {
	return func(r globals.Ref) (string, bool) {
		d, exists := env.Lookup(r)
		if !exists {
			return "", false
		}
		return d.Name, true
	}
}

type Printer struct {
	// Table supplies the numeral uninterpreters.
	// When it is nil printing is purely structural.
	Table *notation.Table
	// Names resolves display names for globals.
	// Globals it does not know print as truncated fingerprints.
	Names NameFunc
	// ScopeSuffix appends %scope to recovered numerals.
	ScopeSuffix bool

	mu    sync.Mutex
	cache *simplelru.LRU[ident.ID, string]
}

// New returns a Printer that memoizes rendered numerals.
func New(tab *notation.Table, names NameFunc) *Printer {
	cache, err := simplelru.NewLRU[ident.ID, string](512, nil)
	if err != nil {
		panic(err)
	}
	return &Printer{Table: tab, Names: names, cache: cache}
}

func (p *Printer) PrintString(x term.Term) string {
	sb := strings.Builder{}
	if err := p.Print(&sb, x); err != nil {
		return err.Error()
	}
	return sb.String()
}

func (p *Printer) Print(w Writer, x term.Term) error {
	return p.printTerm(w, x)
}

func (p *Printer) printTerm(w Writer, x term.Term) error {
	if out, ok := p.numeral(x); ok {
		_, err := w.WriteString(out)
		return err
	}
	switch x := x.(type) {
	case term.Ref:
		_, err := w.WriteString(p.name(x.Global))
		return err
	case term.App:
		if _, err := w.WriteString("("); err != nil {
			return err
		}
		if err := p.printTerm(w, x.Fn); err != nil {
			return err
		}
		for i := range x.Args {
			if _, err := w.WriteString(" "); err != nil {
				return err
			}
			if err := p.printTerm(w, x.Args[i]); err != nil {
				return err
			}
		}
		_, err := w.WriteString(")")
		return err
	case term.Local:
		_, err := fmt.Fprintf(w, "%%%d", x.Index)
		return err
	case term.Lam:
		if _, err := fmt.Fprintf(w, "(lam %s ", x.Binder); err != nil {
			return err
		}
		if err := p.printTerm(w, x.Body); err != nil {
			return err
		}
		_, err := w.WriteString(")")
		return err
	default:
		panic(x)
	}
}

// numeral renders x as a decimal if the table recognizes it.
// Renderings are cached by the term's fingerprint, which ignores
// locations.
func (p *Printer) numeral(x term.Term) (string, bool) {
	if p.Table == nil {
		return "", false
	}
	if _, ok := term.HeadRef(x); !ok {
		return "", false
	}
	var fp ident.ID
	if p.cache != nil {
		fp = term.Fingerprint(x)
		p.mu.Lock()
		out, exists := p.cache.Get(fp)
		p.mu.Unlock()
		if exists {
			return out, true
		}
	}
	n, scope, ok := p.Table.TryUninterp(x)
	if !ok {
		return "", false
	}
	out := n.String()
	if p.ScopeSuffix {
		out += "%" + scope
	}
	if p.cache != nil {
		p.mu.Lock()
		p.cache.Add(fp, out)
		p.mu.Unlock()
	}
	return out, true
}

func (p *Printer) name(r globals.Ref) string {
	if p.Names != nil {
		if n, exists := p.Names(r); exists {
			return n
		}
	}
	return r.String()
}
