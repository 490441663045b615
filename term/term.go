// Package term defines the term AST that notation interpreters
// produce and inspect.
package term

import (
	"fmt"
	"strings"

	"myceliumweb.org/lichen/globals"
)

// Term is a node in the AST.
// Term = Ref | App | Local | Lam
type Term interface {
	isTerm()
	GetLoc() Loc
}

// Ref refers to a registered global.
type Ref struct {
	Global globals.Ref
	Loc    Loc
}

func (Ref) isTerm() {}

func (r Ref) GetLoc() Loc { return r.Loc }

func (r Ref) String() string {
	return r.Global.String()
}

// App applies Fn to Args.
type App struct {
	Fn   Term
	Args []Term
	Loc  Loc
}

func (App) isTerm() {}

func (a App) GetLoc() Loc { return a.Loc }

func (a App) String() string {
	parts := []string{fmt.Sprint(a.Fn)}
	for i := range a.Args {
		parts = append(parts, fmt.Sprint(a.Args[i]))
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Local is a bound variable, counting binders outward from the use.
type Local struct {
	Index uint32
	Loc   Loc
}

func (Local) isTerm() {}

func (l Local) GetLoc() Loc { return l.Loc }

func (l Local) String() string {
	return fmt.Sprintf("%%%d", l.Index)
}

// Lam binds one variable in Body.
type Lam struct {
	Binder string
	Body   Term
	Loc    Loc
}

func (Lam) isTerm() {}

func (l Lam) GetLoc() Loc { return l.Loc }

func (l Lam) String() string {
	return fmt.Sprintf("(lam %s %v)", l.Binder, l.Body)
}

// AsRef returns the global x refers to, if x is a reference.
func AsRef(x Term) (globals.Ref, bool) {
	r, ok := x.(Ref)
	if !ok {
		return globals.Ref{}, false
	}
	return r.Global, true
}

// AsApp splits x into a function and arguments, if x is an application.
func AsApp(x Term) (Term, []Term, bool) {
	a, ok := x.(App)
	if !ok {
		return nil, nil, false
	}
	return a.Fn, a.Args, true
}

// HeadRef returns the global at the head of x: x itself when it is a
// reference, or the function position when x applies one.
func HeadRef(x Term) (globals.Ref, bool) {
	switch x := x.(type) {
	case Ref:
		return x.Global, true
	case App:
		return AsRef(x.Fn)
	default:
		return globals.Ref{}, false
	}
}

// Equal reports whether a and b are the same term.
// Locations are ignored.
func Equal(a, b Term) bool {
	switch a := a.(type) {
	case Ref:
		b, ok := b.(Ref)
		return ok && a.Global == b.Global
	case App:
		b, ok := b.(App)
		if !ok || len(a.Args) != len(b.Args) || !Equal(a.Fn, b.Fn) {
			return false
		}
		for i := range a.Args {
			if !Equal(a.Args[i], b.Args[i]) {
				return false
			}
		}
		return true
	case Local:
		b, ok := b.(Local)
		return ok && a.Index == b.Index
	case Lam:
		b, ok := b.(Lam)
		return ok && a.Binder == b.Binder && Equal(a.Body, b.Body)
	default:
		return false
	}
}
