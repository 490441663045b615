package globals

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/exp/maps"

	"myceliumweb.org/lichen/internal/ident"
)

// Alias maps a logical path prefix onto the prefix where entities are
// actually registered.
type Alias struct {
	From Path
	To   Path
}

// Env is the registry for one session.
// Entities are registered under a path and name, and resolved to Refs.
// Resolution is late bound: it sees whatever is registered at call
// time, nothing is captured earlier.
type Env struct {
	mu      sync.RWMutex
	decls   map[ident.ID]Decl
	byName  map[string]ident.ID
	aliases []Alias
}

func NewEnv() *Env {
	return &Env{
		decls:  make(map[ident.ID]Decl),
		byName: make(map[string]ident.ID),
	}
}

// Register installs d and returns its handle.
// A second entity at the same path and name is refused.
func (e *Env) Register(d Decl) (Ref, error) {
	if d.Name == "" {
		return Ref{}, ErrBadDecl{Decl: d, Reason: "empty name"}
	}
	if d.Kind != KindInductive && d.Kind != KindConstructor {
		return Ref{}, ErrBadDecl{Decl: d, Reason: "unknown kind"}
	}
	k := nameKey(d.Path, d.Name)
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, exists := e.byName[k]; exists {
		return Ref{}, ErrExists{Path: d.Path, Name: d.Name}
	}
	fid := d.Fingerprint()
	e.decls[fid] = d
	e.byName[k] = fid
	return Ref{fid: fid}, nil
}

// Resolve finds the entity registered at path and name.
// Aliases are applied to path before the lookup, so the same call can
// be pointed at different roots by configuring the Env. A miss is
// ErrNotFound naming the path and name as given by the caller.
func (e *Env) Resolve(path Path, name string) (Ref, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	fid, exists := e.byName[nameKey(e.rewrite(path), name)]
	if !exists {
		return Ref{}, ErrNotFound{Path: path, Name: name}
	}
	return Ref{fid: fid}, nil
}

// AddAlias makes paths beginning with from resolve as if they began
// with to. Later aliases do not stack on earlier ones; the first
// matching alias wins and is applied once.
func (e *Env) AddAlias(from, to Path) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.aliases = append(e.aliases, Alias{From: from, To: to})
}

func (e *Env) rewrite(p Path) Path {
	for _, a := range e.aliases {
		if p.HasPrefix(a.From) {
			return append(slices.Clone(a.To), p[len(a.From):]...)
		}
	}
	return p
}

// Lookup returns the declaration behind a handle.
func (e *Env) Lookup(r Ref) (Decl, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	d, exists := e.decls[r.fid]
	return d, exists
}

// All returns every registered declaration, ordered by path and name.
func (e *Env) All() []Decl {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ret := maps.Values(e.decls)
	slices.SortFunc(ret, func(a, b Decl) int {
		return strings.Compare(a.String(), b.String())
	})
	return ret
}

// Aliases returns the alias table in application order.
func (e *Env) Aliases() []Alias {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.aliases)
}

func (e *Env) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.decls)
}

func nameKey(p Path, name string) string {
	return p.String() + ":" + name
}
