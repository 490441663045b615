// Package lichui serves a web view of a session: the registered
// declarations, an eval form for numeral literals, and a websocket
// endpoint that round-trips literals as they are typed.
package lichui

import (
	"context"
	"embed"
	"net"
	"net/http"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.brendoncarroll.net/exp/slices2"
	"go.brendoncarroll.net/stdctx/logctx"
	"go.uber.org/zap"

	"myceliumweb.org/lichen/globals"
	"myceliumweb.org/lichen/literal"
	"myceliumweb.org/lichen/natlit"
	"myceliumweb.org/lichen/notation"
	"myceliumweb.org/lichen/printer"
)

func Serve(ctx context.Context, l net.Listener, env *globals.Env, tab *notation.Table) error {
	return New(env, tab).Serve(ctx, l)
}

// devPath is the path to the views from the directory the application
// is run. when it is empty the embedded views are used.
var devPath = "" // "./lichui"

type Server struct {
	env   *globals.Env
	tab   *notation.Table
	pr    *printer.Printer
	app   *fiber.App
	bgCtx context.Context
}

func New(env *globals.Env, tab *notation.Table) *Server {
	s := &Server{
		env: env,
		tab: tab,
		pr:  printer.New(tab, printer.EnvNames(env)),
	}

	var renderer *html.Engine
	if devPath != "" {
		renderer = html.New(devPath, ".html")
		renderer.Reload(true)
	} else {
		renderer = html.NewFileSystem(http.FS(viewFS), ".html")
	}
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		Views:                 renderer,
	})
	// views
	app.Get("/", s.home)
	app.Get("/decl", s.decl)
	app.Post("/eval", s.eval)

	v1 := app.Group("/v1")
	v1.Get("/decls", s.declsJSON)
	v1.Get("/ws", websocket.New(s.handleWS))
	s.app = app
	return s
}

func (s *Server) Serve(ctx context.Context, l net.Listener) error {
	s.bgCtx = ctx
	logctx.Infof(ctx, "serving on %v", l.Addr())
	return s.app.Listener(l)
}

func (s *Server) home(c *fiber.Ctx) error {
	decls := slices2.Map(s.env.All(), makeDeclInfo)
	return c.Render("view/home", struct {
		Hostname string
		Count    int
		Scopes   []string
		Decls    []declInfo
	}{
		Hostname: c.Hostname(),
		Count:    len(decls),
		Scopes:   s.tab.Scopes(),
		Decls:    decls,
	}, "view/layout")
}

func (s *Server) decl(c *fiber.Ctx) error {
	path := globals.ParsePath(c.Query("path"))
	name := c.Query("name")
	ref, err := s.env.Resolve(path, name)
	if err != nil {
		if globals.IsErrNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, err.Error())
		}
		return err
	}
	d, _ := s.env.Lookup(ref)
	return c.Render("view/decl", struct {
		Hostname string
		Decl     declInfo
	}{
		Hostname: c.Hostname(),
		Decl:     makeDeclInfo(d),
	}, "view/layout")
}

func (s *Server) eval(c *fiber.Ctx) error {
	in := c.FormValue("lit")
	res := s.evalLit(in)
	return c.Render("view/eval", struct {
		Hostname string
		Result   evalResult
	}{
		Hostname: c.Hostname(),
		Result:   res,
	}, "view/layout")
}

func (s *Server) declsJSON(c *fiber.Ctx) error {
	return c.JSON(slices2.Map(s.env.All(), makeDeclInfo))
}

func (s *Server) handleWS(c *websocket.Conn) {
	ctx := s.bgCtx
	logctx.Info(ctx, "started websocket")
	defer logctx.Info(ctx, "closing websocket")
	for {
		_, data, err := c.ReadMessage()
		if err != nil {
			return
		}
		if err := c.WriteJSON(s.evalLit(string(data))); err != nil {
			logctx.Error(ctx, "handling websocket", zap.Error(err))
			return
		}
	}
}

type evalResult struct {
	Input   string `json:"input"`
	Term    string `json:"term,omitempty"`
	Numeral string `json:"numeral,omitempty"`
	Err     string `json:"error,omitempty"`
}

// evalLit round-trips one literal: elaborate it to a term, then print
// the term both structurally and through the notation table.
func (s *Server) evalLit(in string) evalResult {
	res := evalResult{Input: in}
	x, err := literal.Parse(s.tab, in, natlit.Scope)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	structural := printer.Printer{Names: printer.EnvNames(s.env)}
	res.Term = structural.PrintString(x)
	res.Numeral = s.pr.PrintString(x)
	return res
}

//go:embed view/*
var viewFS embed.FS

type declInfo struct {
	Path   string `json:"path"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Arity  int    `json:"arity"`
	Parent string `json:"parent,omitempty"`
	FID    string `json:"fid"`
}

func makeDeclInfo(d globals.Decl) declInfo {
	return declInfo{
		Path:   d.Path.String(),
		Name:   d.Name,
		Kind:   d.Kind.String(),
		Arity:  d.Arity,
		Parent: d.Parent,
		FID:    d.Fingerprint().String(),
	}
}
