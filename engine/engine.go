/*
Package engine wires parsers, transformations and renderers into a
conversion pipeline, configured by a config.Config.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package engine

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/blockdom/block"
	"github.com/npillmayer/blockdom/config"
	"github.com/npillmayer/blockdom/syntax"
	"github.com/npillmayer/blockdom/syntax/markdown"
	"github.com/npillmayer/blockdom/syntax/plain"
	"github.com/npillmayer/blockdom/syntax/xhtml"
	"github.com/npillmayer/blockdom/syntax/xml"
	"github.com/npillmayer/blockdom/transform"
	"github.com/npillmayer/blockdom/transform/footnote"
	"github.com/npillmayer/blockdom/transform/linkcheck"
	"github.com/npillmayer/blockdom/transform/macro"
	"github.com/npillmayer/blockdom/transform/toc"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockdom.engine'.
func tracer() tracing.Trace {
	return tracing.Select("blockdom.engine")
}

// Engine converts documents between syntaxes.
type Engine struct {
	cfg    *config.Config
	macros *macro.Registry
}

// New creates an engine. A nil configuration selects config.Default().
func New(cfg *config.Config) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg, macros: macro.NewRegistry()}
	for _, id := range cfg.Macros.Enabled {
		switch id {
		case toc.ID:
			m := toc.New()
			if cfg.Toc.Depth > 0 {
				m.Depth = cfg.Toc.Depth
			}
			e.macros.Register(m)
		case footnote.FootnoteID:
			for _, m := range footnote.Macros() {
				e.macros.Register(m)
			}
		}
	}
	return e, nil
}

// Config returns the configuration of the engine.
func (e *Engine) Config() *config.Config {
	return e.cfg
}

// Macros returns the registry of macros the engine executes.
func (e *Engine) Macros() *macro.Registry {
	return e.macros
}

// Parser returns a parser for a syntax identifier or name.
func Parser(id string) (syntax.Parser, error) {
	switch syntax.Normalize(id) {
	case syntax.Markdown:
		return markdown.NewParser(), nil
	case syntax.XHTML:
		return xhtml.NewParser(), nil
	case syntax.XML:
		return xml.NewParser(), nil
	}
	return nil, fmt.Errorf("%w: no parser for %q", syntax.ErrUnknownSyntax, id)
}

// Renderer returns a renderer for a syntax identifier or name, set up with
// the render options of the engine.
func (e *Engine) Renderer(id string) (syntax.Renderer, error) {
	switch syntax.Normalize(id) {
	case syntax.Markdown:
		return markdown.NewRenderer(), nil
	case syntax.XHTML:
		return xhtml.NewRenderer(), nil
	case syntax.XML:
		return &xml.Renderer{Indent: e.cfg.Render.Indent}, nil
	case syntax.Plain:
		return &plain.Renderer{Width: e.cfg.Render.Width}, nil
	}
	return nil, fmt.Errorf("%w: no renderer for %q", syntax.ErrUnknownSyntax, id)
}

// Parse reads a document in a syntax. An empty syntax selects the configured
// input syntax.
func (e *Engine) Parse(r io.Reader, from string) (*block.Node, error) {
	if from == "" {
		from = e.cfg.Input
	}
	p, err := Parser(from)
	if err != nil {
		return nil, err
	}
	return p.Parse(r)
}

// Transform applies the configured transformations to a tree, parsed from
// syntax from and to be rendered in syntax to. It returns the transformation
// context, holding results like the link check report.
func (e *Engine) Transform(root *block.Node, from, to string) (*transform.Context, error) {
	if from == "" {
		from = e.cfg.Input
	}
	if to == "" {
		to = e.cfg.Output
	}
	ctx := transform.NewContext(root, syntax.Normalize(to))
	err := transform.Run(ctx, e.transformations(from)...)
	return ctx, err
}

func (e *Engine) transformations(from string) []transform.Transformation {
	var ts []transform.Transformation
	if e.cfg.Enabled("macro") {
		x := macro.NewExecutor(e.macros)
		x.Strict = e.cfg.Macros.Strict
		x.ParseContent = e.contentParser(from)
		ts = append(ts, x)
	}
	if e.cfg.Enabled("linkcheck") {
		ts = append(ts, &linkcheck.Checker{
			Strict:  e.cfg.LinkCheck.Strict,
			Schemes: e.cfg.LinkCheck.Schemes,
		})
	}
	return ts
}

// contentParser parses the content of macro calls in the syntax of the
// document. Content consisting of a single paragraph is unwrapped.
func (e *Engine) contentParser(from string) func(string) ([]*block.Node, error) {
	p, err := Parser(from)
	if err != nil {
		return nil
	}
	return func(content string) ([]*block.Node, error) {
		root, err := p.Parse(strings.NewReader(content))
		if err != nil {
			return nil, err
		}
		children := root.Children()
		if len(children) == 1 && children[0].Kind == block.ParagraphKind {
			children = children[0].Children()
		}
		for _, ch := range children {
			ch.Isolate()
		}
		return children, nil
	}
}

// Render writes a tree in a syntax. An empty syntax selects the configured
// output syntax.
func (e *Engine) Render(w io.Writer, root *block.Node, to string) error {
	if to == "" {
		to = e.cfg.Output
	}
	r, err := e.Renderer(to)
	if err != nil {
		return err
	}
	return r.Render(w, root)
}

// Result is the outcome of a conversion.
type Result struct {
	Root    *block.Node
	Context *transform.Context
}

// LinkReport returns the link check report of a conversion, if links have
// been checked.
func (res *Result) LinkReport() *linkcheck.Report {
	if res.Context == nil {
		return nil
	}
	report, _ := res.Context.Value(linkcheck.ReportKey).(*linkcheck.Report)
	return report
}

// Convert parses, transforms and renders a document. Empty syntaxes select
// the configured ones.
func (e *Engine) Convert(w io.Writer, r io.Reader, from, to string) (*Result, error) {
	if from == "" {
		from = e.cfg.Input
	}
	if to == "" {
		to = e.cfg.Output
	}
	renderer, err := e.Renderer(to) // fail early for unknown output
	if err != nil {
		return nil, err
	}
	root, err := e.Parse(r, from)
	if err != nil {
		return nil, err
	}
	ctx, err := e.Transform(root, from, to)
	res := &Result{Root: root, Context: ctx}
	if err != nil {
		return res, err
	}
	var buf bytes.Buffer
	if err := renderer.Render(&buf, root); err != nil {
		return res, err
	}
	tracer().Debugf("converted %s to %s, %d bytes", from, to, buf.Len())
	_, err = buf.WriteTo(w)
	return res, err
}
