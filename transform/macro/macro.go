/*
Package macro executes macro calls in a block tree.

Parsers create a block of kind Macro for every macro call found in the input.
The macro transformation looks up each call in a Registry, executes it, and
replaces the call by a MacroMarker block which keeps the id, the parameters and
the content of the call and wraps the blocks the macro produced.

Macros execute in the order of ascending macro priority, calls with equal
priority in document order. Macros may insert new macro calls into the tree,
which will be executed as well.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package macro

import (
	"errors"
	"fmt"
	"sort"

	"github.com/npillmayer/blockdom/block"
	"github.com/npillmayer/blockdom/transform"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockdom.transform'.
func tracer() tracing.Trace {
	return tracing.Select("blockdom.transform")
}

// ErrUnknownMacro flags a macro call without a registered macro.
var ErrUnknownMacro = errors.New("unknown macro")

// ErrMacroLoop is returned if macros keep creating new macro calls.
var ErrMacroLoop = errors.New("too many macro executions")

// Priority of the macro transformation.
const Priority = 100

// MaxExecutions limits the number of macro calls executed in one run.
const MaxExecutions = 10000

// ErrorClass is the value of parameter "class" of paragraphs reporting a
// failed macro call.
const ErrorClass = "macro-error"

// Macro is implemented by everything which can be called from a document.
type Macro interface {
	ID() string
	Priority() int // lower priorities execute first
	Execute(mctx *Context) ([]*block.Node, error)
}

// Context is handed to a macro for the execution of one call.
type Context struct {
	*transform.Context
	Call *block.Node // the macro call, still in place in the tree

	parse func(string) ([]*block.Node, error)
}

// Param returns the value of a parameter of the call.
func (mctx *Context) Param(name string) string {
	return mctx.Call.Param(name)
}

// Content returns the content of the call as blocks, parsed in the syntax of
// the document if a content parser is available.
func (mctx *Context) Content() ([]*block.Node, error) {
	if mctx.Call.Text == "" {
		return nil, nil
	}
	if mctx.parse == nil {
		return block.Words(mctx.Call.Text), nil
	}
	return mctx.parse(mctx.Call.Text)
}

// Registry maps macro ids to macros.
type Registry struct {
	macros map[string]Macro
}

// NewRegistry creates a registry holding a set of macros.
func NewRegistry(macros ...Macro) *Registry {
	r := &Registry{macros: make(map[string]Macro)}
	for _, m := range macros {
		r.Register(m)
	}
	return r
}

// Register adds a macro, replacing a macro with the same id.
func (r *Registry) Register(m Macro) {
	r.macros[m.ID()] = m
}

// Lookup finds a macro by id.
func (r *Registry) Lookup(id string) (Macro, bool) {
	m, ok := r.macros[id]
	return m, ok
}

// IDs returns the ids of all registered macros, sorted.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.macros))
	for id := range r.macros {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Executor is the transformation executing macro calls.
type Executor struct {
	Registry *Registry
	// ParseContent, if set, turns the content of macro calls into blocks.
	ParseContent func(string) ([]*block.Node, error)
	// Strict makes failed and unknown macro calls fail the transformation.
	// Otherwise they are reported in the document.
	Strict bool
	// Limit caps the number of calls executed, MaxExecutions if zero.
	Limit int
}

// NewExecutor creates a macro transformation for the macros of a registry.
func NewExecutor(r *Registry) *Executor {
	return &Executor{Registry: r}
}

// Name is part of interface transform.Transformation.
func (x *Executor) Name() string { return "macro" }

// Priority is part of interface transform.Transformation.
func (x *Executor) Priority() int { return Priority }

// Transform is part of interface transform.Transformation.
func (x *Executor) Transform(ctx *transform.Context, root *block.Node) error {
	calls := block.MatchKind(block.MacroKind)
	limit := x.Limit
	if limit <= 0 {
		limit = MaxExecutions
	}
	for n := 0; ; n++ {
		if n >= limit {
			return ErrMacroLoop
		}
		call := x.next(root.FindAll(block.Descendant, calls))
		if call == nil {
			tracer().Debugf("executed %d macro calls", n)
			return nil
		}
		if err := x.execute(ctx, call); err != nil {
			return err
		}
	}
}

// next selects the call with the lowest priority, the first in document
// order among equals.
func (x *Executor) next(calls []*block.Node) *block.Node {
	var first *block.Node
	prio := 0
	for _, c := range calls {
		p := 0
		if m, ok := x.lookup(c.MacroID); ok {
			p = m.Priority()
		}
		if first == nil || p < prio {
			first, prio = c, p
		}
	}
	return first
}

func (x *Executor) lookup(id string) (Macro, bool) {
	if x.Registry == nil {
		return nil, false
	}
	return x.Registry.Lookup(id)
}

func (x *Executor) execute(ctx *transform.Context, call *block.Node) error {
	m, ok := x.lookup(call.MacroID)
	var result []*block.Node
	var err error
	if !ok {
		err = fmt.Errorf("%w %q", ErrUnknownMacro, call.MacroID)
	} else {
		mctx := &Context{Context: ctx, Call: call, parse: x.ParseContent}
		result, err = m.Execute(mctx)
	}
	if err != nil {
		if x.Strict {
			return fmt.Errorf("macro %q: %w", call.MacroID, err)
		}
		tracer().Infof("macro %q failed: %v", call.MacroID, err)
		result = []*block.Node{errorReport(call, err)}
	}
	marker := block.NewMacroMarker(call.MacroID, call.Params(), call.Text, call.Inline, result...)
	if parent := call.Parent(); parent != nil {
		parent.ReplaceChild(call, marker)
	} else {
		tracer().Errorf("macro call %q is not part of a tree", call.MacroID)
	}
	return nil
}

func errorReport(call *block.Node, err error) *block.Node {
	words := block.Words(err.Error())
	if call.Inline {
		return block.NewFormat(block.Bold, words...).SetParam("class", ErrorClass)
	}
	return block.NewParagraph(words...).SetParam("class", ErrorClass)
}
