package transform

import (
	"fmt"
	"sort"

	"github.com/npillmayer/blockdom/block"
)

// Transformation changes a block tree in place.
type Transformation interface {
	Name() string
	Priority() int // lower priorities run first
	Transform(ctx *Context, root *block.Node) error
}

// Context carries information shared by the transformations of one run.
type Context struct {
	Syntax string      // identifier of the target syntax, may be empty
	Root   *block.Node // root of the tree under transformation
	values map[string]interface{}
}

// NewContext creates a context for transforming the tree under root, which
// will be rendered in a given target syntax.
func NewContext(root *block.Node, syntax string) *Context {
	return &Context{Syntax: syntax, Root: root}
}

// Set stores a value, usually a result of a transformation, to be picked up
// by later transformations or by the caller of Run.
func (ctx *Context) Set(key string, value interface{}) {
	if ctx.values == nil {
		ctx.values = make(map[string]interface{})
	}
	ctx.values[key] = value
}

// Value returns a value stored with Set, or nil.
func (ctx *Context) Value(key string) interface{} {
	return ctx.values[key]
}

// Run applies transformations to the tree of ctx, ordered by priority.
// It stops at the first failing transformation.
func Run(ctx *Context, ts ...Transformation) error {
	if ctx == nil || ctx.Root == nil {
		return nil
	}
	ordered := make([]Transformation, len(ts))
	copy(ordered, ts)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})
	for _, t := range ordered {
		tracer().Debugf("running transformation %s (priority %d)", t.Name(), t.Priority())
		if err := t.Transform(ctx, ctx.Root); err != nil {
			return fmt.Errorf("transformation %s: %w", t.Name(), err)
		}
	}
	return nil
}

// Func adapts a function to the Transformation interface.
type Func struct {
	ID    string
	Prio  int
	Apply func(ctx *Context, root *block.Node) error
}

// Name is part of interface Transformation.
func (f Func) Name() string { return f.ID }

// Priority is part of interface Transformation.
func (f Func) Priority() int { return f.Prio }

// Transform is part of interface Transformation.
func (f Func) Transform(ctx *Context, root *block.Node) error {
	return f.Apply(ctx, root)
}
