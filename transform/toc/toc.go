/*
Package toc implements the "toc" macro, which creates a table of contents
from the headers of a document.

Parameters of a toc call:

	start     level of the top-most headers to include (default 1)
	depth     number of header levels to include (default 6)
	numbered  "true" for numbered lists
	scope     "local" to include only the headers of the section the call is in

Headers without an "id" parameter get one, derived from their text.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package toc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/npillmayer/blockdom/block"
	"github.com/npillmayer/blockdom/transform/macro"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockdom.transform'.
func tracer() tracing.Trace {
	return tracing.Select("blockdom.transform")
}

// ID of the toc macro.
const ID = "toc"

// Macro creates tables of contents.
type Macro struct {
	Depth int // default depth if a call has no depth parameter
}

// New creates a toc macro with a default depth of 6 levels.
func New() *Macro {
	return &Macro{Depth: 6}
}

// ID is part of interface macro.Macro.
func (m *Macro) ID() string { return ID }

// Priority is part of interface macro.Macro. Tables of contents are created
// after macros which may produce headers.
func (m *Macro) Priority() int { return 500 }

// Execute is part of interface macro.Macro.
func (m *Macro) Execute(mctx *macro.Context) ([]*block.Node, error) {
	start, err := intParam(mctx, "start", 1)
	if err != nil {
		return nil, err
	}
	depth, err := intParam(mctx, "depth", m.Depth)
	if err != nil {
		return nil, err
	}
	if depth <= 0 {
		depth = 6
	}
	var headers []*block.Node
	if mctx.Param("scope") == "local" {
		headers = localHeaders(mctx.Call)
	} else {
		headers = mctx.Root.FindAll(block.Descendant, block.MatchKind(block.HeaderKind))
	}
	var selected []*block.Node
	for _, h := range headers {
		if h.Level >= start && h.Level < start+depth {
			selected = append(selected, h)
		}
	}
	tracer().Debugf("toc: %d of %d headers selected", len(selected), len(headers))
	if len(selected) == 0 {
		return nil, nil
	}
	ids := newIDSet(mctx.Root)
	for _, h := range selected {
		if h.Param("id") == "" {
			h.SetParam("id", ids.unique(Slug(block.TextOf(h))))
		}
	}
	return []*block.Node{buildList(selected, mctx.Param("numbered") == "true")}, nil
}

func intParam(mctx *macro.Context, name string, dflt int) (int, error) {
	s := mctx.Param(name)
	if s == "" {
		return dflt, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", name, err)
	}
	return v, nil
}

// localHeaders collects the headers following a toc call up to the next
// header of a level not deeper than the header the call is placed under.
func localHeaders(call *block.Node) []*block.Node {
	anchor := call
	for anchor.Parent() != nil && anchor.Parent().Kind != block.DocumentKind &&
		anchor.Parent().Kind != block.SectionKind {
		anchor = anchor.Parent()
	}
	level := 0
	if h := block.FindFirst(anchor, block.PrecedingSibling, block.MatchKind(block.HeaderKind)); h != nil {
		level = h.Level
	}
	var headers []*block.Node
	for _, h := range block.FindAll(anchor, block.FollowingSibling, block.MatchKind(block.HeaderKind)) {
		if h.Level <= level {
			break
		}
		headers = append(headers, h)
	}
	return headers
}

// buildList creates nested lists of links to headers. A header more than one
// level deeper than its predecessor gets intermediate items.
func buildList(headers []*block.Node, numbered bool) *block.Node {
	newList := block.NewBulletedList
	if numbered {
		newList = block.NewNumberedList
	}
	base := headers[0].Level
	for _, h := range headers {
		if h.Level < base {
			base = h.Level
		}
	}
	top := newList()
	stack := []*block.Node{top}
	for _, h := range headers {
		rel := h.Level - base
		for len(stack)-1 < rel {
			list := stack[len(stack)-1]
			item := list.LastChild()
			if item == nil {
				item = block.NewListItem()
				list.AddChild(item)
			}
			sub := newList()
			item.AddChild(sub)
			stack = append(stack, sub)
		}
		stack = stack[:rel+1]
		link := block.NewLink(block.ResourceRef{Type: block.AnchorRef, Reference: h.Param("id")},
			block.Words(block.TextOf(h))...)
		stack[rel].AddChild(block.NewListItem(link))
	}
	return top
}

// Slug derives an identifier from a text: lower-case letters and digits,
// with runs of other characters replaced by a single '-'.
func Slug(text string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(text) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		} else {
			dash = true
		}
	}
	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}

type idSet map[string]bool

// newIDSet collects the ids in use in a tree.
func newIDSet(root *block.Node) idSet {
	ids := make(idSet)
	for _, n := range root.FindAll(block.DescendantOrSelf, block.Or(
		block.HasParam("id", ""), block.MatchKind(block.IDKind))) {
		//
		if n.Kind == block.IDKind {
			ids[n.Text] = true
		} else {
			ids[n.Param("id")] = true
		}
	}
	return ids
}

func (ids idSet) unique(id string) string {
	candidate := id
	for i := 1; ids[candidate]; i++ {
		candidate = id + "-" + strconv.Itoa(i)
	}
	ids[candidate] = true
	return candidate
}
