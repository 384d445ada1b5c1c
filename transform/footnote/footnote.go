/*
Package footnote implements footnotes through two macros.

A "footnote" call records a footnote at its position. A "putfootnotes" call
places all footnotes recorded before it as a numbered list. Footnote calls
insert a "putfootnotes" call at the end of the document if there is none.

In the text, each footnote is replaced by a superscript link to its entry
in the list, and each entry links back to its reference.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package footnote

import (
	"strconv"
	"strings"

	"github.com/npillmayer/blockdom/block"
	"github.com/npillmayer/blockdom/transform/macro"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockdom.transform'.
func tracer() tracing.Trace {
	return tracing.Select("blockdom.transform")
}

// Macro ids.
const (
	FootnoteID = "footnote"
	PutID      = "putfootnotes"
)

// Identifier prefixes of footnote entries and of references to them.
const (
	entryPrefix = "fn-"
	refPrefix   = "fnref-"
)

// Macros returns the footnote macros, ready for registration.
func Macros() []macro.Macro {
	return []macro.Macro{Footnote{}, Put{}}
}

// Footnote is the macro recording a footnote.
type Footnote struct{}

// ID is part of interface macro.Macro.
func (Footnote) ID() string { return FootnoteID }

// Priority is part of interface macro.Macro.
func (Footnote) Priority() int { return 100 }

// Execute is part of interface macro.Macro.
func (Footnote) Execute(mctx *macro.Context) ([]*block.Node, error) {
	content, err := mctx.Content()
	if err != nil {
		return nil, err
	}
	put := block.Or(block.MatchIDs(block.MacroKind, PutID), block.MatchMacroMarkers(PutID))
	if mctx.Root.FindFirst(block.Descendant, put) == nil {
		tracer().Debugf("footnote: appending %s call to document", PutID)
		mctx.Root.AddChild(block.NewMacro(PutID, nil, "", false))
	}
	return content, nil
}

// Put is the macro placing the footnotes.
type Put struct{}

// ID is part of interface macro.Macro.
func (Put) ID() string { return PutID }

// Priority is part of interface macro.Macro. Footnotes are placed after all
// other macros have executed, as these may create footnotes.
func (Put) Priority() int { return 900 }

// Execute is part of interface macro.Macro.
func (Put) Execute(mctx *macro.Context) ([]*block.Node, error) {
	before := make(map[*block.Node]bool)
	for _, n := range mctx.Call.FindAll(block.Preceding, block.MatchMacroMarkers(FootnoteID)) {
		before[n] = true
	}
	var notes []*block.Node // in document order
	for _, n := range mctx.Root.FindAll(block.Descendant, block.MatchMacroMarkers(FootnoteID)) {
		if before[n] && !placed(n) {
			notes = append(notes, n)
		}
	}
	if len(notes) == 0 {
		return nil, nil
	}
	start := 1 + count(mctx.Root)
	list := block.NewNumberedList()
	if start > 1 {
		list.SetParam("start", strconv.Itoa(start))
	}
	list.SetParam("class", "footnotes")
	for i, note := range notes {
		num := strconv.Itoa(start + i)
		content := note.Children()
		sup := block.NewFormat(block.Superscript,
			block.NewLink(block.ResourceRef{Type: block.AnchorRef, Reference: entryPrefix + num},
				block.NewWord(num)))
		note.SetChildren(block.NewID(refPrefix+num), sup)
		item := block.NewListItem(block.NewID(entryPrefix + num))
		item.AddChildren(content...)
		item.AddChildren(block.NewSpace(), block.NewLink(
			block.ResourceRef{Type: block.AnchorRef, Reference: refPrefix + num},
			block.NewWord("↩")))
		list.AddChild(item)
	}
	tracer().Debugf("footnote: placed %d footnotes", len(notes))
	return []*block.Node{list}, nil
}

// placed tells if a footnote marker already has been turned into a reference.
func placed(note *block.Node) bool {
	first := note.FirstChild()
	return first != nil && first.Kind == block.IDKind && strings.HasPrefix(first.Text, refPrefix)
}

// count returns the number of footnotes placed so far.
func count(root *block.Node) int {
	n := 0
	for _, note := range root.FindAll(block.Descendant, block.MatchMacroMarkers(FootnoteID)) {
		if placed(note) {
			n++
		}
	}
	return n
}
