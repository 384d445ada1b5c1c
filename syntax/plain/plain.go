/*
Package plain renders block trees as plain text.

Paragraph-like blocks are separated by empty lines, list items are bulleted
or numbered, and table cells are separated by tabs. Markup, raw content and
unexecuted macros are dropped.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package plain

import (
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/blockdom/block"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockdom.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("blockdom.syntax")
}

// Renderer writes a block tree as plain text.
type Renderer struct {
	Width int // if > 0, paragraphs are wrapped at this column
}

// NewRenderer creates a plain text renderer without line wrapping.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render is part of interface syntax.Renderer.
func (r *Renderer) Render(w io.Writer, root *block.Node) error {
	if root == nil {
		return nil
	}
	s := r.blocks(root.Children())
	if s != "" {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}

func inline(n *block.Node) bool {
	switch n.Kind {
	case block.WordKind, block.SpaceKind, block.SpecialSymbolKind, block.NewLineKind,
		block.FormatKind, block.LinkKind, block.ImageKind, block.IDKind:
		return true
	}
	return n.Inline
}

func (r *Renderer) blocks(nodes []*block.Node) string {
	var parts []string
	var run []*block.Node
	flush := func() {
		if len(run) > 0 {
			if s := r.paragraph(run); s != "" {
				parts = append(parts, s)
			}
			run = nil
		}
	}
	for _, n := range nodes {
		if inline(n) {
			run = append(run, n)
			continue
		}
		flush()
		if s := r.block(n); s != "" {
			parts = append(parts, s)
		}
	}
	flush()
	return strings.Join(parts, "\n\n")
}

func (r *Renderer) block(n *block.Node) string {
	switch n.Kind {
	case block.ParagraphKind, block.QuotationLineKind, block.DefinitionTermKind:
		return r.paragraph(n.Children())
	case block.HeaderKind:
		title := text(n.Children())
		if n.Level <= 2 {
			underline := "="
			if n.Level == 2 {
				underline = "-"
			}
			return title + "\n" + strings.Repeat(underline, len([]rune(title)))
		}
		return title
	case block.HorizontalLineKind:
		return strings.Repeat("-", 20)
	case block.VerbatimKind:
		return n.Text
	case block.EmptyLinesKind, block.RawKind, block.MacroKind:
		return ""
	case block.BulletedListKind, block.NumberedListKind:
		var items []string
		num := 1
		if s, err := strconv.Atoi(n.Param("start")); err == nil {
			num = s
		}
		for _, item := range n.Children() {
			bullet := "* "
			if n.Kind == block.NumberedListKind {
				bullet = strconv.Itoa(num) + ". "
				num++
			}
			items = append(items, indent(r.blocks(item.Children()), bullet))
		}
		return strings.Join(items, "\n")
	case block.QuotationKind, block.DefinitionDescriptionKind:
		return indent(r.blocks(n.Children()), "    ")
	case block.TableKind:
		var rows []string
		for _, row := range n.Children() {
			var cells []string
			for _, cell := range row.Children() {
				cells = append(cells, text(cell.Children()))
			}
			rows = append(rows, strings.Join(cells, "\t"))
		}
		return strings.Join(rows, "\n")
	}
	return r.blocks(n.Children())
}

func (r *Renderer) paragraph(nodes []*block.Node) string {
	s := text(nodes)
	if r.Width <= 0 {
		return s
	}
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		lines = append(lines, wrap(l, r.Width)...)
	}
	return strings.Join(lines, "\n")
}

func text(nodes []*block.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		switch n.Kind {
		case block.RawKind, block.MacroKind:
			tracer().Debugf("plain: dropping %v", n)
		case block.VerbatimKind:
			b.WriteString(n.Text)
		case block.ImageKind:
			if alt := n.Param("alt"); alt != "" {
				b.WriteString("[" + alt + "]")
			}
		default:
			b.WriteString(block.TextOf(n))
		}
	}
	return b.String()
}

// wrap breaks a line at blanks so that no line is longer than width, unless
// a single word is.
func wrap(line string, width int) []string {
	var lines []string
	var cur strings.Builder
	for _, w := range strings.Fields(line) {
		if cur.Len() > 0 && cur.Len()+1+len(w) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(w)
	}
	return append(lines, cur.String())
}

func indent(s, first string) string {
	rest := strings.Repeat(" ", len(first))
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		switch {
		case i == 0:
			lines[i] = first + l
		case l != "":
			lines[i] = rest + l
		}
	}
	return strings.Join(lines, "\n")
}
