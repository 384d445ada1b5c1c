package markdown

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/blockdom/block"
)

// Renderer writes a block tree as Markdown.
type Renderer struct{}

// NewRenderer creates a Markdown renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render is part of interface syntax.Renderer.
func (r *Renderer) Render(w io.Writer, root *block.Node) error {
	if root == nil {
		return nil
	}
	s := blocks(root.Children())
	if s != "" {
		s += "\n"
	}
	_, err := io.WriteString(w, s)
	return err
}

// isInline tells if a block is part of running text.
func isInline(n *block.Node) bool {
	switch n.Kind {
	case block.WordKind, block.SpaceKind, block.SpecialSymbolKind, block.NewLineKind,
		block.FormatKind, block.LinkKind, block.ImageKind, block.IDKind:
		return true
	case block.VerbatimKind, block.RawKind, block.MacroKind, block.MacroMarkerKind:
		return n.Inline
	}
	return false
}

// blocks renders a sequence of blocks, separated by empty lines. Runs of
// inline blocks are rendered as one paragraph.
func blocks(nodes []*block.Node) string {
	var parts []string
	var run []*block.Node
	flush := func() {
		if len(run) > 0 {
			parts = append(parts, inlines(run))
			run = nil
		}
	}
	for _, n := range nodes {
		if isInline(n) {
			run = append(run, n)
			continue
		}
		flush()
		if s := blockString(n); s != "" {
			parts = append(parts, s)
		}
	}
	flush()
	return strings.Join(parts, "\n\n")
}

func blockString(n *block.Node) string {
	switch n.Kind {
	case block.DocumentKind, block.GroupKind, block.SectionKind, block.MacroMarkerKind:
		return blocks(n.Children())
	case block.ParagraphKind:
		return inlines(n.Children())
	case block.HeaderKind:
		s := strings.Repeat("#", clamp(n.Level, 1, 6)) + " " + inlines(n.Children())
		if id := n.Param("id"); id != "" {
			s += " {#" + id + "}"
		}
		return s
	case block.HorizontalLineKind:
		return "---"
	case block.EmptyLinesKind:
		return strings.Repeat("\n", max(n.Level, 0))
	case block.VerbatimKind:
		return "```" + n.Param("language") + "\n" + n.Text + "\n```"
	case block.RawKind:
		if strings.HasPrefix(n.Syntax, "html") || strings.HasPrefix(n.Syntax, "markdown") {
			return n.Text
		}
		return ""
	case block.MacroKind:
		return macroCall(n)
	case block.QuotationKind, block.QuotationLineKind:
		return prefixLines(blocks(n.Children()), "> ", "> ")
	case block.BulletedListKind, block.NumberedListKind:
		return list(n)
	case block.DefinitionListKind:
		var parts []string
		for _, ch := range n.Children() {
			if ch.Kind == block.DefinitionTermKind {
				parts = append(parts, inlines(ch.Children()))
			} else {
				parts = append(parts, prefixLines(blocks(ch.Children()), ": ", "  "))
			}
		}
		return strings.Join(parts, "\n")
	case block.TableKind:
		return table(n)
	}
	return blocks(n.Children())
}

func list(n *block.Node) string {
	var items []string
	num := 1
	if s, err := strconv.Atoi(n.Param("start")); err == nil {
		num = s
	}
	for _, item := range n.Children() {
		bullet := "- "
		if n.Kind == block.NumberedListKind {
			bullet = strconv.Itoa(num) + ". "
			num++
		}
		content := blocks(item.Children())
		items = append(items, prefixLines(content, bullet, strings.Repeat(" ", len(bullet))))
	}
	return strings.Join(items, "\n")
}

func table(n *block.Node) string {
	var lines []string
	for i, row := range n.Children() {
		var cells []string
		for _, cell := range row.Children() {
			cells = append(cells, strings.ReplaceAll(inlines(cell.Children()), "|", "\\|"))
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		if i == 0 {
			sep := make([]string, len(cells))
			for j := range sep {
				sep[j] = "---"
			}
			lines = append(lines, "| "+strings.Join(sep, " | ")+" |")
		}
	}
	return strings.Join(lines, "\n")
}

func inlines(nodes []*block.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(inlineString(n))
	}
	return b.String()
}

var formatMarkup = map[block.Format][2]string{
	block.Bold:          {"**", "**"},
	block.Italic:        {"_", "_"},
	block.Strikethrough: {"~~", "~~"},
	block.Monospace:     {"`", "`"},
	block.Underline:     {"<ins>", "</ins>"},
	block.Superscript:   {"<sup>", "</sup>"},
	block.Subscript:     {"<sub>", "</sub>"},
}

func inlineString(n *block.Node) string {
	switch n.Kind {
	case block.WordKind:
		return n.Text
	case block.SpaceKind:
		return " "
	case block.SpecialSymbolKind:
		if strings.ContainsAny(n.Text, "*_[]`\\<#") {
			return "\\" + n.Text
		}
		return n.Text
	case block.NewLineKind:
		return "\\\n"
	case block.FormatKind:
		m := formatMarkup[n.Format]
		return m[0] + inlines(n.Children()) + m[1]
	case block.LinkKind:
		ref := reference(n.Ref)
		if n.ChildCount() == 0 {
			return "<" + ref + ">"
		}
		return "[" + inlines(n.Children()) + "](" + ref + title(n) + ")"
	case block.ImageKind:
		return "![" + n.Param("alt") + "](" + reference(n.Ref) + title(n) + ")"
	case block.IDKind:
		return `<a id="` + n.Text + `"></a>`
	case block.VerbatimKind:
		return "`" + n.Text + "`"
	case block.RawKind:
		return n.Text
	case block.MacroKind:
		return macroCall(n)
	}
	if isInline(n) || n.ChildCount() > 0 {
		return inlines(n.Children())
	}
	return ""
}

func reference(ref *block.ResourceRef) string {
	if ref == nil {
		return ""
	}
	switch ref.Type {
	case block.AnchorRef:
		return "#" + ref.Reference
	case block.MailtoRef:
		return "mailto:" + ref.Reference
	}
	return ref.Reference
}

func title(n *block.Node) string {
	if t := n.Param("title"); t != "" {
		return fmt.Sprintf(" %q", t)
	}
	return ""
}

func macroCall(n *block.Node) string {
	var b strings.Builder
	b.WriteString("{{" + n.MacroID)
	for _, k := range n.ParamNames() {
		fmt.Fprintf(&b, ` %s="%s"`, k, n.Param(k))
	}
	if n.Text == "" {
		b.WriteString("/}}")
		return b.String()
	}
	b.WriteString("}}" + n.Text + "{{/" + n.MacroID + "}}")
	return b.String()
}

func prefixLines(s, first, rest string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		switch {
		case i == 0:
			lines[i] = first + l
		case l == "":
			lines[i] = strings.TrimRight(rest, " ")
		default:
			lines[i] = rest + l
		}
	}
	return strings.Join(lines, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
