package block

import (
	"strings"
	"unicode"
)

// NewDocument creates a root block.
func NewDocument(children ...*Node) *Node {
	return NewNode(DocumentKind, children...)
}

// NewGroup creates a group block, which groups children without adding semantics.
func NewGroup(children ...*Node) *Node {
	return NewNode(GroupKind, children...)
}

// NewSection creates a section block.
func NewSection(children ...*Node) *Node {
	return NewNode(SectionKind, children...)
}

// NewParagraph creates a paragraph block.
func NewParagraph(children ...*Node) *Node {
	return NewNode(ParagraphKind, children...)
}

// NewHeader creates a header block of a given level (1…6).
func NewHeader(level int, children ...*Node) *Node {
	n := NewNode(HeaderKind, children...)
	n.Level = level
	return n
}

// NewWord creates a word leaf.
func NewWord(text string) *Node {
	return &Node{Kind: WordKind, Text: text}
}

// NewSpace creates a space leaf.
func NewSpace() *Node {
	return &Node{Kind: SpaceKind}
}

// NewSpecialSymbol creates a leaf for a single punctuation symbol.
func NewSpecialSymbol(symbol string) *Node {
	return &Node{Kind: SpecialSymbolKind, Text: symbol}
}

// NewNewLine creates a line break leaf.
func NewNewLine() *Node {
	return &Node{Kind: NewLineKind}
}

// NewEmptyLines creates a leaf for a number of empty lines.
func NewEmptyLines(count int) *Node {
	return &Node{Kind: EmptyLinesKind, Level: count}
}

// NewFormat creates a block applying a text format to its children.
func NewFormat(f Format, children ...*Node) *Node {
	n := NewNode(FormatKind, children...)
	n.Format = f
	return n
}

// NewLink creates a link block. Children are the link label; a link without
// children is labeled by its reference.
func NewLink(ref ResourceRef, children ...*Node) *Node {
	n := NewNode(LinkKind, children...)
	n.Ref = &ref
	return n
}

// NewImage creates an image leaf.
func NewImage(ref ResourceRef) *Node {
	return &Node{Kind: ImageKind, Ref: &ref}
}

// NewID creates an anchor leaf with a given name.
func NewID(name string) *Node {
	return &Node{Kind: IDKind, Text: name}
}

// NewBulletedList creates a bulleted list block.
func NewBulletedList(items ...*Node) *Node {
	return NewNode(BulletedListKind, items...)
}

// NewNumberedList creates a numbered list block.
func NewNumberedList(items ...*Node) *Node {
	return NewNode(NumberedListKind, items...)
}

// NewListItem creates a list item block.
func NewListItem(children ...*Node) *Node {
	return NewNode(ListItemKind, children...)
}

// NewQuotation creates a quotation block.
func NewQuotation(children ...*Node) *Node {
	return NewNode(QuotationKind, children...)
}

// NewTable creates a table block.
func NewTable(rows ...*Node) *Node {
	return NewNode(TableKind, rows...)
}

// NewTableRow creates a table row block.
func NewTableRow(cells ...*Node) *Node {
	return NewNode(TableRowKind, cells...)
}

// NewTableCell creates a table cell block. Head cells are cells.
func NewTableCell(head bool, children ...*Node) *Node {
	if head {
		return NewNode(TableHeadCellKind, children...)
	}
	return NewNode(TableCellKind, children...)
}

// NewHorizontalLine creates a horizontal rule leaf.
func NewHorizontalLine() *Node {
	return &Node{Kind: HorizontalLineKind}
}

// NewVerbatim creates a leaf holding text which must not be interpreted.
func NewVerbatim(text string, inline bool) *Node {
	return &Node{Kind: VerbatimKind, Text: text, Inline: inline}
}

// NewRaw creates a leaf holding content in a given target syntax, to be passed
// through by renderers of that syntax.
func NewRaw(text, syntax string) *Node {
	return &Node{Kind: RawKind, Text: text, Syntax: syntax}
}

// NewMacro creates a leaf for a macro call which has not been executed yet.
func NewMacro(id string, params map[string]string, content string, inline bool) *Node {
	n := &Node{Kind: MacroKind, MacroID: id, Text: content, Inline: inline}
	for k, v := range params {
		n.SetParam(k, v)
	}
	return n
}

// NewMacroMarker creates a block wrapping the result of an executed macro.
// It keeps the id, parameters and content of the macro call.
func NewMacroMarker(id string, params map[string]string, content string, inline bool,
	children ...*Node) *Node {
	//
	n := NewNode(MacroMarkerKind, children...)
	n.MacroID, n.Text, n.Inline = id, content, inline
	for k, v := range params {
		n.SetParam(k, v)
	}
	return n
}

// --- Text helpers ------------------------------------------------------------

const specialSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// Words splits plain text into word, space, special symbol and newline leaves.
// Runs of blanks collapse into a single space.
func Words(text string) []*Node {
	var nodes []*Node
	var word strings.Builder
	flush := func() {
		if word.Len() > 0 {
			nodes = append(nodes, NewWord(word.String()))
			word.Reset()
		}
	}
	for _, r := range text {
		switch {
		case r == '\n':
			flush()
			nodes = append(nodes, NewNewLine())
		case unicode.IsSpace(r):
			flush()
			if len(nodes) == 0 || nodes[len(nodes)-1].Kind != SpaceKind {
				nodes = append(nodes, NewSpace())
			}
		case r < unicode.MaxASCII && strings.ContainsRune(specialSymbols, r):
			flush()
			nodes = append(nodes, NewSpecialSymbol(string(r)))
		default:
			word.WriteRune(r)
		}
	}
	flush()
	return nodes
}

// TextOf returns the plain text of the subtree rooted at n.
func TextOf(n *Node) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	for _, d := range FindAll(n, DescendantOrSelf, nil) {
		switch d.Kind {
		case WordKind, SpecialSymbolKind, VerbatimKind:
			b.WriteString(d.Text)
		case SpaceKind:
			b.WriteByte(' ')
		case NewLineKind:
			b.WriteByte('\n')
		case LinkKind:
			if d.ChildCount() == 0 && d.Ref != nil {
				b.WriteString(d.Ref.Reference)
			}
		}
	}
	return b.String()
}
