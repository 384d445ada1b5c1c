package markdown

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/npillmayer/blockdom/block"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Parser reads Markdown (CommonMark plus GFM tables and strikethrough) with
// goldmark and drives a block.Builder from goldmark's AST.
//
// Macro calls are written inline as {{id k="v"/}} or {{id k="v"}}content{{/id}}.
// A macro call which is the only content of a paragraph becomes a block macro.
type Parser struct {
	md goldmark.Markdown
}

// NewParser creates a Markdown parser.
func NewParser() *Parser {
	md := goldmark.New(
		goldmark.WithExtensions(extension.Table, extension.Strikethrough),
		goldmark.WithParserOptions(parser.WithAttribute()),
	)
	return &Parser{md: md}
}

// Parse is part of interface syntax.Parser.
func (p *Parser) Parse(r io.Reader) (*block.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	doc := p.md.Parser().Parse(text.NewReader(src))
	b := block.NewBuilder()
	b.StartContainer()
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			b.StartContainer()
			return ast.WalkContinue, nil
		}
		children, err := b.EndContainer()
		if err != nil {
			return ast.WalkStop, err
		}
		for _, blk := range convert(n, children, src) {
			if err := b.AppendLeaf(blk); err != nil {
				return ast.WalkStop, err
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown: %w", err)
	}
	root, err := b.Finalize()
	if err != nil {
		return nil, fmt.Errorf("markdown: %w", err)
	}
	tracer().Debugf("markdown: parsed %d bytes into %v", len(src), root)
	return root, nil
}

// convert creates the blocks for a goldmark node whose children have already
// been converted. Unknown containers are dissolved into their children.
func convert(n ast.Node, children []*block.Node, src []byte) []*block.Node {
	switch n := n.(type) {
	case *ast.Document:
		return one(block.NewDocument(children...))
	case *ast.Paragraph:
		if len(children) == 1 && children[0].Kind == block.MacroKind {
			children[0].Inline = false
			return children
		}
		return one(block.NewParagraph(children...))
	case *ast.TextBlock:
		return children
	case *ast.Heading:
		h := block.NewHeader(n.Level, children...)
		if id, ok := n.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				h.SetParam("id", string(b))
			}
		}
		return one(h)
	case *ast.ThematicBreak:
		return one(block.NewHorizontalLine())
	case *ast.CodeBlock:
		return one(block.NewVerbatim(lines(n, src), false))
	case *ast.FencedCodeBlock:
		v := block.NewVerbatim(lines(n, src), false)
		if lang := n.Language(src); len(lang) > 0 {
			v.SetParam("language", string(lang))
		}
		return one(v)
	case *ast.HTMLBlock:
		s := lines(n, src)
		if n.HasClosure() {
			s += string(n.ClosureLine.Value(src))
		}
		return one(block.NewRaw(s, "html/5.0"))
	case *ast.Blockquote:
		return one(block.NewQuotation(children...))
	case *ast.List:
		if n.IsOrdered() {
			l := block.NewNumberedList(children...)
			if n.Start > 1 {
				l.SetParam("start", fmt.Sprint(n.Start))
			}
			return one(l)
		}
		return one(block.NewBulletedList(children...))
	case *ast.ListItem:
		return one(block.NewListItem(children...))
	case *ast.Text:
		nodes := inline(string(n.Segment.Value(src)))
		if n.HardLineBreak() {
			nodes = append(nodes, block.NewNewLine())
		} else if n.SoftLineBreak() {
			nodes = append(nodes, block.NewSpace())
		}
		return nodes
	case *ast.String:
		return inline(string(n.Value))
	case *ast.CodeSpan:
		return one(block.NewVerbatim(block.TextOf(block.NewGroup(children...)), true))
	case *ast.Emphasis:
		if n.Level >= 2 {
			return one(block.NewFormat(block.Bold, children...))
		}
		return one(block.NewFormat(block.Italic, children...))
	case *ast.Link:
		link := block.NewLink(block.ParseResourceRef(string(n.Destination)), children...)
		if len(n.Title) > 0 {
			link.SetParam("title", string(n.Title))
		}
		return one(link)
	case *ast.AutoLink:
		url := string(n.URL(src))
		if n.AutoLinkType == ast.AutoLinkEmail {
			return one(block.NewLink(block.ResourceRef{Type: block.MailtoRef, Reference: url}))
		}
		return one(block.NewLink(block.ParseResourceRef(url)))
	case *ast.Image:
		img := block.NewImage(block.ParseResourceRef(string(n.Destination)))
		if alt := block.TextOf(block.NewGroup(children...)); alt != "" {
			img.SetParam("alt", alt)
		}
		if len(n.Title) > 0 {
			img.SetParam("title", string(n.Title))
		}
		return one(img)
	case *ast.RawHTML:
		var b strings.Builder
		for i := 0; i < n.Segments.Len(); i++ {
			seg := n.Segments.At(i)
			b.Write(seg.Value(src))
		}
		raw := block.NewRaw(b.String(), "html/5.0")
		raw.Inline = true
		return one(raw)
	case *extast.Table:
		return one(block.NewTable(children...))
	case *extast.TableHeader, *extast.TableRow:
		return one(block.NewTableRow(children...))
	case *extast.TableCell:
		_, head := n.Parent().(*extast.TableHeader)
		return one(block.NewTableCell(head, children...))
	case *extast.Strikethrough:
		return one(block.NewFormat(block.Strikethrough, children...))
	}
	tracer().Debugf("markdown: dissolving unsupported node %s", n.Kind())
	return children
}

func one(n *block.Node) []*block.Node {
	return []*block.Node{n}
}

func lines(n ast.Node, src []byte) string {
	var b strings.Builder
	l := n.Lines()
	for i := 0; i < l.Len(); i++ {
		line := l.At(i)
		b.Write(line.Value(src))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// --- Macro calls -------------------------------------------------------------

var (
	macroOpen  = regexp.MustCompile(`\{\{([A-Za-z][\w-]*)((?:\s+[\w-]+="[^"]*")*)\s*(/?)\}\}`)
	macroParam = regexp.MustCompile(`([\w-]+)="([^"]*)"`)
)

// inline splits text into words and inline macro calls.
func inline(s string) []*block.Node {
	var nodes []*block.Node
	for s != "" {
		loc := macroOpen.FindStringSubmatchIndex(s)
		if loc == nil {
			break
		}
		id := s[loc[2]:loc[3]]
		params := parseParams(s[loc[4]:loc[5]])
		end, content := loc[1], ""
		if loc[6] == loc[7] { // not self-closing: look for {{/id}}
			closing := "{{/" + id + "}}"
			i := strings.Index(s[loc[1]:], closing)
			if i < 0 {
				nodes = append(nodes, block.Words(s[:loc[1]])...)
				s = s[loc[1]:]
				continue
			}
			content = s[loc[1] : loc[1]+i]
			end = loc[1] + i + len(closing)
		}
		nodes = append(nodes, block.Words(s[:loc[0]])...)
		nodes = append(nodes, block.NewMacro(id, params, content, true))
		s = s[end:]
	}
	return append(nodes, block.Words(s)...)
}

func parseParams(s string) map[string]string {
	var params map[string]string
	for _, m := range macroParam.FindAllStringSubmatch(s, -1) {
		if params == nil {
			params = make(map[string]string)
		}
		params[m[1]] = m[2]
	}
	return params
}
