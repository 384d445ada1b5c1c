package xhtml

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/blockdom/block"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Renderer writes a block tree as an XHTML fragment. The tree is translated
// into an html.Node tree first, which is then serialized by html.Render.
type Renderer struct{}

// NewRenderer creates an XHTML renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render is part of interface syntax.Renderer.
func (r *Renderer) Render(w io.Writer, root *block.Node) error {
	if root == nil {
		return nil
	}
	frag := &html.Node{Type: html.DocumentNode}
	appendAll(frag, root.Children())
	for c := frag.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

// ToHTML translates a block tree into an HTML node tree (without html and
// body elements).
func ToHTML(root *block.Node) *html.Node {
	frag := &html.Node{Type: html.DocumentNode}
	if root != nil {
		appendAll(frag, root.Children())
	}
	return frag
}

func appendAll(parent *html.Node, blocks []*block.Node) {
	for _, b := range blocks {
		for _, h := range toHTML(b) {
			parent.AppendChild(h)
		}
	}
}

func element(tag string, b *block.Node, children ...*block.Node) *html.Node {
	e := &html.Node{Type: html.ElementNode, Data: tag, DataAtom: atom.Lookup([]byte(tag))}
	for _, k := range b.ParamNames() {
		e.Attr = append(e.Attr, html.Attribute{Key: k, Val: b.Param(k)})
	}
	appendAll(e, children)
	return e
}

func setAttr(e *html.Node, key, val string) {
	for i := range e.Attr {
		if e.Attr[i].Key == key {
			e.Attr[i].Val = val
			return
		}
	}
	e.Attr = append([]html.Attribute{{Key: key, Val: val}}, e.Attr...)
}

func text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

var formatTags = map[block.Format]string{
	block.Bold: "strong", block.Italic: "em", block.Underline: "ins",
	block.Strikethrough: "del", block.Monospace: "tt", block.Superscript: "sup",
	block.Subscript: "sub",
}

func toHTML(b *block.Node) []*html.Node {
	switch b.Kind {
	case block.DocumentKind:
		var nodes []*html.Node
		for _, ch := range b.Children() {
			nodes = append(nodes, toHTML(ch)...)
		}
		return nodes
	case block.GroupKind:
		return one(element("div", b, b.Children()...))
	case block.SectionKind:
		return one(element("section", b, b.Children()...))
	case block.ParagraphKind:
		return one(element("p", b, b.Children()...))
	case block.HeaderKind:
		level := b.Level
		if level < 1 || level > 6 {
			level = 1
		}
		return one(element(fmt.Sprintf("h%d", level), b, b.Children()...))
	case block.WordKind, block.SpecialSymbolKind:
		return one(text(b.Text))
	case block.SpaceKind:
		return one(text(" "))
	case block.NewLineKind:
		return one(element("br", b))
	case block.EmptyLinesKind:
		return nil
	case block.MacroKind: // not executed
		return one(&html.Node{Type: html.CommentNode, Data: " macro " + b.MacroID + " "})
	case block.FormatKind:
		tag, ok := formatTags[b.Format]
		if !ok {
			tag = "span"
		}
		return one(element(tag, b, b.Children()...))
	case block.LinkKind:
		a := element("a", b, b.Children()...)
		setAttr(a, "href", href(b.Ref))
		if b.ChildCount() == 0 && b.Ref != nil {
			a.AppendChild(text(b.Ref.Reference))
		}
		return one(a)
	case block.ImageKind:
		img := element("img", b)
		setAttr(img, "src", href(b.Ref))
		return one(img)
	case block.IDKind:
		a := element("a", b)
		setAttr(a, "id", b.Text)
		return one(a)
	case block.BulletedListKind:
		return one(element("ul", b, b.Children()...))
	case block.NumberedListKind:
		return one(element("ol", b, b.Children()...))
	case block.ListItemKind:
		return one(element("li", b, b.Children()...))
	case block.DefinitionListKind:
		return one(element("dl", b, b.Children()...))
	case block.DefinitionTermKind:
		return one(element("dt", b, b.Children()...))
	case block.DefinitionDescriptionKind:
		return one(element("dd", b, b.Children()...))
	case block.QuotationKind:
		return one(element("blockquote", b, b.Children()...))
	case block.QuotationLineKind:
		return one(element("p", b, b.Children()...))
	case block.TableKind:
		return one(element("table", b, b.Children()...))
	case block.TableRowKind:
		return one(element("tr", b, b.Children()...))
	case block.TableHeadCellKind:
		return one(element("th", b, b.Children()...))
	case block.TableCellKind:
		return one(element("td", b, b.Children()...))
	case block.HorizontalLineKind:
		return one(element("hr", b))
	case block.VerbatimKind:
		if b.Inline {
			code := element("code", b)
			code.AppendChild(text(b.Text))
			return one(code)
		}
		pre := element("pre", b)
		pre.AppendChild(text(b.Text))
		return one(pre)
	case block.RawKind:
		if strings.HasPrefix(b.Syntax, "html") || strings.HasPrefix(b.Syntax, "xhtml") {
			return one(&html.Node{Type: html.RawNode, Data: b.Text})
		}
		return nil
	case block.MacroMarkerKind:
		tag := "div"
		if b.Inline {
			tag = "span"
		}
		e := element(tag, b, b.Children()...)
		setAttr(e, "data-macro", b.MacroID)
		return one(e)
	}
	tracer().Debugf("xhtml: no element for %v", b)
	return nil
}

func one(n *html.Node) []*html.Node {
	return []*html.Node{n}
}

func href(ref *block.ResourceRef) string {
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
