package xml

import (
	"encoding/xml"
	"io"
	"strconv"

	"github.com/npillmayer/blockdom/block"
)

const paramElement = "p"

// Attribute names for typed fields of blocks.
const (
	attrText    = "text"
	attrLevel   = "level"
	attrFormat  = "format"
	attrRefType = "reftype"
	attrRef     = "ref"
	attrMacro   = "macro"
	attrInline  = "inline"
	attrSyntax  = "syntax"
)

// Renderer writes block trees in XML encoding.
type Renderer struct {
	Indent string // indentation per level; no line breaks if empty
}

// NewRenderer creates an XML renderer indenting by two blanks.
func NewRenderer() *Renderer {
	return &Renderer{Indent: "  "}
}

// Render is part of interface syntax.Renderer.
func (r *Renderer) Render(w io.Writer, root *block.Node) error {
	if root == nil {
		return nil
	}
	enc := xml.NewEncoder(w)
	if r.Indent != "" {
		enc.Indent("", r.Indent)
	}
	if err := encode(enc, root); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return err
	}
	if r.Indent != "" {
		_, err := io.WriteString(w, "\n")
		return err
	}
	return nil
}

func encode(enc *xml.Encoder, n *block.Node) error {
	start := xml.StartElement{Name: xml.Name{Local: n.Kind.String()}, Attr: attributes(n)}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, k := range n.ParamNames() {
		p := xml.StartElement{
			Name: xml.Name{Local: paramElement},
			Attr: []xml.Attr{{Name: xml.Name{Local: "name"}, Value: k}},
		}
		if err := enc.EncodeElement(n.Param(k), p); err != nil {
			return err
		}
	}
	for _, ch := range n.Children() {
		if err := encode(enc, ch); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}

func attributes(n *block.Node) []xml.Attr {
	var attrs []xml.Attr
	add := func(name, value string) {
		attrs = append(attrs, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	}
	if n.Text != "" {
		add(attrText, n.Text)
	}
	if n.Level != 0 {
		add(attrLevel, strconv.Itoa(n.Level))
	}
	if n.Format != block.NoFormat {
		add(attrFormat, n.Format.String())
	}
	if n.Ref != nil {
		add(attrRefType, n.Ref.Type.String())
		add(attrRef, n.Ref.Reference)
	}
	if n.MacroID != "" {
		add(attrMacro, n.MacroID)
	}
	if n.Inline {
		add(attrInline, "true")
	}
	if n.Syntax != "" {
		add(attrSyntax, n.Syntax)
	}
	return attrs
}
