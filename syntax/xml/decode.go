package xml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/npillmayer/blockdom/block"
)

// ErrUnknownElement is returned when decoding meets an element which does
// not name a block kind.
var ErrUnknownElement = errors.New("unknown element")

// ErrMisplacedParameter is returned for parameter elements outside of a
// block and for elements inside a parameter.
var ErrMisplacedParameter = errors.New("misplaced parameter")

// ErrInvalidAttribute is returned for attribute values out of range, e.g. a
// negative level.
var ErrInvalidAttribute = errors.New("invalid attribute")

// Parser reads the XML encoding of a block tree.
type Parser struct{}

// NewParser creates a parser for the XML encoding.
func NewParser() *Parser {
	return &Parser{}
}

// Parse is part of interface syntax.Parser. If the input holds a single
// document element, this very element is the result. Any other content is
// wrapped into a new document.
func (p *Parser) Parse(r io.Reader) (*block.Node, error) {
	dec := xml.NewDecoder(r)
	b := block.NewBuilder()
	b.StartContainer()
	var open []*block.Node // nodes without children, parallel to the builder stack
	var param *strings.Builder
	var paramName string
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if param != nil {
				return nil, fmt.Errorf("xml: %w: element <%s> inside parameter %q, line %d",
					ErrMisplacedParameter, t.Name.Local, paramName, line(dec))
			}
			if t.Name.Local == paramElement {
				if len(open) == 0 {
					return nil, fmt.Errorf("xml: %w: outside of block, line %d", ErrMisplacedParameter, line(dec))
				}
				paramName, param = attr(t, "name"), &strings.Builder{}
				continue
			}
			n, err := fromStart(t)
			if err != nil {
				return nil, fmt.Errorf("xml: line %d: %w", line(dec), err)
			}
			open = append(open, n)
			b.StartContainer()
		case xml.CharData:
			if param != nil {
				param.Write(t)
			}
		case xml.EndElement:
			if param != nil {
				open[len(open)-1].SetParam(paramName, param.String())
				param = nil
				continue
			}
			children, err := b.EndContainer()
			if err != nil {
				return nil, fmt.Errorf("xml: %w", err)
			}
			n := open[len(open)-1]
			open = open[:len(open)-1]
			n.AddChildren(children...)
			if err := b.AppendLeaf(n); err != nil {
				return nil, fmt.Errorf("xml: %w", err)
			}
		}
	}
	root, err := b.Finalize()
	if err != nil {
		return nil, fmt.Errorf("xml: %w", err)
	}
	tracer().Debugf("xml: decoded %v", root)
	return root, nil
}

func fromStart(t xml.StartElement) (*block.Node, error) {
	kind, ok := block.KindByName(t.Name.Local)
	if !ok {
		return nil, fmt.Errorf("%w <%s>", ErrUnknownElement, t.Name.Local)
	}
	n := block.NewNode(kind)
	var ref block.ResourceRef
	hasRef := false
	for _, a := range t.Attr {
		switch a.Name.Local {
		case attrText:
			n.Text = a.Value
		case attrLevel:
			level, err := strconv.Atoi(a.Value)
			if err != nil {
				return nil, fmt.Errorf("%w: level of <%s>: %v", ErrInvalidAttribute, t.Name.Local, err)
			}
			if level < 0 {
				return nil, fmt.Errorf("%w: negative level %d of <%s>", ErrInvalidAttribute, level, t.Name.Local)
			}
			n.Level = level
		case attrFormat:
			n.Format = block.FormatByName(a.Value)
		case attrRefType:
			ref.Type, hasRef = block.RefTypeByName(a.Value), true
		case attrRef:
			ref.Reference, hasRef = a.Value, true
		case attrMacro:
			n.MacroID = a.Value
		case attrInline:
			n.Inline = a.Value == "true"
		case attrSyntax:
			n.Syntax = a.Value
		default:
			tracer().Debugf("xml: ignoring attribute %s of <%s>", a.Name.Local, t.Name.Local)
		}
	}
	if hasRef {
		n.Ref = &ref
	}
	return n, nil
}

func attr(t xml.StartElement, name string) string {
	for _, a := range t.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func line(dec *xml.Decoder) int {
	l, _ := dec.InputPos()
	return l
}
