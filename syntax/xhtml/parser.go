package xhtml

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/blockdom/block"
	"golang.org/x/net/html"
)

// Parser reads (X)HTML fragments or documents. It uses the tokenizer of
// golang.org/x/net/html and translates tag events into builder events.
//
// The parser is tolerant: end tags without a matching open element are
// dropped, and elements left open are closed when an enclosing element ends.
type Parser struct{}

// NewParser creates an XHTML parser.
func NewParser() *Parser {
	return &Parser{}
}

type openElement struct {
	tag   string
	attrs map[string]string
}

type parseState struct {
	b     *block.Builder
	open  []openElement // parallel to the builder's stack, minus the outermost container
	skip  int       // depth inside <head>, <script>, <style>
	inPre int
}

// Parse is part of interface syntax.Parser.
func (p *Parser) Parse(r io.Reader) (*block.Node, error) {
	st := &parseState{b: block.NewBuilder()}
	st.b.StartContainer()
	z := html.NewTokenizer(r)
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("xhtml: %w", err)
			}
			break
		}
		var err error
		switch tt {
		case html.StartTagToken:
			err = st.start(z.Token(), false)
		case html.SelfClosingTagToken:
			err = st.start(z.Token(), true)
		case html.EndTagToken:
			err = st.end(z.Token().Data)
		case html.TextToken:
			err = st.text(string(z.Text()))
		}
		if err != nil {
			return nil, fmt.Errorf("xhtml: %w", err)
		}
	}
	for len(st.open) > 0 { // close elements left open
		if err := st.closeTop(); err != nil {
			return nil, fmt.Errorf("xhtml: %w", err)
		}
	}
	root, err := st.b.Finalize()
	if err != nil {
		return nil, fmt.Errorf("xhtml: %w", err)
	}
	return root, nil
}

var voidElements = map[string]bool{
	"br": true, "hr": true, "img": true, "input": true, "meta": true, "link": true,
	"area": true, "base": true, "col": true, "embed": true, "source": true, "wbr": true,
}

var skippedElements = map[string]bool{"head": true, "script": true, "style": true, "template": true}

func (st *parseState) start(tok html.Token, selfClosing bool) error {
	el := openElement{tag: tok.Data, attrs: make(map[string]string, len(tok.Attr))}
	for _, a := range tok.Attr {
		el.attrs[a.Key] = a.Val
	}
	if voidElements[el.tag] || (selfClosing && st.skip == 0) {
		if st.skip > 0 {
			return nil
		}
		return st.appendAll(convert(el, nil))
	}
	if skippedElements[el.tag] || st.skip > 0 {
		st.skip++
		st.open = append(st.open, el)
		return nil
	}
	if el.tag == "pre" {
		st.inPre++
	}
	st.open = append(st.open, el)
	st.b.StartContainer()
	return nil
}

func (st *parseState) end(tag string) error {
	i := len(st.open) - 1
	for ; i >= 0; i-- {
		if st.open[i].tag == tag {
			break
		}
	}
	if i < 0 {
		tracer().Debugf("xhtml: dropping stray end tag </%s>", tag)
		return nil
	}
	for len(st.open) > i {
		if err := st.closeTop(); err != nil {
			return err
		}
	}
	return nil
}

func (st *parseState) closeTop() error {
	el := st.open[len(st.open)-1]
	st.open = st.open[:len(st.open)-1]
	if st.skip > 0 {
		st.skip--
		return nil
	}
	children, err := st.b.EndContainer()
	if err != nil {
		return err
	}
	if el.tag == "pre" {
		st.inPre--
	}
	return st.appendAll(st.convertIn(el, children))
}

func (st *parseState) appendAll(nodes []*block.Node) error {
	for _, n := range nodes {
		if err := st.b.AppendLeaf(n); err != nil {
			return err
		}
	}
	return nil
}

func (st *parseState) text(s string) error {
	if st.skip > 0 {
		return nil
	}
	if st.inPre > 0 {
		return st.b.AppendLeaf(block.NewVerbatim(s, true))
	}
	if strings.TrimSpace(s) == "" && !st.inInlineContext() {
		return nil
	}
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
	return st.appendAll(block.Words(s))
}

var blockContainers = map[string]bool{
	"html": true, "body": true, "div": true, "section": true, "article": true,
	"ul": true, "ol": true, "dl": true, "table": true, "thead": true, "tbody": true,
	"tfoot": true, "tr": true, "blockquote": true,
}

func (st *parseState) inInlineContext() bool {
	if len(st.open) == 0 {
		return false
	}
	return !blockContainers[st.open[len(st.open)-1].tag]
}

// convertIn handles elements whose translation depends on the parse state.
func (st *parseState) convertIn(el openElement, children []*block.Node) []*block.Node {
	if el.tag == "code" && st.inPre > 0 {
		return children
	}
	return convert(el, children)
}

var formats = map[string]block.Format{
	"b": block.Bold, "strong": block.Bold, "i": block.Italic, "em": block.Italic,
	"u": block.Underline, "ins": block.Underline, "s": block.Strikethrough,
	"del": block.Strikethrough, "strike": block.Strikethrough, "tt": block.Monospace,
	"sup": block.Superscript, "sub": block.Subscript,
}

var headers = map[string]int{"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6}

// convert creates the blocks for a closed element. Attributes which are not
// consumed by the conversion become parameters.
func convert(el openElement, children []*block.Node) []*block.Node {
	var n *block.Node
	consume := func(keys ...string) {
		for _, k := range keys {
			delete(el.attrs, k)
		}
	}
	if f, ok := formats[el.tag]; ok {
		n = block.NewFormat(f, children...)
	} else if level, ok := headers[el.tag]; ok {
		n = block.NewHeader(level, children...)
	} else {
		switch el.tag {
		case "p":
			n = block.NewParagraph(children...)
		case "div", "span":
			if id, ok := el.attrs["data-macro"]; ok {
				consume("data-macro")
				n = block.NewMacroMarker(id, nil, "", el.tag == "span", children...)
			} else if el.tag == "div" {
				n = block.NewGroup(children...)
			} else {
				return children
			}
		case "section", "article":
			n = block.NewSection(children...)
		case "a":
			href, ok := el.attrs["href"]
			if !ok {
				name := el.attrs["id"]
				if name == "" {
					name = el.attrs["name"]
				}
				if name == "" {
					return children
				}
				return append([]*block.Node{block.NewID(name)}, children...)
			}
			consume("href")
			n = block.NewLink(block.ParseResourceRef(href), children...)
		case "img":
			consume("src")
			n = block.NewImage(block.ParseResourceRef(el.attrs["src"]))
		case "br":
			return []*block.Node{block.NewNewLine()}
		case "hr":
			n = block.NewHorizontalLine()
		case "ul":
			n = block.NewBulletedList(children...)
		case "ol":
			n = block.NewNumberedList(children...)
		case "li":
			n = block.NewListItem(children...)
		case "dl":
			n = block.NewNode(block.DefinitionListKind, children...)
		case "dt":
			n = block.NewNode(block.DefinitionTermKind, children...)
		case "dd":
			n = block.NewNode(block.DefinitionDescriptionKind, children...)
		case "blockquote":
			n = block.NewQuotation(children...)
		case "table":
			n = block.NewTable(children...)
		case "tr":
			n = block.NewTableRow(children...)
		case "th":
			n = block.NewTableCell(true, children...)
		case "td":
			n = block.NewTableCell(false, children...)
		case "pre":
			var text strings.Builder
			for _, ch := range children {
				text.WriteString(ch.Text)
			}
			n = block.NewVerbatim(strings.TrimSuffix(text.String(), "\n"), false)
		case "code":
			n = block.NewVerbatim(block.TextOf(block.NewGroup(children...)), true)
		default:
			return children // html, body, thead, tbody, unknown elements
		}
	}
	for k, v := range el.attrs {
		n.SetParam(k, v)
	}
	return []*block.Node{n}
}
