/*
Package syntax defines the interfaces between the block tree and concrete
syntaxes. A Parser reads text in some syntax and produces a block tree,
a Renderer writes a block tree out in some syntax.

Concrete syntaxes live in sub-packages.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package syntax

import (
	"errors"
	"io"
	"strings"

	"github.com/npillmayer/blockdom/block"
)

// ErrUnknownSyntax is returned for syntax identifiers without parser or renderer.
var ErrUnknownSyntax = errors.New("unknown syntax")

// Syntax identifiers, in the form "name/version".
const (
	Markdown = "markdown/1.0"
	XHTML    = "xhtml/1.0"
	XML      = "xml/1.0"
	Plain    = "plain/1.0"
)

// Parser reads input in a syntax and produces a block tree.
type Parser interface {
	Parse(r io.Reader) (*block.Node, error)
}

// Renderer writes a block tree in a syntax.
type Renderer interface {
	Render(w io.Writer, root *block.Node) error
}

// Normalize maps short names and file extensions ("md", ".html") to syntax
// identifiers. Unknown names are returned unchanged.
func Normalize(name string) string {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(name)), ".") {
	case "markdown", "md", Markdown:
		return Markdown
	case "xhtml", "html", "htm", XHTML:
		return XHTML
	case "xml", XML:
		return XML
	case "plain", "txt", "text", Plain:
		return Plain
	}
	return name
}
