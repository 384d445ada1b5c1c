/*
Package markdown reads and writes Markdown.

Reading is done by goldmark (https://github.com/yuin/goldmark), whose AST
is walked once and translated into builder events. Writing is a direct
recursive walk of the block tree.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package markdown

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockdom.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("blockdom.syntax")
}
