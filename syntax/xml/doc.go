/*
Package xml is a lossless XML encoding of block trees.

Every block is written as an element named after its kind. Typed fields are
written as attributes, parameters as <p name="..."> child elements preceding
the child blocks:

	<document>
	  <header level="1">
	    <p name="id">intro</p>
	    <word text="Intro"></word>
	  </header>
	</document>

Decoding rebuilds the tree with a block.Builder.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package xml

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockdom.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("blockdom.syntax")
}
