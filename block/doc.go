/*
Package block implements the document tree of blockdom: a tree of blocks,
each representing one semantic unit of rich text (a paragraph, a word, a link,
a list, a header, a macro marker, ...).

Every syntax parser produces a tree of this type, every transformation
(macro execution, table of contents, footnotes, link checking) rewrites it,
and every renderer walks it to produce output in a target syntax.

Building

Parsers are event-driven. They call a Builder whenever a container starts,
a container ends or a leaf has to be appended:

   b := block.NewBuilder()
   b.StartContainer()               // outermost list of blocks
   b.StartContainer()               // children of a paragraph
   b.AppendLeaf(block.NewWord("Hello"))
   children, _ := b.EndContainer()
   b.AppendLeaf(block.NewParagraph(children...))
   root, err := b.Finalize()        // a document block

The builder checks the balance of start and end calls only. Unbalanced
event streams result in a *StructuralError.

Navigation

Clients query the tree along an axis, similar in concept to XPath,
filtering nodes with a Matcher:

   headers := block.FindAll(root, block.Descendant, block.MatchKind(block.HeaderKind))
   section := block.FindFirst(word, block.Ancestor, block.MatchKind(block.SectionKind))

Not finding anything is not an error: FindAll returns an empty slice and
FindFirst returns nil.

Concurrency

Trees are not safe for concurrent mutation. A transformation pass owns the
tree while it runs; concurrent readers are fine as long as no one writes.
Stateful matchers (counters, extractors) have to be created fresh for
every query.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package block

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockdom.block'.
func tracer() tracing.Trace {
	return tracing.Select("blockdom.block")
}

func assertThat(that bool, msg string, msgargs ...interface{}) {
	if !that {
		msg = fmt.Sprintf("blockdom.block: "+msg, msgargs...)
		panic(msg)
	}
}
