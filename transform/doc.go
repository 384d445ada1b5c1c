/*
Package transform runs tree transformations on block trees.

Transformations are applied in the order of ascending priority. Transformations
of equal priority run in the order they have been handed to Run. All state a
transformation needs is passed explicitly through a Context, there is no
package-global state.

Sub-packages implement transformations: macro execution, tables of contents,
footnotes and link checking.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package transform

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockdom.transform'.
func tracer() tracing.Trace {
	return tracing.Select("blockdom.transform")
}
