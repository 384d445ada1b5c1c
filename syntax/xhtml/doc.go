/*
Package xhtml reads and writes XHTML fragments, based on golang.org/x/net/html.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package xhtml

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'blockdom.syntax'.
func tracer() tracing.Trace {
	return tracing.Select("blockdom.syntax")
}
