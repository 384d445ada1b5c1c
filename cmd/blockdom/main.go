/*
Command blockdom converts documents between markup syntaxes and inspects
their block trees.

	blockdom render [file] --from md --to html
	blockdom tree [file] [--dot]
	blockdom links [file]
	blockdom serve --addr :8080

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
