/*
Package session keeps per-font working state for interactive tools.

A session is the companion of one opened font: its kerning data source, the
pair list currently in use, the transformation rules loaded for it and the
last query issued against it. Sessions live in a Registry, which clients
create explicitly; there is no global registry.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package session

import "github.com/npillmayer/schuko/tracing"

// tracer writes to trace with key 'kerning.session'
func tracer() tracing.Trace {
	return tracing.Select("kerning.session")
}
