/*
Package gotext builds contextual substitution tables from fonts parsed by
go-text/typesetting.

go-text decodes GSUB and GDEF into plain structs (package
font/opentype/tables). This package converts GSUB type 5 subtables into
otlayout.SequenceContext values and GDEF data into an otlayout.GlyphFilter.
Conversion is the only place where inconsistent font data is detected:
a subtable which cannot be converted is replaced by otlayout.EmptyContext,
i.e. it will never match.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package gotext

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}
