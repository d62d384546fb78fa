/*
Package ot provides the immutable building blocks of OpenType layout lookups:
glyph indices and glyph sequences, coverage tables, class definitions, lookup
flags and sequence lookup records.

Intended audience for this package are text shapers and the table-construction
code which feeds them. Package `ot` will not parse font binaries, but rather
hold the in-memory form of tables that some other component extracted from a
font. Every type in this package is read-only after construction and may be
shared freely between goroutines.

Construction validates its input. Inconsistent table data is reported as an
error wrapping ErrInvalidTableData; nothing in this package will fail later,
when a table is queried during shaping.

# Coverage and class definitions

From the OpenType specification
(https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2):

▪︎ A Coverage table specifies all the glyphs affected by a substitution or
positioning operation described in a subtable.

▪︎ A Class Definition table groups glyph indices into classes. Glyphs not
assigned to a class fall into class 0.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ot

import (
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

func assertEqualInt(name string, a, b int) {
	if a != b {
		panic(fmt.Sprintf("assertion [%s] failed: %d != %d", name, a, b))
	}
}
