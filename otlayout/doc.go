/*
Package otlayout implements the matching side of OpenType contextual glyph
substitution (GSUB LookupType 5).

GSUB type 5 subtables come in three formats, which encode their input
sequences differently:

▪︎ Format 1: sequences of literal glyph IDs, grouped by start glyph (GlyphContext)

▪︎ Format 2: sequences of glyph classes, grouped by the class of the start glyph (ClassContext)

▪︎ Format 3: exactly one sequence, each position given by a coverage table (CoverageContext)

All three are represented as a SequenceContext and share one matching
algorithm, TryMatch. Given a start position in a glyph stream, TryMatch finds
the first rule (in table order) whose input sequence matches at that position,
skipping glyphs a SkipPredicate marks as ignorable. On a match it reports the
rule's sequence lookup records; executing them is left to the shaping pipeline.

Tables and rules are immutable after construction and safe for concurrent use.
Matching never fails with an error: “no match” is an ordinary result.

# Status

Work in progress.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package otlayout

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}
