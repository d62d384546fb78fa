package otlayout

import (
	"fmt"
	"slices"
	"strings"

	"github.com/npillmayer/ctxsubst/ot"
)

// ContextFormat tells how a contextual rule encodes its input sequence.
type ContextFormat uint8

const (
	NoContextFormat        ContextFormat = iota // empty table, no rules
	GlyphSequenceFormat                         // format 1: literal glyph IDs
	ClassSequenceFormat                         // format 2: glyph classes
	CoverageSequenceFormat                      // format 3: coverage tables
)

func (f ContextFormat) String() string {
	switch f {
	case GlyphSequenceFormat:
		return "glyphs"
	case ClassSequenceFormat:
		return "classes"
	case CoverageSequenceFormat:
		return "coverages"
	}
	return "empty"
}

// ContextRule is a single rule of a contextual substitution: an input sequence
// and the sequence lookup records to fire if the input sequence matches.
//
// ContextRule is a tagged variant over the three GSUB type 5 formats. The start
// glyph of formats 1 and 2 is not part of the rule, but has been matched by the
// table which selected the rule (by glyph ID or by class, respectively).
// Format 3 rules hold a coverage for every position, including the start glyph.
//
// Rules are immutable and may be shared between goroutines.
type ContextRule struct {
	format    ContextFormat
	glyphs    []ot.GlyphIndex      // format 1: input glyphs following the start glyph
	classes   []uint16             // format 2: input classes following the start glyph
	classDef  *ot.ClassDefinitions // format 2: shared with the owning ClassContext
	coverages []ot.Coverage        // format 3: one coverage per context position
	actions   []ot.SequenceLookupRecord
}

// NewGlyphRule creates a format 1 rule. input holds the glyphs following the
// start glyph; the start glyph is given by the rule set the rule is put into
// (see NewGlyphContext). Arguments are not retained.
func NewGlyphRule(input []ot.GlyphIndex, actions ...ot.SequenceLookupRecord) *ContextRule {
	return &ContextRule{
		format:  GlyphSequenceFormat,
		glyphs:  slices.Clone(input),
		actions: slices.Clone(actions),
	}
}

// NewClassRule creates a format 2 rule. classes holds the classes of the glyphs
// following the start glyph. The rule will compare classes using the class
// definitions of the ClassContext it is put into. Arguments are not retained.
func NewClassRule(classes []uint16, actions ...ot.SequenceLookupRecord) *ContextRule {
	return &ContextRule{
		format:  ClassSequenceFormat,
		classes: slices.Clone(classes),
		actions: slices.Clone(actions),
	}
}

// Format returns the input sequence encoding of the rule.
func (r *ContextRule) Format() ContextFormat {
	return r.format
}

// ContextLength returns the number of context positions the rule requires,
// including the start glyph. It is at least 1.
func (r *ContextRule) ContextLength() int {
	switch r.format {
	case GlyphSequenceFormat:
		return len(r.glyphs) + 1
	case ClassSequenceFormat:
		return len(r.classes) + 1
	case CoverageSequenceFormat:
		return len(r.coverages)
	}
	return 1
}

// Matches reports whether glyph g satisfies context position at, with
// 1 ≤ at < ContextLength(). Position 0 (the start glyph) is matched by the
// table, not by the rule.
func (r *ContextRule) Matches(g ot.GlyphIndex, at int) bool {
	if contractChecks.Load() {
		assertPosition(r, at)
	}
	switch r.format {
	case GlyphSequenceFormat:
		return r.glyphs[at-1] == g
	case ClassSequenceFormat:
		return r.classDef.Class(g) == int(r.classes[at-1])
	case CoverageSequenceFormat:
		return r.coverages[at].Contains(g)
	}
	return false
}

// Actions returns a copy of the sequence lookup records of the rule, in the
// order they are to be applied.
func (r *ContextRule) Actions() []ot.SequenceLookupRecord {
	return slices.Clone(r.actions)
}

// bindClasses returns a copy of a class rule, comparing classes with cdef.
func (r *ContextRule) bindClasses(cdef *ot.ClassDefinitions) *ContextRule {
	bound := *r
	bound.classDef = cdef
	return &bound
}

// checkActions makes sure every action addresses a position inside the context.
func (r *ContextRule) checkActions(section string) error {
	for _, a := range r.actions {
		if int(a.SequenceIndex) >= r.ContextLength() {
			return ot.InvalidTable(section, "sequence index %d beyond context length %d",
				a.SequenceIndex, r.ContextLength())
		}
	}
	return nil
}

func (r *ContextRule) String() string {
	var sb strings.Builder
	switch r.format {
	case GlyphSequenceFormat:
		fmt.Fprintf(&sb, "glyphs %v", r.glyphs)
	case ClassSequenceFormat:
		fmt.Fprintf(&sb, "classes %v", r.classes)
	case CoverageSequenceFormat:
		sb.WriteString("coverages [")
		for i, cov := range r.coverages {
			if i > 0 {
				sb.WriteByte(' ')
			}
			fmt.Fprintf(&sb, "|%d|", cov.Len())
		}
		sb.WriteByte(']')
	default:
		sb.WriteString("<empty>")
	}
	sb.WriteString(" =>")
	for _, a := range r.actions {
		fmt.Fprintf(&sb, " %d:@%d", a.SequenceIndex, a.LookupListIndex)
	}
	return sb.String()
}
