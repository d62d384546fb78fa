package ot

import (
	"slices"
	"sort"
)

// --- Class definition tables -----------------------------------------------

// ClassDefinitions groups glyphs into classes, denoted as integer values.
//
// From the spec:
// For efficiency and ease of representation, a font developer can group glyph indices
// to form glyph classes. Class assignments vary in meaning from one lookup subtable
// to another. For example, in the GSUB and GPOS tables, classes are used to describe
// glyph contexts. GDEF tables also use the idea of glyph classes.
// (see https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2#class-definition-table)
//
// Class 0 is the default class for every glyph not listed. A nil *ClassDefinitions
// maps every glyph to class 0.
type ClassDefinitions struct {
	ranges   []ClassRange // ordered by first glyph, non-overlapping, class != 0
	declared int          // declared number of classes, including class 0
}

// ClassRange assigns a class to the inclusive glyph range [First…Last],
// comparable to a ClassRangeRecord of a format 2 class definition table.
type ClassRange struct {
	First GlyphIndex
	Last  GlyphIndex
	Class uint16
}

// NewClassDefinitions creates class definitions from an explicit glyph to class
// mapping. Entries for class 0 are redundant and will be dropped.
// The map is not retained.
func NewClassDefinitions(classes map[GlyphIndex]uint16) *ClassDefinitions {
	glyphs := make([]GlyphIndex, 0, len(classes))
	for g, c := range classes {
		if c != 0 {
			glyphs = append(glyphs, g)
		}
	}
	slices.Sort(glyphs)
	cdef := &ClassDefinitions{declared: 1}
	for _, g := range glyphs {
		c := classes[g]
		if n := len(cdef.ranges); n > 0 {
			last := &cdef.ranges[n-1]
			if last.Class == c && int(last.Last)+1 == int(g) {
				last.Last = g
				continue
			}
		}
		cdef.ranges = append(cdef.ranges, ClassRange{First: g, Last: g, Class: c})
		cdef.declared = max(cdef.declared, int(c)+1)
	}
	return cdef
}

// ClassDefinitionsFromRanges creates class definitions from class ranges.
// Ranges may be given in any order, but must not be reversed and must not overlap.
func ClassDefinitionsFromRanges(ranges ...ClassRange) (*ClassDefinitions, error) {
	rs := slices.Clone(ranges)
	slices.SortFunc(rs, func(a, b ClassRange) int {
		return int(a.First) - int(b.First)
	})
	cdef := &ClassDefinitions{declared: 1}
	for i, r := range rs {
		if r.Last < r.First {
			return nil, InvalidTable("ClassDef", "reversed glyph range %d…%d", r.First, r.Last)
		}
		if i > 0 && r.First <= rs[i-1].Last {
			return nil, InvalidTable("ClassDef", "overlapping class ranges at glyph %d", r.First)
		}
		if r.Class == 0 {
			continue
		}
		cdef.ranges = append(cdef.ranges, r)
		cdef.declared = max(cdef.declared, int(r.Class)+1)
	}
	return cdef, nil
}

// WithClassCount returns a copy of cdef with a declared class count of n.
// Fonts may declare more classes than are actually assigned to glyphs, but not
// fewer; n smaller than the highest class in use + 1 is an error.
func (cdef *ClassDefinitions) WithClassCount(n int) (*ClassDefinitions, error) {
	if n < cdef.ClassCount() {
		return nil, InvalidTable("ClassDef", "declared class count %d, but class %d in use",
			n, cdef.ClassCount()-1)
	}
	c := &ClassDefinitions{declared: n}
	if cdef != nil {
		c.ranges = cdef.ranges // immutable, may be shared
	}
	return c, nil
}

// Lookup returns the class defined for a glyph, or 0 (= default class).
func (cdef *ClassDefinitions) Lookup(glyph GlyphIndex) int {
	if cdef == nil {
		return 0
	}
	i := sort.Search(len(cdef.ranges), func(i int) bool {
		return cdef.ranges[i].Last >= glyph
	})
	if i == len(cdef.ranges) || cdef.ranges[i].First > glyph {
		return 0
	}
	return int(cdef.ranges[i].Class)
}

// Class returns the class defined for a glyph, or 0 (= default class).
func (cdef *ClassDefinitions) Class(glyph GlyphIndex) int {
	return cdef.Lookup(glyph)
}

// ClassCount returns the declared number of classes, including class 0.
// It is at least 1.
func (cdef *ClassDefinitions) ClassCount() int {
	if cdef == nil || cdef.declared < 1 {
		return 1
	}
	return cdef.declared
}

// Ranges returns the class ranges for all glyphs not in class 0.
func (cdef *ClassDefinitions) Ranges() []ClassRange {
	if cdef == nil {
		return nil
	}
	return slices.Clone(cdef.ranges)
}
