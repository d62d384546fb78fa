package ot

import (
	"slices"
	"sort"
)

// --- Coverage table module -------------------------------------------------

// Coverage denotes an indexed set of glyphs.
// Each LookupSubtable (except an Extension LookupType subtable) in a lookup references
// a Coverage table (Coverage), which specifies all the glyphs affected by a
// substitution or positioning operation described in the subtable.
// The GSUB, GPOS, and GDEF tables rely on this notion of coverage. If a glyph does
// not appear in a Coverage table, the client can skip that subtable and move
// immediately to the next subtable.
//
// Glyphs are stored as ordered ranges, comparable to a format 2 coverage table.
// The coverage index of a glyph is its rank within the set.
// The zero value is an empty coverage.
type Coverage struct {
	records []coverageRecord // ordered by first glyph, non-overlapping
	count   int              // number of glyphs covered
}

type coverageRecord struct {
	first GlyphIndex
	last  GlyphIndex
	index int // coverage index of glyph `first`
}

// NewCoverage creates a coverage from a list of glyphs. The list need not be
// sorted and may contain duplicates; the argument is not retained.
func NewCoverage(glyphs ...GlyphIndex) Coverage {
	if len(glyphs) == 0 {
		return Coverage{}
	}
	gs := slices.Clone(glyphs)
	slices.Sort(gs)
	gs = slices.Compact(gs)
	cov := Coverage{count: len(gs)}
	for i, g := range gs {
		if n := len(cov.records); n > 0 && int(cov.records[n-1].last)+1 == int(g) {
			cov.records[n-1].last = g
			continue
		}
		cov.records = append(cov.records, coverageRecord{first: g, last: g, index: i})
	}
	tracer().Debugf("coverage with %d glyphs in %d ranges", cov.count, len(cov.records))
	return cov
}

// CoverageFromRanges creates a coverage from glyph ranges. Ranges may be given
// in any order, but must not be reversed and must not overlap.
func CoverageFromRanges(ranges ...GlyphRange) (Coverage, error) {
	rs := slices.Clone(ranges)
	slices.SortFunc(rs, func(a, b GlyphRange) int {
		return int(a.First) - int(b.First)
	})
	cov := Coverage{}
	for i, r := range rs {
		if r.Last < r.First {
			return Coverage{}, InvalidTable("Coverage", "reversed glyph range %d…%d", r.First, r.Last)
		}
		if i > 0 && r.First <= rs[i-1].Last {
			return Coverage{}, InvalidTable("Coverage", "overlapping glyph ranges at glyph %d", r.First)
		}
		if n := len(cov.records); n > 0 && int(cov.records[n-1].last)+1 == int(r.First) {
			cov.records[n-1].last = r.Last
		} else {
			cov.records = append(cov.records, coverageRecord{first: r.First, last: r.Last, index: cov.count})
		}
		cov.count += r.Len()
	}
	return cov, nil
}

// Match returns the Coverage Index for a glyph, and true if present.
func (c Coverage) Match(g GlyphIndex) (int, bool) {
	i := sort.Search(len(c.records), func(i int) bool {
		return c.records[i].last >= g
	})
	if i == len(c.records) || c.records[i].first > g {
		return 0, false
	}
	return c.records[i].index + int(g-c.records[i].first), true
}

// Contains reports whether a glyph is present in the coverage.
func (c Coverage) Contains(g GlyphIndex) bool {
	_, ok := c.Match(g)
	return ok
}

// Len returns the number of glyphs in the coverage.
func (c Coverage) Len() int {
	return c.count
}

// Glyphs returns the covered glyphs in coverage index order.
func (c Coverage) Glyphs() []GlyphIndex {
	glyphs := make([]GlyphIndex, 0, c.count)
	for _, rec := range c.records {
		for g := int(rec.first); g <= int(rec.last); g++ {
			glyphs = append(glyphs, GlyphIndex(g))
		}
	}
	assertEqualInt("coverage size", len(glyphs), c.count)
	return glyphs
}

// Ranges returns the covered glyphs as maximal ranges, in ascending order.
func (c Coverage) Ranges() []GlyphRange {
	rs := make([]GlyphRange, len(c.records))
	for i, rec := range c.records {
		rs[i] = GlyphRange{First: rec.first, Last: rec.last}
	}
	return rs
}
