package gotext

import (
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/ctxsubst/ot"
)

// coverageGlyphs lists the glyphs of a go-text coverage in coverage index order.
func coverageGlyphs(cov tables.Coverage) ([]ot.GlyphIndex, error) {
	switch c := cov.(type) {
	case nil:
		return nil, nil
	case tables.Coverage1:
		glyphs := make([]ot.GlyphIndex, len(c.Glyphs))
		for i, g := range c.Glyphs {
			glyphs[i] = ot.GlyphIndex(g)
		}
		return glyphs, nil
	case tables.Coverage2:
		var glyphs []ot.GlyphIndex
		for _, r := range c.Ranges {
			if r.EndGlyphID < r.StartGlyphID {
				return nil, ot.InvalidTable("Coverage", "range %d…%d is reversed", r.StartGlyphID, r.EndGlyphID)
			}
			for g := int(r.StartGlyphID); g <= int(r.EndGlyphID); g++ {
				glyphs = append(glyphs, ot.GlyphIndex(g))
			}
		}
		return glyphs, nil
	}
	return nil, ot.InvalidTable("Coverage", "unsupported coverage type %T", cov)
}

// convertCoverage converts a go-text coverage into an ot.Coverage.
func convertCoverage(cov tables.Coverage) (ot.Coverage, error) {
	if c, ok := cov.(tables.Coverage2); ok {
		ranges := make([]ot.GlyphRange, len(c.Ranges))
		for i, r := range c.Ranges {
			ranges[i] = ot.GlyphRange{First: ot.GlyphIndex(r.StartGlyphID), Last: ot.GlyphIndex(r.EndGlyphID)}
		}
		return ot.CoverageFromRanges(ranges...)
	}
	glyphs, err := coverageGlyphs(cov)
	if err != nil {
		return ot.Coverage{}, err
	}
	return ot.NewCoverage(glyphs...), nil
}

// convertClassDef converts a go-text class definition. A missing class
// definition puts every glyph into class 0.
func convertClassDef(cdef tables.ClassDef) (*ot.ClassDefinitions, error) {
	switch c := cdef.(type) {
	case nil:
		return ot.NewClassDefinitions(nil), nil
	case tables.ClassDef1:
		classes := make(map[ot.GlyphIndex]uint16, len(c.ClassValueArray))
		for i, class := range c.ClassValueArray {
			g := int(c.StartGlyphID) + i
			if g > 0xffff {
				return nil, ot.InvalidTable("ClassDef", "class array exceeds glyph range")
			}
			classes[ot.GlyphIndex(g)] = class
		}
		return ot.NewClassDefinitions(classes), nil
	case tables.ClassDef2:
		ranges := make([]ot.ClassRange, len(c.ClassRangeRecords))
		for i, r := range c.ClassRangeRecords {
			ranges[i] = ot.ClassRange{
				First: ot.GlyphIndex(r.StartGlyphID),
				Last:  ot.GlyphIndex(r.EndGlyphID),
				Class: r.Class,
			}
		}
		return ot.ClassDefinitionsFromRanges(ranges...)
	}
	return nil, ot.InvalidTable("ClassDef", "unsupported class definition type %T", cdef)
}

func convertActions(records []tables.SequenceLookupRecord) []ot.SequenceLookupRecord {
	if len(records) == 0 {
		return nil
	}
	actions := make([]ot.SequenceLookupRecord, len(records))
	for i, r := range records {
		actions[i] = ot.SequenceLookupRecord{
			SequenceIndex:   r.SequenceIndex,
			LookupListIndex: r.LookupListIndex,
		}
	}
	return actions
}
