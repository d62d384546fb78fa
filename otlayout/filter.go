package otlayout

import "github.com/npillmayer/ctxsubst/ot"

// GlyphFilter applies lookup flags to decide whether to skip a glyph while
// matching a context. It uses the glyph classes, mark attachment classes and
// mark glyph sets of a font's GDEF table.
//
// Precedence follows the OpenType specification: IgnoreMarks supersedes a mark
// filtering set, which supersedes a mark attachment type.
type GlyphFilter struct {
	glyphClasses      *ot.ClassDefinitions // GDEF GlyphClassDef
	markAttachClasses *ot.ClassDefinitions // GDEF MarkAttachClassDef
	markSets          []ot.Coverage        // GDEF MarkGlyphSets
	markFilteringSet  uint16               // set index of the lookup
}

// NewGlyphFilter creates a filter from GDEF data. markFilteringSet is the mark
// filtering set of the lookup the filter is used for; it is consulted only if
// the lookup flags carry LOOKUP_FLAG_USE_MARK_FILTERING_SET. Without glyph
// classes the filter will not skip any glyph.
func NewGlyphFilter(glyphClasses, markAttachClasses *ot.ClassDefinitions,
	markSets []ot.Coverage, markFilteringSet uint16) *GlyphFilter {
	//
	return &GlyphFilter{
		glyphClasses:      glyphClasses,
		markAttachClasses: markAttachClasses,
		markSets:          markSets,
		markFilteringSet:  markFilteringSet,
	}
}

// Skip reports whether glyph g is to be ignored under lookup flags flags.
// It has the signature of a SkipPredicate.
func (f *GlyphFilter) Skip(g ot.GlyphIndex, flags ot.LayoutTableLookupFlag) bool {
	if f == nil || f.glyphClasses == nil || !flags.IgnoresGlyphs() {
		return false
	}
	switch ot.GlyphClassDefEnum(f.glyphClasses.Class(g)) {
	case ot.BaseGlyph:
		return flags&ot.LOOKUP_FLAG_IGNORE_BASE_GLYPHS != 0
	case ot.LigatureGlyph:
		return flags&ot.LOOKUP_FLAG_IGNORE_LIGATURES != 0
	case ot.MarkGlyph:
		if flags&ot.LOOKUP_FLAG_IGNORE_MARKS != 0 {
			return true
		}
		if flags&ot.LOOKUP_FLAG_USE_MARK_FILTERING_SET != 0 {
			if int(f.markFilteringSet) >= len(f.markSets) {
				return false // broken font: treat as if no set were given
			}
			return !f.markSets[f.markFilteringSet].Contains(g)
		}
		if t := flags.MarkAttachmentType(); t != 0 && f.markAttachClasses != nil {
			return f.markAttachClasses.Class(g) != int(t)
		}
	}
	return false
}

// Predicate returns f.Skip as a SkipPredicate.
func (f *GlyphFilter) Predicate() SkipPredicate {
	return f.Skip
}
