package ot

/*
From https://docs.microsoft.com/en-us/typography/opentype/spec/chapter2:

OpenType Layout consists of five tables: the Glyph Substitution table (GSUB),
the Glyph Positioning table (GPOS), the Baseline table (BASE),
the Justification table (JSTF), and the Glyph Definition table (GDEF).
These tables use some of the same data formats.
*/

import "fmt"

// LayoutTableLookupFlag is a flag type for layout tables (GPOS and GSUB).
type LayoutTableLookupFlag uint16

// Lookup flags of layout tables (GPOS and GSUB)
const ( // LookupFlag bit enumeration
	// Note that the RIGHT_TO_LEFT flag is used only for GPOS type 3 lookups and is ignored
	// otherwise. It is not used by client software in determining text direction.
	LOOKUP_FLAG_RIGHT_TO_LEFT             LayoutTableLookupFlag = 0x0001
	LOOKUP_FLAG_IGNORE_BASE_GLYPHS        LayoutTableLookupFlag = 0x0002 // If set, skips over base glyphs
	LOOKUP_FLAG_IGNORE_LIGATURES          LayoutTableLookupFlag = 0x0004 // If set, skips over ligatures
	LOOKUP_FLAG_IGNORE_MARKS              LayoutTableLookupFlag = 0x0008 // If set, skips over all combining marks
	LOOKUP_FLAG_USE_MARK_FILTERING_SET    LayoutTableLookupFlag = 0x0010 // If set, indicates that the lookup table structure is followed by a MarkFilteringSet field.
	LOOKUP_FLAG_reserved                  LayoutTableLookupFlag = 0x00E0 // For future use (Set to zero)
	LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK LayoutTableLookupFlag = 0xFF00 // If not zero, skips over all marks of attachment type different from specified.
)

// MarkAttachmentType returns the mark attachment class encoded in the high byte
// of a lookup flag, or 0 if none is set.
func (flag LayoutTableLookupFlag) MarkAttachmentType() uint16 {
	return uint16((flag & LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK) >> 8)
}

// IgnoresGlyphs reports whether any of the glyph-skipping bits is set.
func (flag LayoutTableLookupFlag) IgnoresGlyphs() bool {
	return flag&(LOOKUP_FLAG_IGNORE_BASE_GLYPHS|LOOKUP_FLAG_IGNORE_LIGATURES|
		LOOKUP_FLAG_IGNORE_MARKS|LOOKUP_FLAG_USE_MARK_FILTERING_SET|
		LOOKUP_FLAG_MARK_ATTACHMENT_TYPE_MASK) != 0
}

// LayoutTableLookupType is a type identifier for layout lookup records (GPOS and GSUB).
// Enum values are different for GPOS and GSUB.
type LayoutTableLookupType uint16

// GSUB lookup types. Only contextual substitution is interpreted by this module;
// the others are listed for diagnostics.
const (
	GSubLookupTypeSingle          LayoutTableLookupType = 1
	GSubLookupTypeMultiple        LayoutTableLookupType = 2
	GSubLookupTypeAlternate       LayoutTableLookupType = 3
	GSubLookupTypeLigature        LayoutTableLookupType = 4
	GSubLookupTypeContext         LayoutTableLookupType = 5
	GSubLookupTypeChainingContext LayoutTableLookupType = 6
	GSubLookupTypeExtensionSubs   LayoutTableLookupType = 7
	GSubLookupTypeReverseChaining LayoutTableLookupType = 8
)

var gsubLookupTypeNames = [...]string{"", "Single", "Multiple", "Alternate", "Ligature",
	"Context", "ChainingContext", "Extension", "ReverseChaining"}

// String returns the name of a GSUB lookup type.
func (lt LayoutTableLookupType) String() string {
	if int(lt) < len(gsubLookupTypeNames) && lt > 0 {
		return gsubLookupTypeNames[lt]
	}
	return fmt.Sprintf("<lookup type %d>", uint16(lt))
}

// --- GDEF glyph classes ----------------------------------------------------

// GlyphClassDefEnum lists the glyph classes for ClassDefinitions
// ('GlyphClassDef'-table of GDEF).
type GlyphClassDefEnum uint16

const (
	_              GlyphClassDefEnum = iota // class 0 is not assigned
	BaseGlyph                               // single character, spacing glyph
	LigatureGlyph                           // multiple character, spacing glyph
	MarkGlyph                               // non-spacing combining glyph
	ComponentGlyph                          // part of single character, spacing glyph
)

// --- Sequence lookup records -----------------------------------------------

// SequenceLookupRecord identifies a nested lookup to apply at a position
// within a matched input sequence.
//
// SequenceIndex counts context positions, not glyph stream positions: glyphs
// skipped during matching do not count. Position 0 is the start glyph.
type SequenceLookupRecord struct {
	SequenceIndex   uint16
	LookupListIndex uint16
}
