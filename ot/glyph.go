package ot

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// GlyphSequence is a read-only sequence of glyph IDs, i.e. the glyph stream a
// shaper is working on.
//
// Contract:
//   - Indices are zero-based in the range [0, Len()).
//   - Out-of-range indices are programmer errors and may panic.
//
// Matching code never changes a GlyphSequence. Replacing glyphs is the job of
// the shaping pipeline, which owns the storage.
type GlyphSequence interface {
	// Len returns the number of glyphs in the sequence.
	Len() int
	// At returns the glyph at index i.
	At(i int) GlyphIndex
}

// GlyphSlice is the default GlyphSequence implementation backed by a slice.
type GlyphSlice []GlyphIndex

func (b GlyphSlice) Len() int {
	return len(b)
}

func (b GlyphSlice) At(i int) GlyphIndex {
	return b[i]
}

// GlyphRange is an inclusive range [First…Last] of glyph IDs.
type GlyphRange struct {
	First GlyphIndex
	Last  GlyphIndex
}

// Contains reports whether g is in the range.
func (r GlyphRange) Contains(g GlyphIndex) bool {
	return g >= r.First && g <= r.Last
}

// Len returns the number of glyphs in the range, or 0 for a reversed range.
func (r GlyphRange) Len() int {
	if r.Last < r.First {
		return 0
	}
	return int(r.Last) - int(r.First) + 1
}
