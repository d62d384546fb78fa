/*
Package ctxsubst matches OpenType contextual glyph substitutions (GSUB
LookupType 5) against glyph streams.

The heavy lifting is done in sub-packages:

▪︎ ot holds the immutable table data: coverages, class definitions, lookup
flags and sequence lookup records.

▪︎ otlayout holds contextual rules and tables, and the matcher.

▪︎ otlayout/gotext builds otlayout tables from fonts decoded by go-text.

This package is a convenience façade for the common case of loading a font
file and inspecting or matching its contextual lookups.

There is a certain confusion with the nomenclature of typesetting. We will
stick to the following definitions:

▪︎ A "typeface" is a family of fonts. An example is "Helvetica".

▪︎ A "scalable font" is a font, i.e. a variant of a typeface with a
certain weight, slant, etc.  An example is "Helvetica regular".

# Status

Does not yet contain methods for font collections (*.ttc).

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ctxsubst

import (
	"github.com/npillmayer/ctxsubst/internal/fontload"
	"github.com/npillmayer/ctxsubst/ot"
	"github.com/npillmayer/ctxsubst/otlayout"
	"github.com/npillmayer/ctxsubst/otlayout/gotext"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/text/unicode/norm"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// Font is a loaded OpenType font.
type Font struct {
	sf      *fontload.ScalableFont
	lookups []gotext.ContextLookup
}

// FromBinary parses raw OpenType bytes and returns a decoded font.
//
// The input is expected to contain a complete single-font SFNT stream.
// It must not change after parsing.
func FromBinary(data []byte) (*Font, error) {
	sf, err := fontload.ParseOpenTypeFont(data)
	if err != nil {
		return nil, err
	}
	return newFont(sf), nil
}

// LoadFont loads an OpenType font (TTF or OTF) from a file.
func LoadFont(path string) (*Font, error) {
	sf, err := fontload.LoadOpenTypeFont(path)
	if err != nil {
		return nil, err
	}
	return newFont(sf), nil
}

func newFont(sf *fontload.ScalableFont) *Font {
	f := &Font{sf: sf, lookups: gotext.Lookups(sf.Layout)}
	for _, l := range f.lookups {
		for _, err := range l.Errors {
			tracer().Infof("font %s: %v", sf.Fontname, err)
		}
	}
	tracer().Infof("font %s has %d contextual lookups", sf.Fontname, len(f.lookups))
	return f
}

// Name returns the full name of the font.
func (f *Font) Name() string {
	return f.sf.Fontname
}

// FamilyName extracts family and subfamily names from a font's `name` table.
//
// Returned values are empty if no matching records exist or if records cannot be
// decoded.
func FamilyName(f *Font) (family, subfamily string) {
	if f == nil {
		return
	}
	return f.sf.Name(sfnt.NameIDFamily), f.sf.Name(sfnt.NameIDSubfamily)
}

// ContextLookups returns the contextual substitution lookups of the font, in
// lookup list order. The slice is shared and must not be modified.
func (f *Font) ContextLookups() []gotext.ContextLookup {
	return f.lookups
}

// ContextLookup returns the contextual lookup with GSUB lookup list index inx.
func (f *Font) ContextLookup(inx int) (gotext.ContextLookup, bool) {
	for _, l := range f.lookups {
		if l.Index == inx {
			return l, true
		}
	}
	return gotext.ContextLookup{}, false
}

// SkipPredicate returns the skip predicate for lookup l, derived from the
// font's GDEF table.
func (f *Font) SkipPredicate(l gotext.ContextLookup) otlayout.SkipPredicate {
	return gotext.GlyphFilter(f.sf.Layout, l.MarkFilteringSet).Predicate()
}

// Glyphs maps text to nominal glyphs using the font's cmap, after normalizing
// it to NFC. Runes without a glyph map to glyph 0 (.notdef).
func (f *Font) Glyphs(text string) (ot.GlyphSlice, []rune) {
	runes := []rune(norm.NFC.String(text))
	glyphs := make(ot.GlyphSlice, len(runes))
	for i, r := range runes {
		if gid, ok := f.sf.Layout.NominalGlyph(r); ok {
			glyphs[i] = ot.GlyphIndex(gid)
		}
	}
	return glyphs, runes
}
