package ttxtest

import (
	"github.com/go-text/typesetting/font/opentype/tables"
)

type ttxGDEF struct {
	GlyphClassDef      *ttxClassDef         `xml:"GlyphClassDef"`
	MarkAttachClassDef *ttxClassDef         `xml:"MarkAttachClassDef"`
	MarkGlyphSetsDef   *ttxMarkGlyphSetsDef `xml:"MarkGlyphSetsDef"`
}

type ttxMarkGlyphSetsDef struct {
	Coverage []ttxCoverage `xml:"Coverage"`
}

// table converts the GDEF parts relevant for skipping glyphs. Missing parts
// stay nil, as they do when go-text decodes a font without them.
func (g ttxGDEF) table() (tables.GDEF, error) {
	var gdef tables.GDEF
	if g.GlyphClassDef != nil {
		cdef, err := g.GlyphClassDef.table()
		if err != nil {
			return gdef, err
		}
		gdef.GlyphClassDef = cdef
	}
	if g.MarkAttachClassDef != nil {
		cdef, err := g.MarkAttachClassDef.table()
		if err != nil {
			return gdef, err
		}
		gdef.MarkAttachClass = cdef
	}
	if g.MarkGlyphSetsDef != nil {
		for _, c := range byIndex(g.MarkGlyphSetsDef.Coverage, func(c ttxCoverage) int { return c.Index }) {
			cov, err := c.table()
			if err != nil {
				return gdef, err
			}
			gdef.MarkGlyphSetsDef.Coverages = append(gdef.MarkGlyphSetsDef.Coverages, cov)
		}
	}
	return gdef, nil
}
