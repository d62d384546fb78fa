package ttxtest

import (
	"encoding/xml"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// ParseTTXFile reads a TTX XML dump from a file. See ParseTTX.
func ParseTTXFile(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseTTX(data)
}

// ParseTTX reads the GSUB and GDEF tables of a TTX XML dump, as written by
// fonttools. Glyphs must be named "gNN" or "glyphNN", with NN the glyph ID.
func ParseTTX(data []byte) (*Layout, error) {
	var f ttxFont
	if err := xml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if f.GSUB.LookupList == nil {
		return nil, fmt.Errorf("ttx: missing GSUB/LookupList")
	}
	layout := &Layout{}
	for i, lk := range f.GSUB.LookupList.Lookups {
		if lk.Index != i {
			return nil, fmt.Errorf("ttx: lookup %d found at position %d", lk.Index, i)
		}
		lt, err := lk.LookupType.Int()
		if err != nil {
			return nil, fmt.Errorf("ttx: invalid LookupType: %w", err)
		}
		var lookup font.GSUBLookup
		if lk.LookupFlag.Value != "" {
			n, err := lk.LookupFlag.Int()
			if err != nil {
				return nil, fmt.Errorf("ttx: invalid LookupFlag: %w", err)
			}
			lookup.Flag = uint16(n)
		}
		if lk.MarkFilteringSet.Value != "" {
			n, err := lk.MarkFilteringSet.Int()
			if err != nil {
				return nil, fmt.Errorf("ttx: invalid MarkFilteringSet: %w", err)
			}
			lookup.MarkFilteringSet = uint16(n)
		}
		if lt != 5 && len(lk.ContextSubst) > 0 {
			return nil, fmt.Errorf("ttx: unsupported lookup type %d with ContextSubst", lt)
		}
		for _, st := range lk.ContextSubst {
			sub, err := contextSubst(st)
			if err != nil {
				return nil, fmt.Errorf("ttx: lookup %d: %w", lk.Index, err)
			}
			lookup.Subtables = append(lookup.Subtables, sub)
		}
		layout.Lookups = append(layout.Lookups, lookup)
	}
	gdef, err := f.GDEF.table()
	if err != nil {
		return nil, err
	}
	layout.GDEF = gdef
	return layout, nil
}

func contextSubst(st ttxContextSubst) (tables.ContextualSubs, error) {
	format := 1
	if st.FormatAttr != "" {
		n, err := strconv.Atoi(st.FormatAttr)
		if err != nil {
			return tables.ContextualSubs{}, fmt.Errorf("invalid ContextSubst format %q", st.FormatAttr)
		}
		format = n
	}
	switch format {
	case 1:
		cov, err := coverageAt(st.Coverage, 0)
		if err != nil {
			return tables.ContextualSubs{}, err
		}
		ruleSets := make([]tables.SequenceRuleSet, len(cov.Glyphs))
		for _, rs := range st.SubRuleSet {
			if rs.Index < 0 || rs.Index >= len(ruleSets) {
				return tables.ContextualSubs{}, fmt.Errorf("SubRuleSet %d without coverage entry", rs.Index)
			}
			for _, r := range byIndex(rs.SubRule, func(r ttxSubRule) int { return r.Index }) {
				input, err := glyphIDs(byIndex(r.Input, func(in ttxInput) int { return in.Index }))
				if err != nil {
					return tables.ContextualSubs{}, err
				}
				records, err := lookupRecords(r.SubstLookupRecord)
				if err != nil {
					return tables.ContextualSubs{}, err
				}
				ruleSets[rs.Index].SeqRule = append(ruleSets[rs.Index].SeqRule, tables.SequenceRule{
					InputSequence:    input,
					SeqLookupRecords: records,
				})
			}
		}
		return ContextualSubs1(cov, ruleSets)
	case 2:
		cov, err := coverageAt(st.Coverage, 0)
		if err != nil {
			return tables.ContextualSubs{}, err
		}
		cdef, err := st.ClassDef.table()
		if err != nil {
			return tables.ContextualSubs{}, err
		}
		maxSet := -1
		for _, rs := range st.SubClassSet {
			maxSet = max(maxSet, rs.Index)
		}
		classSets := make([]tables.SequenceRuleSet, maxSet+1)
		for _, rs := range st.SubClassSet {
			if rs.EmptyAttr == "1" || rs.Index < 0 {
				continue
			}
			for _, r := range byIndex(rs.SubClassRule, func(r ttxSubClassRule) int { return r.Index }) {
				classes := byIndex(r.Class, func(c ttxClassValue) int { return c.Index })
				input := make([]uint16, len(classes))
				for i, c := range classes {
					input[i] = uint16(c.Value)
				}
				records, err := lookupRecords(r.SubstLookupRecord)
				if err != nil {
					return tables.ContextualSubs{}, err
				}
				classSets[rs.Index].SeqRule = append(classSets[rs.Index].SeqRule, tables.SequenceRule{
					InputSequence:    input,
					SeqLookupRecords: records,
				})
			}
		}
		return ContextualSubs2(cov, cdef, classSets)
	case 3:
		coverages := make([]tables.Coverage, 0, len(st.Coverage))
		for _, c := range byIndex(st.Coverage, func(c ttxCoverage) int { return c.Index }) {
			cov, err := c.table()
			if err != nil {
				return tables.ContextualSubs{}, err
			}
			coverages = append(coverages, cov)
		}
		records, err := lookupRecords(st.SubstLookupRecord)
		if err != nil {
			return tables.ContextualSubs{}, err
		}
		return tables.ContextualSubs{Data: tables.ContextualSubs3{
			Coverages:        coverages,
			SeqLookupRecords: records,
		}}, nil
	}
	return tables.ContextualSubs{}, fmt.Errorf("unsupported ContextSubst format %d", format)
}

func coverageAt(covs []ttxCoverage, inx int) (tables.Coverage1, error) {
	for _, c := range covs {
		if c.Index == inx {
			return c.table()
		}
	}
	return tables.Coverage1{}, fmt.Errorf("missing Coverage %d", inx)
}

func lookupRecords(in []ttxSubstLookupRecord) ([]tables.SequenceLookupRecord, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make([]tables.SequenceLookupRecord, 0, len(in))
	for _, item := range byIndex(in, func(r ttxSubstLookupRecord) int { return r.Index }) {
		si, err := item.SequenceIndex.Int()
		if err != nil {
			return nil, fmt.Errorf("invalid SequenceIndex: %w", err)
		}
		li, err := item.LookupListIndex.Int()
		if err != nil {
			return nil, fmt.Errorf("invalid LookupListIndex: %w", err)
		}
		out = append(out, tables.SequenceLookupRecord{
			SequenceIndex:   uint16(si),
			LookupListIndex: uint16(li),
		})
	}
	return out, nil
}

// byIndex returns a copy of items, ordered by their TTX index attribute.
func byIndex[T any](items []T, index func(T) int) []T {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b T) int { return index(a) - index(b) })
	return sorted
}

func glyphIDs(in []ttxInput) ([]tables.GlyphID, error) {
	out := make([]tables.GlyphID, len(in))
	for i, item := range in {
		gid, err := glyphNameToIDTTX(item.Value)
		if err != nil {
			return nil, err
		}
		out[i] = tables.GlyphID(gid)
	}
	return out, nil
}

func glyphNameToIDTTX(name string) (int, error) {
	if name == ".notdef" {
		return 0, nil
	}
	var digits string
	switch {
	case strings.HasPrefix(name, "glyph") && len(name) > 5:
		digits = name[5:]
	case strings.HasPrefix(name, "g") && len(name) > 1:
		digits = name[1:]
	default:
		return 0, fmt.Errorf("unsupported glyph name %q (expected gNN)", name)
	}
	n, err := strconv.Atoi(digits)
	if err != nil || n < 0 || n > 0xffff {
		return 0, fmt.Errorf("unsupported glyph name %q (expected gNN)", name)
	}
	return n, nil
}

type ttxFont struct {
	GSUB ttxGSUB `xml:"GSUB"`
	GDEF ttxGDEF `xml:"GDEF"`
}

type ttxGSUB struct {
	LookupList *ttxLookupList `xml:"LookupList"`
}

type ttxLookupList struct {
	Lookups []ttxLookup `xml:"Lookup"`
}

type ttxLookup struct {
	Index            int               `xml:"index,attr"`
	LookupType       ttxValue          `xml:"LookupType"`
	LookupFlag       ttxValue          `xml:"LookupFlag"`
	MarkFilteringSet ttxValue          `xml:"MarkFilteringSet"`
	ContextSubst     []ttxContextSubst `xml:"ContextSubst"`
}

type ttxCoverage struct {
	Index     int        `xml:"index,attr"`
	GlyphList []ttxGlyph `xml:"Glyph"`
}

func (c ttxCoverage) table() (tables.Coverage1, error) {
	glyphs := make([]tables.GlyphID, 0, len(c.GlyphList))
	for _, g := range c.GlyphList {
		gid, err := glyphNameToIDTTX(g.Value)
		if err != nil {
			return tables.Coverage1{}, err
		}
		glyphs = append(glyphs, tables.GlyphID(gid))
	}
	return tables.Coverage1{Glyphs: glyphs}, nil
}

type ttxContextSubst struct {
	FormatAttr        string                 `xml:"Format,attr"`
	Coverage          []ttxCoverage          `xml:"Coverage"`
	ClassDef          ttxClassDef            `xml:"ClassDef"`
	SubRuleSet        []ttxSubRuleSet        `xml:"SubRuleSet"`
	SubClassSet       []ttxSubClassSet       `xml:"SubClassSet"`
	SubstLookupRecord []ttxSubstLookupRecord `xml:"SubstLookupRecord"`
}

type ttxSubRuleSet struct {
	Index   int          `xml:"index,attr"`
	SubRule []ttxSubRule `xml:"SubRule"`
}

type ttxSubRule struct {
	Index             int                    `xml:"index,attr"`
	Input             []ttxInput             `xml:"Input"`
	SubstLookupRecord []ttxSubstLookupRecord `xml:"SubstLookupRecord"`
}

type ttxSubClassSet struct {
	Index        int               `xml:"index,attr"`
	EmptyAttr    string            `xml:"empty,attr"`
	SubClassRule []ttxSubClassRule `xml:"SubClassRule"`
}

type ttxSubClassRule struct {
	Index             int                    `xml:"index,attr"`
	Class             []ttxClassValue        `xml:"Class"`
	SubstLookupRecord []ttxSubstLookupRecord `xml:"SubstLookupRecord"`
}

type ttxClassValue struct {
	Index int `xml:"index,attr"`
	Value int `xml:"value,attr"`
}

type ttxInput struct {
	Index int    `xml:"index,attr"`
	Value string `xml:"value,attr"`
}

type ttxSubstLookupRecord struct {
	Index           int      `xml:"index,attr"`
	SequenceIndex   ttxValue `xml:"SequenceIndex"`
	LookupListIndex ttxValue `xml:"LookupListIndex"`
}

type ttxGlyph struct {
	Value string `xml:"value,attr"`
}

type ttxValue struct {
	Value string `xml:"value,attr"`
}

func (v ttxValue) Int() (int, error) {
	if v.Value == "" {
		return 0, fmt.Errorf("missing value")
	}
	if strings.HasPrefix(v.Value, "0x") || strings.HasPrefix(v.Value, "0X") {
		n, err := strconv.ParseInt(v.Value[2:], 16, 32)
		return int(n), err
	}
	n, err := strconv.Atoi(v.Value)
	return n, err
}

type ttxClassDef struct {
	Entries []ttxClassDefEntry `xml:"ClassDef"`
}

type ttxClassDefEntry struct {
	Glyph string `xml:"glyph,attr"`
	Class int    `xml:"class,attr"`
}

// table converts a TTX class definition into a format 2 class definition,
// one range per glyph.
func (cd ttxClassDef) table() (tables.ClassDef2, error) {
	records := make([]tables.ClassRangeRecord, 0, len(cd.Entries))
	for _, e := range cd.Entries {
		gid, err := glyphNameToIDTTX(e.Glyph)
		if err != nil {
			return tables.ClassDef2{}, err
		}
		records = append(records, tables.ClassRangeRecord{
			StartGlyphID: tables.GlyphID(gid),
			EndGlyphID:   tables.GlyphID(gid),
			Class:        uint16(e.Class),
		})
	}
	slices.SortFunc(records, func(a, b tables.ClassRangeRecord) int {
		return int(a.StartGlyphID) - int(b.StartGlyphID)
	})
	return tables.ClassDef2{ClassRangeRecords: records}, nil
}
