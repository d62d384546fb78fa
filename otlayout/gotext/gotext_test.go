package gotext

import (
	"testing"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/ctxsubst/internal/ttxtest"
	"github.com/npillmayer/ctxsubst/ot"
	"github.com/npillmayer/ctxsubst/otlayout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/suite"
)

type GoTextSuite struct {
	suite.Suite
	teardown func()
	lookups  []font.GSUBLookup
}

func TestGoTextSuite(t *testing.T) {
	suite.Run(t, new(GoTextSuite))
}

func (s *GoTextSuite) SetupSuite() {
	s.teardown = gotestingadapter.QuickConfig(s.T(), "tyse.fonts")
	s.lookups = []font.GSUBLookup{
		{ // 0: not contextual
			Subtables: []tables.GSUBLookup{tables.SingleSubs{Data: tables.SingleSubstData2{
				Coverage:           tables.Coverage1{Glyphs: []tables.GlyphID{1}},
				SubstituteGlyphIDs: []tables.GlyphID{2},
			}}},
		},
		{ // 1: format 1
			LookupOptions: font.LookupOptions{Flag: uint16(ot.LOOKUP_FLAG_IGNORE_MARKS)},
			Subtables:     []tables.GSUBLookup{format1()},
		},
		{ // 2: format 2, then format 3
			Subtables: []tables.GSUBLookup{format2(), format3()},
		},
		{ // 3: broken format 3, then format 1
			Subtables: []tables.GSUBLookup{
				tables.ContextualSubs{Data: tables.ContextualSubs3{}},
				format1(),
			},
		},
	}
}

func (s *GoTextSuite) TearDownSuite() {
	s.teardown()
}

// format1 holds glyph rule "10 20 30" and, for start glyph 11, "11 40".
func format1() tables.ContextualSubs {
	return mustSubtable(ttxtest.ContextualSubs1(
		tables.Coverage1{Glyphs: []tables.GlyphID{10, 11}},
		[]tables.SequenceRuleSet{
			{SeqRule: []tables.SequenceRule{{
				InputSequence:    []tables.GlyphID{20, 30},
				SeqLookupRecords: []tables.SequenceLookupRecord{{SequenceIndex: 1, LookupListIndex: 7}},
			}}},
			{SeqRule: []tables.SequenceRule{{
				InputSequence: []tables.GlyphID{40},
			}}},
		},
	))
}

// format2 classifies 5 and 6 as class 1 and glyphs 7…9 as class 2.
// Start glyph 4 (class 0) is followed by class 1; start glyph 7 by class 2.
func format2() tables.ContextualSubs {
	return mustSubtable(ttxtest.ContextualSubs2(
		tables.Coverage2{Ranges: []tables.RangeRecord{
			{StartGlyphID: 4, EndGlyphID: 4, StartCoverageIndex: 0},
			{StartGlyphID: 7, EndGlyphID: 7, StartCoverageIndex: 1},
		}},
		tables.ClassDef2{ClassRangeRecords: []tables.ClassRangeRecord{
			{StartGlyphID: 5, EndGlyphID: 6, Class: 1},
			{StartGlyphID: 7, EndGlyphID: 9, Class: 2},
		}},
		[]tables.SequenceRuleSet{
			{SeqRule: []tables.SequenceRule{{InputSequence: []uint16{1}}}},
			{},
			{SeqRule: []tables.SequenceRule{{
				InputSequence:    []uint16{2},
				SeqLookupRecords: []tables.SequenceLookupRecord{{SequenceIndex: 0, LookupListIndex: 3}},
			}}},
		},
	))
}

func mustSubtable(sub tables.ContextualSubs, err error) tables.ContextualSubs {
	if err != nil {
		panic(err)
	}
	return sub
}

// format3 matches {1,2} followed by {3,4}.
func format3() tables.ContextualSubs {
	return tables.ContextualSubs{Data: tables.ContextualSubs3{
		Coverages: []tables.Coverage{
			tables.Coverage1{Glyphs: []tables.GlyphID{1, 2}},
			tables.Coverage2{Ranges: []tables.RangeRecord{{StartGlyphID: 3, EndGlyphID: 4}}},
		},
		SeqLookupRecords: []tables.SequenceLookupRecord{{SequenceIndex: 1, LookupListIndex: 9}},
	}}
}

func (s *GoTextSuite) TestFormat1() {
	table, err := FromSequenceContext(format1())
	s.Require().NoError(err)
	s.Equal(otlayout.GlyphSequenceFormat, table.Format())
	s.Equal(2, table.RuleCount())

	m := otlayout.TryMatch(ot.GlyphSlice{10, 20, 30}, 0, table, 0, nil)
	s.Require().True(m.Matched)
	s.Equal(3, m.Length)
	s.Equal([]ot.SequenceLookupRecord{{SequenceIndex: 1, LookupListIndex: 7}}, m.Actions())
	s.True(otlayout.TryMatch(ot.GlyphSlice{11, 40}, 0, table, 0, nil).Matched)
	s.False(otlayout.TryMatch(ot.GlyphSlice{11, 20, 30}, 0, table, 0, nil).Matched)
}

func (s *GoTextSuite) TestFormat2() {
	table, err := FromSequenceContext(format2())
	s.Require().NoError(err)
	s.Equal(otlayout.ClassSequenceFormat, table.Format())
	ctx, ok := table.(*otlayout.ClassContext)
	s.Require().True(ok)
	s.Equal(3, ctx.ClassDefinitions().ClassCount())

	s.True(otlayout.TryMatch(ot.GlyphSlice{4, 5}, 0, table, 0, nil).Matched)
	s.True(otlayout.TryMatch(ot.GlyphSlice{4, 6}, 0, table, 0, nil).Matched)
	s.False(otlayout.TryMatch(ot.GlyphSlice{4, 7}, 0, table, 0, nil).Matched)
	m := otlayout.TryMatch(ot.GlyphSlice{7, 9}, 0, table, 0, nil)
	s.Require().True(m.Matched)
	s.Equal(uint16(3), m.Actions()[0].LookupListIndex)
	// 8 is class 2 but not covered
	s.False(otlayout.TryMatch(ot.GlyphSlice{8, 9}, 0, table, 0, nil).Matched)
}

func (s *GoTextSuite) TestFormat2WithMissingRuleSets() {
	sub := format2()
	data := sub.Data.(tables.ContextualSubs2)
	data.ClassSeqRuleSet = data.ClassSeqRuleSet[:1]
	table, err := FromSequenceContext(tables.ContextualSubs{Data: data})
	s.Require().NoError(err)
	s.Equal(3, table.(*otlayout.ClassContext).ClassDefinitions().ClassCount())
	s.True(otlayout.TryMatch(ot.GlyphSlice{4, 5}, 0, table, 0, nil).Matched)
	s.False(otlayout.TryMatch(ot.GlyphSlice{7, 9}, 0, table, 0, nil).Matched)
}

func (s *GoTextSuite) TestFormat3() {
	table, err := FromSequenceContext(format3())
	s.Require().NoError(err)
	s.Equal(otlayout.CoverageSequenceFormat, table.Format())
	m := otlayout.TryMatch(ot.GlyphSlice{2, 4}, 0, table, 0, nil)
	s.Require().True(m.Matched)
	s.Equal(2, m.Length)
	s.False(otlayout.TryMatch(ot.GlyphSlice{2, 5}, 0, table, 0, nil).Matched)
}

func (s *GoTextSuite) TestInvalidSubtables() {
	_, err := FromSequenceContext(tables.ContextualSubs{Data: tables.ContextualSubs3{}})
	s.ErrorIs(err, ot.ErrInvalidTableData)

	overlapping := mustSubtable(ttxtest.ContextualSubs2(
		tables.Coverage1{Glyphs: []tables.GlyphID{4}},
		tables.ClassDef2{ClassRangeRecords: []tables.ClassRangeRecord{
			{StartGlyphID: 5, EndGlyphID: 8, Class: 1},
			{StartGlyphID: 7, EndGlyphID: 9, Class: 2},
		}},
		nil,
	))
	_, err = FromSequenceContext(overlapping)
	s.ErrorIs(err, ot.ErrInvalidTableData)

	_, err = FromSequenceContext(tables.SingleSubs{})
	s.Error(err)
}

func (s *GoTextSuite) TestLookups() {
	lookups := LookupsFrom(s.lookups)
	s.Require().Len(lookups, 3)
	s.Equal(1, lookups[0].Index)
	s.Equal(ot.LOOKUP_FLAG_IGNORE_MARKS, lookups[0].Flags)
	s.Equal("glyphs", lookups[0].Formats())
	s.Equal("classes,coverages", lookups[1].Formats())
	s.Equal(3, lookups[1].RuleCount())

	broken := lookups[2]
	s.Equal(3, broken.Index)
	s.Len(broken.Subtables, 2)
	s.Len(broken.Errors, 1)
	s.ErrorIs(broken.Errors[0], ot.ErrInvalidTableData)
	s.Equal(otlayout.EmptyContext, broken.Subtables[0])

	// the broken subtable never matches, the next one does
	m := broken.Match(ot.GlyphSlice{10, 20, 30}, 0, nil)
	s.True(m.Matched)
	m = lookups[1].Match(ot.GlyphSlice{9, 1, 3}, 1, nil)
	s.True(m.Matched)
	s.Equal([]int{1, 2}, m.Positions)
	s.Empty(Lookups(nil))
}

func (s *GoTextSuite) TestGlyphFilterFromGDEF() {
	gdef := &tables.GDEF{
		GlyphClassDef: tables.ClassDef1{
			StartGlyphID:    20,
			ClassValueArray: []uint16{uint16(ot.BaseGlyph), uint16(ot.MarkGlyph), uint16(ot.MarkGlyph)},
		},
		MarkAttachClass: tables.ClassDef1{StartGlyphID: 21, ClassValueArray: []uint16{1, 2}},
		MarkGlyphSetsDef: tables.MarkGlyphSets{Coverages: []tables.Coverage{
			tables.Coverage1{Glyphs: []tables.GlyphID{22}},
		}},
	}
	filter := FilterFromGDEF(gdef, 0)
	s.True(filter.Skip(21, ot.LOOKUP_FLAG_IGNORE_MARKS))
	s.True(filter.Skip(20, ot.LOOKUP_FLAG_IGNORE_BASE_GLYPHS))
	s.True(filter.Skip(21, ot.LOOKUP_FLAG_USE_MARK_FILTERING_SET))
	s.False(filter.Skip(22, ot.LOOKUP_FLAG_USE_MARK_FILTERING_SET))
	s.True(filter.Skip(22, ot.LayoutTableLookupFlag(1<<8)))
	s.False(filter.Skip(21, ot.LayoutTableLookupFlag(1<<8)))

	lookups := LookupsFrom(s.lookups)
	m := lookups[0].Match(ot.GlyphSlice{10, 21, 20, 30}, 0, filter.Predicate())
	s.True(m.Matched)
	s.Equal(4, m.Length)
	s.False(GlyphFilter(nil, 0).Skip(21, ot.LOOKUP_FLAG_IGNORE_MARKS))
}

func (s *GoTextSuite) TestLookupType() {
	s.Equal(ot.GSubLookupTypeContext, LookupType(tables.ContextualSubs{}))
	s.Equal(ot.GSubLookupTypeSingle, LookupType(tables.SingleSubs{}))
	s.Equal("Context", LookupType(tables.ContextualSubs{}).String())
	s.Equal("<lookup type 0>", LookupType(nil).String())
}
