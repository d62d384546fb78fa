package gotext

import (
	"path/filepath"
	"testing"

	"github.com/npillmayer/ctxsubst/internal/ttxtest"
	"github.com/npillmayer/ctxsubst/ot"
	"github.com/npillmayer/ctxsubst/otlayout"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadTTX(t *testing.T) *ttxtest.Layout {
	layout, err := ttxtest.ParseTTXFile(filepath.Join("..", "..", "testdata", "gsub5_contextual.ttx"))
	require.NoError(t, err)
	return layout
}

func TestTTXLookups(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()

	layout := loadTTX(t)
	lookups := LookupsFrom(layout.Lookups)
	require.Len(t, lookups, 3)
	for i, l := range lookups {
		assert.Equal(t, i, l.Index)
		assert.Empty(t, l.Errors)
	}
	assert.Equal(t, "glyphs", lookups[0].Formats())
	assert.Equal(t, 3, lookups[0].RuleCount())
	assert.Equal(t, "classes", lookups[1].Formats())
	assert.Equal(t, "coverages", lookups[2].Formats())
}

func TestTTXMatchingWithGDEF(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()

	layout := loadTTX(t)
	lookups := LookupsFrom(layout.Lookups)
	cases := []struct {
		lookup  int
		stream  ot.GlyphSlice
		matched bool
		length  int
		action  int // stream position of the first action, -1 for none
	}{
		{0, ot.GlyphSlice{10, 20, 30}, true, 3, 1},
		{0, ot.GlyphSlice{10, 90, 20, 91, 30}, true, 5, 2}, // marks ignored
		{0, ot.GlyphSlice{10, 20, 31}, true, 2, 0},         // second rule
		{0, ot.GlyphSlice{11, 40}, true, 2, -1},
		{0, ot.GlyphSlice{12, 40}, false, 0, -1},
		{1, ot.GlyphSlice{4, 5}, true, 2, 1},
		{1, ot.GlyphSlice{4, 90, 6}, true, 3, 2},  // 90 is not in mark set 0
		{1, ot.GlyphSlice{4, 91, 6}, false, 0, 0}, // 91 is, and breaks the context
		{1, ot.GlyphSlice{7, 7, 5}, true, 3, -1},
		{2, ot.GlyphSlice{2, 4}, true, 2, 0},
		{2, ot.GlyphSlice{2, 5}, false, 0, 0},
	}
	for i, c := range cases {
		l := lookups[c.lookup]
		skip := FilterFromGDEF(&layout.GDEF, l.MarkFilteringSet).Predicate()
		m := l.Match(c.stream, 0, skip)
		if !assert.Equal(t, c.matched, m.Matched, "case %d", i) || !m.Matched {
			continue
		}
		assert.Equal(t, c.length, m.Length, "case %d", i)
		if c.action < 0 {
			assert.Empty(t, m.Actions(), "case %d", i)
			continue
		}
		require.NotEmpty(t, m.Actions(), "case %d", i)
		pos, ok := m.StreamPosition(m.Actions()[0])
		assert.True(t, ok)
		assert.Equal(t, c.action, pos, "case %d", i)
		assert.Equal(t, uint16(3), m.Actions()[0].LookupListIndex)
	}
}

func TestTTXMatchesIterator(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()

	layout := loadTTX(t)
	lookups := LookupsFrom(layout.Lookups)
	table := lookups[2].Subtables[0]
	var starts []int
	for pos := range otlayout.Matches(ot.GlyphSlice{1, 3, 9, 2, 4, 2}, table, 0, nil) {
		starts = append(starts, pos)
	}
	assert.Equal(t, []int{0, 3}, starts)
}
