package ot

import (
	"errors"
	"slices"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestCoverageMatch(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()

	cov := NewCoverage(30, 10, 11, 12, 20, 11)
	if cov.Len() != 5 {
		t.Fatalf("expected coverage of 5 glyphs, have %d", cov.Len())
	}
	cases := []struct {
		glyph GlyphIndex
		index int
		ok    bool
	}{
		{10, 0, true},
		{11, 1, true},
		{12, 2, true},
		{20, 3, true},
		{30, 4, true},
		{0, 0, false},
		{13, 0, false},
		{21, 0, false},
		{65535, 0, false},
	}
	for _, c := range cases {
		inx, ok := cov.Match(c.glyph)
		if ok != c.ok || (ok && inx != c.index) {
			t.Errorf("Match(%d) = (%d,%v), want (%d,%v)", c.glyph, inx, ok, c.index, c.ok)
		}
		if cov.Contains(c.glyph) != c.ok {
			t.Errorf("Contains(%d) = %v, want %v", c.glyph, !c.ok, c.ok)
		}
	}
	if got := cov.Glyphs(); !slices.Equal(got, []GlyphIndex{10, 11, 12, 20, 30}) {
		t.Errorf("unexpected glyphs %v", got)
	}
	if rs := cov.Ranges(); len(rs) != 3 || rs[0] != (GlyphRange{10, 12}) {
		t.Errorf("unexpected ranges %v", rs)
	}
}

func TestCoverageEmpty(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()

	var zero Coverage
	if zero.Contains(0) || zero.Len() != 0 || len(zero.Glyphs()) != 0 {
		t.Errorf("zero coverage is expected to be empty")
	}
	if NewCoverage().Contains(1) {
		t.Errorf("empty coverage contains glyph")
	}
}

func TestCoverageDoesNotRetainInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()

	glyphs := []GlyphIndex{5, 7}
	cov := NewCoverage(glyphs...)
	glyphs[0] = 99
	if !cov.Contains(5) || cov.Contains(99) {
		t.Errorf("coverage changed after modifying its input")
	}
}

func TestCoverageFromRanges(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()

	cov, err := CoverageFromRanges(GlyphRange{100, 102}, GlyphRange{1, 3}, GlyphRange{4, 4})
	if err != nil {
		t.Fatal(err)
	}
	if cov.Len() != 7 {
		t.Errorf("expected 7 glyphs, have %d", cov.Len())
	}
	if inx, ok := cov.Match(101); !ok || inx != 5 {
		t.Errorf("Match(101) = (%d,%v), want (5,true)", inx, ok)
	}
	if inx, ok := cov.Match(4); !ok || inx != 3 {
		t.Errorf("Match(4) = (%d,%v), want (3,true)", inx, ok)
	}
	if _, err := CoverageFromRanges(GlyphRange{5, 3}); !errors.Is(err, ErrInvalidTableData) {
		t.Errorf("expected reversed range to be rejected, have %v", err)
	}
	if _, err := CoverageFromRanges(GlyphRange{1, 5}, GlyphRange{5, 8}); !errors.Is(err, ErrInvalidTableData) {
		t.Errorf("expected overlapping ranges to be rejected, have %v", err)
	}
}

func TestGlyphSlice(t *testing.T) {
	var seq GlyphSequence = GlyphSlice{1, 2, 3}
	if seq.Len() != 3 || seq.At(2) != 3 {
		t.Errorf("unexpected glyph slice behaviour")
	}
	if (GlyphRange{First: 5, Last: 4}).Len() != 0 {
		t.Errorf("reversed range should be empty")
	}
}
