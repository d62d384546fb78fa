package otlayout

import (
	"iter"
	"slices"

	"github.com/npillmayer/ctxsubst/ot"
)

// SkipPredicate decides whether a glyph is to be ignored while matching a
// context, given the lookup flags of the lookup being applied. Ignored glyphs
// neither consume a context position nor break a match.
//
// A nil SkipPredicate ignores no glyph.
type SkipPredicate func(g ot.GlyphIndex, flags ot.LayoutTableLookupFlag) bool

func (skip SkipPredicate) skips(g ot.GlyphIndex, flags ot.LayoutTableLookupFlag) bool {
	return skip != nil && skip(g, flags)
}

// SkipGlyphs returns a SkipPredicate which ignores the given glyphs, whatever
// the lookup flags.
func SkipGlyphs(glyphs ...ot.GlyphIndex) SkipPredicate {
	cov := ot.NewCoverage(glyphs...)
	return func(g ot.GlyphIndex, _ ot.LayoutTableLookupFlag) bool {
		return cov.Contains(g)
	}
}

// MatchResult is the outcome of TryMatch. The zero value means “no match”.
type MatchResult struct {
	Matched   bool
	Length    int          // number of stream positions spanned, skipped glyphs included
	Rule      *ContextRule // the rule which matched
	Positions []int        // stream index of every context position, Positions[0] = start
}

// NoMatch is the result of an unsuccessful match.
var NoMatch = MatchResult{}

// Actions returns a copy of the sequence lookup records of the matched rule,
// with values as stored in the rule. SequenceIndex of a record refers to
// Positions, not to stream indices.
func (m MatchResult) Actions() []ot.SequenceLookupRecord {
	if m.Rule == nil {
		return nil
	}
	return m.Rule.Actions()
}

// StreamPosition resolves the sequence index of an action to a stream index.
func (m MatchResult) StreamPosition(a ot.SequenceLookupRecord) (int, bool) {
	if int(a.SequenceIndex) >= len(m.Positions) {
		return 0, false
	}
	return m.Positions[a.SequenceIndex], true
}

// TryMatch matches the rules of table against stream, starting at stream
// index start. Candidate rules are tried in priority order and the first rule
// whose context fully matches is returned. Glyphs for which skip holds are
// passed over while scanning the context.
//
// TryMatch never fails: if start is out of range, the table has no rules for
// the start glyph, or the stream ends before a rule's context is complete, the
// result is NoMatch.
func TryMatch(stream ot.GlyphSequence, start int, table SequenceContext,
	flags ot.LayoutTableLookupFlag, skip SkipPredicate) MatchResult {
	//
	if stream == nil || table == nil || start < 0 || start >= stream.Len() {
		return NoMatch
	}
	rules := table.candidates(stream.At(start), flags, skip)
	if len(rules) == 0 {
		return NoMatch
	}
	var scratch [16]int
	for i, rule := range rules {
		positions, ok := matchRule(stream, start, rule, flags, skip, scratch[:0])
		if !ok {
			continue
		}
		tracer().Debugf("GSUB 5|%d rule #%d matched at positions %v", rule.format, i, positions)
		return MatchResult{
			Matched:   true,
			Length:    positions[len(positions)-1] - start + 1,
			Rule:      rule,
			Positions: slices.Clone(positions),
		}
	}
	return NoMatch
}

// matchRule scans forward from start, testing context positions 1…n-1 of rule
// against the next glyphs not ignored by skip. It returns the stream indices of
// all context positions.
func matchRule(stream ot.GlyphSequence, start int, rule *ContextRule,
	flags ot.LayoutTableLookupFlag, skip SkipPredicate, positions []int) ([]int, bool) {
	//
	positions = append(positions, start)
	cursor, n := start+1, rule.ContextLength()
	for at := 1; at < n; at++ {
		for cursor < stream.Len() && skip.skips(stream.At(cursor), flags) {
			cursor++
		}
		if cursor >= stream.Len() || !rule.Matches(stream.At(cursor), at) {
			return positions, false
		}
		positions = append(positions, cursor)
		cursor++
	}
	return positions, true
}

// Matches iterates over the matches of table in stream, from left to right.
// At a position without a match the scan advances by one glyph; after a match
// it continues behind the matched span. Substitutions are not applied, i.e.
// matches are reported against the unchanged stream.
func Matches(stream ot.GlyphSequence, table SequenceContext,
	flags ot.LayoutTableLookupFlag, skip SkipPredicate) iter.Seq2[int, MatchResult] {
	//
	return func(yield func(int, MatchResult) bool) {
		if stream == nil {
			return
		}
		for pos := 0; pos < stream.Len(); {
			m := TryMatch(stream, pos, table, flags, skip)
			if !m.Matched {
				pos++
				continue
			}
			if !yield(pos, m) {
				return
			}
			pos += m.Length
		}
	}
}
