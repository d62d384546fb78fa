package gotext

import (
	"fmt"

	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/ctxsubst/ot"
	"github.com/npillmayer/ctxsubst/otlayout"
)

// FromSequenceContext converts a GSUB type 5 subtable into a SequenceContext.
// It returns an error wrapping ot.ErrInvalidTableData if the subtable is
// inconsistent, and an error if sub is not a contextual substitution.
func FromSequenceContext(sub tables.GSUBLookup) (otlayout.SequenceContext, error) {
	ctx, ok := sub.(tables.ContextualSubs)
	if !ok {
		return nil, fmt.Errorf("GSUB subtable of type %T is not a contextual substitution", sub)
	}
	switch data := ctx.Data.(type) {
	case tables.ContextualSubs1:
		return fromFormat1(data)
	case tables.ContextualSubs2:
		return fromFormat2(data)
	case tables.ContextualSubs3:
		return fromFormat3(data)
	}
	return nil, ot.InvalidTable("SequenceContext", "unknown subtable format %T", ctx.Data)
}

// Format 1: rule set i belongs to the glyph with coverage index i.
func fromFormat1(data tables.ContextualSubs1) (otlayout.SequenceContext, error) {
	starts, err := coverageGlyphs(data.Cov())
	if err != nil {
		return nil, fmt.Errorf("GSUB 5|1 coverage: %w", err)
	}
	if len(starts) != len(data.SeqRuleSet) {
		tracer().Infof("GSUB 5|1 has %d rule sets for %d covered glyphs", len(data.SeqRuleSet), len(starts))
	}
	ruleSets := make(map[ot.GlyphIndex][]*otlayout.ContextRule, len(data.SeqRuleSet))
	for i, set := range data.SeqRuleSet {
		if i >= len(starts) {
			break
		}
		rules := make([]*otlayout.ContextRule, 0, len(set.SeqRule))
		for _, r := range set.SeqRule {
			input := make([]ot.GlyphIndex, len(r.InputSequence))
			for j, g := range r.InputSequence {
				input[j] = ot.GlyphIndex(g)
			}
			rules = append(rules, otlayout.NewGlyphRule(input, convertActions(r.SeqLookupRecords)...))
		}
		ruleSets[starts[i]] = append(ruleSets[starts[i]], rules...)
	}
	return otlayout.NewGlyphContext(ruleSets)
}

// Format 2: rule set i belongs to start class i. The number of declared classes
// is the larger one of the class definition's extent and the number of rule sets.
func fromFormat2(data tables.ContextualSubs2) (otlayout.SequenceContext, error) {
	cov, err := convertCoverage(data.Cov())
	if err != nil {
		return nil, fmt.Errorf("GSUB 5|2 coverage: %w", err)
	}
	cdef, err := convertClassDef(data.ClassDef)
	if err != nil {
		return nil, fmt.Errorf("GSUB 5|2 class definitions: %w", err)
	}
	n := max(len(data.ClassSeqRuleSet), 1)
	if data.ClassDef != nil {
		n = max(n, data.ClassDef.Extent())
	}
	if cdef, err = cdef.WithClassCount(n); err != nil {
		return nil, err
	}
	subclassSets := make([][]*otlayout.ContextRule, n)
	for class, set := range data.ClassSeqRuleSet {
		for _, r := range set.SeqRule { // input holds classes, not glyph IDs
			rule := otlayout.NewClassRule(r.InputSequence, convertActions(r.SeqLookupRecords)...)
			subclassSets[class] = append(subclassSets[class], rule)
		}
	}
	return otlayout.NewClassContext(cov, cdef, subclassSets)
}

// Format 3: one coverage per context position.
func fromFormat3(data tables.ContextualSubs3) (otlayout.SequenceContext, error) {
	coverages := make([]ot.Coverage, len(data.Coverages))
	for i, c := range data.Coverages {
		cov, err := convertCoverage(c)
		if err != nil {
			return nil, fmt.Errorf("GSUB 5|3 coverage #%d: %w", i, err)
		}
		coverages[i] = cov
	}
	return otlayout.NewCoverageContext(coverages, convertActions(data.SeqLookupRecords)...)
}
