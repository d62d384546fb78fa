package gotext

import (
	"fmt"
	"strings"

	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype/tables"
	"github.com/npillmayer/ctxsubst/ot"
	"github.com/npillmayer/ctxsubst/otlayout"
)

// ContextLookup is a GSUB lookup of type 5 (contextual substitution).
type ContextLookup struct {
	Index            int                        // index into the GSUB lookup list
	Flags            ot.LayoutTableLookupFlag   // lookup flags
	MarkFilteringSet uint16                     // valid if Flags has LOOKUP_FLAG_USE_MARK_FILTERING_SET
	Subtables        []otlayout.SequenceContext // never nil entries
	Errors           []error                    // conversion errors of rejected subtables
}

// Lookups collects the contextual substitution lookups of a font.
func Lookups(f *font.Font) []ContextLookup {
	if f == nil {
		return nil
	}
	return LookupsFrom(f.GSUB.Lookups)
}

// LookupsFrom collects the contextual substitution lookups from a GSUB lookup
// list. Lookups of other types are ignored. A subtable which cannot be
// converted is replaced by otlayout.EmptyContext and its error is recorded.
func LookupsFrom(lookups []font.GSUBLookup) []ContextLookup {
	var result []ContextLookup
	for i, lookup := range lookups {
		if !isContextual(lookup.Subtables) {
			if len(lookup.Subtables) > 0 {
				tracer().Debugf("GSUB lookup %d has type %s", i, LookupType(lookup.Subtables[0]))
			}
			continue
		}
		cl := ContextLookup{
			Index:            i,
			Flags:            ot.LayoutTableLookupFlag(lookup.Flag),
			MarkFilteringSet: lookup.MarkFilteringSet,
			Subtables:        make([]otlayout.SequenceContext, 0, len(lookup.Subtables)),
		}
		for j, sub := range lookup.Subtables {
			table, err := FromSequenceContext(sub)
			if err != nil {
				tracer().Errorf("GSUB lookup %d, subtable %d: %v", i, j, err)
				cl.Errors = append(cl.Errors, fmt.Errorf("lookup %d, subtable %d: %w", i, j, err))
				table = otlayout.EmptyContext
			}
			cl.Subtables = append(cl.Subtables, table)
		}
		result = append(result, cl)
	}
	tracer().Debugf("found %d contextual GSUB lookups in %d lookups", len(result), len(lookups))
	return result
}

func isContextual(subtables []tables.GSUBLookup) bool {
	for _, sub := range subtables {
		if LookupType(sub) == ot.GSubLookupTypeContext {
			return true
		}
	}
	return false
}

// LookupType returns the GSUB lookup type of a decoded subtable, or 0 for
// subtables unknown to go-text.
func LookupType(sub tables.GSUBLookup) ot.LayoutTableLookupType {
	switch sub.(type) {
	case tables.SingleSubs:
		return ot.GSubLookupTypeSingle
	case tables.MultipleSubs:
		return ot.GSubLookupTypeMultiple
	case tables.AlternateSubs:
		return ot.GSubLookupTypeAlternate
	case tables.LigatureSubs:
		return ot.GSubLookupTypeLigature
	case tables.ContextualSubs:
		return ot.GSubLookupTypeContext
	case tables.ChainedContextualSubs:
		return ot.GSubLookupTypeChainingContext
	case tables.ExtensionSubs:
		return ot.GSubLookupTypeExtensionSubs
	case tables.ReverseChainSingleSubs:
		return ot.GSubLookupTypeReverseChaining
	}
	return 0
}

// Match tries the subtables of the lookup in order and returns the first match.
func (l ContextLookup) Match(stream ot.GlyphSequence, start int, skip otlayout.SkipPredicate) otlayout.MatchResult {
	for _, table := range l.Subtables {
		if m := otlayout.TryMatch(stream, start, table, l.Flags, skip); m.Matched {
			return m
		}
	}
	return otlayout.NoMatch
}

// RuleCount returns the number of rules over all subtables.
func (l ContextLookup) RuleCount() int {
	n := 0
	for _, table := range l.Subtables {
		n += table.RuleCount()
	}
	return n
}

// Formats lists the formats of the subtables, e.g. "classes,coverages".
func (l ContextLookup) Formats() string {
	formats := make([]string, len(l.Subtables))
	for i, table := range l.Subtables {
		formats[i] = table.Format().String()
	}
	return strings.Join(formats, ",")
}

// GlyphFilter creates a skip filter for a lookup from the GDEF table of a font.
func GlyphFilter(f *font.Font, markFilteringSet uint16) *otlayout.GlyphFilter {
	if f == nil {
		return otlayout.NewGlyphFilter(nil, nil, nil, markFilteringSet)
	}
	return FilterFromGDEF(&f.GDEF, markFilteringSet)
}

// FilterFromGDEF creates a skip filter from GDEF data. Parts of GDEF which
// cannot be converted are treated as empty.
func FilterFromGDEF(gdef *tables.GDEF, markFilteringSet uint16) *otlayout.GlyphFilter {
	if gdef == nil {
		return otlayout.NewGlyphFilter(nil, nil, nil, markFilteringSet)
	}
	var glyphClasses, markAttachClasses *ot.ClassDefinitions
	var err error
	if gdef.GlyphClassDef != nil {
		if glyphClasses, err = convertClassDef(gdef.GlyphClassDef); err != nil {
			tracer().Errorf("GDEF glyph classes: %v", err)
		}
	}
	if gdef.MarkAttachClass != nil {
		if markAttachClasses, err = convertClassDef(gdef.MarkAttachClass); err != nil {
			tracer().Errorf("GDEF mark attachment classes: %v", err)
		}
	}
	markSets := make([]ot.Coverage, 0, len(gdef.MarkGlyphSetsDef.Coverages))
	for i, c := range gdef.MarkGlyphSetsDef.Coverages {
		cov, err := convertCoverage(c)
		if err != nil {
			tracer().Errorf("GDEF mark glyph set %d: %v", i, err)
		}
		markSets = append(markSets, cov)
	}
	return otlayout.NewGlyphFilter(glyphClasses, markAttachClasses, markSets, markFilteringSet)
}
