package otlayout

import (
	"slices"

	"github.com/npillmayer/ctxsubst/ot"
)

// LookupType 5: Contextual Substitution
//
// A SequenceContext selects the candidate rules for a start glyph. Rule lists
// are ordered by priority: the first rule which fully matches wins.
//
// SequenceContext is implemented by *GlyphContext, *ClassContext,
// *CoverageContext and EmptyContext only.
type SequenceContext interface {
	// Format returns the input sequence encoding of the table's rules.
	Format() ContextFormat
	// StartCoverage returns the set of glyphs which may start a match.
	StartCoverage() ot.Coverage
	// RulesFor returns the candidate rules for start glyph g, in priority order.
	// If g is not covered or skip marks it as ignorable, the result is empty.
	// The result is a copy and may be modified by the caller.
	RulesFor(g ot.GlyphIndex, flags ot.LayoutTableLookupFlag, skip SkipPredicate) []*ContextRule
	// RuleCount returns the total number of rules in the table.
	RuleCount() int

	// candidates is RulesFor without the copy. Its result must not be modified.
	candidates(g ot.GlyphIndex, flags ot.LayoutTableLookupFlag, skip SkipPredicate) []*ContextRule
	sequenceContext()
}

// --- Format 1 --------------------------------------------------------------

// GlyphContext is a contextual substitution table in format 1 (simple glyph
// contexts). Rule sets are keyed by the glyph ID of the start glyph; rules
// express the remaining input sequence as glyph IDs.
type GlyphContext struct {
	coverage ot.Coverage
	ruleSets map[ot.GlyphIndex][]*ContextRule
	count    int
}

// NewGlyphContext creates a format 1 table from rule sets keyed by start glyph.
// Every rule must have been created by NewGlyphRule. Empty rule sets are dropped.
// Neither the map nor its slices are retained.
func NewGlyphContext(ruleSets map[ot.GlyphIndex][]*ContextRule) (*GlyphContext, error) {
	c := &GlyphContext{ruleSets: make(map[ot.GlyphIndex][]*ContextRule, len(ruleSets))}
	starts := make([]ot.GlyphIndex, 0, len(ruleSets))
	for g, rules := range ruleSets {
		if len(rules) == 0 {
			continue
		}
		for _, r := range rules {
			if r == nil || r.format != GlyphSequenceFormat {
				return nil, ot.InvalidTable("GlyphSequenceContext", "rule for start glyph %d is not a glyph sequence rule", g)
			}
			if err := r.checkActions("GlyphSequenceContext"); err != nil {
				return nil, err
			}
		}
		c.ruleSets[g] = slices.Clone(rules)
		c.count += len(rules)
		starts = append(starts, g)
	}
	c.coverage = ot.NewCoverage(starts...)
	tracer().Debugf("GSUB 5|1 context with %d start glyphs, %d rules", len(starts), c.count)
	return c, nil
}

func (c *GlyphContext) Format() ContextFormat      { return GlyphSequenceFormat }
func (c *GlyphContext) StartCoverage() ot.Coverage { return c.coverage }
func (c *GlyphContext) RuleCount() int             { return c.count }
func (c *GlyphContext) sequenceContext()           {}

func (c *GlyphContext) RulesFor(g ot.GlyphIndex, flags ot.LayoutTableLookupFlag, skip SkipPredicate) []*ContextRule {
	return slices.Clone(c.candidates(g, flags, skip))
}

func (c *GlyphContext) candidates(g ot.GlyphIndex, flags ot.LayoutTableLookupFlag, skip SkipPredicate) []*ContextRule {
	if skip.skips(g, flags) {
		return nil
	}
	return c.ruleSets[g]
}

// --- Format 2 --------------------------------------------------------------

// ClassContext is a contextual substitution table in format 2 (class-based
// glyph contexts). A coverage selects eligible start glyphs; rule sets are
// indexed by the class of the start glyph, and rules express the remaining
// input sequence as classes. All rules compare against the table's class
// definitions.
type ClassContext struct {
	coverage     ot.Coverage
	classDef     *ot.ClassDefinitions
	subclassSets [][]*ContextRule
	count        int
}

// NewClassContext creates a format 2 table. subclassSets is indexed by class
// and must have exactly classDef.ClassCount() entries, some of which may be
// empty. Every rule must have been created by NewClassRule.
//
// Rule values are not modified; the table holds copies bound to classDef.
func NewClassContext(cov ot.Coverage, classDef *ot.ClassDefinitions, subclassSets [][]*ContextRule) (*ClassContext, error) {
	if classDef == nil {
		return nil, ot.InvalidTable("ClassSequenceContext", "missing class definitions")
	}
	if len(subclassSets) != classDef.ClassCount() {
		return nil, ot.InvalidTable("ClassSequenceContext", "%d class sequence rule sets for %d declared classes",
			len(subclassSets), classDef.ClassCount())
	}
	c := &ClassContext{
		coverage:     cov,
		classDef:     classDef,
		subclassSets: make([][]*ContextRule, len(subclassSets)),
	}
	for class, rules := range subclassSets {
		if len(rules) == 0 {
			continue
		}
		bound := make([]*ContextRule, len(rules))
		for i, r := range rules {
			if r == nil || r.format != ClassSequenceFormat {
				return nil, ot.InvalidTable("ClassSequenceContext", "rule #%d of class %d is not a class sequence rule", i, class)
			}
			if err := r.checkActions("ClassSequenceContext"); err != nil {
				return nil, err
			}
			bound[i] = r.bindClasses(classDef)
		}
		c.subclassSets[class] = bound
		c.count += len(bound)
	}
	tracer().Debugf("GSUB 5|2 context with %d classes, %d rules", len(subclassSets), c.count)
	return c, nil
}

func (c *ClassContext) Format() ContextFormat      { return ClassSequenceFormat }
func (c *ClassContext) StartCoverage() ot.Coverage { return c.coverage }
func (c *ClassContext) RuleCount() int             { return c.count }
func (c *ClassContext) sequenceContext()           {}

// ClassDefinitions returns the class definitions shared by all rules of the table.
func (c *ClassContext) ClassDefinitions() *ot.ClassDefinitions {
	return c.classDef
}

// ClassRules returns a copy of the rule set for start class class, or nil.
func (c *ClassContext) ClassRules(class int) []*ContextRule {
	if class < 0 || class >= len(c.subclassSets) {
		return nil
	}
	return slices.Clone(c.subclassSets[class])
}

func (c *ClassContext) RulesFor(g ot.GlyphIndex, flags ot.LayoutTableLookupFlag, skip SkipPredicate) []*ContextRule {
	return slices.Clone(c.candidates(g, flags, skip))
}

func (c *ClassContext) candidates(g ot.GlyphIndex, flags ot.LayoutTableLookupFlag, skip SkipPredicate) []*ContextRule {
	if !c.coverage.Contains(g) || skip.skips(g, flags) {
		return nil
	}
	return c.subclassSets[c.classDef.Class(g)]
}

// --- Format 3 --------------------------------------------------------------

// CoverageContext is a contextual substitution table in format 3 (coverage-based
// glyph contexts). It holds exactly one rule, with a coverage for every context
// position, starting with the start glyph.
type CoverageContext struct {
	rules []*ContextRule // exactly one rule
}

// NewCoverageContext creates a format 3 table. coverages must not be empty.
// Arguments are not retained.
func NewCoverageContext(coverages []ot.Coverage, actions ...ot.SequenceLookupRecord) (*CoverageContext, error) {
	if len(coverages) == 0 {
		return nil, ot.InvalidTable("CoverageSequenceContext", "no input coverages")
	}
	r := &ContextRule{
		format:    CoverageSequenceFormat,
		coverages: slices.Clone(coverages),
		actions:   slices.Clone(actions),
	}
	if err := r.checkActions("CoverageSequenceContext"); err != nil {
		return nil, err
	}
	tracer().Debugf("GSUB 5|3 context with %d coverages", len(coverages))
	return &CoverageContext{rules: []*ContextRule{r}}, nil
}

func (c *CoverageContext) Format() ContextFormat      { return CoverageSequenceFormat }
func (c *CoverageContext) StartCoverage() ot.Coverage { return c.rules[0].coverages[0] }
func (c *CoverageContext) RuleCount() int             { return 1 }
func (c *CoverageContext) sequenceContext()           {}

// Rule returns the single rule of the table.
func (c *CoverageContext) Rule() *ContextRule {
	return c.rules[0]
}

func (c *CoverageContext) RulesFor(g ot.GlyphIndex, flags ot.LayoutTableLookupFlag, skip SkipPredicate) []*ContextRule {
	return slices.Clone(c.candidates(g, flags, skip))
}

func (c *CoverageContext) candidates(g ot.GlyphIndex, flags ot.LayoutTableLookupFlag, skip SkipPredicate) []*ContextRule {
	if !c.rules[0].coverages[0].Contains(g) || skip.skips(g, flags) {
		return nil
	}
	return c.rules
}

// --- Empty table -----------------------------------------------------------

// EmptyContext is a table without rules. Table-construction code may use it in
// place of a subtable it had to reject, degrading to “no substitution”.
var EmptyContext SequenceContext = emptyContext{}

type emptyContext struct{}

func (emptyContext) Format() ContextFormat      { return NoContextFormat }
func (emptyContext) StartCoverage() ot.Coverage { return ot.Coverage{} }
func (emptyContext) RuleCount() int             { return 0 }
func (emptyContext) sequenceContext()           {}

func (emptyContext) RulesFor(ot.GlyphIndex, ot.LayoutTableLookupFlag, SkipPredicate) []*ContextRule {
	return nil
}

func (emptyContext) candidates(ot.GlyphIndex, ot.LayoutTableLookupFlag, SkipPredicate) []*ContextRule {
	return nil
}
