package main

import (
	"fmt"
	"strings"

	"github.com/npillmayer/ctxsubst/ot"
	"github.com/npillmayer/ctxsubst/otlayout"
	"github.com/npillmayer/ctxsubst/otlayout/gotext"
	"github.com/pterm/pterm"
	"golang.org/x/text/unicode/runenames"
)

func printLookupList(lookups []gotext.ContextLookup) {
	pterm.Printf("GSUB has %d contextual lookups\n", len(lookups))
	if len(lookups) == 0 {
		return
	}
	data := [][]string{
		{"Index", "Formats", "Rules", "Flags", "Errors"},
	}
	for _, l := range lookups {
		data = append(data, []string{
			fmt.Sprintf("%d", l.Index),
			l.Formats(),
			fmt.Sprintf("%d", l.RuleCount()),
			formatLookupFlags(l.Flags, l.MarkFilteringSet),
			fmt.Sprintf("%d", len(l.Errors)),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printRules(lookup gotext.ContextLookup) {
	pterm.Printf("Lookup %d: flags=%s subtables=%d\n", lookup.Index,
		formatLookupFlags(lookup.Flags, lookup.MarkFilteringSet), len(lookup.Subtables))
	for _, err := range lookup.Errors {
		pterm.Error.Println(err)
	}
	data := [][]string{
		{"Sub", "Start", "Rule"},
	}
	for i, table := range lookup.Subtables {
		switch t := table.(type) {
		case *otlayout.GlyphContext:
			for _, g := range t.StartCoverage().Glyphs() {
				for _, r := range t.RulesFor(g, 0, nil) {
					data = append(data, []string{fmt.Sprintf("%d", i), fmt.Sprintf("glyph %d", g), r.String()})
				}
			}
		case *otlayout.ClassContext:
			for class := range t.ClassDefinitions().ClassCount() {
				for _, r := range t.ClassRules(class) {
					data = append(data, []string{fmt.Sprintf("%d", i), fmt.Sprintf("class %d", class), r.String()})
				}
			}
		case *otlayout.CoverageContext:
			data = append(data, []string{fmt.Sprintf("%d", i),
				fmt.Sprintf("%d glyphs", t.StartCoverage().Len()), t.Rule().String()})
		default:
			data = append(data, []string{fmt.Sprintf("%d", i), "-", "<empty>"})
		}
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printStream(glyphs ot.GlyphSlice, runes []rune, skip otlayout.SkipPredicate, flags ot.LayoutTableLookupFlag) {
	data := [][]string{
		{"Pos", "Glyph", "Skipped", "Char"},
	}
	for i, g := range glyphs {
		char := "-"
		if i < len(runes) {
			char = fmt.Sprintf("%q %s", runes[i], runenames.Name(runes[i]))
		}
		skipped := ""
		if skip != nil && skip(g, flags) {
			skipped = "x"
		}
		data = append(data, []string{fmt.Sprintf("%d", i), fmt.Sprintf("%d", g), skipped, char})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printMatches(starts []int, matches []otlayout.MatchResult) {
	if len(matches) == 0 {
		pterm.Info.Println("no match")
		return
	}
	data := [][]string{
		{"Start", "Length", "Positions", "Rule", "Actions"},
	}
	for i, m := range matches {
		data = append(data, []string{
			fmt.Sprintf("%d", starts[i]),
			fmt.Sprintf("%d", m.Length),
			fmt.Sprintf("%v", m.Positions),
			m.Rule.Format().String(),
			formatActions(m),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

// formatActions lists actions as "lookup@stream position".
func formatActions(m otlayout.MatchResult) string {
	actions := m.Actions()
	if len(actions) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(actions))
	for _, a := range actions {
		if pos, ok := m.StreamPosition(a); ok {
			parts = append(parts, fmt.Sprintf("%d@%d", a.LookupListIndex, pos))
		}
	}
	return strings.Join(parts, " ")
}

func formatLookupFlags(flag ot.LayoutTableLookupFlag, markFilteringSet uint16) string {
	if flag == 0 {
		return "-"
	}
	parts := make([]string, 0, 6)
	if flag&ot.LOOKUP_FLAG_RIGHT_TO_LEFT != 0 {
		parts = append(parts, "RightToLeft")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_BASE_GLYPHS != 0 {
		parts = append(parts, "IgnoreBase")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_LIGATURES != 0 {
		parts = append(parts, "IgnoreLigatures")
	}
	if flag&ot.LOOKUP_FLAG_IGNORE_MARKS != 0 {
		parts = append(parts, "IgnoreMarks")
	}
	if flag&ot.LOOKUP_FLAG_USE_MARK_FILTERING_SET != 0 {
		parts = append(parts, fmt.Sprintf("MarkFilteringSet=%d", markFilteringSet))
	}
	if t := flag.MarkAttachmentType(); t != 0 {
		parts = append(parts, fmt.Sprintf("MarkAttachType=%d", t))
	}
	return strings.Join(parts, "|")
}
