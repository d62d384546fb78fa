package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/ctxsubst"
	"github.com/npillmayer/ctxsubst/otlayout"
	"github.com/thatisuday/commando"
)

func runFontCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := strings.TrimSpace(args["font"].Value)
	f := mustLoadFont(fontPath)

	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Name: %s\n", f.Name())
	family, subfamily := ctxsubst.FamilyName(f)
	if family != "" {
		fmt.Printf("Family: %s\n", family)
	}
	if subfamily != "" {
		fmt.Printf("Subfamily: %s\n", subfamily)
	}

	lookups := f.ContextLookups()
	fmt.Printf("Contextual lookups (%d):\n", len(lookups))
	issues := 0
	for _, l := range lookups {
		fmt.Printf("  %3d  %-20s rules=%d flags=0x%04x\n", l.Index, l.Formats(), l.RuleCount(), uint16(l.Flags))
		issues += len(l.Errors)
	}
	fmt.Printf("Issues: %d\n", issues)

	if len(args["lookups"].Value) > 0 {
		printSelectedLookups(f, args["lookups"].Value)
	}
	if mustFlagBool(flags["errors"], "errors") {
		for _, l := range lookups {
			for _, err := range l.Errors {
				fmt.Printf("error: %s\n", err.Error())
			}
		}
	}
}

func printSelectedLookups(f *ctxsubst.Font, raw string) {
	for _, item := range splitCSVSpace(raw) {
		inx, err := strconv.Atoi(item)
		if err != nil {
			fmt.Printf("lookup %q: not an index\n", item)
			continue
		}
		l, ok := f.ContextLookup(inx)
		if !ok {
			fmt.Printf("lookup %d: not contextual\n", inx)
			continue
		}
		fmt.Printf("lookup %d:\n", inx)
		for i, table := range l.Subtables {
			fmt.Printf("  subtable %d (%s)\n", i, table.Format())
			for _, r := range rulesOf(table) {
				fmt.Printf("    %s\n", r)
			}
		}
	}
}

// rulesOf lists the rules of a table in matching order per start glyph or class.
func rulesOf(table otlayout.SequenceContext) []string {
	var rules []string
	switch t := table.(type) {
	case *otlayout.GlyphContext:
		for _, g := range t.StartCoverage().Glyphs() {
			for _, r := range t.RulesFor(g, 0, nil) {
				rules = append(rules, fmt.Sprintf("%d: %s", g, r))
			}
		}
	case *otlayout.ClassContext:
		for class := range t.ClassDefinitions().ClassCount() {
			for _, r := range t.ClassRules(class) {
				rules = append(rules, fmt.Sprintf("class %d: %s", class, r))
			}
		}
	case *otlayout.CoverageContext:
		rules = append(rules, t.Rule().String())
	}
	return rules
}
