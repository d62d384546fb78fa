package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/ctxsubst/ot"
	"github.com/npillmayer/ctxsubst/otlayout"
	"github.com/thatisuday/commando"
)

func runMatchCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	f := mustLoadFont(strings.TrimSpace(args["font"].Value))
	setContractChecks(flags)
	inx, err := strconv.Atoi(strings.TrimSpace(args["lookup"].Value))
	if err != nil {
		fatalf("lookup index expected, have %q", args["lookup"].Value)
	}
	lookup, ok := f.ContextLookup(inx)
	if !ok {
		fatalf("lookup %d is not a contextual substitution", inx)
	}
	var glyphs ot.GlyphSlice
	if list := mustFlagString(flags["glyphs"], "glyphs"); list != "" {
		if glyphs, err = parseGlyphs(list); err != nil {
			fatalf("%v", err)
		}
	} else {
		text := strings.ReplaceAll(args["text"].Value, ",", " ")
		if cp := mustFlagString(flags["codepoints"], "codepoints"); cp != "" {
			runes, err := parseCodepoints(cp)
			if err != nil {
				fatalf("%v", err)
			}
			text = string(runes)
		}
		glyphs, _ = f.Glyphs(text)
	}
	if mustFlagBool(flags["verbose"], "verbose") {
		fmt.Printf("glyphs: %v\n", glyphs)
	}
	skip := f.SkipPredicate(lookup)
	for pos := 0; pos < glyphs.Len(); {
		m := lookup.Match(glyphs, pos, skip)
		if !m.Matched {
			pos++
			continue
		}
		fmt.Println(formatMatch(pos, m))
		pos += m.Length
	}
}

func parseGlyphs(list string) (ot.GlyphSlice, error) {
	parts := splitCSVSpace(list)
	glyphs := make(ot.GlyphSlice, 0, len(parts))
	for _, p := range parts {
		g, err := strconv.ParseUint(p, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("invalid glyph ID %q: %w", p, err)
		}
		glyphs = append(glyphs, ot.GlyphIndex(g))
	}
	return glyphs, nil
}

// formatMatch prints a match as "start+length positions => lookup@position ...".
func formatMatch(start int, m otlayout.MatchResult) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d+%d %v =>", start, m.Length, m.Positions)
	for _, a := range m.Actions() {
		if pos, ok := m.StreamPosition(a); ok {
			fmt.Fprintf(&sb, " %d@%d", a.LookupListIndex, pos)
		}
	}
	return sb.String()
}
