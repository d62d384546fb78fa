package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/npillmayer/ctxsubst"
	"github.com/npillmayer/ctxsubst/otlayout"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for inspecting and matching OpenType contextual substitutions.")

	commando.
		Register(nil).
		AddFlag("verbose,V", "display additional output", commando.Bool, nil)

	commando.
		Register("match").
		SetDescription("Match a contextual lookup against a glyph stream or text and print the matches.").
		SetShortDescription("match contexts").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("lookup", "index of a contextual GSUB lookup", "").
		AddArgument("text...", "text to map to glyphs (variadic argument parts joined by comma by commando)", "").
		AddFlag("glyphs,g", "glyph IDs instead of text (comma/space separated, e.g. 10,20,30)", commando.String, "-").
		AddFlag("codepoints,c", "codepoints instead of text (comma/space separated, e.g. U+0627,U+0644)", commando.String, "-").
		AddFlag("checks,k", "enable contract checks", commando.Bool, nil).
		AddFlag("verbose,V", "print the glyph stream before matching", commando.Bool, nil).
		SetAction(runMatchCommand)

	commando.
		Register("font").
		SetDescription("Print names and contextual lookups of an OpenType font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "OpenType font file path", "").
		AddArgument("lookups...", "optional list of lookup indices to print rules for", "").
		AddFlag("errors,e", "print table construction errors", commando.Bool, nil).
		SetAction(runFontCommand)

	commando.Parse(nil)
}

func mustLoadFont(path string) *ctxsubst.Font {
	if path == "" {
		fatalf("font path is required")
	}
	f, err := ctxsubst.LoadFont(path)
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	return f
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func mustFlagString(flag commando.FlagValue, name string) string {
	s, err := flag.GetString()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	if s = strings.TrimSpace(s); s == "-" {
		return ""
	}
	return s
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}

func setContractChecks(flags map[string]commando.FlagValue) {
	if mustFlagBool(flags["checks"], "checks") {
		otlayout.SetContractChecks(true)
	}
}

func parseCodepoints(list string) ([]rune, error) {
	parts := splitCSVSpace(list)
	out := make([]rune, 0, len(parts))
	for _, p := range parts {
		r, err := parseCodepointToken(p)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

func parseCodepointToken(token string) (rune, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, errors.New("empty codepoint token")
	}
	hex := token
	switch {
	case strings.HasPrefix(hex, "U+"), strings.HasPrefix(hex, "u+"):
		hex = hex[2:]
	case strings.HasPrefix(hex, "0x"), strings.HasPrefix(hex, "0X"):
		hex = hex[2:]
	}
	u, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid codepoint %q: %w", token, err)
	}
	return rune(u), nil
}

func splitCSVSpace(list string) []string {
	return strings.FieldsFunc(list, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}
