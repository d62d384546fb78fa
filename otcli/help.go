package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Infof("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "format", "formats", "context", "contexts":
		pterm.Info.Println("Contextual substitution (GSUB type 5)")
		pterm.Println(`
	A contextual lookup holds subtables in one of three formats:
	+-----------+------------------------------------------------+
	| glyphs    | rules keyed by start glyph, input as glyph IDs |
	| classes   | rules keyed by start class, input as classes   |
	| coverages | a single rule, one coverage per position       |
	+-----------+------------------------------------------------+
	Rules are tried in order; the first rule which matches wins.
	A match reports actions as "lookup@position".
	`)
	case "flag", "flags":
		pterm.Info.Println("Lookup flags")
		pterm.Println(`
	Glyphs ignored by a lookup's flags are passed over while matching:
	+------------------+-------------------------------------------+
	| IgnoreBase       | skip base glyphs (GDEF class 1)           |
	| IgnoreLigatures  | skip ligatures (GDEF class 2)             |
	| IgnoreMarks      | skip all marks (GDEF class 3)             |
	| MarkFilteringSet | skip marks not in the GDEF mark glyph set |
	| MarkAttachType   | skip marks of another attachment class    |
	+------------------+-------------------------------------------+
	`)
	default:
		pterm.Info.Println("Commands")
		pterm.Println(`
	lookups                  list contextual lookups of the font
	rules:<n>                print the rules of lookup n
	match:<n>:<g1,g2,...>    match lookup n against a glyph stream
	text:<n>:<text>          match lookup n against the glyphs of a text
	help[:formats|:flags]    this help
	quit                     leave
	`)
	}
}
