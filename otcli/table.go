package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/npillmayer/ctxsubst/ot"
	"github.com/npillmayer/ctxsubst/otlayout"
	"github.com/npillmayer/ctxsubst/otlayout/gotext"
	"github.com/pterm/pterm"
)

var errNoFont = errors.New("no font loaded")

func lookupsOp(intp *Intp, op *Op) (err error, stop bool) {
	if intp.font == nil {
		return errNoFont, false
	}
	printLookupList(intp.font.ContextLookups())
	return nil, false
}

func rulesOp(intp *Intp, op *Op) (err error, stop bool) {
	var lookup gotext.ContextLookup
	if lookup, err = intp.lookup(op.arg); err != nil {
		return
	}
	printRules(lookup)
	return nil, false
}

func matchOp(intp *Intp, op *Op) (err error, stop bool) {
	var lookup gotext.ContextLookup
	if lookup, err = intp.lookup(op.arg); err != nil {
		return
	}
	var glyphs ot.GlyphSlice
	if glyphs, err = parseGlyphs(op.format); err != nil {
		return
	}
	intp.runMatcher(lookup, glyphs, nil)
	return nil, false
}

func textOp(intp *Intp, op *Op) (err error, stop bool) {
	var lookup gotext.ContextLookup
	if lookup, err = intp.lookup(op.arg); err != nil {
		return
	}
	if op.format == "" {
		return errors.New("usage: text:<lookup>:<text>"), false
	}
	glyphs, runes := intp.font.Glyphs(op.format)
	intp.runMatcher(lookup, glyphs, runes)
	return nil, false
}

func (intp *Intp) runMatcher(lookup gotext.ContextLookup, glyphs ot.GlyphSlice, runes []rune) {
	skip := intp.font.SkipPredicate(lookup)
	printStream(glyphs, runes, skip, lookup.Flags)
	var matches []otlayout.MatchResult
	var starts []int
	for pos := 0; pos < glyphs.Len(); {
		m := lookup.Match(glyphs, pos, skip)
		if !m.Matched {
			pos++
			continue
		}
		matches, starts = append(matches, m), append(starts, pos)
		pos += m.Length
	}
	printMatches(starts, matches)
}

func (intp *Intp) lookup(arg string) (gotext.ContextLookup, error) {
	if intp.font == nil {
		return gotext.ContextLookup{}, errNoFont
	}
	inx, err := strconv.Atoi(arg)
	if err != nil {
		return gotext.ContextLookup{}, fmt.Errorf("lookup index expected, have %q", arg)
	}
	lookup, ok := intp.font.ContextLookup(inx)
	if !ok {
		return gotext.ContextLookup{}, fmt.Errorf("lookup %d is not a contextual substitution", inx)
	}
	return lookup, nil
}

// parseGlyphs parses a comma separated list of glyph indices, e.g. "10,20,30".
func parseGlyphs(s string) (ot.GlyphSlice, error) {
	if s == "" {
		return nil, errors.New("usage: match:<lookup>:<g1,g2,...>")
	}
	fields := strings.Split(s, ",")
	glyphs := make(ot.GlyphSlice, 0, len(fields))
	for _, f := range fields {
		g, err := strconv.ParseUint(strings.TrimSpace(f), 10, 16)
		if err != nil {
			return nil, fmt.Errorf("not a glyph index: %q", f)
		}
		glyphs = append(glyphs, ot.GlyphIndex(g))
	}
	pterm.Debug.Printf("glyph stream %v\n", glyphs)
	return glyphs, nil
}
