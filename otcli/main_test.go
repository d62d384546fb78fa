package main

import (
	"testing"

	"github.com/npillmayer/ctxsubst/ot"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()

	cmd, err := parseCommand("lookups rules:3 match:3:10,20,30")
	require.NoError(t, err)
	assert.Equal(t, 3, cmd.count)
	assert.Equal(t, LOOKUPS, cmd.op[0].code)
	assert.Equal(t, Op{code: RULES, arg: "3"}, cmd.op[1])
	assert.Equal(t, Op{code: MATCH, arg: "3", format: "10,20,30"}, cmd.op[2])
	assert.Equal(t, NOOP, cmd.op[3].code)

	cmd, err = parseCommand("text:4:a b:c")
	require.NoError(t, err)
	assert.Equal(t, Op{code: TEXT, arg: "4", format: "a b:c"}, cmd.op[0])

	cmd, err = parseCommand("frobnicate")
	require.NoError(t, err)
	assert.Equal(t, HELP, cmd.op[0].code)
}

func TestParseGlyphs(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()

	glyphs, err := parseGlyphs("10, 20,30")
	require.NoError(t, err)
	assert.Equal(t, ot.GlyphSlice{10, 20, 30}, glyphs)
	_, err = parseGlyphs("10,x")
	assert.Error(t, err)
	_, err = parseGlyphs("70000")
	assert.Error(t, err)
	_, err = parseGlyphs("")
	assert.Error(t, err)
}
