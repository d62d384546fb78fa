package ttxtest

import (
	"encoding/binary"
	"fmt"

	"github.com/go-text/typesetting/font/opentype/tables"
)

// go-text keeps the start coverage of contextual subtables in formats 1 and 2
// unexported. Subtables in these formats are therefore written in OpenType
// binary form and decoded by go-text, the way a font loader would produce them.

// ContextualSubs1 creates a GSUB type 5 subtable in format 1. Rule set i
// belongs to the glyph with coverage index i; a rule set without rules is
// written as a NULL offset.
func ContextualSubs1(cov tables.Coverage, ruleSets []tables.SequenceRuleSet) (tables.ContextualSubs, error) {
	covData, err := encodeCoverage(cov)
	if err != nil {
		return tables.ContextualSubs{}, err
	}
	header := u16s(1, 0, uint16(len(ruleSets)))
	children := [][]byte{covData}
	slots := []int{2}
	for i, set := range ruleSets {
		slots = append(slots, 6+2*i)
		children = append(children, encodeRuleSet(set))
		header = append(header, 0, 0)
	}
	return decodeContextualSubs(header, slots, children)
}

// ContextualSubs2 creates a GSUB type 5 subtable in format 2. Rule set i
// belongs to start class i; rule input sequences hold classes.
// A nil cdef is written as a NULL offset.
func ContextualSubs2(cov tables.Coverage, cdef tables.ClassDef, ruleSets []tables.SequenceRuleSet) (tables.ContextualSubs, error) {
	covData, err := encodeCoverage(cov)
	if err != nil {
		return tables.ContextualSubs{}, err
	}
	cdefData, err := encodeClassDef(cdef)
	if err != nil {
		return tables.ContextualSubs{}, err
	}
	header := u16s(2, 0, 0, uint16(len(ruleSets)))
	children := [][]byte{covData, cdefData}
	slots := []int{2, 4}
	for i, set := range ruleSets {
		slots = append(slots, 8+2*i)
		children = append(children, encodeRuleSet(set))
		header = append(header, 0, 0)
	}
	return decodeContextualSubs(header, slots, children)
}

func decodeContextualSubs(header []byte, slots []int, children [][]byte) (tables.ContextualSubs, error) {
	data, err := withOffsets(header, slots, children)
	if err != nil {
		return tables.ContextualSubs{}, err
	}
	sub, _, err := tables.ParseContextualSubs(data)
	return sub, err
}

// withOffsets appends children to header and stores the offset of child i,
// counted from the start of header, at header position slots[i].
// Nil children get a NULL offset.
func withOffsets(header []byte, slots []int, children [][]byte) ([]byte, error) {
	out := append([]byte(nil), header...)
	for i, child := range children {
		if child == nil {
			continue
		}
		if len(out) > 0xffff {
			return nil, fmt.Errorf("ttx: subtable exceeds 16-bit offsets")
		}
		binary.BigEndian.PutUint16(out[slots[i]:], uint16(len(out)))
		out = append(out, child...)
	}
	return out, nil
}

func encodeRuleSet(set tables.SequenceRuleSet) []byte {
	if len(set.SeqRule) == 0 {
		return nil
	}
	header := make([]byte, 2+2*len(set.SeqRule))
	binary.BigEndian.PutUint16(header, uint16(len(set.SeqRule)))
	slots := make([]int, len(set.SeqRule))
	children := make([][]byte, len(set.SeqRule))
	for i, r := range set.SeqRule {
		slots[i] = 2 + 2*i
		children[i] = encodeRule(r)
	}
	data, _ := withOffsets(header, slots, children) // rules are small
	return data
}

func encodeRule(r tables.SequenceRule) []byte {
	out := u16s(uint16(len(r.InputSequence)+1), uint16(len(r.SeqLookupRecords)))
	out = append(out, u16s(r.InputSequence...)...)
	for _, rec := range r.SeqLookupRecords {
		out = append(out, u16s(rec.SequenceIndex, rec.LookupListIndex)...)
	}
	return out
}

func encodeCoverage(cov tables.Coverage) ([]byte, error) {
	switch c := cov.(type) {
	case tables.Coverage1:
		return append(u16s(1, uint16(len(c.Glyphs))), u16s(c.Glyphs...)...), nil
	case tables.Coverage2:
		out := u16s(2, uint16(len(c.Ranges)))
		for _, r := range c.Ranges {
			out = append(out, u16s(r.StartGlyphID, r.EndGlyphID, r.StartCoverageIndex)...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("ttx: cannot encode coverage %T", cov)
}

func encodeClassDef(cdef tables.ClassDef) ([]byte, error) {
	switch c := cdef.(type) {
	case nil:
		return nil, nil
	case tables.ClassDef1:
		out := u16s(1, c.StartGlyphID, uint16(len(c.ClassValueArray)))
		return append(out, u16s(c.ClassValueArray...)...), nil
	case tables.ClassDef2:
		out := u16s(2, uint16(len(c.ClassRangeRecords)))
		for _, r := range c.ClassRangeRecords {
			out = append(out, u16s(r.StartGlyphID, r.EndGlyphID, r.Class)...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("ttx: cannot encode class definition %T", cdef)
}

func u16s(values ...uint16) []byte {
	out := make([]byte, 0, 2*len(values))
	for _, v := range values {
		out = binary.BigEndian.AppendUint16(out, v)
	}
	return out
}
