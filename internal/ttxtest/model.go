package ttxtest

import (
	"github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/font/opentype/tables"
)

// Layout holds the layout tables read from a TTX dump, in the form go-text
// decodes them from a font binary. Tests use it to feed the table builders
// without needing font files.
//
// Only contextual substitution (GSUB type 5) lookups are read; lookups of
// other types are kept in the lookup list, without subtables, to preserve
// lookup indices.
type Layout struct {
	Lookups []font.GSUBLookup
	GDEF    tables.GDEF
}
