package fontload

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	"github.com/npillmayer/schuko/tracing"
	"golang.org/x/image/font/sfnt"
)

// tracer writes to trace with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

// ScalableFont is a parsed scalable font with original bytes, an SFNT view for
// naming, and the decoded layout tables.
type ScalableFont struct {
	Fontname string
	Binary   []byte
	SFNT     *sfnt.Font
	Layout   *font.Font // decoded by go-text; read-only and safe for concurrent use
}

// LoadOpenTypeFont loads an OpenType font (TTF or OTF) from a file.
func LoadOpenTypeFont(fontfile string) (*ScalableFont, error) {
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := ParseOpenTypeFont(bytez)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", fontfile, err)
	}
	return f, nil
}

// ParseOpenTypeFont loads an OpenType font (TTF or OTF) from memory.
// fbytes must not change after parsing.
func ParseOpenTypeFont(fbytes []byte) (f *ScalableFont, err error) {
	f = &ScalableFont{Binary: fbytes}
	f.SFNT, err = sfnt.Parse(f.Binary)
	if err != nil {
		return nil, err
	}
	if f.Fontname, err = f.SFNT.Name(nil, sfnt.NameIDFull); err != nil {
		tracer().Infof("font has no full name: %v", err)
	}
	face, err := font.ParseTTF(bytes.NewReader(f.Binary))
	if err != nil {
		return nil, fmt.Errorf("decoding layout tables: %w", err)
	}
	f.Layout = face.Font
	tracer().Debugf("loaded and parsed SFNT %s", f.Fontname)
	return f, nil
}

// Name returns the name record nameID of the font, or "" if there is none.
func (f *ScalableFont) Name(nameID sfnt.NameID) string {
	if f == nil || f.SFNT == nil {
		return ""
	}
	name, err := f.SFNT.Name(nil, nameID)
	if err != nil {
		return ""
	}
	return name
}
