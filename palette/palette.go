// Package palette owns the fixed 32-entry color table that placement events
// reference by index.
//
// The table is versioned with the event buffer format: an event's color index
// resolves through this table and nothing else. Default returns a copy, so no
// caller can mutate the process-wide table.
package palette

import (
	"fmt"

	"github.com/arloliu/placecloud/errs"
	"github.com/arloliu/placecloud/format"
)

// Size is the number of entries in the color table.
const Size = format.PaletteSize

// hexTable is the canonical color table, index -> #RRGGBB.
var hexTable = [Size]string{
	"#00CCC0", "#94B3FF", "#6A5CFF", "#009EAA",
	"#E4ABFF", "#000000", "#00756F", "#00A368",
	"#00CC78", "#2450A4", "#3690EA", "#493AC1",
	"#515252", "#51E9F4", "#6D001A", "#6D482F",
	"#7EED56", "#811E9F", "#898D90", "#9C6926",
	"#B44AC0", "#BE0039", "#D4D7D9", "#DE107F",
	"#FF3881", "#FF4500", "#FF99AA", "#FFA800",
	"#FFB470", "#FFD635", "#FFF8B8", "#FFFFFF",
}

var defaultPalette = mustParseTable(hexTable)

// Palette maps a color index to its color.
type Palette [Size]Color

// Default returns a copy of the canonical color table.
func Default() Palette {
	return defaultPalette
}

// Hex returns the #RRGGBB string of entry idx in the canonical table.
func Hex(idx int) (string, error) {
	if idx < 0 || idx >= Size {
		return "", fmt.Errorf("%w: %d", errs.ErrInvalidColorIndex, idx)
	}

	return hexTable[idx], nil
}

// Lookup returns the color for idx.
func (p *Palette) Lookup(idx uint8) (Color, error) {
	if int(idx) >= Size {
		return Color{}, fmt.Errorf("%w: %d", errs.ErrInvalidColorIndex, idx)
	}

	return p[idx], nil
}

// Contains reports whether idx is a valid color index.
func (p *Palette) Contains(idx uint8) bool {
	return int(idx) < Size
}

func mustParseTable(table [Size]string) Palette {
	var p Palette
	for i, s := range table {
		c, err := ParseHex(s)
		if err != nil {
			panic(fmt.Sprintf("palette entry %d: %v", i, err))
		}
		p[i] = c
	}

	return p
}
