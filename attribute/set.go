// Package attribute derives renderable vertex attributes from split event buffers.
//
// For event i the builder produces
//
//	position = (x - 1000, time / timeScale, y - 1000)
//	color    = palette[colorIndex] as 0-255 channels
//	userId   = userId
//
// The X/Z plane is the canvas recentered on the origin; Y is normalized time.
package attribute

import (
	"fmt"

	"github.com/arloliu/placecloud/errs"
	"github.com/arloliu/placecloud/format"
)

// Set is the derived attribute set of one event buffer.
//
// Positions and Colors are flat triples; event i occupies [3i, 3i+3) in both.
// UserID has one entry per event. A Set is not mutated after Build returns.
type Set struct {
	Positions []float32
	Colors    []uint8
	UserID    []uint32
}

// Len returns the number of events in the set.
func (s Set) Len() int {
	return len(s.UserID)
}

// Position returns the xyz position of event i.
func (s Set) Position(i int) [3]float32 {
	return [3]float32(s.Positions[i*format.ComponentCount : (i+1)*format.ComponentCount])
}

// Color returns the rgb channels of event i.
func (s Set) Color(i int) [3]uint8 {
	return [3]uint8(s.Colors[i*format.ComponentCount : (i+1)*format.ComponentCount])
}

// Validate checks that the three arrays describe the same number of events.
func (s Set) Validate() error {
	n := len(s.UserID)
	if len(s.Positions) != n*format.ComponentCount || len(s.Colors) != n*format.ComponentCount {
		return fmt.Errorf("%w: attribute lengths positions=%d colors=%d userId=%d",
			errs.ErrMalformedBuffer, len(s.Positions), len(s.Colors), n)
	}

	return nil
}
