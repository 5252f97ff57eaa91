package attribute

import (
	"fmt"
	"math"

	"github.com/arloliu/placecloud/errs"
	"github.com/arloliu/placecloud/event"
	"github.com/arloliu/placecloud/format"
	"github.com/arloliu/placecloud/internal/options"
	"github.com/arloliu/placecloud/palette"
)

// Builder turns event buffers into attribute sets.
//
// A Builder is immutable after construction and safe for concurrent use.
type Builder struct {
	timeScale float64
	palette   palette.Palette
}

// BuilderOption configures a Builder.
type BuilderOption = options.Option[*Builder]

// WithPalette replaces the color table used to resolve color indexes.
func WithPalette(p palette.Palette) BuilderOption {
	return options.NoError(func(b *Builder) {
		b.palette = p
	})
}

// NewBuilder creates a Builder that divides event time by timeScale.
//
// Returns errs.ErrInvalidTimeScale unless timeScale is finite and positive.
func NewBuilder(timeScale float64, opts ...BuilderOption) (*Builder, error) {
	if err := ValidateTimeScale(timeScale); err != nil {
		return nil, err
	}

	b := &Builder{
		timeScale: timeScale,
		palette:   palette.Default(),
	}
	if err := options.Apply(b, opts...); err != nil {
		return nil, err
	}

	return b, nil
}

// ValidateTimeScale returns errs.ErrInvalidTimeScale unless v is finite and positive.
func ValidateTimeScale(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return fmt.Errorf("%w: %v", errs.ErrInvalidTimeScale, v)
	}

	return nil
}

// TimeScale returns the configured time divisor.
func (b *Builder) TimeScale() float64 {
	return b.timeScale
}

// Build derives the attribute set for bufs.
//
// Every color index is checked before any output is allocated; the first
// out-of-range index is returned as an *errs.ColorIndexError. The returned
// UserID slice is bufs.UserID itself.
func (b *Builder) Build(bufs event.Buffers) (Set, error) {
	if err := bufs.Validate(); err != nil {
		return Set{}, err
	}

	for i, c := range bufs.Color {
		if !b.palette.Contains(c) {
			return Set{}, &errs.ColorIndexError{Event: i, Value: c, Max: format.MaxColorIndex}
		}
	}

	n := bufs.Len()
	set := Set{
		Positions: make([]float32, n*format.ComponentCount),
		Colors:    make([]uint8, n*format.ComponentCount),
		UserID:    bufs.UserID,
	}

	for i := range n {
		p := set.Positions[i*3 : i*3+3 : i*3+3]
		p[0] = float32(float64(bufs.XY[2*i]) - format.CoordOffset)
		p[1] = float32(float64(bufs.Time[i]) / b.timeScale)
		p[2] = float32(float64(bufs.XY[2*i+1]) - format.CoordOffset)

		c := b.palette[bufs.Color[i]]
		rgb := set.Colors[i*3 : i*3+3 : i*3+3]
		rgb[0], rgb[1], rgb[2] = c.R, c.G, c.B
	}

	return set, nil
}

// Build derives attributes with the default palette.
func Build(bufs event.Buffers, timeScale float64) (Set, error) {
	b, err := NewBuilder(timeScale)
	if err != nil {
		return Set{}, err
	}

	return b.Build(bufs)
}
