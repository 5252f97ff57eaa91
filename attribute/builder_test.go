package attribute

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/placecloud/errs"
	"github.com/arloliu/placecloud/event"
	"github.com/arloliu/placecloud/palette"
)

func buffersOf(records ...event.Record) event.Buffers {
	var b event.Buffers
	for _, r := range records {
		b.Time = append(b.Time, r.Time)
		b.UserID = append(b.UserID, r.UserID)
		b.XY = append(b.XY, r.X, r.Y)
		b.Color = append(b.Color, r.Color)
	}

	return b
}

func TestNewBuilder(t *testing.T) {
	for _, scale := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		b, err := NewBuilder(scale)
		require.ErrorIs(t, err, errs.ErrInvalidTimeScale, "scale %v", scale)
		require.Nil(t, b)
	}

	b, err := NewBuilder(1e6)
	require.NoError(t, err)
	require.Equal(t, 1e6, b.TimeScale())
}

func TestBuildPositions(t *testing.T) {
	t.Run("Recentering", func(t *testing.T) {
		set, err := Build(buffersOf(event.Record{Time: 0, X: 1000, Y: 1000}), 1)
		require.NoError(t, err)
		pos := set.Position(0)
		require.Zero(t, pos[0])
		require.Zero(t, pos[2])
	})

	t.Run("NegativeCoordinates", func(t *testing.T) {
		set, err := Build(buffersOf(event.Record{X: 0, Y: 250}), 1)
		require.NoError(t, err)
		require.Equal(t, [3]float32{-1000, 0, -750}, set.Position(0))
	})

	t.Run("MaxCoordinates", func(t *testing.T) {
		set, err := Build(buffersOf(event.Record{X: math.MaxUint16, Y: 1999}), 1)
		require.NoError(t, err)
		require.Equal(t, [3]float32{64535, 0, 999}, set.Position(0))
	})

	t.Run("TimeScale", func(t *testing.T) {
		set, err := Build(buffersOf(
			event.Record{Time: 500_000, X: 1000, Y: 1000},
			event.Record{Time: math.MaxUint32, X: 1000, Y: 1000},
		), 1000)
		require.NoError(t, err)
		require.Equal(t, float32(500), set.Position(0)[1])
		require.Equal(t, float32(float64(math.MaxUint32)/1000), set.Position(1)[1])
	})
}

func TestBuildColorFidelity(t *testing.T) {
	records := make([]event.Record, palette.Size)
	for i := range records {
		records[i] = event.Record{Color: uint8(i), X: 1000, Y: 1000}
	}

	set, err := Build(buffersOf(records...), 1)
	require.NoError(t, err)

	for i := range palette.Size {
		h, err := palette.Hex(i)
		require.NoError(t, err)
		want, err := palette.ParseHex(h)
		require.NoError(t, err)
		require.Equal(t, [3]uint8{want.R, want.G, want.B}, set.Color(i), "color %d (%s)", i, h)
	}

	// spot-check against literal table values
	require.Equal(t, [3]uint8{0x00, 0xCC, 0xC0}, set.Color(0))
	require.Equal(t, [3]uint8{0xBE, 0x00, 0x39}, set.Color(21))
}

func TestBuildInvalidColorIndex(t *testing.T) {
	bufs := buffersOf(
		event.Record{Color: 3},
		event.Record{Color: 31},
		event.Record{Color: 32},
		event.Record{Color: 255},
	)

	set, err := Build(bufs, 1)
	require.ErrorIs(t, err, errs.ErrInvalidColorIndex)
	require.Zero(t, set.Len())

	var cie *errs.ColorIndexError
	require.True(t, errors.As(err, &cie))
	require.Equal(t, 2, cie.Event)
	require.Equal(t, uint8(32), cie.Value)
	require.Equal(t, 31, cie.Max)
}

func TestBuildCustomPalette(t *testing.T) {
	var p palette.Palette
	for i := range p {
		p[i] = palette.Color{R: uint8(i), G: uint8(2 * i), B: uint8(3 * i)}
	}

	b, err := NewBuilder(1, WithPalette(p))
	require.NoError(t, err)

	set, err := b.Build(buffersOf(event.Record{Color: 10}))
	require.NoError(t, err)
	require.Equal(t, [3]uint8{10, 20, 30}, set.Color(0))
}

func TestBuildUserIDPassThrough(t *testing.T) {
	bufs := buffersOf(event.Record{UserID: 7}, event.Record{UserID: 9})

	set, err := Build(bufs, 1)
	require.NoError(t, err)
	require.Equal(t, []uint32{7, 9}, set.UserID)
	require.Same(t, &bufs.UserID[0], &set.UserID[0])
	require.NoError(t, set.Validate())
}

func TestBuildMismatchedBuffers(t *testing.T) {
	bufs := buffersOf(event.Record{}, event.Record{})
	bufs.XY = bufs.XY[:3]

	_, err := Build(bufs, 1)
	require.ErrorIs(t, err, errs.ErrMalformedBuffer)
}

// Each event's attributes depend only on that event's fields.
func TestBuildIndexAlignment(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 24))
	records := make([]event.Record, 200)
	for i := range records {
		records[i] = event.Record{
			Time:   rng.Uint32(),
			UserID: rng.Uint32(),
			X:      uint16(rng.IntN(2000)),
			Y:      uint16(rng.IntN(2000)),
			Color:  uint8(rng.IntN(palette.Size)),
		}
	}

	b, err := NewBuilder(3600)
	require.NoError(t, err)

	full, err := b.Build(buffersOf(records...))
	require.NoError(t, err)
	require.Equal(t, len(records), full.Len())

	for i, r := range records {
		single, err := b.Build(buffersOf(r))
		require.NoError(t, err)
		require.Equal(t, single.Position(0), full.Position(i), "position %d", i)
		require.Equal(t, single.Color(0), full.Color(i), "color %d", i)
		require.Equal(t, single.UserID[0], full.UserID[i], "userId %d", i)
	}
}

func TestSetValidate(t *testing.T) {
	require.NoError(t, Set{}.Validate())

	bad := Set{Positions: make([]float32, 6), Colors: make([]uint8, 3), UserID: make([]uint32, 2)}
	require.ErrorIs(t, bad.Validate(), errs.ErrMalformedBuffer)
}
