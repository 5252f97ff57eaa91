package event

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/placecloud/errs"
)

func TestEncoder(t *testing.T) {
	t.Run("Empty", func(t *testing.T) {
		e, err := NewEncoder()
		require.NoError(t, err)

		data, err := e.Finish()
		require.ErrorIs(t, err, errs.ErrMalformedBuffer)
		require.Nil(t, data)
	})

	t.Run("ResetAfterFinish", func(t *testing.T) {
		e, err := NewEncoder(WithCapacity(2))
		require.NoError(t, err)

		require.NoError(t, e.Add(Record{Time: 1, Color: 1}))
		require.NoError(t, e.Add(Record{Time: 2, Color: 2}))
		require.Equal(t, 2, e.Len())

		first, err := e.Finish()
		require.NoError(t, err)
		require.Equal(t, 0, e.Len())

		require.NoError(t, e.Add(Record{Time: 3, Color: 3}))
		second, err := e.Finish()
		require.NoError(t, err)

		require.Len(t, first, 4+13*2)
		require.Len(t, second, 4+13)

		bufs, err := Split(first)
		require.NoError(t, err)
		require.Equal(t, []uint32{1, 2}, bufs.Time)
	})

	t.Run("ColorSectionAtTail", func(t *testing.T) {
		e, err := NewEncoder()
		require.NoError(t, err)

		colors := []uint8{7, 0, 31, 12, 5}
		for i, c := range colors {
			require.NoError(t, e.Add(Record{Time: uint32(i), X: 1, Y: 2, Color: c}))
		}

		data, err := e.Finish()
		require.NoError(t, err)
		require.Len(t, data, 4+13*len(colors))
		require.Equal(t, colors, data[len(data)-len(colors):])
		require.Equal(t, []byte{5, 0, 0, 0}, data[:4])
	})

	t.Run("InvalidCapacity", func(t *testing.T) {
		_, err := NewEncoder(WithCapacity(-1))
		require.Error(t, err)
	})
}

func TestEncodeBuffers(t *testing.T) {
	records := randomRecords(33, 9)
	data, err := Encode(records)
	require.NoError(t, err)

	bufs, err := Split(data)
	require.NoError(t, err)

	again, err := EncodeBuffers(bufs)
	require.NoError(t, err)
	require.Equal(t, data, again)

	bufs.Color = bufs.Color[:10]
	_, err = EncodeBuffers(bufs)
	require.ErrorIs(t, err, errs.ErrMalformedBuffer)
}

func TestBuffers(t *testing.T) {
	bufs := Buffers{
		Time:   []uint32{30, 10, 20},
		UserID: []uint32{1, 2, 3},
		XY:     []uint16{0, 1, 2, 3, 4, 5},
		Color:  []uint8{0, 1, 2},
	}
	require.NoError(t, bufs.Validate())
	require.Equal(t, 3, bufs.Len())
	require.Equal(t, Record{Time: 10, UserID: 2, X: 2, Y: 3, Color: 1}, bufs.Record(1))

	lo, hi := bufs.TimeRange()
	require.Equal(t, uint32(10), lo)
	require.Equal(t, uint32(30), hi)

	var seen []int
	for i := range bufs.All() {
		seen = append(seen, i)
		if i == 1 {
			break
		}
	}
	require.Equal(t, []int{0, 1}, seen)

	lo, hi = Buffers{}.TimeRange()
	require.Zero(t, lo)
	require.Zero(t, hi)

	bufs.XY = bufs.XY[:5]
	require.ErrorIs(t, bufs.Validate(), errs.ErrMalformedBuffer)
}
