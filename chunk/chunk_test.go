package chunk

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/placecloud/attribute"
	"github.com/arloliu/placecloud/errs"
)

// makeSet returns a set of n events where event i has userId i and
// position/color components derived from i.
func makeSet(n int) attribute.Set {
	set := attribute.Set{
		Positions: make([]float32, 3*n),
		Colors:    make([]uint8, 3*n),
		UserID:    make([]uint32, n),
	}
	for i := range n {
		set.UserID[i] = uint32(i)
		for c := range 3 {
			set.Positions[3*i+c] = float32(i*10 + c)
			set.Colors[3*i+c] = uint8(i + c)
		}
	}

	return set
}

func TestRanges(t *testing.T) {
	tests := []struct {
		name   string
		items  int
		chunks int
		want   []Range
	}{
		{name: "Boundary", items: 10, chunks: 3, want: []Range{{0, 3}, {3, 6}, {6, 10}}},
		{name: "Even", items: 9, chunks: 3, want: []Range{{0, 3}, {3, 6}, {6, 9}}},
		{name: "Single", items: 5, chunks: 1, want: []Range{{0, 5}}},
		{name: "FewerItemsThanChunks", items: 2, chunks: 4, want: []Range{{0, 0}, {0, 0}, {0, 0}, {0, 2}}},
		{name: "Empty", items: 0, chunks: 3, want: []Range{{0, 0}, {0, 0}, {0, 0}}},
		{name: "NegativeItems", items: -4, chunks: 2, want: []Range{{0, 0}, {0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Ranges(tt.items, tt.chunks)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestInvalidChunkCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Ranges(10, n)
		require.ErrorIs(t, err, errs.ErrInvalidChunkCount)

		var cce *errs.ChunkCountError
		require.ErrorAs(t, err, &cce)
		require.Equal(t, n, cce.Count)

		chunks, err := Slice(makeSet(10), n)
		require.ErrorIs(t, err, errs.ErrInvalidChunkCount)
		require.Nil(t, chunks)

		count := 0
		for range All(makeSet(10), n) {
			count++
		}
		require.Zero(t, count)
	}
}

func TestSliceBoundary(t *testing.T) {
	chunks, err := Slice(makeSet(10), 3)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	require.Equal(t, []uint32{0, 1, 2}, chunks[0].UserID)
	require.Equal(t, []uint32{3, 4, 5}, chunks[1].UserID)
	require.Equal(t, []uint32{6, 7, 8, 9}, chunks[2].UserID)
	require.Equal(t, 4, chunks[2].Len())

	require.Equal(t, []float32{30, 31, 32, 40, 41, 42, 50, 51, 52}, chunks[1].Positions)
	require.Equal(t, []uint8{6, 7, 8, 7, 8, 9, 8, 9, 10, 9, 10, 11}, chunks[2].Colors)
}

func TestSliceCoverage(t *testing.T) {
	for items := 0; items <= 40; items++ {
		for chunkCount := 1; chunkCount <= 12; chunkCount++ {
			set := makeSet(items)
			chunks, err := Slice(set, chunkCount)
			require.NoError(t, err)
			require.Len(t, chunks, chunkCount)

			var (
				userIDs   []uint32
				positions []float32
				colors    []uint8
			)
			for i, c := range chunks {
				require.Equal(t, i, c.Index)
				require.Len(t, c.UserID, c.Len())
				require.Len(t, c.Positions, 3*c.Len())
				require.Len(t, c.Colors, 3*c.Len())
				if i < chunkCount-1 {
					require.Equal(t, items/chunkCount, c.Len())
				}

				userIDs = append(userIDs, c.UserID...)
				positions = append(positions, c.Positions...)
				colors = append(colors, c.Colors...)
			}

			if items == 0 {
				require.Empty(t, userIDs)
				continue
			}
			require.Equal(t, set.UserID, userIDs, "items=%d chunks=%d", items, chunkCount)
			require.Equal(t, set.Positions, positions)
			require.Equal(t, set.Colors, colors)
		}
	}
}

func TestSliceFewerItemsThanChunks(t *testing.T) {
	chunks, err := Slice(makeSet(3), 5)
	require.NoError(t, err)
	require.Len(t, chunks, 5)

	for _, c := range chunks[:4] {
		require.Zero(t, c.Len())
		require.Empty(t, c.UserID)
	}
	require.Equal(t, []uint32{0, 1, 2}, chunks[4].UserID)
}

func TestChunkAppendDoesNotClobberNeighbour(t *testing.T) {
	set := makeSet(6)
	chunks, err := Slice(set, 2)
	require.NoError(t, err)

	first := append(chunks[0].UserID, 99)
	require.Equal(t, []uint32{0, 1, 2, 99}, first)
	require.Equal(t, []uint32{3, 4, 5}, chunks[1].UserID)
	require.Equal(t, uint32(3), set.UserID[3])
}

func TestSliceMismatchedSet(t *testing.T) {
	tests := []struct {
		name string
		set  attribute.Set
	}{
		{name: "MissingColors", set: attribute.Set{Positions: make([]float32, 3), UserID: []uint32{1}}},
		{name: "ShortPositions", set: attribute.Set{Positions: make([]float32, 2), Colors: make([]uint8, 3), UserID: []uint32{1}}},
		{name: "ExtraUserID", set: attribute.Set{Positions: make([]float32, 3), Colors: make([]uint8, 3), UserID: []uint32{1, 2}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Slice(tt.set, 1)
			require.ErrorIs(t, err, errs.ErrMalformedBuffer)
			require.Nil(t, chunks)

			count := 0
			for range All(tt.set, 1) {
				count++
			}
			require.Zero(t, count)
		})
	}
}

func TestAll(t *testing.T) {
	set := makeSet(10)

	var got []Range
	for i, c := range All(set, 3) {
		require.Equal(t, i, c.Index)
		got = append(got, c.Range)
	}
	require.Equal(t, []Range{{0, 3}, {3, 6}, {6, 10}}, got)

	count := 0
	for range All(set, 3) {
		count++
		break
	}
	require.Equal(t, 1, count)
}

func TestCountFor(t *testing.T) {
	tests := []struct {
		items, max, want int
	}{
		{items: 0, max: 10, want: 1},
		{items: 10, max: 10, want: 1},
		{items: 11, max: 10, want: 2},
		{items: 1_000_000, max: 250_000, want: 4},
		{items: 1_000_001, max: 250_000, want: 5},
		{items: 99, max: 10, want: 10},
		{items: math.MaxInt, max: 1, want: math.MaxInt},
		{items: math.MaxInt, max: math.MaxInt - 1, want: 2},
	}

	for _, tt := range tests {
		got, err := CountFor(tt.items, tt.max)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "items=%d max=%d", tt.items, tt.max)
	}

	_, err := CountFor(10, 0)
	require.ErrorIs(t, err, errs.ErrInvalidChunkCount)
}

func TestCountForLastChunkAbsorbsRemainder(t *testing.T) {
	n, err := CountFor(99, 10)
	require.NoError(t, err)

	ranges, err := Ranges(99, n)
	require.NoError(t, err)
	for _, r := range ranges[:n-1] {
		require.LessOrEqual(t, r.Len(), 10)
	}
	require.Equal(t, Range{Start: 81, End: 99}, ranges[n-1])
}
