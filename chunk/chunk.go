// Package chunk slices an attribute set into contiguous render batches.
//
// With n chunks over m events every chunk but the last covers floor(m/n)
// events, and the last chunk also takes the remainder:
//
//	m=10, n=3  ->  [0,3) [3,6) [6,10)
//
// When m < n the block size is zero, so every chunk except the last is empty.
// Concatenating the chunks in order always reproduces the whole set.
package chunk

import (
	"iter"

	"github.com/arloliu/placecloud/attribute"
	"github.com/arloliu/placecloud/errs"
	"github.com/arloliu/placecloud/format"
)

// Range is a half-open event interval [Start, End).
type Range struct {
	Start int
	End   int
}

// Len returns the number of events in the range.
func (r Range) Len() int {
	return r.End - r.Start
}

// Chunk is one render batch: a view into an attribute set.
//
// The slices share memory with the source set but are capacity-limited, so
// appending to one chunk never writes into its neighbour.
type Chunk struct {
	Index int
	Range
	Positions []float32
	Colors    []uint8
	UserID    []uint32
}

// Ranges computes the event interval of each of chunkCount chunks.
//
// Returns errs.ErrInvalidChunkCount, as an *errs.ChunkCountError, when
// chunkCount < 1. A negative itemCount is treated as zero.
func Ranges(itemCount, chunkCount int) ([]Range, error) {
	if chunkCount < 1 {
		return nil, &errs.ChunkCountError{Count: chunkCount}
	}
	itemCount = max(itemCount, 0)

	blockSize := itemCount / chunkCount
	ranges := make([]Range, chunkCount)
	for i := range ranges {
		start := i * blockSize
		end := start + blockSize
		if i == chunkCount-1 {
			end = itemCount
		}
		ranges[i] = Range{Start: start, End: end}
	}

	return ranges, nil
}

// Slice splits set into chunkCount chunks.
//
// Returns errs.ErrMalformedBuffer when the set's arrays disagree in length.
func Slice(set attribute.Set, chunkCount int) ([]Chunk, error) {
	if err := set.Validate(); err != nil {
		return nil, err
	}

	ranges, err := Ranges(set.Len(), chunkCount)
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, len(ranges))
	for i, r := range ranges {
		chunks[i] = view(set, i, r)
	}

	return chunks, nil
}

// All yields the chunks of set lazily. An invalid set or chunkCount yields
// nothing; use Slice to get the error.
func All(set attribute.Set, chunkCount int) iter.Seq2[int, Chunk] {
	return func(yield func(int, Chunk) bool) {
		if set.Validate() != nil {
			return
		}
		ranges, err := Ranges(set.Len(), chunkCount)
		if err != nil {
			return
		}
		for i, r := range ranges {
			if !yield(i, view(set, i, r)) {
				return
			}
		}
	}
}

// CountFor returns the smallest chunk count whose non-final chunks hold at
// most maxItems events: ceil(itemCount/maxItems), and at least 1.
//
// The last chunk absorbs the floor-division remainder, so it may exceed maxItems.
func CountFor(itemCount, maxItems int) (int, error) {
	if maxItems < 1 {
		return 0, &errs.ChunkCountError{Count: maxItems}
	}
	if itemCount <= 0 {
		return 1, nil
	}

	return (itemCount-1)/maxItems + 1, nil
}

func view(set attribute.Set, idx int, r Range) Chunk {
	const stride = format.ComponentCount

	ps, pe := r.Start*stride, r.End*stride

	return Chunk{
		Index:     idx,
		Range:     r,
		Positions: set.Positions[ps:pe:pe],
		Colors:    set.Colors[ps:pe:pe],
		UserID:    set.UserID[r.Start:r.End:r.End],
	}
}
