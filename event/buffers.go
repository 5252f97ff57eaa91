package event

import (
	"fmt"
	"iter"

	"github.com/arloliu/placecloud/errs"
)

// Buffers holds the decoded sections of an event buffer.
//
// All four slices are parallel: index i of Time, UserID and Color, and
// indexes 2i and 2i+1 of XY, describe event i.
type Buffers struct {
	Time   []uint32
	UserID []uint32
	XY     []uint16 // x0, y0, x1, y1, ...
	Color  []uint8
}

// Len returns the number of events.
func (b Buffers) Len() int {
	return len(b.Time)
}

// Validate checks that the section lengths agree with each other.
func (b Buffers) Validate() error {
	n := len(b.Time)
	if len(b.UserID) != n || len(b.XY) != 2*n || len(b.Color) != n {
		return fmt.Errorf("%w: section lengths time=%d userId=%d xy=%d color=%d",
			errs.ErrMalformedBuffer, n, len(b.UserID), len(b.XY), len(b.Color))
	}

	return nil
}

// Record returns event i. It panics if i is out of range.
func (b Buffers) Record(i int) Record {
	return Record{
		Time:   b.Time[i],
		UserID: b.UserID[i],
		X:      b.XY[2*i],
		Y:      b.XY[2*i+1],
		Color:  b.Color[i],
	}
}

// All yields every event in order.
func (b Buffers) All() iter.Seq2[int, Record] {
	return func(yield func(int, Record) bool) {
		for i := range b.Time {
			if !yield(i, b.Record(i)) {
				return
			}
		}
	}
}

// TimeRange returns the smallest and largest event time.
// Both are zero when there are no events.
func (b Buffers) TimeRange() (lo, hi uint32) {
	if len(b.Time) == 0 {
		return 0, 0
	}

	lo, hi = b.Time[0], b.Time[0]
	for _, t := range b.Time[1:] {
		lo = min(lo, t)
		hi = max(hi, t)
	}

	return lo, hi
}
