// Package format defines the binary layout of a placement event buffer and
// the archive file kinds it is stored in.
//
// An event buffer is one little-endian uint32 header N followed by four
// parallel sections:
//
//	offset 0         uint32    N
//	offset 4         N  uint32 time
//	offset 4+4N      N  uint32 user id
//	offset 4+8N      2N uint16 x,y interleaved
//	offset 4+12N     N  uint8  color index
//
// for a total of 4+13N bytes. Any change to field order or widths is a
// breaking format change.
package format

import "math"

// Field widths in bytes.
const (
	HeaderSize     = 4 // uint32 event count
	TimeWidth      = 4 // uint32 per event
	UserIDWidth    = 4 // uint32 per event
	CoordWidth     = 2 // uint16 per axis
	XYWidth        = 2 * CoordWidth
	ColorWidth     = 1 // uint8 per event
	BytesPerEvent  = TimeWidth + UserIDWidth + XYWidth + ColorWidth
	MaxEventCount  = (math.MaxInt - HeaderSize) / BytesPerEvent
	PaletteSize    = 32
	MaxColorIndex  = PaletteSize - 1
	CoordOffset    = 1000 // subtracted from x and y to center the canvas on the origin
	ComponentCount = 3    // components per position or color
)

// Layout holds the byte offsets of each section for a given event count.
type Layout struct {
	Count        int // N
	TimeOffset   int
	UserIDOffset int
	XYOffset     int
	ColorOffset  int
	Size         int // total buffer size, 4+13N
}

// NewLayout computes the section offsets for n events.
//
// Returns false when the total size would overflow int.
func NewLayout(n uint32) (Layout, bool) {
	if uint64(n) > uint64(MaxEventCount) {
		return Layout{}, false
	}

	count := int(n)
	l := Layout{Count: count}

	offset := HeaderSize
	l.TimeOffset = offset
	offset += count * TimeWidth
	l.UserIDOffset = offset
	offset += count * UserIDWidth
	l.XYOffset = offset
	offset += count * XYWidth
	l.ColorOffset = offset
	offset += count * ColorWidth
	l.Size = offset

	return l, true
}

// BufferSize returns the byte size of an event buffer holding n events,
// or -1 when it overflows int.
func BufferSize(n uint32) int {
	l, ok := NewLayout(n)
	if !ok {
		return -1
	}

	return l.Size
}
