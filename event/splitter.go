package event

import (
	"slices"
	"unsafe"

	"github.com/arloliu/placecloud/endian"
	"github.com/arloliu/placecloud/errs"
	"github.com/arloliu/placecloud/format"
	"github.com/arloliu/placecloud/internal/logger"
	"github.com/arloliu/placecloud/internal/options"
)

// Splitter parses event buffers.
//
// A Splitter holds only immutable configuration and is safe for concurrent use.
type Splitter struct {
	engine   endian.EndianEngine
	zeroCopy bool
}

// SplitterOption configures a Splitter.
type SplitterOption = options.Option[*Splitter]

// WithZeroCopy makes Split return views over the input buffer when possible.
func WithZeroCopy() SplitterOption {
	return options.NoError(func(s *Splitter) {
		s.zeroCopy = true
	})
}

// WithEngine overrides the byte order used to read the buffer.
// The archive format is little-endian; this exists for tests and foreign producers.
func WithEngine(engine endian.EndianEngine) SplitterOption {
	return options.NoError(func(s *Splitter) {
		s.engine = engine
	})
}

// NewSplitter creates a Splitter. The default reads little-endian and copies.
func NewSplitter(opts ...SplitterOption) (*Splitter, error) {
	s := &Splitter{engine: endian.GetLittleEndianEngine()}
	if err := options.Apply(s, opts...); err != nil {
		return nil, err
	}

	return s, nil
}

var defaultSplitter = &Splitter{engine: endian.GetLittleEndianEngine()}

// Split parses data with the default Splitter.
func Split(data []byte) (Buffers, error) {
	return defaultSplitter.Split(data)
}

// Split parses data into its four sections.
//
// Returns errs.ErrMalformedBuffer, as an *errs.BufferError, when data is
// shorter than the header, the header declares zero events, or len(data)
// differs from the 4+13N bytes the header implies.
func (s *Splitter) Split(data []byte) (Buffers, error) {
	layout, err := s.checkLayout(data)
	if err != nil {
		return Buffers{}, err
	}

	zeroCopy := s.zeroCopy && canAlias(data, s.engine)
	logger.Get().Debug("split event buffer",
		"events", layout.Count,
		"bytes", len(data),
		"zero_copy", zeroCopy,
	)

	if zeroCopy {
		return aliasSections(data, layout), nil
	}

	return s.copySections(data, layout), nil
}

func (s *Splitter) checkLayout(data []byte) (format.Layout, error) {
	if len(data) < format.HeaderSize {
		return format.Layout{}, &errs.BufferError{
			Reason:   "missing length header",
			Expected: -1,
			Actual:   len(data),
		}
	}

	n := s.engine.Uint32(data[:format.HeaderSize])
	if n == 0 {
		return format.Layout{}, &errs.BufferError{
			Reason:   "header declares no events",
			Expected: format.HeaderSize,
			Actual:   len(data),
		}
	}

	layout, ok := format.NewLayout(n)
	if !ok {
		return format.Layout{}, &errs.BufferError{
			Reason:   "declared event count overflows buffer size",
			Declared: n,
			Expected: -1,
			Actual:   len(data),
		}
	}

	switch {
	case len(data) < layout.Size:
		return format.Layout{}, &errs.BufferError{
			Reason:   "buffer truncated",
			Declared: n,
			Expected: layout.Size,
			Actual:   len(data),
		}
	case len(data) > layout.Size:
		return format.Layout{}, &errs.BufferError{
			Reason:   "trailing bytes after color section",
			Declared: n,
			Expected: layout.Size,
			Actual:   len(data),
		}
	}

	return layout, nil
}

func (s *Splitter) copySections(data []byte, l format.Layout) Buffers {
	b := Buffers{
		Time:   make([]uint32, l.Count),
		UserID: make([]uint32, l.Count),
		XY:     make([]uint16, 2*l.Count),
		Color:  slices.Clone(data[l.ColorOffset:l.Size]),
	}

	for i := range b.Time {
		b.Time[i] = s.engine.Uint32(data[l.TimeOffset+i*format.TimeWidth:])
	}
	for i := range b.UserID {
		b.UserID[i] = s.engine.Uint32(data[l.UserIDOffset+i*format.UserIDWidth:])
	}
	for i := range b.XY {
		b.XY[i] = s.engine.Uint16(data[l.XYOffset+i*format.CoordWidth:])
	}

	return b
}

// canAlias reports whether typed views over data are valid: the byte order
// must match the host, and the buffer start must be 4-byte aligned. Every
// section offset is a multiple of 4 from the start, so that covers all of them.
func canAlias(data []byte, engine endian.EndianEngine) bool {
	if !endian.CompareNativeEndian(engine) {
		return false
	}

	return uintptr(unsafe.Pointer(unsafe.SliceData(data)))%format.TimeWidth == 0
}

func aliasSections(data []byte, l format.Layout) Buffers {
	return Buffers{
		Time:   unsafe.Slice((*uint32)(unsafe.Pointer(&data[l.TimeOffset])), l.Count),
		UserID: unsafe.Slice((*uint32)(unsafe.Pointer(&data[l.UserIDOffset])), l.Count),
		XY:     unsafe.Slice((*uint16)(unsafe.Pointer(&data[l.XYOffset])), 2*l.Count),
		Color:  data[l.ColorOffset:l.Size:l.Size],
	}
}
