package event

import (
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/placecloud/endian"
	"github.com/arloliu/placecloud/errs"
	"github.com/arloliu/placecloud/format"
	"github.com/arloliu/placecloud/internal/options"
	"github.com/arloliu/placecloud/internal/pool"
)

// Encoder accumulates records column by column and writes them as an event buffer.
//
// The Encoder is NOT thread-safe. After Finish it is empty and can be reused.
type Encoder struct {
	engine endian.EndianEngine
	time   []uint32
	userID []uint32
	xy     []uint16
	color  []uint8
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*Encoder]

// WithEncoderEngine overrides the byte order of the written buffer.
func WithEncoderEngine(engine endian.EndianEngine) EncoderOption {
	return options.NoError(func(e *Encoder) {
		e.engine = engine
	})
}

// WithCapacity pre-sizes the column buffers for n records.
func WithCapacity(n int) EncoderOption {
	return options.New(func(e *Encoder) error {
		if n < 0 {
			return fmt.Errorf("invalid encoder capacity: %d", n)
		}
		e.time = slices.Grow(e.time, n)
		e.userID = slices.Grow(e.userID, n)
		e.xy = slices.Grow(e.xy, 2*n)
		e.color = slices.Grow(e.color, n)

		return nil
	})
}

// NewEncoder creates an Encoder writing little-endian buffers.
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	e := &Encoder{engine: endian.GetLittleEndianEngine()}
	if err := options.Apply(e, opts...); err != nil {
		return nil, err
	}

	return e, nil
}

// Add appends one record.
func (e *Encoder) Add(r Record) error {
	if uint64(len(e.time)) >= math.MaxUint32 {
		return fmt.Errorf("%w: event count exceeds uint32 header", errs.ErrMalformedBuffer)
	}

	e.time = append(e.time, r.Time)
	e.userID = append(e.userID, r.UserID)
	e.xy = append(e.xy, r.X, r.Y)
	e.color = append(e.color, r.Color)

	return nil
}

// Len returns the number of records added since the last Finish.
func (e *Encoder) Len() int {
	return len(e.time)
}

// Finish writes the accumulated records and resets the encoder.
//
// Returns errs.ErrMalformedBuffer if no record was added, since a buffer
// declaring zero events is rejected by Split.
func (e *Encoder) Finish() ([]byte, error) {
	n := len(e.time)
	if n == 0 {
		return nil, fmt.Errorf("%w: encoder has no events", errs.ErrMalformedBuffer)
	}

	layout, ok := format.NewLayout(uint32(n))
	if !ok {
		return nil, fmt.Errorf("%w: %d events overflow buffer size", errs.ErrMalformedBuffer, n)
	}

	bb := pool.GetEventBuffer()
	defer pool.PutEventBuffer(bb)

	bb.Grow(layout.Size)
	e.engine.PutUint32(bb.ExtendOrGrow(format.HeaderSize), uint32(n))
	for _, v := range e.time {
		bb.B = e.engine.AppendUint32(bb.B, v)
	}
	for _, v := range e.userID {
		bb.B = e.engine.AppendUint32(bb.B, v)
	}
	for _, v := range e.xy {
		bb.B = e.engine.AppendUint16(bb.B, v)
	}
	if _, err := bb.Write(e.color); err != nil {
		return nil, fmt.Errorf("write color section: %w", err)
	}

	out := slices.Clone(bb.Bytes())
	e.reset()

	return out, nil
}

func (e *Encoder) reset() {
	e.time = e.time[:0]
	e.userID = e.userID[:0]
	e.xy = e.xy[:0]
	e.color = e.color[:0]
}

// Encode writes records as a little-endian event buffer.
func Encode(records []Record) ([]byte, error) {
	e, err := NewEncoder(WithCapacity(len(records)))
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		if err := e.Add(r); err != nil {
			return nil, err
		}
	}

	return e.Finish()
}

// EncodeBuffers writes already-split buffers back into the event buffer layout.
func EncodeBuffers(b Buffers) ([]byte, error) {
	if err := b.Validate(); err != nil {
		return nil, err
	}

	e, err := NewEncoder(WithCapacity(b.Len()))
	if err != nil {
		return nil, err
	}

	for _, r := range b.All() {
		if err := e.Add(r); err != nil {
			return nil, err
		}
	}

	return e.Finish()
}
