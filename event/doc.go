// Package event splits a flat placement-event buffer into its four parallel
// typed sections, and encodes records back into that layout.
//
// The layout is defined in package format. Split checks the total buffer size
// against the header before touching any section, so a truncated, padded or
// garbled buffer is reported as errs.ErrMalformedBuffer instead of producing
// partial arrays.
//
// Decoding:
//
//	bufs, err := event.Split(data)
//	if err != nil {
//	    return err
//	}
//	for i, rec := range bufs.All() {
//	    fmt.Println(i, rec.UserID, rec.X, rec.Y)
//	}
//
// Encoding:
//
//	data, err := event.Encode([]event.Record{{Time: 1, UserID: 7, X: 1000, Y: 1000, Color: 25}})
//
// By default Split copies every section, so the result does not alias data.
// WithZeroCopy returns views over data instead when the host byte order
// matches the buffer and the sections are aligned; callers must then keep data
// alive and unmodified for as long as the Buffers are used.
package event
