package event

// Record is one placement event.
type Record struct {
	Time   uint32 // event time, in the archive's time unit
	UserID uint32 // author
	X      uint16 // canvas x
	Y      uint16 // canvas y
	Color  uint8  // palette index
}
