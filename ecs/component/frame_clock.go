package component

// FrameClock is a singleton carrying the current frame's delta. Elapsed is
// the session time in milliseconds including the current frame.
type FrameClock struct {
	DeltaMs float64
	Elapsed float64
	Frame   int
}

var FrameClockComponent = NewComponent[FrameClock]()
