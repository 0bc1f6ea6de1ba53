package stream

// A Source renders the frames streamed to an ledrx device.
type Source interface {
	CalculateFrame() *Frame
}
