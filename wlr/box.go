package wlr

// Box is a plain rectangle in layout or surface coordinates. X and Y may be
// negative.
type Box struct {
	X, Y, Width, Height int32
}

// Edges is a bitfield of window edges, as used by resize requests.
type Edges uint32

const (
	EdgeNone   Edges = 0
	EdgeTop    Edges = 1 << 0
	EdgeBottom Edges = 1 << 1
	EdgeLeft   Edges = 1 << 2
	EdgeRight  Edges = 1 << 3
)
