package layout

// Handle identifies a resize grip on an opening. HandleNone means the body
// of the opening, which moves it instead.
type Handle int

const (
	HandleNone Handle = iota
	HandleN
	HandleNE
	HandleE
	HandleSE
	HandleS
	HandleSW
	HandleW
	HandleNW
)

// AllHandles lists the resize grips clockwise from north.
var AllHandles = []Handle{HandleN, HandleNE, HandleE, HandleSE, HandleS, HandleSW, HandleW, HandleNW}

func (h Handle) String() string {
	switch h {
	case HandleN:
		return "n"
	case HandleNE:
		return "ne"
	case HandleE:
		return "e"
	case HandleSE:
		return "se"
	case HandleS:
		return "s"
	case HandleSW:
		return "sw"
	case HandleW:
		return "w"
	case HandleNW:
		return "nw"
	default:
		return "none"
	}
}

func (h Handle) North() bool { return h == HandleN || h == HandleNE || h == HandleNW }
func (h Handle) South() bool { return h == HandleS || h == HandleSE || h == HandleSW }
func (h Handle) East() bool  { return h == HandleE || h == HandleNE || h == HandleSE }
func (h Handle) West() bool  { return h == HandleW || h == HandleNW || h == HandleSW }

// Horizontal reports whether the handle moves a left or right edge.
func (h Handle) Horizontal() bool { return h.East() || h.West() }

// Vertical reports whether the handle moves a top or bottom edge.
func (h Handle) Vertical() bool { return h.North() || h.South() }

// Anchor returns the fractional position (0, 0.5 or 1 on each axis) of the
// handle on the opening's bounding box.
func (h Handle) Anchor() (float64, float64) {
	fx, fy := 0.5, 0.5
	if h.West() {
		fx = 0
	} else if h.East() {
		fx = 1
	}
	if h.North() {
		fy = 0
	} else if h.South() {
		fy = 1
	}
	return fx, fy
}
