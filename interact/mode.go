package interact

// Mode is the active interaction mode of the annotation surface.  Each
// mode owns its own pointer semantics, only one mode is active at a time
type Mode int

const (
	// ModeSelect allows picking objects and editing them by dragging
	// the body or a resize handle
	ModeSelect Mode = iota
	// ModeDraw creates new boxes by press and drag
	ModeDraw
	// ModePan moves the viewport, pointer deltas feed the pan offset
	ModePan
)

// String returns the mode name
func (m Mode) String() string {

	switch m {
	case ModeSelect:
		return "select"
	case ModeDraw:
		return "draw"
	case ModePan:
		return "pan"
	}

	return "unknown"
}

// pointerHandler is the capability set a mode implementation provides.
// The session dispatches raw pointer events to the handler of the active
// mode, all coordinates are in view space
type pointerHandler interface {
	pointerDown(s *Session, x, y float64)
	pointerMove(s *Session, x, y float64)
	pointerUp(s *Session, x, y float64)
}
