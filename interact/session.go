// Package interact implements the pointer driven state machine that edits
// the object set of one image.  It resolves view space pointer positions
// into image space, drives draw, drag, resize and pan gestures and
// commits the results into the object store.
package interact

import (
	"github.com/annolab/go-annotate/geom"
	"github.com/annolab/go-annotate/store"
)

const (
	// MinBoxSize is the minimum committed box width and height in image
	// pixels.  Boxes at or below it are treated as pointer jitter and
	// silently discarded
	MinBoxSize = 5.0

	// handleTolerance is the grab radius around a resize handle in view
	// pixels
	handleTolerance = 8.0
)

// ViewState is the zoom, pan and image dimensions of the active image.
// It lives and dies with its Session
type ViewState struct {
	geom.View
	ImageWidth  int
	ImageHeight int
}

// gestureKind tags the single in-progress gesture of a session
type gestureKind int

const (
	gestureNone gestureKind = iota
	gestureDraw
	gestureMove
	gestureResize
	gesturePan
)

// gesture records the state of one continuous pointer interaction from
// press to release.  At most one gesture is active at a time
type gesture struct {
	kind gestureKind

	// draw gesture anchor and current corner in image space
	anchorX, anchorY float64
	curX, curY       float64

	// stable object ID and original geometry for move and resize
	// gestures.  The ID survives removals that shift slice positions, so
	// a gesture can never write through a stale index, and lets an
	// aborted gesture roll the object back
	id       int64
	origBox  geom.Box
	origMask geom.Mask

	// grab point in image space for move gestures
	grabX, grabY float64

	// last pointer position in view space for pan gestures
	lastX, lastY float64
}

// Session is the interaction state machine for one image.  It owns the
// view state, the current mode and the in-progress gesture, and mutates
// the object store in response to pointer and keyboard events.  Switching
// the active image means discarding the session and creating a new one,
// which atomically swaps all interaction state
type Session struct {
	store    *store.Store
	view     ViewState
	mode     Mode
	gest     gesture
	handlers map[Mode]pointerHandler

	// activeClass is the class assigned to newly drawn boxes
	activeClass int
}

// NewSession creates the interaction session for an image of the given
// pixel dimensions.  The initial mode is Select when the store already
// holds objects, otherwise the workflow supplied fallback mode is used
func NewSession(st *store.Store, width, height int, workflow Mode) *Session {

	mode := workflow

	if st.Len() > 0 {
		mode = ModeSelect
	}

	return &Session{
		store: st,
		view: ViewState{
			View:        geom.View{Scale: 1},
			ImageWidth:  width,
			ImageHeight: height,
		},
		mode: mode,
		handlers: map[Mode]pointerHandler{
			ModeSelect: selectHandler{},
			ModeDraw:   drawHandler{},
			ModePan:    panHandler{},
		},
	}
}

// ready reports whether the image dimensions are known.  Until then no
// transform is valid and the session ignores pointer input
func (s *Session) ready() bool {
	return s.view.ImageWidth > 0 && s.view.ImageHeight > 0
}

// Mode returns the active interaction mode
func (s *Session) Mode() Mode {
	return s.mode
}

// SetMode switches the interaction mode.  Any gesture in progress is
// cancelled without committing partial edits, so a half drawn box is
// discarded and a half dragged object rolls back.  Pan never holds an
// object selection
func (s *Session) SetMode(m Mode) {

	s.cancelGesture()
	s.mode = m

	if m == ModePan {
		s.store.ClearSelection()
	}
}

// View returns the current view state
func (s *Session) View() ViewState {
	return s.view
}

// SetScale sets the zoom scale, ignoring non-positive values
func (s *Session) SetScale(scale float64) {

	if scale <= 0 {
		return
	}

	s.view.Scale = scale
}

// SetActiveClass sets the class assigned to boxes drawn from now on
func (s *Session) SetActiveClass(class int) {
	s.activeClass = class
}

// PointerDown dispatches a pointer press at view coordinates (x, y) to
// the active mode.  A press while a gesture is still in progress cancels
// the incomplete gesture first
func (s *Session) PointerDown(x, y float64) {

	if !s.ready() {
		return
	}

	if s.gest.kind != gestureNone {
		s.cancelGesture()
	}

	s.handlers[s.mode].pointerDown(s, x, y)
}

// PointerMove dispatches pointer movement to the active mode
func (s *Session) PointerMove(x, y float64) {

	if !s.ready() {
		return
	}

	s.handlers[s.mode].pointerMove(s, x, y)
}

// PointerUp dispatches a pointer release to the active mode, finalizing
// the gesture in progress if any
func (s *Session) PointerUp(x, y float64) {

	if !s.ready() {
		return
	}

	s.handlers[s.mode].pointerUp(s, x, y)
}

// Delete removes the selected object from the store and clears the
// selection.  Without a selection it is a no-op.  A gesture in progress
// is cancelled first so a delete landing mid drag can never leave a
// gesture pointing at the removed object
func (s *Session) Delete() {

	s.cancelGesture()

	if idx, ok := s.store.SelectedIndex(); ok {
		s.store.Remove(idx)
	}
}

// Cancel aborts any in-progress gesture and drops the selection without
// further side effects
func (s *Session) Cancel() {
	s.cancelGesture()
	s.store.ClearSelection()
}

// PendingBox returns the in-progress draw box in absolute image space,
// for the rendering surface to show while the user drags.  The second
// return is false when no draw gesture is active
func (s *Session) PendingBox() (geom.PixelBox, bool) {

	if s.gest.kind != gestureDraw {
		return geom.PixelBox{}, false
	}

	return boxFromCorners(s.gest.anchorX, s.gest.anchorY, s.gest.curX, s.gest.curY), true
}

// cancelGesture discards the gesture in progress.  Move and resize
// gestures apply edits live while dragging, so aborting one restores the
// object's original geometry.  The rollback resolves the object's
// current position from its stable ID, an object removed or replaced
// since the gesture started simply has nothing to roll back
func (s *Session) cancelGesture() {

	switch s.gest.kind {
	case gestureMove, gestureResize:
		if idx, ok := s.store.IndexOf(s.gest.id); ok {
			s.store.Update(idx, s.gest.origBox, s.gest.origMask)
		}
	}

	s.gest = gesture{}
}

// imagePoint converts a view space pointer position to image space using
// the current view state
func (s *Session) imagePoint(x, y float64) (float64, float64) {
	return geom.ViewToImage(x, y, s.view.View)
}

// boxFromCorners builds a pixel box from two opposite corners given in
// any order
func boxFromCorners(x1, y1, x2, y2 float64) geom.PixelBox {

	if x2 < x1 {
		x1, x2 = x2, x1
	}

	if y2 < y1 {
		y1, y2 = y2, y1
	}

	return geom.PixelBox{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
