package interact

import (
	"math"

	"github.com/annolab/go-annotate/geom"
)

// selectHandler picks objects and edits them.  Dragging the body of the
// selected object translates it, dragging its resize handle rescales it
// anchored at the top-left corner.  Clicking empty canvas deselects
type selectHandler struct{}

func (selectHandler) pointerDown(s *Session, x, y float64) {

	ix, iy := s.imagePoint(x, y)

	// a press on the resize handle of the current selection starts a
	// resize gesture
	if idx, ok := s.store.SelectedIndex(); ok {

		obj, _ := s.store.Get(idx)
		abs := geom.ToAbsolute(obj.Box, s.view.ImageWidth, s.view.ImageHeight)

		if hitResizeHandle(abs, ix, iy, handleTolerance/s.view.Scale) {
			s.gest = gesture{
				kind:     gestureResize,
				id:       obj.ID,
				origBox:  obj.Box,
				origMask: obj.Mask,
			}
			return
		}
	}

	// otherwise select the topmost object under the pointer and start
	// dragging its body
	if idx, ok := s.hitObject(ix, iy); ok {

		s.store.Select(idx)
		obj, _ := s.store.Get(idx)

		s.gest = gesture{
			kind:     gestureMove,
			id:       obj.ID,
			origBox:  obj.Box,
			origMask: obj.Mask,
			grabX:    ix,
			grabY:    iy,
		}
		return
	}

	// click on empty canvas deselects
	s.store.ClearSelection()
}

func (selectHandler) pointerMove(s *Session, x, y float64) {

	w := s.view.ImageWidth
	h := s.view.ImageHeight

	switch s.gest.kind {

	case gestureMove:
		// the dragged object may have been removed or replaced since the
		// press, a gesture with no surviving target ends as a no-op
		idx, ok := s.store.IndexOf(s.gest.id)

		if !ok {
			s.gest = gesture{}
			return
		}

		ix, iy := s.imagePoint(x, y)

		// edits always derive from the original geometry so the box and
		// mask never accumulate drift over a long drag
		box, mask := geom.Translate(s.gest.origBox, s.gest.origMask,
			ix-s.gest.grabX, iy-s.gest.grabY, w, h)

		s.store.Update(idx, box, mask)

	case gestureResize:
		idx, ok := s.store.IndexOf(s.gest.id)

		if !ok {
			s.gest = gesture{}
			return
		}

		ix, iy := s.imagePoint(x, y)

		abs := geom.ToAbsolute(s.gest.origBox, w, h)

		if abs.Width <= 0 || abs.Height <= 0 {
			return
		}

		sx := (ix - abs.X) / abs.Width
		sy := (iy - abs.Y) / abs.Height

		// degenerate factors and sub-threshold results are never
		// committed, the last valid geometry stands
		if sx <= 0 || sy <= 0 {
			return
		}

		if abs.Width*sx <= MinBoxSize || abs.Height*sy <= MinBoxSize {
			return
		}

		box, mask := geom.Scale(s.gest.origBox, s.gest.origMask, sx, sy, w, h)

		s.store.Update(idx, box, mask)
	}
}

func (selectHandler) pointerUp(s *Session, x, y float64) {

	// the live edits applied during the drag are the commit, releasing
	// the pointer just ends the gesture
	if s.gest.kind == gestureMove || s.gest.kind == gestureResize {
		s.gest = gesture{}
	}
}

// drawHandler creates a new box anchored at the press point, growing it
// while the pointer drags until release
type drawHandler struct{}

func (drawHandler) pointerDown(s *Session, x, y float64) {

	ix, iy := s.imagePoint(x, y)

	s.gest = gesture{
		kind:    gestureDraw,
		anchorX: ix,
		anchorY: iy,
		curX:    ix,
		curY:    iy,
	}
}

func (drawHandler) pointerMove(s *Session, x, y float64) {

	if s.gest.kind != gestureDraw {
		return
	}

	s.gest.curX, s.gest.curY = s.imagePoint(x, y)
}

func (drawHandler) pointerUp(s *Session, x, y float64) {

	if s.gest.kind != gestureDraw {
		return
	}

	s.gest.curX, s.gest.curY = s.imagePoint(x, y)

	box := boxFromCorners(s.gest.anchorX, s.gest.anchorY, s.gest.curX, s.gest.curY)

	s.gest = gesture{}

	// sub-threshold boxes are accidental clicks, discard them silently
	if box.Width <= MinBoxSize || box.Height <= MinBoxSize {
		return
	}

	s.store.Add(geom.ToNormalized(box, s.view.ImageWidth, s.view.ImageHeight),
		s.activeClass, nil)
}

// panHandler moves the viewport.  Pointer deltas are applied to the pan
// offset in device pixels without the zoom scale, so panning feels the
// same at every zoom level
type panHandler struct{}

func (panHandler) pointerDown(s *Session, x, y float64) {

	s.gest = gesture{
		kind:  gesturePan,
		lastX: x,
		lastY: y,
	}
}

func (panHandler) pointerMove(s *Session, x, y float64) {

	if s.gest.kind != gesturePan {
		return
	}

	s.view.PanX += x - s.gest.lastX
	s.view.PanY += y - s.gest.lastY

	s.gest.lastX = x
	s.gest.lastY = y
}

func (panHandler) pointerUp(s *Session, x, y float64) {

	if s.gest.kind == gesturePan {
		s.gest = gesture{}
	}
}

// hitObject finds the topmost visible object under the image space point
// (ix, iy).  Objects later in the set render on top, so the search runs
// from the highest index down.  A point inside the bounding box hits, as
// does a point inside the mask outline padded by the grab tolerance
func (s *Session) hitObject(ix, iy float64) (int, bool) {

	pad := handleTolerance / s.view.Scale

	for i := s.store.Len() - 1; i >= 0; i-- {

		if !s.store.Visible(i) {
			continue
		}

		obj, _ := s.store.Get(i)

		abs := geom.ToAbsolute(obj.Box, s.view.ImageWidth, s.view.ImageHeight)

		if abs.Contains(ix, iy) {
			return i, true
		}

		if len(obj.Mask) > 0 {
			if geom.MaskContains(geom.OffsetMask(obj.Mask, pad), ix, iy) {
				return i, true
			}
		}
	}

	return 0, false
}

// hitResizeHandle reports whether the image space point is within
// tolerance of the box's bottom-right resize handle
func hitResizeHandle(abs geom.PixelBox, ix, iy, tolerance float64) bool {
	return math.Abs(ix-(abs.X+abs.Width)) <= tolerance &&
		math.Abs(iy-(abs.Y+abs.Height)) <= tolerance
}
