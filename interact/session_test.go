package interact

import (
	"math"
	"testing"

	"github.com/annolab/go-annotate/geom"
	"github.com/annolab/go-annotate/store"
)

// almostEqual checks if two float64 values are approximately equal
func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

// newTestStore returns a store holding one object whose absolute box is
// (100, 100) to (200, 200) on a 400x400 image
func newTestStore() *store.Store {

	st := store.NewStore()
	st.Add(geom.Box{X1: 0.25, Y1: 0.25, X2: 0.5, Y2: 0.5}, 0,
		geom.Mask{{X: 110, Y: 110}, {X: 190, Y: 110}, {X: 150, Y: 190}})

	return st
}

func TestInitialMode(t *testing.T) {

	// with objects present the session starts in select mode
	s := NewSession(newTestStore(), 400, 400, ModeDraw)

	if s.Mode() != ModeSelect {
		t.Errorf("initial mode = %v, expected select", s.Mode())
	}

	// with an empty store the workflow fallback applies
	s = NewSession(store.NewStore(), 400, 400, ModeDraw)

	if s.Mode() != ModeDraw {
		t.Errorf("initial mode = %v, expected draw", s.Mode())
	}
}

func TestDrawCommit(t *testing.T) {

	st := store.NewStore()
	s := NewSession(st, 640, 480, ModeDraw)

	s.PointerDown(100, 100)
	s.PointerMove(160, 150)

	if _, ok := s.PendingBox(); !ok {
		t.Error("no pending box reported during draw gesture")
	}

	s.PointerUp(200, 180)

	if st.Len() != 1 {
		t.Fatalf("store holds %d objects after draw, expected 1", st.Len())
	}

	obj, _ := st.Get(0)
	abs := geom.ToAbsolute(obj.Box, 640, 480)

	if !almostEqual(abs.X, 100, 1e-6) || !almostEqual(abs.Y, 100, 1e-6) ||
		!almostEqual(abs.Width, 100, 1e-6) || !almostEqual(abs.Height, 80, 1e-6) {
		t.Errorf("committed box = %+v, expected (100, 100, 100, 80)", abs)
	}

	if obj.Confidence != 1 {
		t.Errorf("drawn box confidence = %v, expected 1", obj.Confidence)
	}
}

func TestDrawReversedCorners(t *testing.T) {

	st := store.NewStore()
	s := NewSession(st, 640, 480, ModeDraw)

	// dragging up and left of the anchor still produces a valid box
	s.PointerDown(200, 180)
	s.PointerUp(100, 100)

	if st.Len() != 1 {
		t.Fatalf("store holds %d objects, expected 1", st.Len())
	}

	obj, _ := st.Get(0)
	abs := geom.ToAbsolute(obj.Box, 640, 480)

	if !almostEqual(abs.X, 100, 1e-6) || !almostEqual(abs.Y, 100, 1e-6) {
		t.Errorf("box origin = (%v, %v), expected (100, 100)", abs.X, abs.Y)
	}
}

func TestDrawSubThresholdDiscarded(t *testing.T) {

	st := store.NewStore()
	s := NewSession(st, 640, 480, ModeDraw)

	// 4x3 pixels is below the minimum in both dimensions
	s.PointerDown(100, 100)
	s.PointerUp(104, 103)

	if st.Len() != 0 {
		t.Error("sub-threshold box should be discarded silently")
	}

	// below the minimum in one dimension is still discarded
	s.PointerDown(100, 100)
	s.PointerUp(180, 104)

	if st.Len() != 0 {
		t.Error("box below threshold in one dimension should be discarded")
	}
}

func TestModeSwitchDiscardsDraw(t *testing.T) {

	st := store.NewStore()
	s := NewSession(st, 640, 480, ModeDraw)

	s.PointerDown(100, 100)
	s.PointerMove(300, 300)

	s.SetMode(ModeSelect)

	if st.Len() != 0 {
		t.Error("switching mode mid-draw should not commit the box")
	}

	if _, ok := s.PendingBox(); ok {
		t.Error("pending box should be gone after mode switch")
	}
}

func TestPanDeltasIgnoreScale(t *testing.T) {

	s := NewSession(store.NewStore(), 400, 400, ModePan)
	s.SetScale(2)

	s.PointerDown(10, 10)
	s.PointerMove(30, 25)
	s.PointerUp(30, 25)

	v := s.View()

	// pan moves in device pixels, the zoom scale is not applied
	if v.PanX != 20 || v.PanY != 15 {
		t.Errorf("pan = (%v, %v), expected (20, 15)", v.PanX, v.PanY)
	}
}

func TestPanClearsSelection(t *testing.T) {

	st := newTestStore()
	s := NewSession(st, 400, 400, ModeSelect)

	s.PointerDown(150, 150)
	s.PointerUp(150, 150)

	if _, ok := st.SelectedIndex(); !ok {
		t.Fatal("click on object should select it")
	}

	s.SetMode(ModePan)

	if _, ok := st.SelectedIndex(); ok {
		t.Error("pan mode should not hold an object selection")
	}
}

func TestSelectAndDeselect(t *testing.T) {

	st := newTestStore()
	s := NewSession(st, 400, 400, ModeSelect)

	s.PointerDown(150, 150)
	s.PointerUp(150, 150)

	idx, ok := st.SelectedIndex()

	if !ok || idx != 0 {
		t.Fatalf("click on object gave selection (%d, %v), expected (0, true)", idx, ok)
	}

	// click on empty canvas deselects
	s.PointerDown(350, 350)
	s.PointerUp(350, 350)

	if _, ok := st.SelectedIndex(); ok {
		t.Error("click on empty canvas should deselect")
	}
}

func TestHiddenObjectNotHittable(t *testing.T) {

	st := newTestStore()
	st.ToggleVisibility(0)

	s := NewSession(st, 400, 400, ModeSelect)

	s.PointerDown(150, 150)
	s.PointerUp(150, 150)

	if _, ok := st.SelectedIndex(); ok {
		t.Error("hidden object should not be hittable")
	}
}

func TestTopmostObjectWins(t *testing.T) {

	st := newTestStore()
	// overlapping object added later renders on top
	st.Add(geom.Box{X1: 0.3, Y1: 0.3, X2: 0.6, Y2: 0.6}, 1, nil)

	s := NewSession(st, 400, 400, ModeSelect)

	s.PointerDown(150, 150)
	s.PointerUp(150, 150)

	idx, ok := st.SelectedIndex()

	if !ok || idx != 1 {
		t.Errorf("selection = (%d, %v), expected the topmost object (1, true)", idx, ok)
	}
}

func TestDragTranslatesObject(t *testing.T) {

	st := newTestStore()
	s := NewSession(st, 400, 400, ModeSelect)

	s.PointerDown(150, 150)
	s.PointerMove(180, 170)
	s.PointerUp(180, 170)

	obj, _ := st.Get(0)
	abs := geom.ToAbsolute(obj.Box, 400, 400)

	if !almostEqual(abs.X, 130, 1e-6) || !almostEqual(abs.Y, 120, 1e-6) {
		t.Errorf("box origin after drag = (%v, %v), expected (130, 120)", abs.X, abs.Y)
	}

	if !almostEqual(abs.Width, 100, 1e-6) || !almostEqual(abs.Height, 100, 1e-6) {
		t.Errorf("drag changed box size to (%v, %v)", abs.Width, abs.Height)
	}

	// the mask moved with the box
	if !almostEqual(obj.Mask[0].X, 140, 1e-6) || !almostEqual(obj.Mask[0].Y, 130, 1e-6) {
		t.Errorf("mask point after drag = %v, expected (140, 130)", obj.Mask[0])
	}
}

func TestResizeHandleScalesObject(t *testing.T) {

	st := newTestStore()
	s := NewSession(st, 400, 400, ModeSelect)

	// select first
	s.PointerDown(150, 150)
	s.PointerUp(150, 150)

	// grab the bottom-right handle at (200, 200) and drag it out
	s.PointerDown(200, 200)
	s.PointerMove(300, 250)
	s.PointerUp(300, 250)

	obj, _ := st.Get(0)
	abs := geom.ToAbsolute(obj.Box, 400, 400)

	if !almostEqual(abs.X, 100, 1e-6) || !almostEqual(abs.Y, 100, 1e-6) {
		t.Errorf("resize moved the anchor to (%v, %v)", abs.X, abs.Y)
	}

	if !almostEqual(abs.Width, 200, 1e-6) || !almostEqual(abs.Height, 150, 1e-6) {
		t.Errorf("resized box = (%v, %v), expected (200, 150)", abs.Width, abs.Height)
	}

	// mask scaled about the same anchor: (110, 110) -> (120, 115)
	if !almostEqual(obj.Mask[0].X, 120, 1e-6) || !almostEqual(obj.Mask[0].Y, 115, 1e-6) {
		t.Errorf("mask point after resize = %v, expected (120, 115)", obj.Mask[0])
	}
}

func TestResizeRejectsDegenerate(t *testing.T) {

	st := newTestStore()
	s := NewSession(st, 400, 400, ModeSelect)

	s.PointerDown(150, 150)
	s.PointerUp(150, 150)

	before, _ := st.Get(0)

	// dragging the handle past the anchor gives a non-positive factor
	s.PointerDown(200, 200)
	s.PointerMove(90, 90)
	s.PointerUp(90, 90)

	after, _ := st.Get(0)

	if after.Box != before.Box {
		t.Error("degenerate resize should leave geometry unchanged")
	}

	// a result below the minimum size is also rejected
	s.PointerDown(200, 200)
	s.PointerMove(103, 103)
	s.PointerUp(103, 103)

	after, _ = st.Get(0)

	if after.Box != before.Box {
		t.Error("sub-threshold resize should leave geometry unchanged")
	}
}

func TestModeSwitchRollsBackDrag(t *testing.T) {

	st := newTestStore()
	before, _ := st.Get(0)

	s := NewSession(st, 400, 400, ModeSelect)

	s.PointerDown(150, 150)
	s.PointerMove(250, 250)

	// switching away mid-drag cancels without committing the edit
	s.SetMode(ModeDraw)

	after, _ := st.Get(0)

	if after.Box != before.Box {
		t.Error("mode switch mid-drag should roll back the geometry")
	}
}

func TestDeleteRemovesSelection(t *testing.T) {

	st := newTestStore()
	s := NewSession(st, 400, 400, ModeSelect)

	s.PointerDown(150, 150)
	s.PointerUp(150, 150)

	s.Delete()

	if st.Len() != 0 {
		t.Error("Delete should remove the selected object")
	}

	if _, ok := st.SelectedIndex(); ok {
		t.Error("Delete should clear the selection")
	}

	// without a selection Delete is a no-op
	st.Add(geom.Box{X1: 0.1, Y1: 0.1, X2: 0.3, Y2: 0.3}, 0, nil)
	s.Delete()

	if st.Len() != 1 {
		t.Error("Delete without a selection should be a no-op")
	}
}

func TestDeleteMidDragSparesNeighbor(t *testing.T) {

	st := newTestStore()
	st.Add(geom.Box{X1: 0.7, Y1: 0.7, X2: 0.9, Y2: 0.9}, 1, nil)
	survivor, _ := st.Get(1)

	s := NewSession(st, 400, 400, ModeSelect)

	// drag the first object and delete it while the pointer is still down
	s.PointerDown(150, 150)
	s.PointerMove(180, 180)

	s.Delete()

	// the drag continues after the delete, the neighbor that shifted into
	// the freed position must not inherit the dead gesture's edits
	s.PointerMove(220, 220)
	s.PointerUp(220, 220)

	if st.Len() != 1 {
		t.Fatalf("store holds %d objects after delete, expected 1", st.Len())
	}

	after, _ := st.Get(0)

	if after.Box != survivor.Box {
		t.Errorf("surviving object geometry = %+v, expected untouched %+v",
			after.Box, survivor.Box)
	}
}

func TestReplaceMidDragEndsGesture(t *testing.T) {

	st := newTestStore()
	s := NewSession(st, 400, 400, ModeSelect)

	s.PointerDown(150, 150)
	s.PointerMove(180, 180)

	// a detection commit mid-drag supersedes the whole object set
	fresh := store.Object{Box: geom.Box{X1: 0.1, Y1: 0.1, X2: 0.4, Y2: 0.4}}
	st.Replace([]store.Object{fresh})

	s.PointerMove(250, 250)
	s.PointerUp(250, 250)

	after, _ := st.Get(0)

	if after.Box != fresh.Box {
		t.Errorf("replaced object geometry = %+v, expected untouched %+v",
			after.Box, fresh.Box)
	}
}

func TestCancelAbortsDraw(t *testing.T) {

	st := store.NewStore()
	s := NewSession(st, 640, 480, ModeDraw)

	s.PointerDown(100, 100)
	s.PointerMove(300, 300)

	s.Cancel()

	s.PointerUp(300, 300)

	if st.Len() != 0 {
		t.Error("Cancel should abort the draw gesture")
	}
}

func TestInertWithoutDimensions(t *testing.T) {

	st := store.NewStore()
	s := NewSession(st, 0, 0, ModeDraw)

	s.PointerDown(10, 10)
	s.PointerUp(300, 300)

	if st.Len() != 0 {
		t.Error("session without image dimensions should ignore pointer input")
	}
}

func TestViewToImageUnderZoom(t *testing.T) {

	st := store.NewStore()
	s := NewSession(st, 640, 480, ModeDraw)

	s.SetScale(2)

	// at scale 2 the view point (200, 200) is image point (100, 100)
	s.PointerDown(200, 200)
	s.PointerUp(500, 400)

	obj, _ := st.Get(0)
	abs := geom.ToAbsolute(obj.Box, 640, 480)

	if !almostEqual(abs.X, 100, 1e-6) || !almostEqual(abs.Width, 150, 1e-6) {
		t.Errorf("box under zoom = %+v, expected x=100 width=150", abs)
	}

	// non-positive scales are ignored
	s.SetScale(0)

	if s.View().Scale != 2 {
		t.Error("SetScale(0) should be ignored")
	}
}
