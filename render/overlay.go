// Package render draws the annotated object set onto an image through
// the current view state.  It is the rendering surface collaborator of
// the interaction engine, it consumes view, objects and selection but
// never feeds anything back.
package render

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/annolab/go-annotate/geom"
	"github.com/annolab/go-annotate/interact"
	"github.com/annolab/go-annotate/store"
)

// handleSize is the half size of the resize handle square in view pixels
const handleSize = 4

// boxLabel defines where an object label should be rendered on the
// source image
type boxLabel struct {
	rect    image.Rectangle
	clr     color.RGBA
	text    string
	textPos image.Point
}

// Overlay renders every visible object of the store onto img with its
// class label and confidence, the mask polygon outline when present, the
// resize handle of the selected object and the in-progress draw box if
// any.  All geometry passes through the session's view state so the
// overlay stays correct under zoom and pan
func Overlay(img *gocv.Mat, st *store.Store, sess *interact.Session,
	classNames []string, font Font, lineThickness int) {

	vs := sess.View()
	view := vs.View

	selected, hasSelection := st.SelectedIndex()

	// keep a record of all box labels for later rendering
	boxLabels := make([]boxLabel, 0)

	for i, obj := range st.Objects() {

		if !st.Visible(i) {
			continue
		}

		useClr := classColor(obj.Class)

		abs := geom.ToAbsolute(obj.Box, vs.ImageWidth, vs.ImageHeight)
		rect := viewRect(abs, view)

		// draw rectangle around the object
		gocv.Rectangle(img, rect, useClr, lineThickness)

		// draw the mask polygon outline
		if len(obj.Mask) > 0 {
			drawMask(img, obj.Mask, view, useClr, lineThickness)
		}

		// create text for label
		name := fmt.Sprintf("class %d", obj.Class)

		if obj.Class >= 0 && obj.Class < len(classNames) {
			name = classNames[obj.Class]
		}

		text := fmt.Sprintf("%s %.2f", name, obj.Confidence)
		textSize := gocv.GetTextSize(text, font.Face, font.Scale, font.Thickness)

		centerX := rect.Min.X + (textSize.X / 2) + font.LeftPad - (lineThickness / 2)
		labelPosition := image.Pt(centerX-textSize.X/2, rect.Min.Y-font.BottomPad)

		bRect := image.Rect(centerX-textSize.X/2-font.LeftPad,
			rect.Min.Y-textSize.Y-font.TopPad-font.BottomPad,
			centerX+textSize.X/2+font.RightPad, rect.Min.Y)

		boxLabels = append(boxLabels, boxLabel{
			rect:    bRect,
			clr:     useClr,
			text:    text,
			textPos: labelPosition,
		})

		if hasSelection && i == selected {
			drawSelection(img, rect, lineThickness)
		}
	}

	// the box being drawn right now, shown without a label
	if pending, ok := sess.PendingBox(); ok {
		gocv.Rectangle(img, viewRect(pending, view), selectionColor, lineThickness)
	}

	// draw all precalculated box labels last so they are the top most
	// layer on the image
	for _, box := range boxLabels {
		// draw box text gets written on
		gocv.Rectangle(img, box.rect, box.clr, -1)

		// Draw the label over box
		gocv.PutTextWithParams(img, box.text, box.textPos,
			font.Face, font.Scale, font.Color, font.Thickness,
			font.LineType, false)
	}
}

// viewRect converts an absolute image space box to an integer rectangle
// in view space
func viewRect(abs geom.PixelBox, view geom.View) image.Rectangle {

	x1, y1 := geom.ImageToView(abs.X, abs.Y, view)
	x2, y2 := geom.ImageToView(abs.X+abs.Width, abs.Y+abs.Height, view)

	return image.Rect(int(x1), int(y1), int(x2), int(y2))
}

// drawMask draws the mask polygon outline in view space
func drawMask(img *gocv.Mat, mask geom.Mask, view geom.View,
	clr color.RGBA, lineThickness int) {

	points := make([]image.Point, 0, len(mask))

	for _, pt := range mask {
		x, y := geom.ImageToView(pt.X, pt.Y, view)
		points = append(points, image.Pt(int(x), int(y)))
	}

	if len(points) < 2 {
		return
	}

	// convert points to a PointsVector and draw the closed polygon
	pts := gocv.NewPointVectorFromPoints(points)
	defer pts.Close()

	ptsVec := gocv.NewPointsVector()
	defer ptsVec.Close()

	ptsVec.Append(pts)

	gocv.Polylines(img, ptsVec, true, clr, lineThickness)
}

// drawSelection marks the selected object with its bottom-right resize
// handle
func drawSelection(img *gocv.Mat, rect image.Rectangle, lineThickness int) {

	handle := image.Rect(rect.Max.X-handleSize, rect.Max.Y-handleSize,
		rect.Max.X+handleSize, rect.Max.Y+handleSize)

	gocv.Rectangle(img, handle, selectionColor, -1)
	gocv.Rectangle(img, rect, selectionColor, lineThickness)
}
