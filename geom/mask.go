package geom

import (
	clipper "github.com/ctessum/go.clipper"
)

// Point is a single vertex of a polygon mask in absolute pixel space
type Point struct {
	X, Y float64
}

// Mask is an ordered sequence of polygon vertices outlining an object
// segment.  Mask points are always kept in absolute pixel space,
// independent of box normalization
type Mask []Point

// Localize subtracts the box origin from every mask point and returns the
// result as a flat x,y sequence, so the polygon can be drawn relative to
// its owning box's local frame.  Globalize with the same origin is the
// exact inverse
func Localize(m Mask, originX, originY float64) []float64 {

	flat := make([]float64, 0, len(m)*2)

	for _, pt := range m {
		flat = append(flat, pt.X-originX, pt.Y-originY)
	}

	return flat
}

// Globalize converts a flat local point sequence back into a mask in
// absolute pixel space by re-adding the box origin
func Globalize(flat []float64, originX, originY float64) Mask {

	m := make(Mask, 0, len(flat)/2)

	for i := 0; i+1 < len(flat); i += 2 {
		m = append(m, Point{
			X: flat[i] + originX,
			Y: flat[i+1] + originY,
		})
	}

	return m
}

// OffsetMask grows (positive distance) or shrinks (negative distance) the
// mask polygon outline by the given distance in pixels.  Used to pad a
// mask outline so hit testing near its edge has some tolerance.  An empty
// result is returned when the polygon collapses
func OffsetMask(m Mask, distance float64) Mask {

	if len(m) < 3 {
		return nil
	}

	// convert the mask points to a Clipper Path
	var path clipper.Path

	for _, pt := range m {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(pt.X),
			Y: clipper.CInt(pt.Y),
		})
	}

	// create a ClipperOffset object and add the path
	co := clipper.NewClipperOffset()
	co.AddPath(path, clipper.JtRound, clipper.EtClosedPolygon)

	// execute the offset operation
	solution := co.Execute(distance)

	if len(solution) == 0 {
		return nil
	}

	// convert the first solution polygon back to mask points
	var out Mask

	for _, pt := range solution[0] {
		out = append(out, Point{X: float64(pt.X), Y: float64(pt.Y)})
	}

	return out
}

// MaskContains reports whether the absolute image space point (x, y) is
// inside the mask polygon, using the even-odd ray casting rule
func MaskContains(m Mask, x, y float64) bool {

	if len(m) < 3 {
		return false
	}

	inside := false
	j := len(m) - 1

	for i := 0; i < len(m); i++ {

		if (m[i].Y > y) != (m[j].Y > y) &&
			x < (m[j].X-m[i].X)*(y-m[i].Y)/(m[j].Y-m[i].Y)+m[i].X {
			inside = !inside
		}

		j = i
	}

	return inside
}
