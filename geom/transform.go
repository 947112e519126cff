package geom

// Box represents a bounding box in normalized coordinates, where all
// values are scaled to the [0,1] range relative to the image dimensions.
// X1,Y1 is the top-left corner and X2,Y2 the bottom-right corner
type Box struct {
	X1, Y1, X2, Y2 float64
}

// PixelBox represents a bounding box in absolute pixel coordinates with
// X,Y as the top-left corner
type PixelBox struct {
	X, Y          float64
	Width, Height float64
}

// View holds the zoom scale and pan offset applied to the image on the
// drawing surface.  Pointer coordinates arrive in view space and must be
// converted back to image space before any geometry operation
type View struct {
	Scale      float64
	PanX, PanY float64
}

// ToAbsolute converts a normalized box to absolute pixel coordinates for
// an image of the given width and height.  Requires width and height > 0.
// A degenerate zero size box converts to a zero size pixel box, rejection
// of such boxes happens at creation time not here
func ToAbsolute(b Box, width, height int) PixelBox {

	w := float64(width)
	h := float64(height)

	return PixelBox{
		X:      b.X1 * w,
		Y:      b.Y1 * h,
		Width:  (b.X2 - b.X1) * w,
		Height: (b.Y2 - b.Y1) * h,
	}
}

// ToNormalized converts an absolute pixel box back to normalized
// coordinates.  It is the exact inverse of ToAbsolute within floating
// point tolerance
func ToNormalized(p PixelBox, width, height int) Box {

	w := float64(width)
	h := float64(height)

	return Box{
		X1: p.X / w,
		Y1: p.Y / h,
		X2: (p.X + p.Width) / w,
		Y2: (p.Y + p.Height) / h,
	}
}

// ViewToImage converts a pointer position in view space to image space by
// removing the pan offset and dividing out the zoom scale.  Requires
// Scale > 0
func ViewToImage(px, py float64, v View) (float64, float64) {
	return (px - v.PanX) / v.Scale, (py - v.PanY) / v.Scale
}

// ImageToView converts an image space position to view space, the inverse
// of ViewToImage.  Used when rendering the object set over a zoomed and
// panned image
func ImageToView(ix, iy float64, v View) (float64, float64) {
	return ix*v.Scale + v.PanX, iy*v.Scale + v.PanY
}

// Clamp restricts val to the range min to max
func Clamp(val, min, max float64) float64 {

	if val < min {
		return min
	}

	if val > max {
		return max
	}

	return val
}

// ClampBox restricts all normalized box coordinates into the [0,1] range
func ClampBox(b Box) Box {
	return Box{
		X1: Clamp(b.X1, 0, 1),
		Y1: Clamp(b.Y1, 0, 1),
		X2: Clamp(b.X2, 0, 1),
		Y2: Clamp(b.Y2, 0, 1),
	}
}

// Contains reports whether the absolute image space point (x, y) falls
// inside the pixel box
func (p PixelBox) Contains(x, y float64) bool {
	return x >= p.X && x <= p.X+p.Width &&
		y >= p.Y && y <= p.Y+p.Height
}
