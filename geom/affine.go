package geom

import (
	"gonum.org/v1/gonum/mat"
)

// affine represents a 2D affine transform as a 3x3 homogeneous matrix
type affine struct {
	m *mat.Dense
}

// newTranslation creates an affine transform shifting points by (dx, dy)
func newTranslation(dx, dy float64) affine {
	return affine{
		m: mat.NewDense(3, 3, []float64{
			1, 0, dx,
			0, 1, dy,
			0, 0, 1,
		}),
	}
}

// newAnchoredScale creates an affine transform scaling points by
// (sx, sy) about the anchor point (ax, ay).  Composed as
// translate(anchor) * scale * translate(-anchor)
func newAnchoredScale(sx, sy, ax, ay float64) affine {

	toOrigin := mat.NewDense(3, 3, []float64{
		1, 0, -ax,
		0, 1, -ay,
		0, 0, 1,
	})

	scale := mat.NewDense(3, 3, []float64{
		sx, 0, 0,
		0, sy, 0,
		0, 0, 1,
	})

	back := mat.NewDense(3, 3, []float64{
		1, 0, ax,
		0, 1, ay,
		0, 0, 1,
	})

	tmp := mat.NewDense(3, 3, nil)
	tmp.Mul(scale, toOrigin)

	out := mat.NewDense(3, 3, nil)
	out.Mul(back, tmp)

	return affine{m: out}
}

// apply transforms the point (x, y) through the affine matrix
func (a affine) apply(x, y float64) (float64, float64) {

	p := mat.NewVecDense(3, []float64{x, y, 1})
	res := mat.NewVecDense(3, nil)
	res.MulVec(a.m, p)

	return res.AtVec(0), res.AtVec(1)
}

// applyMask transforms every mask point through the affine matrix,
// returning a new mask and leaving the input untouched
func (a affine) applyMask(m Mask) Mask {

	if m == nil {
		return nil
	}

	out := make(Mask, len(m))

	for i, pt := range m {
		x, y := a.apply(pt.X, pt.Y)
		out[i] = Point{X: x, Y: y}
	}

	return out
}

// Translate shifts the box by (dx, dy) in absolute pixel space and
// re-normalizes it against the image dimensions.  Mask points are shifted
// by the same delta and stay in absolute space, so mask translation is
// exact and lossless.  A new box and mask are returned, the inputs are
// never mutated
func Translate(b Box, m Mask, dx, dy float64, width, height int) (Box, Mask) {

	t := newTranslation(dx, dy)

	abs := ToAbsolute(b, width, height)
	abs.X, abs.Y = t.apply(abs.X, abs.Y)

	return ToNormalized(abs, width, height), t.applyMask(m)
}

// Scale resizes the box by the factors (sx, sy) anchored at the box's
// top-left absolute corner.  Mask points are rescaled about the same
// anchor so box and mask keep their geometric relationship.  The
// arithmetic is performed unconditionally, degenerate factors and minimum
// size thresholds are the caller's responsibility
func Scale(b Box, m Mask, sx, sy float64, width, height int) (Box, Mask) {

	abs := ToAbsolute(b, width, height)

	t := newAnchoredScale(sx, sy, abs.X, abs.Y)

	// transform both corners, the top-left is the fixed anchor
	tlx, tly := t.apply(abs.X, abs.Y)
	brx, bry := t.apply(abs.X+abs.Width, abs.Y+abs.Height)

	scaled := PixelBox{
		X:      tlx,
		Y:      tly,
		Width:  brx - tlx,
		Height: bry - tly,
	}

	return ToNormalized(scaled, width, height), t.applyMask(m)
}
