// Package export serializes an annotated object set into the normalized
// YOLO text format, one line per object.
package export

import (
	"fmt"
	"log"
	"strings"

	"github.com/annolab/go-annotate/geom"
	"github.com/annolab/go-annotate/store"
)

// Annotation is a single object prepared for export.  The box is given
// in absolute pixel coordinates with X,Y as the top-left corner.  The
// effective class name prefers the user's relabel over the detector's
// original output
type Annotation struct {
	X, Y          float64
	Width, Height float64

	// ClassName is the class as delivered by the detector
	ClassName string
	// UserLabel is an optional user supplied relabel, it wins over
	// ClassName when set
	UserLabel string
	// OriginalClass is the detector class before any edits, used as a
	// last resort when the other two are empty
	OriginalClass string
}

// EffectiveClass returns the class name used for export, preferring the
// user label, then the current class name, then the original class
func (a Annotation) EffectiveClass() string {

	if a.UserLabel != "" {
		return a.UserLabel
	}

	if a.ClassName != "" {
		return a.ClassName
	}

	return a.OriginalClass
}

// YOLO converts the annotations of a single image into YOLO format, one
// line per object of the form
//
//	classId x_center y_center width height
//
// with all values normalized to [0,1] and clamped into that range, so a
// box extending past the image bounds truncates rather than fails.
// Objects with an unknown class or malformed geometry are skipped with a
// logged warning, one bad record never aborts the export.  An empty
// annotation list or non-positive image dimensions yield an empty string
func YOLO(annotations []Annotation, width, height int, classIDs map[string]int) string {

	if len(annotations) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	lines := make([]string, 0, len(annotations))

	for _, ann := range annotations {

		name := ann.EffectiveClass()

		classID, ok := classIDs[name]

		if !ok {
			log.Printf("export: skipping annotation with unknown class %q", name)
			continue
		}

		if ann.Width < 0 || ann.Height < 0 {
			log.Printf("export: skipping annotation with malformed box %+v", ann)
			continue
		}

		// absolute box center
		xc := ann.X + ann.Width/2
		yc := ann.Y + ann.Height/2

		// normalize and clamp into [0,1] to absorb boxes nudged past
		// the image bounds
		xcN := geom.Clamp(xc/float64(width), 0, 1)
		ycN := geom.Clamp(yc/float64(height), 0, 1)
		wN := geom.Clamp(ann.Width/float64(width), 0, 1)
		hN := geom.Clamp(ann.Height/float64(height), 0, 1)

		lines = append(lines, fmt.Sprintf("%d %.6f %.6f %.6f %.6f",
			classID, xcN, ycN, wN, hN))
	}

	return strings.Join(lines, "\n")
}

// FromStore converts the object set into export annotations, resolving
// class indices to names against the class labels list.  The store keeps
// boxes normalized, export works in absolute pixels, so the geometry is
// converted here.  Objects whose class index has no label are carried
// with an empty name and skipped later by YOLO with a warning
func FromStore(st *store.Store, width, height int, classNames []string) []Annotation {

	objects := st.Objects()
	anns := make([]Annotation, 0, len(objects))

	for _, obj := range objects {

		abs := geom.ToAbsolute(obj.Box, width, height)

		name := ""

		if obj.Class >= 0 && obj.Class < len(classNames) {
			name = classNames[obj.Class]
		}

		anns = append(anns, Annotation{
			X:         abs.X,
			Y:         abs.Y,
			Width:     abs.Width,
			Height:    abs.Height,
			ClassName: name,
		})
	}

	return anns
}
