package detect

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/annolab/go-annotate/geom"
)

// summary is the columnar wire format detection providers emit, with one
// entry per object across the parallel class, confidence, bbox and masks
// arrays.  Bounding boxes arrive as [x1, y1, x2, y2] in absolute pixels,
// mask polygons as [[x, y], ...] point lists or null
type summary struct {
	Class      []string      `json:"class"`
	Confidence []float64     `json:"confidence"`
	BBox       [][]float64   `json:"bbox"`
	Masks      [][][]float64 `json:"masks"`
}

// ParseSummary decodes a provider result payload into detection results,
// normalizing the absolute bounding boxes against the image dimensions so
// the in-engine contract stays normalized.  Entries with malformed
// geometry are skipped with a logged warning.  Requires width and
// height > 0
func ParseSummary(data []byte, width, height int) ([]Result, error) {

	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}

	var s summary

	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("error decoding detection summary: %w", err)
	}

	count := len(s.Class)

	if len(s.Confidence) < count {
		count = len(s.Confidence)
	}

	if len(s.BBox) < count {
		count = len(s.BBox)
	}

	results := make([]Result, 0, count)

	for i := 0; i < count; i++ {

		if len(s.BBox[i]) < 4 {
			log.Printf("detect: skipping result %d with malformed bbox %v", i, s.BBox[i])
			continue
		}

		box := geom.ClampBox(geom.Box{
			X1: s.BBox[i][0] / float64(width),
			Y1: s.BBox[i][1] / float64(height),
			X2: s.BBox[i][2] / float64(width),
			Y2: s.BBox[i][3] / float64(height),
		})

		var mask geom.Mask

		if i < len(s.Masks) {
			for _, pt := range s.Masks[i] {
				if len(pt) >= 2 {
					mask = append(mask, geom.Point{X: pt[0], Y: pt[1]})
				}
			}
		}

		results = append(results, Result{
			ClassName:  s.Class[i],
			Confidence: geom.Clamp(s.Confidence[i], 0, 1),
			Box:        box,
			Mask:       mask,
		})
	}

	return results, nil
}
