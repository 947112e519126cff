package export

import (
	"strings"
)

// Image is the annotation set and pixel dimensions of one image in a
// batch export
type Image struct {
	Annotations []Annotation
	Width       int
	Height      int
}

// Batch converts the annotations of multiple images independently, each
// against its own dimensions, and returns the YOLO content keyed by the
// sanitized .txt filename derived from the image filename.  Packaging of
// the result, such as zipping, is the export sink's concern
func Batch(images map[string]Image, classIDs map[string]int) map[string]string {

	out := make(map[string]string, len(images))

	for filename, img := range images {
		out[TxtFilename(filename)] = YOLO(img.Annotations, img.Width, img.Height, classIDs)
	}

	return out
}

// TxtFilename derives the annotation filename for an image file by
// stripping the extension, replacing every character that is not a
// letter, digit, underscore or hyphen with an underscore, and appending
// the .txt extension
func TxtFilename(imageName string) string {

	base := imageName

	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}

	var b strings.Builder

	for _, c := range base {
		if c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' ||
			c >= '0' && c <= '9' || c == '_' || c == '-' {
			b.WriteRune(c)
		} else {
			b.WriteRune('_')
		}
	}

	return b.String() + ".txt"
}
