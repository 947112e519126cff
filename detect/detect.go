// Package detect defines the narrow contract to an external detection
// provider and the ingestion boundary that commits its results into the
// object store.  How detections are produced is the provider's business,
// the engine only consumes the result set as one atomic replacement.
package detect

import (
	"context"

	"gocv.io/x/gocv"

	"github.com/annolab/go-annotate/geom"
)

const (
	// DefaultConf is the default confidence threshold passed to the
	// provider
	DefaultConf = 0.25
	// DefaultIoU is the default NMS IoU threshold passed to the provider
	DefaultIoU = 0.7
)

// PromptKind selects the detection workflow the provider runs
type PromptKind int

const (
	// PromptFree detects against the provider's built-in vocabulary
	PromptFree PromptKind = iota
	// TextPrompt detects only the caller supplied class names
	TextPrompt
	// ImagePrompt detects using visual example boxes
	ImagePrompt
)

// VisualPrompt carries example boxes with their class IDs for image
// prompted detection.  Boxes and Classes must have the same length
type VisualPrompt struct {
	Boxes   []geom.Box
	Classes []int
}

// Prompt is the mode specific payload sent with a detection request
type Prompt struct {
	Kind       PromptKind
	ClassNames []string
	Visual     *VisualPrompt
	Conf       float64
	IoU        float64
}

// NewPrompt returns a prompt of the given kind with default thresholds
func NewPrompt(kind PromptKind) Prompt {
	return Prompt{
		Kind: kind,
		Conf: DefaultConf,
		IoU:  DefaultIoU,
	}
}

// Result is a single detection delivered by a provider.  The bounding
// box is normalized to [0,1], the optional mask polygon is in absolute
// pixel space
type Result struct {
	ClassName  string
	Confidence float64
	Box        geom.Box
	Mask       geom.Mask
}

// Provider is the external detector collaborator.  Implementations run
// inference on the given image and return the detected objects, an error
// surfaces to the caller as an empty object set plus a user visible
// message, never as an engine failure
type Provider interface {
	Detect(ctx context.Context, img gocv.Mat, prompt Prompt) ([]Result, error)
}
