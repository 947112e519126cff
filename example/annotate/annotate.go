package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"path/filepath"

	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/annolab/go-annotate"
	"github.com/annolab/go-annotate/detect"
	"github.com/annolab/go-annotate/export"
	"github.com/annolab/go-annotate/interact"
	"github.com/annolab/go-annotate/render"
	"github.com/annolab/go-annotate/store"
)

const (
	// Size of TTF font used for the watermark text
	TTFFontSize = 16
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	imgFile := flag.String("i", "../data/bus.jpg", "Image file to annotate")
	labelFile := flag.String("l", "../data/coco_80_labels_list.txt", "Text file containing class labels")
	detFile := flag.String("d", "../data/bus-detections.json", "Detection summary JSON file from the detection provider")
	saveFile := flag.String("o", "../data/bus-annotated.jpg", "Output annotated image file")
	outDir := flag.String("e", ".", "Directory to write the YOLO annotation .txt file to")
	ttfFont := flag.String("f", "", "Optional TTF font file used to watermark the output image")

	flag.Parse()

	// load class labels
	classNames, err := annotate.LoadLabels(*labelFile)

	if err != nil {
		log.Fatal("Error loading class labels file: ", err)
	}

	classIDs := annotate.ClassMap(classNames)

	// load image
	img := gocv.IMRead(*imgFile, gocv.IMReadColor)

	if img.Empty() {
		log.Fatal("Error reading image from: ", *imgFile)
	}

	defer img.Close()

	width := img.Cols()
	height := img.Rows()

	// ingest the detection provider result as the object set
	payload, err := os.ReadFile(*detFile)

	if err != nil {
		log.Fatal("Error reading detection summary file: ", err)
	}

	results, err := detect.ParseSummary(payload, width, height)

	if err != nil {
		log.Fatal("Error parsing detection summary: ", err)
	}

	st := store.NewStore()
	detect.Commit(st, results, classIDs)

	log.Printf("ingested %d objects from %s", st.Len(), *detFile)

	// create the interaction session for the image and replay a short
	// edit, selecting the first object and nudging it right by 10px
	sess := interact.NewSession(st, width, height, interact.ModeDraw)

	if st.Len() > 0 {
		obj, _ := st.Get(0)
		abs := toAbsCenter(obj, width, height)

		sess.PointerDown(abs.X, abs.Y)
		sess.PointerMove(abs.X+10, abs.Y)
		sess.PointerUp(abs.X+10, abs.Y)
	}

	// render the annotation overlay onto the image
	render.Overlay(&img, st, sess, classNames, render.DefaultFont(), 2)

	if *ttfFont != "" {
		err = watermark(&img, *ttfFont,
			fmt.Sprintf("go-annotate %d objects", st.Len()))

		if err != nil {
			log.Fatal("Error watermarking image: ", err)
		}
	}

	if ok := gocv.IMWrite(*saveFile, img); !ok {
		log.Fatal("Failed to save annotated image to: ", *saveFile)
	}

	log.Printf("saved annotated image to %s", *saveFile)

	// export the object set to YOLO format
	content := export.YOLO(export.FromStore(st, width, height, classNames),
		width, height, classIDs)

	txtFile := filepath.Join(*outDir, export.TxtFilename(filepath.Base(*imgFile)))

	if err := os.WriteFile(txtFile, []byte(content), 0644); err != nil {
		log.Fatal("Error writing YOLO annotation file: ", err)
	}

	log.Printf("saved YOLO annotations to %s", txtFile)
}

// center is a point in view space
type center struct {
	X, Y float64
}

// toAbsCenter returns the view space center of an object's box, to aim
// the replayed pointer gesture at
func toAbsCenter(obj store.Object, width, height int) center {
	return center{
		X: (obj.Box.X1 + obj.Box.X2) / 2 * float64(width),
		Y: (obj.Box.Y1 + obj.Box.Y2) / 2 * float64(height),
	}
}

// watermark draws the given text in the top left corner of the image
// using a TTF font face
func watermark(img *gocv.Mat, fontPath, text string) error {

	// load font data
	fontBytes, err := os.ReadFile(fontPath)

	if err != nil {
		return fmt.Errorf("failed to load font: %w", err)
	}

	// parse the font
	f, err := opentype.Parse(fontBytes)

	if err != nil {
		return fmt.Errorf("failed to parse font: %w", err)
	}

	// create a type face
	fontFace, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    TTFFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})

	if err != nil {
		return fmt.Errorf("failed to create type face: %w", err)
	}

	// create image with text writing
	rgba := image.NewRGBA(image.Rect(0, 0, img.Cols(), img.Rows()))
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 0}), image.Point{}, draw.Src)

	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: fontFace,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(8 * 64),
			Y: fixed.Int26_6((TTFFontSize + 8) * 64),
		},
	}
	dr.DrawString(text)

	// Convert image.RGBA to gocv.Mat
	imgRGBA, err := gocv.NewMatFromBytes(rgba.Bounds().Dy(), rgba.Bounds().Dx(), gocv.MatTypeCV8UC4, rgba.Pix)

	if imgRGBA.Empty() || err != nil {
		return fmt.Errorf("error creating Mat from RGBA")
	}

	defer imgRGBA.Close()

	gocv.CvtColor(imgRGBA, &imgRGBA, gocv.ColorRGBAToBGR)
	gocv.AddWeighted(*img, 1.0, imgRGBA, 1.0, 0, img)

	return nil
}
