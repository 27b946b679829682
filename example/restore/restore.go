/*
Example code showing how to restore missing keypoints in a DWPose/OpenPose
JSON result using a reference pose from a known good frame, then render the
restored skeleton to an image
*/
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"

	"github.com/swdee/go-poserepair"
	"github.com/swdee/go-poserepair/render"
	"github.com/swdee/go-poserepair/restore"
	"gocv.io/x/gocv"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// Size of TTF font used for image annotation
	TTFFontSize = 18
)

func main() {
	// disable logging timestamps
	log.SetFlags(0)

	// read in cli flags
	poseFile := flag.String("i", "pose.json", "Pose JSON file with missing keypoints")
	refFile := flag.String("r", "ref.json", "Reference pose JSON file from a known good frame")
	outFile := flag.String("o", "restored.json", "File to write restored pose JSON to")
	imgFile := flag.String("img", "", "Optional image file to render the restored skeleton to")
	factor := flag.Float64("f", 0.7, "Confidence reduction factor applied to restored keypoints")
	keep := flag.Bool("k", false, "Keep confidence scores of restored keypoints, disables reduction")
	outlines := flag.Bool("b", false, "Draw region outlines around the hand and face groups")
	ttfFont := flag.String("t", "", "Optional TTF font file used to annotate the rendered image")

	flag.Parse()

	poseData, err := os.ReadFile(*poseFile)

	if err != nil {
		log.Fatal("Error reading pose file: ", err)
	}

	refData, err := os.ReadFile(*refFile)

	if err != nil {
		log.Fatal("Error reading reference file: ", err)
	}

	params := restore.DefaultParams()
	params.ReduceConfidence = !*keep
	params.ReductionFactor = float32(*factor)

	restored, diag, err := restore.RestoreDocument(poseData, refData, params)

	if err != nil {
		log.Fatal("Error restoring pose: ", err)
	}

	log.Printf("restored %d keypoints, clipped %d, skipped %d\n",
		diag.Count(restore.Restored),
		diag.Count(restore.Clipped),
		diag.Count(restore.SkippedNoParent)+
			diag.Count(restore.SkippedNoReference)+
			diag.Count(restore.SkippedNoAnchor))

	for _, event := range diag.Events {
		log.Println("  ", event)
	}

	err = os.WriteFile(*outFile, restored, 0644)

	if err != nil {
		log.Fatal("Error writing restored pose: ", err)
	}

	if *imgFile == "" {
		log.Println("done")
		return
	}

	err = renderImage(restored, *imgFile, *outlines, *ttfFont,
		fmt.Sprintf("restored: %d", diag.Count(restore.Restored)))

	if err != nil {
		log.Fatal("Error rendering image: ", err)
	}

	log.Println("done")
}

// renderImage draws the restored skeleton onto a fresh canvas and writes it
// to the given image file
func renderImage(restored []byte, imgFile string, outlines bool,
	ttfFont, annotation string) error {

	doc, err := poserepair.DecodeDocument(restored)

	if err != nil {
		return fmt.Errorf("error decoding restored document: %w", err)
	}

	img := render.NewCanvas(doc.Width, doc.Height)
	defer img.Close()

	render.Pose(&img, doc.People)

	if outlines {
		for _, frame := range doc.People {
			render.GroupOutline(&img, frame.LeftHand, 8, render.White, 1)
			render.GroupOutline(&img, frame.RightHand, 8, render.White, 1)
			render.GroupOutline(&img, frame.Face, 8, render.White, 1)
		}
	}

	if ttfFont != "" {
		err = annotate(&img, annotation, ttfFont)

		if err != nil {
			return err
		}

	} else {
		render.DefaultFont().Label(&img, annotation, image.Pt(8, 20))
	}

	if ok := gocv.IMWrite(imgFile, img); !ok {
		return fmt.Errorf("failed to save the image to %s", imgFile)
	}

	return nil
}

// annotate writes the text onto the image using a TTF font face
func annotate(img *gocv.Mat, text string, fontPath string) error {

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
	draw.Draw(rgba, rgba.Bounds(), image.NewUniform(color.RGBA{0, 0, 0, 0}),
		image.Point{}, draw.Src)

	dr := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.RGBA{255, 255, 255, 255}),
		Face: fontFace,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(8 * 64),
			Y: fixed.Int26_6(24 * 64),
		},
	}
	dr.DrawString(text)

	// convert image.RGBA to gocv.Mat and blend over the canvas
	imgRGBA, err := gocv.NewMatFromBytes(rgba.Bounds().Dy(),
		rgba.Bounds().Dx(), gocv.MatTypeCV8UC4, rgba.Pix)

	if imgRGBA.Empty() || err != nil {
		return fmt.Errorf("error creating Mat from RGBA")
	}

	defer imgRGBA.Close()

	gocv.CvtColor(imgRGBA, &imgRGBA, gocv.ColorRGBAToBGR)
	gocv.AddWeighted(*img, 1.0, imgRGBA, 1.0, 0, img)

	return nil
}
