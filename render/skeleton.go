package render

import (
	"image"

	"github.com/swdee/go-poserepair"
	"gocv.io/x/gocv"
)

var (
	// limbSeq defines the body joints to draw limbs between.  The numbers
	// are paired and 1 based to match the OpenPose convention, so (2,3)
	// means draw a line from the neck to the right shoulder
	limbSeq = [34]int{2, 3, 2, 6, 3, 4, 4, 5, 6, 7, 7, 8, 2, 9, 9, 10,
		10, 11, 2, 12, 12, 13, 13, 14, 2, 1, 1, 15, 15, 17, 1, 16, 16, 18}

	// stickWidth is the default body limb line thickness
	stickWidth = 4
)

// NewCanvas returns a black canvas Mat of the given dimensions to draw
// poses on.  The caller is responsible for closing the Mat
func NewCanvas(width, height int) gocv.Mat {
	return gocv.NewMatWithSize(height, width, gocv.MatTypeCV8UC3)
}

// Pose renders the body skeleton, hand and face keypoints of each frame
// onto the image.  Missing keypoints and keypoints outside the image are
// not drawn, a limb is only drawn when both of its joints are drawable
func Pose(img *gocv.Mat, frames []*poserepair.PoseFrame) {

	w := img.Cols()
	h := img.Rows()

	for _, frame := range frames {

		drawBody(img, frame.Body, w, h)

		drawDots(img, frame.LeftHand, w, h)
		drawDots(img, frame.RightHand, w, h)
		drawDots(img, frame.Face, w, h)
	}
}

// drawBody renders the 18 joint body group with colored limb lines and
// joint circles
func drawBody(img *gocv.Mat, pts []poserepair.KeyPoint, w, h int) {

	// draw skeleton lines
	for j := 0; j < len(limbSeq)/2; j++ {

		a := limbSeq[2*j] - 1
		b := limbSeq[2*j+1] - 1

		if a >= len(pts) || b >= len(pts) {
			continue
		}

		x1, y1, ok1 := drawablePoint(pts[a], w, h)
		x2, y2, ok2 := drawablePoint(pts[b], w, h)

		if !ok1 || !ok2 {
			continue
		}

		gocv.Line(img, image.Pt(x1, y1), image.Pt(x2, y2),
			bodyColors[j], stickWidth)
	}

	// draw circles at skeleton joints
	for j, p := range pts {

		x, y, ok := drawablePoint(p, w, h)

		if !ok {
			continue
		}

		gocv.Circle(img, image.Pt(x, y), 3, bodyColors[j%len(bodyColors)], -1)
	}
}

// drawDots renders a hand or face group as small cyan circles
func drawDots(img *gocv.Mat, pts []poserepair.KeyPoint, w, h int) {

	for _, p := range pts {

		x, y, ok := drawablePoint(p, w, h)

		if !ok {
			continue
		}

		gocv.Circle(img, image.Pt(x, y), 2, Cyan, -1)
	}
}

// drawablePoint converts a keypoint to pixel coordinates, reporting false
// for missing keypoints and keypoints outside the image bounds
func drawablePoint(p poserepair.KeyPoint, w, h int) (int, int, bool) {

	if p.Missing() {
		return 0, 0, false
	}

	x := int(p.X)
	y := int(p.Y)

	if x < 0 || x >= w || y < 0 || y >= h {
		return 0, 0, false
	}

	return x, y, true
}
