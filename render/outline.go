package render

import (
	"image"
	"image/color"

	clipper "github.com/ctessum/go.clipper"
	"github.com/swdee/go-poserepair"
	"gocv.io/x/gocv"
)

// GroupOutline draws a minimum area rotated rectangle around the present
// keypoints of a group, expanded outward by the given margin in pixels.
// Used as a debug overlay to show which region a restored hand or face
// occupies.  Groups with fewer than three present points are not drawn
func GroupOutline(img *gocv.Mat, pts []poserepair.KeyPoint, margin float64,
	clr color.RGBA, thickness int) {

	// convert the present keypoints to a Clipper path
	var path clipper.Path

	for _, p := range pts {
		if p.Missing() {
			continue
		}

		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(p.X),
			Y: clipper.CInt(p.Y),
		})
	}

	if len(path) < 3 {
		return
	}

	// offset the path outward with rounded joins
	co := clipper.NewClipperOffset()
	co.AddPath(path, clipper.JtRound, clipper.EtClosedPolygon)

	solution := co.Execute(margin)

	// convert the solution back to points
	var points []image.Point

	for _, sol := range solution {
		for _, pt := range sol {
			points = append(points, image.Point{X: int(pt.X), Y: int(pt.Y)})
		}
	}

	if len(points) == 0 {
		return
	}

	pointVector := gocv.NewPointVectorFromPoints(points)
	defer pointVector.Close()

	rect := gocv.MinAreaRect(pointVector)

	// draw the rotated rectangle as a closed polyline
	outline := gocv.NewPointsVectorFromPoints([][]image.Point{rect.Points})
	defer outline.Close()

	gocv.Polylines(img, outline, true, clr, thickness)
}
