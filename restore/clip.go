package restore

import (
	"github.com/swdee/go-poserepair"
)

// ClipFrame zeroes every keypoint in every group that falls outside the
// frame's canvas bounds, overwriting it with the missing sentinel.  It is
// applied only to an export copy so the working frame keeps full unclamped
// precision for chain restoration, and it is idempotent since the sentinel
// itself is always in bounds.  Returns the number of keypoints zeroed
func ClipFrame(f *poserepair.PoseFrame, diag *Log) int {

	clipped := 0

	for _, kind := range poserepair.GroupKinds {

		pts := f.Group(kind)

		for i, p := range pts {

			if p.Missing() {
				continue
			}

			if p.X < 0 || p.X >= float32(f.Width) ||
				p.Y < 0 || p.Y >= float32(f.Height) {

				pts[i] = poserepair.KeyPoint{}
				diag.add(kind, i, Clipped, "")
				clipped++
			}
		}
	}

	return clipped
}
