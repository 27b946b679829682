package restore

import (
	"testing"

	"github.com/swdee/go-poserepair"
)

// TestClipBoundaries covers the canvas boundary conditions, the edges at
// width and height are exclusive
func TestClipBoundaries(t *testing.T) {

	cases := []struct {
		x, y    float32
		clipped bool
	}{
		{0, 0, false},
		{511, 511, false},
		{512, 256, true},
		{256, 512, true},
		{-1, 256, true},
		{256, -1, true},
		{600, 100, true},
	}

	for _, c := range cases {

		f := poserepair.NewPoseFrame()
		f.Body[0] = kp(c.x, c.y, 0.8)

		n := ClipFrame(f, nil)

		if c.clipped {

			if n != 1 {
				t.Errorf("point (%f,%f): expected 1 clip, got %d", c.x, c.y, n)
			}

			if !f.Body[0].Missing() {
				t.Errorf("point (%f,%f): expected missing sentinel, got %+v",
					c.x, c.y, f.Body[0])
			}

		} else {

			if n != 0 {
				t.Errorf("point (%f,%f): expected no clips, got %d", c.x,
					c.y, n)
			}

			if f.Body[0].X != c.x || f.Body[0].Y != c.y {
				t.Errorf("point (%f,%f): in canvas keypoint was modified",
					c.x, c.y)
			}
		}
	}
}

// TestClipIdempotent verifies clipping an already clipped frame produces
// no further change
func TestClipIdempotent(t *testing.T) {

	f := poserepair.NewPoseFrame()
	f.Body[0] = kp(600, 100, 0.8)
	f.Face[5] = kp(-3, 20, 0.5)

	if n := ClipFrame(f, nil); n != 2 {
		t.Fatalf("expected 2 clips on first pass, got %d", n)
	}

	if n := ClipFrame(f, nil); n != 0 {
		t.Errorf("expected no clips on second pass, got %d", n)
	}
}

// TestClipIgnoresMissing verifies the missing sentinel is never counted as
// clipped
func TestClipIgnoresMissing(t *testing.T) {

	f := poserepair.NewPoseFrame()

	if n := ClipFrame(f, nil); n != 0 {
		t.Errorf("expected no clips on all missing frame, got %d", n)
	}
}

// TestRestoreClipsExportOnly is the out of canvas scenario: the export
// frame zeroes the keypoint while the working frame keeps the unclamped
// coordinates for internal precision
func TestRestoreClipsExportOnly(t *testing.T) {

	cur := poserepair.NewPoseFrame()
	cur.Body[rShoulder] = kp(600, 100, 0.8)
	cur.Body[neck] = kp(500, 120, 0.9)

	ref := cur.Copy()

	res := NewRestorer(testParams()).Restore(cur, ref)

	if !res.Frame.Body[rShoulder].Missing() {
		t.Errorf("expected out of canvas keypoint zeroed on export, got %+v",
			res.Frame.Body[rShoulder])
	}

	if res.Working.Body[rShoulder].X != 600 ||
		res.Working.Body[rShoulder].Y != 100 {
		t.Errorf("expected working frame to keep (600,100), got %+v",
			res.Working.Body[rShoulder])
	}

	if res.Working.Body[rShoulder].Score != 0.8 {
		t.Errorf("expected working frame to keep score 0.8, got %f",
			res.Working.Body[rShoulder].Score)
	}

	if res.Diag.Count(Clipped) != 1 {
		t.Errorf("expected 1 clipped event, got %d", res.Diag.Count(Clipped))
	}
}
