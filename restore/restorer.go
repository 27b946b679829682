package restore

import (
	"math"
	"sync"

	"github.com/swdee/go-poserepair"
)

// Params defines the configuration parameters used by the Restorer
type Params struct {
	// ReduceConfidence enables multiplying restored keypoint scores by
	// ReductionFactor to mark them as less trusted than observed ones
	ReduceConfidence bool
	// ReductionFactor is the multiplier applied to restored keypoint
	// scores when ReduceConfidence is enabled, in the range [0,1]
	ReductionFactor float32
	// ConfidenceThreshold is the minimum score a keypoint needs on both
	// frames to contribute a correspondence to the affine fit, and for a
	// face point to serve as a restoration anchor
	ConfidenceThreshold float32
	// Concurrent restores the four keypoint groups in parallel.  The
	// groups have no cross group data dependency so no synchronization of
	// the frame itself is required
	Concurrent bool
}

// DefaultParams returns an instance of Params configured with default
// values featuring:
// - Reduce Confidence: enabled
// - Reduction Factor: 0.7
// - Confidence Threshold: 0.3
func DefaultParams() Params {
	return Params{
		ReduceConfidence:    true,
		ReductionFactor:     0.7,
		ConfidenceThreshold: 0.3,
	}
}

// Restorer reconstructs missing keypoints in a pose frame from a reference
// frame, preserving anatomical proportions under the rotation, scale and
// translation differences between the two poses
type Restorer struct {
	// Params are the restoration configuration parameters
	Params Params
}

// NewRestorer returns an instance of the Restorer.  The reduction factor
// is clamped into [0,1]
func NewRestorer(p Params) *Restorer {

	if p.ReductionFactor < 0 {
		p.ReductionFactor = 0
	} else if p.ReductionFactor > 1 {
		p.ReductionFactor = 1
	}

	return &Restorer{Params: p}
}

// Result holds the output of restoring one frame
type Result struct {
	// Frame is the export copy with out of canvas keypoints zeroed
	Frame *poserepair.PoseFrame
	// Working is the unclipped working frame, keeping full precision for
	// callers that need internal results
	Working *poserepair.PoseFrame
	// Diag records the per joint restoration decisions
	Diag *Log
}

// Restore reconstructs the missing keypoints of the current frame using the
// reference frame.  The caller's frames are never mutated, the current
// frame is deep copied on entry and the reference is read only throughout.
// A nil reference performs no restoration and returns the current frame
// unchanged
func (r *Restorer) Restore(cur, ref *poserepair.PoseFrame) *Result {

	diag := &Log{}
	work := cur.Copy()

	if ref == nil {
		return &Result{
			Frame:   work.Copy(),
			Working: work,
			Diag:    diag,
		}
	}

	if r.Params.Concurrent {
		r.restoreGroupsConcurrent(work, ref, diag)
	} else {
		for _, kind := range poserepair.GroupKinds {
			r.restoreGroup(work, ref, kind, diag)
		}
	}

	// clip a separate export copy so chain computations keep unclamped
	// coordinates
	export := work.Copy()
	ClipFrame(export, diag)

	return &Result{
		Frame:   export,
		Working: work,
		Diag:    diag,
	}
}

// restoreGroupsConcurrent runs each group restoration in its own goroutine
// with its own log, then merges the logs in fixed group order so the
// combined diagnostics stay deterministic
func (r *Restorer) restoreGroupsConcurrent(work, ref *poserepair.PoseFrame,
	diag *Log) {

	logs := make([]*Log, len(poserepair.GroupKinds))

	var wg sync.WaitGroup

	for i, kind := range poserepair.GroupKinds {
		logs[i] = &Log{}

		wg.Add(1)

		go func(kind poserepair.GroupKind, l *Log) {
			defer wg.Done()
			r.restoreGroup(work, ref, kind, l)
		}(kind, logs[i])
	}

	wg.Wait()

	for _, l := range logs {
		diag.merge(l)
	}
}

// restoreGroup restores one keypoint group, dispatching the face group to
// the anchor based restorer and the body and hand groups to the
// hierarchical restorer
func (r *Restorer) restoreGroup(work, ref *poserepair.PoseFrame,
	kind poserepair.GroupKind, diag *Log) {

	cur := work.Group(kind)
	refPts := ref.Group(kind)

	if len(cur) == 0 || len(refPts) == 0 {
		return
	}

	switch kind {
	case poserepair.Body:
		r.restoreHierarchy(cur, refPts, bodyHierarchy, kind, diag)
	case poserepair.LeftHand, poserepair.RightHand:
		r.restoreHierarchy(cur, refPts, handHierarchy, kind, diag)
	case poserepair.Face:
		r.restoreFace(cur, refPts, kind, diag)
	}
}

// restoreHierarchy walks a parent to child dependency table reconstructing
// missing children from present parents plus the transformed reference
// offset.  The table is ordered parent before child so a joint restored
// early in the walk can serve as the parent of a later link
func (r *Restorer) restoreHierarchy(cur, ref []poserepair.KeyPoint,
	links []jointLink, kind poserepair.GroupKind, diag *Log) {

	// process only the overlapping index range when the group lengths
	// mismatch
	n := len(cur)

	if len(ref) < n {
		n = len(ref)
	}

	af := EstimateAffine(ref, cur, r.Params.ConfidenceThreshold)

	for _, link := range links {

		if link.Child >= n || link.Parent >= n {
			continue
		}

		if !cur[link.Child].Missing() {
			continue
		}

		if cur[link.Parent].Missing() {
			// a missing parent leaves the gap, it may still be filled on
			// this pass if the parent is restored by an earlier link
			diag.add(kind, link.Child, SkippedNoParent, "")
			continue
		}

		if ref[link.Child].Missing() || ref[link.Parent].Missing() {
			diag.add(kind, link.Child, SkippedNoReference, "")
			continue
		}

		ox := ref[link.Child].X - ref[link.Parent].X
		oy := ref[link.Child].Y - ref[link.Parent].Y

		var dx, dy float32
		detail := "identity"

		if af != nil {
			dx, dy = af.TransformOffset(ox, oy)
			detail = "affine"
		} else if scale, ok := boneScale(cur, ref, links, link.Parent, n); ok {
			dx = ox * scale
			dy = oy * scale
			detail = "scale"
		} else {
			dx, dy = ox, oy
		}

		score := minScore(cur[link.Parent].Score, ref[link.Child].Score)

		if r.Params.ReduceConfidence {
			score *= r.Params.ReductionFactor
		}

		cur[link.Child] = poserepair.KeyPoint{
			X:     cur[link.Parent].X + dx,
			Y:     cur[link.Parent].Y + dy,
			Score: score,
		}

		diag.add(kind, link.Child, Restored, detail)
	}
}

// restoreFace restores missing face points using the nearest currently
// present point as a dynamic anchor, since the face group has no fixed
// hierarchy.  The anchor search runs on the working frame, so a point that
// is later zeroed on export can still anchor a restoration
func (r *Restorer) restoreFace(cur, ref []poserepair.KeyPoint,
	kind poserepair.GroupKind, diag *Log) {

	n := len(cur)

	if len(ref) < n {
		n = len(ref)
	}

	af := EstimateAffine(ref, cur, r.Params.ConfidenceThreshold)

	for i := 0; i < n; i++ {

		if !cur[i].Missing() {
			continue
		}

		if ref[i].Missing() {
			diag.add(kind, i, SkippedNoReference, "")
			continue
		}

		anchor := r.nearestAnchor(cur, ref, n, i)

		if anchor < 0 {
			diag.add(kind, i, SkippedNoAnchor, "")
			continue
		}

		ox := ref[i].X - ref[anchor].X
		oy := ref[i].Y - ref[anchor].Y

		dx, dy := af.TransformOffset(ox, oy)

		score := ref[i].Score

		if r.Params.ReduceConfidence {
			score *= r.Params.ReductionFactor
		}

		cur[i] = poserepair.KeyPoint{
			X:     cur[anchor].X + dx,
			Y:     cur[anchor].Y + dy,
			Score: score,
		}

		diag.add(kind, i, Restored, "anchor")
	}
}

// nearestAnchor finds the face point present in the current frame whose
// reference position is closest to the reference position of the missing
// point.  Returns -1 when no candidate exists
func (r *Restorer) nearestAnchor(cur, ref []poserepair.KeyPoint, n,
	missing int) int {

	best := -1
	bestDist := float32(math.MaxFloat32)

	for j := 0; j < n; j++ {

		if j == missing {
			continue
		}

		if cur[j].Missing() || cur[j].Score <= r.Params.ConfidenceThreshold {
			continue
		}

		if ref[j].Missing() {
			continue
		}

		// distance measured in reference space
		dx := ref[missing].X - ref[j].X
		dy := ref[missing].Y - ref[j].Y
		dist := dx*dx + dy*dy

		if dist < bestDist {
			bestDist = dist
			best = j
		}
	}

	return best
}

// boneScale estimates a uniform scale factor for offset transfer when no
// affine transform is available.  It measures the bone from the parent
// joint up to its own parent in both frames and returns the length ratio.
// Returns false when that link cannot be measured, callers then fall back
// to the untransformed offset
func boneScale(cur, ref []poserepair.KeyPoint, links []jointLink,
	parent, n int) (float32, bool) {

	grand := -1

	for _, l := range links {
		if l.Child == parent {
			grand = l.Parent
			break
		}
	}

	if grand < 0 || grand >= n {
		return 0, false
	}

	if cur[parent].Missing() || cur[grand].Missing() ||
		ref[parent].Missing() || ref[grand].Missing() {
		return 0, false
	}

	refLen := math.Hypot(float64(ref[parent].X-ref[grand].X),
		float64(ref[parent].Y-ref[grand].Y))

	if refLen < 1e-6 {
		return 0, false
	}

	curLen := math.Hypot(float64(cur[parent].X-cur[grand].X),
		float64(cur[parent].Y-cur[grand].Y))

	return float32(curLen / refLen), true
}

// minScore returns the smaller of two confidence scores
func minScore(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
