package poserepair

const (
	// DefaultCanvasWidth is the canvas width assumed when the source pose
	// document does not record one
	DefaultCanvasWidth = 512
	// DefaultCanvasHeight is the canvas height assumed when the source pose
	// document does not record one
	DefaultCanvasHeight = 512
)

// PoseFrame holds one person's complete set of keypoint groups along with
// the dimensions of the canvas the pose was estimated against.  A group
// slice may be nil when the source document did not carry that group
type PoseFrame struct {
	Body      []KeyPoint
	LeftHand  []KeyPoint
	RightHand []KeyPoint
	Face      []KeyPoint
	// Width and Height are the canvas dimensions in pixels
	Width  int
	Height int
}

// NewPoseFrame returns a PoseFrame with all four groups allocated at their
// fixed sizes, every keypoint set to the missing sentinel, and default
// canvas dimensions
func NewPoseFrame() *PoseFrame {
	return &PoseFrame{
		Body:      make([]KeyPoint, BodyPoints),
		LeftHand:  make([]KeyPoint, HandPoints),
		RightHand: make([]KeyPoint, HandPoints),
		Face:      make([]KeyPoint, FacePoints),
		Width:     DefaultCanvasWidth,
		Height:    DefaultCanvasHeight,
	}
}

// Group returns the keypoint slice for the given group kind.  The slice is
// not copied, mutations are visible on the frame
func (f *PoseFrame) Group(g GroupKind) []KeyPoint {
	switch g {
	case Body:
		return f.Body
	case LeftHand:
		return f.LeftHand
	case RightHand:
		return f.RightHand
	case Face:
		return f.Face
	}
	return nil
}

// SetGroup replaces the keypoint slice for the given group kind
func (f *PoseFrame) SetGroup(g GroupKind, pts []KeyPoint) {
	switch g {
	case Body:
		f.Body = pts
	case LeftHand:
		f.LeftHand = pts
	case RightHand:
		f.RightHand = pts
	case Face:
		f.Face = pts
	}
}

// Copy returns a deep copy of the frame.  The restorer copies the caller's
// current frame on entry so the original is never mutated
func (f *PoseFrame) Copy() *PoseFrame {
	c := &PoseFrame{
		Width:  f.Width,
		Height: f.Height,
	}

	c.Body = copyPoints(f.Body)
	c.LeftHand = copyPoints(f.LeftHand)
	c.RightHand = copyPoints(f.RightHand)
	c.Face = copyPoints(f.Face)

	return c
}

// copyPoints duplicates a keypoint slice, preserving nil
func copyPoints(pts []KeyPoint) []KeyPoint {
	if pts == nil {
		return nil
	}

	c := make([]KeyPoint, len(pts))
	copy(c, pts)

	return c
}
