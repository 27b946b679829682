package poserepair

// KeyPoint represents a single 2D joint position with a confidence score
// in the range [0,1]
type KeyPoint struct {
	X     float32
	Y     float32
	Score float32
}

// Missing returns true when the keypoint carries the missing sentinel value
// (0,0,0).  The comparison is exact, a keypoint with a low but non-zero
// score, or a zero score at a non-zero position, is still considered present
func (k KeyPoint) Missing() bool {
	return k.X == 0 && k.Y == 0 && k.Score == 0
}

// GroupKind identifies one of the four anatomical keypoint groups that make
// up a pose
type GroupKind int

const (
	Body GroupKind = iota
	LeftHand
	RightHand
	Face
)

// String returns the group name
func (g GroupKind) String() string {
	switch g {
	case Body:
		return "body"
	case LeftHand:
		return "left_hand"
	case RightHand:
		return "right_hand"
	case Face:
		return "face"
	}
	return "unknown"
}

const (
	// BodyPoints is the number of keypoints in the body group using the
	// OpenPose 18 joint layout
	BodyPoints = 18
	// HandPoints is the number of keypoints in each hand group
	HandPoints = 21
	// FacePoints is the number of keypoints in the face group
	FacePoints = 70
)

// GroupKinds lists all groups in processing order
var GroupKinds = []GroupKind{Body, LeftHand, RightHand, Face}

// GroupSize returns the fixed number of keypoints for the given group kind
func GroupSize(g GroupKind) int {
	switch g {
	case Body:
		return BodyPoints
	case LeftHand, RightHand:
		return HandPoints
	case Face:
		return FacePoints
	}
	return 0
}
