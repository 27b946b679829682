package poserepair

import (
	"encoding/json"
)

// personRecord is the wire layout of one person in the encoded document.
// Group arrays are omitted when the frame never carried them
type personRecord struct {
	PoseKeyPoints2D      []float32 `json:"pose_keypoints_2d,omitempty"`
	FaceKeyPoints2D      []float32 `json:"face_keypoints_2d,omitempty"`
	HandLeftKeyPoints2D  []float32 `json:"hand_left_keypoints_2d,omitempty"`
	HandRightKeyPoints2D []float32 `json:"hand_right_keypoints_2d,omitempty"`
}

// encodedDoc is the wire layout of the encoded document container
type encodedDoc struct {
	People       []personRecord `json:"people"`
	CanvasWidth  int            `json:"canvas_width"`
	CanvasHeight int            `json:"canvas_height"`
}

// EncodeDocument encodes a Document back into the object container shape
// with flat keypoint triple arrays, the inverse of DecodeDocument
func EncodeDocument(doc *Document) ([]byte, error) {

	out := encodedDoc{
		People:       make([]personRecord, 0, len(doc.People)),
		CanvasWidth:  doc.Width,
		CanvasHeight: doc.Height,
	}

	for _, frame := range doc.People {
		out.People = append(out.People, personRecord{
			PoseKeyPoints2D:      pointsToTriples(frame.Body),
			FaceKeyPoints2D:      pointsToTriples(frame.Face),
			HandLeftKeyPoints2D:  pointsToTriples(frame.LeftHand),
			HandRightKeyPoints2D: pointsToTriples(frame.RightHand),
		})
	}

	return json.Marshal(out)
}

// pointsToTriples flattens keypoints into a [x,y,c, x,y,c, ...] array,
// preserving nil for groups that were never present
func pointsToTriples(pts []KeyPoint) []float32 {

	if pts == nil {
		return nil
	}

	flat := make([]float32, 0, len(pts)*3)

	for _, p := range pts {
		flat = append(flat, p.X, p.Y, p.Score)
	}

	return flat
}
