package poserepair

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidContainer is returned when the input is neither a pose
	// document object nor a person array and cannot be parsed
	ErrInvalidContainer = errors.New("unsupported pose container structure")
	// ErrNoPeople is returned when the input parsed correctly but contains
	// no person records to restore
	ErrNoPeople = errors.New("pose container has no people")
)

// JSON field names of the flat keypoint arrays in the OpenPose person record
const (
	fieldBody      = "pose_keypoints_2d"
	fieldFace      = "face_keypoints_2d"
	fieldLeftHand  = "hand_left_keypoints_2d"
	fieldRightHand = "hand_right_keypoints_2d"
)

// groupFields maps the wire field name to the group it decodes into
var groupFields = []struct {
	name string
	kind GroupKind
}{
	{fieldBody, Body},
	{fieldLeftHand, LeftHand},
	{fieldRightHand, RightHand},
	{fieldFace, Face},
}

// FieldKind returns the group a wire field name decodes into
func FieldKind(name string) (GroupKind, bool) {

	for _, gf := range groupFields {
		if gf.name == name {
			return gf.kind, true
		}
	}

	return 0, false
}

// FieldWarning records a person record field that could not be decoded and
// was skipped.  Decoding of the remaining fields still proceeds
type FieldWarning struct {
	// Person is the index of the person record in the document
	Person int
	// Field is the JSON field name that was skipped
	Field string
	// Reason describes why the field was skipped
	Reason string
}

// Document is the canonical form of a pose container.  Both supported wire
// shapes, an object carrying a "people" array and a bare array of person
// records, decode into this one structure
type Document struct {
	// People holds one frame per person record, in document order
	People []*PoseFrame
	// Width and Height are the document canvas dimensions
	Width  int
	Height int
	// Warnings lists any person fields skipped during decoding
	Warnings []FieldWarning
}

// poseDoc is the wire layout of the object container shape
type poseDoc struct {
	People       []json.RawMessage `json:"people"`
	CanvasWidth  float64           `json:"canvas_width"`
	CanvasHeight float64           `json:"canvas_height"`
}

// DecodeDocument canonicalizes a pose container into a Document.  It
// accepts either an object with a "people" array plus optional canvas
// dimensions, or a bare JSON array of person records.  Any other shape
// returns ErrInvalidContainer, a parseable container with no person
// records returns ErrNoPeople
func DecodeDocument(data []byte) (*Document, error) {

	trimmed := bytes.TrimSpace(data)

	if len(trimmed) == 0 {
		return nil, ErrInvalidContainer
	}

	doc := &Document{
		Width:  DefaultCanvasWidth,
		Height: DefaultCanvasHeight,
	}

	var people []json.RawMessage

	switch trimmed[0] {
	case '{':
		var pd poseDoc

		if err := json.Unmarshal(trimmed, &pd); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
		}

		if pd.CanvasWidth > 0 {
			doc.Width = int(pd.CanvasWidth)
		}

		if pd.CanvasHeight > 0 {
			doc.Height = int(pd.CanvasHeight)
		}

		people = pd.People

	case '[':
		if err := json.Unmarshal(trimmed, &people); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidContainer, err)
		}

	default:
		return nil, ErrInvalidContainer
	}

	if len(people) == 0 {
		return nil, ErrNoPeople
	}

	for i, raw := range people {
		frame, warns, err := decodePerson(raw, i, doc.Width, doc.Height)

		if err != nil {
			return nil, err
		}

		doc.People = append(doc.People, frame)
		doc.Warnings = append(doc.Warnings, warns...)
	}

	return doc, nil
}

// decodePerson decodes one person record into a PoseFrame.  A group field
// holding anything other than a flat numeric array is skipped with a
// warning so the remaining fields still decode
func decodePerson(raw json.RawMessage, idx, width,
	height int) (*PoseFrame, []FieldWarning, error) {

	var fields map[string]json.RawMessage

	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, fmt.Errorf("%w: person %d: %v",
			ErrInvalidContainer, idx, err)
	}

	frame := &PoseFrame{
		Width:  width,
		Height: height,
	}

	var warns []FieldWarning

	for _, gf := range groupFields {

		val, ok := fields[gf.name]

		// absent or null fields leave the group nil
		if !ok || bytes.Equal(bytes.TrimSpace(val), []byte("null")) {
			continue
		}

		var flat []float32

		if err := json.Unmarshal(val, &flat); err != nil {
			warns = append(warns, FieldWarning{
				Person: idx,
				Field:  gf.name,
				Reason: fmt.Sprintf("expected flat numeric array: %v", err),
			})
			continue
		}

		frame.SetGroup(gf.kind, triplesToPoints(flat))
	}

	return frame, warns, nil
}

// triplesToPoints converts a flat [x,y,c, x,y,c, ...] array into keypoints.
// Any trailing values that do not make up a full triple are dropped
func triplesToPoints(flat []float32) []KeyPoint {

	n := len(flat) / 3
	pts := make([]KeyPoint, n)

	for i := 0; i < n; i++ {
		pts[i] = KeyPoint{
			X:     flat[i*3],
			Y:     flat[i*3+1],
			Score: flat[i*3+2],
		}
	}

	return pts
}
