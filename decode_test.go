package poserepair

import (
	"errors"
	"testing"
)

func TestDecodeObjectContainer(t *testing.T) {

	data := []byte(`{
		"people": [
			{"pose_keypoints_2d": [100, 200, 0.9, 0, 0, 0, 150, 210, 0.8]}
		],
		"canvas_width": 640,
		"canvas_height": 480
	}`)

	doc, err := DecodeDocument(data)

	if err != nil {
		t.Fatalf("failed to decode document: %v", err)
	}

	if doc.Width != 640 || doc.Height != 480 {
		t.Errorf("expected canvas 640x480, got %dx%d", doc.Width, doc.Height)
	}

	if len(doc.People) != 1 {
		t.Fatalf("expected 1 person, got %d", len(doc.People))
	}

	body := doc.People[0].Body

	if len(body) != 3 {
		t.Fatalf("expected 3 body keypoints, got %d", len(body))
	}

	if body[0].X != 100 || body[0].Y != 200 || body[0].Score != 0.9 {
		t.Errorf("expected keypoint (100,200,0.9), got %+v", body[0])
	}

	if !body[1].Missing() {
		t.Errorf("expected keypoint 1 to be missing, got %+v", body[1])
	}

	if doc.People[0].Face != nil {
		t.Errorf("expected absent face group to stay nil")
	}
}

func TestDecodeArrayContainer(t *testing.T) {

	data := []byte(`[
		{"pose_keypoints_2d": [10, 20, 0.5]},
		{"pose_keypoints_2d": [30, 40, 0.6]}
	]`)

	doc, err := DecodeDocument(data)

	if err != nil {
		t.Fatalf("failed to decode document: %v", err)
	}

	if len(doc.People) != 2 {
		t.Fatalf("expected 2 people, got %d", len(doc.People))
	}

	// canvas dimensions default when the container cannot carry them
	if doc.Width != DefaultCanvasWidth || doc.Height != DefaultCanvasHeight {
		t.Errorf("expected default canvas, got %dx%d", doc.Width, doc.Height)
	}

	if doc.People[1].Body[0].X != 30 {
		t.Errorf("expected second person x=30, got %v", doc.People[1].Body[0].X)
	}
}

func TestDecodeInvalidContainer(t *testing.T) {

	cases := [][]byte{
		[]byte(`"just a string"`),
		[]byte(`42`),
		[]byte(``),
		[]byte(`{invalid json`),
	}

	for _, data := range cases {

		_, err := DecodeDocument(data)

		if !errors.Is(err, ErrInvalidContainer) {
			t.Errorf("input %q: expected ErrInvalidContainer, got %v",
				string(data), err)
		}
	}
}

func TestDecodeNoPeople(t *testing.T) {

	cases := [][]byte{
		[]byte(`{}`),
		[]byte(`{"people": []}`),
		[]byte(`[]`),
	}

	for _, data := range cases {

		_, err := DecodeDocument(data)

		if !errors.Is(err, ErrNoPeople) {
			t.Errorf("input %q: expected ErrNoPeople, got %v",
				string(data), err)
		}
	}
}

func TestDecodeSkipsBadField(t *testing.T) {

	data := []byte(`{
		"people": [
			{
				"pose_keypoints_2d": "not an array",
				"face_keypoints_2d": [5, 6, 0.7]
			}
		]
	}`)

	doc, err := DecodeDocument(data)

	if err != nil {
		t.Fatalf("failed to decode document: %v", err)
	}

	if len(doc.Warnings) != 1 {
		t.Fatalf("expected 1 field warning, got %d", len(doc.Warnings))
	}

	if doc.Warnings[0].Field != "pose_keypoints_2d" {
		t.Errorf("expected warning on pose_keypoints_2d, got %s",
			doc.Warnings[0].Field)
	}

	if doc.People[0].Body != nil {
		t.Errorf("expected skipped body group to stay nil")
	}

	// the remaining fields still decode
	if len(doc.People[0].Face) != 1 || doc.People[0].Face[0].X != 5 {
		t.Errorf("expected face group to decode, got %+v", doc.People[0].Face)
	}
}

func TestDecodeNullField(t *testing.T) {

	data := []byte(`{"people": [{"pose_keypoints_2d": null}]}`)

	doc, err := DecodeDocument(data)

	if err != nil {
		t.Fatalf("failed to decode document: %v", err)
	}

	if len(doc.Warnings) != 0 {
		t.Errorf("null field should not warn, got %d warnings",
			len(doc.Warnings))
	}

	if doc.People[0].Body != nil {
		t.Errorf("expected null body group to stay nil")
	}
}

func TestDecodeDropsPartialTriple(t *testing.T) {

	data := []byte(`{"people": [{"pose_keypoints_2d": [1, 2, 0.5, 99]}]}`)

	doc, err := DecodeDocument(data)

	if err != nil {
		t.Fatalf("failed to decode document: %v", err)
	}

	if len(doc.People[0].Body) != 1 {
		t.Errorf("expected trailing partial triple dropped, got %d points",
			len(doc.People[0].Body))
	}
}

func TestEncodeRoundTrip(t *testing.T) {

	data := []byte(`{
		"people": [
			{
				"pose_keypoints_2d": [100, 200, 0.9, 150, 210, 0.8],
				"hand_left_keypoints_2d": [5, 6, 0.7]
			}
		],
		"canvas_width": 512,
		"canvas_height": 512
	}`)

	doc, err := DecodeDocument(data)

	if err != nil {
		t.Fatalf("failed to decode document: %v", err)
	}

	encoded, err := EncodeDocument(doc)

	if err != nil {
		t.Fatalf("failed to encode document: %v", err)
	}

	doc2, err := DecodeDocument(encoded)

	if err != nil {
		t.Fatalf("failed to decode re-encoded document: %v", err)
	}

	if doc2.Width != doc.Width || doc2.Height != doc.Height {
		t.Errorf("canvas dimensions changed in round trip")
	}

	if len(doc2.People) != 1 {
		t.Fatalf("expected 1 person after round trip, got %d",
			len(doc2.People))
	}

	p1 := doc.People[0]
	p2 := doc2.People[0]

	for _, kind := range GroupKinds {

		g1 := p1.Group(kind)
		g2 := p2.Group(kind)

		if len(g1) != len(g2) {
			t.Errorf("group %s length changed: %d != %d", kind,
				len(g1), len(g2))
			continue
		}

		for i := range g1 {
			if g1[i] != g2[i] {
				t.Errorf("group %s keypoint %d changed: %+v != %+v",
					kind, i, g1[i], g2[i])
			}
		}
	}

	// groups that were never present stay absent
	if p2.RightHand != nil || p2.Face != nil {
		t.Errorf("expected absent groups to stay absent after round trip")
	}
}
