package restore

import (
	"fmt"

	"github.com/swdee/go-poserepair"
)

// RestoreDocument is the host integration surface over raw pose JSON.  It
// canonicalizes both containers, restores every person in the current
// document against the person at the same index in the reference document,
// and encodes the restored result back into the same wire shape.  A nil or
// empty reference performs no restoration and returns the input unchanged
func RestoreDocument(cur, ref []byte, p Params) ([]byte, *Log, error) {

	if len(ref) == 0 {
		return cur, &Log{}, nil
	}

	curDoc, err := poserepair.DecodeDocument(cur)

	if err != nil {
		return nil, nil, fmt.Errorf("decoding pose document: %w", err)
	}

	refDoc, err := poserepair.DecodeDocument(ref)

	if err != nil {
		return nil, nil, fmt.Errorf("decoding reference document: %w", err)
	}

	diag := &Log{}
	addFieldWarnings(diag, curDoc.Warnings, "")
	addFieldWarnings(diag, refDoc.Warnings, "reference document")

	skipped := skippedGroups(curDoc.Warnings)
	restorer := NewRestorer(p)

	for i, frame := range curDoc.People {

		// people beyond the reference count pass through untouched
		if i >= len(refDoc.People) {
			continue
		}

		refFrame := refDoc.People[i]

		// a group entirely absent from the current person is adopted
		// wholesale from the reference before per joint restoration.  A
		// group whose field was skipped as malformed is not absent and is
		// left unrestored
		for _, kind := range poserepair.GroupKinds {
			if skipped[i][kind] {
				continue
			}

			if len(frame.Group(kind)) == 0 && len(refFrame.Group(kind)) > 0 {
				frame.SetGroup(kind, copyGroup(refFrame.Group(kind)))
				diag.add(kind, -1, GroupAdopted, "")
			}
		}

		res := restorer.Restore(frame, refFrame)
		diag.merge(res.Diag)
		curDoc.People[i] = res.Frame
	}

	out, err := poserepair.EncodeDocument(curDoc)

	if err != nil {
		return nil, nil, fmt.Errorf("encoding restored document: %w", err)
	}

	return out, diag, nil
}

// addFieldWarnings converts decoder field warnings into log events
func addFieldWarnings(diag *Log, warns []poserepair.FieldWarning,
	detail string) {

	for _, w := range warns {

		kind, ok := poserepair.FieldKind(w.Field)

		if !ok {
			continue
		}

		d := fmt.Sprintf("person %d: %s", w.Person, w.Reason)

		if detail != "" {
			d = detail + ": " + d
		}

		diag.add(kind, -1, FieldSkipped, d)
	}
}

// skippedGroups indexes decode warnings by person and group kind so a
// malformed field is never treated as an absent one
func skippedGroups(
	warns []poserepair.FieldWarning) map[int]map[poserepair.GroupKind]bool {

	out := make(map[int]map[poserepair.GroupKind]bool)

	for _, w := range warns {

		kind, ok := poserepair.FieldKind(w.Field)

		if !ok {
			continue
		}

		if out[w.Person] == nil {
			out[w.Person] = make(map[poserepair.GroupKind]bool)
		}

		out[w.Person][kind] = true
	}

	return out
}

// copyGroup duplicates a keypoint slice
func copyGroup(pts []poserepair.KeyPoint) []poserepair.KeyPoint {
	c := make([]poserepair.KeyPoint, len(pts))
	copy(c, pts)
	return c
}
