package restore

import (
	"fmt"

	"github.com/swdee/go-poserepair"
)

// EventCode classifies a per joint restoration decision
type EventCode int

const (
	// Restored indicates a missing keypoint was reconstructed
	Restored EventCode = iota
	// SkippedNoParent indicates restoration was skipped because the
	// joint's parent is missing in the current frame
	SkippedNoParent
	// SkippedNoReference indicates restoration was skipped because the
	// joint is missing in the reference frame
	SkippedNoReference
	// SkippedNoAnchor indicates a face point had no present anchor
	// candidate to restore from
	SkippedNoAnchor
	// Clipped indicates an out of canvas keypoint was zeroed on export
	Clipped
	// GroupAdopted indicates a group absent from the current person was
	// copied wholesale from the reference
	GroupAdopted
	// FieldSkipped indicates a person field with an unexpected type was
	// skipped during decoding
	FieldSkipped
)

// String returns the event code name
func (c EventCode) String() string {
	switch c {
	case Restored:
		return "restored"
	case SkippedNoParent:
		return "skipped_no_parent"
	case SkippedNoReference:
		return "skipped_no_reference"
	case SkippedNoAnchor:
		return "skipped_no_anchor"
	case Clipped:
		return "clipped"
	case GroupAdopted:
		return "group_adopted"
	case FieldSkipped:
		return "field_skipped"
	}
	return "unknown"
}

// Event records one restoration decision for one joint or group
type Event struct {
	Group  poserepair.GroupKind
	Joint  int
	Code   EventCode
	Detail string
}

// String formats the event for display
func (e Event) String() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s[%d]: %s", e.Group, e.Joint, e.Code)
	}
	return fmt.Sprintf("%s[%d]: %s (%s)", e.Group, e.Joint, e.Code, e.Detail)
}

// Log collects per joint restoration decisions so callers can inspect what
// the restorer did without coupling to console output
type Log struct {
	Events []Event
}

// add appends an event to the log
func (l *Log) add(group poserepair.GroupKind, joint int, code EventCode,
	detail string) {

	if l == nil {
		return
	}

	l.Events = append(l.Events, Event{
		Group:  group,
		Joint:  joint,
		Code:   code,
		Detail: detail,
	})
}

// Count returns the number of events carrying the given code
func (l *Log) Count(code EventCode) int {

	if l == nil {
		return 0
	}

	n := 0

	for _, e := range l.Events {
		if e.Code == code {
			n++
		}
	}

	return n
}

// merge appends all events from another log
func (l *Log) merge(other *Log) {

	if l == nil || other == nil {
		return
	}

	l.Events = append(l.Events, other.Events...)
}
