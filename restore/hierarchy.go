package restore

/* body keypoints (OpenPose 18 joint layout)
0: Nose
1: Neck
2: Right Shoulder
3: Right Elbow
4: Right Wrist
5: Left Shoulder
6: Left Elbow
7: Left Wrist
8: Right Hip
9: Right Knee
10: Right Ankle
11: Left Hip
12: Left Knee
13: Left Ankle
14: Right Eye
15: Left Eye
16: Right Ear
17: Left Ear
*/

// jointLink is one child to parent dependency in a hierarchy table.  A
// missing child is reconstructed from its parent plus the transformed
// reference offset between the two
type jointLink struct {
	Child  int
	Parent int
}

var (
	// bodyHierarchy is the dependency table for the 18 joint body group,
	// rooted at the neck
	bodyHierarchy = orderHierarchy([]jointLink{
		{Child: 0, Parent: 1},
		{Child: 2, Parent: 1},
		{Child: 3, Parent: 2},
		{Child: 4, Parent: 3},
		{Child: 5, Parent: 1},
		{Child: 6, Parent: 5},
		{Child: 7, Parent: 6},
		{Child: 8, Parent: 1},
		{Child: 9, Parent: 8},
		{Child: 10, Parent: 9},
		{Child: 11, Parent: 1},
		{Child: 12, Parent: 11},
		{Child: 13, Parent: 12},
		{Child: 14, Parent: 0},
		{Child: 15, Parent: 0},
		{Child: 16, Parent: 14},
		{Child: 17, Parent: 15},
	})

	// handHierarchy is the dependency table for the 21 joint hand groups,
	// rooted at the wrist with four links per finger
	handHierarchy = orderHierarchy([]jointLink{
		// thumb
		{Child: 1, Parent: 0},
		{Child: 2, Parent: 1},
		{Child: 3, Parent: 2},
		{Child: 4, Parent: 3},
		// index finger
		{Child: 5, Parent: 0},
		{Child: 6, Parent: 5},
		{Child: 7, Parent: 6},
		{Child: 8, Parent: 7},
		// middle finger
		{Child: 9, Parent: 0},
		{Child: 10, Parent: 9},
		{Child: 11, Parent: 10},
		{Child: 12, Parent: 11},
		// ring finger
		{Child: 13, Parent: 0},
		{Child: 14, Parent: 13},
		{Child: 15, Parent: 14},
		{Child: 16, Parent: 15},
		// little finger
		{Child: 17, Parent: 0},
		{Child: 18, Parent: 17},
		{Child: 19, Parent: 18},
		{Child: 20, Parent: 19},
	})
)

// orderHierarchy sorts a hierarchy table so that every link's parent is
// either a root joint or the child of an earlier link.  The walk in
// restoreGroup relies on this ordering to cascade restorations down a
// chain in a single pass, so it is enforced here rather than trusting the
// table declaration order
func orderHierarchy(links []jointLink) []jointLink {

	isChild := make(map[int]bool, len(links))

	for _, l := range links {
		isChild[l.Child] = true
	}

	out := make([]jointLink, 0, len(links))
	emitted := make(map[int]bool, len(links))
	remaining := append([]jointLink(nil), links...)

	for len(remaining) > 0 {

		var deferred []jointLink
		progress := false

		for _, l := range remaining {
			if !isChild[l.Parent] || emitted[l.Parent] {
				out = append(out, l)
				emitted[l.Child] = true
				progress = true
			} else {
				deferred = append(deferred, l)
			}
		}

		if !progress {
			// cyclic table, keep the declared order for the remainder
			out = append(out, deferred...)
			break
		}

		remaining = deferred
	}

	return out
}
