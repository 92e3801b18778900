package routetable

// ChangeSet is the result of comparing two snapshots: routes present only in
// the newer snapshot and routes present only in the older one.
type ChangeSet struct {
	Added   map[string]Route
	Removed map[string]Route
}

// Empty reports whether the change set carries no additions and no removals.
func (cs ChangeSet) Empty() bool {
	return len(cs.Added) == 0 && len(cs.Removed) == 0
}

// AddedDestinations returns the added destination keys in sorted order.
func (cs ChangeSet) AddedDestinations() []string {
	return sortedKeys(cs.Added)
}

// RemovedDestinations returns the removed destination keys in sorted order.
func (cs ChangeSet) RemovedDestinations() []string {
	return sortedKeys(cs.Removed)
}

// Diff compares two snapshots by destination key only. A destination appears
// in Added iff it exists in after but not before, and in Removed iff it
// exists in before but not after.
//
// A destination present in both snapshots is reported in neither map, even
// when its next hop changed between them. This version detects routes
// appearing and disappearing, not re-routing under a stable destination;
// the log and CSV formats depend on that behavior.
func Diff(before, after Snapshot) ChangeSet {
	added := make(map[string]Route)
	removed := make(map[string]Route)

	for dest, route := range after.Routes {
		if _, ok := before.Routes[dest]; !ok {
			added[dest] = route
		}
	}
	for dest, route := range before.Routes {
		if _, ok := after.Routes[dest]; !ok {
			removed[dest] = route
		}
	}

	return ChangeSet{Added: added, Removed: removed}
}
