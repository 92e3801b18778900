package routetable

import (
	"sort"

	"github.com/cespare/xxhash/v2"
)

// NextHop describes how a destination is reached: directly on an attached
// network, or forwarded through a specific next-hop address.
type NextHop struct {
	// Addr is the next-hop address; empty for directly attached routes.
	Addr string
}

// Direct returns the next hop for a locally attached route.
func Direct() NextHop {
	return NextHop{}
}

// Via returns the next hop for a route forwarded through addr.
func Via(addr string) NextHop {
	return NextHop{Addr: addr}
}

// IsDirect reports whether the route is locally attached.
func (nh NextHop) IsDirect() bool {
	return nh.Addr == ""
}

// String returns the descriptor persisted in the CSV Next Hop column.
func (nh NextHop) String() string {
	if nh.IsDirect() {
		return "direct"
	}
	return nh.Addr
}

// Route is a single routing table entry. The destination prefix string is
// the sole identity used when comparing snapshots; two routes with the same
// destination but different next hops are the same entity for diff purposes.
type Route struct {
	Destination string
	NextHop     NextHop

	// AdminDistance and Metric are part of the output schema but are never
	// populated by the parser in this version. Reserved for future parsing.
	AdminDistance string
	Metric        string
}

// Snapshot is a parsed routing table captured at one instant: a mapping from
// destination prefix to route, plus the default gateway address when one was
// present in the input. Snapshots are produced fresh on every poll and never
// mutated in place.
type Snapshot struct {
	Routes  map[string]Route
	Gateway string // empty when no default gateway was found
}

// Len returns the number of routes in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Routes)
}

// Destinations returns the snapshot's destination keys in sorted order.
func (s Snapshot) Destinations() []string {
	return sortedKeys(s.Routes)
}

// Sum64 returns an xxhash fingerprint of the snapshot covering the default
// gateway and every (destination, next hop) pair in sorted order. Equal
// snapshots always produce equal sums, so the monitor can skip a full diff
// on quiet cycles. The sum covers next hops, therefore sum inequality does
// NOT imply the diff is non-empty.
func (s Snapshot) Sum64() uint64 {
	h := xxhash.New()
	_, _ = h.WriteString(s.Gateway)
	_, _ = h.Write([]byte{0})
	for _, dest := range s.Destinations() {
		_, _ = h.WriteString(dest)
		_, _ = h.Write([]byte{0})
		_, _ = h.WriteString(s.Routes[dest].NextHop.String())
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}

func sortedKeys(routes map[string]Route) []string {
	keys := make([]string, 0, len(routes))
	for k := range routes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
