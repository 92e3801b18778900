package routetable

import (
	"reflect"
	"testing"
)

func TestParseExampleTable(t *testing.T) {
	snap := Parse(ExampleBefore())

	if snap.Gateway != "192.168.1.1" {
		t.Errorf("Expected gateway 192.168.1.1, got %q", snap.Gateway)
	}

	if snap.Len() != 3 {
		t.Fatalf("Expected 3 routes, got %d: %v", snap.Len(), snap.Destinations())
	}

	expected := map[string]NextHop{
		"192.168.1.0/24": Direct(),
		"172.16.0.0/16":  Via("192.168.1.1"),
		"10.0.0.0/8":     Via("192.168.1.1"),
	}
	for dest, nh := range expected {
		route, ok := snap.Routes[dest]
		if !ok {
			t.Errorf("Expected route for %s, not found", dest)
			continue
		}
		if route.NextHop != nh {
			t.Errorf("Route %s: expected next hop %v, got %v", dest, nh, route.NextHop)
		}
		if route.Destination != dest {
			t.Errorf("Route %s: destination field is %q", dest, route.Destination)
		}
		if route.AdminDistance != "" || route.Metric != "" {
			t.Errorf("Route %s: admin distance and metric must be empty, got %q/%q",
				dest, route.AdminDistance, route.Metric)
		}
	}
}

func TestParseLineShapes(t *testing.T) {
	tests := []struct {
		name    string
		lines   []string
		routes  map[string]NextHop
		gateway string
	}{
		{
			name:    "default line sets gateway only",
			lines:   []string{"default via 10.0.0.1 dev eth0"},
			routes:  map[string]NextHop{},
			gateway: "10.0.0.1",
		},
		{
			name:    "default line without via is ignored",
			lines:   []string{"default dev eth0 scope link"},
			routes:  map[string]NextHop{},
			gateway: "",
		},
		{
			name:   "via route",
			lines:  []string{"172.16.0.0/16 via 192.168.1.1 dev eth0"},
			routes: map[string]NextHop{"172.16.0.0/16": Via("192.168.1.1")},
		},
		{
			name:   "direct route",
			lines:  []string{"192.168.1.0/24 dev eth0 proto kernel scope link src 192.168.1.100"},
			routes: map[string]NextHop{"192.168.1.0/24": Direct()},
		},
		{
			name:   "host route",
			lines:  []string{"192.168.1.100 via 192.168.1.1 dev eth0"},
			routes: map[string]NextHop{"192.168.1.100": Via("192.168.1.1")},
		},
		{
			name:   "trailing via token has no address",
			lines:  []string{"10.1.0.0/16 dev eth0 via"},
			routes: map[string]NextHop{"10.1.0.0/16": Direct()},
		},
		{
			name:   "empty and blank lines are skipped",
			lines:  []string{"", "   ", "10.0.0.0/8 via 10.1.1.1"},
			routes: map[string]NextHop{"10.0.0.0/8": Via("10.1.1.1")},
		},
		{
			name: "duplicate destination is last write wins",
			lines: []string{
				"10.0.0.0/8 via 192.168.1.1 dev eth0",
				"10.0.0.0/8 via 192.168.1.2 dev eth1",
			},
			routes: map[string]NextHop{"10.0.0.0/8": Via("192.168.1.2")},
		},
		{
			name: "later default overwrites earlier gateway",
			lines: []string{
				"default via 192.168.1.1 dev eth0",
				"default via 192.168.1.254 dev eth1",
			},
			routes:  map[string]NextHop{},
			gateway: "192.168.1.254",
		},
		{
			name:    "no input",
			lines:   nil,
			routes:  map[string]NextHop{},
			gateway: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Parse(tt.lines)

			if snap.Gateway != tt.gateway {
				t.Errorf("Expected gateway %q, got %q", tt.gateway, snap.Gateway)
			}
			if len(snap.Routes) != len(tt.routes) {
				t.Fatalf("Expected %d routes, got %d: %v", len(tt.routes), len(snap.Routes), snap.Destinations())
			}
			for dest, nh := range tt.routes {
				route, ok := snap.Routes[dest]
				if !ok {
					t.Errorf("Expected route for %s, not found", dest)
					continue
				}
				if route.NextHop != nh {
					t.Errorf("Route %s: expected next hop %v, got %v", dest, nh, route.NextHop)
				}
			}
		})
	}
}

func TestParseIdempotence(t *testing.T) {
	first := Parse(ExampleAfter())
	second := Parse(ExampleAfter())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Parsing the same text twice produced different snapshots:\n%v\n%v", first, second)
	}
	if first.Sum64() != second.Sum64() {
		t.Error("Identical snapshots must have identical fingerprints")
	}
}

func TestParseDefaultNeverRegisteredAsRoute(t *testing.T) {
	snap := Parse([]string{
		"default via 192.168.1.1 dev eth0",
		"default dev eth0",
	})

	if _, ok := snap.Routes["default"]; ok {
		t.Error("The default line must never be registered as a route")
	}
}
