package routetable

import (
	"strings"
)

// Parse turns raw `ip route` output lines into a Snapshot.
//
// Recognized line shapes, checked in order:
//   - "default via <addr> ..."  sets the snapshot gateway; a default line
//     without a via address is ignored entirely
//   - "<dest> ... via <addr> ..." registers a route forwarded through addr
//   - "<dest> ..." registers a directly attached route
//
// Lines matching none of the above (empty, malformed) are skipped without
// error. When the same destination appears on multiple lines the later line
// overwrites the earlier one.
func Parse(lines []string) Snapshot {
	routes := make(map[string]Route)
	gateway := ""

	for _, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "default" {
			if addr := addrAfterVia(fields); addr != "" {
				gateway = addr
			}
			continue
		}

		dest := fields[0]
		if addr := addrAfterVia(fields); addr != "" {
			routes[dest] = Route{Destination: dest, NextHop: Via(addr)}
			continue
		}

		routes[dest] = Route{Destination: dest, NextHop: Direct()}
	}

	return Snapshot{Routes: routes, Gateway: gateway}
}

// addrAfterVia returns the field following the first "via" token, or ""
// when the line carries no via address.
func addrAfterVia(fields []string) string {
	for i, f := range fields {
		if f == "via" && i+1 < len(fields) {
			return fields[i+1]
		}
	}
	return ""
}
