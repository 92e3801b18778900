package routetable

import (
	_ "embed"
	"strings"
)

//go:embed testdata/before_routes.txt
var exampleBeforeData string

//go:embed testdata/after_routes.txt
var exampleAfterData string

// ExampleBefore returns the embedded "before" route table used by test mode.
func ExampleBefore() []string {
	return splitLines(exampleBeforeData)
}

// ExampleAfter returns the embedded "after" route table used by test mode.
// Relative to ExampleBefore it adds 192.168.2.0/24 and changes the next hop
// of 10.0.0.0/8.
func ExampleAfter() []string {
	return splitLines(exampleAfterData)
}

func splitLines(data string) []string {
	return strings.Split(strings.TrimSpace(data), "\n")
}
