package monitor

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"github.com/routewatch/routewatch/internal/routetable"
)

// Console mirrors monitor progress to the terminal. A nil Console suppresses
// all output; persistence is unaffected either way.
type Console struct{}

// NewConsole creates a console printer.
func NewConsole() *Console {
	return &Console{}
}

// Starting announces the output files and poll interval.
func (c *Console) Starting(interval int, logPath, csvPath string) {
	if c == nil {
		return
	}
	pterm.Info.Printfln("Log file: %s", logPath)
	pterm.Info.Printfln("CSV file: %s", csvPath)
	pterm.Printfln("Starting route monitoring (checking every %d seconds)...", interval)
	pterm.Println("Press Ctrl+C to stop monitoring.")
}

// TestMode announces a run against the embedded example route tables.
func (c *Console) TestMode() {
	if c == nil {
		return
	}
	pterm.Info.Println("Running in test mode with embedded route tables...")
}

// Changes announces a detected change batch.
func (c *Console) Changes(changes routetable.ChangeSet) {
	if c == nil {
		return
	}
	pterm.Println()
	pterm.Warning.Println("Routing changes detected!")
	if len(changes.Added) > 0 {
		pterm.Printfln("Added routes: %s", strings.Join(changes.AddedDestinations(), ", "))
	}
	if len(changes.Removed) > 0 {
		pterm.Printfln("Removed routes: %s", strings.Join(changes.RemovedDestinations(), ", "))
	}
}

// Summary prints the current routing table summary tree.
func (c *Console) Summary(snap routetable.Snapshot) {
	if c == nil {
		return
	}

	direct := 0
	for _, route := range snap.Routes {
		if route.NextHop.IsDirect() {
			direct++
		}
	}

	list := pterm.LeveledList{
		pterm.LeveledListItem{Level: 0, Text: fmt.Sprintf("Total Routes: %d", snap.Len())},
		pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("Direct Routes: %d", direct)},
		pterm.LeveledListItem{Level: 1, Text: fmt.Sprintf("Gateway Routes: %d", snap.Len()-direct)},
	}

	root := putils.TreeFromLeveledList(list)
	root.Text = "Route Summary"
	_ = pterm.DefaultTree.WithRoot(root).Render()

	if snap.Gateway != "" {
		pterm.Printfln("Default Gateway: %s", snap.Gateway)
	}
}

// Stopped announces a clean shutdown.
func (c *Console) Stopped() {
	if c == nil {
		return
	}
	pterm.Println()
	pterm.Println("Monitoring stopped.")
}
