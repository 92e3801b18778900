package topology

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/panjf2000/ants/v2"

	"github.com/routewatch/routewatch/internal/logger"
	"github.com/routewatch/routewatch/internal/routetable"
)

// Renderer produces a topology visualization from a snapshot. Render is
// fire-and-forget: the monitor invokes it after every detected change and
// consumes no result, so a renderer failure never affects change tracking.
type Renderer interface {
	Render(snap routetable.Snapshot)
}

// DotRenderer writes the snapshot as a Graphviz DOT directed graph. Writes
// run on a single-worker pool so a slow render never stalls the poll loop;
// successive renders are serialized and each overwrites the previous graph.
type DotRenderer struct {
	path string
	pool *ants.Pool
	log  *logger.Logger
}

// NewDotRenderer creates a renderer writing into outputDir, with the same
// optional filename prefix as the change log and CSV.
func NewDotRenderer(outputDir, prefix string, log *logger.Logger) (*DotRenderer, error) {
	name := "topology.dot"
	if prefix != "" {
		name = prefix + "_" + name
	}

	pool, err := ants.NewPool(1)
	if err != nil {
		return nil, fmt.Errorf("failed to create render pool: %w", err)
	}

	return &DotRenderer{
		path: filepath.Join(outputDir, name),
		pool: pool,
		log:  log.WithComponent("topology"),
	}, nil
}

// Path returns the DOT file path.
func (r *DotRenderer) Path() string {
	return r.path
}

// Render schedules an asynchronous write of the snapshot's topology graph.
func (r *DotRenderer) Render(snap routetable.Snapshot) {
	if err := r.pool.Submit(func() {
		if err := r.write(snap); err != nil {
			r.log.RenderError(r.path, err)
		}
	}); err != nil {
		r.log.RenderError(r.path, err)
	}
}

// Close releases the render pool. Pending renders may be dropped.
func (r *DotRenderer) Close() {
	r.pool.Release()
}

func (r *DotRenderer) write(snap routetable.Snapshot) error {
	if err := os.WriteFile(r.path, []byte(Dot(snap)), 0644); err != nil {
		return fmt.Errorf("failed to write DOT file: %w", err)
	}
	return nil
}

// Dot renders the snapshot as Graphviz DOT text. The host connects to the
// default gateway, directly attached destinations hang off the host, routes
// via the gateway hang off the gateway, and any foreign next hop becomes an
// intermediate node between the gateway (or host) and the destination.
func Dot(snap routetable.Snapshot) string {
	var b strings.Builder
	b.WriteString("digraph topology {\n")
	b.WriteString("\trankdir=LR;\n")
	b.WriteString("\tnode [style=filled];\n")

	host := "this-host"
	fmt.Fprintf(&b, "\t%s [fillcolor=lightblue];\n", nodeID(host))
	if snap.Gateway != "" {
		fmt.Fprintf(&b, "\t%s [fillcolor=yellow];\n", nodeID(snap.Gateway))
		fmt.Fprintf(&b, "\t%s -> %s;\n", nodeID(host), nodeID(snap.Gateway))
	}

	for _, dest := range snap.Destinations() {
		route := snap.Routes[dest]
		fmt.Fprintf(&b, "\t%s [fillcolor=green];\n", nodeID(dest))

		switch {
		case route.NextHop.IsDirect():
			fmt.Fprintf(&b, "\t%s -> %s;\n", nodeID(host), nodeID(dest))
		case snap.Gateway != "" && route.NextHop.Addr == snap.Gateway:
			fmt.Fprintf(&b, "\t%s -> %s;\n", nodeID(snap.Gateway), nodeID(dest))
		default:
			hop := route.NextHop.Addr
			origin := host
			if snap.Gateway != "" {
				origin = snap.Gateway
			}
			fmt.Fprintf(&b, "\t%s [fillcolor=orange];\n", nodeID(hop))
			fmt.Fprintf(&b, "\t%s -> %s;\n", nodeID(origin), nodeID(hop))
			fmt.Fprintf(&b, "\t%s -> %s;\n", nodeID(hop), nodeID(dest))
		}
	}

	b.WriteString("}\n")
	return b.String()
}

func nodeID(name string) string {
	return fmt.Sprintf("%q", name)
}
