package recorder

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/routewatch/routewatch/internal/routetable"
)

// csvHeader is written exactly once per CSV file, when the file is created
// or found empty. Admin Distance and Metric are part of the schema but are
// never populated in this version.
var csvHeader = []string{"Change Type", "Route", "Admin Distance", "Metric", "Next Hop", "Timestamp"}

const timestampLayout = "2006-01-02 15:04:05"

// Recorder appends detected route changes to a plain-text change log and an
// append-only CSV. Both files share one timestamp-derived basename chosen at
// construction; the files themselves are opened for the duration of each
// write only, no handle is held across poll cycles.
type Recorder struct {
	logPath string
	csvPath string

	now func() time.Time
}

// New creates a Recorder writing into outputDir, creating the directory if
// absent. When prefix is non-empty both filenames are prefixed with it.
func New(outputDir, prefix string) (*Recorder, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", outputDir, err)
	}

	stamp := time.Now().Format("20060102_150405")
	base := fmt.Sprintf("routing_changes_%s", stamp)
	if prefix != "" {
		base = prefix + "_" + base
	}

	return &Recorder{
		logPath: filepath.Join(outputDir, base+".log"),
		csvPath: filepath.Join(outputDir, base+".csv"),
		now:     time.Now,
	}, nil
}

// LogPath returns the path of the plain-text change log.
func (r *Recorder) LogPath() string {
	return r.logPath
}

// CSVPath returns the path of the CSV file.
func (r *Recorder) CSVPath() string {
	return r.csvPath
}

// Record persists one change batch: a timestamped log line per non-empty
// direction, then one CSV row per changed route under a single wall-clock
// timestamp shared by the whole batch. An empty batch writes nothing.
// Write failures propagate to the caller; there is no recovery path.
func (r *Recorder) Record(changes routetable.ChangeSet) error {
	if changes.Empty() {
		return nil
	}

	batchTime := r.now()
	if err := r.appendLog(changes, batchTime); err != nil {
		return err
	}
	return r.appendCSV(changes, batchTime)
}

func (r *Recorder) appendLog(changes routetable.ChangeSet, batchTime time.Time) error {
	f, err := os.OpenFile(r.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open change log %s: %w", r.logPath, err)
	}

	stamp := batchTime.Format(timestampLayout)
	if len(changes.Added) > 0 {
		if _, err := fmt.Fprintf(f, "%s - Added routes: %s\n", stamp, describeRoutes(changes.Added, changes.AddedDestinations())); err != nil {
			f.Close()
			return fmt.Errorf("failed to write change log %s: %w", r.logPath, err)
		}
	}
	if len(changes.Removed) > 0 {
		if _, err := fmt.Fprintf(f, "%s - Removed routes: %s\n", stamp, describeRoutes(changes.Removed, changes.RemovedDestinations())); err != nil {
			f.Close()
			return fmt.Errorf("failed to write change log %s: %w", r.logPath, err)
		}
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close change log %s: %w", r.logPath, err)
	}
	return nil
}

func (r *Recorder) appendCSV(changes routetable.ChangeSet, batchTime time.Time) error {
	writeHeader, err := needsHeader(r.csvPath)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(r.csvPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open CSV %s: %w", r.csvPath, err)
	}

	w := csv.NewWriter(f)
	if writeHeader {
		if err := w.Write(csvHeader); err != nil {
			f.Close()
			return fmt.Errorf("failed to write CSV header to %s: %w", r.csvPath, err)
		}
	}

	stamp := batchTime.Format(timestampLayout)
	for _, dest := range changes.AddedDestinations() {
		if err := w.Write(changeRow("Added", changes.Added[dest], stamp)); err != nil {
			f.Close()
			return fmt.Errorf("failed to write CSV row to %s: %w", r.csvPath, err)
		}
	}
	for _, dest := range changes.RemovedDestinations() {
		if err := w.Write(changeRow("Removed", changes.Removed[dest], stamp)); err != nil {
			f.Close()
			return fmt.Errorf("failed to write CSV row to %s: %w", r.csvPath, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("failed to flush CSV %s: %w", r.csvPath, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close CSV %s: %w", r.csvPath, err)
	}
	return nil
}

func changeRow(changeType string, route routetable.Route, stamp string) []string {
	return []string{changeType, route.Destination, route.AdminDistance, route.Metric, route.NextHop.String(), stamp}
}

// needsHeader reports whether the CSV file is absent or empty, in which case
// the header row has not been written yet.
func needsHeader(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat CSV %s: %w", path, err)
	}
	return info.Size() == 0, nil
}

func describeRoutes(routes map[string]routetable.Route, order []string) string {
	parts := make([]string, 0, len(order))
	for _, dest := range order {
		route := routes[dest]
		if route.NextHop.IsDirect() {
			parts = append(parts, dest+" direct")
		} else {
			parts = append(parts, dest+" via "+route.NextHop.Addr)
		}
	}
	return strings.Join(parts, ", ")
}
