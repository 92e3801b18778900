package recorder

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/routewatch/routewatch/internal/routetable"
)

var batchTime = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func newTestRecorder(t *testing.T, prefix string) *Recorder {
	t.Helper()

	rec, err := New(t.TempDir(), prefix)
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}
	rec.now = func() time.Time { return batchTime }
	return rec
}

func changesOf(added, removed []routetable.Route) routetable.ChangeSet {
	cs := routetable.ChangeSet{
		Added:   make(map[string]routetable.Route),
		Removed: make(map[string]routetable.Route),
	}
	for _, r := range added {
		cs.Added[r.Destination] = r
	}
	for _, r := range removed {
		cs.Removed[r.Destination] = r
	}
	return cs
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open CSV: %v", err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read CSV: %v", err)
	}
	return rows
}

func TestRecordBatch(t *testing.T) {
	rec := newTestRecorder(t, "")

	cs := changesOf(
		[]routetable.Route{
			{Destination: "192.168.2.0/24", NextHop: routetable.Via("192.168.1.1")},
			{Destination: "10.1.0.0/16", NextHop: routetable.Direct()},
		},
		[]routetable.Route{
			{Destination: "172.16.0.0/16", NextHop: routetable.Via("192.168.1.1")},
		},
	)
	if err := rec.Record(cs); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	rows := readCSV(t, rec.CSVPath())
	want := [][]string{
		{"Change Type", "Route", "Admin Distance", "Metric", "Next Hop", "Timestamp"},
		{"Added", "10.1.0.0/16", "", "", "direct", "2025-03-14 15:09:26"},
		{"Added", "192.168.2.0/24", "", "", "192.168.1.1", "2025-03-14 15:09:26"},
		{"Removed", "172.16.0.0/16", "", "", "192.168.1.1", "2025-03-14 15:09:26"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Unexpected CSV contents:\ngot  %v\nwant %v", rows, want)
	}

	data, err := os.ReadFile(rec.LogPath())
	if err != nil {
		t.Fatalf("Failed to read change log: %v", err)
	}
	wantLog := "2025-03-14 15:09:26 - Added routes: 10.1.0.0/16 direct, 192.168.2.0/24 via 192.168.1.1\n" +
		"2025-03-14 15:09:26 - Removed routes: 172.16.0.0/16 via 192.168.1.1\n"
	if string(data) != wantLog {
		t.Errorf("Unexpected change log:\ngot  %q\nwant %q", string(data), wantLog)
	}
}

func TestCSVHeaderWrittenOnce(t *testing.T) {
	rec := newTestRecorder(t, "")

	first := changesOf([]routetable.Route{{Destination: "10.0.0.0/8", NextHop: routetable.Direct()}}, nil)
	second := changesOf(nil, []routetable.Route{{Destination: "10.0.0.0/8", NextHop: routetable.Direct()}})

	for i, cs := range []routetable.ChangeSet{first, second} {
		if err := rec.Record(cs); err != nil {
			t.Fatalf("Record %d failed: %v", i, err)
		}
	}

	rows := readCSV(t, rec.CSVPath())
	if len(rows) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d rows", len(rows))
	}
	headers := 0
	for _, row := range rows {
		if row[0] == "Change Type" {
			headers++
		}
	}
	if headers != 1 {
		t.Errorf("Expected exactly one header row, got %d", headers)
	}
	if rows[0][0] != "Change Type" {
		t.Errorf("Header must be the first row, got %v", rows[0])
	}
}

func TestCSVHeaderSurvivesRestart(t *testing.T) {
	dir := t.TempDir()
	rec, err := New(dir, "")
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}
	rec.now = func() time.Time { return batchTime }

	cs := changesOf([]routetable.Route{{Destination: "10.0.0.0/8", NextHop: routetable.Direct()}}, nil)
	if err := rec.Record(cs); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	// A second recorder reusing the same file path must not repeat the header.
	reopened := &Recorder{logPath: rec.logPath, csvPath: rec.csvPath, now: rec.now}
	if err := reopened.Record(cs); err != nil {
		t.Fatalf("Record after restart failed: %v", err)
	}

	rows := readCSV(t, rec.CSVPath())
	if len(rows) != 3 || rows[1][0] != "Added" || rows[2][0] != "Added" {
		t.Errorf("Expected one header and two data rows, got %v", rows)
	}
}

func TestEmptyBatchWritesNothing(t *testing.T) {
	rec := newTestRecorder(t, "")

	if err := rec.Record(routetable.ChangeSet{}); err != nil {
		t.Fatalf("Record of empty batch failed: %v", err)
	}

	for _, path := range []string{rec.LogPath(), rec.CSVPath()} {
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Errorf("Empty batch must not create %s", path)
		}
	}
}

func TestFileNaming(t *testing.T) {
	tests := []struct {
		name       string
		prefix     string
		wantPrefix string
	}{
		{"no prefix", "", "routing_changes_"},
		{"with prefix", "lab", "lab_routing_changes_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := New(t.TempDir(), tt.prefix)
			if err != nil {
				t.Fatalf("Failed to create recorder: %v", err)
			}

			logName := filepath.Base(rec.LogPath())
			csvName := filepath.Base(rec.CSVPath())

			if !strings.HasPrefix(logName, tt.wantPrefix) || !strings.HasSuffix(logName, ".log") {
				t.Errorf("Unexpected log filename %q", logName)
			}
			if !strings.HasPrefix(csvName, tt.wantPrefix) || !strings.HasSuffix(csvName, ".csv") {
				t.Errorf("Unexpected CSV filename %q", csvName)
			}
			if strings.TrimSuffix(logName, ".log") != strings.TrimSuffix(csvName, ".csv") {
				t.Errorf("Log and CSV must share a basename: %q vs %q", logName, csvName)
			}
		})
	}
}

func TestRecordCreatesOutputDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")

	rec, err := New(dir, "")
	if err != nil {
		t.Fatalf("Failed to create recorder: %v", err)
	}

	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("Output directory was not created: %v", err)
	}

	cs := changesOf([]routetable.Route{{Destination: "10.0.0.0/8", NextHop: routetable.Direct()}}, nil)
	if err := rec.Record(cs); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
}
