package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"NetSentry/internal/model"
)

func sampleEvents() []model.FlaggedEvent {
	ts := time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC)
	return []model.FlaggedEvent{
		{
			ID:        "a",
			Timestamp: ts,
			SrcIP:     "1.1.1.1",
			DstIP:     "2.2.2.2",
			Port:      "23",
			Protocol:  "TCP",
			Magnitude: 1,
			Reason:    "Unusual port",
		},
		{
			ID:        "b",
			Timestamp: ts.Add(5 * time.Minute),
			SrcIP:     "1.1.1.1",
			Magnitude: 150,
			Reason:    "High connection count",
		},
	}
}

func readRows(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open report: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("Failed to read report: %v", err)
	}
	return rows
}

func TestCSVReporter_HeaderWrittenOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attack_report.csv")
	r := NewCSVReporter(path)

	if err := r.Report(sampleEvents()); err != nil {
		t.Fatalf("First report failed: %v", err)
	}
	if err := r.Report(sampleEvents()[:1]); err != nil {
		t.Fatalf("Second report failed: %v", err)
	}

	rows := readRows(t, path)
	if len(rows) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d rows", len(rows))
	}
	if rows[0][0] != "timestamp" || rows[0][6] != "reason" {
		t.Errorf("Unexpected header: %v", rows[0])
	}
	for _, row := range rows[1:] {
		if row[0] == "timestamp" {
			t.Error("Header written more than once")
		}
	}
}

func TestCSVReporter_RowShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "attack_report.csv")
	r := NewCSVReporter(path)

	if err := r.Report(sampleEvents()); err != nil {
		t.Fatalf("Report failed: %v", err)
	}

	rows := readRows(t, path)

	port := rows[1]
	if port[0] != "2025-05-14T12:00:00Z" || port[1] != "1.1.1.1" || port[3] != "23" || port[5] != "1" {
		t.Errorf("Unexpected port-event row: %v", port)
	}

	threshold := rows[2]
	if threshold[2] != "" || threshold[3] != "" || threshold[4] != "" {
		t.Errorf("Threshold rows must have empty dst/port/protocol: %v", threshold)
	}
	if threshold[5] != "150" || threshold[6] != "High connection count" {
		t.Errorf("Unexpected threshold row: %v", threshold)
	}
}
