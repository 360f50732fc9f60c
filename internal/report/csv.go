// Package report contains the Reporter implementations: the CSV report
// file, the ClickHouse event store and the Redis event history.
package report

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"NetSentry/internal/model"
)

var csvHeader = []string{"timestamp", "src_ip", "dst_ip", "port", "protocol", "count", "reason"}

// CSVReporter appends flagged events to a CSV report file, writing the
// column header when it creates the file.
type CSVReporter struct {
	path string
	mu   sync.Mutex
}

// NewCSVReporter creates a reporter writing to the given path. The file is
// created lazily on the first report.
func NewCSVReporter(path string) *CSVReporter {
	return &CSVReporter{path: path}
}

// Report appends the events of one window. Rows already flushed stay intact
// if a later append fails.
func (r *CSVReporter) Report(events []model.FlaggedEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, statErr := os.Stat(r.path)
	newFile := os.IsNotExist(statErr)

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open report file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if newFile {
		if err := w.Write(csvHeader); err != nil {
			return fmt.Errorf("failed to write report header: %w", err)
		}
	}
	for _, ev := range events {
		row := []string{
			ev.Timestamp.Format(time.RFC3339),
			ev.SrcIP,
			ev.DstIP,
			ev.Port,
			ev.Protocol,
			strconv.FormatUint(ev.Magnitude, 10),
			ev.Reason,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush report: %w", err)
	}

	log.Printf("Report updated with %d event(s).", len(events))
	return nil
}
