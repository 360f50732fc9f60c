// Package parser turns raw connection log lines into structured records.
//
// The expected line format is:
//
//	timestamp,src_ip,dst_ip,port,protocol
//
// with an ISO-8601 timestamp and an integer port. Malformed lines yield an
// error carrying the original line; the caller decides whether to log it.
package parser

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"NetSentry/internal/model"
)

// timeLayouts are tried in order. Exporters that log local time omit the
// offset, hence the second form.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseLine validates one log line and parses it into a ConnectionRecord.
// Every field is trimmed of surrounding whitespace before validation.
func ParseLine(line string) (*model.ConnectionRecord, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 5 {
		return nil, fmt.Errorf("expected 5 fields, got %d: %q", len(parts), line)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	ts, err := parseTimestamp(parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid timestamp in %q: %w", line, err)
	}
	if parts[1] == "" || parts[2] == "" {
		return nil, fmt.Errorf("empty address in %q", line)
	}
	port, err := strconv.Atoi(parts[3])
	if err != nil {
		return nil, fmt.Errorf("invalid port in %q: %w", line, err)
	}

	return &model.ConnectionRecord{
		Timestamp: ts,
		SrcIP:     parts[1],
		DstIP:     parts[2],
		Port:      port,
		Protocol:  parts[4],
	}, nil
}

func parseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timeLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
