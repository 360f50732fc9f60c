package parser

import (
	"testing"
	"time"
)

func TestParseLine_Valid(t *testing.T) {
	rec, err := ParseLine("2025-05-14T12:00:00,192.168.0.1,10.0.0.1,80,TCP")
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if rec.SrcIP != "192.168.0.1" {
		t.Errorf("Expected source 192.168.0.1, got %q", rec.SrcIP)
	}
	if rec.DstIP != "10.0.0.1" {
		t.Errorf("Expected destination 10.0.0.1, got %q", rec.DstIP)
	}
	if rec.Port != 80 {
		t.Errorf("Expected port 80, got %d", rec.Port)
	}
	if rec.Protocol != "TCP" {
		t.Errorf("Expected protocol TCP, got %q", rec.Protocol)
	}
	want := time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC)
	if !rec.Timestamp.Equal(want) {
		t.Errorf("Expected timestamp %v, got %v", want, rec.Timestamp)
	}
}

func TestParseLine_TrimsFields(t *testing.T) {
	rec, err := ParseLine(" 2025-05-14T12:00:00 , 1.1.1.1 , 2.2.2.2 , 443 , UDP ")
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if rec.SrcIP != "1.1.1.1" || rec.DstIP != "2.2.2.2" || rec.Port != 443 || rec.Protocol != "UDP" {
		t.Errorf("Fields not trimmed: %+v", rec)
	}
}

func TestParseLine_WithOffset(t *testing.T) {
	rec, err := ParseLine("2025-05-14T12:00:00+02:00,1.1.1.1,2.2.2.2,22,TCP")
	if err != nil {
		t.Fatalf("ParseLine failed: %v", err)
	}
	if _, offset := rec.Timestamp.Zone(); offset != 2*60*60 {
		t.Errorf("Expected +02:00 offset, got %d seconds", offset)
	}
}

func TestParseLine_Invalid(t *testing.T) {
	cases := []struct {
		name string
		line string
	}{
		{"too few fields", "foo,bar"},
		{"too many fields", "2025-05-14T12:00:00,a,b,80,TCP,extra"},
		{"bad timestamp", "yesterday,a,b,80,TCP"},
		{"bad port", "2025-05-14T12:00:00,a,b,http,TCP"},
		{"empty source", "2025-05-14T12:00:00,,b,80,TCP"},
		{"empty line", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if rec, err := ParseLine(tc.line); err == nil {
				t.Errorf("Expected error for %q, got record %+v", tc.line, rec)
			}
		})
	}
}
