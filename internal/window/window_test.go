package window

import (
	"testing"
	"time"

	"NetSentry/internal/model"
)

func defaultAggregator() *Aggregator {
	return NewAggregator([]int{22, 80, 443}, 1024)
}

func record(src, dst string, port int) *model.ConnectionRecord {
	return &model.ConnectionRecord{
		Timestamp: time.Date(2025, 5, 14, 12, 0, 0, 0, time.UTC),
		SrcIP:     src,
		DstIP:     dst,
		Port:      port,
		Protocol:  "TCP",
	}
}

func TestUnusual_Boundaries(t *testing.T) {
	agg := defaultAggregator()
	cases := []struct {
		port int
		want bool
	}{
		{0, false},
		{1, true},
		{21, true},
		{22, false},
		{23, true},
		{80, false},
		{443, false},
		{1023, true},
		{1024, false},
		{8080, false},
	}
	for _, tc := range cases {
		if got := agg.Unusual(tc.port); got != tc.want {
			t.Errorf("Unusual(%d) = %v, want %v", tc.port, got, tc.want)
		}
	}
}

func TestAccept_Counters(t *testing.T) {
	agg := defaultAggregator()
	s := NewState(time.Now())

	agg.Accept(s, record("1.1.1.1", "2.2.2.2", 80))
	agg.Accept(s, record("1.1.1.1", "2.2.2.2", 80))
	agg.Accept(s, record("1.1.1.1", "3.3.3.3", 80))
	agg.Accept(s, record("9.9.9.9", "2.2.2.2", 80))

	if s.SrcCount["1.1.1.1"] != 3 {
		t.Errorf("Expected 3 connections for 1.1.1.1, got %d", s.SrcCount["1.1.1.1"])
	}
	if s.SrcCount["9.9.9.9"] != 1 {
		t.Errorf("Expected 1 connection for 9.9.9.9, got %d", s.SrcCount["9.9.9.9"])
	}
	if s.PairCount[PairKey{"1.1.1.1", "2.2.2.2"}] != 2 {
		t.Errorf("Expected pair count 2, got %d", s.PairCount[PairKey{"1.1.1.1", "2.2.2.2"}])
	}
	if len(s.PortHits) != 0 {
		t.Errorf("Expected no port hits for normal ports, got %d", len(s.PortHits))
	}
}

func TestAccept_PortHitsKeepArrivalOrder(t *testing.T) {
	agg := defaultAggregator()
	s := NewState(time.Now())

	agg.Accept(s, record("1.1.1.1", "2.2.2.2", 23))
	agg.Accept(s, record("1.1.1.1", "2.2.2.2", 80))
	agg.Accept(s, record("5.5.5.5", "2.2.2.2", 514))
	agg.Accept(s, record("1.1.1.1", "2.2.2.2", 23))

	if len(s.PortHits) != 3 {
		t.Fatalf("Expected 3 port hits, got %d", len(s.PortHits))
	}
	wantPorts := []int{23, 514, 23}
	for i, hit := range s.PortHits {
		if hit.Record.Port != wantPorts[i] {
			t.Errorf("Hit %d: expected port %d, got %d", i, wantPorts[i], hit.Record.Port)
		}
		if hit.Reason != ReasonUnusualPort {
			t.Errorf("Hit %d: unexpected reason %q", i, hit.Reason)
		}
	}
}
