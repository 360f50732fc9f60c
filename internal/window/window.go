// Package window implements the per-interval aggregation state and the
// detection rules evaluated when a window closes.
package window

import (
	"time"

	"NetSentry/internal/model"
)

// PortHit is one unusual-port observation, recorded at acceptance time.
// Hits keep their arrival order for report ordering.
type PortHit struct {
	Record *model.ConnectionRecord
	Reason string
}

// PairKey identifies a (source, destination) address pair.
type PairKey struct {
	SrcIP string
	DstIP string
}

// State is the mutable aggregation for a single window. It is owned by one
// goroutine, consumed exactly once by Rules.Evaluate and discarded
// afterwards; no state carries over between windows.
type State struct {
	Start     time.Time
	SrcCount  map[string]uint64
	PairCount map[PairKey]uint64
	PortHits  []PortHit
}

// NewState creates an empty window starting at the given instant.
func NewState(start time.Time) *State {
	return &State{
		Start:     start,
		SrcCount:  make(map[string]uint64),
		PairCount: make(map[PairKey]uint64),
	}
}

// Aggregator accepts records into window state. The unusual-port check runs
// per record at acceptance, not at window close.
type Aggregator struct {
	normalPorts map[int]struct{}
	portCutoff  int
}

// NewAggregator builds an aggregator flagging ports in [1, cutoff) that are
// not in the normal set.
func NewAggregator(normalPorts []int, cutoff int) *Aggregator {
	normal := make(map[int]struct{}, len(normalPorts))
	for _, p := range normalPorts {
		normal[p] = struct{}{}
	}
	return &Aggregator{normalPorts: normal, portCutoff: cutoff}
}

// Unusual reports whether a port falls in the privileged range outside the
// normal set.
func (a *Aggregator) Unusual(port int) bool {
	if port < 1 || port >= a.portCutoff {
		return false
	}
	_, normal := a.normalPorts[port]
	return !normal
}

// Accept folds one record into the window. A record is never re-evaluated
// after acceptance.
func (a *Aggregator) Accept(s *State, rec *model.ConnectionRecord) {
	s.SrcCount[rec.SrcIP]++
	s.PairCount[PairKey{SrcIP: rec.SrcIP, DstIP: rec.DstIP}]++
	if a.Unusual(rec.Port) {
		s.PortHits = append(s.PortHits, PortHit{Record: rec, Reason: ReasonUnusualPort})
	}
}
