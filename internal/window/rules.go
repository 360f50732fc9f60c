package window

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"NetSentry/internal/model"
)

const (
	ReasonUnusualPort   = "Unusual port"
	ReasonHighConnCount = "High connection count"
)

// ReasonHighVolume builds the reason tag for a volume event. The destination
// is embedded in the text; report consumers key off this exact shape.
func ReasonHighVolume(dst string) string {
	return fmt.Sprintf("High volume to %s", dst)
}

// Rules holds the per-window thresholds. Both are strict greater-than: a
// source with exactly ConnectionThreshold connections is not flagged.
type Rules struct {
	ConnectionThreshold uint64
	VolumeThreshold     uint64
}

// Evaluate produces the flagged events for a closed window. It is a pure
// function of the final window state and must run exactly once per window.
//
// Port hits come first in arrival order and carry the record's own
// timestamp; threshold events carry now. Iteration over the count maps is
// unordered, so the relative order of same-class threshold events is
// unspecified. Rules are independent: one source can trigger several rules
// in the same window and every resulting event is emitted.
func (r Rules) Evaluate(s *State, now time.Time) []model.FlaggedEvent {
	var events []model.FlaggedEvent

	for _, hit := range s.PortHits {
		rec := hit.Record
		events = append(events, model.FlaggedEvent{
			ID:        uuid.New().String(),
			Timestamp: rec.Timestamp,
			SrcIP:     rec.SrcIP,
			DstIP:     rec.DstIP,
			Port:      strconv.Itoa(rec.Port),
			Protocol:  rec.Protocol,
			Magnitude: 1,
			Reason:    hit.Reason,
		})
	}

	for src, count := range s.SrcCount {
		if count > r.ConnectionThreshold {
			events = append(events, model.FlaggedEvent{
				ID:        uuid.New().String(),
				Timestamp: now,
				SrcIP:     src,
				Magnitude: count,
				Reason:    ReasonHighConnCount,
			})
		}
	}

	for pair, count := range s.PairCount {
		if count > r.VolumeThreshold {
			events = append(events, model.FlaggedEvent{
				ID:        uuid.New().String(),
				Timestamp: now,
				SrcIP:     pair.SrcIP,
				Magnitude: count,
				Reason:    ReasonHighVolume(pair.DstIP),
			})
		}
	}

	return events
}
