package model

import "time"

// ConnectionRecord is one observed connection parsed from the traffic log.
// Records are immutable once constructed and belong to the window that
// accepted them.
type ConnectionRecord struct {
	Timestamp time.Time
	SrcIP     string
	DstIP     string
	Port      int
	Protocol  string
}

// FlaggedEvent is a single detection result destined for reporting and
// response. DstIP, Port and Protocol are empty for window-level threshold
// events; SrcIP is always set.
type FlaggedEvent struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	SrcIP     string    `json:"src_ip"`
	DstIP     string    `json:"dst_ip"`
	Port      string    `json:"port"`
	Protocol  string    `json:"protocol"`
	Magnitude uint64    `json:"magnitude"`
	Reason    string    `json:"reason"`
}
