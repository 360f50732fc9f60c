// Package capture turns live packets into connection log lines, so hosts
// without a flow exporter can still feed the detector.
package capture

import (
	"fmt"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"NetSentry/internal/model"
)

// RecordFromPacket extracts a connection record from a captured frame.
// Only IPv4 TCP/UDP packets produce records; everything else is skipped.
func RecordFromPacket(packet gopacket.Packet) (*model.ConnectionRecord, error) {
	rec := &model.ConnectionRecord{Timestamp: time.Now()}
	if meta := packet.Metadata(); meta != nil && !meta.Timestamp.IsZero() {
		rec.Timestamp = meta.Timestamp
	}

	l := packet.Layer(layers.LayerTypeIPv4)
	if l == nil {
		return nil, fmt.Errorf("not an IPv4 packet")
	}
	ip := l.(*layers.IPv4)
	rec.SrcIP = ip.SrcIP.String()
	rec.DstIP = ip.DstIP.String()

	if l := packet.Layer(layers.LayerTypeTCP); l != nil {
		tcp := l.(*layers.TCP)
		rec.Port = int(tcp.DstPort)
		rec.Protocol = "TCP"
	} else if l := packet.Layer(layers.LayerTypeUDP); l != nil {
		udp := l.(*layers.UDP)
		rec.Port = int(udp.DstPort)
		rec.Protocol = "UDP"
	} else {
		return nil, fmt.Errorf("not a TCP or UDP packet")
	}

	return rec, nil
}

// LogLine formats a record as one line of the connection log, matching the
// format the parser expects.
func LogLine(rec *model.ConnectionRecord) string {
	return fmt.Sprintf("%s,%s,%s,%d,%s",
		rec.Timestamp.Format(time.RFC3339), rec.SrcIP, rec.DstIP, rec.Port, rec.Protocol)
}
