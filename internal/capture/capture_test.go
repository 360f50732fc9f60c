package capture

import (
	"net"
	"strings"
	"testing"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"

	"NetSentry/internal/parser"
)

func buildTCPPacket(t *testing.T) gopacket.Packet {
	t.Helper()
	eth := &layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0x00, 0x11, 0x22, 0x33, 0x44, 0x55},
		DstMAC:       net.HardwareAddr{0x66, 0x77, 0x88, 0x99, 0xaa, 0xbb},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := &layers.IPv4{
		Version:  4,
		TTL:      64,
		SrcIP:    net.IP{192, 168, 0, 1},
		DstIP:    net.IP{10, 0, 0, 1},
		Protocol: layers.IPProtocolTCP,
	}
	tcp := &layers.TCP{SrcPort: 54321, DstPort: 23, SYN: true}
	if err := tcp.SetNetworkLayerForChecksum(ip); err != nil {
		t.Fatalf("Failed to set network layer: %v", err)
	}

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, eth, ip, tcp); err != nil {
		t.Fatalf("Failed to serialize packet: %v", err)
	}
	return gopacket.NewPacket(buf.Bytes(), layers.LayerTypeEthernet, gopacket.Default)
}

func TestRecordFromPacket_TCP(t *testing.T) {
	rec, err := RecordFromPacket(buildTCPPacket(t))
	if err != nil {
		t.Fatalf("RecordFromPacket failed: %v", err)
	}
	if rec.SrcIP != "192.168.0.1" || rec.DstIP != "10.0.0.1" {
		t.Errorf("Unexpected addresses: %s -> %s", rec.SrcIP, rec.DstIP)
	}
	if rec.Port != 23 || rec.Protocol != "TCP" {
		t.Errorf("Expected TCP port 23, got %s %d", rec.Protocol, rec.Port)
	}
}

func TestLogLine_RoundTripsThroughParser(t *testing.T) {
	rec, err := RecordFromPacket(buildTCPPacket(t))
	if err != nil {
		t.Fatalf("RecordFromPacket failed: %v", err)
	}

	line := LogLine(rec)
	if strings.Count(line, ",") != 4 {
		t.Fatalf("Expected 5 fields, got %q", line)
	}

	parsed, err := parser.ParseLine(line)
	if err != nil {
		t.Fatalf("Generated line did not parse: %v", err)
	}
	if parsed.SrcIP != rec.SrcIP || parsed.Port != rec.Port || parsed.Protocol != rec.Protocol {
		t.Errorf("Round trip mismatch: %+v vs %+v", parsed, rec)
	}
}
