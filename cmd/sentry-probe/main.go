package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gopacket"
	"github.com/google/gopacket/pcap"

	"NetSentry/internal/capture"
)

const (
	snapshotLen int32 = 1600
	promiscuous       = true
	timeout           = pcap.BlockForever
)

// sentry-probe captures live IPv4 TCP/UDP traffic and appends it to the
// connection log the detector tails. It is the feed for hosts without a
// flow exporter.
func main() {
	iface := flag.String("iface", "", "Interface to capture packets from (required).")
	out := flag.String("out", "network_traffic.log", "Connection log file to append to.")
	flag.Parse()

	if *iface == "" {
		log.Println("Error: -iface flag is required.")
		flag.Usage()
		os.Exit(1)
	}

	logFile, err := os.OpenFile(*out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("Error opening %s: %v", *out, err)
	}
	defer logFile.Close()

	handle, err := pcap.OpenLive(*iface, snapshotLen, promiscuous, timeout)
	if err != nil {
		log.Fatalf("Error opening device %s: %v", *iface, err)
	}
	defer handle.Close()

	log.Printf("Capture started on %s, appending to %s", *iface, *out)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		packetSource := gopacket.NewPacketSource(handle, handle.LinkType())
		written := 0
		for packet := range packetSource.Packets() {
			rec, err := capture.RecordFromPacket(packet)
			if err != nil {
				continue // Skip non-IPv4 / non-TCP/UDP packets
			}
			if _, err := logFile.WriteString(capture.LogLine(rec) + "\n"); err != nil {
				log.Printf("Failed to append record: %v", err)
				continue
			}
			written++
			if written%1000 == 0 {
				log.Printf("%d records written...", written)
			}
		}
	}()

	<-sigChan
	log.Println("Shutdown signal received, cleaning up...")
}
