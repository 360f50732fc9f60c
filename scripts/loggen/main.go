// loggen writes synthetic connection log lines for demos and load tests.
// Modes:
//
//	normal - background traffic on common ports from random sources
//	flood  - one source hammering one destination (trips both thresholds)
//	probe  - one source walking privileged ports (trips the unusual-port rule)
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"
)

var commonPorts = []int{22, 80, 443, 8080, 3306, 5432}

func randomIP(r *rand.Rand) string {
	return fmt.Sprintf("%d.%d.%d.%d", r.Intn(223)+1, r.Intn(256), r.Intn(256), r.Intn(256))
}

func line(ts time.Time, src, dst string, port int, proto string) string {
	return fmt.Sprintf("%s,%s,%s,%d,%s\n", ts.Format(time.RFC3339), src, dst, port, proto)
}

func main() {
	out := flag.String("out", "network_traffic.log", "Connection log file to append to.")
	mode := flag.String("mode", "normal", "Traffic mode: normal, flood or probe.")
	count := flag.Int("count", 200, "Number of lines to write.")
	delay := flag.Duration("delay", 10*time.Millisecond, "Delay between lines.")
	flag.Parse()

	f, err := os.OpenFile(*out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		log.Fatalf("Failed to open %s: %v", *out, err)
	}
	defer f.Close()

	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	attacker := "203.0.113.66"
	target := "192.168.1.100"

	log.Printf("Writing %d %s lines to %s", *count, *mode, *out)

	for i := 0; i < *count; i++ {
		var s string
		switch *mode {
		case "flood":
			s = line(time.Now(), attacker, target, 80, "TCP")
		case "probe":
			s = line(time.Now(), attacker, target, r.Intn(1023)+1, "TCP")
		case "normal":
			s = line(time.Now(), randomIP(r), target, commonPorts[r.Intn(len(commonPorts))], "TCP")
		default:
			log.Fatalf("Unknown mode: %s", *mode)
		}
		if _, err := f.WriteString(s); err != nil {
			log.Fatalf("Write failed: %v", err)
		}
		time.Sleep(*delay)
	}

	log.Println("Done.")
}
