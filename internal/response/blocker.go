// Package response issues best-effort deny actions against flagged source
// addresses via an external firewall tool.
package response

import (
	"fmt"
	"log"
	"os/exec"
	"strings"
)

// UFWBlocker blocks a source address by invoking a firewall command, ufw by
// default. The flagged address is appended to the configured argv prefix.
type UFWBlocker struct {
	command []string
}

// NewUFWBlocker creates a blocker with the given argv prefix.
func NewUFWBlocker(command []string) *UFWBlocker {
	if len(command) == 0 {
		command = []string{"sudo", "ufw", "deny", "from"}
	}
	return &UFWBlocker{command: command}
}

// Block runs the deny command for one address. Failure is returned for the
// caller to log; it is never retried.
func (b *UFWBlocker) Block(ip string) error {
	argv := append(append([]string(nil), b.command...), ip)
	out, err := exec.Command(argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("block command failed for %s: %w (%s)", ip, err, strings.TrimSpace(string(out)))
	}
	log.Printf("Blocked source %s", ip)
	return nil
}
