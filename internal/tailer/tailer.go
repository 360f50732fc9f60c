// Package tailer produces the live line stream the detector ingests. Only
// content appended after the tailer attaches is observed; the detector
// analyzes live traffic, not history.
package tailer

import (
	"context"
	"io"
	"log"
	"os"
	"time"

	"github.com/nxadm/tail"
)

// Tailer follows a growing log file and delivers newly appended lines, with
// trailing terminators stripped, on a channel.
type Tailer struct {
	path     string
	filePoll time.Duration
}

// New creates a tailer for the given path. filePoll is how often to check
// for the file while it does not yet exist.
func New(path string, filePoll time.Duration) *Tailer {
	if filePoll <= 0 {
		filePoll = 5 * time.Second
	}
	return &Tailer{path: path, filePoll: filePoll}
}

// Run starts following the file and returns the line channel. The channel
// is closed when the underlying read fails or ctx is cancelled; a closed
// channel means "stop ingesting", not a fatal error. If the file does not
// exist yet, Run blocks its goroutine until it appears.
func (t *Tailer) Run(ctx context.Context) <-chan string {
	lines := make(chan string, 1024)

	go func() {
		defer close(lines)

		if !t.waitForFile(ctx) {
			return
		}

		tf, err := tail.TailFile(t.path, tail.Config{
			Follow:    true,
			MustExist: true,
			Location:  &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
			Logger:    tail.DiscardingLogger,
		})
		if err != nil {
			log.Printf("ERROR: failed to tail %s: %v", t.path, err)
			return
		}
		defer tf.Cleanup()
		log.Printf("Tailing %s from current end", t.path)

		for {
			select {
			case <-ctx.Done():
				tf.Stop()
				return
			case line, ok := <-tf.Lines:
				if !ok {
					log.Printf("Tail of %s ended", t.path)
					return
				}
				if line.Err != nil {
					log.Printf("ERROR: reading %s: %v", t.path, line.Err)
					tf.Stop()
					return
				}
				select {
				case lines <- line.Text:
				case <-ctx.Done():
					tf.Stop()
					return
				}
			}
		}
	}()

	return lines
}

// waitForFile polls until the file exists. Returns false only on
// cancellation; a missing file is a wait state, never an error.
func (t *Tailer) waitForFile(ctx context.Context) bool {
	if _, err := os.Stat(t.path); err == nil {
		return true
	}
	log.Printf("Waiting for log file: %s", t.path)

	ticker := time.NewTicker(t.filePoll)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return false
		case <-ticker.C:
			if _, err := os.Stat(t.path); err == nil {
				return true
			}
		}
	}
}
