// Package detector drives the ingest loop: it consumes raw lines, feeds the
// window aggregator, and on each window boundary evaluates the detection
// rules and dispatches the resulting events to the configured responders.
package detector

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"NetSentry/internal/config"
	"NetSentry/internal/model"
	"NetSentry/internal/parser"
	"NetSentry/internal/window"
)

// Responders bundles the best-effort collaborators invoked when a window
// produces events. Any field may be nil or empty; a missing responder is
// simply skipped.
type Responders struct {
	Reporters []model.Reporter
	Blocker   model.Blocker
	Notifier  model.Notifier
	Publisher model.Publisher
}

// Detector is the single-threaded window scheduler. One goroutine owns the
// current window state, so analysis for a window always completes before
// the next line is processed and no record can land in the wrong window.
type Detector struct {
	lines      <-chan string
	aggregator *window.Aggregator
	rules      window.Rules
	interval   time.Duration
	responders Responders

	// now is the clock used for window starts and threshold-event
	// timestamps; swapped out in tests.
	now func() time.Time
}

// New creates a detector from the window configuration and a line source.
func New(cfg *config.Config, lines <-chan string, responders Responders) (*Detector, error) {
	interval, err := time.ParseDuration(cfg.Window.Interval)
	if err != nil {
		return nil, fmt.Errorf("invalid window interval: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("window interval must be a positive duration")
	}

	return &Detector{
		lines:      lines,
		aggregator: window.NewAggregator(cfg.Window.NormalPorts, cfg.Window.PrivilegedPortCutoff),
		rules: window.Rules{
			ConnectionThreshold: cfg.Window.ConnectionThreshold,
			VolumeThreshold:     cfg.Window.VolumeThreshold,
		},
		interval:   interval,
		responders: responders,
		now:        time.Now,
	}, nil
}

// Run drives the loop until the line source is exhausted or ctx is
// cancelled. There is no other terminal state: malformed input and
// responder failures are logged and the loop continues.
func (d *Detector) Run(ctx context.Context) {
	log.Printf("Detector started with a %s window", d.interval)

	state := window.NewState(d.now())
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Detector stopping on cancellation.")
			return
		case <-ticker.C:
			d.flush(state)
			state = window.NewState(d.now())
		case line, ok := <-d.lines:
			if !ok {
				log.Println("Line source exhausted, detector stopping.")
				return
			}
			rec, err := parser.ParseLine(line)
			if err != nil {
				log.Printf("Skipping malformed line: %v", err)
				continue
			}
			d.aggregator.Accept(state, rec)
		}
	}
}

// flush evaluates a closed window and dispatches any resulting events. A
// failure anywhere in the analysis/response block is confined to this
// window; ingestion never halts because a downstream action failed.
func (d *Detector) flush(state *window.State) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("ERROR: window analysis failed: %v", r)
		}
	}()

	events := d.rules.Evaluate(state, d.now())
	if len(events) == 0 {
		log.Println("No suspicious activity in this window.")
		return
	}

	sources := uniqueSources(events)
	log.Printf("Window flagged %d event(s) from %d source(s).", len(events), len(sources))

	for _, reporter := range d.responders.Reporters {
		if err := reporter.Report(events); err != nil {
			log.Printf("ERROR: failed to report events: %v", err)
		}
	}

	if d.responders.Publisher != nil {
		for _, ev := range events {
			if err := d.responders.Publisher.Publish(ev); err != nil {
				log.Printf("ERROR: failed to publish event %s: %v", ev.ID, err)
			}
		}
	}

	if d.responders.Blocker != nil {
		for _, ip := range sources {
			if err := d.responders.Blocker.Block(ip); err != nil {
				log.Printf("ERROR: failed to block %s: %v", ip, err)
			}
		}
	}

	if d.responders.Notifier != nil {
		subject := fmt.Sprintf("NetSentry alert: %d source(s) flagged", len(sources))
		body := "Suspicious sources:\n" + strings.Join(sources, "\n")
		if err := d.responders.Notifier.Send(subject, body); err != nil {
			log.Printf("ERROR: failed to send alert notification: %v", err)
		}
	}
}

// uniqueSources returns the distinct flagged source addresses, sorted so
// that block order and mail bodies are stable.
func uniqueSources(events []model.FlaggedEvent) []string {
	seen := make(map[string]struct{}, len(events))
	var sources []string
	for _, ev := range events {
		if _, ok := seen[ev.SrcIP]; ok {
			continue
		}
		seen[ev.SrcIP] = struct{}{}
		sources = append(sources, ev.SrcIP)
	}
	sort.Strings(sources)
	return sources
}
