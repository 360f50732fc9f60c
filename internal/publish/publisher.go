// Package publish emits flagged events on a NATS subject so external
// consumers (dashboards, SOAR hooks) can react without touching the report
// files.
package publish

import (
	"encoding/json"
	"log"

	"github.com/nats-io/nats.go"

	"NetSentry/internal/model"
)

// Publisher is responsible for publishing flagged events to a NATS subject.
type Publisher struct {
	nc      *nats.Conn
	subject string
}

// NewPublisher creates a new NATS publisher.
func NewPublisher(url, subject string) (*Publisher, error) {
	nc, err := nats.Connect(url)
	if err != nil {
		return nil, err
	}
	log.Printf("Connected to NATS server at %s", url)
	return &Publisher{nc: nc, subject: subject}, nil
}

// Publish serializes an event to JSON and publishes it to the configured
// NATS subject.
func (p *Publisher) Publish(event model.FlaggedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return p.nc.Publish(p.subject, data)
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
		log.Println("NATS connection drained and closed.")
	}
}
