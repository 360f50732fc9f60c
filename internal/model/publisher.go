package model

// Publisher defines a generic interface for emitting flagged events to an
// external message bus.
type Publisher interface {
	Publish(event FlaggedEvent) error
}
