package model

// Reporter defines a generic interface for persisting flagged events.
type Reporter interface {
	// Report takes the events of one closed window and durably records them.
	// The implementation owns its storage format.
	Report(events []FlaggedEvent) error
}
