package model

// Blocker defines a generic interface for issuing a deny action against a
// source address. Blocking is best-effort; failures are logged by the
// caller and never retried.
type Blocker interface {
	Block(ip string) error
}
