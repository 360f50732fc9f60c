package notification

import (
	"log"
	"time"

	"golang.org/x/time/rate"

	"NetSentry/internal/model"
)

// RateLimitedNotifier drops sends that arrive faster than the configured
// minimum interval, so a run of noisy windows cannot flood the recipient.
// A suppressed send is logged and reported as success.
type RateLimitedNotifier struct {
	next    model.Notifier
	limiter *rate.Limiter
}

// NewRateLimited wraps a notifier with a minimum interval between sends. A
// non-positive interval disables limiting and returns next unchanged.
func NewRateLimited(next model.Notifier, minInterval time.Duration) model.Notifier {
	if minInterval <= 0 {
		return next
	}
	return &RateLimitedNotifier{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(minInterval), 1),
	}
}

// Send forwards to the wrapped notifier unless the limiter rejects it.
func (n *RateLimitedNotifier) Send(subject, body string) error {
	if !n.limiter.Allow() {
		log.Printf("Alert notification suppressed by rate limit: %s", subject)
		return nil
	}
	return n.next.Send(subject, body)
}
