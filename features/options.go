package features

import "time"

// Option configures an Extractor.
type Option func(*Extractor)

// WithLookupTimeout bounds each WHOIS lookup.
func WithLookupTimeout(d time.Duration) Option {
	return func(e *Extractor) { e.Domain.Timeout = d }
}

// WithClock replaces the wall clock used for domain age.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) { e.Domain.Now = now }
}
