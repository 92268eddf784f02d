package features

import (
	"context"
	"log"
	"time"

	"phishing-detector/lookup"
)

const (
	minRegistrationDays = 365
	minAgeDays          = 6 * 30
)

// WhoisLookup is the registration-data collaborator the domain indicators
// depend on. lookup.Client is the network-backed implementation.
type WhoisLookup interface {
	Lookup(ctx context.Context, domain string) (lookup.Record, error)
}

// DomainChecks computes the WHOIS-backed indicators. Each check issues its
// own lookup bounded by Timeout; any failure yields Suspicious with
// determined=false.
type DomainChecks struct {
	Whois   WhoisLookup
	Timeout time.Duration
	Now     func() time.Time
}

func (d DomainChecks) fetch(ctx context.Context, feature string, p ParsedURL) (lookup.Record, bool) {
	if d.Whois == nil {
		log.Printf("[WHOIS] %s: no lookup configured, defaulting %s to -1", p.Hostname(), feature)
		return lookup.Record{}, false
	}
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}
	rec, err := d.Whois.Lookup(ctx, p.HostWithoutWWW())
	if err != nil {
		log.Printf("[WHOIS] %s: lookup failed: %v, defaulting %s to -1", p.Hostname(), err, feature)
		return lookup.Record{}, false
	}
	return rec, true
}

// RegistrationLength is Legit when the registration spans at least a year.
func (d DomainChecks) RegistrationLength(ctx context.Context, p ParsedURL) (v Value, determined bool) {
	rec, ok := d.fetch(ctx, DomainRegisterationLen, p)
	if !ok {
		return Suspicious, false
	}
	if rec.CreatedDate == nil || rec.ExpirationDate == nil {
		log.Printf("[WHOIS] %s: no creation/expiration date, defaulting %s to -1", p.Hostname(), DomainRegisterationLen)
		return Suspicious, false
	}
	days := daysBetween(*rec.CreatedDate, *rec.ExpirationDate)
	return suspiciousIf(days < minRegistrationDays), true
}

// Age is Legit when the domain was created at least six 30-day months ago.
func (d DomainChecks) Age(ctx context.Context, p ParsedURL) (v Value, determined bool) {
	rec, ok := d.fetch(ctx, AgeOfDomain, p)
	if !ok {
		return Suspicious, false
	}
	if rec.CreatedDate == nil {
		log.Printf("[WHOIS] %s: no creation date, defaulting %s to -1", p.Hostname(), AgeOfDomain)
		return Suspicious, false
	}
	days := daysBetween(*rec.CreatedDate, d.now())
	return suspiciousIf(days < minAgeDays), true
}

func (d DomainChecks) now() time.Time {
	if d.Now != nil {
		return d.Now()
	}
	return time.Now()
}

// daysBetween counts whole days from a to b, flooring like calendar math
// does for negative spans.
func daysBetween(a, b time.Time) int {
	h := b.Sub(a).Hours()
	days := int(h / 24)
	if h < 0 && float64(days*24) != h {
		days--
	}
	return days
}
