package lookup

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	whois "github.com/likexian/whois"
	parser "github.com/likexian/whois-parser"
	"golang.org/x/net/publicsuffix"
)

var (
	ErrEmptyDomain   = errors.New("empty domain")
	ErrNotRegistered = errors.New("domain not registered")
	ErrNoDomainData  = errors.New("whois response carries no domain data")
)

// Record is the registration metadata used by the domain indicators.
// Either date may be nil when the registry does not publish it.
type Record struct {
	Domain         string
	CreatedDate    *time.Time
	ExpirationDate *time.Time
}

// Client queries WHOIS servers and parses registration dates.
type Client struct {
	timeout time.Duration
	server  string
	query   func(domain string) (string, error)
}

// NewClient returns a Client whose every query is bounded by timeout. An
// empty server lets the library pick the registry's WHOIS server.
func NewClient(timeout time.Duration, server string) *Client {
	wc := whois.NewClient().SetTimeout(timeout)
	c := &Client{timeout: timeout, server: server}
	c.query = func(domain string) (string, error) {
		if c.server != "" {
			return wc.Whois(domain, c.server)
		}
		return wc.Whois(domain)
	}
	return c
}

// Lookup fetches registration dates for domain. Subdomains that the registry
// does not know are retried against their registrable domain.
func (c *Client) Lookup(ctx context.Context, domain string) (Record, error) {
	host := NormalizeDomain(domain)
	if host == "" {
		return Record{}, ErrEmptyDomain
	}

	rec, err := c.lookup(ctx, host)
	if err == nil || ctx.Err() != nil {
		return rec, err
	}

	parent, perr := publicsuffix.EffectiveTLDPlusOne(host)
	if perr != nil || parent == host {
		return Record{}, err
	}
	log.Printf("[WHOIS] %s: %v, retrying registrable domain %s", host, err, parent)
	return c.lookup(ctx, parent)
}

func (c *Client) lookup(ctx context.Context, domain string) (Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	type result struct {
		raw string
		err error
	}
	// The library call has no context; its own timeout bounds the goroutine.
	ch := make(chan result, 1)
	go func() {
		raw, err := c.query(domain)
		ch <- result{raw, err}
	}()

	var res result
	select {
	case <-ctx.Done():
		return Record{}, fmt.Errorf("whois %s: %w", domain, ctx.Err())
	case res = <-ch:
	}
	if res.err != nil {
		return Record{}, fmt.Errorf("whois %s: %w", domain, res.err)
	}

	info, err := parser.Parse(res.raw)
	if err != nil {
		if errors.Is(err, parser.ErrNotFoundDomain) {
			return Record{}, fmt.Errorf("whois %s: %w", domain, ErrNotRegistered)
		}
		return Record{}, fmt.Errorf("parse whois %s: %w", domain, err)
	}
	return recordFromInfo(domain, info)
}

func recordFromInfo(domain string, info parser.WhoisInfo) (Record, error) {
	if info.Domain == nil {
		return Record{}, fmt.Errorf("whois %s: %w", domain, ErrNoDomainData)
	}
	return Record{
		Domain:         domain,
		CreatedDate:    ParseDate(info.Domain.CreatedDate),
		ExpirationDate: ParseDate(info.Domain.ExpirationDate),
	}, nil
}

var dateLayouts = []string{
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05 MST",
	"2006-01-02",
	"02-Jan-2006",
	"02-Jan-2006 15:04:05 MST",
	"2006.01.02",
	"2006/01/02",
	"02.01.2006",
	"January 2 2006",
}

// ParseDate tries the date layouts registries commonly publish. Registries
// that list several dates separated by commas are read from the first one.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	if s == "" {
		return nil
	}
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return &t
		}
	}
	return nil
}

// NormalizeDomain reduces a network location to a bare lower-case hostname.
func NormalizeDomain(domain string) string {
	domain = strings.TrimSpace(domain)
	domain = strings.ToLower(domain)

	domain = strings.TrimPrefix(domain, "http://")
	domain = strings.TrimPrefix(domain, "https://")
	if i := strings.IndexAny(domain, "/?#"); i >= 0 {
		domain = domain[:i]
	}
	if i := strings.LastIndexByte(domain, '@'); i >= 0 {
		domain = domain[i+1:]
	}
	if i := strings.IndexByte(domain, ':'); i >= 0 {
		domain = domain[:i]
	}
	domain = strings.TrimPrefix(domain, "www.")
	return strings.TrimSuffix(domain, ".")
}
