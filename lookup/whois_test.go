package lookup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	parser "github.com/likexian/whois-parser"
)

type recordingQuery struct {
	mu      sync.Mutex
	domains []string
	raw     string
	err     error
	delay   time.Duration
}

func (q *recordingQuery) do(domain string) (string, error) {
	q.mu.Lock()
	q.domains = append(q.domains, domain)
	q.mu.Unlock()
	if q.delay > 0 {
		time.Sleep(q.delay)
	}
	return q.raw, q.err
}

func TestLookupEmptyDomain(t *testing.T) {
	q := &recordingQuery{}
	c := &Client{timeout: time.Second, query: q.do}

	if _, err := c.Lookup(context.Background(), "  "); !errors.Is(err, ErrEmptyDomain) {
		t.Fatalf("err = %v, want ErrEmptyDomain", err)
	}
	if len(q.domains) != 0 {
		t.Errorf("no query expected, got %v", q.domains)
	}
}

func TestLookupRetriesRegistrableDomain(t *testing.T) {
	q := &recordingQuery{err: errors.New("no match")}
	c := &Client{timeout: time.Second, query: q.do}

	_, err := c.Lookup(context.Background(), "www.login.secure.example.co.uk:8443")
	if err == nil {
		t.Fatal("expected error")
	}
	want := []string{"login.secure.example.co.uk", "example.co.uk"}
	if len(q.domains) != len(want) {
		t.Fatalf("queried %v, want %v", q.domains, want)
	}
	for i := range want {
		if q.domains[i] != want[i] {
			t.Errorf("query %d = %q, want %q", i, q.domains[i], want[i])
		}
	}
}

func TestLookupNoRetryForRegistrableDomain(t *testing.T) {
	q := &recordingQuery{err: errors.New("connection refused")}
	c := &Client{timeout: time.Second, query: q.do}

	if _, err := c.Lookup(context.Background(), "example.com"); err == nil {
		t.Fatal("expected error")
	}
	if len(q.domains) != 1 {
		t.Errorf("queried %v, want a single query", q.domains)
	}
}

func TestLookupTimeout(t *testing.T) {
	q := &recordingQuery{delay: 200 * time.Millisecond}
	c := &Client{timeout: 20 * time.Millisecond, query: q.do}

	start := time.Now()
	_, err := c.Lookup(context.Background(), "example.com")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("err = %v, want deadline exceeded", err)
	}
	if time.Since(start) > 150*time.Millisecond {
		t.Errorf("lookup was not bounded by the timeout")
	}
}

func TestLookupCancelled(t *testing.T) {
	q := &recordingQuery{delay: 200 * time.Millisecond}
	c := &Client{timeout: time.Second, query: q.do}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.Lookup(ctx, "a.example.com"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want canceled", err)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.domains) > 1 {
		t.Errorf("cancelled lookup should not retry, queried %v", q.domains)
	}
}

func TestRecordFromInfo(t *testing.T) {
	info := parser.WhoisInfo{Domain: &parser.Domain{
		CreatedDate:    "1995-08-14T04:00:00Z",
		ExpirationDate: "2030-08-13T04:00:00Z",
	}}
	rec, err := recordFromInfo("example.com", info)
	if err != nil {
		t.Fatalf("recordFromInfo: %v", err)
	}
	if rec.CreatedDate == nil || rec.CreatedDate.Year() != 1995 {
		t.Errorf("CreatedDate = %v", rec.CreatedDate)
	}
	if rec.ExpirationDate == nil || rec.ExpirationDate.Year() != 2030 {
		t.Errorf("ExpirationDate = %v", rec.ExpirationDate)
	}

	if _, err := recordFromInfo("example.com", parser.WhoisInfo{}); !errors.Is(err, ErrNoDomainData) {
		t.Errorf("err = %v, want ErrNoDomainData", err)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2020-01-02T03:04:05Z", "2020-01-02"},
		{"2020-01-02 03:04:05", "2020-01-02"},
		{"2020-01-02", "2020-01-02"},
		{"02-Jan-2020", "2020-01-02"},
		{"2020.01.02", "2020-01-02"},
		{"2020/01/02", "2020-01-02"},
		{" 2020-01-02 , 2021-05-05", "2020-01-02"},
	}
	for _, tt := range tests {
		got := ParseDate(tt.in)
		if got == nil {
			t.Errorf("ParseDate(%q) = nil", tt.in)
			continue
		}
		if s := got.Format("2006-01-02"); s != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.in, s, tt.want)
		}
	}

	for _, in := range []string{"", "   ", "not a date", "REDACTED"} {
		if got := ParseDate(in); got != nil {
			t.Errorf("ParseDate(%q) = %v, want nil", in, got)
		}
	}
}

func TestNormalizeDomain(t *testing.T) {
	tests := map[string]string{
		"Example.COM":                   "example.com",
		"www.example.com":               "example.com",
		"user:pw@www.example.com:8080":  "example.com",
		"https://shop.example.com/path": "shop.example.com",
		"example.com.":                  "example.com",
		"":                              "",
	}
	for in, want := range tests {
		if got := NormalizeDomain(in); got != want {
			t.Errorf("NormalizeDomain(%q) = %q, want %q", in, got, want)
		}
	}
}
