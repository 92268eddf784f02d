package features

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"
)

// Extraction is the result of running the pipeline on one URL.
type Extraction struct {
	URL    string `json:"url"`
	Vector Vector `json:"-"`
	// Defaulted lists indicators whose value is a lookup fallback rather
	// than a determination.
	Defaulted []string `json:"defaulted,omitempty"`
}

// Extractor maps raw URLs to feature vectors.
type Extractor struct {
	Domain DomainChecks
}

// NewExtractor wires the domain checks to whois.
func NewExtractor(whois WhoisLookup, opts ...Option) *Extractor {
	e := &Extractor{Domain: DomainChecks{Whois: whois}}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Extract computes all indicators for raw and assembles them in schema
// order. It never fails; cancelling ctx only aborts outstanding lookups,
// which then take their fallback values.
func (e *Extractor) Extract(ctx context.Context, raw string) Extraction {
	p := ParseURL(raw)

	var (
		lexical            map[string]Value
		regLen, age        Value
		regKnown, ageKnown bool
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		lexical = Lexical(raw, p)
		return nil
	})
	g.Go(func() error {
		regLen, regKnown = e.Domain.RegistrationLength(gctx, p)
		return nil
	})
	g.Go(func() error {
		age, ageKnown = e.Domain.Age(gctx, p)
		return nil
	})

	_ = g.Wait()

	values := Static()
	for k, v := range lexical {
		values[k] = v
	}
	values[DomainRegisterationLen] = regLen
	values[AgeOfDomain] = age

	out := Extraction{URL: raw, Vector: FromMap(values)}
	if !regKnown {
		out.Defaulted = append(out.Defaulted, DomainRegisterationLen)
	}
	if !ageKnown {
		out.Defaulted = append(out.Defaulted, AgeOfDomain)
	}

	log.Printf("[EXTRACT] %q -> %v (defaulted: %v)", raw, out.Vector.Values(), out.Defaulted)
	return out
}

// ExtractFeatures is Extract without the bookkeeping.
func (e *Extractor) ExtractFeatures(ctx context.Context, raw string) Vector {
	return e.Extract(ctx, raw).Vector
}
