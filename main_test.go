package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"phishing-detector/features"
	"phishing-detector/lookup"
	"phishing-detector/model"
)

type registeredWhois struct{}

func (registeredWhois) Lookup(ctx context.Context, _ string) (lookup.Record, error) {
	if err := ctx.Err(); err != nil {
		return lookup.Record{}, err
	}
	created := time.Now().AddDate(-10, 0, 0)
	expires := time.Now().AddDate(5, 0, 0)
	return lookup.Record{CreatedDate: &created, ExpirationDate: &expires}, nil
}

// legitModel fails once its context is done, like a network-backed model.
type legitModel struct{}

func (legitModel) Predict(ctx context.Context, _ model.Input) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return 1, nil
}

func TestRunOnceTimeouts(t *testing.T) {
	for _, timeout := range []time.Duration{0, 30 * time.Second} {
		t.Run(timeout.String(), func(t *testing.T) {
			var buf bytes.Buffer
			ex := features.NewExtractor(registeredWhois{})

			code := runOnce(&buf, ex, legitModel{}, model.Positional, timeout, "https://www.example.com")
			if code != 0 {
				t.Fatalf("exit code %d: %s", code, buf.String())
			}
			var out onceResult
			if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
				t.Fatal(err)
			}
			if len(out.Defaulted) != 0 {
				t.Errorf("defaulted = %v", out.Defaulted)
			}
			if out.Error != "" || out.Label != model.LabelLegitimate || out.Prediction == nil || *out.Prediction != 1 {
				t.Errorf("result = %+v", out)
			}
			if len(out.Features) != features.Count {
				t.Errorf("features = %v", out.Features)
			}
		})
	}
}

func TestRunOnceClassifierOutlivesExtractionDeadline(t *testing.T) {
	var buf bytes.Buffer
	ex := features.NewExtractor(registeredWhois{})

	// Classify runs after the extraction deadline has passed.
	slow := slowModel{delay: 50 * time.Millisecond}
	code := runOnce(&buf, ex, slow, model.Positional, 20*time.Millisecond, "https://www.example.com")
	if code != 0 {
		t.Fatalf("exit code %d: %s", code, buf.String())
	}
}

type slowModel struct{ delay time.Duration }

func (m slowModel) Predict(ctx context.Context, _ model.Input) (int, error) {
	select {
	case <-time.After(m.delay):
		return 1, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func TestRunOnceWithoutModel(t *testing.T) {
	var buf bytes.Buffer
	code := runOnce(&buf, features.NewExtractor(registeredWhois{}), nil, model.Positional, time.Second, "http://192.168.0.1/")
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}
	var out onceResult
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatal(err)
	}
	if out.Label != "" || out.Prediction != nil || out.Features[0] != -1 {
		t.Errorf("result = %+v", out)
	}
}
