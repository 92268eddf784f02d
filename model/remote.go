package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"time"

	"phishing-detector/features"
)

// RemoteClassifier calls a model server over HTTP. The server receives
//
//	{"schema_version": 1, "instances": [[...30 ints...]]}
//
// or, for named-column models, {"instances": [{"having_IP_Address": 1, ...}]},
// and answers {"predictions": [<label>]}.
type RemoteClassifier struct {
	URL        string
	HTTPClient *http.Client
}

type predictRequest struct {
	SchemaVersion int   `json:"schema_version"`
	Instances     []any `json:"instances"`
}

type predictResponse struct {
	Predictions []json.Number `json:"predictions"`
	Error       string        `json:"error,omitempty"`
}

// NewRemoteClassifier returns a client for the model server at url. An
// empty url means no model is deployed.
func NewRemoteClassifier(url string, timeout time.Duration) (*RemoteClassifier, error) {
	if url == "" {
		return nil, fmt.Errorf("MODEL_URL not set: %w", ErrClassifierUnavailable)
	}
	return &RemoteClassifier{
		URL: url,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// Predict sends one instance and returns the model's raw label.
func (c *RemoteClassifier) Predict(ctx context.Context, in Input) (int, error) {
	var instance any = in.Values
	if in.Columns != nil {
		instance = in.Columns
	}
	reqBody := predictRequest{
		SchemaVersion: features.SchemaVersion,
		Instances:     []any{instance},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return 0, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(jsonData))
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		var opErr *net.OpError
		if errors.As(err, &opErr) && opErr.Op == "dial" {
			return 0, fmt.Errorf("%w: %v", ErrClassifierUnavailable, err)
		}
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusServiceUnavailable {
		return 0, fmt.Errorf("%w: model server status %d", ErrClassifierUnavailable, resp.StatusCode)
	}

	var out predictResponse
	decodeErr := json.Unmarshal(body, &out)

	if resp.StatusCode != http.StatusOK {
		if decodeErr == nil && out.Error != "" {
			return 0, fmt.Errorf("model server error (status %d): %s", resp.StatusCode, out.Error)
		}
		return 0, fmt.Errorf("model server error (status %d): %s", resp.StatusCode, string(body))
	}
	if decodeErr != nil {
		return 0, fmt.Errorf("unmarshal response: %w", decodeErr)
	}
	if out.Error != "" {
		return 0, fmt.Errorf("model error: %s", out.Error)
	}
	if len(out.Predictions) == 0 {
		return 0, fmt.Errorf("empty response from model server")
	}

	return labelFromNumber(out.Predictions[0])
}

// labelFromNumber accepts integral labels written either as 1 or 1.0.
func labelFromNumber(n json.Number) (int, error) {
	if i, err := n.Int64(); err == nil {
		return int(i), nil
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("non-integer prediction %q", n.String())
	}
	return int(f), nil
}
