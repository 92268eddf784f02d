package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"phishing-detector/features"
	"phishing-detector/model"
)

// MaxRequestBodySize bounds request bodies; a URL plus 30 values fits easily.
const MaxRequestBodySize = 16 << 10

// Server exposes extraction and classification over JSON.
type Server struct {
	extractor      *features.Extractor
	classifier     model.Classifier
	shape          model.Shape
	extractTimeout time.Duration
}

// New returns a Server. classifier may be nil when no model is loaded;
// prediction requests then fail with 503 while extraction keeps working.
func New(extractor *features.Extractor, classifier model.Classifier, shape model.Shape, extractTimeout time.Duration) *Server {
	return &Server{
		extractor:      extractor,
		classifier:     classifier,
		shape:          shape,
		extractTimeout: extractTimeout,
	}
}

// Routes returns the router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/features", s.handleSchema)
	r.Post("/extract", s.handleExtract)
	r.Post("/predict", s.handlePredict)
	return r
}

type ExtractRequest struct {
	URL string `json:"url"`
}

type ExtractResponse struct {
	URL       string         `json:"url"`
	Features  []int          `json:"features"`
	Named     map[string]int `json:"named"`
	Defaulted []string       `json:"defaulted,omitempty"`
}

// PredictRequest carries exactly one of URL, Features (by name) or Vector
// (positional).
type PredictRequest struct {
	URL      string         `json:"url,omitempty"`
	Features map[string]any `json:"features,omitempty"`
	Vector   []any          `json:"vector,omitempty"`
}

type PredictResponse struct {
	Label      string   `json:"label"`
	Prediction int      `json:"prediction"`
	Message    string   `json:"message"`
	Features   []int    `json:"features"`
	Defaulted  []string `json:"defaulted,omitempty"`
}

type SchemaResponse struct {
	SchemaVersion int      `json:"schema_version"`
	Features      []string `json:"features"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, SchemaResponse{
		SchemaVersion: features.SchemaVersion,
		Features:      features.Names[:],
	})
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req ExtractRequest
	if !decode(w, r, &req) {
		return
	}
	raw := strings.TrimSpace(req.URL)
	if raw == "" {
		sendError(w, http.StatusBadRequest, "invalid_request", "url required")
		return
	}

	x := s.extract(r.Context(), raw)
	writeJSON(w, http.StatusOK, ExtractResponse{
		URL:       x.URL,
		Features:  x.Vector.Values(),
		Named:     x.Vector.Named(),
		Defaulted: x.Defaulted,
	})
}

func (s *Server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var req PredictRequest
	if !decode(w, r, &req) {
		return
	}

	var (
		vector    features.Vector
		defaulted []string
		err       error
	)
	switch {
	case strings.TrimSpace(req.URL) != "" && req.Features == nil && req.Vector == nil:
		x := s.extract(r.Context(), strings.TrimSpace(req.URL))
		vector, defaulted = x.Vector, x.Defaulted
	case req.Features != nil && req.URL == "" && req.Vector == nil:
		vector, err = model.ParseManual(stringifyMap(req.Features))
	case req.Vector != nil && req.URL == "" && req.Features == nil:
		vector, err = model.ParsePositional(stringifySlice(req.Vector))
	default:
		sendError(w, http.StatusBadRequest, "invalid_request", "provide exactly one of url, features or vector")
		return
	}
	if err != nil {
		sendError(w, http.StatusBadRequest, "schema_mismatch", err.Error())
		return
	}

	pred, err := model.Classify(r.Context(), s.classifier, vector, s.shape)
	if err != nil {
		var inv *model.InvocationError
		switch {
		case errors.Is(err, model.ErrClassifierUnavailable):
			sendError(w, http.StatusServiceUnavailable, "model_unavailable", "Model not loaded.")
		case errors.As(err, &inv):
			sendError(w, http.StatusBadGateway, "prediction_failed", err.Error())
		default:
			sendError(w, http.StatusInternalServerError, "internal", err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, PredictResponse{
		Label:      pred.Label,
		Prediction: pred.Raw,
		Message:    pred.String(),
		Features:   vector.Values(),
		Defaulted:  defaulted,
	})
}

func (s *Server) extract(ctx context.Context, raw string) features.Extraction {
	if s.extractTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.extractTimeout)
		defer cancel()
	}
	return s.extractor.Extract(ctx, raw)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		sendError(w, http.StatusBadRequest, "invalid_request", "Invalid request body")
		return false
	}
	return true
}

func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		return fmt.Sprint(x)
	}
}

func stringifyMap(m map[string]any) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = stringify(v)
	}
	return out
}

func stringifySlice(vals []any) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = stringify(v)
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[API] encode response: %v", err)
	}
}

func sendError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}
