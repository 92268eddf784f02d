package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"phishing-detector/api"
	"phishing-detector/config"
	"phishing-detector/features"
	"phishing-detector/lookup"
	"phishing-detector/model"
)

func main() {
	var (
		port   string
		rawURL string
	)
	flag.StringVar(&port, "port", "", "HTTP server port (overrides PORT)")
	flag.StringVar(&rawURL, "url", "", "extract (and classify, if a model is configured) a single URL and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if port != "" {
		cfg.Port = port
	}

	extractor := features.NewExtractor(
		lookup.NewClient(cfg.WhoisTimeout, cfg.WhoisServer),
		features.WithLookupTimeout(cfg.WhoisTimeout),
	)

	// A missing model is not fatal: extraction still works and predictions
	// report the model as unavailable.
	var classifier model.Classifier
	if remote, err := model.NewRemoteClassifier(cfg.ModelURL, cfg.ModelTimeout); err != nil {
		log.Printf("[MODEL] %v", err)
	} else {
		classifier = remote
	}
	shape := model.ShapeFor(cfg.ModelNamedColumns)

	if rawURL != "" {
		os.Exit(runOnce(os.Stdout, extractor, classifier, shape, cfg.ExtractTimeout, rawURL))
	}

	srv := api.New(extractor, classifier, shape, cfg.ExtractTimeout)
	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- server.ListenAndServe() }()

	log.Printf("✅ phishing-detector listening on :%s (model input: %s)", cfg.Port, shape)
	log.Println("📍 Endpoints:")
	log.Println("   GET  /healthz      - Liveness")
	log.Println("   GET  /features     - Feature schema")
	log.Println("   POST /extract      - URL feature extraction")
	log.Println("   POST /predict      - Classify a URL or a manual feature vector")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		log.Printf("shutting down on %s", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}
}

type onceResult struct {
	URL        string         `json:"url"`
	Features   []int          `json:"features"`
	Named      map[string]int `json:"named"`
	Defaulted  []string       `json:"defaulted,omitempty"`
	Label      string         `json:"label,omitempty"`
	Prediction *int           `json:"prediction,omitempty"`
	Error      string         `json:"error,omitempty"`
}

// runOnce extracts rawURL, classifies it when a model is configured and
// writes the result as JSON to w. timeout bounds extraction only; zero
// leaves it unbounded, as on the HTTP path.
func runOnce(w io.Writer, extractor *features.Extractor, classifier model.Classifier, shape model.Shape, timeout time.Duration, rawURL string) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	x := extractOnce(ctx, extractor, timeout, rawURL)
	out := onceResult{
		URL:       x.URL,
		Features:  x.Vector.Values(),
		Named:     x.Vector.Named(),
		Defaulted: x.Defaulted,
	}

	code := 0
	if classifier != nil {
		if p, err := model.Classify(ctx, classifier, x.Vector, shape); err != nil {
			out.Error = err.Error()
			code = 1
		} else {
			out.Label = p.Label
			out.Prediction = &p.Raw
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		log.Printf("encode: %v", err)
		return 1
	}
	return code
}

func extractOnce(ctx context.Context, extractor *features.Extractor, timeout time.Duration, rawURL string) features.Extraction {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return extractor.Extract(ctx, rawURL)
}
