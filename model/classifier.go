package model

import (
	"context"
	"errors"
	"fmt"
	"log"

	"phishing-detector/features"
)

// Shape selects how a vector is handed to the classifier. It is fixed by
// configuration for a given model, never probed at call time.
type Shape int

const (
	// Positional sends the 30 values in schema order.
	Positional Shape = iota
	// Named sends a feature-name to value mapping, for models trained with
	// named columns.
	Named
)

func (s Shape) String() string {
	if s == Named {
		return "named"
	}
	return "positional"
}

// ShapeFor maps the named-columns configuration flag to a Shape.
func ShapeFor(namedColumns bool) Shape {
	if namedColumns {
		return Named
	}
	return Positional
}

// Input is one classifier invocation. Exactly one of Values or Columns is
// set, according to the Shape it was built with.
type Input struct {
	Values  []int
	Columns map[string]int
}

// NewInput shapes v for the classifier.
func NewInput(v features.Vector, shape Shape) Input {
	if shape == Named {
		return Input{Columns: v.Named()}
	}
	return Input{Values: v.Values()}
}

// Classifier is the external trained model. It returns the raw label the
// model was trained with: 1 for legitimate, anything else for phishing.
type Classifier interface {
	Predict(ctx context.Context, in Input) (int, error)
}

const (
	LabelLegitimate = "Legitimate"
	LabelPhishing   = "Phishing"
)

// Prediction is a classified vector.
type Prediction struct {
	Label string `json:"label"`
	Raw   int    `json:"prediction"`
}

func (p Prediction) String() string {
	return fmt.Sprintf("Prediction: %s (%d)", p.Label, p.Raw)
}

// LabelFor maps a raw model output to its label.
func LabelFor(raw int) string {
	if raw == 1 {
		return LabelLegitimate
	}
	return LabelPhishing
}

// Classify runs c on v. A nil classifier or one reporting
// ErrClassifierUnavailable yields ErrClassifierUnavailable; any other
// failure is wrapped in an InvocationError.
func Classify(ctx context.Context, c Classifier, v features.Vector, shape Shape) (Prediction, error) {
	if c == nil {
		return Prediction{}, ErrClassifierUnavailable
	}

	raw, err := c.Predict(ctx, NewInput(v, shape))
	if err != nil {
		if errors.Is(err, ErrClassifierUnavailable) {
			return Prediction{}, err
		}
		log.Printf("[MODEL] predict failed (%s input): %v", shape, err)
		return Prediction{}, &InvocationError{Err: err}
	}

	p := Prediction{Label: LabelFor(raw), Raw: raw}
	log.Printf("[MODEL] %s", p)
	return p, nil
}
