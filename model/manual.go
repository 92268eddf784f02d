package model

import (
	"strconv"
	"strings"

	"phishing-detector/features"
)

// ParseManual builds a vector from per-feature values as typed into a form,
// bypassing extraction. Every schema name must be present with an integer
// in {-1, 0, 1}; names outside the schema are ignored.
func ParseManual(values map[string]string) (features.Vector, error) {
	var (
		v       features.Vector
		missing []string
		invalid []string
	)
	for i, name := range features.Names {
		s, ok := values[name]
		if !ok || strings.TrimSpace(s) == "" {
			missing = append(missing, name)
			continue
		}
		x, ok := parseValue(s)
		if !ok {
			invalid = append(invalid, name)
			continue
		}
		v[i] = x
	}
	if len(missing) > 0 || len(invalid) > 0 {
		return features.Vector{}, &SchemaMismatchError{Missing: missing, Invalid: invalid}
	}
	return v, nil
}

// ParsePositional builds a vector from values given in schema order.
func ParsePositional(values []string) (features.Vector, error) {
	if len(values) != features.Count {
		return features.Vector{}, &SchemaMismatchError{Got: len(values)}
	}
	var (
		v       features.Vector
		invalid []string
	)
	for i, s := range values {
		x, ok := parseValue(s)
		if !ok {
			invalid = append(invalid, features.Names[i])
			continue
		}
		v[i] = x
	}
	if len(invalid) > 0 {
		return features.Vector{}, &SchemaMismatchError{Invalid: invalid, Got: len(values)}
	}
	return v, nil
}

func parseValue(s string) (features.Value, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	v := features.Value(n)
	return v, v.Valid()
}
