package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// NormalizeCollection decodes a list response. Both a bare array and an object
// with a "projects" array are accepted; any other valid JSON yields an empty
// slice. Invalid JSON is reported as ErrMalformed.
func NormalizeCollection(body []byte) ([]Project, error) {
	trimmed := bytes.TrimSpace(body)
	if !json.Valid(trimmed) {
		return nil, fmt.Errorf("decode collection: %w", ErrMalformed)
	}

	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		return decodeArray(trimmed)
	case len(trimmed) > 0 && trimmed[0] == '{':
		var envelope struct {
			Projects json.RawMessage `json:"projects"`
		}
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return []Project{}, nil
		}
		inner := bytes.TrimSpace(envelope.Projects)
		if len(inner) == 0 || inner[0] != '[' {
			return []Project{}, nil
		}
		return decodeArray(inner)
	default:
		return []Project{}, nil
	}
}

func decodeArray(raw []byte) ([]Project, error) {
	out := make([]Project, 0, 16)
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode projects: %w", ErrMalformed)
	}
	return out, nil
}

// Stats are the counters shown above the project list.
type Stats struct {
	ProjectCount int
	CarbonTotal  float64
}

// Summarize counts projects and sums carbonSaved.
func Summarize(projects []Project) Stats {
	s := Stats{ProjectCount: len(projects)}
	for _, p := range projects {
		s.CarbonTotal += CoerceNumber(p.CarbonSaved)
	}
	return s
}
