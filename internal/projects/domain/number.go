package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CoerceNumber turns a decoded JSON value into a finite number, falling back to 0.
func CoerceNumber(v any) float64 {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case json.Number:
		parsed, ok := parseFinite(t.String())
		if !ok {
			return 0
		}
		n = parsed
	case string:
		parsed, ok := parseFinite(t)
		if !ok {
			return 0
		}
		n = parsed
	case bool:
		if t {
			n = 1
		}
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// ParseCarbon parses form input for carbonSaved. Empty and non-numeric input is rejected.
func ParseCarbon(s string) (float64, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	return parseFinite(s)
}

func parseFinite(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

// FormatNumber renders integral values without a decimal point and others in shortest form.
func FormatNumber(n float64) string {
	if n == 0 {
		return "0"
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
