package web

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/url"
	"strconv"

	"github.com/docker/go-units"
)

// Funcs returns the helpers available to every template.
func Funcs() template.FuncMap {
	return template.FuncMap{
		"bytes":   humanBytes,
		"percent": percent,
		"segment": segment,
	}
}

// humanBytes renders a byte count such as a decoded JSON number as a
// decimal size. Values that are not numbers are printed as is.
func humanBytes(v any) string {
	n, ok := toFloat(v)
	if !ok {
		return fmt.Sprint(v)
	}
	return units.HumanSize(n)
}

// percent reports done as a whole percentage of total, clamped to [0, 100].
func percent(done, total any) int {
	d, ok := toFloat(done)
	if !ok {
		return 0
	}
	t, ok := toFloat(total)
	if !ok || t <= 0 || d <= 0 {
		return 0
	}
	if d >= t {
		return 100
	}
	return int(d * 100 / t)
}

// segment escapes v for use as a single URL path segment.
func segment(v any) string {
	return url.PathEscape(fmt.Sprint(v))
}

func toFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, true
	case json.Number:
		f, err := x.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	default:
		return 0, false
	}
}
