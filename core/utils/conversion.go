package utils

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Lookup walks a decoded attribute tree along the given keys.
func Lookup(tree map[string]any, keys ...string) (any, bool) {
	var cur any = tree
	for _, k := range keys {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = m[k]; !ok {
			return nil, false
		}
	}
	return cur, true
}

// ToFloat converts numeric values and numeric strings to float64.
func ToFloat(val any) (float64, bool) {
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// ToInt converts val with ToFloat and truncates it.
func ToInt(val any) (int, bool) {
	f, ok := ToFloat(val)
	return int(f), ok
}

// ToString converts scalar values to their textual form. Numbers use the
// shortest representation, without exponent for typical magnitudes.
func ToString(val any) (string, bool) {
	switch v := val.(type) {
	case string:
		return v, true
	case bool:
		return strconv.FormatBool(v), true
	case nil:
		return "", false
	}
	if f, ok := ToFloat(val); ok {
		return FormatFloat(f), true
	}
	return "", false
}

// FormatFloat renders f without trailing zeros, e.g. 2.50 as "2.5".
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ToBool converts bools, numbers (non-zero is true) and the strings "1" and
// "true" to bool.
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case string:
		return v == "1" || strings.EqualFold(v, "true")
	}
	f, ok := ToFloat(val)
	return ok && f != 0
}
