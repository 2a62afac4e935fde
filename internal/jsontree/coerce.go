package jsontree

import (
	"math"
	"strconv"
	"strings"
)

// nameKeys are consulted when a string is wanted but the vendor sent an
// object such as {"Name": "Texas Instruments", "Id": 12}.
var nameKeys = []string{"Name", "CompanyName", "DisplayName", "Manufacturer", "Label"}

// AsString coerces v to a trimmed, non-empty string.
//   - strings are trimmed; blank strings are absent
//   - numbers render as canonical decimal text
//   - booleans render as "true" or "false"
//   - objects resolve through their name-like member
func AsString(v Value) (string, bool) {
	switch v.kind {
	case String:
		trimmed := strings.TrimSpace(v.text)
		if trimmed == "" {
			return "", false
		}
		return trimmed, true
	case Number:
		return canonicalNumber(v.text)
	case Bool:
		return strconv.FormatBool(v.flag), true
	case Object:
		inner, ok := Lookup(v, nameKeys...)
		if !ok {
			return "", false
		}
		return AsString(inner)
	}
	return "", false
}

// AsUint coerces v to a non-negative integer. Numbers must be integral and
// non-negative; strings are reduced to their digits ("1,200 pcs" is 1200).
func AsUint(v Value) (uint64, bool) {
	switch v.kind {
	case Number:
		if n, err := strconv.ParseUint(v.text, 10, 64); err == nil {
			return n, true
		}
		f, err := strconv.ParseFloat(v.text, 64)
		if err != nil || f < 0 || f != math.Trunc(f) || f >= math.MaxUint64 {
			return 0, false
		}
		return uint64(f), true
	case String:
		digits := keepOnly(v.text, func(c rune) bool { return c >= '0' && c <= '9' })
		if digits == "" {
			return 0, false
		}
		n, err := strconv.ParseUint(digits, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// AsFloat coerces v to a float. Strings keep only digits, '.' and '-'
// before parsing, so "$1.25" and "1,234.50 USD" both parse.
func AsFloat(v Value) (float64, bool) {
	var text string
	switch v.kind {
	case Number:
		text = v.text
	case String:
		text = keepOnly(v.text, func(c rune) bool {
			return (c >= '0' && c <= '9') || c == '.' || c == '-'
		})
	default:
		return 0, false
	}
	if text == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

// canonicalNumber renders integers without a fraction and keeps floats
// recognisable as floats, so 1.0 stays "1.0" while 1.50 becomes "1.5"
func canonicalNumber(literal string) (string, bool) {
	if n, err := strconv.ParseInt(literal, 10, 64); err == nil {
		return strconv.FormatInt(n, 10), true
	}
	if n, err := strconv.ParseUint(literal, 10, 64); err == nil {
		return strconv.FormatUint(n, 10), true
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return "", false
	}
	text := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text, true
}

func keepOnly(s string, keep func(rune) bool) string {
	var b strings.Builder
	for _, c := range s {
		if keep(c) {
			b.WriteRune(c)
		}
	}
	return b.String()
}
