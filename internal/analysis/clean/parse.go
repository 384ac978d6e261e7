package clean

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	errNotNumeric  = errors.New("expected a number or numeric string")
	errNotInteger  = errors.New("expected an integer")
	errNotFinite   = errors.New("value is not finite")
	errNegative    = errors.New("value must not be negative")
	errNotBool     = errors.New("expected a boolean")
	errOutOfBounds = errors.New("value out of range")
)

// isNull reports whether a raw field is absent or JSON null
func isNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// numberText extracts the textual form of a JSON number or numeric string
func numberText(raw json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", errNotNumeric
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return "", errNotNumeric
	}
	return n.String(), nil
}

func parseDecimal(raw json.RawMessage) (decimal.Decimal, error) {
	text, err := numberText(raw)
	if err != nil {
		return decimal.Decimal{}, err
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: %v", errNotNumeric, err)
	}
	return d, nil
}

func parseFloat(raw json.RawMessage) (float64, error) {
	d, err := parseDecimal(raw)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errNotFinite
	}
	return f, nil
}

func parseInt(raw json.RawMessage) (int64, error) {
	d, err := parseDecimal(raw)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, errNotInteger
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) || d.LessThan(decimal.NewFromInt(math.MinInt64)) {
		return 0, errOutOfBounds
	}
	return d.IntPart(), nil
}

// parseMillis decodes milliseconds since epoch into a UTC instant
func parseMillis(raw json.RawMessage) (time.Time, error) {
	ms, err := parseInt(raw)
	if err != nil {
		return time.Time{}, err
	}
	if ms < 0 {
		return time.Time{}, errNegative
	}
	return time.UnixMilli(ms).UTC(), nil
}

func parseBool(raw json.RawMessage) (bool, error) {
	var b bool
	if err := json.Unmarshal(bytes.TrimSpace(raw), &b); err != nil {
		return false, errNotBool
	}
	return b, nil
}

// preview renders a raw value for diagnostics without flooding the logs
func preview(raw json.RawMessage) string {
	const maxLen = 32
	s := string(bytes.TrimSpace(raw))
	if len(s) <= maxLen {
		return s
	}
	n := maxLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
