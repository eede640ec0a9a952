package analytics

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// decimalPattern matches signed or unsigned decimals with at most one point
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)$`)

// ToNumber interprets an answer as a real number. Native numerics are taken
// as-is, strings must look like a plain decimal; anything else is rejected.
func ToNumber(v any) (float64, bool) {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int8:
		f = float64(n)
	case int16:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint8:
		f = float64(n)
	case uint16:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	case json.Number:
		return parseDecimal(n.String())
	case string:
		return parseDecimal(n)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseDecimal(s string) (float64, bool) {
	if !decimalPattern.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Numbers coerces every answer, dropping the ones that are not numeric
func Numbers(answers []any) []float64 {
	nums := make([]float64, 0, len(answers))
	for _, a := range answers {
		if f, ok := ToNumber(a); ok {
			nums = append(nums, f)
		}
	}
	return nums
}

// DisplayString renders an answer the way it is shown and grouped. Numbers
// that stringify identically merge with their string form.
func DisplayString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case json.Number:
		return x.String()
	}
	if f, ok := ToNumber(v); ok {
		return FormatNumber(f)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// FormatNumber prints integral values without a fraction
func FormatNumber(f float64) string {
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Round rounds half-to-even at the given number of decimals, using the exact
// decimal expansion of f.
func Round(f float64, places int) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(f, 'f', places, 64), 64)
	if err != nil {
		return f
	}
	return r
}

// truthy mirrors the falsy set of loosely typed answers: nil, "", false and 0
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case string:
		return x != ""
	case bool:
		return x
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	}
	if f, ok := ToNumber(v); ok {
		return f != 0
	}
	return true
}

func trimmed(v any) string {
	return strings.TrimSpace(DisplayString(v))
}
