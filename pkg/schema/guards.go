package schema

import (
	"math"
	"strconv"
	"strings"
)

var bloodPressureShape = BloodPressure(NaNPassthrough)

// ToFloat narrows any Go numeric value to float64.
func ToFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}

// ToInt narrows an integer or a whole float64 to int. Floats outside the
// range of int are rejected instead of wrapping.
func ToInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float64:
		// float64(math.MinInt) is exact; -float64(math.MinInt) is the first
		// float past math.MaxInt.
		if math.IsNaN(v) || v != math.Trunc(v) || v < float64(math.MinInt) || v >= -float64(math.MinInt) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// IsNumber reports whether value carries a number. NaN is a number.
func IsNumber(value any) bool {
	_, ok := ToFloat(value)
	return ok
}

// IsText reports whether value is a string.
func IsText(value any) bool {
	_, ok := value.(string)
	return ok
}

// IsComposite reports whether value is a non-nil structure carrying numeric
// systolic, diastolic and average sub-fields.
func IsComposite(value any) bool {
	return bloodPressureShape.Validate(value) == nil
}

// ParseNumber coerces raw control text into a number.
// Unparseable input becomes NaN.
func ParseNumber(raw string) float64 {
	n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return math.NaN()
	}
	return n
}

// FormatNumber renders a number the way a numeric control displays it.
func FormatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
