package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var errNotInteger = errors.New("not an integer")

// coerceInt accepts JSON integers, numeric strings, and fractional numbers
// (truncated toward zero). Booleans, objects and arrays are rejected.
func coerceInt(v any) (int, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return intFromInt64(i)
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotInteger, n.String())
		}
		return intFromFloat(f)
	case float64:
		return intFromFloat(n)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", errNotInteger, n)
		}
		return intFromInt64(i)
	default:
		return 0, fmt.Errorf("%w: %T", errNotInteger, v)
	}
}

func intFromFloat(f float64) (int, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, fmt.Errorf("%w: %v", errNotInteger, f)
	}
	return int(math.Trunc(f)), nil
}

func intFromInt64(i int64) (int, error) {
	if i > math.MaxInt32 || i < math.MinInt32 {
		return 0, fmt.Errorf("%w: %d out of range", errNotInteger, i)
	}
	return int(i), nil
}
