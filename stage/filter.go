package stage

import (
	"context"
	"math"
	"reflect"

	"github.com/spf13/cast"
)

// Filter stage names preloaded by NewRegistry.
const (
	NameFilterHigh  = "filter_high"
	NameFilterLarge = "filter_large"
)

// Thresholds used by the preloaded filters.
const (
	HighThreshold  = 50.0
	LargeThreshold = 100.0
)

// Filter returns a stage that keeps the elements of a slice input for which
// keep reports true. The result is a new []any in input order. Inputs that
// are not slices, and byte slices, pass through unchanged.
func Filter(name string, keep func(v any) bool) Stage {
	return New(name, func(_ context.Context, input any) (any, error) {
		if _, ok := input.([]byte); ok {
			return input, nil
		}
		rv := reflect.ValueOf(input)
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return input, nil
		}
		out := make([]any, 0, rv.Len())
		for i := range rv.Len() {
			if v := rv.Index(i).Interface(); keep(v) {
				out = append(out, v)
			}
		}
		return out, nil
	})
}

// Above keeps numeric values strictly greater than threshold.
func Above(threshold float64) func(any) bool {
	return func(v any) bool {
		f, err := cast.ToFloat64E(v)
		return err == nil && f > threshold
	}
}

// Beyond keeps numeric values whose magnitude strictly exceeds limit.
func Beyond(limit float64) func(any) bool {
	return func(v any) bool {
		f, err := cast.ToFloat64E(v)
		return err == nil && math.Abs(f) > limit
	}
}

// Filters returns the preloaded filter stages: readings above
// HighThreshold and transactions beyond LargeThreshold either way.
func Filters() []Stage {
	return []Stage{
		Filter(NameFilterHigh, Above(HighThreshold)),
		Filter(NameFilterLarge, Beyond(LargeThreshold)),
	}
}
