package report

import (
	"cmp"
	"slices"
)

func ptr[T any](v T) *T { return &v }

// mean returns nil for an empty sample.
func mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return ptr(sum / float64(len(values)))
}

// byValueDesc orders named values by value descending, then name.
func byValueDesc(a, b NamedValue) int {
	if c := cmp.Compare(b.Value, a.Value); c != 0 {
		return c
	}
	return cmp.Compare(a.Name, b.Name)
}

// sortedKeys returns the keys of m in ascending order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
