// Package stats holds the small aggregation helpers shared by every insight
// engine. Each helper that can be undefined reports ok=false instead of
// returning NaN or Inf.
package stats

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

func Sum(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return floats.Sum(values)
}

func SumInts(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}

// Average is the arithmetic mean; ok is false for an empty input.
func Average(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	return stat.Mean(values, nil), true
}

// StandardDeviation is the population standard deviation (divides by N).
func StandardDeviation(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	_, std := stat.PopMeanStdDev(values, nil)
	return std, true
}

// ToPercent returns numerator/denominator*100; ok is false when denominator <= 0.
func ToPercent(numerator float64, denominator float64) (float64, bool) {
	if denominator <= 0 {
		return 0, false
	}
	return numerator / denominator * 100, true
}

// Set is a set of element ids.
type Set map[int]struct{}

func NewSet(ids ...int) Set {
	s := make(Set, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s Set) Has(id int) bool {
	_, ok := s[id]
	return ok
}

// JaccardSimilarity is |A∩B| / |A∪B|; ok is false when both sets are empty.
func JaccardSimilarity(a Set, b Set) (float64, bool) {
	if len(a) == 0 && len(b) == 0 {
		return 0, false
	}
	intersection := 0
	for id := range a {
		if b.Has(id) {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0, false
	}
	return float64(intersection) / float64(union), true
}

// Floats converts integer points to float64 for the helpers above.
func Floats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

// Optional turns a (value, ok) pair into a nullable output field.
func Optional(v float64, ok bool) *float64 {
	if !ok {
		return nil
	}
	return &v
}
