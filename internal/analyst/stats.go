package analyst

import (
	"fmt"
	"math"

	"salesengine/internal/core"
)

// grouping is an ordered group-by result: keys appear in first-encounter
// order, so iterating a grouping of unchanged store contents is
// deterministic across calls.
type grouping[K comparable, V any] struct {
	keys   []K
	groups map[K][]V
}

func groupBy[K comparable, V any](records []V, key func(V) K) grouping[K, V] {
	g := grouping[K, V]{groups: make(map[K][]V)}
	for _, r := range records {
		k := key(r)
		if _, ok := g.groups[k]; !ok {
			g.keys = append(g.keys, k)
		}
		g.groups[k] = append(g.groups[k], r)
	}
	return g
}

// sizes returns the group sizes in key order.
func (g grouping[K, V]) sizes() []float64 {
	out := make([]float64, 0, len(g.keys))
	for _, k := range g.keys {
		out = append(out, float64(len(g.groups[k])))
	}
	return out
}

func mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("mean of zero values: %w", core.ErrEmptyPopulation)
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}

// sampleStdDev computes the sample (n-1) standard deviation of values
// around center. The center is a parameter because the per-merchant
// queries deviate around the published rounded mean while the per-day
// queries use the exact mean.
func sampleStdDev(values []float64, center float64) (float64, error) {
	if len(values) < 2 {
		return 0, fmt.Errorf("sample standard deviation of %d values: %w", len(values), core.ErrEmptyPopulation)
	}
	var sum float64
	for _, v := range values {
		d := v - center
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)-1)), nil
}

// round2 is the uniform rounding policy for published ratios: half up,
// two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
