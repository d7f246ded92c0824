package search

import (
	"errors"
	"fmt"
	"slices"
	"sort"

	"github.com/matzehuels/sheetgraph/pkg/core/graph"
)

// ErrUnknownBias is returned by [BiasByName].
var ErrUnknownBias = errors.New("unknown mutation bias")

// Bias weights an edge for point mutation. An edge weighted k is k times
// as likely to be flipped as an edge weighted 1. Weights below 1 exclude
// the edge unless every edge is excluded.
type Bias func(graph.Edge) int

// UniformBias weights every edge 1.
func UniformBias(graph.Edge) int { return 1 }

// ShortMixedBias favours short edges between a header and a data region:
// 1, plus 1 for a header-data edge, plus 1 for a length of at most 1.
func ShortMixedBias(e graph.Edge) int { return mixedBias(e, 1) }

// ExtremeShortMixedBias is ShortMixedBias with a bonus of 20 per property.
func ExtremeShortMixedBias(e graph.Edge) int { return mixedBias(e, 20) }

func mixedBias(e graph.Edge, bonus int) int {
	w := 1
	if e.Connection == graph.DataHeader {
		w += bonus
	}
	if e.Length <= 1 {
		w += bonus
	}
	return w
}

var biases = map[string]Bias{
	"uniform":             UniformBias,
	"short_mixed":         ShortMixedBias,
	"extreme_short_mixed": ExtremeShortMixedBias,
}

// BiasNames returns the names accepted by BiasByName in sorted order.
func BiasNames() []string {
	names := make([]string, 0, len(biases))
	for name := range biases {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// BiasByName looks up a bias. The empty name selects UniformBias.
func BiasByName(name string) (Bias, error) {
	if name == "" {
		return UniformBias, nil
	}
	b, ok := biases[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBias, name)
	}
	return b, nil
}

// bitPicker draws edge positions proportionally to their bias weight.
type bitPicker struct {
	cumulative []int
}

func newBitPicker(edges []graph.Edge, bias Bias) bitPicker {
	if bias == nil {
		bias = UniformBias
	}
	cumulative := make([]int, len(edges))
	total := 0
	for i, e := range edges {
		total += max(0, bias(e))
		cumulative[i] = total
	}
	if total == 0 {
		for i := range cumulative {
			cumulative[i] = i + 1
		}
	}
	return bitPicker{cumulative: cumulative}
}

// pick maps r in [0, total) to an edge position.
func (p bitPicker) pick(r int) int {
	return sort.SearchInts(p.cumulative, r+1)
}

func (p bitPicker) total() int {
	if len(p.cumulative) == 0 {
		return 0
	}
	return p.cumulative[len(p.cumulative)-1]
}
