package search

import (
	"fmt"
	"time"

	"github.com/matzehuels/sheetgraph/pkg/core/graph"
	"github.com/matzehuels/sheetgraph/pkg/core/rater"
	"github.com/matzehuels/sheetgraph/pkg/observability"
)

// MaxExhaustiveEdges bounds the enumeration counter to a uint64.
const MaxExhaustiveEdges = 63

// Exhaustive rates all 2^|E| toggle vectors and keeps the first vector with
// the lowest rating.
type Exhaustive struct {
	graph *graph.Graph
	rater rater.Rater
	best  float64
}

// NewExhaustive returns an exhaustive search over g.
func NewExhaustive(g *graph.Graph, r rater.Rater) *Exhaustive {
	return &Exhaustive{graph: g, rater: r}
}

// Run enumerates the counter n from 0 to 2^|E|-1 and maps it to the
// zero-padded bit string of n, so toggle 0 is the most significant bit.
//
// Run panics for graphs with more than 63 edges; such a search would never
// finish anyway.
func (s *Exhaustive) Run() *graph.Graph {
	n := s.graph.EdgeCount()
	if n > MaxExhaustiveEdges {
		panic(fmt.Sprintf("exhaustive search over %d edges", n))
	}
	start := time.Now()
	observability.Search().OnSearchStart(string(StrategyExhaustive), n)

	candidate := make([]bool, n)
	best := make([]bool, n)
	total := uint64(1) << n
	for mask := uint64(0); mask < total; mask++ {
		for i := range candidate {
			candidate[i] = mask>>(n-1-i)&1 == 1
		}
		score := s.rater.Rate(s.graph, candidate)
		if mask == 0 || score < s.best {
			s.best = score
			copy(best, candidate)
		}
	}

	_ = s.graph.SetToggles(best)
	observability.Search().OnSearchComplete(string(StrategyExhaustive), s.best, time.Since(start))
	return s.graph
}

// Best returns the lowest rating found by Run.
func (s *Exhaustive) Best() float64 { return s.best }
