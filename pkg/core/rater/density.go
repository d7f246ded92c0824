package rater

import (
	"fmt"

	"github.com/matzehuels/sheetgraph/pkg/core/graph"
)

// DensityWeightCount is the number of extra weights a DensityRater needs:
// one for the single-table term and one for the multi-table term.
const DensityWeightCount = 2

// DensityRater extends FitnessRater with two terms driven by how densely
// the regions of a sheet are connected. Sheets holding a single table tend
// to produce denser graphs than sheets holding several tables.
//
// When the density exceeds SingleTableMean, splitting the sheet is
// penalized by the share of regions that became their own table. When the
// density falls below MultiTableMean, merging is penalized by the inverse
// of that share.
type DensityRater struct {
	base            *FitnessRater
	single, multi   float64
	SingleTableMean float64
	MultiTableMean  float64
}

// NewDensity returns a DensityRater. weights holds [WeightCount] metric
// weights followed by the single-table and multi-table weights.
func NewDensity(weights []float64, singleTableMean, multiTableMean float64) (*DensityRater, error) {
	want := WeightCount() + DensityWeightCount
	if len(weights) != want {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWeightCount, len(weights), want)
	}
	base, err := New(weights[:WeightCount()])
	if err != nil {
		return nil, err
	}
	return &DensityRater{
		base:            base,
		single:          weights[WeightCount()],
		multi:           weights[WeightCount()+1],
		SingleTableMean: singleTableMean,
		MultiTableMean:  multiTableMean,
	}, nil
}

// Weights returns a copy of the full weight vector.
func (r *DensityRater) Weights() []float64 {
	return append(r.base.Weights(), r.single, r.multi)
}

// CacheStats reports score cache usage of the underlying FitnessRater.
func (r *DensityRater) CacheStats() CacheStats { return r.base.CacheStats() }

// Reset drops all cached scores.
func (r *DensityRater) Reset() { r.base.Reset() }

// Rate implements Rater.
func (r *DensityRater) Rate(g *graph.Graph, toggles []bool) float64 {
	components := views(g, toggles)
	score := r.base.total(g, components)

	density := Density(g)
	nodes := len(g.Nodes())
	if nodes == 0 {
		return score
	}
	share := float64(len(components)) / float64(nodes)
	if density > r.SingleTableMean {
		score += share * r.single
	}
	if density < r.MultiTableMean {
		score += (1 - share) * r.multi
	}
	return score
}

// Density returns 2|E| / (n(n-1)) for a graph with n regions, or 0 for
// fewer than two regions.
func Density(g *graph.Graph) float64 {
	n := len(g.Nodes())
	if n < 2 {
		return 0
	}
	return 2 * float64(g.EdgeCount()) / float64(n*(n-1))
}
