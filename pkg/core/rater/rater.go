package rater

import (
	"errors"
	"fmt"

	"github.com/matzehuels/sheetgraph/pkg/core/graph"
)

// ErrWeightCount is returned when a weight vector does not have exactly
// one entry per metric.
var ErrWeightCount = errors.New("weight vector length does not match metric count")

// Rater scores a toggle vector against a graph. Implementations must leave
// the graph's toggle vector unchanged.
type Rater interface {
	Rate(g *graph.Graph, toggles []bool) float64
}

// CachingRater is a Rater that memoizes metric scores.
type CachingRater interface {
	Rater
	Weights() []float64
	CacheStats() CacheStats
	Reset()
}

// FitnessRater is the weighted sum of all component and partition metrics.
type FitnessRater struct {
	weights []float64
	cache   *scoreCache
}

// New returns a FitnessRater. weights must hold [WeightCount] entries in
// the order of [Metrics].
func New(weights []float64) (*FitnessRater, error) {
	if len(weights) != WeightCount() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrWeightCount, len(weights), WeightCount())
	}
	return &FitnessRater{
		weights: append([]float64(nil), weights...),
		cache:   newScoreCache(),
	}, nil
}

// Weights returns a copy of the weight vector.
func (r *FitnessRater) Weights() []float64 {
	return append([]float64(nil), r.weights...)
}

// Lookup returns the weight of every metric by name.
func (r *FitnessRater) Lookup() map[Metric]float64 {
	out := make(map[Metric]float64, len(r.weights))
	for i, m := range Metrics() {
		out[m] = r.weights[i]
	}
	return out
}

// CacheStats reports score cache usage since construction or the last Reset.
func (r *FitnessRater) CacheStats() CacheStats { return r.cache.stats() }

// Reset drops all cached scores.
func (r *FitnessRater) Reset() { r.cache = newScoreCache() }

// Rate scores the partition induced by toggles. The graph's own toggle
// vector is swapped out only while the components are collected.
//
// Rate panics if len(toggles) differs from the graph's edge count.
func (r *FitnessRater) Rate(g *graph.Graph, toggles []bool) float64 {
	return r.total(g, views(g, toggles))
}

// Breakdown returns the weighted contribution of every metric to
// Rate(g, toggles). The contributions sum to the rating.
func (r *FitnessRater) Breakdown(g *graph.Graph, toggles []bool) map[Metric]float64 {
	components := views(g, toggles)
	out := make(map[Metric]float64, len(r.weights))
	for i, m := range componentRegistry {
		for _, c := range components {
			out[m.name] += r.componentScore(g, c, i) * r.weights[i]
		}
	}
	offset := len(componentRegistry)
	for j, m := range partitionRegistry {
		out[m.name] = r.partitionScore(g, components, j) * r.weights[offset+j]
	}
	return out
}

func views(g *graph.Graph, toggles []bool) []*graph.Component {
	var components []*graph.Component
	if err := g.WithToggles(toggles, func() { components = g.Views() }); err != nil {
		panic(err)
	}
	return components
}

func (r *FitnessRater) total(g *graph.Graph, components []*graph.Component) float64 {
	var score float64
	for _, c := range components {
		for i := range componentRegistry {
			score += r.componentScore(g, c, i) * r.weights[i]
		}
	}
	offset := len(componentRegistry)
	for j := range partitionRegistry {
		score += r.partitionScore(g, components, j) * r.weights[offset+j]
	}
	return score
}

func (r *FitnessRater) componentScore(g *graph.Graph, c *graph.Component, i int) float64 {
	m := componentRegistry[i]
	key := cacheKey{sheet: g.ID(), members: c.Key(), metric: m.name}
	return r.cache.fetch(key, func() float64 { return m.fn(c) })
}

func (r *FitnessRater) partitionScore(g *graph.Graph, components []*graph.Component, j int) float64 {
	m := partitionRegistry[j]
	key := cacheKey{sheet: g.ID(), members: partitionKey(components), metric: m.name}
	return r.cache.fetch(key, func() float64 { return m.fn(components) })
}
