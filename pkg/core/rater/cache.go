package rater

import (
	"slices"
	"strings"

	"github.com/matzehuels/sheetgraph/pkg/core/graph"
	"github.com/matzehuels/sheetgraph/pkg/observability"
)

// cacheKey identifies one metric score. members is a component key for
// component metrics and a partition key for partition metrics.
type cacheKey struct {
	sheet   string
	members string
	metric  Metric
}

// CacheStats reports score cache usage.
type CacheStats struct {
	Hits   int
	Misses int
	Size   int
}

type scoreCache struct {
	scores map[cacheKey]float64
	hits   int
	misses int
}

func newScoreCache() *scoreCache {
	return &scoreCache{scores: make(map[cacheKey]float64)}
}

func (c *scoreCache) fetch(key cacheKey, compute func() float64) float64 {
	if v, ok := c.scores[key]; ok {
		c.hits++
		observability.Rater().OnCacheHit(string(key.metric))
		return v
	}
	c.misses++
	observability.Rater().OnCacheMiss(string(key.metric))
	v := compute()
	c.scores[key] = v
	return v
}

func (c *scoreCache) stats() CacheStats {
	return CacheStats{Hits: c.hits, Misses: c.misses, Size: len(c.scores)}
}

// partitionKey identifies a partition by its sorted component keys.
func partitionKey(components []*graph.Component) string {
	keys := make([]string, len(components))
	for i, c := range components {
		keys[i] = c.Key()
	}
	slices.Sort(keys)
	return strings.Join(keys, "|")
}
