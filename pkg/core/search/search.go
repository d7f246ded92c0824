// Package search finds the partition of a sheet graph with the lowest
// rating by exploring its edge toggle vectors.
//
// Two strategies are provided. [Exhaustive] enumerates every toggle vector
// and is only practical for small graphs. [Genetic] evolves a population of
// toggle vectors and keeps the best vector it ever saw. Both install their
// winner into the graph and return it.
//
// Searches are synchronous and single-threaded. They have no cancellation
// points: a run always finishes its enumeration or generation count.
package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matzehuels/sheetgraph/pkg/core/graph"
	"github.com/matzehuels/sheetgraph/pkg/core/rater"
)

var (
	// ErrNotImplemented is returned for configuration the searches do not
	// support, such as a fixed random seed.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInvalidConfig is returned by [Config.Validate].
	ErrInvalidConfig = errors.New("invalid search configuration")

	// ErrUnknownStrategy is returned by [ParseStrategy].
	ErrUnknownStrategy = errors.New("unknown search strategy")

	// ErrTooManyEdges is returned by [New] when exhaustive search is
	// requested for a graph with more than [MaxExhaustiveEdges] edges.
	ErrTooManyEdges = errors.New("too many edges for exhaustive search")
)

// DefaultMaxExhaustiveNodes is the largest region count for which
// [StrategyAuto] picks exhaustive search.
const DefaultMaxExhaustiveNodes = 10

// DefaultMaxExhaustiveEdges is the largest edge count a detection run
// enumerates exhaustively unless configured otherwise.
const DefaultMaxExhaustiveEdges = 20

// Search explores toggle vectors of one graph.
type Search interface {
	// Run installs the best toggle vector found into the graph and returns
	// the graph.
	Run() *graph.Graph
	// Best returns the rating of the installed vector after Run.
	Best() float64
}

// Strategy names a search strategy.
type Strategy string

const (
	StrategyAuto       Strategy = "auto"
	StrategyExhaustive Strategy = "exhaustive"
	StrategyGenetic    Strategy = "genetic"
)

// Strategies lists the accepted strategy names.
func Strategies() []Strategy {
	return []Strategy{StrategyAuto, StrategyExhaustive, StrategyGenetic}
}

// ParseStrategy parses a strategy name case-insensitively. The empty string
// selects [StrategyAuto].
func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StrategyAuto, nil
	case StrategyAuto, StrategyExhaustive, StrategyGenetic:
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Resolve maps [StrategyAuto] to a concrete strategy: exhaustive search for
// graphs with at most maxNodes regions, genetic search otherwise. A
// non-positive maxNodes uses [DefaultMaxExhaustiveNodes].
func (s Strategy) Resolve(g *graph.Graph, maxNodes int) Strategy {
	if s != StrategyAuto {
		return s
	}
	if maxNodes <= 0 {
		maxNodes = DefaultMaxExhaustiveNodes
	}
	if len(g.Nodes()) <= maxNodes {
		return StrategyExhaustive
	}
	return StrategyGenetic
}

// New builds the search for a strategy. cfg is only used by genetic search.
func New(s Strategy, g *graph.Graph, r rater.Rater, cfg Config, maxNodes int) (Search, error) {
	switch s.Resolve(g, maxNodes) {
	case StrategyExhaustive:
		if g.EdgeCount() > MaxExhaustiveEdges {
			return nil, fmt.Errorf("%w: %d > %d", ErrTooManyEdges, g.EdgeCount(), MaxExhaustiveEdges)
		}
		return NewExhaustive(g, r), nil
	case StrategyGenetic:
		return NewGenetic(g, r, cfg)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// Choose is New with [StrategyAuto].
func Choose(g *graph.Graph, r rater.Rater, cfg Config, maxNodes int) (Search, error) {
	return New(StrategyAuto, g, r, cfg, maxNodes)
}
