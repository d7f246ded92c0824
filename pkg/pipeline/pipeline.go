// Package pipeline runs table detection on one sheet from end to end.
//
// This package implements the complete build → search → report pipeline
// used by the CLI and the API server. By centralizing this logic, both
// entry points log, cache and report detection runs identically.
//
// # Architecture
//
// A detection run has three stages:
//
//  1. Build: Turn the sheet's labelled regions into a sheet graph
//  2. Search: Find the edge toggle vector with the lowest rating
//  3. Report: Read the tables off the winning partition and, if the sheet
//     carries ground-truth tables, evaluate them
//
// # Usage
//
//	runner := pipeline.NewRunner(nil, nil, logger)
//	s, err := io.ImportJSON("sheet.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := runner.Detect(ctx, s, pipeline.Options{Strategy: "genetic"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, t := range result.Tables {
//	    fmt.Println(t.BoundingBox)
//	}
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sheetgraph/pkg/cache"
	"github.com/matzehuels/sheetgraph/pkg/config"
	"github.com/matzehuels/sheetgraph/pkg/core/graph"
	"github.com/matzehuels/sheetgraph/pkg/core/rater"
	"github.com/matzehuels/sheetgraph/pkg/core/sheet"
	"github.com/matzehuels/sheetgraph/pkg/io"
)

// Options configures one detection run.
type Options struct {
	// Strategy overrides the configured strategy when not empty.
	Strategy string `json:"strategy,omitempty"`

	// Config holds weights and search parameters. Nil means config.Default().
	Config *config.Config `json:"-"`

	// Dimensions overrides the sizes stored in the sheet document, for
	// example with sizes read from the source workbook.
	Dimensions sheet.Dimensions `json:"-"`

	// Refresh skips the cache lookup. The new result is still stored.
	Refresh bool `json:"-"`

	// Progress receives genetic search progress. It is not called for
	// exhaustive search or on cache hits.
	Progress func(generation int, best float64) `json:"-"`

	Logger *log.Logger `json:"-"`
}

// ValidateAndSetDefaults fills in the default config, applies the strategy
// override and validates the result. The caller's config is not modified.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Strategy != "" {
		cfg := *o.Config
		cfg.Strategy = o.Strategy
		o.Config = &cfg
	}
	if o.Logger == nil {
		o.Logger = log.Default()
	}
	return o.Config.Validate()
}

// keyOpts lists what goes into the result cache key.
func (o *Options) keyOpts() (cache.ResultKeyOpts, error) {
	settings, err := cache.HashJSON(struct {
		Genetic config.Genetic `json:"genetic"`
		Density config.Density `json:"density"`
	}{o.Config.Genetic, o.Config.Density})
	if err != nil {
		return cache.ResultKeyOpts{}, err
	}
	return cache.ResultKeyOpts{
		Strategy:           o.Config.Strategy,
		ExhaustiveMaxNodes: o.Config.ExhaustiveMaxNodes,
		ExhaustiveMaxEdges: o.Config.ExhaustiveMaxEdges,
		Weights:            o.Config.Weights,
		Settings:           settings,
	}, nil
}

// Result is the outcome of a detection run.
type Result struct {
	*io.Result

	// Graph holds the winning toggle vector. It is nil on cache hits.
	Graph *graph.Graph
	// Components are the detected tables in graph order. Nil on cache hits.
	Components []*graph.Component

	// Stats describes the run.
	Stats Stats
}

// Stats collects timing and cache information of a run.
type Stats struct {
	BuildTime  time.Duration
	SearchTime time.Duration
	Total      time.Duration
	CacheHit   bool
	Rater      rater.CacheStats
	// History is the genetic hall-of-fame rating per generation.
	History []float64
}
