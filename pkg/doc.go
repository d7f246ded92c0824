// Package pkg provides the core libraries for Sheetgraph table detection.
//
// # Overview
//
// Sheetgraph finds tables in spreadsheets whose cells have already been
// labelled as header or data regions. Aligned regions are connected into a
// sheet graph; every way of switching its edges on or off partitions the
// regions into connected components, and the partition with the lowest
// weighted fitness rating is reported as the set of detected tables.
//
// The pkg directory is organized into three areas:
//
//  1. [core] - Domain logic (regions, sheet graph, fitness metrics, search)
//  2. Infrastructure (configuration, caching, errors, observability)
//  3. [pipeline] - Orchestration (build → search → report)
//
// # Architecture
//
// The typical data flow through Sheetgraph:
//
//	Sheet document (JSON) + optional workbook (xlsx)
//	         ↓
//	    [io] + [xlsx] packages (regions, tables, column widths, row heights)
//	         ↓
//	    [core/graph] package (aligned regions → edges → components)
//	         ↓
//	    [core/rater] package (weighted fitness metrics per partition)
//	         ↓
//	    [core/search] package (exhaustive or genetic search)
//	         ↓
//	    Detected tables (+ [core/evaluate] report against ground truth)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/sheetgraph/pkg/core/graph"
//	    "github.com/matzehuels/sheetgraph/pkg/core/rater"
//	    "github.com/matzehuels/sheetgraph/pkg/core/search"
//	    "github.com/matzehuels/sheetgraph/pkg/io"
//	)
//
//	s, _ := io.ImportJSON("sheet.json")
//	g, _ := graph.New(s.Regions(), s.Dimensions())
//	r, _ := rater.New(rater.DefaultWeights())
//	srch, _ := search.New(search.StrategyExhaustive, g, r, search.DefaultConfig(), 10)
//	srch.Run()
//	for _, c := range g.Views() {
//	    fmt.Println(c.BoundingBox())
//	}
//
// # Main Packages
//
// ## Core Domain Logic
//
// [core/region] - Bounding boxes and labelled header/data regions.
//
// [core/sheet] - Column widths and row heights of a worksheet.
//
// [core/graph] - The sheet graph: one node per region, one edge per aligned
// pair, a toggle per edge and connected components as candidate tables.
//
// [core/rater] - Fitness metrics over components and partitions, combined
// into one weighted rating with score caching.
//
// [core/search] - Exhaustive enumeration of toggle vectors for small graphs
// and a genetic algorithm for larger ones.
//
// [core/evaluate] - Detection categories and area precision/recall against
// ground-truth tables.
//
// ## Infrastructure
//
// [config] - TOML configuration of strategy, weights and search parameters.
//
// [cache] - Result cache with file, memory and null backends.
//
// [io] - JSON sheet documents and detection results.
//
// [xlsx] - Column widths and row heights read from Excel workbooks.
//
// [errors] - Coded errors shared by the CLI and the API.
//
// [observability] - Hooks for detection, search and HTTP events.
//
// [pipeline] - The complete detection run used by the CLI and the API.
//
// # Testing
//
//	go test ./pkg/...                 # All tests
//	go test ./pkg/core/graph/...      # Specific package
//	go test -run Example ./pkg/...    # Examples only
//
// [core]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/core
// [core/region]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/core/region
// [core/sheet]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/core/sheet
// [core/graph]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/core/graph
// [core/rater]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/core/rater
// [core/search]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/core/search
// [core/evaluate]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/core/evaluate
// [config]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/cache
// [io]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/io
// [xlsx]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/xlsx
// [errors]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/sheetgraph/pkg/pipeline
package pkg
