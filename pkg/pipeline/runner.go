package pipeline

import (
	"bytes"
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/sheetgraph/pkg/cache"
	"github.com/matzehuels/sheetgraph/pkg/core/evaluate"
	"github.com/matzehuels/sheetgraph/pkg/core/graph"
	"github.com/matzehuels/sheetgraph/pkg/core/search"
	"github.com/matzehuels/sheetgraph/pkg/errors"
	"github.com/matzehuels/sheetgraph/pkg/io"
	"github.com/matzehuels/sheetgraph/pkg/observability"
)

// Runner executes detection runs with result caching.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner; every run builds its own
// graph and rater.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Detect finds the tables of one sheet.
//
// The search itself cannot be interrupted; ctx is checked before the run
// starts and before the result is stored.
func (r *Runner) Detect(ctx context.Context, s *io.Sheet, opts Options) (res *Result, err error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	logger := opts.Logger.With("sheet", s.Name)

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnDetectStart(ctx, s.Name, len(s.Regions()))
	defer func() {
		tables := 0
		if res != nil {
			tables = len(res.Tables)
		}
		hooks.OnDetectComplete(ctx, s.Name, tables, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key, cacheable := r.cacheKey(s, &opts)
	if cacheable && !opts.Refresh {
		if cached, ok := r.lookup(ctx, key); ok {
			logger.Info("using cached result", "tables", len(cached.Tables), "score", cached.Score)
			return &Result{Result: cached, Stats: Stats{CacheHit: true, Total: time.Since(start)}}, nil
		}
	}

	res, err = r.run(s, opts, logger)
	if err != nil {
		return nil, err
	}
	res.Stats.Total = time.Since(start)
	res.DurationMS = res.Stats.Total.Milliseconds()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if cacheable {
		r.store(ctx, key, res.Result, logger)
	}
	return res, nil
}

func (r *Runner) run(s *io.Sheet, opts Options, logger *log.Logger) (*Result, error) {
	cfg := opts.Config

	buildStart := time.Now()
	dims := opts.Dimensions
	if dims == nil {
		dims = s.Dimensions()
	}
	var gopts []graph.Option
	if len(s.Tables) > 0 {
		gopts = append(gopts, graph.WithTables(s.Tables))
	}
	g, err := graph.New(s.Regions(), dims, gopts...)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRegion, err, "build sheet graph")
	}
	buildTime := time.Since(buildStart)
	logger.Info("built sheet graph",
		"regions", len(g.Nodes()),
		"edges", g.EdgeCount(),
		"duration", buildTime)

	rt, err := cfg.NewRater()
	if err != nil {
		return nil, err
	}
	gc, err := cfg.GeneticConfig()
	if err != nil {
		return nil, err
	}
	strategy, err := cfg.SearchStrategy()
	if err != nil {
		return nil, err
	}
	resolved := strategy.Resolve(g, cfg.ExhaustiveMaxNodes)
	if resolved == search.StrategyExhaustive && g.EdgeCount() > cfg.ExhaustiveMaxEdges {
		if strategy != search.StrategyAuto {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"exhaustive search over %d edges exceeds exhaustive_max_edges = %d", g.EdgeCount(), cfg.ExhaustiveMaxEdges)
		}
		logger.Debug("too many edges for exhaustive search", "edges", g.EdgeCount(), "limit", cfg.ExhaustiveMaxEdges)
		resolved = search.StrategyGenetic
	}

	searchStart := time.Now()
	srch, err := search.New(resolved, g, rt, gc, cfg.ExhaustiveMaxNodes)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "strategy %s", resolved)
	}
	var genetic *search.Genetic
	if gs, ok := srch.(*search.Genetic); ok {
		genetic = gs
		genetic.Progress = opts.Progress
	}
	logger.Debug("searching", "strategy", resolved, "edges", g.EdgeCount())
	srch.Run()
	searchTime := time.Since(searchStart)

	components := g.Views()
	res := &Result{
		Result: &io.Result{
			Sheet:     s.Name,
			Strategy:  string(resolved),
			Score:     srch.Best(),
			NodeCount: len(g.Nodes()),
			EdgeCount: g.EdgeCount(),
			Toggles:   graph.FormatToggles(g.Toggles()),
			Tables:    Tables(components),
		},
		Graph:      g,
		Components: components,
		Stats: Stats{
			BuildTime:  buildTime,
			SearchTime: searchTime,
			Rater:      rt.CacheStats(),
		},
	}
	if genetic != nil {
		res.Stats.History = genetic.History()
	}
	logger.Info("searched partitions",
		"strategy", resolved,
		"score", res.Score,
		"tables", len(res.Tables),
		"duration", searchTime)
	logger.Debug("rater cache", "hits", res.Stats.Rater.Hits, "misses", res.Stats.Rater.Misses)

	if len(s.Tables) > 0 {
		report := evaluate.Evaluate(s.Tables, res.Boxes())
		res.Evaluation = &report
		logger.Info("evaluated against ground truth",
			"correct", report.Detection.Correct,
			"precision", report.Area.Precision,
			"recall", report.Area.Recall)
	}
	return res, nil
}

// Tables converts components into result tables.
func Tables(components []*graph.Component) []io.Table {
	out := make([]io.Table, len(components))
	for i, c := range components {
		ids := make([]int, 0, len(c.Regions()))
		for _, m := range c.Regions() {
			ids = append(ids, m.ID)
		}
		out[i] = io.Table{BoundingBox: c.BoundingBox(), Regions: ids, Headers: len(c.Heads())}
	}
	return out
}

func (r *Runner) cacheKey(s *io.Sheet, opts *Options) (string, bool) {
	if _, ok := r.Cache.(*cache.NullCache); ok {
		return "", false
	}
	// Workbook sizes are not part of the document; results depending on
	// them are not cached.
	if opts.Dimensions != nil {
		return "", false
	}
	sheetHash, err := cache.HashJSON(s)
	if err != nil {
		return "", false
	}
	keyOpts, err := opts.keyOpts()
	if err != nil {
		return "", false
	}
	return r.Keyer.ResultKey(sheetHash, keyOpts), true
}

func (r *Runner) lookup(ctx context.Context, key string) (*io.Result, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	cached, err := io.ReadResultJSON(bytes.NewReader(data))
	if err != nil {
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	return cached, true
}

func (r *Runner) store(ctx context.Context, key string, res *io.Result, logger *log.Logger) {
	var buf bytes.Buffer
	if err := io.WriteJSON(&buf, res); err != nil {
		logger.Warn("encode result for cache", "error", err)
		return
	}
	if err := r.Cache.Set(ctx, key, buf.Bytes(), cache.TTLResult); err != nil {
		logger.Warn("store result in cache", "error", err)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
