package search

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sheetgraph/pkg/core/graph"
	"github.com/matzehuels/sheetgraph/pkg/core/rater"
	"github.com/matzehuels/sheetgraph/pkg/core/region"
)

// countRater rates a vector by its number of enabled edges.
type countRater struct{ calls int }

func (r *countRater) Rate(_ *graph.Graph, toggles []bool) float64 {
	r.calls++
	n := 0
	for _, on := range toggles {
		if on {
			n++
		}
	}
	return float64(n)
}

// stack builds a header over n-1 data rows sharing three columns, which
// yields n-1 edges.
func stack(t *testing.T, n int) *graph.Graph {
	t.Helper()
	regions := []region.LabelRegion{region.NewLabelRegion(1, region.Header, 1, 1, 1, 3)}
	for i := 2; i <= n; i++ {
		regions = append(regions, region.NewLabelRegion(i, region.Data, i, 1, i, 3))
	}
	g, err := graph.New(regions, nil)
	require.NoError(t, err)
	require.Equal(t, n-1, g.EdgeCount())
	return g
}

func grid(t *testing.T) *graph.Graph {
	t.Helper()
	g, err := graph.New([]region.LabelRegion{
		region.NewLabelRegion(1, region.Header, 1, 1, 1, 2),
		region.NewLabelRegion(2, region.Header, 1, 4, 1, 5),
		region.NewLabelRegion(3, region.Data, 2, 1, 3, 2),
		region.NewLabelRegion(4, region.Data, 2, 4, 3, 5),
		region.NewLabelRegion(5, region.Data, 5, 1, 6, 5),
	}, nil)
	require.NoError(t, err)
	return g
}

func fitness(t *testing.T) *rater.FitnessRater {
	t.Helper()
	r, err := rater.New(rater.DefaultWeights())
	require.NoError(t, err)
	return r
}

// bruteForce enumerates vectors recursively in lexicographic order with
// false before true and returns the first minimum.
func bruteForce(g *graph.Graph, r rater.Rater) ([]bool, float64) {
	var (
		best      []bool
		bestScore float64
		walk      func(prefix []bool)
	)
	walk = func(prefix []bool) {
		if len(prefix) == g.EdgeCount() {
			score := r.Rate(g, prefix)
			if best == nil || score < bestScore {
				best = append([]bool(nil), prefix...)
				bestScore = score
			}
			return
		}
		walk(append(prefix, false))
		walk(append(prefix, true))
	}
	walk(make([]bool, 0, g.EdgeCount()))
	return best, bestScore
}

func TestExhaustiveMatchesBruteForce(t *testing.T) {
	g := stack(t, 4)
	r := fitness(t)

	wantVec, wantScore := bruteForce(g, r)

	s := NewExhaustive(g, r)
	out := s.Run()
	assert.Same(t, g, out)
	assert.Equal(t, wantScore, s.Best())
	assert.Equal(t, wantVec, g.Toggles())
	assert.Equal(t, s.Best(), r.Rate(g, g.Toggles()))
}

func TestExhaustiveCountRater(t *testing.T) {
	g := stack(t, 4)
	r := &countRater{}

	s := NewExhaustive(g, r)
	s.Run()

	assert.Equal(t, 8, r.calls)
	assert.Equal(t, []bool{false, false, false}, g.Toggles())
	assert.Zero(t, s.Best())
}

func TestExhaustiveOnGrid(t *testing.T) {
	g := grid(t)
	r := fitness(t)
	_, want := bruteForce(g, r)

	s := NewExhaustive(g, r)
	s.Run()
	assert.Equal(t, want, s.Best())
}

func TestNewGeneticRejectsSeed(t *testing.T) {
	seed := uint64(42)
	cfg := DefaultConfig()
	cfg.Seed = &seed

	_, err := NewGenetic(stack(t, 4), &countRater{}, cfg)
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		ok     bool
	}{
		{"default", func(*Config) {}, true},
		{"zero generations", func(c *Config) { c.Generations = 0 }, true},
		{"negative generations", func(c *Config) { c.Generations = -1 }, false},
		{"zero tournament", func(c *Config) { c.TournamentSize = 0 }, false},
		{"mutation above one", func(c *Config) { c.MutationProbability = 1.5 }, false},
		{"negative crossover", func(c *Config) { c.CrossoverProbability = -0.1 }, false},
		{"sum above one", func(c *Config) { c.MutationProbability, c.CrossoverProbability = 0.6, 0.6 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestPopulationSize(t *testing.T) {
	assert.Equal(t, 2, PopulationSize(0))
	assert.Equal(t, 2, PopulationSize(1))
	assert.Equal(t, 31, PopulationSize(2))
	assert.Equal(t, 105, PopulationSize(11))
	assert.Equal(t, 170, PopulationSize(50))
}

func TestGeneticHallOfFame(t *testing.T) {
	g := stack(t, 12)
	r := &countRater{}
	cfg := DefaultConfig()
	cfg.Generations = 25

	s, err := NewGenetic(g, r, cfg)
	require.NoError(t, err)
	s.rng = rand.New(rand.NewPCG(1, 2))

	var progress []int
	s.Progress = func(gen int, _ float64) { progress = append(progress, gen) }

	out := s.Run()
	assert.Same(t, g, out)

	history := s.History()
	require.Len(t, history, cfg.Generations)
	for i := 1; i < len(history); i++ {
		assert.LessOrEqual(t, history[i], history[i-1])
	}
	assert.Equal(t, history[len(history)-1], s.Best())
	assert.Equal(t, s.Best(), r.Rate(g, g.Toggles()))
	assert.Len(t, progress, cfg.Generations)
	assert.Equal(t, 0, progress[0])
}

func TestGeneticWithFitnessRater(t *testing.T) {
	g := grid(t)
	r := fitness(t)
	cfg := DefaultConfig()
	cfg.Generations = 10
	cfg.MutationBias = ShortMixedBias

	s, err := NewGenetic(g, r, cfg)
	require.NoError(t, err)
	s.Run()

	assert.Equal(t, s.Best(), r.Rate(g, g.Toggles()))
	_, optimum := bruteForce(g, r)
	assert.GreaterOrEqual(t, s.Best(), optimum)
}

func TestGeneticWithoutEdges(t *testing.T) {
	g, err := graph.New([]region.LabelRegion{
		region.NewLabelRegion(1, region.Data, 1, 1, 1, 1),
		region.NewLabelRegion(2, region.Data, 3, 3, 3, 3),
	}, nil)
	require.NoError(t, err)

	r := &countRater{}
	s, err := NewGenetic(g, r, DefaultConfig())
	require.NoError(t, err)
	s.Run()

	assert.Equal(t, 1, r.calls)
	assert.Empty(t, s.History())
	assert.Zero(t, s.Best())
}

func TestMutateCopiesParent(t *testing.T) {
	s, err := NewGenetic(stack(t, 5), &countRater{}, DefaultConfig())
	require.NoError(t, err)
	s.rng = rand.New(rand.NewPCG(3, 4))

	parent := []bool{true, false, true, false}
	for range 20 {
		child := s.mutate(parent)
		assert.Equal(t, []bool{true, false, true, false}, parent)

		diff := 0
		for i := range child {
			if child[i] != parent[i] {
				diff++
			}
		}
		assert.Equal(t, 1, diff)
	}
}

func TestChildLeavesPopulationUntouched(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MutationProbability, cfg.CrossoverProbability = 0.5, 0.5
	s, err := NewGenetic(stack(t, 5), &countRater{}, cfg)
	require.NoError(t, err)
	s.rng = rand.New(rand.NewPCG(5, 6))

	pop := []individual{
		{genome: []bool{true, true, true, true}},
		{genome: []bool{false, false, false, false}},
	}
	for range 50 {
		child := s.child(pop)
		assert.Len(t, child, 4)
	}
	assert.Equal(t, []bool{true, true, true, true}, pop[0].genome)
	assert.Equal(t, []bool{false, false, false, false}, pop[1].genome)
}

func TestSelectSurvivors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TournamentSize = 3
	s, err := NewGenetic(stack(t, 3), &countRater{}, cfg)
	require.NoError(t, err)
	s.rng = rand.New(rand.NewPCG(7, 8))

	pool := make([]individual, 8)
	for i := range pool {
		pool[i] = individual{score: float64(i)}
	}
	survivors := s.selectSurvivors(pool, 4)
	require.Len(t, survivors, 4)

	seen := map[float64]bool{}
	for _, sv := range survivors {
		assert.False(t, seen[sv.score], "individual selected twice")
		seen[sv.score] = true
	}
	// The two worst individuals can never win a tournament of three.
	assert.False(t, seen[7])

	// With fewer participants than a tournament needs, everyone survives.
	cfg.TournamentSize = 5
	s.cfg = cfg
	small := []individual{{score: 1}, {score: 2}, {score: 3}}
	assert.ElementsMatch(t, small, s.selectSurvivors(append([]individual(nil), small...), 3))
}

func TestBiases(t *testing.T) {
	dh := graph.Edge{Connection: graph.DataHeader, Length: 1}
	dd := graph.Edge{Connection: graph.DataData, Length: 3}
	hhShort := graph.Edge{Connection: graph.HeaderHeader, Length: 0}

	assert.Equal(t, 1, UniformBias(dh))
	assert.Equal(t, 3, ShortMixedBias(dh))
	assert.Equal(t, 1, ShortMixedBias(dd))
	assert.Equal(t, 2, ShortMixedBias(hhShort))
	assert.Equal(t, 41, ExtremeShortMixedBias(dh))
	assert.Equal(t, 21, ExtremeShortMixedBias(hhShort))

	b, err := BiasByName("")
	require.NoError(t, err)
	assert.Equal(t, 1, b(dh))
	_, err = BiasByName("nope")
	assert.ErrorIs(t, err, ErrUnknownBias)
	assert.Equal(t, []string{"extreme_short_mixed", "short_mixed", "uniform"}, BiasNames())
}

func TestBitPicker(t *testing.T) {
	edges := []graph.Edge{{}, {}, {}}
	weights := []int{2, 0, 3}
	i := 0
	p := newBitPicker(edges, func(graph.Edge) int { w := weights[i]; i++; return w })

	assert.Equal(t, 5, p.total())
	got := make([]int, p.total())
	for r := range got {
		got[r] = p.pick(r)
	}
	assert.Equal(t, []int{0, 0, 2, 2, 2}, got)

	zero := newBitPicker(edges, func(graph.Edge) int { return -1 })
	assert.Equal(t, 3, zero.total())
	assert.Equal(t, 1, zero.pick(1))
}

func TestStrategies(t *testing.T) {
	s, err := ParseStrategy(" Genetic ")
	require.NoError(t, err)
	assert.Equal(t, StrategyGenetic, s)
	s, err = ParseStrategy("")
	require.NoError(t, err)
	assert.Equal(t, StrategyAuto, s)
	_, err = ParseStrategy("annealing")
	assert.ErrorIs(t, err, ErrUnknownStrategy)

	g := grid(t)
	assert.Equal(t, StrategyExhaustive, StrategyAuto.Resolve(g, 0))
	assert.Equal(t, StrategyGenetic, StrategyAuto.Resolve(g, 4))
	assert.Equal(t, StrategyExhaustive, StrategyExhaustive.Resolve(g, 1))

	search, err := Choose(g, &countRater{}, DefaultConfig(), 4)
	require.NoError(t, err)
	assert.IsType(t, &Genetic{}, search)

	search, err = New(StrategyExhaustive, g, &countRater{}, DefaultConfig(), 0)
	require.NoError(t, err)
	assert.IsType(t, &Exhaustive{}, search)
}

func TestNewRejectsLargeExhaustive(t *testing.T) {
	g := stack(t, MaxExhaustiveEdges+2)
	_, err := New(StrategyExhaustive, g, &countRater{}, DefaultConfig(), 0)
	assert.ErrorIs(t, err, ErrTooManyEdges)
	assert.Panics(t, func() { NewExhaustive(g, &countRater{}).Run() })
}
