package search

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/matzehuels/sheetgraph/pkg/core/graph"
	"github.com/matzehuels/sheetgraph/pkg/core/rater"
	"github.com/matzehuels/sheetgraph/pkg/observability"
)

// Genetic evolves toggle vectors with point mutation, uniform crossover and
// cloning, selecting survivors by tournament. The best vector ever rated is
// kept in a hall of fame independent of the live population, so the result
// never gets worse than any earlier generation.
//
// Genetic is not safe for concurrent use.
type Genetic struct {
	graph  *graph.Graph
	rater  rater.Rater
	cfg    Config
	picker bitPicker
	rng    *rand.Rand

	// Progress, if set, is called after every generation with the
	// generation index and the hall-of-fame rating.
	Progress func(generation int, best float64)

	best    float64
	history []float64
}

type individual struct {
	genome []bool
	score  float64
}

// NewGenetic validates cfg and returns a genetic search over g.
func NewGenetic(g *graph.Graph, r rater.Rater, cfg Config) (*Genetic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Genetic{
		graph:  g,
		rater:  r,
		cfg:    cfg,
		picker: newBitPicker(g.Edges(), cfg.MutationBias),
		rng:    rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}, nil
}

// Best returns the hall-of-fame rating after Run.
func (s *Genetic) Best() float64 { return s.best }

// History returns the hall-of-fame rating after each generation.
func (s *Genetic) History() []float64 { return slices.Clone(s.history) }

// Run evolves the population for the configured number of generations and
// installs the hall-of-fame vector. A graph without edges has a single
// partition, which is rated and returned immediately.
func (s *Genetic) Run() *graph.Graph {
	n := s.graph.EdgeCount()
	start := time.Now()
	hooks := observability.Search()
	hooks.OnSearchStart(string(StrategyGenetic), n)
	s.history = s.history[:0]

	if n == 0 {
		s.best = s.rater.Rate(s.graph, []bool{})
		hooks.OnSearchComplete(string(StrategyGenetic), s.best, time.Since(start))
		return s.graph
	}

	size := PopulationSize(n)
	pop := make([]individual, size)
	for i := range pop {
		pop[i] = s.rate(s.randomGenome(n))
	}
	hof := pop[0]
	for _, ind := range pop[1:] {
		if ind.score < hof.score {
			hof = ind
		}
	}
	hof.genome = slices.Clone(hof.genome)

	for gen := 0; gen < s.cfg.Generations; gen++ {
		children := make([]individual, size)
		for i := range children {
			children[i] = s.rate(s.child(pop))
		}
		for _, c := range children {
			if c.score < hof.score {
				hof = individual{genome: slices.Clone(c.genome), score: c.score}
			}
		}
		pop = s.selectSurvivors(append(pop, children...), size)

		s.history = append(s.history, hof.score)
		hooks.OnGeneration(gen, hof.score)
		if s.Progress != nil {
			s.Progress(gen, hof.score)
		}
	}

	s.best = hof.score
	_ = s.graph.SetToggles(hof.genome)
	hooks.OnSearchComplete(string(StrategyGenetic), s.best, time.Since(start))
	return s.graph
}

func (s *Genetic) rate(genome []bool) individual {
	return individual{genome: genome, score: s.rater.Rate(s.graph, genome)}
}

func (s *Genetic) randomGenome(n int) []bool {
	g := make([]bool, n)
	for i := range g {
		g[i] = s.rng.IntN(2) == 1
	}
	return g
}

// child produces one offspring genome. The population is never modified.
func (s *Genetic) child(pop []individual) []bool {
	p := s.rng.Float64()
	switch {
	case p < s.cfg.MutationProbability:
		return s.mutate(pop[s.rng.IntN(len(pop))].genome)
	case p < s.cfg.MutationProbability+s.cfg.CrossoverProbability && len(pop) > 1:
		i := s.rng.IntN(len(pop))
		j := s.rng.IntN(len(pop) - 1)
		if j >= i {
			j++
		}
		return s.crossover(pop[i].genome, pop[j].genome)
	default:
		return slices.Clone(pop[s.rng.IntN(len(pop))].genome)
	}
}

// mutate flips one bit of a copy of parent, drawn by mutation bias.
func (s *Genetic) mutate(parent []bool) []bool {
	child := slices.Clone(parent)
	bit := s.picker.pick(s.rng.IntN(s.picker.total()))
	child[bit] = !child[bit]
	return child
}

// crossover takes every bit from either parent with equal probability.
func (s *Genetic) crossover(a, b []bool) []bool {
	child := make([]bool, len(a))
	for i := range child {
		if s.rng.IntN(2) == 0 {
			child[i] = a[i]
		} else {
			child[i] = b[i]
		}
	}
	return child
}

// selectSurvivors runs tournaments over the pool until n survivors are
// chosen. Each tournament samples TournamentSize distinct participants and
// removes only the winner from the pool. When fewer participants remain
// than a tournament needs, a random participant survives.
func (s *Genetic) selectSurvivors(pool []individual, n int) []individual {
	survivors := make([]individual, 0, n)
	k := s.cfg.TournamentSize
	for len(survivors) < n && len(pool) > 0 {
		var winner int
		if len(pool) < k {
			winner = s.rng.IntN(len(pool))
		} else {
			winner = -1
			for _, idx := range s.sample(len(pool), k) {
				if winner < 0 || pool[idx].score < pool[winner].score {
					winner = idx
				}
			}
		}
		survivors = append(survivors, pool[winner])
		pool = slices.Delete(pool, winner, winner+1)
	}
	return survivors
}

// sample draws k distinct indices from [0, n).
func (s *Genetic) sample(n, k int) []int {
	out := make([]int, 0, k)
	for len(out) < k {
		idx := s.rng.IntN(n)
		if !slices.Contains(out, idx) {
			out = append(out, idx)
		}
	}
	return out
}
