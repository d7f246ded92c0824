package search

import (
	"fmt"
	"math"
)

// Config holds the parameters of a genetic search.
type Config struct {
	// Generations is the number of reproduce/select rounds.
	Generations int
	// MutationProbability is the chance that a child is a point mutation.
	MutationProbability float64
	// CrossoverProbability is the chance that a child is a uniform crossover.
	// Children that are neither mutations nor crossovers are clones.
	CrossoverProbability float64
	// TournamentSize is the number of candidates drawn per selection round.
	TournamentSize int
	// Seed must be nil. Seeded runs are not supported.
	Seed *uint64
	// MutationBias weights edges for point mutation. Nil means uniform.
	MutationBias Bias
}

// DefaultConfig returns 200 generations, 10% point mutation, 50% crossover
// and tournaments of three.
func DefaultConfig() Config {
	return Config{
		Generations:          200,
		MutationProbability:  0.1,
		CrossoverProbability: 0.5,
		TournamentSize:       3,
	}
}

// Validate reports configuration errors wrapping [ErrInvalidConfig], or
// [ErrNotImplemented] for a non-nil Seed.
func (c Config) Validate() error {
	if c.Seed != nil {
		return fmt.Errorf("%w: fixed random seed", ErrNotImplemented)
	}
	if c.Generations < 0 {
		return fmt.Errorf("%w: generations must not be negative, got %d", ErrInvalidConfig, c.Generations)
	}
	if c.TournamentSize < 1 {
		return fmt.Errorf("%w: tournament size must be at least 1, got %d", ErrInvalidConfig, c.TournamentSize)
	}
	if err := checkProbability("mutation probability", c.MutationProbability); err != nil {
		return err
	}
	if err := checkProbability("crossover probability", c.CrossoverProbability); err != nil {
		return err
	}
	if c.MutationProbability+c.CrossoverProbability > 1 {
		return fmt.Errorf("%w: mutation and crossover probabilities sum to more than 1", ErrInvalidConfig)
	}
	return nil
}

func checkProbability(name string, p float64) error {
	if math.IsNaN(p) || p < 0 || p > 1 {
		return fmt.Errorf("%w: %s must be within [0, 1], got %v", ErrInvalidConfig, name, p)
	}
	return nil
}

// PopulationSize returns ceil(log10(edges) * 100), but at least 2. The
// population, offspring and survivor counts all use this size.
func PopulationSize(edges int) int {
	if edges < 2 {
		return 2
	}
	return max(2, int(math.Ceil(math.Log10(float64(edges))*100)))
}
