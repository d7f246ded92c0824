// Package config loads detector settings from TOML files.
//
// A config file selects the search strategy, the metric weights and the
// genetic search parameters. Every key is optional; missing keys keep the
// values of [Default]:
//
//	strategy = "auto"
//	exhaustive_max_nodes = 10
//	exhaustive_max_edges = 20
//	weights = [1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0]
//
//	[genetic]
//	generations = 200
//	mutation_probability = 0.1
//	crossover_probability = 0.5
//	tournament_size = 3
//	mutation_bias = "uniform"
//
//	[density]
//	enabled = false
//	single_table_mean = 0.5
//	multi_table_mean = 0.2
//	weights = [1.0, 1.0]
//
// Unknown keys are rejected so that typos do not silently fall back to
// defaults.
package config

import (
	stderrors "errors"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/sheetgraph/pkg/core/rater"
	"github.com/matzehuels/sheetgraph/pkg/core/search"
	"github.com/matzehuels/sheetgraph/pkg/errors"
)

// Config is the detector configuration.
type Config struct {
	Strategy           string    `toml:"strategy"`
	ExhaustiveMaxNodes int       `toml:"exhaustive_max_nodes"`
	ExhaustiveMaxEdges int       `toml:"exhaustive_max_edges"`
	Weights            []float64 `toml:"weights"`
	Genetic            Genetic   `toml:"genetic"`
	Density            Density   `toml:"density"`
}

// Genetic holds the genetic search parameters.
type Genetic struct {
	Generations          int     `toml:"generations"`
	MutationProbability  float64 `toml:"mutation_probability"`
	CrossoverProbability float64 `toml:"crossover_probability"`
	TournamentSize       int     `toml:"tournament_size"`
	MutationBias         string  `toml:"mutation_bias"`
	Seed                 *int64  `toml:"seed,omitempty"`
}

// Density configures the density-aware rater. When disabled, the plain
// weighted fitness rater is used.
type Density struct {
	Enabled         bool      `toml:"enabled"`
	SingleTableMean float64   `toml:"single_table_mean"`
	MultiTableMean  float64   `toml:"multi_table_mean"`
	Weights         []float64 `toml:"weights"`
}

// Default returns the reference configuration: automatic strategy choice,
// unit weights and the default genetic parameters.
func Default() *Config {
	gc := search.DefaultConfig()
	return &Config{
		Strategy:           string(search.StrategyAuto),
		ExhaustiveMaxNodes: search.DefaultMaxExhaustiveNodes,
		ExhaustiveMaxEdges: search.DefaultMaxExhaustiveEdges,
		Weights:            rater.DefaultWeights(),
		Genetic: Genetic{
			Generations:          gc.Generations,
			MutationProbability:  gc.MutationProbability,
			CrossoverProbability: gc.CrossoverProbability,
			TournamentSize:       gc.TournamentSize,
			MutationBias:         "uniform",
		},
		Density: Density{
			SingleTableMean: 0.5,
			MultiTableMean:  0.2,
			Weights:         []float64{1, 1},
		},
	}
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open config %s", path)
	}
	defer f.Close()
	return Decode(f)
}

// Decode reads a TOML config from r on top of [Default] and validates it.
func Decode(r io.Reader) (*Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config keys: %s", strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode config")
	}
	return nil
}

// Validate checks every section of the config.
func (c *Config) Validate() error {
	if _, err := c.SearchStrategy(); err != nil {
		return err
	}
	if c.ExhaustiveMaxNodes < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "exhaustive_max_nodes must not be negative")
	}
	if c.ExhaustiveMaxEdges < 1 || c.ExhaustiveMaxEdges > search.MaxExhaustiveEdges {
		return errors.New(errors.ErrCodeInvalidConfig, "exhaustive_max_edges must be between 1 and %d", search.MaxExhaustiveEdges)
	}
	if err := errors.ValidateWeights(c.Weights, rater.WeightCount()); err != nil {
		return err
	}
	if _, err := c.GeneticConfig(); err != nil {
		return err
	}
	if c.Density.Enabled {
		if err := errors.ValidateWeights(c.Density.Weights, rater.DensityWeightCount); err != nil {
			return err
		}
		if err := errors.ValidateProbability("density.single_table_mean", c.Density.SingleTableMean); err != nil {
			return err
		}
		if err := errors.ValidateProbability("density.multi_table_mean", c.Density.MultiTableMean); err != nil {
			return err
		}
	}
	return nil
}

// SearchStrategy parses the configured strategy.
func (c *Config) SearchStrategy() (search.Strategy, error) {
	s, err := search.ParseStrategy(c.Strategy)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "strategy")
	}
	return s, nil
}

// GeneticConfig converts the [genetic] section into a search configuration.
// A configured seed is reported with [errors.ErrCodeNotImplemented].
func (c *Config) GeneticConfig() (search.Config, error) {
	bias, err := search.BiasByName(c.Genetic.MutationBias)
	if err != nil {
		return search.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "genetic.mutation_bias")
	}
	sc := search.Config{
		Generations:          c.Genetic.Generations,
		MutationProbability:  c.Genetic.MutationProbability,
		CrossoverProbability: c.Genetic.CrossoverProbability,
		TournamentSize:       c.Genetic.TournamentSize,
		MutationBias:         bias,
	}
	if c.Genetic.Seed != nil {
		seed := uint64(*c.Genetic.Seed)
		sc.Seed = &seed
	}
	if err := sc.Validate(); err != nil {
		if stderrors.Is(err, search.ErrNotImplemented) {
			return search.Config{}, errors.Wrap(errors.ErrCodeNotImplemented, err, "genetic")
		}
		return search.Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "genetic")
	}
	return sc, nil
}

// NewRater builds the rater the config describes.
func (c *Config) NewRater() (rater.CachingRater, error) {
	if !c.Density.Enabled {
		r, err := rater.New(c.Weights)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidWeights, err, "weights")
		}
		return r, nil
	}
	weights := append(append([]float64{}, c.Weights...), c.Density.Weights...)
	r, err := rater.NewDensity(weights, c.Density.SingleTableMean, c.Density.MultiTableMean)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidWeights, err, "weights")
	}
	return r, nil
}
