package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sheetgraph/pkg/core/rater"
	"github.com/matzehuels/sheetgraph/pkg/core/search"
	"github.com/matzehuels/sheetgraph/pkg/errors"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	s, err := cfg.SearchStrategy()
	require.NoError(t, err)
	assert.Equal(t, search.StrategyAuto, s)
	assert.Equal(t, 10, cfg.ExhaustiveMaxNodes)
	assert.Equal(t, 20, cfg.ExhaustiveMaxEdges)
	assert.Len(t, cfg.Weights, rater.WeightCount())

	gc, err := cfg.GeneticConfig()
	require.NoError(t, err)
	assert.Equal(t, 200, gc.Generations)
	assert.Equal(t, 3, gc.TournamentSize)
	assert.Nil(t, gc.Seed)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Default().Encode(&buf))
	assert.Contains(t, buf.String(), "[genetic]")
	assert.NotContains(t, buf.String(), "seed")

	cfg, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestDecodeOverridesDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
strategy = "genetic"

[genetic]
generations = 50
mutation_bias = "short_mixed"
`))
	require.NoError(t, err)

	assert.Equal(t, "genetic", cfg.Strategy)
	assert.Equal(t, 50, cfg.Genetic.Generations)
	assert.Equal(t, 0.5, cfg.Genetic.CrossoverProbability)
	assert.Equal(t, rater.DefaultWeights(), cfg.Weights)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code errors.Code
	}{
		{"syntax", `strategy = `, errors.ErrCodeInvalidConfig},
		{"unknown key", `stratgey = "auto"`, errors.ErrCodeInvalidConfig},
		{"unknown strategy", `strategy = "annealing"`, errors.ErrCodeInvalidConfig},
		{"weight count", `weights = [1.0, 2.0]`, errors.ErrCodeInvalidWeights},
		{"probability", "[genetic]\nmutation_probability = 1.5", errors.ErrCodeInvalidConfig},
		{"probability sum", "[genetic]\nmutation_probability = 0.6\ncrossover_probability = 0.6", errors.ErrCodeInvalidConfig},
		{"bias", "[genetic]\nmutation_bias = \"long\"", errors.ErrCodeInvalidConfig},
		{"seed", "[genetic]\nseed = 42", errors.ErrCodeNotImplemented},
		{"density weights", "[density]\nenabled = true\nweights = [1.0]", errors.ErrCodeInvalidWeights},
		{"negative nodes", `exhaustive_max_nodes = -1`, errors.ErrCodeInvalidConfig},
		{"zero edges", `exhaustive_max_edges = 0`, errors.ErrCodeInvalidConfig},
		{"edges past counter", `exhaustive_max_edges = 64`, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.code), "got %v, want %s", err, tt.code)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheetgraph.toml")
	require.NoError(t, os.WriteFile(path, []byte("exhaustive_max_nodes = 12\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, cfg.ExhaustiveMaxNodes)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeFileNotFound))
}

func TestNewRater(t *testing.T) {
	cfg := Default()
	r, err := cfg.NewRater()
	require.NoError(t, err)
	assert.IsType(t, &rater.FitnessRater{}, r)

	cfg.Density.Enabled = true
	r, err = cfg.NewRater()
	require.NoError(t, err)
	assert.IsType(t, &rater.DensityRater{}, r)
	assert.Len(t, r.Weights(), rater.WeightCount()+rater.DensityWeightCount)
	assert.Len(t, cfg.Weights, rater.WeightCount())
}
