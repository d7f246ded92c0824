// Package cache stores detection results between runs.
//
// Searching a large sheet with the genetic strategy takes a while, and the
// same sheet is often detected again with unchanged settings. The pipeline
// runner hashes the sheet document together with everything that affects
// the search and looks the key up here before searching.
//
// Three implementations are provided: [FileCache] for the CLI,
// [MemoryCache] for the API server and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// TTLResult is how long a detection result stays valid.
const TTLResult = 7 * 24 * time.Hour

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss.
	// Expired entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A non-positive ttl never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer derives cache keys.
type Keyer interface {
	ResultKey(sheetHash string, opts ResultKeyOpts) string
}

// ResultKeyOpts lists every setting that changes a detection result.
type ResultKeyOpts struct {
	Strategy           string    `json:"strategy"`
	ExhaustiveMaxNodes int       `json:"exhaustive_max_nodes"`
	ExhaustiveMaxEdges int       `json:"exhaustive_max_edges"`
	Weights            []float64 `json:"weights"`
	// Settings is a hash of the remaining search configuration.
	Settings string `json:"settings"`
}

// DefaultKeyer builds keys of the form "result:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ResultKey implements Keyer.
func (DefaultKeyer) ResultKey(sheetHash string, opts ResultKeyOpts) string {
	return hashKey("result", sheetHash, opts)
}
