package graph

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/sheetgraph/pkg/core/region"
	"github.com/matzehuels/sheetgraph/pkg/core/sheet"
)

var (
	// ErrDuplicateRegionID is returned by [New] when two regions share an id.
	ErrDuplicateRegionID = errors.New("duplicate region ID")

	// ErrToggleLength is returned when a toggle vector does not have exactly
	// one entry per edge.
	ErrToggleLength = errors.New("toggle vector length does not match edge count")
)

// Option configures a Graph during construction.
type Option func(*options)

type options struct {
	id     string
	tables []region.BoundingBox
}

// WithID sets the sheet identity used to key rater caches. Graphs built
// from the same sheet may share an id; graphs of different sheets must not.
func WithID(id string) Option {
	return func(o *options) { o.id = id }
}

// WithTables initializes the toggle vector from known table definitions
// using [Graph.TogglesFromTables]. Without it every edge starts enabled.
func WithTables(tables []region.BoundingBox) Option {
	return func(o *options) { o.tables = tables }
}

// Graph is the region graph of one worksheet.
//
// Nodes and edges are fixed at construction. The toggle vector is the only
// mutable state and always has exactly one entry per edge.
//
// The zero value is not usable - use New.
type Graph struct {
	id       string
	nodes    []region.LabelRegion
	position map[int]int // region id -> index into nodes
	edges    []Edge
	toggles  []bool
	incident [][]int // node index -> edge indices
	dims     sheet.Dimensions
}

// New validates the regions and builds their graph. A nil dims falls back to
// [sheet.NewStatic] defaults. Region order is preserved and determines the
// order of components.
func New(regions []region.LabelRegion, dims sheet.Dimensions, opts ...Option) (*Graph, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if o.id == "" {
		o.id = uuid.NewString()
	}
	if dims == nil {
		dims = sheet.NewStatic()
	}

	g := &Graph{
		id:       o.id,
		nodes:    slices.Clone(regions),
		position: make(map[int]int, len(regions)),
		dims:     dims,
	}
	for i, r := range g.nodes {
		if err := r.Validate(); err != nil {
			return nil, fmt.Errorf("region %d: %w", r.ID, err)
		}
		if _, dup := g.position[r.ID]; dup {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateRegionID, r.ID)
		}
		g.position[r.ID] = i
	}

	g.edges = buildEdges(g.nodes)
	g.incident = make([][]int, len(g.nodes))
	for i, e := range g.edges {
		s, d := g.position[e.Source.ID], g.position[e.Destination.ID]
		g.incident[s] = append(g.incident[s], i)
		g.incident[d] = append(g.incident[d], i)
	}

	if o.tables != nil {
		g.toggles = g.TogglesFromTables(o.tables)
	} else {
		g.toggles = make([]bool, len(g.edges))
		g.EnableAll()
	}
	return g, nil
}

type pair struct{ lo, hi int }

func pairOf(a, b int) pair {
	if a > b {
		a, b = b, a
	}
	return pair{a, b}
}

// buildEdges runs the vertical sweep (regions by top row, shared columns)
// followed by the horizontal sweep (regions by left column, shared rows).
// Every index of a later region that overlaps a source is removed from the
// source's remaining set, so one index aligns at most one pair per source.
func buildEdges(nodes []region.LabelRegion) []Edge {
	seen := make(map[pair]struct{})
	var edges []Edge

	sweep := func(alignment AlignmentType, cmp func(a, b region.LabelRegion) int, span func(region.LabelRegion) (int, int)) {
		sorted := slices.Clone(nodes)
		slices.SortStableFunc(sorted, cmp)

		for i, src := range sorted {
			lo, hi := span(src)
			remaining := []region.Span{{Lo: lo, Hi: hi}}
			for _, dst := range sorted[i+1:] {
				if len(remaining) == 0 {
					break
				}
				dlo, dhi := span(dst)
				var shared []region.Span
				remaining, shared = take(remaining, dlo, dhi)
				if len(shared) == 0 {
					continue
				}
				p := pairOf(src.ID, dst.ID)
				if _, dup := seen[p]; dup {
					continue
				}
				seen[p] = struct{}{}
				edges = append(edges, newEdge(src, dst, shared, alignment))
			}
		}
	}

	sweep(Vertical,
		func(a, b region.LabelRegion) int { return a.Top - b.Top },
		func(r region.LabelRegion) (int, int) { return r.Left, r.Right })
	sweep(Horizontal,
		func(a, b region.LabelRegion) int { return a.Left - b.Left },
		func(r region.LabelRegion) (int, int) { return r.Top, r.Bottom })
	return edges
}

// ID returns the sheet identity of the graph.
func (g *Graph) ID() string { return g.id }

// Dimensions returns the column width and row height source of the sheet.
func (g *Graph) Dimensions() sheet.Dimensions { return g.dims }

// Nodes returns the regions of the graph in construction order.
// The returned slice must not be modified.
func (g *Graph) Nodes() []region.LabelRegion { return g.nodes }

// Node returns the region with the given id.
func (g *Graph) Node(id int) (region.LabelRegion, bool) {
	i, ok := g.position[id]
	if !ok {
		return region.LabelRegion{}, false
	}
	return g.nodes[i], true
}

// Edges returns the fixed edge list. The returned slice must not be modified.
func (g *Graph) Edges() []Edge { return g.edges }

// EdgeCount returns the number of edges, which is also the toggle vector length.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Toggles returns a copy of the current toggle vector.
func (g *Graph) Toggles() []bool { return slices.Clone(g.toggles) }

// SetToggles installs a copy of v as the current toggle vector.
func (g *Graph) SetToggles(v []bool) error {
	if len(v) != len(g.edges) {
		return fmt.Errorf("%w: got %d, want %d", ErrToggleLength, len(v), len(g.edges))
	}
	copy(g.toggles, v)
	return nil
}

// EnableAll enables every edge, so each component is a set of regions
// reachable through alignment.
func (g *Graph) EnableAll() {
	for i := range g.toggles {
		g.toggles[i] = true
	}
}

// WithToggles installs v, runs fn and restores the previous toggle vector
// before returning, also when fn panics.
func (g *Graph) WithToggles(v []bool, fn func()) error {
	if len(v) != len(g.edges) {
		return fmt.Errorf("%w: got %d, want %d", ErrToggleLength, len(v), len(g.edges))
	}
	saved := g.toggles
	g.toggles = slices.Clone(v)
	defer func() { g.toggles = saved }()
	fn()
	return nil
}

// EnabledEdges returns the edges whose toggle is set.
func (g *Graph) EnabledEdges() []Edge { return g.filterEdges(true) }

// DisabledEdges returns the edges whose toggle is cleared.
func (g *Graph) DisabledEdges() []Edge { return g.filterEdges(false) }

func (g *Graph) filterEdges(enabled bool) []Edge {
	var out []Edge
	for i, e := range g.edges {
		if g.toggles[i] == enabled {
			out = append(out, e)
		}
	}
	return out
}

// IncidentEdges returns all edges touching the region, enabled or not.
func (g *Graph) IncidentEdges(id int) []Edge {
	i, ok := g.position[id]
	if !ok {
		return nil
	}
	out := make([]Edge, len(g.incident[i]))
	for k, ei := range g.incident[i] {
		out[k] = g.edges[ei]
	}
	return out
}

// EdgeBetween returns the edge joining two regions, if any.
func (g *Graph) EdgeBetween(a, b int) (Edge, bool) {
	i, ok := g.position[a]
	if !ok {
		return Edge{}, false
	}
	for _, ei := range g.incident[i] {
		if g.edges[ei].Connects(a, b) {
			return g.edges[ei], true
		}
	}
	return Edge{}, false
}

// Neighbours returns the regions sharing an edge with the given region,
// regardless of toggles, in edge order.
func (g *Graph) Neighbours(id int) []region.LabelRegion {
	i, ok := g.position[id]
	if !ok {
		return nil
	}
	out := make([]region.LabelRegion, 0, len(g.incident[i]))
	for _, ei := range g.incident[i] {
		out = append(out, g.edges[ei].Other(id))
	}
	return out
}

// TogglesFromTables derives a toggle vector from known table definitions.
// Each region belongs to the last table it intersects; regions outside
// every table form a group of their own. Edges joining different groups are
// disabled, all others enabled.
//
// A table with three regions may be reachable through two or three edges;
// the derived vector keeps every edge inside a table enabled.
func (g *Graph) TogglesFromTables(tables []region.BoundingBox) []bool {
	group := make(map[int]int, len(g.nodes))
	for i, n := range g.nodes {
		group[n.ID] = -(i + 1)
		for t, td := range tables {
			if n.Intersects(td) {
				group[n.ID] = t
			}
		}
	}

	out := make([]bool, len(g.edges))
	for i, e := range g.edges {
		out[i] = group[e.Source.ID] == group[e.Destination.ID]
	}
	return out
}

// Components partitions the regions into connected components over the
// enabled edges. Components are ordered by their first region in node
// order; members appear in breadth-first discovery order. Every region
// appears in exactly one component.
func (g *Graph) Components() [][]region.LabelRegion {
	adj := make([][]int, len(g.nodes))
	for i, e := range g.edges {
		if !g.toggles[i] {
			continue
		}
		s, d := g.position[e.Source.ID], g.position[e.Destination.ID]
		adj[s] = append(adj[s], d)
		adj[d] = append(adj[d], s)
	}

	visited := make([]bool, len(g.nodes))
	var components [][]region.LabelRegion
	for start := range g.nodes {
		if visited[start] {
			continue
		}
		visited[start] = true
		component := []region.LabelRegion{g.nodes[start]}
		queue := []int{start}
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			for _, next := range adj[cur] {
				if visited[next] {
					continue
				}
				visited[next] = true
				component = append(component, g.nodes[next])
				queue = append(queue, next)
			}
		}
		components = append(components, component)
	}
	return components
}

// Views wraps every component of the current partition in a Component.
func (g *Graph) Views() []*Component {
	components := g.Components()
	out := make([]*Component, len(components))
	for i, c := range components {
		out[i] = NewComponent(g, c)
	}
	return out
}

// TableDefinitions returns one merged bounding box per component.
func (g *Graph) TableDefinitions() []region.BoundingBox {
	components := g.Components()
	out := make([]region.BoundingBox, len(components))
	for i, c := range components {
		out[i] = region.Merge(region.Boxes(c)...)
	}
	return out
}

// FormatToggles renders a toggle vector as a bit string, e.g. "1011".
func FormatToggles(v []bool) string {
	var b strings.Builder
	b.Grow(len(v))
	for _, on := range v {
		if on {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

// ParseToggles reads a bit string written by [FormatToggles].
func ParseToggles(s string) ([]bool, error) {
	v := make([]bool, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '1':
			v[i] = true
		case '0':
		default:
			return nil, fmt.Errorf("invalid toggle %q at position %d", s[i], i)
		}
	}
	return v, nil
}
