package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/sheetgraph/pkg/core/region"
)

func header(id, top, left, bottom, right int) region.LabelRegion {
	return region.NewLabelRegion(id, region.Header, top, left, bottom, right)
}

func data(id, top, left, bottom, right int) region.LabelRegion {
	return region.NewLabelRegion(id, region.Data, top, left, bottom, right)
}

// grid is two header/data tables side by side:
//
//	H1 H2
//	D3 D4
func grid() []region.LabelRegion {
	return []region.LabelRegion{
		header(1, 1, 1, 1, 2),
		header(2, 1, 3, 1, 4),
		data(3, 2, 1, 3, 2),
		data(4, 2, 3, 3, 4),
	}
}

func mustGraph(t *testing.T, regions []region.LabelRegion, opts ...Option) *Graph {
	t.Helper()
	g, err := New(regions, nil, opts...)
	require.NoError(t, err)
	return g
}

func edgeNames(g *Graph) []string {
	var out []string
	for _, e := range g.Edges() {
		out = append(out, e.String())
	}
	return out
}

func TestNewRejectsInvalidRegions(t *testing.T) {
	_, err := New([]region.LabelRegion{header(1, 1, 1, 1, 1), data(1, 2, 1, 2, 1)}, nil)
	assert.ErrorIs(t, err, ErrDuplicateRegionID)

	_, err = New([]region.LabelRegion{data(1, 3, 1, 2, 1)}, nil)
	assert.ErrorIs(t, err, region.ErrInvalidBounds)
}

func TestNewAssignsIdentity(t *testing.T) {
	a := mustGraph(t, grid())
	b := mustGraph(t, grid())
	assert.NotEmpty(t, a.ID())
	assert.NotEqual(t, a.ID(), b.ID())

	c := mustGraph(t, grid(), WithID("sheet-1"))
	assert.Equal(t, "sheet-1", c.ID())
	assert.NotNil(t, c.Dimensions())
}

func TestEdgesIndexConsumption(t *testing.T) {
	g := mustGraph(t, []region.LabelRegion{
		data(1, 1, 1, 1, 3),
		data(2, 2, 1, 2, 3),
		data(3, 3, 1, 3, 3),
	})

	assert.Equal(t, []string{"E-D1-D2", "E-D2-D3"}, edgeNames(g))
	_, ok := g.EdgeBetween(1, 3)
	assert.False(t, ok)

	e, ok := g.EdgeBetween(2, 1)
	require.True(t, ok)
	assert.Equal(t, Vertical, e.Alignment)
	assert.Equal(t, []region.Span{{Lo: 1, Hi: 3}}, e.Aligned)
	assert.Equal(t, DataData, e.Connection)
	assert.Equal(t, 1, e.Length)
}

func TestEdgesHeaderOverStackedData(t *testing.T) {
	g := mustGraph(t, []region.LabelRegion{
		header(1, 1, 1, 1, 3),
		data(2, 2, 1, 2, 3),
		data(3, 3, 1, 3, 3),
		data(4, 4, 1, 4, 3),
	})

	assert.Equal(t, []string{"E-H1-D2", "E-D2-D3", "E-D3-D4"}, edgeNames(g))
	assert.Equal(t, DataHeader, g.Edges()[0].Connection)
}

func TestEdgesDisjointRegions(t *testing.T) {
	g := mustGraph(t, []region.LabelRegion{
		header(1, 1, 1, 1, 1),
		data(2, 2, 2, 2, 2),
		header(3, 4, 4, 4, 4),
		data(4, 5, 5, 6, 6),
	})

	assert.Zero(t, g.EdgeCount())
	components := g.Components()
	assert.Len(t, components, 4)
	for _, c := range components {
		assert.Len(t, c, 1)
	}
}

func TestEdgesGrid(t *testing.T) {
	g := mustGraph(t, grid())

	assert.Equal(t, []string{"E-H1-D3", "E-H2-D4", "E-H1-H2", "E-D3-D4"}, edgeNames(g))
	assert.Equal(t, Horizontal, g.Edges()[2].Alignment)
	assert.Equal(t, HeaderHeader, g.Edges()[2].Connection)
	assert.Equal(t, []region.Span{{Lo: 1, Hi: 1}}, g.Edges()[2].Aligned)
	assert.Equal(t, []region.Span{{Lo: 2, Hi: 3}}, g.Edges()[3].Aligned)
}

func TestEdgesUniquePairs(t *testing.T) {
	regions := []region.LabelRegion{
		header(1, 1, 1, 1, 4),
		header(2, 1, 5, 2, 6),
		data(3, 2, 1, 5, 2),
		data(4, 2, 3, 5, 4),
		data(5, 3, 5, 5, 6),
		data(6, 7, 1, 8, 6),
		header(7, 6, 2, 6, 3),
	}
	g := mustGraph(t, regions)

	seen := map[pair]bool{}
	for _, e := range g.Edges() {
		assert.NotEqual(t, e.Source.ID, e.Destination.ID)
		p := pairOf(e.Source.ID, e.Destination.ID)
		assert.False(t, seen[p], "duplicate edge %s", e)
		seen[p] = true
	}
}

func TestComponentsTogglesExtremes(t *testing.T) {
	g := mustGraph(t, grid())

	all := g.Components()
	require.Len(t, all, 1)
	assert.Len(t, all[0], 4)

	require.NoError(t, g.SetToggles(make([]bool, g.EdgeCount())))
	none := g.Components()
	require.Len(t, none, 4)
	total := 0
	for _, c := range none {
		total += len(c)
	}
	assert.Equal(t, len(g.Nodes()), total)

	assert.Equal(t, none, g.Components())
}

func TestSetTogglesLength(t *testing.T) {
	g := mustGraph(t, grid())
	assert.ErrorIs(t, g.SetToggles([]bool{true}), ErrToggleLength)
	assert.ErrorIs(t, g.WithToggles(nil, func() {}), ErrToggleLength)
}

func TestWithTogglesRestores(t *testing.T) {
	g := mustGraph(t, grid())
	before := g.Toggles()

	var inside int
	err := g.WithToggles([]bool{false, false, false, false}, func() {
		inside = len(g.Components())
	})
	require.NoError(t, err)
	assert.Equal(t, 4, inside)
	assert.Equal(t, before, g.Toggles())

	assert.Panics(t, func() {
		_ = g.WithToggles([]bool{true, false, true, false}, func() { panic("boom") })
	})
	assert.Equal(t, before, g.Toggles())
}

func TestTogglesFromTables(t *testing.T) {
	tables := []region.BoundingBox{region.Box(1, 1, 3, 2), region.Box(1, 3, 3, 4)}
	g := mustGraph(t, grid(), WithTables(tables))

	assert.Equal(t, []bool{true, true, false, false}, g.Toggles())
	assert.Equal(t, tables, g.TableDefinitions())
	assert.Len(t, g.EnabledEdges(), 2)
	assert.Len(t, g.DisabledEdges(), 2)
}

func TestTogglesFromTablesUnmatchedRegion(t *testing.T) {
	g := mustGraph(t, grid())
	toggles := g.TogglesFromTables([]region.BoundingBox{region.Box(1, 1, 3, 2)})

	// H2 and D4 lie outside every table and each forms its own group.
	assert.Equal(t, []bool{true, false, false, false}, toggles)
}

func TestTogglesFromOverlappingTables(t *testing.T) {
	g := mustGraph(t, []region.LabelRegion{
		header(1, 1, 1, 1, 2),
		data(2, 2, 1, 3, 2),
		data(3, 4, 1, 5, 2),
	})
	require.Equal(t, []string{"E-H1-D2", "E-D2-D3"}, edgeNames(g))

	// D2 intersects both tables and joins the later one.
	toggles := g.TogglesFromTables([]region.BoundingBox{region.Box(1, 1, 2, 2), region.Box(2, 1, 5, 2)})
	assert.Equal(t, []bool{false, true}, toggles)
}

func TestNeighboursAndIncidentEdges(t *testing.T) {
	g := mustGraph(t, grid())

	var ids []int
	for _, n := range g.Neighbours(1) {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []int{3, 2}, ids)
	assert.Len(t, g.IncidentEdges(4), 2)
	assert.Nil(t, g.Neighbours(99))

	n, ok := g.Node(3)
	require.True(t, ok)
	assert.True(t, n.IsData())
}

func TestAlignmentBox(t *testing.T) {
	g := mustGraph(t, grid())

	box, ok := g.Edges()[0].AlignmentBox()
	require.True(t, ok)
	assert.Equal(t, region.Box(1, 1, 2, 2), box)

	box, ok = g.Edges()[2].AlignmentBox()
	require.True(t, ok)
	assert.Equal(t, region.Box(1, 2, 1, 3), box)

	_, ok = Edge{}.AlignmentBox()
	assert.False(t, ok)
}

func TestFormatToggles(t *testing.T) {
	assert.Equal(t, "1010", FormatToggles([]bool{true, false, true, false}))
	assert.Equal(t, "", FormatToggles(nil))
}

func TestParseToggles(t *testing.T) {
	v, err := ParseToggles("1010")
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false, true, false}, v)
	assert.Equal(t, "1010", FormatToggles(v))

	v, err = ParseToggles("")
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = ParseToggles("10x")
	assert.Error(t, err)
}

