package graph

import (
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/sheetgraph/pkg/core/region"
)

// ErrNoHeaders is returned by [Component.HeaderTopRow] for components
// without header regions.
var ErrNoHeaders = errors.New("component has no header regions")

// Component is a memoizing view over one connected component.
//
// Every derived value is computed on first access and cached for the
// lifetime of the view. Views are cheap and meant to be discarded after a
// single rating; only scores outlive them.
type Component struct {
	graph   *Graph
	regions []region.LabelRegion

	key     string
	data    []region.LabelRegion
	heads   []region.LabelRegion
	split   bool
	bbox    *region.BoundingBox
	grouped bool
	groups  [][]region.LabelRegion
	top     []region.LabelRegion
	topRow  int
	cht     []region.Span
	cd      []region.Span
}

// NewComponent wraps regions that form a component of g.
func NewComponent(g *Graph, regions []region.LabelRegion) *Component {
	return &Component{graph: g, regions: regions}
}

// Graph returns the graph the component was taken from.
func (c *Component) Graph() *Graph { return c.graph }

// Regions returns the member regions.
func (c *Component) Regions() []region.LabelRegion { return c.regions }

// Key identifies the component by its sorted member ids, e.g. "1,4,7".
// Equal member sets yield equal keys regardless of discovery order.
func (c *Component) Key() string {
	if c.key == "" {
		c.key = MemberKey(c.regions)
	}
	return c.key
}

// MemberKey returns the sorted, comma separated ids of the regions.
func MemberKey(regions []region.LabelRegion) string {
	ids := make([]int, len(regions))
	for i, r := range regions {
		ids[i] = r.ID
	}
	slices.Sort(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}

func (c *Component) splitTypes() {
	if c.split {
		return
	}
	for _, r := range c.regions {
		if r.IsHeader() {
			c.heads = append(c.heads, r)
		} else {
			c.data = append(c.data, r)
		}
	}
	c.split = true
}

// Data returns the data regions of the component.
func (c *Component) Data() []region.LabelRegion {
	c.splitTypes()
	return c.data
}

// Heads returns the header regions of the component.
func (c *Component) Heads() []region.LabelRegion {
	c.splitTypes()
	return c.heads
}

// BoundingBox returns the minimal box enclosing all members.
func (c *Component) BoundingBox() region.BoundingBox {
	if c.bbox == nil {
		b := region.Merge(region.Boxes(c.regions)...)
		c.bbox = &b
	}
	return *c.bbox
}

// HeaderGroups partitions the header regions into groups. Two headers
// belong together when an edge joins them and no data region of the
// component intersects that edge's alignment box. Groups grow breadth-first
// from each ungrouped header through header neighbours in the component.
func (c *Component) HeaderGroups() [][]region.LabelRegion {
	c.groupHeaders()
	return c.groups
}

// HeaderTop returns the header group with the smallest top row. When two
// groups start on the same row the later one wins. It returns nil for
// components without headers.
func (c *Component) HeaderTop() []region.LabelRegion {
	c.groupHeaders()
	return c.top
}

// HeaderTopRow returns the top row of [Component.HeaderTop].
func (c *Component) HeaderTopRow() (int, error) {
	if len(c.Heads()) == 0 {
		return 0, ErrNoHeaders
	}
	c.groupHeaders()
	return c.topRow, nil
}

func (c *Component) groupHeaders() {
	if c.grouped {
		return
	}
	c.grouped = true
	heads := c.Heads()
	if len(heads) == 0 {
		return
	}

	members := make(map[int]bool, len(c.regions))
	for _, r := range c.regions {
		members[r.ID] = true
	}
	grouped := make(map[int]bool, len(heads))
	headerNeighbours := func(id int) []region.LabelRegion {
		var out []region.LabelRegion
		for _, n := range c.graph.Neighbours(id) {
			if n.IsHeader() && members[n.ID] && !grouped[n.ID] {
				out = append(out, n)
			}
		}
		return out
	}

	c.top = []region.LabelRegion{heads[0]}
	c.topRow = heads[0].Top
	for _, h := range heads {
		if grouped[h.ID] {
			continue
		}
		grouped[h.ID] = true
		group := []region.LabelRegion{h}
		lowest := h.Top

		queue := headerNeighbours(h.ID)
		for len(queue) > 0 {
			hn := queue[0]
			queue = queue[1:]
			if grouped[hn.ID] || !c.joins(group, hn) {
				continue
			}
			group = append(group, hn)
			lowest = min(lowest, hn.Top)
			queue = append(queue, headerNeighbours(hn.ID)...)
			grouped[hn.ID] = true
		}

		c.groups = append(c.groups, group)
		if lowest <= c.topRow {
			c.topRow = lowest
			c.top = group
		}
	}
}

// joins reports whether h connects to any group member without a data
// region blocking the gap between them.
func (c *Component) joins(group []region.LabelRegion, h region.LabelRegion) bool {
	for _, m := range group {
		e, ok := c.graph.EdgeBetween(m.ID, h.ID)
		if !ok {
			continue
		}
		if !c.blocked(e) {
			return true
		}
	}
	return false
}

func (c *Component) blocked(e Edge) bool {
	box, ok := e.AlignmentBox()
	if !ok {
		return false
	}
	for _, d := range c.Data() {
		if box.Intersects(d.BoundingBox) {
			return true
		}
	}
	return false
}

// HeaderColumns returns the columns covered by the top header group as
// merged runs.
func (c *Component) HeaderColumns() []region.Span {
	if c.cht == nil {
		c.cht = ColumnSpans(c.HeaderTop())
	}
	return c.cht
}

// DataColumns returns the columns covered by data regions as merged runs.
func (c *Component) DataColumns() []region.Span {
	if c.cd == nil {
		c.cd = ColumnSpans(c.Data())
	}
	return c.cd
}

// ColumnSpans returns the columns covered by the regions as merged runs.
// It returns an empty, non-nil slice for no regions.
func ColumnSpans(regions []region.LabelRegion) []region.Span {
	return spansOf(regions, region.BoundingBox.ColumnSpan)
}

// RowSpans returns the rows covered by the regions as merged runs.
func RowSpans(regions []region.LabelRegion) []region.Span {
	return spansOf(regions, region.BoundingBox.RowSpan)
}

func spansOf(regions []region.LabelRegion, span func(region.BoundingBox) region.Span) []region.Span {
	out := make([]region.Span, len(regions))
	for i, r := range regions {
		out[i] = span(r.BoundingBox)
	}
	return region.MergeSpans(out)
}

// String formats the component as "Component(H1,D2)".
func (c *Component) String() string {
	parts := make([]string, len(c.regions))
	for i, r := range c.regions {
		parts[i] = r.String()
	}
	return "Component(" + strings.Join(parts, ",") + ")"
}
