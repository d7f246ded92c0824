package graph

import (
	"fmt"

	"github.com/matzehuels/sheetgraph/pkg/core/region"
)

// AlignmentType names the axis along which two connected regions overlap.
type AlignmentType int

const (
	// Vertical alignment: the regions are stacked and share column indices.
	Vertical AlignmentType = iota
	// Horizontal alignment: the regions sit side by side and share row indices.
	Horizontal
)

func (a AlignmentType) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// ConnectionType classifies an edge by the types of its endpoints.
type ConnectionType int

const (
	DataData ConnectionType = iota
	DataHeader
	HeaderHeader
)

// String returns "D_D", "D_H" or "H_H".
func (c ConnectionType) String() string {
	switch c {
	case DataHeader:
		return "D_H"
	case HeaderHeader:
		return "H_H"
	default:
		return "D_D"
	}
}

func connectionOf(a, b region.LabelRegion) ConnectionType {
	switch {
	case a.Type != b.Type:
		return DataHeader
	case a.IsHeader():
		return HeaderHeader
	default:
		return DataData
	}
}

// Edge connects two distinct regions that are aligned along one axis.
//
// Aligned holds the shared column (vertical) or row (horizontal) indices
// as ascending runs, after earlier edges claimed theirs. Length is the
// geometric gap between both regions as reported by
// [region.BoundingBox.Distance].
type Edge struct {
	Source      region.LabelRegion
	Destination region.LabelRegion
	Alignment   AlignmentType
	Aligned     []region.Span
	Connection  ConnectionType
	Length      int
}

// take removes [lo, hi] from the ascending disjoint runs in set. It returns
// what is left and the removed runs, both ascending.
func take(set []region.Span, lo, hi int) (rest, taken []region.Span) {
	for _, s := range set {
		if s.Hi < lo || s.Lo > hi {
			rest = append(rest, s)
			continue
		}
		if s.Lo < lo {
			rest = append(rest, region.Span{Lo: s.Lo, Hi: lo - 1})
		}
		taken = append(taken, region.Span{Lo: max(s.Lo, lo), Hi: min(s.Hi, hi)})
		if s.Hi > hi {
			rest = append(rest, region.Span{Lo: hi + 1, Hi: s.Hi})
		}
	}
	return rest, taken
}

func newEdge(src, dst region.LabelRegion, aligned []region.Span, alignment AlignmentType) Edge {
	return Edge{
		Source:      src,
		Destination: dst,
		Alignment:   alignment,
		Aligned:     aligned,
		Connection:  connectionOf(src, dst),
		Length:      src.Distance(dst.BoundingBox),
	}
}

// Connects reports whether the edge joins the regions with the given ids,
// in either direction.
func (e Edge) Connects(a, b int) bool {
	return (e.Source.ID == a && e.Destination.ID == b) ||
		(e.Source.ID == b && e.Destination.ID == a)
}

// Other returns the endpoint opposite to the region with the given id.
func (e Edge) Other(id int) region.LabelRegion {
	if e.Source.ID == id {
		return e.Destination
	}
	return e.Source
}

// AlignmentBox returns the rectangle between both endpoints restricted to
// the aligned indices. For a vertical edge it spans the aligned columns from
// the upper bottom row to the lower top row; a horizontal edge spans the
// aligned rows from the nearer right column to the farther left column.
//
// The second result is false when the endpoints overlap so far along the
// alignment axis that the rectangle would be inverted.
func (e Edge) AlignmentBox() (region.BoundingBox, bool) {
	if len(e.Aligned) == 0 {
		return region.BoundingBox{}, false
	}
	lo := e.Aligned[0].Lo
	hi := e.Aligned[len(e.Aligned)-1].Hi
	src, dst := e.Source, e.Destination

	var box region.BoundingBox
	if e.Alignment == Vertical {
		box = region.Box(
			min(src.Bottom, dst.Bottom), lo,
			max(src.Top, dst.Top), hi,
		)
	} else {
		box = region.Box(
			lo, min(src.Right, dst.Right),
			hi, max(src.Left, dst.Left),
		)
	}
	if box.Top > box.Bottom || box.Left > box.Right {
		return region.BoundingBox{}, false
	}
	return box, true
}

// String formats the edge as "E-H1-D2".
func (e Edge) String() string {
	return fmt.Sprintf("E-%s-%s", e.Source, e.Destination)
}
