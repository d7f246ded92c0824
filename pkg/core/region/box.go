package region

import (
	"errors"
	"fmt"
)

// ErrInvalidBounds is returned by [BoundingBox.Validate] when a box has
// coordinates outside the worksheet or its top/left edge lies past its
// bottom/right edge.
var ErrInvalidBounds = errors.New("invalid bounds")

// Worksheet limits of the xlsx format.
const (
	MaxRows    = 1048576
	MaxColumns = 16384
)

// BoundingBox is an axis-aligned rectangle of cells. Bounds are 1-indexed
// and inclusive on all four sides.
//
// The zero value is not a valid box; use Validate before trusting
// externally supplied coordinates.
type BoundingBox struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

// Box is shorthand for constructing a BoundingBox.
func Box(top, left, bottom, right int) BoundingBox {
	return BoundingBox{Top: top, Left: left, Bottom: bottom, Right: right}
}

// Validate reports ErrInvalidBounds if the box is empty, uses coordinates
// below 1 or reaches past [MaxRows] or [MaxColumns].
func (b BoundingBox) Validate() error {
	if b.Top < 1 || b.Left < 1 {
		return fmt.Errorf("%w: %s has coordinates below 1", ErrInvalidBounds, b)
	}
	if b.Bottom > MaxRows || b.Right > MaxColumns {
		return fmt.Errorf("%w: %s exceeds %d rows or %d columns", ErrInvalidBounds, b, MaxRows, MaxColumns)
	}
	if b.Top > b.Bottom || b.Left > b.Right {
		return fmt.Errorf("%w: %s is inverted", ErrInvalidBounds, b)
	}
	return nil
}

// Width returns the number of columns spanned by the box.
func (b BoundingBox) Width() int { return b.Right - b.Left + 1 }

// Height returns the number of rows spanned by the box.
func (b BoundingBox) Height() int { return b.Bottom - b.Top + 1 }

// Area returns the number of cells covered by the box.
func (b BoundingBox) Area() int { return b.Width() * b.Height() }

// Intersects reports whether the two boxes share at least one cell.
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Left <= o.Right && o.Left <= b.Right &&
		b.Top <= o.Bottom && o.Top <= b.Bottom
}

// Intersection returns the box of shared cells and true, or the zero box
// and false if the boxes are disjoint.
func (b BoundingBox) Intersection(o BoundingBox) (BoundingBox, bool) {
	if !b.Intersects(o) {
		return BoundingBox{}, false
	}
	return BoundingBox{
		Top:    max(b.Top, o.Top),
		Left:   max(b.Left, o.Left),
		Bottom: min(b.Bottom, o.Bottom),
		Right:  min(b.Right, o.Right),
	}, true
}

// Overlap returns the number of cells shared by both boxes.
func (b BoundingBox) Overlap(o BoundingBox) int {
	in, ok := b.Intersection(o)
	if !ok {
		return 0
	}
	return in.Area()
}

// Distance returns the geometric gap between two boxes as the sum of the
// row gap and the column gap. A gap along an axis is the difference between
// the later start and the earlier end, so boxes touching along an edge are
// at distance 1 and spans that overlap on an axis contribute nothing.
func (b BoundingBox) Distance(o BoundingBox) int {
	rowGap := max(0, max(b.Top, o.Top)-min(b.Bottom, o.Bottom))
	colGap := max(0, max(b.Left, o.Left)-min(b.Right, o.Right))
	return rowGap + colGap
}

// String formats the box as (top,left)-(bottom,right).
func (b BoundingBox) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", b.Top, b.Left, b.Bottom, b.Right)
}

// Merge returns the minimal box enclosing all boxes.
// It returns the zero box when called without arguments.
func Merge(boxes ...BoundingBox) BoundingBox {
	if len(boxes) == 0 {
		return BoundingBox{}
	}
	out := boxes[0]
	for _, b := range boxes[1:] {
		out.Top = min(out.Top, b.Top)
		out.Left = min(out.Left, b.Left)
		out.Bottom = max(out.Bottom, b.Bottom)
		out.Right = max(out.Right, b.Right)
	}
	return out
}
