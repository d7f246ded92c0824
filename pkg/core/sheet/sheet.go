// Package sheet describes the formatting of a worksheet that the fitness
// metrics need: how wide each column is and how tall each row is.
//
// Only two metrics read dimensions: the average width of empty columns and
// the average height of empty rows inside a candidate table. [Static] covers
// JSON documents and tests; package xlsx provides a workbook-backed
// implementation.
package sheet

// Spreadsheet defaults used when a column or row carries no explicit size.
const (
	DefaultColumnWidth = 8.43
	DefaultRowHeight   = 15.0
)

// Dimensions looks up column widths and row heights by 1-indexed position.
type Dimensions interface {
	ColumnWidth(col int) float64
	RowHeight(row int) float64
}

// Static is an in-memory Dimensions with sparse overrides over default sizes.
//
// The zero value reports [DefaultColumnWidth] and [DefaultRowHeight] for
// every column and row.
type Static struct {
	DefaultWidth  float64
	DefaultHeight float64
	Widths        map[int]float64
	Heights       map[int]float64
}

// NewStatic returns a Static using the spreadsheet defaults.
func NewStatic() *Static {
	return &Static{
		DefaultWidth:  DefaultColumnWidth,
		DefaultHeight: DefaultRowHeight,
		Widths:        make(map[int]float64),
		Heights:       make(map[int]float64),
	}
}

// Uniform returns a Static where every column has the given width and every
// row has the given height.
func Uniform(width, height float64) *Static {
	s := NewStatic()
	s.DefaultWidth = width
	s.DefaultHeight = height
	return s
}

// SetColumnWidth overrides the width of a single column.
func (s *Static) SetColumnWidth(col int, width float64) {
	if s.Widths == nil {
		s.Widths = make(map[int]float64)
	}
	s.Widths[col] = width
}

// SetRowHeight overrides the height of a single row.
func (s *Static) SetRowHeight(row int, height float64) {
	if s.Heights == nil {
		s.Heights = make(map[int]float64)
	}
	s.Heights[row] = height
}

// ColumnWidth implements Dimensions.
func (s *Static) ColumnWidth(col int) float64 {
	if w, ok := s.Widths[col]; ok {
		return w
	}
	if s.DefaultWidth > 0 {
		return s.DefaultWidth
	}
	return DefaultColumnWidth
}

// RowHeight implements Dimensions.
func (s *Static) RowHeight(row int) float64 {
	if h, ok := s.Heights[row]; ok {
		return h
	}
	if s.DefaultHeight > 0 {
		return s.DefaultHeight
	}
	return DefaultRowHeight
}
