// Package xlsx reads worksheet formatting from Excel workbooks.
//
// Detection works on labelled regions, not on cell values, so the only
// thing a workbook contributes is the width of every column and the height
// of every row. [Workbook.Dimensions] snapshots those sizes into a
// [sheet.Static] that the fitness metrics can query without holding the
// file open.
package xlsx

import (
	"os"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/sheetgraph/pkg/core/region"
	"github.com/matzehuels/sheetgraph/pkg/core/sheet"
	"github.com/matzehuels/sheetgraph/pkg/errors"
)

// Sizes excelize reports for sheets whose format sets no default.
const (
	defaultColumnWidth = 9.140625
	defaultRowHeight   = 15
)

// Workbook is an open Excel workbook.
type Workbook struct {
	path string
	file *excelize.File
}

// Open opens the workbook at path.
func Open(path string) (*Workbook, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "workbook %s", path)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook %s", path)
	}
	return &Workbook{path: path, file: f}, nil
}

// Path returns the file the workbook was opened from.
func (w *Workbook) Path() string { return w.path }

// Sheets returns the worksheet names in workbook order.
func (w *Workbook) Sheets() []string { return w.file.GetSheetList() }

// HasSheet reports whether the workbook contains the named worksheet.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// checkSheet rejects malformed worksheet names with INVALID_INPUT and
// unknown ones with SHEET_NOT_FOUND.
func (w *Workbook) checkSheet(name string) error {
	if err := errors.ValidateSheetName(name); err != nil {
		return err
	}
	if !w.HasSheet(name) {
		return errors.New(errors.ErrCodeSheetNotFound, "sheet %q not found in %s", name, w.path)
	}
	return nil
}

// UsedRange returns the sheet's used range in A1 notation, for example
// "A1:F20". It is empty for sheets that carry no dimension record.
func (w *Workbook) UsedRange(name string) (string, error) {
	if err := w.checkSheet(name); err != nil {
		return "", err
	}
	ref, err := w.file.GetSheetDimension(name)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidFormat, err, "dimension of sheet %q", name)
	}
	return ref, nil
}

// Dimensions reads the width of every column and the height of every row
// within bounds. Sizes equal to the sheet default are not stored; lookups
// outside bounds report the sheet default.
func (w *Workbook) Dimensions(name string, bounds region.BoundingBox) (*sheet.Static, error) {
	if err := w.checkSheet(name); err != nil {
		return nil, err
	}
	if err := bounds.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidRegion, err, "dimension bounds")
	}

	defWidth, defHeight, err := w.defaultSizes(name)
	if err != nil {
		return nil, err
	}
	dims := sheet.Uniform(defWidth, defHeight)

	for col := 1; col <= bounds.Right; col++ {
		width, err := w.columnWidth(name, col)
		if err != nil {
			return nil, err
		}
		if width != defWidth {
			dims.SetColumnWidth(col, width)
		}
	}
	for row := 1; row <= bounds.Bottom; row++ {
		height, err := w.rowHeight(name, row)
		if err != nil {
			return nil, err
		}
		if height != defHeight {
			dims.SetRowHeight(row, height)
		}
	}
	return dims, nil
}

// defaultSizes returns the column width and row height of the sheet's
// format, which is what excelize reports for columns and rows without
// their own size.
func (w *Workbook) defaultSizes(name string) (width, height float64, err error) {
	props, err := w.file.GetSheetProps(name)
	if err != nil {
		return 0, 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "format of sheet %q", name)
	}
	width, height = defaultColumnWidth, defaultRowHeight
	if props.DefaultColWidth != nil && *props.DefaultColWidth > 0 {
		width = *props.DefaultColWidth
	}
	if props.CustomHeight != nil && *props.CustomHeight && props.DefaultRowHeight != nil {
		height = *props.DefaultRowHeight
	}
	return width, height, nil
}

func (w *Workbook) columnWidth(name string, col int) (float64, error) {
	ref, err := excelize.ColumnNumberToName(col)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidRegion, err, "column %d", col)
	}
	width, err := w.file.GetColWidth(name, ref)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "width of column %s", ref)
	}
	return width, nil
}

func (w *Workbook) rowHeight(name string, row int) (float64, error) {
	height, err := w.file.GetRowHeight(name, row)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidFormat, err, "height of row %d", row)
	}
	return height, nil
}

// Close releases the workbook.
func (w *Workbook) Close() error {
	return w.file.Close()
}

// RangeName renders a box in A1 notation, for example "B2:D10". A single
// cell renders without a colon.
func RangeName(b region.BoundingBox) (string, error) {
	first, err := excelize.CoordinatesToCellName(b.Left, b.Top)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidRegion, err, "range %s", b)
	}
	if b.Top == b.Bottom && b.Left == b.Right {
		return first, nil
	}
	last, err := excelize.CoordinatesToCellName(b.Right, b.Bottom)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidRegion, err, "range %s", b)
	}
	return first + ":" + last, nil
}
