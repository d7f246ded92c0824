package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/sheetgraph/pkg/core/region"
	"github.com/matzehuels/sheetgraph/pkg/core/sheet"
	"github.com/matzehuels/sheetgraph/pkg/errors"
)

// Sheet is a decoded sheet document.
type Sheet struct {
	Name   string               `json:"name,omitempty"`
	Labels []region.LabelRegion `json:"regions"`
	Tables []region.BoundingBox `json:"tables,omitempty"`
	Sizes  *Dimensions          `json:"dimensions,omitempty"`
}

// Dimensions is the serialized form of column widths and row heights.
type Dimensions struct {
	DefaultColumnWidth float64         `json:"default_column_width,omitempty"`
	DefaultRowHeight   float64         `json:"default_row_height,omitempty"`
	ColumnWidths       map[int]float64 `json:"column_widths,omitempty"`
	RowHeights         map[int]float64 `json:"row_heights,omitempty"`
}

// Regions returns the labelled regions of the sheet.
func (s *Sheet) Regions() []region.LabelRegion { return s.Labels }

// Dimensions returns the sheet's column widths and row heights, using the
// spreadsheet defaults for anything the document leaves out.
func (s *Sheet) Dimensions() *sheet.Static {
	dims := sheet.NewStatic()
	if s.Sizes == nil {
		return dims
	}
	if s.Sizes.DefaultColumnWidth > 0 {
		dims.DefaultWidth = s.Sizes.DefaultColumnWidth
	}
	if s.Sizes.DefaultRowHeight > 0 {
		dims.DefaultHeight = s.Sizes.DefaultRowHeight
	}
	for col, w := range s.Sizes.ColumnWidths {
		dims.SetColumnWidth(col, w)
	}
	for row, h := range s.Sizes.RowHeights {
		dims.SetRowHeight(row, h)
	}
	return dims
}

// Bounds returns the smallest box enclosing every region, or false if the
// sheet has no regions.
func (s *Sheet) Bounds() (region.BoundingBox, bool) {
	if len(s.Labels) == 0 {
		return region.BoundingBox{}, false
	}
	return region.Merge(region.Boxes(s.Labels)...), true
}

// Validate checks region bounds, ID uniqueness and table bounds.
func (s *Sheet) Validate() error {
	seen := make(map[int]bool, len(s.Labels))
	for _, r := range s.Labels {
		if seen[r.ID] {
			return errors.New(errors.ErrCodeInvalidRegion, "duplicate region id %d", r.ID)
		}
		seen[r.ID] = true
		if err := r.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRegion, err, "region %d", r.ID)
		}
	}
	for i, t := range s.Tables {
		if err := t.Validate(); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRegion, err, "table %d", i)
		}
	}
	if s.Sizes != nil {
		for col, w := range s.Sizes.ColumnWidths {
			if col < 1 || col > region.MaxColumns || w < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "invalid width %v for column %d", w, col)
			}
		}
		for row, h := range s.Sizes.RowHeights {
			if row < 1 || row > region.MaxRows || h < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "invalid height %v for row %d", h, row)
			}
		}
	}
	return nil
}

// ReadJSON decodes and validates a sheet document from r.
//
// ReadJSON returns an error if:
//   - The JSON is malformed or a region has an unknown type
//   - Two regions share an ID
//   - A region or table has bounds below 1, past the worksheet limits or
//     inverted bounds
//   - A column width or row height is negative or outside the worksheet
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*Sheet, error) {
	var s Sheet
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode sheet")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ImportJSON reads the sheet document at path. A missing file is reported
// with [errors.ErrCodeFileNotFound].
func ImportJSON(path string) (*Sheet, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
