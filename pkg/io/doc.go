// Package io provides JSON import and export for labelled sheets and
// detection results.
//
// # Overview
//
// Table detection starts from a sheet whose cells have already been
// classified into header and data regions. This package reads such sheets
// from a simple JSON document and writes the detected tables back out, so
// that any cell classifier can feed the detector and any downstream tool
// can consume its output.
//
// # Sheet Format
//
// A sheet document has one required array, "regions":
//
//	{
//	  "name": "Sheet1",
//	  "regions": [
//	    {"id": 1, "type": "header", "top": 1, "left": 1, "bottom": 1, "right": 3},
//	    {"id": 2, "type": "data",   "top": 2, "left": 1, "bottom": 9, "right": 3}
//	  ],
//	  "tables": [
//	    {"top": 1, "left": 1, "bottom": 9, "right": 3}
//	  ],
//	  "dimensions": {
//	    "default_column_width": 8.43,
//	    "default_row_height": 15,
//	    "column_widths": {"2": 20},
//	    "row_heights": {"5": 30}
//	  }
//	}
//
// Region fields:
//   - id: Integer identifier, unique within the sheet
//   - type: "header" or "data"
//   - top, left, bottom, right: 1-indexed inclusive bounds
//
// Optional sections:
//   - tables: Ground-truth table boxes, used for evaluation and as the
//     initial toggle state of the graph
//   - dimensions: Column widths and row heights; omitted sizes fall back
//     to the spreadsheet defaults
//
// # Import
//
// Use [ImportJSON] to read a sheet from a file path, or [ReadJSON] to read
// from any io.Reader:
//
//	s, err := io.ImportJSON("sheet.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Both functions validate region bounds, region types and ID uniqueness.
// Errors carry an [errors.Code] describing the failure class.
//
// # Export
//
// Use [ExportJSON] to write a detection [Result] to a file, or [WriteJSON]
// to write to any io.Writer. [ReadResultJSON] reads a result back, which
// lets a stored detection be evaluated later against ground truth.
//
// [errors.Code]: github.com/matzehuels/sheetgraph/pkg/errors.Code
package io
