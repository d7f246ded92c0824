package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/sheetgraph/pkg/core/evaluate"
	"github.com/matzehuels/sheetgraph/pkg/core/region"
	"github.com/matzehuels/sheetgraph/pkg/errors"
)

// Result is the serialized outcome of one detection run.
type Result struct {
	Sheet      string           `json:"sheet,omitempty"`
	Strategy   string           `json:"strategy"`
	Score      float64          `json:"score"`
	NodeCount  int              `json:"nodes"`
	EdgeCount  int              `json:"edges"`
	Toggles    string           `json:"toggles"`
	Tables     []Table          `json:"tables"`
	Evaluation *evaluate.Report `json:"evaluation,omitempty"`
	DurationMS int64            `json:"duration_ms"`
}

// Table is one detected table: its bounding box and member region IDs.
type Table struct {
	region.BoundingBox
	Regions []int `json:"regions"`
	Headers int   `json:"headers"`
}

// Boxes returns the bounding boxes of the detected tables.
func (r *Result) Boxes() []region.BoundingBox {
	out := make([]region.BoundingBox, len(r.Tables))
	for i, t := range r.Tables {
		out[i] = t.BoundingBox
	}
	return out
}

// WriteJSON encodes a detection result as indented JSON and writes it to w.
// The output can be read back with [ReadResultJSON].
func WriteJSON(w io.Writer, r *Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode result")
	}
	return nil
}

// ExportJSON writes a detection result to a JSON file at path.
func ExportJSON(path string, r *Result) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "create %s", path)
	}
	defer f.Close()
	return WriteJSON(f, r)
}

// ReadResultJSON decodes a detection result written by [WriteJSON].
func ReadResultJSON(r io.Reader) (*Result, error) {
	var out Result
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode result")
	}
	for i, t := range out.Tables {
		if err := t.Validate(); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidRegion, err, "table %d", i)
		}
	}
	return &out, nil
}

// ImportResultJSON reads the detection result at path.
func ImportResultJSON(path string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()
	return ReadResultJSON(f)
}
