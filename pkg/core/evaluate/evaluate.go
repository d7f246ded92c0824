// Package evaluate compares detected tables against ground-truth tables.
//
// Detection accuracy follows the usual table detection protocol: a
// detected table matches a ground-truth table by their overlap ratio
// 2|A∩B| / (|A|+|B|). Overlaps of at least 0.9 count as correct detections;
// overlaps strictly between 0.1 and 0.9 count as partial.
package evaluate

import (
	"slices"

	"github.com/matzehuels/sheetgraph/pkg/core/region"
)

// Overlap thresholds.
const (
	CorrectThreshold = 0.9
	PartialThreshold = 0.1
)

// TableOverlap returns 2|a∩b| / (area(a)+area(b)), which is 1 for identical
// tables and 0 for disjoint ones.
func TableOverlap(a, b region.BoundingBox) float64 {
	return 2 * float64(a.Overlap(b)) / float64(a.Area()+b.Area())
}

// DetectionReport counts ground-truth and detected tables by outcome.
type DetectionReport struct {
	Correct        int `json:"correct"`
	Partial        int `json:"partial"`
	OverSegmented  int `json:"over_segmented"`
	UnderSegmented int `json:"under_segmented"`
	Missed         int `json:"missed"`
	FalsePositives int `json:"false_positives"`
}

func isPartial(o float64) bool { return o > PartialThreshold && o < CorrectThreshold }

// Detection classifies every ground-truth table against the detections:
//   - correct: some detection overlaps it by at least 0.9
//   - partial: exactly one detection overlaps it partially
//   - over-segmented: more than one detection overlaps it partially
//   - under-segmented: a detection overlapping it partially also partially
//     overlaps another ground-truth table
//   - missed: no detection overlaps it correctly or partially
//
// A detection overlapping no ground-truth table by more than 0.1 is a false
// positive. Categories are not exclusive.
func Detection(truth, detected []region.BoundingBox) DetectionReport {
	overlaps := make([][]float64, len(truth))
	for i, gt := range truth {
		overlaps[i] = make([]float64, len(detected))
		for j, d := range detected {
			overlaps[i][j] = TableOverlap(gt, d)
		}
	}

	var rep DetectionReport
	for i := range truth {
		correct, partial := 0, 0
		under := false
		for j := range detected {
			o := overlaps[i][j]
			switch {
			case o >= CorrectThreshold:
				correct++
			case isPartial(o):
				partial++
				if !under && partialMatches(overlaps, j) > 1 {
					under = true
				}
			}
		}
		if correct > 0 {
			rep.Correct++
		}
		switch {
		case partial == 1:
			rep.Partial++
		case partial > 1:
			rep.OverSegmented++
		}
		if under {
			rep.UnderSegmented++
		}
		if correct == 0 && partial == 0 {
			rep.Missed++
		}
	}

	for j := range detected {
		hit := false
		for i := range truth {
			if overlaps[i][j] > PartialThreshold {
				hit = true
				break
			}
		}
		if !hit {
			rep.FalsePositives++
		}
	}
	return rep
}

func partialMatches(overlaps [][]float64, j int) int {
	n := 0
	for i := range overlaps {
		if isPartial(overlaps[i][j]) {
			n++
		}
	}
	return n
}

// AreaReport holds cell-level precision and recall.
type AreaReport struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
}

// Area compares the cells covered by detected tables with the cells covered
// by ground-truth tables. Cells covered by several tables count once.
// Precision is 0 without detected cells and recall is 0 without
// ground-truth cells.
func Area(truth, detected []region.BoundingBox) AreaReport {
	truthCells, detectedCells, tp := coverage(truth, detected)

	var rep AreaReport
	if detectedCells > 0 {
		rep.Precision = float64(tp) / float64(detectedCells)
	}
	if truthCells > 0 {
		rep.Recall = float64(tp) / float64(truthCells)
	}
	return rep
}

// coverage counts the cells in the union of a, the union of b and their
// intersection. Rows are cut into strips at every box edge; within a strip
// the covered columns do not change, so each strip is measured once.
func coverage(a, b []region.BoundingBox) (inA, inB, inBoth int) {
	edges := make([]int, 0, 2*(len(a)+len(b)))
	for _, box := range slices.Concat(a, b) {
		edges = append(edges, box.Top, box.Bottom+1)
	}
	slices.Sort(edges)
	edges = slices.Compact(edges)

	for i := 0; i+1 < len(edges); i++ {
		row, height := edges[i], edges[i+1]-edges[i]
		ca, cb := columnsAt(a, row), columnsAt(b, row)
		inA += height * region.CoveredLen(ca)
		inB += height * region.CoveredLen(cb)
		inBoth += height * region.SharedLen(ca, cb)
	}
	return inA, inB, inBoth
}

func columnsAt(boxes []region.BoundingBox, row int) []region.Span {
	var spans []region.Span
	for _, b := range boxes {
		if b.Top <= row && row <= b.Bottom {
			spans = append(spans, b.ColumnSpan())
		}
	}
	return region.MergeSpans(spans)
}

// Report bundles detection and area evaluation of one sheet.
type Report struct {
	Detection DetectionReport `json:"detection"`
	Area      AreaReport      `json:"area"`
}

// Evaluate runs Detection and Area.
func Evaluate(truth, detected []region.BoundingBox) Report {
	return Report{Detection: Detection(truth, detected), Area: Area(truth, detected)}
}
