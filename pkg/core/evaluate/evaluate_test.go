package evaluate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matzehuels/sheetgraph/pkg/core/region"
)

func TestTableOverlap(t *testing.T) {
	a := region.Box(1, 1, 10, 10)
	assert.Equal(t, 1.0, TableOverlap(a, a))
	assert.Zero(t, TableOverlap(a, region.Box(20, 20, 21, 21)))
	assert.InDelta(t, 2.0/3.0, TableOverlap(a, region.Box(1, 1, 10, 5)), 1e-9)
	assert.Equal(t, TableOverlap(a, region.Box(3, 3, 12, 12)), TableOverlap(region.Box(3, 3, 12, 12), a))
}

func TestDetection(t *testing.T) {
	tests := []struct {
		name     string
		truth    []region.BoundingBox
		detected []region.BoundingBox
		want     DetectionReport
	}{
		{
			name:     "exact",
			truth:    []region.BoundingBox{region.Box(1, 1, 10, 10)},
			detected: []region.BoundingBox{region.Box(1, 1, 10, 10)},
			want:     DetectionReport{Correct: 1},
		},
		{
			name:     "correct at threshold",
			truth:    []region.BoundingBox{region.Box(1, 1, 1, 9)},
			detected: []region.BoundingBox{region.Box(1, 1, 1, 11)},
			want:     DetectionReport{Correct: 1},
		},
		{
			name:     "partial",
			truth:    []region.BoundingBox{region.Box(1, 1, 10, 10)},
			detected: []region.BoundingBox{region.Box(1, 1, 10, 5)},
			want:     DetectionReport{Partial: 1},
		},
		{
			name:     "over-segmented",
			truth:    []region.BoundingBox{region.Box(1, 1, 10, 10)},
			detected: []region.BoundingBox{region.Box(1, 1, 10, 5), region.Box(1, 6, 10, 10)},
			want:     DetectionReport{OverSegmented: 1},
		},
		{
			name:     "under-segmented",
			truth:    []region.BoundingBox{region.Box(1, 1, 10, 5), region.Box(1, 6, 10, 10)},
			detected: []region.BoundingBox{region.Box(1, 1, 10, 10)},
			want:     DetectionReport{Partial: 2, UnderSegmented: 2},
		},
		{
			name:     "missed and false positive",
			truth:    []region.BoundingBox{region.Box(1, 1, 3, 3)},
			detected: []region.BoundingBox{region.Box(20, 20, 22, 22)},
			want:     DetectionReport{Missed: 1, FalsePositives: 1},
		},
		{
			name:  "no detections",
			truth: []region.BoundingBox{region.Box(1, 1, 3, 3), region.Box(5, 5, 6, 6)},
			want:  DetectionReport{Missed: 2},
		},
		{
			name:     "no ground truth",
			detected: []region.BoundingBox{region.Box(1, 1, 3, 3)},
			want:     DetectionReport{FalsePositives: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detection(tt.truth, tt.detected))
		})
	}
}

func TestArea(t *testing.T) {
	truth := []region.BoundingBox{region.Box(1, 1, 2, 2)}
	detected := []region.BoundingBox{region.Box(2, 2, 3, 3)}
	assert.Equal(t, AreaReport{Precision: 0.25, Recall: 0.25}, Area(truth, detected))

	assert.Equal(t, AreaReport{Precision: 1, Recall: 1}, Area(truth, truth))
	assert.Equal(t, AreaReport{}, Area(nil, nil))
	assert.Equal(t, AreaReport{}, Area(truth, nil))
	assert.Equal(t, AreaReport{}, Area(nil, detected))
}

func TestAreaCountsSharedCellsOnce(t *testing.T) {
	truth := []region.BoundingBox{region.Box(1, 1, 2, 2)}
	detected := []region.BoundingBox{region.Box(1, 1, 2, 2), region.Box(1, 1, 1, 2)}
	assert.Equal(t, AreaReport{Precision: 1, Recall: 1}, Area(truth, detected))
}

func TestAreaOverlappingTruth(t *testing.T) {
	truth := []region.BoundingBox{region.Box(1, 1, 2, 2), region.Box(2, 2, 3, 3)}
	detected := []region.BoundingBox{region.Box(1, 1, 3, 3)}

	rep := Area(truth, detected)
	assert.InDelta(t, 7.0/9.0, rep.Precision, 1e-9)
	assert.InDelta(t, 1.0, rep.Recall, 1e-9)
}

func TestAreaWholeSheet(t *testing.T) {
	truth := []region.BoundingBox{region.Box(1, 1, region.MaxRows, region.MaxColumns)}
	detected := []region.BoundingBox{region.Box(1, 1, region.MaxRows/2, region.MaxColumns)}

	rep := Area(truth, detected)
	assert.Equal(t, 1.0, rep.Precision)
	assert.Equal(t, 0.5, rep.Recall)
}

func TestEvaluate(t *testing.T) {
	truth := []region.BoundingBox{region.Box(1, 1, 4, 4)}
	rep := Evaluate(truth, truth)
	assert.Equal(t, 1, rep.Detection.Correct)
	assert.Equal(t, 1.0, rep.Area.Recall)
}
