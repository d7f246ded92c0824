package region

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundingBoxValidate(t *testing.T) {
	tests := []struct {
		name    string
		box     BoundingBox
		wantErr bool
	}{
		{"single cell", Box(1, 1, 1, 1), false},
		{"rectangle", Box(2, 3, 5, 7), false},
		{"zero box", BoundingBox{}, true},
		{"inverted rows", Box(4, 1, 3, 2), true},
		{"inverted cols", Box(1, 4, 2, 3), true},
		{"whole sheet", Box(1, 1, MaxRows, MaxColumns), false},
		{"past last row", Box(1, 1, MaxRows+1, 1), true},
		{"past last column", Box(1, 1, 1, MaxColumns+1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.box.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBounds)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBoundingBoxGeometry(t *testing.T) {
	b := Box(2, 3, 4, 6)
	assert.Equal(t, 4, b.Width())
	assert.Equal(t, 3, b.Height())
	assert.Equal(t, 12, b.Area())
	assert.Equal(t, Span{Lo: 3, Hi: 6}, b.ColumnSpan())
	assert.Equal(t, Span{Lo: 2, Hi: 4}, b.RowSpan())
	assert.Equal(t, 4, b.ColumnSpan().Len())
}

func TestMergeSpans(t *testing.T) {
	in := []Span{{Lo: 7, Hi: 9}, {Lo: 1, Hi: 2}, {Lo: 3, Hi: 4}, {Lo: 8, Hi: 12}}
	merged := MergeSpans(in)

	assert.Equal(t, []Span{{Lo: 1, Hi: 4}, {Lo: 7, Hi: 12}}, merged)
	assert.Equal(t, Span{Lo: 7, Hi: 9}, in[0], "input must not be reordered")
	assert.Equal(t, 10, CoveredLen(merged))
	assert.Empty(t, MergeSpans(nil))
	assert.Zero(t, CoveredLen(nil))
}

func TestSharedLen(t *testing.T) {
	a := []Span{{Lo: 1, Hi: 4}, {Lo: 7, Hi: 12}}
	b := []Span{{Lo: 3, Hi: 8}, {Lo: 12, Hi: 20}}

	assert.Equal(t, 5, SharedLen(a, b))
	assert.Equal(t, 5, SharedLen(b, a))
	assert.Equal(t, 10, SharedLen(a, a))
	assert.Zero(t, SharedLen(a, nil))
	assert.Equal(t, MaxColumns, SharedLen(
		[]Span{{Lo: 1, Hi: MaxColumns}},
		[]Span{{Lo: 1, Hi: MaxRows}},
	))
}

func TestBoundingBoxIntersection(t *testing.T) {
	a := Box(1, 1, 3, 3)

	in, ok := a.Intersection(Box(3, 3, 5, 5))
	require.True(t, ok)
	assert.Equal(t, Box(3, 3, 3, 3), in)
	assert.Equal(t, 1, a.Overlap(Box(3, 3, 5, 5)))

	_, ok = a.Intersection(Box(4, 1, 5, 3))
	assert.False(t, ok)
	assert.False(t, a.Intersects(Box(1, 4, 3, 5)))
	assert.Equal(t, 0, a.Overlap(Box(1, 4, 3, 5)))
}

func TestBoundingBoxDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b BoundingBox
		want int
	}{
		{"stacked touching", Box(1, 1, 2, 3), Box(3, 1, 4, 3), 1},
		{"stacked with gap", Box(1, 1, 2, 3), Box(5, 1, 6, 3), 3},
		{"side by side", Box(1, 1, 2, 2), Box(1, 3, 2, 4), 1},
		{"diagonal", Box(1, 1, 1, 1), Box(3, 3, 3, 3), 4},
		{"overlapping", Box(1, 1, 3, 3), Box(2, 2, 4, 4), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Distance(tt.b))
			assert.Equal(t, tt.want, tt.b.Distance(tt.a))
		})
	}
}

func TestMerge(t *testing.T) {
	assert.Equal(t, BoundingBox{}, Merge())
	assert.Equal(t, Box(2, 2, 2, 2), Merge(Box(2, 2, 2, 2)))
	assert.Equal(t, Box(1, 1, 6, 9), Merge(Box(1, 4, 2, 9), Box(3, 1, 6, 2), Box(2, 2, 2, 2)))
}

func TestParseType(t *testing.T) {
	for _, s := range []string{"header", "Header", " H "} {
		typ, err := ParseType(s)
		require.NoError(t, err)
		assert.Equal(t, Header, typ)
	}
	typ, err := ParseType("DATA")
	require.NoError(t, err)
	assert.Equal(t, Data, typ)

	_, err = ParseType("footer")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestLabelRegionJSON(t *testing.T) {
	r := NewLabelRegion(7, Header, 1, 2, 3, 4)
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"type":"header","top":1,"left":2,"bottom":3,"right":4}`, string(data))

	var back LabelRegion
	require.NoError(t, json.Unmarshal([]byte(`{"id":9,"type":"d","top":5,"left":1,"bottom":6,"right":2}`), &back))
	assert.Equal(t, NewLabelRegion(9, Data, 5, 1, 6, 2), back)
	assert.Equal(t, "D9", back.String())
}
