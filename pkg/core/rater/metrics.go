package rater

import (
	"github.com/matzehuels/sheetgraph/pkg/core/graph"
	"github.com/matzehuels/sheetgraph/pkg/core/region"
)

// Metric names a scoring term.
type Metric string

// Component metrics.
const (
	NDAR    Metric = "ndar"
	NHAR    Metric = "nhar"
	DP      Metric = "dp"
	HP      Metric = "hp"
	IOC     Metric = "ioc"
	OVH     Metric = "ovh"
	DAHR    Metric = "dahr"
	AvgWAEC Metric = "avg_waec"
	AvgWAER Metric = "avg_waer"
)

// Partition metrics.
const (
	OVR Metric = "ovr"
)

var descriptions = map[Metric]string{
	NDAR:    "data columns not aligned with the top header",
	NHAR:    "top header columns not aligned with data",
	DP:      "component holds only data",
	HP:      "component holds only headers",
	IOC:     "header and data meet in a single column",
	OVH:     "header groups other than the top header",
	DAHR:    "share of data area above the top header",
	AvgWAEC: "average width of empty column runs",
	AvgWAER: "average height of empty row runs",
	OVR:     "overlap between detected tables",
}

// Description returns a short human-readable explanation of the metric.
func (m Metric) Description() string { return descriptions[m] }

type componentFunc func(*graph.Component) float64

type partitionFunc func([]*graph.Component) float64

var componentRegistry = []struct {
	name Metric
	fn   componentFunc
}{
	{NDAR, ndar},
	{NHAR, nhar},
	{DP, dataOnly},
	{HP, headerOnly},
	{IOC, singleColumn},
	{OVH, otherHeaders},
	{DAHR, dataAboveHeader},
	{AvgWAEC, avgEmptyColumnWidth},
	{AvgWAER, avgEmptyRowHeight},
}

var partitionRegistry = []struct {
	name Metric
	fn   partitionFunc
}{
	{OVR, overlap},
}

// ComponentMetrics returns the component metrics in weight order.
func ComponentMetrics() []Metric {
	out := make([]Metric, len(componentRegistry))
	for i, m := range componentRegistry {
		out[i] = m.name
	}
	return out
}

// PartitionMetrics returns the partition metrics in weight order. Their
// weights follow the component metric weights.
func PartitionMetrics() []Metric {
	out := make([]Metric, len(partitionRegistry))
	for i, m := range partitionRegistry {
		out[i] = m.name
	}
	return out
}

// Metrics returns every metric in weight order.
func Metrics() []Metric {
	return append(ComponentMetrics(), PartitionMetrics()...)
}

// WeightCount returns the required length of a [FitnessRater] weight vector.
func WeightCount() int { return len(componentRegistry) + len(partitionRegistry) }

// DefaultWeights returns a weight vector of ones.
func DefaultWeights() []float64 {
	w := make([]float64, WeightCount())
	for i := range w {
		w[i] = 1
	}
	return w
}

func ndar(c *graph.Component) float64 {
	cd, cht := c.DataColumns(), c.HeaderColumns()
	if len(cd) == 0 || len(cht) == 0 {
		return 0
	}
	return 1 - float64(region.SharedLen(cd, cht))/float64(region.CoveredLen(cd))
}

func nhar(c *graph.Component) float64 {
	cd, cht := c.DataColumns(), c.HeaderColumns()
	if len(cd) == 0 || len(cht) == 0 {
		return 0
	}
	return 1 - float64(region.SharedLen(cd, cht))/float64(region.CoveredLen(cht))
}

func dataOnly(c *graph.Component) float64 {
	if len(c.Heads()) == 0 && len(c.Data()) > 0 {
		return 1
	}
	return 0
}

func headerOnly(c *graph.Component) float64 {
	if len(c.Data()) == 0 && len(c.Heads()) > 0 {
		return 1
	}
	return 0
}

func singleColumn(c *graph.Component) float64 {
	cd, cht := c.DataColumns(), c.HeaderColumns()
	if len(cd) == 1 && len(cht) == 1 && cd[0] == cht[0] && cd[0].Len() == 1 {
		return 1
	}
	return 0
}

// otherHeaders counts header groups besides the top header that span at
// least two columns.
func otherHeaders(c *graph.Component) float64 {
	top := c.HeaderTop()
	n := 0
	for _, group := range c.HeaderGroups() {
		if len(top) > 0 && group[0].ID == top[0].ID {
			continue
		}
		if region.CoveredLen(graph.ColumnSpans(group)) >= 2 {
			n++
		}
	}
	return float64(n)
}

func dataAboveHeader(c *graph.Component) float64 {
	data := c.Data()
	if len(data) == 0 {
		return 0
	}
	row, err := c.HeaderTopRow()
	if err != nil {
		return 0
	}

	var above, total int
	for _, d := range data {
		total += d.Area()
		if d.Top < row {
			above += region.Box(d.Top, d.Left, min(d.Bottom, row-1), d.Right).Area()
		}
	}
	return float64(above) / float64(total)
}

func avgEmptyColumnWidth(c *graph.Component) float64 {
	b := c.BoundingBox()
	dims := c.Graph().Dimensions()
	return emptyRunAverage(graph.ColumnSpans(c.Regions()), b.Left, b.Right, dims.ColumnWidth)
}

func avgEmptyRowHeight(c *graph.Component) float64 {
	b := c.BoundingBox()
	dims := c.Graph().Dimensions()
	return emptyRunAverage(graph.RowSpans(c.Regions()), b.Top, b.Bottom, dims.RowHeight)
}

// emptyRunAverage sums the size of every index in [lo, hi] outside the
// merged covered runs and divides by the number of maximal runs of such
// indices.
func emptyRunAverage(covered []region.Span, lo, hi int, size func(int) float64) float64 {
	var total float64
	runs := 0
	gap := func(from, to int) {
		if from > to {
			return
		}
		runs++
		for idx := from; idx <= to; idx++ {
			total += size(idx)
		}
	}

	next := lo
	for _, s := range covered {
		if s.Hi < lo {
			continue
		}
		if s.Lo > hi {
			break
		}
		gap(next, s.Lo-1)
		next = max(next, s.Hi+1)
	}
	gap(next, hi)

	if runs == 0 {
		return 0
	}
	return total / float64(runs)
}

// overlap sums, over every pair of components, the shared column count
// times the shared row count of their bounding boxes, normalized by the
// number of columns times the number of rows covered by any component.
func overlap(components []*graph.Component) float64 {
	if len(components) == 0 {
		return 0
	}
	cols := make([]region.Span, len(components))
	rows := make([]region.Span, len(components))
	var sum int
	for i, ci := range components {
		bi := ci.BoundingBox()
		cols[i], rows[i] = bi.ColumnSpan(), bi.RowSpan()
		for _, cj := range components[i+1:] {
			bj := cj.BoundingBox()
			sum += spanOverlap(bi.Left, bi.Right, bj.Left, bj.Right) *
				spanOverlap(bi.Top, bi.Bottom, bj.Top, bj.Bottom)
		}
	}
	return float64(sum) / float64(region.CoveredLen(region.MergeSpans(cols))*region.CoveredLen(region.MergeSpans(rows)))
}

func spanOverlap(lo1, hi1, lo2, hi2 int) int {
	return max(0, min(hi1, hi2)-max(lo1, lo2)+1)
}
