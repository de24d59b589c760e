package microgbt

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Dataset owns the quantized view of a training matrix: per-feature
// quantile bin edges and the integer bin-index matrix derived from them.
// It is constructed once per training run and is read-only afterwards.
//
// Histogram split finding over maxBin discrete values turns an O(n*f)
// sort per split into O(n*f) counting, and makes gain evaluation
// O(maxBin*f) per node.
type Dataset struct {
	nRows     int
	nFeatures int
	maxBin    int

	// binEdges[f] holds up to maxBin-1 cut points for feature f, chosen
	// as equal-frequency quantiles of the column's finite values,
	// deduplicated and ascending.
	binEdges [][]float64

	// binned[i][f] is the bin index of X[i][f], always in [0, maxBin).
	binned [][]uint8
}

// newDataset quantizes X into bin indices. X must be rectangular and
// non-empty; the caller validates shapes beforehand.
func newDataset(X [][]float64, maxBin int) *Dataset {
	ds := &Dataset{
		nRows:     len(X),
		nFeatures: len(X[0]),
		maxBin:    maxBin,
	}

	ds.binEdges = make([][]float64, ds.nFeatures)
	column := make([]float64, 0, ds.nRows)
	for f := 0; f < ds.nFeatures; f++ {
		column = column[:0]
		for i := 0; i < ds.nRows; i++ {
			column = append(column, X[i][f])
		}
		ds.binEdges[f] = quantileEdges(column, maxBin)
	}

	ds.binned = make([][]uint8, ds.nRows)
	for i := 0; i < ds.nRows; i++ {
		row := make([]uint8, ds.nFeatures)
		for f := 0; f < ds.nFeatures; f++ {
			row[f] = ds.binOf(f, X[i][f])
		}
		ds.binned[i] = row
	}
	return ds
}

// quantileEdges selects up to maxBin-1 cut points at equally spaced
// quantile positions of the column's finite values.
func quantileEdges(column []float64, maxBin int) []float64 {
	finite := make([]float64, 0, len(column))
	for _, v := range column {
		if !math.IsInf(v, 0) && !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	if len(finite) == 0 {
		return nil
	}
	sort.Float64s(finite)

	edges := make([]float64, 0, maxBin-1)
	for k := 1; k < maxBin; k++ {
		cut := stat.Quantile(float64(k)/float64(maxBin), stat.Empirical, finite, nil)
		if len(edges) == 0 || cut > edges[len(edges)-1] {
			edges = append(edges, cut)
		}
	}
	return edges
}

// binOf assigns v to a bin for feature f: the number of cut points
// strictly less than v. Non-finite values go to bin 0, matching their
// treatment at training time.
func (d *Dataset) binOf(f int, v float64) uint8 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return uint8(sort.SearchFloat64s(d.binEdges[f], v))
}

// row returns the binned feature vector of training row i.
func (d *Dataset) row(i int) []uint8 {
	return d.binned[i]
}
