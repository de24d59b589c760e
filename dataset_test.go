package microgbt

import (
	"math"
	"math/rand"
	"slices"
	"sort"
	"testing"
)

func TestQuantileEdgesAscendingDeduplicated(t *testing.T) {
	tests := []struct {
		name   string
		column []float64
		maxBin int
	}{
		{
			name:   "distinct values",
			column: []float64{4, 1, 3, 2},
			maxBin: 4,
		},
		{
			name:   "heavy duplicates",
			column: []float64{1, 1, 1, 1, 2, 2, 3},
			maxBin: 8,
		},
		{
			name:   "more bins than values",
			column: []float64{5, 7},
			maxBin: 255,
		},
		{
			name:   "non-finite values dropped",
			column: []float64{math.NaN(), 1, math.Inf(1), 2, 3},
			maxBin: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edges := quantileEdges(tt.column, tt.maxBin)
			if len(edges) > tt.maxBin-1 {
				t.Errorf("got %d edges, want at most %d", len(edges), tt.maxBin-1)
			}
			if !sort.Float64sAreSorted(edges) {
				t.Errorf("edges not ascending: %v", edges)
			}
			for i := 1; i < len(edges); i++ {
				if edges[i] == edges[i-1] {
					t.Errorf("duplicate edge %v at %d", edges[i], i)
				}
			}
		})
	}
}

func TestQuantileEdgesConstantColumn(t *testing.T) {
	edges := quantileEdges([]float64{3, 3, 3, 3}, 255)
	if len(edges) != 1 || edges[0] != 3 {
		t.Fatalf("constant column should yield one edge, got %v", edges)
	}
}

func TestBinOfCountsEdgesStrictlyBelow(t *testing.T) {
	// bin(v) must equal the number of cut points strictly less than v.
	X := [][]float64{{1}, {2}, {3}, {4}}
	ds := newDataset(X, 4)

	for _, v := range []float64{0.5, 1, 1.5, 2, 2.5, 3, 3.5, 4, 100} {
		want := 0
		for _, e := range ds.binEdges[0] {
			if e < v {
				want++
			}
		}
		if got := int(ds.binOf(0, v)); got != want {
			t.Errorf("binOf(%v) = %d, want %d (edges %v)", v, got, want, ds.binEdges[0])
		}
	}
}

func TestBinnedValuesInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	X := make([][]float64, 200)
	for i := range X {
		X[i] = []float64{rng.NormFloat64(), rng.Float64() * 100, float64(rng.Intn(3))}
	}

	maxBin := 16
	ds := newDataset(X, maxBin)
	for i := 0; i < ds.nRows; i++ {
		for f := 0; f < ds.nFeatures; f++ {
			if b := int(ds.row(i)[f]); b < 0 || b >= maxBin {
				t.Fatalf("bin out of range at (%d, %d): %d", i, f, b)
			}
		}
	}
}

func TestBinningIsStable(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	X := make([][]float64, 100)
	for i := range X {
		X[i] = []float64{rng.NormFloat64(), rng.NormFloat64()}
	}

	a := newDataset(X, 32)
	b := newDataset(X, 32)
	for i := range X {
		if !slices.Equal(a.row(i), b.row(i)) {
			t.Fatalf("rebinning row %d differs: %v vs %v", i, a.row(i), b.row(i))
		}
	}
}

func TestBinOfNonFiniteGoesToBinZero(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {math.NaN()}}
	ds := newDataset(X, 4)

	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if got := ds.binOf(0, v); got != 0 {
			t.Errorf("binOf(%v) = %d, want 0", v, got)
		}
	}
	if got := ds.row(3)[0]; got != 0 {
		t.Errorf("NaN training cell binned to %d, want 0", got)
	}
}

func TestBinnedMatrixMatchesBinOf(t *testing.T) {
	X := [][]float64{
		{1.0, 10.0},
		{2.0, 20.0},
		{3.0, 30.0},
		{4.0, 40.0},
	}
	ds := newDataset(X, 4)
	for i := range X {
		for f := range X[i] {
			if ds.row(i)[f] != ds.binOf(f, X[i][f]) {
				t.Errorf("binned[%d][%d] = %d, binOf = %d", i, f, ds.row(i)[f], ds.binOf(f, X[i][f]))
			}
		}
	}
}
