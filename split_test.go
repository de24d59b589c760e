package microgbt

import (
	"math"
	"testing"
)

// splitFixture bins a single-feature matrix and accumulates its
// histogram so split-finding can run against known statistics.
func splitFixture(t *testing.T, X [][]float64, grad, hess []float64, maxBin int) (*histogram, nodeStats) {
	t.Helper()
	ds := newDataset(X, maxBin)
	rows := make([]int, len(X))
	for i := range rows {
		rows[i] = i
	}
	h := newHistogram(ds.nFeatures, ds.maxBin)
	h.accumulate(ds, rows, grad, hess)
	return h, h.total()
}

func TestFindBestSplitSeparatesGradientClusters(t *testing.T) {
	// Gradients 1,2 vs 10,11: the split must land between values 2 and 3.
	X := [][]float64{{1}, {2}, {3}, {4}}
	grad := []float64{1, 2, 10, 11}
	hess := []float64{1, 1, 1, 1}

	cfg := DefaultConfig()
	cfg.Lambda = 0
	cfg.MinTreeSize = 1
	h, parent := splitFixture(t, X, grad, hess, 4)

	sp, ok := findBestSplit(h, parent, &cfg)
	if !ok {
		t.Fatal("expected a split, got none")
	}
	if sp.feature != 0 {
		t.Errorf("feature = %d, want 0", sp.feature)
	}
	if sp.left.count != 2 || sp.right.count != 2 {
		t.Errorf("split counts = (%d, %d), want (2, 2)", sp.left.count, sp.right.count)
	}
	if math.Abs(sp.left.grad-3) > 1e-9 || math.Abs(sp.right.grad-21) > 1e-9 {
		t.Errorf("split grads = (%v, %v), want (3, 21)", sp.left.grad, sp.right.grad)
	}

	// gain = ½(9/2 + 441/2 − 576/4) = 40.5 with λ=0, γ=0.
	if math.Abs(sp.gain-40.5) > 1e-9 {
		t.Errorf("gain = %v, want 40.5", sp.gain)
	}
}

func TestFindBestSplitUniformGradientsNoSplit(t *testing.T) {
	// Identical per-row statistics: every candidate gain is non-positive.
	X := [][]float64{{1}, {2}, {3}, {4}}
	grad := []float64{2, 2, 2, 2}
	hess := []float64{1, 1, 1, 1}

	cfg := DefaultConfig()
	cfg.MinTreeSize = 1
	h, parent := splitFixture(t, X, grad, hess, 4)

	if sp, ok := findBestSplit(h, parent, &cfg); ok {
		t.Errorf("expected no split for uniform gradients, got %+v", sp)
	}
}

func TestFindBestSplitRespectsMinTreeSize(t *testing.T) {
	// The only informative split isolates one row; MinTreeSize=2 forbids it.
	X := [][]float64{{1}, {2}, {3}}
	grad := []float64{1, 1, 10}
	hess := []float64{1, 1, 1}

	cfg := DefaultConfig()
	cfg.MinTreeSize = 2
	h, parent := splitFixture(t, X, grad, hess, 4)

	if sp, ok := findBestSplit(h, parent, &cfg); ok {
		if sp.left.count < 2 || sp.right.count < 2 {
			t.Errorf("split violates MinTreeSize: left=%d right=%d", sp.left.count, sp.right.count)
		}
	}
}

func TestFindBestSplitRespectsMinSplitGain(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	grad := []float64{1, 2, 10, 11}
	hess := []float64{1, 1, 1, 1}

	cfg := DefaultConfig()
	cfg.Lambda = 0
	cfg.MinTreeSize = 1
	h, parent := splitFixture(t, X, grad, hess, 4)

	// The best achievable gain is 40.5; demanding more must yield a leaf.
	cfg.MinSplitGain = 50
	if _, ok := findBestSplit(h, parent, &cfg); ok {
		t.Error("expected no split when every gain is below MinSplitGain")
	}

	cfg.MinSplitGain = 40
	sp, ok := findBestSplit(h, parent, &cfg)
	if !ok {
		t.Fatal("expected the 40.5-gain split to clear a 40 threshold")
	}
	if sp.gain <= cfg.MinSplitGain {
		t.Errorf("accepted gain %v <= MinSplitGain %v", sp.gain, cfg.MinSplitGain)
	}
}

func TestFindBestSplitGammaReducesGain(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	grad := []float64{1, 2, 10, 11}
	hess := []float64{1, 1, 1, 1}

	cfg := DefaultConfig()
	cfg.Lambda = 0
	cfg.MinTreeSize = 1
	cfg.Gamma = 10
	h, parent := splitFixture(t, X, grad, hess, 4)

	sp, ok := findBestSplit(h, parent, &cfg)
	if !ok {
		t.Fatal("expected a split")
	}
	if math.Abs(sp.gain-30.5) > 1e-9 {
		t.Errorf("gain = %v, want 30.5 after subtracting gamma", sp.gain)
	}
}

func TestFindBestSplitTieBreaksLowestFeature(t *testing.T) {
	// Two identical features admit identical best splits; the lower
	// feature index must win.
	X := [][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}}
	grad := []float64{1, 2, 10, 11}
	hess := []float64{1, 1, 1, 1}

	cfg := DefaultConfig()
	cfg.MinTreeSize = 1
	h, parent := splitFixture(t, X, grad, hess, 4)

	sp, ok := findBestSplit(h, parent, &cfg)
	if !ok {
		t.Fatal("expected a split")
	}
	if sp.feature != 0 {
		t.Errorf("tie broke to feature %d, want 0", sp.feature)
	}
}

func TestFindBestSplitZeroHessianChildrenSkipped(t *testing.T) {
	// Zero Hessians on one side must be skipped, not divided by.
	X := [][]float64{{1}, {2}, {3}, {4}}
	grad := []float64{1, 2, 10, 11}
	hess := []float64{0, 0, 1, 1}

	cfg := DefaultConfig()
	cfg.Lambda = 0
	cfg.MinTreeSize = 1
	h, parent := splitFixture(t, X, grad, hess, 4)

	if sp, ok := findBestSplit(h, parent, &cfg); ok {
		if sp.left.hess <= 0 || sp.right.hess <= 0 {
			t.Errorf("accepted split with non-positive child Hessian: %+v", sp)
		}
	}
}

func TestLeafWeight(t *testing.T) {
	tests := []struct {
		name     string
		stats    nodeStats
		lambda   float64
		expected float64
	}{
		{name: "unregularized", stats: nodeStats{grad: 6, hess: 3}, lambda: 0, expected: -2},
		{name: "regularized", stats: nodeStats{grad: 6, hess: 3}, lambda: 1, expected: -1.5},
		{name: "zero gradient", stats: nodeStats{grad: 0, hess: 5}, lambda: 1, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := leafWeight(tt.stats, tt.lambda); math.Abs(got-tt.expected) > 1e-12 {
				t.Errorf("leafWeight = %v, want %v", got, tt.expected)
			}
		})
	}
}
