package microgbt

// binStats aggregates the gradient sum, Hessian sum, and row count of a
// single (feature, bin) cell.
type binStats struct {
	grad  float64
	hess  float64
	count int
}

// nodeStats are the aggregate statistics of all rows routed to a node.
type nodeStats struct {
	grad  float64
	hess  float64
	count int
}

// histogram holds per-(feature, bin) gradient statistics for the rows of
// one tree node, laid out feature-major in a single flat slice.
type histogram struct {
	nFeatures int
	maxBin    int
	bins      []binStats
}

func newHistogram(nFeatures, maxBin int) *histogram {
	return &histogram{
		nFeatures: nFeatures,
		maxBin:    maxBin,
		bins:      make([]binStats, nFeatures*maxBin),
	}
}

func (h *histogram) at(feature, bin int) binStats {
	return h.bins[feature*h.maxBin+bin]
}

// accumulate adds the gradient statistics of the given rows. Rows are
// visited in slice order so that accumulation is deterministic.
func (h *histogram) accumulate(ds *Dataset, rows []int, grad, hess []float64) {
	for _, i := range rows {
		binnedRow := ds.row(i)
		g, hs := grad[i], hess[i]
		for f := 0; f < h.nFeatures; f++ {
			cell := &h.bins[f*h.maxBin+int(binnedRow[f])]
			cell.grad += g
			cell.hess += hs
			cell.count++
		}
	}
}

// subtractFrom fills h with parent - child, deriving a sibling histogram
// without touching the sibling's rows.
func (h *histogram) subtractFrom(parent, child *histogram) {
	for i := range h.bins {
		h.bins[i] = binStats{
			grad:  parent.bins[i].grad - child.bins[i].grad,
			hess:  parent.bins[i].hess - child.bins[i].hess,
			count: parent.bins[i].count - child.bins[i].count,
		}
	}
}

// total sums the statistics of one feature's bins, which equals the
// node's aggregate statistics for any feature.
func (h *histogram) total() nodeStats {
	var t nodeStats
	for b := 0; b < h.maxBin; b++ {
		cell := h.at(0, b)
		t.grad += cell.grad
		t.hess += cell.hess
		t.count += cell.count
	}
	return t
}
