package microgbt

import "math"

// split describes the best (feature, bin) threshold found for a node,
// together with the child statistics the scan already accumulated.
type split struct {
	feature int
	bin     int
	gain    float64
	left    nodeStats
	right   nodeStats
}

// gainTerm is G²/(H+λ) for one side of a candidate split. A zero
// denominator yields +Inf, which the caller rejects as a non-finite gain.
func gainTerm(grad, hess, lambda float64) float64 {
	return grad * grad / (hess + lambda)
}

// findBestSplit scans every (feature, bin) candidate of the histogram and
// returns the highest-gain split satisfying the acceptance constraints:
//
//	gain(L, R) = ½(G_L²/(H_L+λ) + G_R²/(H_R+λ) − G_P²/(H_P+λ)) − γ
//
// with gain > MinSplitGain, both children holding at least MinTreeSize
// rows, and both child Hessian sums positive. Ties break toward the
// lowest feature index, then the lowest bin index; the scan order plus
// a strict comparison make the result deterministic. Non-finite gains
// (for instance from a zero H+λ denominator) are skipped as "no valid
// split at that bin" rather than reported as errors.
//
// The boolean result is false when no candidate qualifies and the node
// must become a leaf.
func findBestSplit(h *histogram, parent nodeStats, cfg *Config) (split, bool) {
	best := split{gain: math.Inf(-1)}
	found := false

	parentTerm := gainTerm(parent.grad, parent.hess, cfg.Lambda)

	for f := 0; f < h.nFeatures; f++ {
		var left nodeStats
		for b := 0; b < h.maxBin-1; b++ {
			cell := h.at(f, b)
			left.grad += cell.grad
			left.hess += cell.hess
			left.count += cell.count

			right := nodeStats{
				grad:  parent.grad - left.grad,
				hess:  parent.hess - left.hess,
				count: parent.count - left.count,
			}

			if left.count < cfg.MinTreeSize || right.count < cfg.MinTreeSize {
				continue
			}
			if left.hess <= 0 || right.hess <= 0 {
				continue
			}

			gain := 0.5*(gainTerm(left.grad, left.hess, cfg.Lambda)+
				gainTerm(right.grad, right.hess, cfg.Lambda)-
				parentTerm) - cfg.Gamma
			if math.IsInf(gain, 0) || math.IsNaN(gain) {
				continue
			}
			if gain <= cfg.MinSplitGain {
				continue
			}

			if gain > best.gain {
				best = split{feature: f, bin: b, gain: gain, left: left, right: right}
				found = true
			}
		}
	}
	return best, found
}

// leafWeight is the Newton-optimal constant output of a leaf holding the
// aggregate statistics stats: w = −G/(H+λ).
func leafWeight(stats nodeStats, lambda float64) float64 {
	return -stats.grad / (stats.hess + lambda)
}
