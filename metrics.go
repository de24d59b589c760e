package microgbt

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// RMSE returns the root mean squared error between targets and predictions.
func RMSE(y, pred []float64) float64 {
	if len(y) != len(pred) {
		panic("RMSE: mismatched slice lengths")
	}
	var sse float64
	for i := range y {
		diff := pred[i] - y[i]
		sse += diff * diff
	}
	return math.Sqrt(sse / float64(len(y)))
}

// ROCAUC returns the area under the receiver operating characteristic
// curve for binary targets (0/1) and predicted scores. Targets must
// contain at least one positive and one negative example.
func ROCAUC(y, score []float64) float64 {
	if len(y) != len(score) {
		panic("ROCAUC: mismatched slice lengths")
	}

	scores := slices.Clone(score)
	classes := make([]bool, len(y))
	for i := range y {
		classes[i] = y[i] == 1.0
	}

	stat.SortWeightedLabeled(scores, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)
	return integrate.Trapezoidal(fpr, tpr)
}
