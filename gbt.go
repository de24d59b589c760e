package microgbt

import (
	"fmt"
	"math"
)

// GBT is a gradient boosting decision tree model. Create one with [New]
// or [NewFromParams], train it with [GBT.Train], and make predictions
// with [GBT.Predict].
type GBT struct {
	cfg       Config
	objective Objective

	isFitted       bool
	trees          []*Tree
	ds             *Dataset
	basePrediction float64
	nFeatures      int

	bestIteration int
	bestLoss      float64

	featureImportance []float64
}

// New creates an untrained GBT model with the given configuration.
// It returns ErrInvalidParam if any configuration value is outside its
// domain. Call [GBT.Train] to fit the model on data.
func New(cfg Config) (*GBT, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &GBT{
		cfg:       cfg,
		objective: objectiveFor(cfg.Metric),
	}, nil
}

// NewFromParams creates an untrained GBT model from a dynamic parameter
// mapping. Recognized keys override the defaults of [DefaultConfig];
// unknown keys are silently ignored; integer parameters are truncated
// from their float values.
func NewFromParams(params map[string]float64) (*GBT, error) {
	return New(configFromParams(params))
}

// Train fits the model: it quantizes XTrain once, then runs up to
// min(numIters, NumBoostingRounds) boosting rounds, each fitting one tree
// to the current gradient statistics, updating train and validation raw
// scores by LearningRate times the tree's output, and evaluating the
// objective's loss on the validation set. Training stops early once the
// validation loss has not improved for earlyStoppingRounds consecutive
// rounds. Calling Train on an already-trained model retrains from scratch.
func (g *GBT) Train(XTrain [][]float64, yTrain []float64, XValid [][]float64, yValid []float64, numIters, earlyStoppingRounds int) error {
	if numIters < 1 {
		return fmt.Errorf("%w: numIters must be >= 1, got %d", ErrInvalidParam, numIters)
	}
	if earlyStoppingRounds < 1 {
		return fmt.Errorf("%w: earlyStoppingRounds must be >= 1, got %d", ErrInvalidParam, earlyStoppingRounds)
	}
	if err := g.validateShapes(XTrain, yTrain, XValid, yValid); err != nil {
		return err
	}
	if err := g.objective.ValidateLabels(yTrain); err != nil {
		return err
	}
	if err := g.objective.ValidateLabels(yValid); err != nil {
		return err
	}

	// Reset state for re-fitting.
	g.trees = nil
	g.isFitted = false
	g.bestIteration = 0
	g.bestLoss = math.Inf(1)
	g.nFeatures = len(XTrain[0])

	g.ds = newDataset(XTrain, g.cfg.MaxBin)
	g.basePrediction = g.objective.InitPrediction(yTrain)

	fTrain := make([]float64, len(yTrain))
	for i := range fTrain {
		fTrain[i] = g.basePrediction
	}
	fValid := make([]float64, len(yValid))
	for j := range fValid {
		fValid[j] = g.basePrediction
	}

	allRows := make([]int, len(yTrain))
	for i := range allRows {
		allRows[i] = i
	}

	rounds := min(numIters, g.cfg.NumBoostingRounds)
	predValid := make([]float64, len(yValid))
	staleRounds := 0

	for r := 0; r < rounds; r++ {
		grad, hess := g.objective.GradHess(fTrain, yTrain)
		tree := growTree(g.ds, allRows, grad, hess, &g.cfg)
		g.trees = append(g.trees, tree)

		for i := range fTrain {
			fTrain[i] += g.cfg.LearningRate * tree.predictBinned(g.ds.row(i))
		}
		for j := range fValid {
			fValid[j] += g.cfg.LearningRate * tree.predict(g.ds, XValid[j])
		}

		for j := range fValid {
			predValid[j] = g.objective.Transform(fValid[j])
		}
		loss := g.objective.Loss(yValid, predValid)

		if loss < g.bestLoss {
			g.bestLoss = loss
			g.bestIteration = r
			staleRounds = 0
		} else {
			staleRounds++
		}
		if staleRounds >= earlyStoppingRounds {
			break
		}
	}

	g.calculateFeatureImportance()
	g.isFitted = true
	return nil
}

func (g *GBT) validateShapes(XTrain [][]float64, yTrain []float64, XValid [][]float64, yValid []float64) error {
	switch {
	case len(XTrain) < 1:
		return fmt.Errorf("%w: no training rows", ErrEmptyDataset)
	case len(XTrain[0]) < 1:
		return fmt.Errorf("%w: no features", ErrEmptyDataset)
	case len(XTrain) != len(yTrain):
		return fmt.Errorf("%w: %d training rows but %d training labels", ErrShapeMismatch, len(XTrain), len(yTrain))
	case len(XValid) < 1:
		return fmt.Errorf("%w: no validation rows", ErrEmptyDataset)
	case len(XValid) != len(yValid):
		return fmt.Errorf("%w: %d validation rows but %d validation labels", ErrShapeMismatch, len(XValid), len(yValid))
	case !hasSimilarLength(XTrain), !hasSimilarLength(XValid):
		return fmt.Errorf("%w: ragged feature matrix", ErrShapeMismatch)
	case len(XTrain[0]) != len(XValid[0]):
		return fmt.Errorf("%w: %d training features but %d validation features", ErrShapeMismatch, len(XTrain[0]), len(XValid[0]))
	}
	return nil
}

// Predict returns the model's prediction for the feature vector x using
// trees [0, k] in round order: regression value for MetricRMSE, or a
// probability in [0, 1] for MetricLogLoss. It returns ErrIndexOutOfRange
// when k is at or beyond the number of trees grown, and ErrShapeMismatch
// when x does not have one value per training feature.
func (g *GBT) Predict(x []float64, k int) (float64, error) {
	if k < 0 || k >= len(g.trees) {
		return 0, fmt.Errorf("%w: tree %d of %d", ErrIndexOutOfRange, k, len(g.trees))
	}
	if len(x) != g.nFeatures {
		return 0, fmt.Errorf("%w: expected %d features, got %d", ErrShapeMismatch, g.nFeatures, len(x))
	}

	raw := g.basePrediction
	for _, tree := range g.trees[:k+1] {
		raw += g.cfg.LearningRate * tree.predict(g.ds, x)
	}
	return g.objective.Transform(raw), nil
}

// PredictAll returns predictions for each row of X using trees [0, k].
func (g *GBT) PredictAll(X [][]float64, k int) ([]float64, error) {
	results := make([]float64, len(X))
	for i, x := range X {
		pred, err := g.Predict(x, k)
		if err != nil {
			return nil, err
		}
		results[i] = pred
	}
	return results, nil
}

// BestIteration returns the round index after whose tree the validation
// loss reached its observed minimum. It is 0 before training.
func (g *GBT) BestIteration() int {
	return g.bestIteration
}

// NumTrees returns the number of trees grown so far.
func (g *GBT) NumTrees() int {
	return len(g.trees)
}

// MaxDepth returns the configured maximum tree depth.
func (g *GBT) MaxDepth() int { return g.cfg.MaxDepth }

// MinSplitGain returns the configured minimum split gain.
func (g *GBT) MinSplitGain() float64 { return g.cfg.MinSplitGain }

// LearningRate returns the configured boosting step size.
func (g *GBT) LearningRate() float64 { return g.cfg.LearningRate }

// Gamma returns the configured fixed split cost.
func (g *GBT) Gamma() float64 { return g.cfg.Gamma }

// Lambda returns the configured L2 leaf regularization.
func (g *GBT) Lambda() float64 { return g.cfg.Lambda }

// ShrinkageRate returns the configured shrinkage rate. The value is
// stored and reported but reserved: LearningRate is the boosting step.
func (g *GBT) ShrinkageRate() float64 { return g.cfg.ShrinkageRate }

// FeatureImportance returns the gain-based feature importance scores,
// normalized to sum to 1.0. The scores are all zero when no tree holds a
// split. Returns an empty slice before training.
func (g *GBT) FeatureImportance() []float64 {
	if !g.isFitted {
		return []float64{}
	}
	return g.featureImportance
}

func (g *GBT) calculateFeatureImportance() {
	res := make([]float64, g.nFeatures)
	for _, tree := range g.trees {
		tree.collectGains(res)
	}
	sumOfGains := sum(res)
	if sumOfGains != 0 {
		for i := range res {
			res[i] = res[i] / sumOfGains
		}
	}
	g.featureImportance = res
}

// String returns a human-readable summary of the model.
func (g *GBT) String() string {
	metric := "logloss"
	if g.cfg.Metric == MetricRMSE {
		metric = "rmse"
	}
	if !g.isFitted {
		return fmt.Sprintf("GBT(untrained, metric=%s, max_depth=%d, learning_rate=%g, lambda=%g, gamma=%g)",
			metric, g.cfg.MaxDepth, g.cfg.LearningRate, g.cfg.Lambda, g.cfg.Gamma)
	}
	return fmt.Sprintf("GBT(trees=%d, best_iteration=%d, best_loss=%.6f, metric=%s, max_depth=%d, learning_rate=%g, lambda=%g, gamma=%g)",
		len(g.trees), g.bestIteration, g.bestLoss, metric, g.cfg.MaxDepth, g.cfg.LearningRate, g.cfg.Lambda, g.cfg.Gamma)
}
