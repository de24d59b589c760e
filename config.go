package microgbt

import "fmt"

// Metric selects the training objective and the validation loss.
type Metric int

const (
	// MetricLogLoss is binary classification with logistic loss.
	MetricLogLoss Metric = 0

	// MetricRMSE is regression with squared error.
	MetricRMSE Metric = 1
)

// Config controls the hyperparameters for training a [GBT] model.
type Config struct {
	// Gamma is the fixed cost subtracted from every split gain.
	Gamma float64

	// Lambda is the L2 regularization applied to leaf weights.
	Lambda float64

	// MaxDepth is the maximum depth of each tree (root depth = 0).
	MaxDepth int

	// ShrinkageRate is accepted for compatibility with the historical
	// parameter set and exposed via [GBT.ShrinkageRate], but is reserved:
	// LearningRate is the boosting step size.
	ShrinkageRate float64

	// LearningRate scales each new tree's contribution to the running
	// prediction. Must be in (0, 1].
	LearningRate float64

	// MinSplitGain is the minimum gain a split must exceed to be accepted.
	MinSplitGain float64

	// MinTreeSize is the minimum number of rows a node must route to each
	// child for a split to be valid.
	MinTreeSize int

	// NumBoostingRounds is the upper bound on ensemble size. The numIters
	// argument to [GBT.Train] additionally caps it; the effective round
	// count is the minimum of the two.
	NumBoostingRounds int

	// MaxBin is the number of quantile bins per feature. Bin indices are
	// stored one byte per cell, so MaxBin must be in [2, 256].
	MaxBin int

	// Metric selects the objective: MetricLogLoss or MetricRMSE.
	Metric Metric
}

func (c Config) validate() error {
	switch {
	case c.Gamma < 0:
		return fmt.Errorf("%w: gamma must be >= 0, got %g", ErrInvalidParam, c.Gamma)
	case c.Lambda < 0:
		return fmt.Errorf("%w: lambda must be >= 0, got %g", ErrInvalidParam, c.Lambda)
	case c.MaxDepth < 1:
		return fmt.Errorf("%w: max_depth must be >= 1, got %d", ErrInvalidParam, c.MaxDepth)
	case c.ShrinkageRate <= 0 || c.ShrinkageRate > 1:
		return fmt.Errorf("%w: shrinkage_rate must be in (0, 1], got %g", ErrInvalidParam, c.ShrinkageRate)
	case c.LearningRate <= 0 || c.LearningRate > 1:
		return fmt.Errorf("%w: learning_rate must be in (0, 1], got %g", ErrInvalidParam, c.LearningRate)
	case c.MinSplitGain < 0:
		return fmt.Errorf("%w: min_split_gain must be >= 0, got %g", ErrInvalidParam, c.MinSplitGain)
	case c.MinTreeSize < 1:
		return fmt.Errorf("%w: min_tree_size must be >= 1, got %d", ErrInvalidParam, c.MinTreeSize)
	case c.NumBoostingRounds < 1:
		return fmt.Errorf("%w: num_boosting_rounds must be >= 1, got %d", ErrInvalidParam, c.NumBoostingRounds)
	case c.MaxBin < 2 || c.MaxBin > 256:
		return fmt.Errorf("%w: max_bin must be in [2, 256], got %d", ErrInvalidParam, c.MaxBin)
	case c.Metric != MetricLogLoss && c.Metric != MetricRMSE:
		return fmt.Errorf("%w: metric must be 0 (logloss) or 1 (rmse), got %d", ErrInvalidParam, c.Metric)
	}
	return nil
}

// DefaultConfig returns a Config with sensible defaults for regression:
// no split cost, L2 regularization 1.0, depth 6, learning rate 0.1,
// 100 boosting rounds, 255 bins per feature.
func DefaultConfig() Config {
	return Config{
		Gamma:             0.0,
		Lambda:            1.0,
		MaxDepth:          6,
		ShrinkageRate:     1.0,
		LearningRate:      0.1,
		MinSplitGain:      0.0,
		MinTreeSize:       1,
		NumBoostingRounds: 100,
		MaxBin:            255,
		Metric:            MetricRMSE,
	}
}

// configFromParams builds a Config from a dynamic parameter mapping.
// Recognized keys override the defaults; unknown keys are silently
// ignored; integer parameters are truncated from their float values.
func configFromParams(params map[string]float64) Config {
	cfg := DefaultConfig()
	for key, value := range params {
		switch key {
		case "gamma":
			cfg.Gamma = value
		case "lambda":
			cfg.Lambda = value
		case "max_depth":
			cfg.MaxDepth = int(value)
		case "shrinkage_rate":
			cfg.ShrinkageRate = value
		case "learning_rate":
			cfg.LearningRate = value
		case "min_split_gain":
			cfg.MinSplitGain = value
		case "min_tree_size":
			cfg.MinTreeSize = int(value)
		case "num_boosting_rounds":
			cfg.NumBoostingRounds = int(value)
		case "max_bin":
			cfg.MaxBin = int(value)
		case "metric":
			cfg.Metric = Metric(value)
		}
	}
	return cfg
}
