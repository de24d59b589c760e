// Package microgbt implements a minimalistic histogram-based gradient
// boosting decision tree (GBDT) engine.
//
// It fits an additive ensemble of regression trees to dense numeric
// matrices using second-order (Newton) gain on quantile-binned features,
// with early stopping against a validation set. Regression with squared
// error and binary classification with logistic loss are supported.
//
// # Quick Start
//
// Train a regressor and predict with the best iteration:
//
//	gbt, err := microgbt.NewFromParams(map[string]float64{
//		"gamma":         0.1,
//		"lambda":        1.0,
//		"max_depth":     4,
//		"learning_rate": 0.1,
//		"min_tree_size": 3,
//		"metric":        1,
//	})
//	err = gbt.Train(XTrain, yTrain, XValid, yValid, 100, 10)
//	yHat, err := gbt.Predict(x, gbt.BestIteration())
//
// For binary classification (metric 0) predictions are probabilities in
// [0, 1]; labels must lie in [0, 1] (typically 0.0 or 1.0).
//
// # Loading Data
//
// Load a CSV file with automatic label encoding for non-numeric columns:
//
//	tbl, err := microgbt.LoadCSV("data.csv", -1, true) // -1 = last column is target
//	XTrain, XValid, yTrain, yValid, err := tbl.Split(0.1, 42)
package microgbt
