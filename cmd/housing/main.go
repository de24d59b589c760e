package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/zouzias/microgbt"
)

func main() {
	dataPath := flag.String("data", "data/housing.csv", "path to a CSV file, target in the last column")
	binary := flag.Bool("binary", false, "train a binary classifier (target must be 0/1) instead of a regressor")
	numIters := flag.Int("iters", 100, "maximum boosting iterations")
	earlyStop := flag.Int("early-stopping", 10, "rounds without validation improvement before stopping")
	flag.Parse()

	tbl, err := microgbt.LoadCSV(*dataPath, -1, true)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Loaded %d samples, %d features\n", len(tbl.X), len(tbl.X[0]))

	// Hold out 10% for validation, fixed seed for reproducibility.
	XTrain, XValid, yTrain, yValid, err := tbl.Split(0.1, 123)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Train: %d samples, Valid: %d samples\n\n", len(XTrain), len(XValid))

	metric := 1.0
	if *binary {
		metric = 0.0
	}
	gbt, err := microgbt.NewFromParams(map[string]float64{
		"gamma":               0.1,
		"lambda":              1.0,
		"max_depth":           4,
		"shrinkage_rate":      1.0,
		"min_split_gain":      0.1,
		"learning_rate":       0.1,
		"min_tree_size":       3,
		"num_boosting_rounds": 1000,
		"metric":              metric,
	})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(gbt)

	if err := gbt.Train(XTrain, yTrain, XValid, yValid, *numIters, *earlyStop); err != nil {
		log.Fatal(err)
	}
	fmt.Println(gbt)
	fmt.Printf("Best iteration: %d (of %d trees)\n\n", gbt.BestIteration(), gbt.NumTrees())

	report(gbt, XTrain, yTrain, "Training", *binary)
	report(gbt, XValid, yValid, "Validation", *binary)

	if names := tbl.Header; len(names) > 1 {
		importance := gbt.FeatureImportance()
		fmt.Println("\n--- Feature Importance ---")
		for i, name := range names[:len(names)-1] {
			fmt.Printf("  %-20s %.4f\n", name, importance[i])
		}
	}
}

func report(gbt *microgbt.GBT, X [][]float64, y []float64, label string, binary bool) {
	preds, err := gbt.PredictAll(X, gbt.BestIteration())
	if err != nil {
		log.Fatal(err)
	}
	if binary {
		fmt.Printf("[%s] ROC-AUC=%.4f\n", label, microgbt.ROCAUC(y, preds))
		return
	}
	fmt.Printf("[%s] RMSE=%.4f\n", label, microgbt.RMSE(y, preds))
}
