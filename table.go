package microgbt

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"strconv"
	"strings"
)

// Table holds loaded CSV data with features, target, and any label
// encodings. The engine itself consumes plain matrices; Table exists so
// the example programs and tests can feed it real files.
type Table struct {
	X              [][]float64
	Y              []float64
	Encodings      map[int]map[string]float64 // featureIndex → (stringValue → numericValue)
	TargetEncoding map[string]float64         // target column encoding, nil if target is numeric
	Header         []string
}

// LoadCSV reads a CSV file into memory and returns a Table. The
// targetColumn selects the target (negative indexing counts from the
// end, e.g. -1 for the last column). Column types are inferred
// per-column: if any value in a column is non-numeric, the entire
// column is label-encoded.
func LoadCSV(path string, targetColumn int, hasHeader bool) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %s has no records", ErrEmptyDataset, path)
	}

	tbl := &Table{Encodings: make(map[int]map[string]float64)}

	startRow := 0
	if hasHeader {
		tbl.Header = records[0]
		startRow = 1
	}
	if startRow >= len(records) {
		return nil, fmt.Errorf("%w: %s has no data rows", ErrEmptyDataset, path)
	}

	dataRows := records[startRow:]
	nCols := len(dataRows[0])
	if nCols < 2 {
		return nil, fmt.Errorf("csv must have at least 2 columns (got %d)", nCols)
	}

	if targetColumn < 0 {
		targetColumn = nCols + targetColumn
	}
	if targetColumn < 0 || targetColumn >= nCols {
		return nil, fmt.Errorf("target column %d out of range for %d columns", targetColumn, nCols)
	}

	for i, record := range dataRows {
		if len(record) != nCols {
			return nil, fmt.Errorf("%w: row %d has %d columns, expected %d", ErrShapeMismatch, i+startRow, len(record), nCols)
		}
		for j := range record {
			dataRows[i][j] = strings.TrimSpace(record[j])
		}
	}

	// A column is string-typed as soon as one cell fails to parse.
	isStringCol := make([]bool, nCols)
	for _, record := range dataRows {
		for col, val := range record {
			if val == "" {
				return nil, fmt.Errorf("empty value at column %d", col)
			}
			if !isStringCol[col] {
				if _, err := strconv.ParseFloat(val, 64); err != nil {
					isStringCol[col] = true
				}
			}
		}
	}

	// Label-encode string columns in order of first appearance.
	colEncodings := make(map[int]map[string]float64)
	for col := 0; col < nCols; col++ {
		if !isStringCol[col] {
			continue
		}
		enc := make(map[string]float64)
		for _, record := range dataRows {
			if _, ok := enc[record[col]]; !ok {
				enc[record[col]] = float64(len(enc))
			}
		}
		colEncodings[col] = enc
	}

	tbl.X = make([][]float64, len(dataRows))
	tbl.Y = make([]float64, len(dataRows))
	for i, record := range dataRows {
		features := make([]float64, 0, nCols-1)
		for col, val := range record {
			var v float64
			if enc := colEncodings[col]; enc != nil {
				v = enc[val]
			} else {
				v, _ = strconv.ParseFloat(val, 64) // validated above
			}
			if col == targetColumn {
				tbl.Y[i] = v
			} else {
				features = append(features, v)
			}
		}
		tbl.X[i] = features
	}

	// Re-key encodings by feature index, skipping the target column.
	featureIdx := 0
	for col := 0; col < nCols; col++ {
		if col == targetColumn {
			if colEncodings[col] != nil {
				tbl.TargetEncoding = colEncodings[col]
			}
			continue
		}
		if colEncodings[col] != nil {
			tbl.Encodings[featureIdx] = colEncodings[col]
		}
		featureIdx++
	}

	return tbl, nil
}

// TrainValidSplit shuffles and splits features and targets into training
// and validation sets. validRatio is the fraction held out for
// validation (strictly between 0 and 1). seed controls the shuffle for
// reproducibility.
func TrainValidSplit(X [][]float64, y []float64, validRatio float64, seed int64) (XTrain, XValid [][]float64, yTrain, yValid []float64, err error) {
	n := len(X)
	if n != len(y) {
		return nil, nil, nil, nil, fmt.Errorf("%w: %d rows but %d labels", ErrShapeMismatch, n, len(y))
	}
	if n < 2 {
		return nil, nil, nil, nil, fmt.Errorf("need at least 2 samples to split, got %d", n)
	}
	if validRatio <= 0 || validRatio >= 1 {
		return nil, nil, nil, nil, fmt.Errorf("validRatio must be between 0 and 1 exclusive, got %f", validRatio)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) {
		indices[i], indices[j] = indices[j], indices[i]
	})

	cut := int(float64(n) * (1.0 - validRatio))
	if cut < 1 {
		cut = 1
	}
	if cut >= n {
		cut = n - 1
	}

	XTrain = make([][]float64, cut)
	yTrain = make([]float64, cut)
	XValid = make([][]float64, n-cut)
	yValid = make([]float64, n-cut)
	for i, idx := range indices[:cut] {
		XTrain[i] = X[idx]
		yTrain[i] = y[idx]
	}
	for i, idx := range indices[cut:] {
		XValid[i] = X[idx]
		yValid[i] = y[idx]
	}
	return XTrain, XValid, yTrain, yValid, nil
}

// Split is a convenience method that calls TrainValidSplit on the
// Table's X and Y.
func (t *Table) Split(validRatio float64, seed int64) (XTrain, XValid [][]float64, yTrain, yValid []float64, err error) {
	return TrainValidSplit(t.X, t.Y, validRatio, seed)
}
