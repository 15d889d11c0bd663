package refdata

import (
	"fmt"
	"strconv"

	"gonum.org/v1/gonum/mat"
)

// labelColumn is the name of the disease label column in the training table.
const labelColumn = "prognosis"

// TrainingSet is the parsed labeled training table: one row per record,
// binary symptom indicator columns plus a disease label.
type TrainingSet struct {
	Features []string   // symptom columns, table order
	Classes  []string   // distinct labels, first-seen order
	X        *mat.Dense // len(rows) x len(Features) indicator matrix
	Y        []int      // class index per row
}

// LoadTrainingSet parses a training CSV whose header is the symptom columns
// followed by the prognosis label column.
func LoadTrainingSet(path string) (*TrainingSet, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("refdata: %s: need a header and at least one record", path)
	}

	header := rows[0]
	if len(header) < 2 || header[len(header)-1] != labelColumn {
		return nil, fmt.Errorf("refdata: %s: last column must be %q", path, labelColumn)
	}
	features := header[:len(header)-1]

	records := rows[1:]
	data := make([]float64, 0, len(records)*len(features))
	y := make([]int, 0, len(records))
	var classes []string
	classIdx := make(map[string]int)

	for i, row := range records {
		if len(row) != len(header) {
			return nil, fmt.Errorf("refdata: %s: row %d: want %d fields, got %d", path, i+2, len(header), len(row))
		}
		for j := 0; j < len(features); j++ {
			v, err := strconv.ParseFloat(row[j], 64)
			if err != nil {
				return nil, fmt.Errorf("refdata: %s: row %d, column %q: %w", path, i+2, features[j], err)
			}
			data = append(data, v)
		}
		label := row[len(row)-1]
		idx, ok := classIdx[label]
		if !ok {
			idx = len(classes)
			classIdx[label] = idx
			classes = append(classes, label)
		}
		y = append(y, idx)
	}

	return &TrainingSet{
		Features: features,
		Classes:  classes,
		X:        mat.NewDense(len(records), len(features), data),
		Y:        y,
	}, nil
}

// Profile derives the per-disease characteristic symptom sets: for each
// class, every symptom column that is nonzero in at least one of its rows.
// Equivalent to a per-class max over binary indicator columns. Symptoms come
// back in column order.
func (ts *TrainingSet) Profile() map[string][]string {
	present := make(map[string][]bool, len(ts.Classes))
	for _, c := range ts.Classes {
		present[c] = make([]bool, len(ts.Features))
	}

	rows, _ := ts.X.Dims()
	for i := 0; i < rows; i++ {
		mask := present[ts.Classes[ts.Y[i]]]
		for j := range ts.Features {
			if ts.X.At(i, j) != 0 {
				mask[j] = true
			}
		}
	}

	profile := make(map[string][]string, len(ts.Classes))
	for _, c := range ts.Classes {
		var symptoms []string
		for j, ok := range present[c] {
			if ok {
				symptoms = append(symptoms, ts.Features[j])
			}
		}
		profile[c] = symptoms
	}
	return profile
}
