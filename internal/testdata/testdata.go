// Package testdata ships a miniature labeled dataset used to exercise the
// triage engine in tests: five diseases over ten symptom columns, with
// matching severity, description, and precaution tables.
package testdata

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
)

//go:embed Training.csv Symptom_severity.csv symptom_Description.csv symptom_precaution.csv
var files embed.FS

// Materialize writes the fixture CSV files into dir, which then works as a
// reference data directory.
func Materialize(dir string) error {
	entries, err := files.ReadDir(".")
	if err != nil {
		return err
	}
	for _, e := range entries {
		data, err := files.ReadFile(e.Name())
		if err != nil {
			return fmt.Errorf("testdata: %w", err)
		}
		if err := os.WriteFile(filepath.Join(dir, e.Name()), data, 0o644); err != nil {
			return fmt.Errorf("testdata: %w", err)
		}
	}
	return nil
}

// Diseases in the fixture training table.
var Diseases = []string{"Fungal infection", "Allergy", "Malaria", "Gastroenteritis", "Migraine"}

// Symptoms in the fixture vocabulary, feature-column order.
var Symptoms = []string{
	"itching", "skin_rash", "chills", "shivering", "fatigue",
	"vomiting", "high_fever", "headache", "nausea", "stomach_pain",
}
