package triage

import "path/filepath"

type options struct {
	dataDir   string
	modelPath string
}

// Option configures a Triage instance.
type Option func(*options)

// WithDataDir sets the directory containing the reference CSV files.
// Expects: Training.csv, Symptom_severity.csv, symptom_Description.csv,
// symptom_precaution.csv.
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.dataDir = dir
	}
}

// WithModelPath sets an explicit path to the trained model artifact.
// Default: trained_model/model.json.
func WithModelPath(path string) Option {
	return func(o *options) {
		o.modelPath = path
	}
}

func defaultOptions() options {
	return options{
		dataDir:   filepath.Join("chatdata", "input"),
		modelPath: filepath.Join("trained_model", "model.json"),
	}
}
