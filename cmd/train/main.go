// Command train fits the decision tree on the training CSV and writes the
// model artifact consumed by the chatdoctor server and the diagnose CLI.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine/classifier"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/logging"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/refdata"
)

func main() {
	dataDir := flag.String("data", filepath.Join("chatdata", "input"), "directory containing Training.csv")
	out := flag.String("out", filepath.Join("trained_model", "model.json"), "output path for the model artifact")
	maxDepth := flag.Int("max-depth", 0, "maximum tree depth (0 = unlimited)")
	flag.Parse()

	logging.Setup(false, slog.LevelInfo)

	ts, err := refdata.LoadTrainingSet(filepath.Join(*dataDir, refdata.TrainingFile))
	if err != nil {
		log.Fatalf("failed to load training data: %v", err)
	}
	rows, _ := ts.X.Dims()
	slog.Info("training data loaded",
		"rows", rows,
		"features", len(ts.Features),
		"classes", len(ts.Classes))

	m, err := classifier.Train(ts.X, ts.Y, ts.Features, ts.Classes, classifier.TrainConfig{MaxDepth: *maxDepth})
	if err != nil {
		log.Fatalf("training failed: %v", err)
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := m.Save(*out); err != nil {
		log.Fatalf("failed to save model: %v", err)
	}
	slog.Info("model written", "path", *out)
}
