package refdata

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/model"
)

// Source file names, fixed by the dataset format.
const (
	TrainingFile    = "Training.csv"
	SeverityFile    = "Symptom_severity.csv"
	DescriptionFile = "symptom_Description.csv"
	PrecautionFile  = "symptom_precaution.csv"
)

// ErrNotReady is returned when a snapshot is requested before Load has
// completed successfully.
var ErrNotReady = errors.New("reference data not loaded")

// Store loads and owns the static lookup tables: symptom severities, disease
// descriptions, disease precautions, and the per-disease characteristic
// symptom profile derived from the training table.
//
// Load replaces the whole snapshot atomically, so concurrent readers never
// observe a half-loaded state. Loads themselves are serialized.
type Store struct {
	dir string

	mu   sync.Mutex // serializes Load
	snap atomic.Pointer[Snapshot]
}

// Snapshot is one immutable, fully-loaded view of the reference tables.
// All accessors are safe for concurrent use.
type Snapshot struct {
	vocab       *model.Vocabulary
	severity    map[string]int
	description map[string]string
	precaution  map[string][]string
	profile     map[string][]string // disease -> symptoms, vocabulary order
	diseases    []string            // training label set, first-seen order

	skippedSeverityRows int
}

// New creates a Store reading from the given data directory.
func New(dir string) *Store {
	return &Store{dir: dir}
}

// Load reads all reference sources and swaps in a new snapshot. On error the
// previous snapshot (if any) stays visible. Calling Load again is an
// idempotent full reload.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := loadSnapshot(s.dir)
	if err != nil {
		return err
	}
	s.snap.Store(snap)

	slog.Info("reference data loaded",
		"symptoms", snap.vocab.Len(),
		"diseases", len(snap.diseases),
		"skipped_severity_rows", snap.skippedSeverityRows)
	snap.warnMissingEntries()
	return nil
}

// Ready reports whether a complete snapshot is available.
func (s *Store) Ready() bool {
	return s.snap.Load() != nil
}

// Snapshot returns the current table snapshot, or ErrNotReady before the
// first successful Load.
func (s *Store) Snapshot() (*Snapshot, error) {
	snap := s.snap.Load()
	if snap == nil {
		return nil, ErrNotReady
	}
	return snap, nil
}

func loadSnapshot(dir string) (*Snapshot, error) {
	ts, err := LoadTrainingSet(filepath.Join(dir, TrainingFile))
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{
		vocab:    model.NewVocabulary(ts.Features),
		profile:  ts.Profile(),
		diseases: ts.Classes,
	}

	snap.severity, snap.skippedSeverityRows, err = loadSeverity(filepath.Join(dir, SeverityFile))
	if err != nil {
		return nil, err
	}
	snap.description, err = loadDescriptions(filepath.Join(dir, DescriptionFile))
	if err != nil {
		return nil, err
	}
	snap.precaution, err = loadPrecautions(filepath.Join(dir, PrecautionFile))
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// Vocabulary returns the ordered symptom vocabulary.
func (sn *Snapshot) Vocabulary() *model.Vocabulary {
	return sn.vocab
}

// Severity returns the integer severity of a symptom. Unknown symptoms have
// severity 0.
func (sn *Snapshot) Severity(symptom string) int {
	return sn.severity[symptom]
}

// SeverityTable returns the symptom severity mapping. Treat as read-only.
func (sn *Snapshot) SeverityTable() map[string]int {
	return sn.severity
}

// Description returns the stored description for a disease, or fallback when
// no entry exists. Missing entries are not an error.
func (sn *Snapshot) Description(disease, fallback string) string {
	if d, ok := sn.description[disease]; ok {
		return d
	}
	return fallback
}

// Precautions returns the ordered precaution list for a disease, or nil when
// no entry exists.
func (sn *Snapshot) Precautions(disease string) []string {
	return sn.precaution[disease]
}

// Profile returns the characteristic symptom set of a disease in vocabulary
// order, or nil when the disease has no training rows.
func (sn *Snapshot) Profile(disease string) []string {
	return sn.profile[disease]
}

// ProfileTable returns the full disease-to-symptoms profile mapping. Treat
// as read-only.
func (sn *Snapshot) ProfileTable() map[string][]string {
	return sn.profile
}

// Diseases returns the training label set in first-seen order.
func (sn *Snapshot) Diseases() []string {
	return sn.diseases
}

// SkippedSeverityRows reports how many severity rows were dropped because
// the weight column did not parse as an integer.
func (sn *Snapshot) SkippedSeverityRows() int {
	return sn.skippedSeverityRows
}

// warnMissingEntries logs diseases from the training labels that have no
// description or precaution entry. Lookups for them degrade to defaults.
func (sn *Snapshot) warnMissingEntries() {
	for _, d := range sn.diseases {
		if _, ok := sn.description[d]; !ok {
			slog.Warn("disease has no description entry", "disease", d)
		}
		if _, ok := sn.precaution[d]; !ok {
			slog.Warn("disease has no precaution entry", "disease", d)
		}
	}
}

// loadSeverity parses symptom,weight rows. Rows whose weight is not an
// integer (including a header row, if present) are skipped and counted, not
// fatal. That matches the tolerant semantics of the source dataset.
func loadSeverity(path string) (map[string]int, int, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, 0, err
	}
	table := make(map[string]int, len(rows))
	skipped := 0
	for _, row := range rows {
		if len(row) < 2 {
			skipped++
			continue
		}
		w, err := strconv.Atoi(row[1])
		if err != nil {
			skipped++
			continue
		}
		table[row[0]] = w
	}
	return table, skipped, nil
}

// loadDescriptions parses disease,description rows. Malformed rows are a
// load error, not skipped.
func loadDescriptions(path string) (map[string]string, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	table := make(map[string]string, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("%s: row %d: want disease,description, got %d fields", path, i+1, len(row))
		}
		table[row[0]] = row[1]
	}
	return table, nil
}

// loadPrecautions parses disease plus four ordered precaution columns.
func loadPrecautions(path string) (map[string][]string, error) {
	rows, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	table := make(map[string][]string, len(rows))
	for i, row := range rows {
		if len(row) < 5 {
			return nil, fmt.Errorf("%s: row %d: want disease plus 4 precautions, got %d fields", path, i+1, len(row))
		}
		table[row[0]] = []string{row[1], row[2], row[3], row[4]}
	}
	return table, nil
}

func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("refdata: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("refdata: %s: %w", path, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
