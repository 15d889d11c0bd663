package refdata

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/testdata"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	if err := testdata.Materialize(dir); err != nil {
		t.Fatalf("materialize fixture: %v", err)
	}
	s := New(dir)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	return s
}

func TestStoreNotReadyBeforeLoad(t *testing.T) {
	s := New(t.TempDir())
	if s.Ready() {
		t.Fatal("Ready() = true before Load")
	}
	if _, err := s.Snapshot(); err != ErrNotReady {
		t.Fatalf("Snapshot() error = %v, want ErrNotReady", err)
	}
}

func TestStoreLoad(t *testing.T) {
	s := newTestStore(t)
	if !s.Ready() {
		t.Fatal("Ready() = false after Load")
	}

	snap, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error: %v", err)
	}

	if got := snap.Vocabulary().Len(); got != len(testdata.Symptoms) {
		t.Fatalf("vocabulary size = %d, want %d", got, len(testdata.Symptoms))
	}
	if !reflect.DeepEqual(snap.Vocabulary().Names(), testdata.Symptoms) {
		t.Fatalf("vocabulary = %v, want %v", snap.Vocabulary().Names(), testdata.Symptoms)
	}
	if !reflect.DeepEqual(snap.Diseases(), testdata.Diseases) {
		t.Fatalf("diseases = %v, want %v", snap.Diseases(), testdata.Diseases)
	}

	// The fixture severity file has a header row, which does not parse as an
	// integer and must be skipped silently.
	if snap.SkippedSeverityRows() != 1 {
		t.Fatalf("skipped severity rows = %d, want 1", snap.SkippedSeverityRows())
	}
	if got := snap.Severity("high_fever"); got != 7 {
		t.Fatalf("Severity(high_fever) = %d, want 7", got)
	}
	if got := snap.Severity("no_such_symptom"); got != 0 {
		t.Fatalf("Severity(unknown) = %d, want 0", got)
	}
}

func TestStoreDescriptionFallback(t *testing.T) {
	snap, _ := newTestStore(t).Snapshot()

	if got := snap.Description("Malaria", "none"); got == "none" || got == "" {
		t.Fatalf("Description(Malaria) = %q, want stored text", got)
	}
	if got := snap.Description("Unknown Disease", "No description available."); got != "No description available." {
		t.Fatalf("Description fallback = %q", got)
	}
}

func TestStorePrecautions(t *testing.T) {
	snap, _ := newTestStore(t).Snapshot()

	p := snap.Precautions("Malaria")
	want := []string{"consult nearest hospital", "avoid oily food", "avoid non veg food", "keep mosquitos out"}
	if !reflect.DeepEqual(p, want) {
		t.Fatalf("Precautions(Malaria) = %v, want %v", p, want)
	}
	if snap.Precautions("Unknown Disease") != nil {
		t.Fatal("Precautions(unknown) should be nil")
	}
}

func TestStoreProfile(t *testing.T) {
	snap, _ := newTestStore(t).Snapshot()

	got := snap.Profile("Fungal infection")
	want := []string{"itching", "skin_rash"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Profile(Fungal infection) = %v, want %v", got, want)
	}

	// Profile ordering follows the feature columns.
	got = snap.Profile("Malaria")
	want = []string{"chills", "vomiting", "high_fever", "headache", "nausea"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Profile(Malaria) = %v, want %v", got, want)
	}

	if snap.Profile("Unknown Disease") != nil {
		t.Fatal("Profile(unknown) should be nil")
	}
}

func TestStoreReloadKeepsOldSnapshotOnError(t *testing.T) {
	dir := t.TempDir()
	if err := testdata.Materialize(dir); err != nil {
		t.Fatalf("materialize fixture: %v", err)
	}
	s := New(dir)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	before, _ := s.Snapshot()

	// Corrupt one required source and reload.
	if err := os.Remove(filepath.Join(dir, DescriptionFile)); err != nil {
		t.Fatal(err)
	}
	if err := s.Load(); err == nil {
		t.Fatal("Load() should fail with a missing source")
	}

	after, err := s.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() after failed reload: %v", err)
	}
	if after != before {
		t.Fatal("failed reload must keep the previous snapshot visible")
	}
}

func TestLoadSeveritySkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sev.csv")
	data := "chills,3\nbroken,notanumber\nfatigue,2\nshort\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	table, skipped, err := loadSeverity(path)
	if err != nil {
		t.Fatalf("loadSeverity() error: %v", err)
	}
	if skipped != 2 {
		t.Fatalf("skipped = %d, want 2", skipped)
	}
	if table["chills"] != 3 || table["fatigue"] != 2 {
		t.Fatalf("unexpected table: %v", table)
	}
}

func TestLoadDescriptionsMalformedRowFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "desc.csv")
	if err := os.WriteFile(path, []byte("OnlyADiseaseName\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadDescriptions(path); err == nil {
		t.Fatal("loadDescriptions() should fail on a row without a description")
	}
}

func TestLoadTrainingSet(t *testing.T) {
	dir := t.TempDir()
	if err := testdata.Materialize(dir); err != nil {
		t.Fatalf("materialize fixture: %v", err)
	}

	ts, err := LoadTrainingSet(filepath.Join(dir, TrainingFile))
	if err != nil {
		t.Fatalf("LoadTrainingSet() error: %v", err)
	}

	rows, cols := ts.X.Dims()
	if rows != 15 || cols != 10 {
		t.Fatalf("X dims = %dx%d, want 15x10", rows, cols)
	}
	if len(ts.Y) != rows {
		t.Fatalf("len(Y) = %d, want %d", len(ts.Y), rows)
	}
	if !reflect.DeepEqual(ts.Features, testdata.Symptoms) {
		t.Fatalf("features = %v", ts.Features)
	}
	if !reflect.DeepEqual(ts.Classes, testdata.Diseases) {
		t.Fatalf("classes = %v", ts.Classes)
	}
}

func TestLoadTrainingSetRejectsWrongLabelColumn(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(path, []byte("a,b,label\n1,0,X\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadTrainingSet(path); err == nil {
		t.Fatal("LoadTrainingSet() should reject a table without a prognosis column")
	}
}
