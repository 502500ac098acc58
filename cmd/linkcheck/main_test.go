package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"msexperiment/internal/infra/persistence/sqlite"
	"msexperiment/pkg/assay"
	"msexperiment/pkg/experiment"
)

func linkedExperiment(t *testing.T) experiment.Experiment {
	t.Helper()
	samples := assay.NewTable()
	if err := samples.SetField("raw_file", []any{"s1.mzML", "s2.mzML"}); err != nil {
		t.Fatalf("set field: %v", err)
	}
	spectra := assay.NewSpectra([]assay.Spectrum{
		{MSLevel: 1, ScanIndex: 1, DataOrigin: "s1.mzML"},
		{MSLevel: 1, ScanIndex: 1, DataOrigin: "s2.mzML"},
	})
	exp := experiment.New(experiment.Config{Samples: samples, Spectra: spectra})
	linked, err := exp.LinkSampleData(experiment.LinkRequest{
		Join: "sampleData.raw_file = spectra.dataOrigin",
	})
	if err != nil {
		t.Fatalf("link: %v", err)
	}
	return linked
}

func writeSnapshot(t *testing.T, experiments map[string]experiment.Experiment) string {
	t.Helper()
	payload, err := json.Marshal(experiments)
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func TestCLIHealthySnapshot(t *testing.T) {
	path := writeSnapshot(t, map[string]experiment.Experiment{"run-1": linkedExperiment(t)})
	var stdout, stderr bytes.Buffer
	code := cli([]string{"-snapshot", path}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "run-1: ok (1 links)") {
		t.Fatalf("unexpected output: %s", stdout.String())
	}
}

func TestCLIReportsViolations(t *testing.T) {
	payload, err := json.Marshal(map[string]experiment.Experiment{"run-1": linkedExperiment(t)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	corrupted := strings.Replace(string(payload), `[2,2]`, `[2,20]`, 1)
	if corrupted == string(payload) {
		t.Fatalf("fixture matrix changed, update the corruption target")
	}
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(corrupted), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := cli([]string{"-snapshot", path}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "out of range") {
		t.Fatalf("unexpected stderr: %s", stderr.String())
	}
}

func TestCLISQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := sqlite.NewStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	err = store.RunInTransaction(context.Background(), func(tx experiment.Transaction) error {
		_, err := tx.CreateExperiment("run-1", linkedExperiment(t))
		return err
	})
	if err != nil {
		t.Fatalf("seed store: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := cli([]string{"-store", path, "-experiment", "run-1"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr: %s)", code, stderr.String())
	}
}

func TestCLIArgumentValidation(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := cli(nil, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2 without inputs, got %d", code)
	}
	if code := cli([]string{"-snapshot", "a", "-store", "b"}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2 with both inputs, got %d", code)
	}
	if code := cli([]string{"-snapshot", filepath.Join(t.TempDir(), "missing.json")}, &stdout, &stderr); code != 2 {
		t.Fatalf("expected exit 2 for missing snapshot, got %d", code)
	}
}
