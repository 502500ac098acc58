package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"msexperiment/pkg/assay"
	"msexperiment/pkg/experiment"
)

func newExperiment(t *testing.T) experiment.Experiment {
	t.Helper()
	samples := assay.NewTable()
	if err := samples.SetField("raw_file", []any{"s1.mzML", "s2.mzML"}); err != nil {
		t.Fatalf("set field: %v", err)
	}
	spectra := assay.NewSpectra([]assay.Spectrum{
		{MSLevel: 1, ScanIndex: 1, DataOrigin: "s1.mzML"},
		{MSLevel: 1, ScanIndex: 1, DataOrigin: "s2.mzML"},
	})
	return experiment.New(experiment.Config{Samples: samples, Spectra: spectra})
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	err = store.RunInTransaction(ctx, func(tx experiment.Transaction) error {
		exp := newExperiment(t)
		linked, err := exp.LinkSampleData(experiment.LinkRequest{
			Join: "sampleData.raw_file = spectra.dataOrigin",
		})
		if err != nil {
			return err
		}
		_, err = tx.CreateExperiment("run-1", linked)
		return err
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	got, ok := reopened.GetExperiment("run-1")
	if !ok {
		t.Fatalf("experiment not reloaded")
	}
	if got.SampleCount() != 2 {
		t.Fatalf("unexpected sample count: %d", got.SampleCount())
	}
	link, ok := got.LinkFor("spectra")
	if !ok {
		t.Fatalf("link lost across reopen")
	}
	if len(link.Matrix) != 2 {
		t.Fatalf("unexpected matrix: %v", link.Matrix)
	}
}

func TestStoreFailedTransactionNotPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()

	err = store.RunInTransaction(ctx, func(tx experiment.Transaction) error {
		if _, err := tx.CreateExperiment("run-1", newExperiment(t)); err != nil {
			return err
		}
		_, err := tx.UpdateExperiment("missing", func(*experiment.Experiment) error { return nil })
		return err
	})
	if err == nil {
		t.Fatalf("expected transaction failure")
	}
	if _, ok := store.GetExperiment("run-1"); ok {
		t.Fatalf("failed transaction must not commit")
	}
}

func TestStoreDefaultPath(t *testing.T) {
	orig, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(orig) })
	store, err := NewStore("")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = store.Close() }()
	if store.Path() != "msexperiment.db" {
		t.Fatalf("unexpected default path: %s", store.Path())
	}
}
