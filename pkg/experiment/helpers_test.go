package experiment

import (
	"testing"

	"msexperiment/pkg/assay"
)

// newFixture builds the canonical two-sample container used across the
// engine tests: two QC samples, a raw file per sample, one shared
// annotation file, four spectra (two per raw file) and a row-per-sample
// quantification frame.
func newFixture(t *testing.T) Experiment {
	t.Helper()

	samples := assay.NewTable()
	mustSet(t, samples, "name", []any{"QC1", "QC2"})
	mustSet(t, samples, "raw_file", []any{"s1.mzML", "s2.mzML"})

	files := assay.NewFileGroups()
	if err := files.SetGroup("spectraFiles", assay.Files{"s1.mzML", "s2.mzML"}); err != nil {
		t.Fatalf("set spectraFiles: %v", err)
	}
	if err := files.SetGroup("annotations", assay.Files{"notes.txt"}); err != nil {
		t.Fatalf("set annotations: %v", err)
	}

	spectra := assay.NewSpectra([]assay.Spectrum{
		{MSLevel: 1, ScanIndex: 1, RTime: 1.0, DataOrigin: "s1.mzML"},
		{MSLevel: 1, ScanIndex: 2, RTime: 2.0, DataOrigin: "s1.mzML"},
		{MSLevel: 1, ScanIndex: 1, RTime: 1.1, DataOrigin: "s2.mzML"},
		{MSLevel: 1, ScanIndex: 2, RTime: 2.1, DataOrigin: "s2.mzML"},
	})

	quant := assay.NewTable()
	mustSet(t, quant, "sample", []any{"QC1", "QC2"})
	mustSet(t, quant, "area", []any{100.0, 200.0})

	metadata := assay.NewTable()
	mustSet(t, metadata, "note", []any{"batch 7"})

	return New(Config{
		Samples:        samples,
		Files:          files,
		Metadata:       metadata,
		Quantification: quant,
		Spectra:        spectra,
	})
}

func mustSet(t *testing.T, table *assay.Table, name string, values []any) {
	t.Helper()
	if err := table.SetField(name, values); err != nil {
		t.Fatalf("set field %s: %v", name, err)
	}
}

func mustLink(t *testing.T, e Experiment, req LinkRequest) Experiment {
	t.Helper()
	linked, err := e.LinkSampleData(req)
	if err != nil {
		t.Fatalf("link %q: %v", req.Target, err)
	}
	return linked
}
