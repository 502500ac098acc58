package assay

import (
	"reflect"
	"testing"
)

func TestSpectraFieldVectors(t *testing.T) {
	spectra := NewSpectra([]Spectrum{
		{MSLevel: 1, RTime: 12.5, ScanIndex: 1, DataOrigin: "a.mzML"},
		{MSLevel: 2, RTime: 13.0, ScanIndex: 2, DataOrigin: "b.mzML"},
	})
	origins, ok := spectra.Field(SpectrumVarDataOrigin)
	if !ok || !reflect.DeepEqual(origins, []any{"a.mzML", "b.mzML"}) {
		t.Fatalf("unexpected dataOrigin vector: %v", origins)
	}
	levels, ok := spectra.Field(SpectrumVarMSLevel)
	if !ok || !reflect.DeepEqual(levels, []any{1, 2}) {
		t.Fatalf("unexpected msLevel vector: %v", levels)
	}
	if _, ok := spectra.Field("unknown"); ok {
		t.Fatalf("unknown variable must report false")
	}
}

func TestSpectraSelectDuplicates(t *testing.T) {
	spectra := NewSpectra([]Spectrum{
		{ScanIndex: 1, DataOrigin: "a"},
		{ScanIndex: 2, DataOrigin: "b"},
	})
	subset := spectra.Select([]int{2, 2}).(*Spectra)
	if subset.Len() != 2 {
		t.Fatalf("expected 2 spectra, got %d", subset.Len())
	}
	if subset.At(1).DataOrigin != "b" || subset.At(2).DataOrigin != "b" {
		t.Fatalf("unexpected selection: %+v", subset.Records())
	}
}
