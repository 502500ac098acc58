package experiment

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestExperimentJSONRoundTrip(t *testing.T) {
	exp := newFixture(t)
	linked := mustLink(t, exp, LinkRequest{
		Join: "sampleData.raw_file = spectra.dataOrigin",
	})
	linked = mustLink(t, linked, LinkRequest{
		Target:      "experimentFiles.annotations",
		SampleIndex: []int{1, 2},
		TargetIndex: []int{1, 1},
	})

	payload, err := json.Marshal(linked)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded Experiment
	if err := json.Unmarshal(payload, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if decoded.SampleCount() != linked.SampleCount() {
		t.Fatalf("sample count changed: %d", decoded.SampleCount())
	}
	if !reflect.DeepEqual(decoded.LinkedTargets(), linked.LinkedTargets()) {
		t.Fatalf("link order changed: %v", decoded.LinkedTargets())
	}
	for _, target := range linked.LinkedTargets() {
		want, _ := linked.LinkFor(target)
		got, ok := decoded.LinkFor(target)
		if !ok {
			t.Fatalf("link %q lost in round trip", target)
		}
		if !reflect.DeepEqual(got.Matrix, want.Matrix) || got.SubsetBy != want.SubsetBy {
			t.Fatalf("link %q changed: %+v", target, got)
		}
	}

	out, err := decoded.ExtractSamples([]int{2})
	if err != nil {
		t.Fatalf("extract after round trip: %v", err)
	}
	if got := out.Spectra().Len(); got != 2 {
		t.Fatalf("expected 2 spectra for one sample, got %d", got)
	}
}
