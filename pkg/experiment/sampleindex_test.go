package experiment

import (
	"reflect"
	"testing"
)

func TestFirstOwners(t *testing.T) {
	matrix := LinkMatrix{
		{1, 4}, {1, 5}, {1, 6}, {1, 7},
		{2, 8}, {2, 9}, {2, 10}, {2, 11},
	}
	owners, ambiguous := matrix.FirstOwners(20)
	if ambiguous != nil {
		t.Fatalf("unexpected ambiguity: %v", ambiguous)
	}
	want := make([]int, 20)
	for k := 4; k <= 7; k++ {
		want[k-1] = 1
	}
	for k := 8; k <= 11; k++ {
		want[k-1] = 2
	}
	if !reflect.DeepEqual(owners, want) {
		t.Fatalf("owners = %v, want %v", owners, want)
	}
}

func TestFirstOwnersAmbiguous(t *testing.T) {
	matrix := LinkMatrix{{1, 1}, {2, 1}, {2, 2}, {1, 2}, {1, 3}}
	owners, ambiguous := matrix.FirstOwners(3)
	if ambiguous == nil {
		t.Fatalf("expected ambiguity diagnostic")
	}
	if !reflect.DeepEqual(ambiguous.Elements, []int{1, 2}) {
		t.Fatalf("ambiguous elements = %v", ambiguous.Elements)
	}
	// First match in row order wins.
	if !reflect.DeepEqual(owners, []int{1, 2, 1}) {
		t.Fatalf("owners = %v", owners)
	}
}

func TestAllOwners(t *testing.T) {
	matrix := LinkMatrix{{1, 1}, {2, 1}, {2, 2}}
	all := matrix.AllOwners(3)
	want := [][]int{{1, 2}, {2}, nil}
	if !reflect.DeepEqual(all, want) {
		t.Fatalf("all owners = %v, want %v", all, want)
	}
}

func TestSpectraSampleIndex(t *testing.T) {
	exp := newFixture(t)

	if _, _, err := exp.SpectraSampleIndex(); err == nil {
		t.Fatalf("expected error when spectra are not linked")
	}

	linked := mustLink(t, exp, LinkRequest{
		Join: "sampleData.raw_file = spectra.dataOrigin",
	})
	owners, ambiguous, err := linked.SpectraSampleIndex()
	if err != nil {
		t.Fatalf("SpectraSampleIndex: %v", err)
	}
	if ambiguous != nil {
		t.Fatalf("unexpected ambiguity: %v", ambiguous)
	}
	if !reflect.DeepEqual(owners, []int{1, 1, 2, 2}) {
		t.Fatalf("owners = %v", owners)
	}

	all, err := linked.SpectraSampleIndexAll()
	if err != nil {
		t.Fatalf("SpectraSampleIndexAll: %v", err)
	}
	if !reflect.DeepEqual(all, [][]int{{1}, {1}, {2}, {2}}) {
		t.Fatalf("all owners = %v", all)
	}
}
