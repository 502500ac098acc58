package experiment

import (
	"errors"
	"reflect"
	"testing"

	"msexperiment/pkg/assay"
)

func TestExplicitLink(t *testing.T) {
	exp := newFixture(t)
	linked := mustLink(t, exp, LinkRequest{
		Target:      "experimentFiles.annotations",
		SampleIndex: []int{1, 2},
		TargetIndex: []int{1, 1},
	})
	link, ok := linked.LinkFor("experimentFiles.annotations")
	if !ok {
		t.Fatalf("annotation link not registered")
	}
	if !reflect.DeepEqual(link.Matrix, LinkMatrix{{1, 1}, {2, 1}}) {
		t.Fatalf("unexpected matrix: %v", link.Matrix)
	}
	// The source container must stay unlinked.
	if _, ok := exp.LinkFor("experimentFiles.annotations"); ok {
		t.Fatalf("source container mutated by LinkSampleData")
	}
}

func TestExplicitLinkLengthMismatch(t *testing.T) {
	exp := newFixture(t)
	_, err := exp.LinkSampleData(LinkRequest{
		Target:      "experimentFiles.annotations",
		SampleIndex: []int{1, 2},
		TargetIndex: []int{1},
	})
	var malformed MalformedLinkError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedLinkError, got %v", err)
	}
}

func TestExplicitLinkOutOfRange(t *testing.T) {
	exp := newFixture(t)
	for _, req := range []LinkRequest{
		{Target: "experimentFiles.annotations", SampleIndex: []int{3}, TargetIndex: []int{1}},
		{Target: "experimentFiles.annotations", SampleIndex: []int{1}, TargetIndex: []int{2}},
		{Target: "experimentFiles.annotations", SampleIndex: []int{0}, TargetIndex: []int{1}},
	} {
		_, err := exp.LinkSampleData(req)
		var oor OutOfRangeLinkError
		if !errors.As(err, &oor) {
			t.Fatalf("expected OutOfRangeLinkError, got %v", err)
		}
	}
}

func TestLinkEmptyTarget(t *testing.T) {
	exp := newFixture(t)
	primed, err := exp.SetElement("experimentFiles.empty", assay.Files{})
	if err != nil {
		t.Fatalf("prime empty group: %v", err)
	}
	_, err = primed.LinkSampleData(LinkRequest{
		Target:      "experimentFiles.empty",
		SampleIndex: []int{1},
		TargetIndex: []int{1},
	})
	var empty EmptyTargetError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptyTargetError, got %v", err)
	}
}

func TestLinkBothConventionsRejected(t *testing.T) {
	exp := newFixture(t)
	_, err := exp.LinkSampleData(LinkRequest{
		Target:      "spectra",
		SampleIndex: []int{1},
		TargetIndex: []int{1},
		Join:        "sampleData.raw_file = spectra.dataOrigin",
	})
	var malformed MalformedLinkError
	if !errors.As(err, &malformed) {
		t.Fatalf("expected MalformedLinkError, got %v", err)
	}
}

func TestLinkReplacesPreviousEntry(t *testing.T) {
	exp := newFixture(t)
	linked := mustLink(t, exp, LinkRequest{
		Target:      "experimentFiles.annotations",
		SampleIndex: []int{1},
		TargetIndex: []int{1},
	})
	relinked := mustLink(t, linked, LinkRequest{
		Target:      "experimentFiles.annotations",
		SampleIndex: []int{1, 2},
		TargetIndex: []int{1, 1},
	})
	link, _ := relinked.LinkFor("experimentFiles.annotations")
	if len(link.Matrix) != 2 {
		t.Fatalf("expected replacement, got %v", link.Matrix)
	}
	if got := relinked.LinkedTargets(); len(got) != 1 {
		t.Fatalf("replacement must not duplicate registry entries: %v", got)
	}
}

func TestLinkSubsetByValidation(t *testing.T) {
	exp := newFixture(t)
	if _, err := exp.LinkSampleData(LinkRequest{
		Target:      "quantification",
		SampleIndex: []int{1, 2},
		TargetIndex: []int{1, 2},
		SubsetBy:    3,
	}); err == nil {
		t.Fatalf("expected invalid subsetBy error")
	}
	linked := mustLink(t, exp, LinkRequest{
		Target:      "quantification",
		SampleIndex: []int{1, 2},
		TargetIndex: []int{1, 2},
		SubsetBy:    SubsetByColumn,
	})
	link, _ := linked.LinkFor("quantification")
	if link.SubsetBy != SubsetByColumn {
		t.Fatalf("subsetBy not preserved: %d", link.SubsetBy)
	}
}
