package experiment

import (
	"errors"
	"reflect"
	"testing"

	"msexperiment/pkg/assay"
)

func TestParseAddressFirstDotSplitsOnly(t *testing.T) {
	addr, err := ParseAddress("metadata.run.date")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if addr.Slot != SlotMetadata || addr.Field != "run.date" {
		t.Fatalf("unexpected address: %+v", addr)
	}
}

func TestParseAddressUnknownSlot(t *testing.T) {
	_, err := ParseAddress("nonsense.field")
	var unknown UnknownSlotError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownSlotError, got %v", err)
	}
	if unknown.Slot != "nonsense" {
		t.Fatalf("unexpected slot in error: %q", unknown.Slot)
	}
}

func TestElementWholeSlotAndField(t *testing.T) {
	exp := newFixture(t)

	value, err := exp.Element("sampleData")
	if err != nil {
		t.Fatalf("element sampleData: %v", err)
	}
	table, ok := value.(*assay.Table)
	if !ok || table.Len() != 2 {
		t.Fatalf("expected sample table, got %T", value)
	}

	value, err = exp.Element("sampleData.name")
	if err != nil {
		t.Fatalf("element sampleData.name: %v", err)
	}
	if !reflect.DeepEqual(value, []any{"QC1", "QC2"}) {
		t.Fatalf("unexpected name column: %v", value)
	}
}

func TestElementAbsentFieldIsNilNotError(t *testing.T) {
	exp := newFixture(t)
	value, err := exp.Element("metadata.x")
	if err != nil {
		t.Fatalf("absent field must not error: %v", err)
	}
	if value != nil {
		t.Fatalf("expected nil for absent field, got %v", value)
	}
}

func TestElementUnknownSlotErrors(t *testing.T) {
	exp := newFixture(t)
	if _, err := exp.Element("bogus.x"); err == nil {
		t.Fatalf("expected unknown slot error")
	}
}

func TestSetElementCreatesFieldAndPreservesOriginal(t *testing.T) {
	exp := newFixture(t)
	updated, err := exp.SetElement("metadata.operator", []any{"kim"})
	if err != nil {
		t.Fatalf("set element: %v", err)
	}
	value, err := updated.Element("metadata.operator")
	if err != nil || !reflect.DeepEqual(value, []any{"kim"}) {
		t.Fatalf("unexpected operator column: %v (%v)", value, err)
	}
	// The original container must be untouched.
	original, err := exp.Element("metadata.operator")
	if err != nil || original != nil {
		t.Fatalf("original container mutated: %v (%v)", original, err)
	}
}

func TestSetElementWholeSlot(t *testing.T) {
	exp := newFixture(t)
	replacement := assay.NewTable()
	if err := replacement.SetField("note", []any{"fresh"}); err != nil {
		t.Fatalf("build replacement: %v", err)
	}
	updated, err := exp.SetElement("metadata", replacement)
	if err != nil {
		t.Fatalf("set whole slot: %v", err)
	}
	value, err := updated.Element("metadata.note")
	if err != nil || !reflect.DeepEqual(value, []any{"fresh"}) {
		t.Fatalf("unexpected note column: %v (%v)", value, err)
	}
}

func TestSetElementUnknownSlot(t *testing.T) {
	exp := newFixture(t)
	if _, err := exp.SetElement("bogus", []any{1}); err == nil {
		t.Fatalf("expected unknown slot error")
	}
}

func TestSetElementFileGroup(t *testing.T) {
	exp := newFixture(t)
	updated, err := exp.SetElement("experimentFiles.qcReports", assay.Files{"qc.html"})
	if err != nil {
		t.Fatalf("set file group: %v", err)
	}
	value, err := updated.Element("experimentFiles.qcReports")
	if err != nil {
		t.Fatalf("read back group: %v", err)
	}
	files, ok := value.(assay.Files)
	if !ok || len(files) != 1 || files[0] != "qc.html" {
		t.Fatalf("unexpected group content: %v", value)
	}
}
