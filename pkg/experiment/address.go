package experiment

import "strings"

// SlotKind identifies one of the container's declared storage locations.
// Addressing dispatches over this closed set; new collection kinds are
// added here and wired in the container rather than resolved reflectively.
type SlotKind string

const (
	// SlotSampleData is the primary sample table.
	SlotSampleData SlotKind = "sampleData"
	// SlotExperimentFiles holds named groups of data file paths.
	SlotExperimentFiles SlotKind = "experimentFiles"
	// SlotMetadata is the free-form metadata table.
	SlotMetadata SlotKind = "metadata"
	// SlotQuantification is the quantification frame.
	SlotQuantification SlotKind = "quantification"
	// SlotSpectra is the spectra collection.
	SlotSpectra SlotKind = "spectra"
)

func slotNames() []string {
	return []string{
		string(SlotSampleData),
		string(SlotExperimentFiles),
		string(SlotMetadata),
		string(SlotQuantification),
		string(SlotSpectra),
	}
}

// Address identifies a slot and an optional field within it. The textual
// form is "<slot>" or "<slot>.<field>"; only the first dot separates slot
// from field, so field names may themselves contain dots.
type Address struct {
	Slot  SlotKind
	Field string
}

// ParseAddress resolves the dotted address string against the declared
// slot set. Unknown slots fail with UnknownSlotError.
func ParseAddress(addr string) (Address, error) {
	slot := addr
	field := ""
	if i := strings.IndexByte(addr, '.'); i >= 0 {
		slot, field = addr[:i], addr[i+1:]
	}
	switch SlotKind(slot) {
	case SlotSampleData, SlotExperimentFiles, SlotMetadata, SlotQuantification, SlotSpectra:
		return Address{Slot: SlotKind(slot), Field: field}, nil
	default:
		return Address{}, UnknownSlotError{Slot: slot}
	}
}

// String renders the address in its textual form.
func (a Address) String() string {
	if a.Field == "" {
		return string(a.Slot)
	}
	return string(a.Slot) + "." + a.Field
}
