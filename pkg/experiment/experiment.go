package experiment

import (
	"fmt"

	"msexperiment/pkg/assay"
)

// Experiment is the composite container: one sample table, the named
// secondary collections, and the link registry relating them. The zero
// value is not usable; construct with New.
type Experiment struct {
	samples  *assay.Table
	files    *assay.FileGroups
	metadata *assay.Table
	quant    *assay.Table
	spectra  *assay.Spectra
	links    linkRegistry
}

// Config supplies initial slot contents for a new container. Nil slots
// start empty.
type Config struct {
	Samples        *assay.Table
	Files          *assay.FileGroups
	Metadata       *assay.Table
	Quantification *assay.Table
	Spectra        *assay.Spectra
}

// New constructs an experiment container from the supplied slot contents.
func New(cfg Config) Experiment {
	e := Experiment{
		samples:  cfg.Samples.Clone(),
		files:    cfg.Files.Clone(),
		metadata: cfg.Metadata.Clone(),
		quant:    cfg.Quantification.Clone(),
		spectra:  cfg.Spectra.Clone(),
		links:    newLinkRegistry(),
	}
	if e.samples == nil {
		e.samples = assay.NewTable()
	}
	if e.files == nil {
		e.files = assay.NewFileGroups()
	}
	if e.metadata == nil {
		e.metadata = assay.NewTable()
	}
	if e.quant == nil {
		e.quant = assay.NewTable()
	}
	if e.spectra == nil {
		e.spectra = assay.NewSpectra(nil)
	}
	return e
}

// clone returns a deep copy; mutating operations clone first so prior
// container values stay valid.
func (e Experiment) clone() Experiment {
	return Experiment{
		samples:  e.samples.Clone(),
		files:    e.files.Clone(),
		metadata: e.metadata.Clone(),
		quant:    e.quant.Clone(),
		spectra:  e.spectra.Clone(),
		links:    e.links.clone(),
	}
}

// SampleCount returns the number of sample rows.
func (e Experiment) SampleCount() int { return e.samples.Len() }

// Samples returns a copy of the sample table.
func (e Experiment) Samples() *assay.Table { return e.samples.Clone() }

// Files returns a copy of the experiment file groups.
func (e Experiment) Files() *assay.FileGroups { return e.files.Clone() }

// Metadata returns a copy of the metadata table.
func (e Experiment) Metadata() *assay.Table { return e.metadata.Clone() }

// Quantification returns a copy of the quantification frame.
func (e Experiment) Quantification() *assay.Table { return e.quant.Clone() }

// Spectra returns a copy of the spectra collection.
func (e Experiment) Spectra() *assay.Spectra { return e.spectra.Clone() }

// Links returns the registered links keyed by target address.
func (e Experiment) Links() map[string]Link {
	out := make(map[string]Link, len(e.links.entries))
	for addr, link := range e.links.entries {
		out[addr] = link.clone()
	}
	return out
}

// LinkedTargets returns the registered target addresses in registration
// order.
func (e Experiment) LinkedTargets() []string { return e.links.addresses() }

// LinkFor returns the link entry for the target address, if registered.
func (e Experiment) LinkFor(target string) (Link, bool) { return e.links.get(target) }

// Element resolves the dotted address against the container. A bare slot
// address returns the whole slot content; "<slot>.<field>" returns the
// named field within it. An absent field in a known slot yields (nil, nil);
// an unknown slot is always an error.
func (e Experiment) Element(addr string) (any, error) {
	address, err := ParseAddress(addr)
	if err != nil {
		return nil, err
	}
	switch address.Slot {
	case SlotSampleData:
		if address.Field == "" {
			return e.samples.Clone(), nil
		}
		return fieldOrNil(e.samples, address.Field), nil
	case SlotMetadata:
		if address.Field == "" {
			return e.metadata.Clone(), nil
		}
		return fieldOrNil(e.metadata, address.Field), nil
	case SlotQuantification:
		if address.Field == "" {
			return e.quant.Clone(), nil
		}
		return fieldOrNil(e.quant, address.Field), nil
	case SlotExperimentFiles:
		if address.Field == "" {
			return e.files.Clone(), nil
		}
		group, ok := e.files.Group(address.Field)
		if !ok {
			return nil, nil
		}
		return group, nil
	case SlotSpectra:
		if address.Field == "" {
			return e.spectra.Clone(), nil
		}
		return fieldOrNil(e.spectra, address.Field), nil
	}
	return nil, UnknownSlotError{Slot: string(address.Slot)}
}

func fieldOrNil(c assay.Collection, name string) any {
	values, ok := c.Field(name)
	if !ok {
		return nil
	}
	return values
}

// SetElement assigns the addressed slot or field and returns the resulting
// container. Fields are created on demand in collections that support
// dynamic field addition (tables, file groups). Assigning a whole slot
// replaces its content; any index-based link against a wholesale-replaced
// collection is the caller's responsibility to re-establish.
func (e Experiment) SetElement(addr string, value any) (Experiment, error) {
	address, err := ParseAddress(addr)
	if err != nil {
		return Experiment{}, err
	}
	out := e.clone()
	switch address.Slot {
	case SlotSampleData:
		if err := setTableElement(out.samples, address, value); err != nil {
			return Experiment{}, err
		}
	case SlotMetadata:
		if address.Field == "" {
			table, err := asTable(address, value)
			if err != nil {
				return Experiment{}, err
			}
			out.metadata = table
			return out, nil
		}
		if err := setTableElement(out.metadata, address, value); err != nil {
			return Experiment{}, err
		}
	case SlotQuantification:
		if address.Field == "" {
			table, err := asTable(address, value)
			if err != nil {
				return Experiment{}, err
			}
			out.quant = table
			return out, nil
		}
		if err := setTableElement(out.quant, address, value); err != nil {
			return Experiment{}, err
		}
	case SlotExperimentFiles:
		if address.Field == "" {
			groups, ok := value.(*assay.FileGroups)
			if !ok {
				return Experiment{}, fmt.Errorf("cannot assign %T to slot %q", value, address.Slot)
			}
			out.files = groups.Clone()
			return out, nil
		}
		files, err := asFiles(address, value)
		if err != nil {
			return Experiment{}, err
		}
		if err := out.files.SetGroup(address.Field, files); err != nil {
			return Experiment{}, err
		}
	case SlotSpectra:
		if address.Field != "" {
			return Experiment{}, fmt.Errorf("spectra variables are read-only; cannot assign %q", address)
		}
		spectra, ok := value.(*assay.Spectra)
		if !ok {
			return Experiment{}, fmt.Errorf("cannot assign %T to slot %q", value, address.Slot)
		}
		out.spectra = spectra.Clone()
	}
	return out, nil
}

func setTableElement(t *assay.Table, address Address, value any) error {
	if address.Field == "" {
		replacement, err := asTable(address, value)
		if err != nil {
			return err
		}
		*t = *replacement
		return nil
	}
	values, ok := value.([]any)
	if !ok {
		return fmt.Errorf("cannot assign %T to field %q", value, address)
	}
	return t.SetField(address.Field, values)
}

func asTable(address Address, value any) (*assay.Table, error) {
	table, ok := value.(*assay.Table)
	if !ok {
		return nil, fmt.Errorf("cannot assign %T to slot %q", value, address.Slot)
	}
	return table.Clone(), nil
}

func asFiles(address Address, value any) (assay.Files, error) {
	switch v := value.(type) {
	case assay.Files:
		return v.Clone(), nil
	case []string:
		return assay.Files(v).Clone(), nil
	default:
		return nil, fmt.Errorf("cannot assign %T to file group %q", value, address)
	}
}

// collectionAt resolves an address to the linkable collection behind it:
// the table for table slots, the spectra set, or the named file group.
func (e Experiment) collectionAt(address Address) (assay.Collection, error) {
	switch address.Slot {
	case SlotSampleData:
		return e.samples, nil
	case SlotMetadata:
		return e.metadata, nil
	case SlotQuantification:
		return e.quant, nil
	case SlotSpectra:
		return e.spectra, nil
	case SlotExperimentFiles:
		if address.Field == "" {
			return nil, fmt.Errorf("%q is not a linkable collection: name a file group", address.Slot)
		}
		group, ok := e.files.Group(address.Field)
		if !ok {
			return nil, fmt.Errorf("file group %q does not exist", address.Field)
		}
		return group, nil
	}
	return nil, UnknownSlotError{Slot: string(address.Slot)}
}

// setCollectionAt writes a subset collection back into its slot. Called
// only with collections previously obtained from collectionAt, so the
// dynamic types always line up.
func (e *Experiment) setCollectionAt(address Address, c assay.Collection) error {
	switch address.Slot {
	case SlotSampleData:
		e.samples = c.(*assay.Table)
	case SlotMetadata:
		e.metadata = c.(*assay.Table)
	case SlotQuantification:
		e.quant = c.(*assay.Table)
	case SlotSpectra:
		e.spectra = c.(*assay.Spectra)
	case SlotExperimentFiles:
		return e.files.SetGroup(address.Field, c.(assay.Files))
	default:
		return UnknownSlotError{Slot: string(address.Slot)}
	}
	return nil
}

// targetAddress normalizes a link target: table-like and spectra slots are
// addressed bare, file groups by "experimentFiles.<group>".
func targetAddress(address Address) Address {
	if address.Slot == SlotExperimentFiles {
		return address
	}
	return Address{Slot: address.Slot}
}
