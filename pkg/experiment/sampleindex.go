package experiment

import "fmt"

// FirstOwners returns, per element position 1..n, the sample index of the
// element's first mapping in matrix row order, or 0 for unmapped elements.
// When any element is mapped by more than one row the lookup still returns
// the deterministic first match and reports the condition through the
// returned AmbiguousMappingError, which is a warning-level diagnostic, not
// a failure.
func (m LinkMatrix) FirstOwners(n int) ([]int, *AmbiguousMappingError) {
	owners := make([]int, n)
	var ambiguous []int
	seenAmbiguous := make(map[int]bool)
	for _, row := range m {
		element := row[1]
		if element < 1 || element > n {
			continue
		}
		if owners[element-1] != 0 {
			if !seenAmbiguous[element] {
				seenAmbiguous[element] = true
				ambiguous = append(ambiguous, element)
			}
			continue
		}
		owners[element-1] = row[0]
	}
	if len(ambiguous) > 0 {
		return owners, &AmbiguousMappingError{Elements: ambiguous}
	}
	return owners, nil
}

// AllOwners returns, per element position 1..n, every sample index mapped
// to it, in matrix row order. Multiplicity is expected in this mode, so no
// diagnostic is raised; unmapped elements get an empty set.
func (m LinkMatrix) AllOwners(n int) [][]int {
	owners := make([][]int, n)
	for _, row := range m {
		element := row[1]
		if element < 1 || element > n {
			continue
		}
		owners[element-1] = append(owners[element-1], row[0])
	}
	return owners
}

// SpectraSampleIndex answers, per spectrum, which sample it belongs to: the
// first mapping in link order plus an ambiguity diagnostic when a spectrum
// is shared. Zero marks spectra that belong to no sample. Fails when the
// spectra collection has never been linked.
func (e Experiment) SpectraSampleIndex() ([]int, *AmbiguousMappingError, error) {
	link, ok := e.links.get(string(SlotSpectra))
	if !ok {
		return nil, nil, fmt.Errorf("spectra are not linked to sample data")
	}
	owners, diag := link.Matrix.FirstOwners(e.spectra.Len())
	return owners, diag, nil
}

// SpectraSampleIndexAll answers, per spectrum, every sample it belongs to.
// Fails when the spectra collection has never been linked.
func (e Experiment) SpectraSampleIndexAll() ([][]int, error) {
	link, ok := e.links.get(string(SlotSpectra))
	if !ok {
		return nil, fmt.Errorf("spectra are not linked to sample data")
	}
	return link.Matrix.AllOwners(e.spectra.Len()), nil
}
