package experiment

import "fmt"

// CheckLinks revalidates every registry entry against the current sample
// count and collection lengths, returning one error per violated entry. A
// healthy container yields an empty slice.
func (e Experiment) CheckLinks() []error {
	var errs []error
	for _, target := range e.links.addresses() {
		link, _ := e.links.get(target)
		addr, err := ParseAddress(target)
		if err != nil {
			errs = append(errs, fmt.Errorf("link %q: %w", target, err))
			continue
		}
		collection, err := e.collectionAt(addr)
		if err != nil {
			errs = append(errs, fmt.Errorf("link %q: %w", target, err))
			continue
		}
		if link.SubsetBy != SubsetByRow && link.SubsetBy != SubsetByColumn {
			errs = append(errs, fmt.Errorf("link %q: invalid subsetBy tag %d", target, link.SubsetBy))
		}
		if err := link.Matrix.Validate(e.SampleCount(), collection.Len()); err != nil {
			errs = append(errs, fmt.Errorf("link %q: %w", target, err))
		}
	}
	return errs
}
