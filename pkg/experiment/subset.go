package experiment

import (
	"fmt"

	"msexperiment/pkg/assay"
)

// ExtractSamples produces a new container whose sample table holds the rows
// at the given 1-based indices, in order. Indices may repeat and appear in
// any order; duplicates produce duplicate rows. Every registered link is
// propagated: the linked collection is reshaped to stay consistent with
// the new sample order, and its link matrix is rewritten 1-based and
// contiguous against the new element order. Collections that were never
// linked are carried over verbatim.
func (e Experiment) ExtractSamples(indices []int) (Experiment, error) {
	n := e.SampleCount()
	for _, idx := range indices {
		if idx < 1 || idx > n {
			return Experiment{}, fmt.Errorf("sample index %d out of range [1, %d]", idx, n)
		}
	}

	out := e.clone()
	out.samples = e.samples.Select(indices).(*assay.Table)

	for _, target := range e.links.addresses() {
		link := e.links.entries[target]
		address, err := ParseAddress(target)
		if err != nil {
			return Experiment{}, err
		}
		collection, err := e.collectionAt(address)
		if err != nil {
			return Experiment{}, err
		}
		// Guard against collections replaced wholesale since linking.
		if err := link.Matrix.Validate(n, collection.Len()); err != nil {
			return Experiment{}, fmt.Errorf("link %q no longer consistent: %w", target, err)
		}

		var selected []int
		var rewritten LinkMatrix
		switch link.SubsetBy {
		case SubsetByColumn:
			selected, rewritten = subsetByColumn(link.Matrix, indices)
		default:
			selected, rewritten = subsetByRow(link.Matrix, indices)
		}
		if err := out.setCollectionAt(address, collection.Select(selected)); err != nil {
			return Experiment{}, err
		}
		out.links.set(target, Link{Matrix: rewritten, SubsetBy: link.SubsetBy})
	}
	return out, nil
}

// subsetByRow re-materializes the collection by concatenating, for each new
// sample position, one element copy per matched link row. Elements shared
// by several selected samples are duplicated; elements owned by no selected
// sample are dropped.
func subsetByRow(matrix LinkMatrix, indices []int) (selected []int, rewritten LinkMatrix) {
	for k, sample := range indices {
		for _, row := range matrix {
			if row[0] != sample {
				continue
			}
			selected = append(selected, row[1])
			rewritten = append(rewritten, [2]int{k + 1, len(selected)})
		}
	}
	return selected, rewritten
}

// subsetByColumn keeps a strict positional correspondence: each referenced
// element is selected once, at its first appearance over the new sample
// order, and every link row is rewritten against that distinct selection.
func subsetByColumn(matrix LinkMatrix, indices []int) (selected []int, rewritten LinkMatrix) {
	position := make(map[int]int)
	for k, sample := range indices {
		for _, row := range matrix {
			if row[0] != sample {
				continue
			}
			pos, ok := position[row[1]]
			if !ok {
				selected = append(selected, row[1])
				pos = len(selected)
				position[row[1]] = pos
			}
			rewritten = append(rewritten, [2]int{k + 1, pos})
		}
	}
	return selected, rewritten
}

// Subset is the positional extraction surface: it resolves the selector to
// positive 1-based indices and delegates to ExtractSamples. Supported
// selectors: a single int, a slice of ints (all positive, or all negative
// meaning exclusion), and a bool mask of length SampleCount.
func (e Experiment) Subset(selector any) (Experiment, error) {
	indices, err := resolveSelector(selector, e.SampleCount())
	if err != nil {
		return Experiment{}, err
	}
	return e.ExtractSamples(indices)
}

func resolveSelector(selector any, n int) ([]int, error) {
	switch sel := selector.(type) {
	case int:
		return resolveIntSelector([]int{sel}, n)
	case []int:
		return resolveIntSelector(sel, n)
	case []bool:
		if len(sel) != n {
			return nil, fmt.Errorf("bool selector has %d entries, container has %d samples", len(sel), n)
		}
		var indices []int
		for i, keep := range sel {
			if keep {
				indices = append(indices, i+1)
			}
		}
		return indices, nil
	default:
		return nil, fmt.Errorf("unsupported selector type %T", selector)
	}
}

// resolveIntSelector accepts either all-positive indices (kept as given,
// repeats allowed) or all-negative indices (exclusion of the negated
// positions, remaining samples kept in order).
func resolveIntSelector(sel []int, n int) ([]int, error) {
	if len(sel) == 0 {
		return nil, nil
	}
	negative := sel[0] < 0
	for _, idx := range sel {
		if idx == 0 {
			return nil, fmt.Errorf("selector index cannot be 0")
		}
		if (idx < 0) != negative {
			return nil, fmt.Errorf("cannot mix positive and negative selector indices")
		}
	}
	if !negative {
		return append([]int(nil), sel...), nil
	}
	excluded := make(map[int]bool, len(sel))
	for _, idx := range sel {
		pos := -idx
		if pos > n {
			return nil, fmt.Errorf("selector index %d out of range [1, %d]", pos, n)
		}
		excluded[pos] = true
	}
	var indices []int
	for i := 1; i <= n; i++ {
		if !excluded[i] {
			indices = append(indices, i)
		}
	}
	return indices, nil
}
