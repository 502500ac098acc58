package assay

import "fmt"

// Collection is the minimal capability any linkable collection provides.
// The experiment linking engine knows nothing else about a collection: it
// asks for its length, for field vectors by name when resolving joins, and
// for a duplicating element selection when propagating a sample subset.
type Collection interface {
	// Len returns the number of elements in the collection.
	Len() int
	// Field returns the named per-element value vector and whether the
	// field exists. Collections without named fields always report false.
	Field(name string) ([]any, bool)
	// Select returns a new collection holding the elements at the given
	// 1-based indices, in order, preserving repeats. Indices must be
	// within [1, Len()]; out-of-range indices are a programmer error and
	// panic.
	Select(indices []int) Collection
}

// Compile-time contract assertions for the built-in collection kinds.
var (
	_ Collection = (*Table)(nil)
	_ Collection = Files(nil)
	_ Collection = (*Spectra)(nil)
)

// checkIndices panics when an index falls outside [1, n]. Selection bounds
// are validated by the linking engine before any Select call, so a failure
// here indicates a bug in the caller rather than bad user input.
func checkIndices(kind string, indices []int, n int) {
	for _, idx := range indices {
		if idx < 1 || idx > n {
			panic(fmt.Errorf("assay: %s select index %d out of range [1, %d]", kind, idx, n))
		}
	}
}
