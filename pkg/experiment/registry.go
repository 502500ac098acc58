package experiment

// SubsetBy tags control how a linked collection is reshaped when the sample
// table is subset.
const (
	// SubsetByRow duplicates-on-fanout: the collection is re-materialized
	// by concatenating, per new sample position, one copy of every element
	// its link rows reference. Elements shared by several samples are
	// physically duplicated; elements owned by no selected sample are
	// dropped. This is the default.
	SubsetByRow = 1
	// SubsetByColumn keeps a strict positional correspondence: the
	// collection's elements are selected once per distinct referenced
	// index, never duplicated, for collections whose rows already align
	// one-per-sample-key (a row-per-sample quantification frame).
	SubsetByColumn = 2
)

// Link is one registry entry: the matrix recording the relationship plus
// the subset policy for the linked collection.
type Link struct {
	Matrix   LinkMatrix `json:"matrix"`
	SubsetBy int        `json:"subsetBy"`
}

func (l Link) clone() Link {
	return Link{Matrix: l.Matrix.Clone(), SubsetBy: l.SubsetBy}
}

// linkRegistry maps collection addresses to their link entries, preserving
// insertion order so subset propagation and serialization are
// deterministic.
type linkRegistry struct {
	order   []string
	entries map[string]Link
}

func newLinkRegistry() linkRegistry {
	return linkRegistry{entries: make(map[string]Link)}
}

func (r linkRegistry) clone() linkRegistry {
	out := newLinkRegistry()
	out.order = append([]string(nil), r.order...)
	for addr, link := range r.entries {
		out.entries[addr] = link.clone()
	}
	return out
}

// set inserts or replaces the entry for the address. Replacement keeps the
// original registration position.
func (r *linkRegistry) set(addr string, link Link) {
	if _, exists := r.entries[addr]; !exists {
		r.order = append(r.order, addr)
	}
	r.entries[addr] = link
}

func (r linkRegistry) get(addr string) (Link, bool) {
	link, ok := r.entries[addr]
	if !ok {
		return Link{}, false
	}
	return link.clone(), true
}

// addresses returns the registered addresses in registration order.
func (r linkRegistry) addresses() []string {
	return append([]string(nil), r.order...)
}
