// Package assay defines the named-collection capability and the concrete
// collection kinds an experiment container can hold: tabular frames, file
// path lists and spectrum sets. Collections are value-oriented: selection
// returns a new collection and accessors copy, so callers may retain prior
// references safely.
//
// All element indices in this package are 1-based, matching the sample and
// element index space used by the experiment link registry.
package assay
