// Package experiment implements the experiment container and its
// sample-to-data linking engine: a primary sample table, named secondary
// collections (file groups, metadata, quantification frames, spectra) and a
// link registry recording many-to-many relationships between the two.
//
// Links are built either from explicit (sampleIndex, elementIndex) pairs or
// from a declarative join expression matching values across two addressed
// fields. Once recorded, links keep every collection consistent under
// arbitrary sample subsetting, reordering and duplication.
//
// Containers behave as values: every mutating operation returns a new
// container and never leaves a partially updated registry visible, so
// callers may retain and reuse prior containers freely. All sample and
// element indices are 1-based.
package experiment
