package experiment

import "context"

// NamedExperiment pairs a stored container with its registry name.
type NamedExperiment struct {
	Name       string     `json:"name"`
	Experiment Experiment `json:"experiment"`
}

// Transaction exposes the container operations a persistence implementation
// must support within an atomic scope. Engine operations (linking,
// subsetting, element assignment) run through UpdateExperiment so a failed
// operation never leaves a partially updated container behind.
type Transaction interface {
	CreateExperiment(name string, exp Experiment) (Experiment, error)
	UpdateExperiment(name string, mutator func(*Experiment) error) (Experiment, error)
	DeleteExperiment(name string) error
	FindExperiment(name string) (Experiment, bool)
}

// TransactionView provides read-only access to a snapshot of the stored
// containers.
type TransactionView interface {
	ListExperiments() []NamedExperiment
	FindExperiment(name string) (Experiment, bool)
}

// PersistentStore is a minimal abstraction over durable backends, mirroring
// the subset of store capabilities higher layers use directly.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) error
	View(ctx context.Context, fn func(TransactionView) error) error
	GetExperiment(name string) (Experiment, bool)
	ListExperiments() []NamedExperiment
}
