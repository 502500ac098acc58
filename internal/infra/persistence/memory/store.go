// Package memory provides an in-memory implementation of the experiment
// persistence store used for tests and ephemeral environments.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"msexperiment/pkg/experiment"
)

// Compile-time contract assertion ensuring memory.Store adheres to the
// experiment persistence interfaces.
var _ experiment.PersistentStore = (*Store)(nil)

type memoryState struct {
	experiments map[string]experiment.Experiment
}

func newMemoryState() memoryState {
	return memoryState{experiments: make(map[string]experiment.Experiment)}
}

func (s memoryState) clone() memoryState {
	out := newMemoryState()
	for name, exp := range s.experiments {
		out.experiments[name] = exp
	}
	return out
}

// Snapshot captures a point-in-time clone of the store state.
type Snapshot struct {
	Experiments map[string]experiment.Experiment `json:"experiments"`
}

func snapshotFromMemoryState(state memoryState) Snapshot {
	s := Snapshot{Experiments: make(map[string]experiment.Experiment, len(state.experiments))}
	for name, exp := range state.experiments {
		s.Experiments[name] = exp
	}
	return s
}

func memoryStateFromSnapshot(s Snapshot) memoryState {
	state := newMemoryState()
	for name, exp := range s.Experiments {
		state.experiments[name] = exp
	}
	return state
}

// Store provides an in-memory transactional store for experiment containers.
type Store struct {
	mu    sync.RWMutex
	state memoryState
}

// NewStore constructs an empty in-memory store.
func NewStore() *Store {
	return &Store{state: newMemoryState()}
}

// ExportState clones the current store state for external persistence.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotFromMemoryState(s.state)
}

// ImportState replaces the store state with the provided snapshot.
func (s *Store) ImportState(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if snapshot.Experiments == nil {
		snapshot.Experiments = map[string]experiment.Experiment{}
	}
	s.state = memoryStateFromSnapshot(snapshot)
}

type transaction struct {
	state memoryState
}

type transactionView struct {
	state *memoryState
}

func newTransactionView(state *memoryState) transactionView {
	return transactionView{state: state}
}

// ListExperiments returns all stored containers sorted by name.
func (v transactionView) ListExperiments() []experiment.NamedExperiment {
	out := make([]experiment.NamedExperiment, 0, len(v.state.experiments))
	for name, exp := range v.state.experiments {
		out = append(out, experiment.NamedExperiment{Name: name, Experiment: exp})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// FindExperiment returns the named container within the snapshot.
func (v transactionView) FindExperiment(name string) (experiment.Experiment, bool) {
	exp, ok := v.state.experiments[name]
	return exp, ok
}

// RunInTransaction executes fn within a transactional copy of the store
// state. The copy is committed only when fn returns nil.
func (s *Store) RunInTransaction(_ context.Context, fn func(experiment.Transaction) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{state: s.state.clone()}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = tx.state
	return nil
}

// View executes fn against a read-only snapshot of the store state.
func (s *Store) View(_ context.Context, fn func(experiment.TransactionView) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := s.state.clone()
	return fn(newTransactionView(&snapshot))
}

// GetExperiment returns the named container from the committed state.
func (s *Store) GetExperiment(name string) (experiment.Experiment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	exp, ok := s.state.experiments[name]
	return exp, ok
}

// ListExperiments returns all committed containers sorted by name.
func (s *Store) ListExperiments() []experiment.NamedExperiment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := s.state.clone()
	return newTransactionView(&snapshot).ListExperiments()
}

// CreateExperiment stores a new container within the transaction.
func (tx *transaction) CreateExperiment(name string, exp experiment.Experiment) (experiment.Experiment, error) {
	if name == "" {
		return experiment.Experiment{}, fmt.Errorf("experiment name must not be empty")
	}
	if _, exists := tx.state.experiments[name]; exists {
		return experiment.Experiment{}, fmt.Errorf("experiment %q already exists", name)
	}
	tx.state.experiments[name] = exp
	return exp, nil
}

// UpdateExperiment mutates a container using the provided mutator function.
func (tx *transaction) UpdateExperiment(name string, mutator func(*experiment.Experiment) error) (experiment.Experiment, error) {
	current, ok := tx.state.experiments[name]
	if !ok {
		return experiment.Experiment{}, fmt.Errorf("experiment %q not found", name)
	}
	if err := mutator(&current); err != nil {
		return experiment.Experiment{}, err
	}
	tx.state.experiments[name] = current
	return current, nil
}

// DeleteExperiment removes a container from the transaction state.
func (tx *transaction) DeleteExperiment(name string) error {
	if _, ok := tx.state.experiments[name]; !ok {
		return fmt.Errorf("experiment %q not found", name)
	}
	delete(tx.state.experiments, name)
	return nil
}

// FindExperiment returns the named container within the transaction state.
func (tx *transaction) FindExperiment(name string) (experiment.Experiment, bool) {
	exp, ok := tx.state.experiments[name]
	return exp, ok
}
