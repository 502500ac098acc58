// Package core exposes the transactional service layer over stored
// experiment containers: CRUD plus the linking, subsetting and element
// assignment operations, instrumented with metrics and trace spans.
package core

import (
	"context"
	"fmt"
	"io"
	"time"

	"msexperiment/internal/blob"
	"msexperiment/pkg/experiment"
)

// Service exposes higher-level transactional operations over stored
// experiment containers. Engine operations run inside a store transaction so
// a failed operation leaves the stored container untouched.
type Service struct {
	store   PersistentStore
	blobs   blob.Store
	metrics MetricsRecorder
	tracer  Tracer
	logger  Logger
	nowFn   func() time.Time
}

// Option customizes service construction.
type Option func(*Service)

// WithMetricsRecorder routes operation outcomes to the supplied recorder.
func WithMetricsRecorder(rec MetricsRecorder) Option {
	return func(s *Service) {
		if rec != nil {
			s.metrics = rec
		}
	}
}

// WithTracer wraps every operation in a span from the supplied tracer.
func WithTracer(tr Tracer) Option {
	return func(s *Service) {
		if tr != nil {
			s.tracer = tr
		}
	}
}

// WithLogger routes diagnostics to the supplied logger.
func WithLogger(l Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBlobStore attaches a raw file store for staging and retrieval.
func WithBlobStore(b blob.Store) Option {
	return func(s *Service) {
		if b != nil {
			s.blobs = b
		}
	}
}

// WithClock overrides the time source used for duration measurements.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.nowFn = now
		}
	}
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...Option) *Service {
	s := &Service{
		store:   store,
		metrics: noopMetricsRecorder{},
		tracer:  noopTracer{},
		logger:  noopLogger{},
		nowFn:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore { return s.store }

func (s *Service) instrument(ctx context.Context, operation string) func(error) {
	_, span := s.tracer.Start(ctx, operation)
	start := s.nowFn()
	return func(err error) {
		span.End(err)
		s.metrics.Observe(ctx, operation, err == nil, s.nowFn().Sub(start))
		if err != nil {
			s.logger.Error(operation+" failed", "error", err)
		}
	}
}

// CreateExperiment stores a new named container.
func (s *Service) CreateExperiment(ctx context.Context, name string, exp Experiment) (created Experiment, err error) {
	done := s.instrument(ctx, "create_experiment")
	defer func() { done(err) }()
	err = s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var txErr error
		created, txErr = tx.CreateExperiment(name, exp)
		return txErr
	})
	return created, err
}

// GetExperiment returns the named container.
func (s *Service) GetExperiment(ctx context.Context, name string) (exp Experiment, err error) {
	done := s.instrument(ctx, "get_experiment")
	defer func() { done(err) }()
	exp, ok := s.store.GetExperiment(name)
	if !ok {
		err = fmt.Errorf("experiment %q not found", name)
	}
	return exp, err
}

// ListExperiments returns all stored containers sorted by name.
func (s *Service) ListExperiments(ctx context.Context) (list []NamedExperiment, err error) {
	done := s.instrument(ctx, "list_experiments")
	defer func() { done(err) }()
	return s.store.ListExperiments(), nil
}

// DeleteExperiment removes a stored container.
func (s *Service) DeleteExperiment(ctx context.Context, name string) (err error) {
	done := s.instrument(ctx, "delete_experiment")
	defer func() { done(err) }()
	err = s.store.RunInTransaction(ctx, func(tx Transaction) error {
		return tx.DeleteExperiment(name)
	})
	return err
}

// LinkSampleData records a sample-to-element link on the named container.
func (s *Service) LinkSampleData(ctx context.Context, name string, req LinkRequest) (updated Experiment, err error) {
	done := s.instrument(ctx, "link_sample_data")
	defer func() { done(err) }()
	err = s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var txErr error
		updated, txErr = tx.UpdateExperiment(name, func(e *Experiment) error {
			linked, linkErr := e.LinkSampleData(req)
			if linkErr != nil {
				return linkErr
			}
			*e = linked
			return nil
		})
		return txErr
	})
	return updated, err
}

// ExtractSamples reduces the named container to the selected samples,
// propagating the reduction through every linked collection.
func (s *Service) ExtractSamples(ctx context.Context, name string, indices []int) (updated Experiment, err error) {
	done := s.instrument(ctx, "extract_samples")
	defer func() { done(err) }()
	err = s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var txErr error
		updated, txErr = tx.UpdateExperiment(name, func(e *Experiment) error {
			out, exErr := e.ExtractSamples(indices)
			if exErr != nil {
				return exErr
			}
			*e = out
			return nil
		})
		return txErr
	})
	return updated, err
}

// Subset resolves a selector (index, index slice or boolean mask) against
// the named container's samples and extracts the result.
func (s *Service) Subset(ctx context.Context, name string, selector any) (updated Experiment, err error) {
	done := s.instrument(ctx, "subset_experiment")
	defer func() { done(err) }()
	err = s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var txErr error
		updated, txErr = tx.UpdateExperiment(name, func(e *Experiment) error {
			out, subErr := e.Subset(selector)
			if subErr != nil {
				return subErr
			}
			*e = out
			return nil
		})
		return txErr
	})
	return updated, err
}

// SetElement assigns a value at the addressed slot of the named container.
func (s *Service) SetElement(ctx context.Context, name string, address string, value any) (updated Experiment, err error) {
	done := s.instrument(ctx, "set_element")
	defer func() { done(err) }()
	err = s.store.RunInTransaction(ctx, func(tx Transaction) error {
		var txErr error
		updated, txErr = tx.UpdateExperiment(name, func(e *Experiment) error {
			out, setErr := e.SetElement(address, value)
			if setErr != nil {
				return setErr
			}
			*e = out
			return nil
		})
		return txErr
	})
	return updated, err
}

// SpectraSampleIndex reports, per spectrum of the named container, the owning
// sample index (0 for unmapped spectra) plus a non-fatal ambiguity
// diagnostic.
func (s *Service) SpectraSampleIndex(ctx context.Context, name string) (owners []int, diag *experiment.AmbiguousMappingError, err error) {
	done := s.instrument(ctx, "spectra_sample_index")
	defer func() { done(err) }()
	exp, ok := s.store.GetExperiment(name)
	if !ok {
		return nil, nil, fmt.Errorf("experiment %q not found", name)
	}
	owners, diag, err = exp.SpectraSampleIndex()
	if diag != nil {
		s.logger.Warn("ambiguous spectra mapping", "experiment", name, "detail", diag.Error())
	}
	return owners, diag, err
}

// StageRawFile stores raw file content in the attached blob store under key.
func (s *Service) StageRawFile(ctx context.Context, key string, r io.Reader, opts blob.PutOptions) (info blob.Info, err error) {
	done := s.instrument(ctx, "stage_raw_file")
	defer func() { done(err) }()
	if s.blobs == nil {
		return blob.Info{}, fmt.Errorf("no blob store configured")
	}
	info, err = s.blobs.Put(ctx, key, r, opts)
	return info, err
}

// OpenRawFile retrieves raw file content from the attached blob store.
func (s *Service) OpenRawFile(ctx context.Context, key string) (info blob.Info, rc io.ReadCloser, err error) {
	done := s.instrument(ctx, "open_raw_file")
	defer func() { done(err) }()
	if s.blobs == nil {
		return blob.Info{}, nil, fmt.Errorf("no blob store configured")
	}
	info, rc, err = s.blobs.Get(ctx, key)
	return info, rc, err
}

// ListRawFiles lists staged raw files under prefix.
func (s *Service) ListRawFiles(ctx context.Context, prefix string) (infos []blob.Info, err error) {
	done := s.instrument(ctx, "list_raw_files")
	defer func() { done(err) }()
	if s.blobs == nil {
		return nil, fmt.Errorf("no blob store configured")
	}
	infos, err = s.blobs.List(ctx, prefix)
	return infos, err
}
