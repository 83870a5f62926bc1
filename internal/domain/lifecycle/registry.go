package lifecycle

import (
	"context"
	"log/slog"
	"sync"

	"go.uber.org/multierr"
)

// CleanupFunc removes a single fixture resource. Implementations must
// tolerate the resource being already gone.
type CleanupFunc func(ctx context.Context) error

// Once wraps a cleanup function so that only the first invocation runs the
// underlying function; later calls return nil. Fixture cleanups are handed
// both to callers and to the registry, and running them twice must never
// fail the suite.
func Once(fn CleanupFunc) CleanupFunc {
	var once sync.Once

	return func(ctx context.Context) error {
		var err error
		once.Do(func() { err = fn(ctx) })

		return err
	}
}

type cleanupStep struct {
	name string
	fn   CleanupFunc
}

// Registry collects teardown actions as fixtures are created and runs them
// in strict reverse-of-creation order, so child rows are always removed
// before the parent rows they reference. Register is safe to call from
// concurrent fixture fan-outs.
type Registry struct {
	mu     sync.Mutex
	logger *slog.Logger
	steps  []cleanupStep
}

// NewRegistry is the constructor for Registry.
func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{logger: logger}
}

// Register appends a named teardown action. The name is only used for
// logging failed steps.
func (r *Registry) Register(name string, fn CleanupFunc) {
	if fn == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.steps = append(r.steps, cleanupStep{name: name, fn: fn})
}

// Len returns the number of pending teardown actions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.steps)
}

// Run executes all registered teardown actions in reverse registration
// order. Every action is attempted regardless of earlier failures; the
// individual errors are aggregated into the returned error. Steps are
// consumed, so a second Run is a no-op.
func (r *Registry) Run(ctx context.Context) error {
	r.mu.Lock()
	steps := r.steps
	r.steps = nil
	r.mu.Unlock()

	var errs error
	for i := len(steps) - 1; i >= 0; i-- {
		step := steps[i]
		if err := step.fn(ctx); err != nil {
			r.logger.Warn("Cleanup step failed",
				slog.String("step", step.name),
				slog.Any("error", err))
			errs = multierr.Append(errs, err)
		}
	}

	return errs
}
