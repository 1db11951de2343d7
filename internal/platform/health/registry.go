// Package health tracks downstream dependencies for the readiness probe.
package health

import (
	"context"
	"sync"
	"time"

	"github.com/jsamuelsen11/storefront-shops/internal/ports"
)

var _ ports.HealthRegistry = (*Registry)(nil)

// DefaultCheckTimeout bounds a single health check.
const DefaultCheckTimeout = 2 * time.Second

// Registry runs registered checks concurrently. Checkers are keyed by name;
// registering a second checker under the same name replaces the first.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	checkers map[string]ports.HealthChecker
	timeout  time.Duration
}

// New creates an empty registry. A non-positive timeout selects
// DefaultCheckTimeout.
func New(timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = DefaultCheckTimeout
	}
	return &Registry{
		checkers: make(map[string]ports.HealthChecker),
		timeout:  timeout,
	}
}

// Register adds or replaces checker.
func (r *Registry) Register(checker ports.HealthChecker) {
	name := checker.Name()

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.checkers[name]; !ok {
		r.order = append(r.order, name)
	}
	r.checkers[name] = checker
}

// CheckAll runs every check and returns the results keyed by name. A nil
// value means healthy.
func (r *Registry) CheckAll(ctx context.Context) map[string]error {
	r.mu.RLock()
	checkers := make([]ports.HealthChecker, 0, len(r.order))
	for _, name := range r.order {
		checkers = append(checkers, r.checkers[name])
	}
	r.mu.RUnlock()

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	errs := make([]error, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Go(func() {
			errs[i] = c.HealthCheck(ctx)
		})
	}
	wg.Wait()

	results := make(map[string]error, len(checkers))
	for i, c := range checkers {
		results[c.Name()] = errs[i]
	}
	return results
}
