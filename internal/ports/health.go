package ports

import "context"

// HealthChecker is implemented by components that can report their health,
// such as the drinks API client.
type HealthChecker interface {
	// Name identifies the component in readiness output (e.g. "drinks-api").
	Name() string

	// HealthCheck returns nil when healthy. Implementations honor ctx.
	HealthCheck(ctx context.Context) error
}

// HealthRegistry aggregates health checkers for the readiness probe.
type HealthRegistry interface {
	Register(checker HealthChecker)

	// CheckAll returns results keyed by checker name; nil means healthy.
	CheckAll(ctx context.Context) map[string]error
}
