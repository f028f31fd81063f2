package pool

import (
	"github.com/pgvanniekerk/respool/internal/respool"
)

// Options configure optional collaborators of a pool. The zero value is valid:
// no logging and no metrics.
type Options = respool.Options

// Metrics holds the Prometheus collectors a pool updates when configured with
// them via Options. See NewMetrics.
type Metrics = respool.Metrics

// NewMetrics creates and registers Prometheus collectors for pool activity
// under the given namespace and subsystem. The returned value can be shared
// between pools that should report into the same collectors.
func NewMetrics(namespace, subsystem string) *Metrics {
	return respool.NewMetrics(namespace, subsystem)
}

// New creates a new, empty resource pool for resources of type R.
// The pool starts closed; call Open before acquiring. Pass Options{} when no
// logging or metrics are needed.
func New[R comparable](opts Options) Pool[R] {
	return respool.New[R](opts)
}
