package respool

import (
	"sync"

	"go.uber.org/zap"
)

// Options configure the optional collaborators of a ResourcePool.
// The zero value is valid and leaves the pool without logging or metrics.
type Options struct {

	// Logger receives wait, wake and membership events at debug level.
	// It observes the pool only and never influences control flow.
	// Defaults to a no-op logger when nil.
	Logger *zap.Logger

	// Metrics, when set, is updated with counters and gauges for pool
	// activity. Leave nil to record nothing.
	Metrics *Metrics
}

// New creates and initializes a new ResourcePool for resources of type R.
// The pool starts closed and empty: Open gates acquisition and Add supplies
// membership, independently of one another. All synchronization is internally
// managed using one mutex and condition variables sharing it.
func New[R comparable](opts Options) *ResourcePool[R] {

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	mu := &sync.Mutex{}

	resourcePool := &ResourcePool[R]{
		mu:      mu,
		avail:   sync.NewCond(mu),
		logger:  logger,
		metrics: opts.Metrics,
	}

	return resourcePool
}
