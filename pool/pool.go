package pool

import (
	"context"
	"time"
)

// Pool defines the interface for a generic, thread-safe resource pool.
// A resource pool manages a bounded collection of interchangeable resources
// (connections, buffers, workers) that concurrent callers borrow and return.
// Each resource is held by at most one caller at a time. The pool never
// constructs, validates, or destroys resource values itself; it only tracks
// possession of opaque values supplied by the caller. Membership is keyed by
// value equality of R, which is why R is constrained to comparable types.
// Implementations of this interface must ensure thread safety and proper
// resource handling.
type Pool[R comparable] interface {

	// Open opens the pool, allowing resources to be acquired.
	// A newly created pool is closed; Open must be called before the first
	// acquisition. Opening an already open pool is a no-op.
	Open()

	// IsOpen reports whether the pool currently accepts acquisitions.
	// It is a pure read with no side effects.
	IsOpen() bool

	// Close closes the pool and blocks until every resource currently in the
	// pool has been released or removed. The gate is closed immediately on
	// entry, so no new acquisitions are accepted while Close waits.
	// Resources remain in the pool afterwards; Close does not evict them.
	// If ctx ends before the pool is quiescent, Close returns ctx.Err().
	Close(ctx context.Context) error

	// CloseNow closes the pool immediately without waiting for acquired
	// resources to be released. It never blocks. Callers blocked in Acquire
	// are woken and fail with ErrPoolClosed.
	CloseNow()

	// Acquire blocks until a resource is available, marks it as held by the
	// caller, and returns it. Resources are scanned in insertion order and
	// the first available one wins; no fairness across waiters is promised.
	// Acquire fails with ErrPoolClosed, without blocking, if the pool is
	// closed when called, and fails with ctx.Err() if ctx ends while waiting.
	// The caller must eventually return the resource via Release.
	Acquire(ctx context.Context) (R, error)

	// AcquireTimeout behaves like Acquire but gives up once the given timeout
	// has elapsed. The second return value reports whether a resource was
	// obtained: (zero, false, nil) signals a timeout, which is an expected
	// outcome rather than an error. A closed pool still fails with
	// ErrPoolClosed and cancellation of ctx still fails with ctx.Err().
	AcquireTimeout(ctx context.Context, timeout time.Duration) (R, bool, error)

	// Release returns a previously acquired resource to the pool and wakes
	// callers waiting in Acquire, Remove or Close. Releasing a resource the
	// pool does not manage is a silent no-op, and releasing twice is
	// harmless. Release never blocks.
	Release(resource R)

	// Add places a new resource under the pool's management and wakes waiting
	// acquirers. It returns false, without modifying the pool, if an equal
	// resource is already present. Adding is permitted whether or not the
	// pool is open; membership and the acquisition gate are independent.
	Add(resource R) bool

	// Remove takes a resource out of the pool, waiting until whoever holds it
	// calls Release before deleting it. It returns true if this call removed
	// the resource. It returns false without blocking if no equal resource is
	// present or if another caller is already removing it. If ctx ends while
	// waiting, Remove returns ctx.Err(); the resource can no longer be
	// acquired and is dropped when its holder releases it.
	Remove(ctx context.Context, resource R) (bool, error)

	// RemoveNow takes a resource out of the pool immediately, without waiting
	// for it to be released, and returns true if the pool was modified.
	// A caller still using the resource is not notified; it is the caller's
	// responsibility to tolerate a revoked resource.
	RemoveNow(resource R) bool
}
