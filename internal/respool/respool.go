package respool

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrPoolClosed is returned by Acquire and AcquireTimeout when the pool's
// gate is closed at call time or observed closed while waiting.
var ErrPoolClosed = errors.New("resource pool is closed")

// slot pairs one resource value with its possession state. Slots are owned
// exclusively by the pool and never exposed to callers.
type slot[R comparable] struct {

	// resource is the wrapped value. Slot identity is the value equality of
	// resource; the pool never holds two slots wrapping equal values.
	resource R

	// acquired is true while a caller holds the resource. It is read and
	// written only under the pool's mutex.
	acquired bool

	// removed is true once a removal has been committed for this slot.
	// A removed slot can never be acquired again and never transitions back.
	removed bool

	// released signals callers blocked in Remove or Close waiting for this
	// specific slot to be let go, so that they are not woken by unrelated
	// releases elsewhere in the pool. It shares the pool's mutex.
	released *sync.Cond
}

// ResourcePool is a generic pool of distinct resource values that concurrent
// callers borrow and return. One mutex guards the gate flag and the slot
// sequence; every scan and every structural mutation runs under it, so a
// check-and-claim is atomic with respect to other claimants. All blocking
// waits are predicate-checked loops on condition variables sharing that mutex.
type ResourcePool[R comparable] struct {

	// mu protects open and slots, and is the locker behind every condition
	// variable in the pool.
	mu *sync.Mutex

	// avail signals callers blocked in Acquire that the slot sequence may
	// again contain an available slot, after a Release or an Add. Waiters
	// always rescan from the start; a wakeup is a hint, not a handoff.
	avail *sync.Cond

	// open gates acquisition. Membership changes are allowed regardless of
	// the gate; only Acquire and AcquireTimeout consult it.
	open bool

	// slots is the ordered slot sequence. Insertion order defines the scan
	// order for acquisition.
	slots []*slot[R]

	// logger records wait, wake and membership events. It has no effect on
	// control flow.
	logger *zap.Logger

	// metrics, when non-nil, receives counters and gauges for pool activity.
	metrics *Metrics
}

//region Lifecycle

// Open opens the pool's gate so that resources can be acquired.
// Opening an already open pool has no effect.
func (p *ResourcePool[R]) Open() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.open = true
	p.logger.Debug("pool opened")
}

// IsOpen reports whether the gate is currently open.
func (p *ResourcePool[R]) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.open
}

// CloseNow closes the gate immediately. It does not wait for held resources
// and does not evict any slot. Blocked acquirers are woken so that they
// observe the closed gate and fail with ErrPoolClosed.
func (p *ResourcePool[R]) CloseNow() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.open = false
	p.avail.Broadcast()
	p.logger.Debug("pool closed immediately")
}

// Close closes the gate and then blocks until every slot present at that
// moment is either no longer held or has been removed. No resource is
// reclaimed while in use, but new acquisitions are refused from the moment
// Close begins. Slots added while Close is waiting are not waited upon.
// If ctx ends first, Close returns ctx.Err(); the gate stays closed.
func (p *ResourcePool[R]) Close(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.open = false
	p.avail.Broadcast()

	snapshot := make([]*slot[R], len(p.slots))
	copy(snapshot, p.slots)

	// On cancellation, wake the per-slot waits below so the loop can observe
	// ctx and bail out.
	stop := context.AfterFunc(ctx, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for _, s := range snapshot {
			s.released.Broadcast()
		}
	})
	defer stop()

	for _, s := range snapshot {
		for s.acquired && !s.removed {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.logger.Debug("close waiting on held resource", zap.Any("resource", s.resource))
			s.released.Wait()
		}
	}

	p.logger.Debug("pool closed gracefully")
	return nil
}

//endregion

//region Acquisition

// Acquire blocks until a slot that is neither held nor removed exists, claims
// it and returns its resource. The slot sequence is scanned in insertion
// order and the first available slot wins; no ordering across waiters is
// promised. The gate is re-checked on every wake, so a pool closed mid-wait
// fails the waiter with ErrPoolClosed rather than handing out a resource.
// If ctx ends while waiting, Acquire returns ctx.Err().
func (p *ResourcePool[R]) Acquire(ctx context.Context) (R, error) {
	var zero R

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.open {
		return zero, ErrPoolClosed
	}

	// Cancellation composes with the condition variable by waking all
	// acquirers; the loop below re-checks ctx on every wake.
	stop := context.AfterFunc(ctx, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		p.avail.Broadcast()
	})
	defer stop()

	start := time.Now()
	for {
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		if !p.open {
			return zero, ErrPoolClosed
		}

		for _, s := range p.slots {
			if !s.acquired && !s.removed {
				s.acquired = true
				p.observeAcquire(start)
				p.logger.Debug("resource acquired",
					zap.Any("resource", s.resource),
					zap.Duration("waited", time.Since(start)))
				return s.resource, nil
			}
		}

		p.logger.Debug("no resource available, waiting")
		p.avail.Wait()
	}
}

// AcquireTimeout behaves like Acquire bounded by an absolute deadline
// computed once at entry. On timeout it returns (zero, false, nil); absence
// of a resource within the window is an expected outcome, not an error.
// A closed gate still fails with ErrPoolClosed and the caller's own context
// ending still fails with its error.
func (p *ResourcePool[R]) AcquireTimeout(ctx context.Context, timeout time.Duration) (R, bool, error) {
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := p.Acquire(waitCtx)
	if err == nil {
		return res, true, nil
	}

	var zero R

	// The caller's own context ending takes precedence over the deadline
	// this call layered on top of it.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return zero, false, ctxErr
	}
	if errors.Is(err, context.DeadlineExceeded) {
		if p.metrics != nil {
			p.metrics.AcquireTimeouts.Inc()
		}
		p.logger.Debug("acquisition timed out", zap.Duration("timeout", timeout))
		return zero, false, nil
	}
	return zero, false, err
}

// Release returns a resource to the pool. It clears the possession flag on
// the matching slot, wakes blocked acquirers, and wakes callers waiting in
// Remove or Close for this specific slot. Releasing an unknown resource is a
// silent no-op and double releases are harmless. A slot that was already
// marked removed is dropped from the sequence here, on behalf of whichever
// removal committed it. Release never blocks.
func (p *ResourcePool[R]) Release(resource R) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.lookup(resource)
	if s == nil {
		return
	}

	if s.acquired {
		s.acquired = false
		if p.metrics != nil {
			p.metrics.InUse.Dec()
		}
	}
	if s.removed {
		p.unlink(s)
	}

	s.released.Broadcast()
	p.avail.Broadcast()
	p.logger.Debug("resource released", zap.Any("resource", resource))
}

//endregion

//region Membership

// Add places a new resource under management. It returns false without
// modification if an equal resource is already present, including one that is
// still being removed. The duplicate check and the insertion happen under one
// lock hold, so of two concurrent Add calls with equal values exactly one
// succeeds. Adding is permitted regardless of the gate.
func (p *ResourcePool[R]) Add(resource R) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.lookup(resource) != nil {
		return false
	}

	p.slots = append(p.slots, &slot[R]{
		resource: resource,
		released: sync.NewCond(p.mu),
	})

	if p.metrics != nil {
		p.metrics.Resources.Inc()
	}
	p.avail.Broadcast()
	p.logger.Debug("resource added", zap.Any("resource", resource))
	return true
}

// Remove takes a resource out of the pool, waiting for its holder to release
// it first. The slot is marked removed before the wait begins, so no new
// acquisition can claim it from that point on. Of two concurrent Remove calls
// for the same resource, the first marks and waits; the second observes the
// mark and returns false immediately. If ctx ends during the wait, Remove
// returns ctx.Err() and the slot stays retired; its holder's Release drops it.
func (p *ResourcePool[R]) Remove(ctx context.Context, resource R) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.lookup(resource)
	if s == nil || s.removed {
		return false, nil
	}
	s.removed = true

	stop := context.AfterFunc(ctx, func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		s.released.Broadcast()
	})
	defer stop()

	for s.acquired {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		p.logger.Debug("remove waiting on held resource", zap.Any("resource", resource))
		s.released.Wait()
	}

	p.unlink(s)
	p.logger.Debug("resource removed", zap.Any("resource", resource))
	return true, nil
}

// RemoveNow takes a resource out of the pool immediately, regardless of
// whether it is currently held, and returns true if the pool was modified.
// Callers waiting on the slot in Remove or Close are woken; the slot counts
// as removed for them. A caller actively using the resource is not notified.
func (p *ResourcePool[R]) RemoveNow(resource R) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	s := p.lookup(resource)
	if s == nil {
		return false
	}

	s.removed = true
	// The slot leaves the pool even if its resource is still in use; the
	// possession flag is settled here so that a Remove already waiting on
	// this slot observes it as released rather than waiting on a Release
	// that can no longer find the slot.
	if s.acquired {
		s.acquired = false
		if p.metrics != nil {
			p.metrics.InUse.Dec()
		}
	}
	p.unlink(s)
	s.released.Broadcast()
	p.logger.Debug("resource removed immediately", zap.Any("resource", resource))
	return true
}

//endregion

//region Helpers

// lookup returns the slot wrapping a value equal to resource, or nil.
// Slots already marked removed are still found: they must remain releasable,
// count as duplicates for Add, and report "already removing" to Remove.
// Callers must hold p.mu.
func (p *ResourcePool[R]) lookup(resource R) *slot[R] {
	for _, s := range p.slots {
		if s.resource == resource {
			return s
		}
	}
	return nil
}

// unlink deletes s from the slot sequence. It is idempotent: a slot that was
// already dropped (for example by Release finishing a cancelled Remove) is
// left alone. Callers must hold p.mu.
func (p *ResourcePool[R]) unlink(target *slot[R]) {
	for i, s := range p.slots {
		if s == target {
			p.slots = append(p.slots[:i], p.slots[i+1:]...)
			if p.metrics != nil {
				p.metrics.Resources.Dec()
			}
			return
		}
	}
}

// observeAcquire records a successful acquisition. Callers must hold p.mu.
func (p *ResourcePool[R]) observeAcquire(start time.Time) {
	if p.metrics == nil {
		return
	}
	p.metrics.Acquires.Inc()
	p.metrics.InUse.Inc()
	p.metrics.AcquireWait.Observe(time.Since(start).Seconds())
}

//endregion
