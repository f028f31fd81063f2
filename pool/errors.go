// Package pool provides a generic, thread-safe pool of interchangeable
// resources with blocking and timeout-bounded acquisition, dynamic membership
// and graceful shutdown.
package pool

import (
	"github.com/pgvanniekerk/respool/internal/respool"
)

// ErrPoolClosed is returned by Acquire and AcquireTimeout when the pool's gate
// is closed, whether it was closed before the call or while the caller was
// waiting. It indicates a lifecycle problem on the calling side, unlike a
// timeout, which is an expected outcome and reported through AcquireTimeout's
// boolean result instead of an error.
//
// This error can be used to distinguish between the ways an acquisition
// can come back empty:
//   - The pool is not open (ErrPoolClosed)
//   - The caller's context was canceled (context.Canceled)
//   - The caller's context deadline passed (context.DeadlineExceeded)
//   - No resource became available in time (AcquireTimeout returns false, nil)
//
// Example handling:
//
//	res, ok, err := p.AcquireTimeout(ctx, 100*time.Millisecond)
//	if errors.Is(err, pool.ErrPoolClosed) {
//	    return err // pool shut down, stop retrying
//	}
//	if err != nil {
//	    return err // canceled
//	}
//	if !ok {
//	    continue // busy, try again later
//	}
//	defer p.Release(res)
var ErrPoolClosed = respool.ErrPoolClosed
