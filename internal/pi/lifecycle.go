package pi

import "github.com/nmxmxh/inos_pi/internal/logging"

// InitializeHolders builds the process-wide free list from Config's
// preallocated node count. It is not idempotent: calling it again
// rebuilds a fresh free list, losing track of anything previously drawn
// from the old one — callers should only do this once, at boot, the same
// as the original's nxsem_initholders(). In the inline regime there is
// nothing to build.
func (c *Core) InitializeHolders() {
	if c.cfg.PreallocHolders > 0 {
		c.freeList = NewFreeList(c.cfg.PreallocHolders)
	} else {
		c.freeList = nil
	}
}

// Destroy forcibly recovers every holder entry of sem back to the store,
// without attempting any priority restoration — the caller (tearing down
// the semaphore itself) is responsible for that. A semaphore may be
// destroyed with live holders: a driver tearing down a semaphore it itself
// holds, or a holder thread killed out from under it. The spec's own source
// asserts at most one live holder at destroy time but then iterates all of
// them to recover (spec.md §9, "Open question — multi-holder destroy");
// this tolerant behavior — recover everything found, never hard-fail on
// more than one — is what's implemented here.
func (c *Core) Destroy(sem *Semaphore) {
	n := 0
	sem.store.ForEach(func(h *Holder) int {
		n++
		sem.store.Free(h)
		c.metrics.HoldersInUseAdd(-1)
		return 0
	})
	// ForEach skips drained entries (Counts == 0, not yet freed); free those too.
	switch s := sem.store.(type) {
	case *poolStore:
		for s.head != nil {
			s.Free(s.head)
			c.metrics.HoldersInUseAdd(-1)
		}
	case *inlineStore:
		for i := range s.slots {
			if s.slots[i].Htcb != nil {
				s.Free(&s.slots[i])
				c.metrics.HoldersInUseAdd(-1)
			}
		}
	}
	if c.cfg.Debug && n > 1 {
		c.log.Warnw("destroyed semaphore had more than one live holder", logging.Int("holders", n))
	}
}
