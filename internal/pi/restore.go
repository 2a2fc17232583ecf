package pi

// RestoreBaseprio lowers holder priorities after a post or cancel. stcb is
// the thread that was granted the count, or nil if no waiter was woken.
// Dispatches to the IRQ or task variant based on which context the post
// came from (spec.md §4.E).
func (c *Core) RestoreBaseprio(stcb ThreadHandle, sem *Semaphore) {
	if sem.Disabled() {
		return
	}
	if c.sched.InInterruptContext() {
		c.restoreBaseprioIRQ(stcb, sem)
		return
	}
	c.restoreBaseprioTask(c.sched.CurrentThread(), stcb, sem)
}

// restoreBaseprioIRQ handles a post from interrupt context. An ISR holds no
// counts and has no priority of its own, so every holder is a candidate for
// restoration — there is no "self" to defer.
func (c *Core) restoreBaseprioIRQ(stcb ThreadHandle, sem *Semaphore) {
	if stcb == nil {
		c.assertHoldersAtBase(sem)
		return
	}
	sem.store.ForEach(func(h *Holder) int {
		c.restoreOne(h.Htcb, sem)
		return 0
	})
}

// restoreBaseprioTask handles a post from the currently running thread
// rtcb, which is itself a holder whose count was just decremented by
// ReleaseHolder. Restoring every other holder before rtcb is a correctness
// requirement, not an optimization: restoring rtcb first could mark it
// pending and have it observably suspended before it finishes walking the
// holder list (spec.md §9).
func (c *Core) restoreBaseprioTask(rtcb, stcb ThreadHandle, sem *Semaphore) {
	if stcb != nil {
		sem.store.ForEach(func(h *Holder) int {
			if h.Htcb == rtcb {
				return 0
			}
			c.restoreOne(h.Htcb, sem)
			return 0
		})

		if _, inline := sem.store.(*inlineStore); inline {
			c.freeIfDrained(sem, rtcb)
		}
		c.restoreOne(rtcb, sem)
	} else {
		c.assertHoldersAtBase(sem)
	}

	c.freeIfDrained(sem, rtcb)
}

func (c *Core) freeIfDrained(sem *Semaphore, htcb ThreadHandle) {
	if h := sem.store.Find(htcb); h != nil && h.Counts == 0 {
		sem.store.Free(h)
		c.metrics.HoldersInUseAdd(-1)
	}
}

// Canceled handles a waiter aborting (e.g. on a signal) before it was
// granted the count. It behaves exactly like the IRQ restore path: iterate
// every holder and restore it, since the waiter that elevated them is gone.
// The semaphore's own count is unaffected — other waiters may still be
// queued — which callers may assert with AssertSemCountNonPositive.
func (c *Core) Canceled(stcb ThreadHandle, sem *Semaphore) {
	if sem.Disabled() {
		return
	}
	sem.store.ForEach(func(h *Holder) int {
		c.restoreOne(h.Htcb, sem)
		return 0
	})
}

// restoreOne restores a single holder thread toward its base priority,
// accounting for any other boosts it may still be owed (nested mode) or
// relying on the scheduler's own pending-reprio bookkeeping (single-boost
// mode).
func (c *Core) restoreOne(htcb ThreadHandle, sem *Semaphore) {
	pholder := sem.store.Find(htcb)

	if !c.sched.VerifyTCB(htcb) {
		if pholder != nil {
			sem.store.Free(pholder)
			c.metrics.HoldersInUseAdd(-1)
		}
		c.metrics.StaleHandleInc()
		c.log.Warnw("stale TCB during restore, holder count lost")
		return
	}

	if htcb.SchedPriority() == htcb.BasePriority() {
		return
	}

	if c.cfg.MaxNest == 0 {
		c.sched.Reprioritize(htcb, htcb.BasePriority())
		c.metrics.RestoresInc()
		return
	}

	nh, ok := htcb.(NestedThreadHandle)
	if !ok {
		c.log.Errorw("nested-boost mode requires a NestedThreadHandle")
		return
	}
	ledger := nh.Ledger()

	if pholder == nil || pholder.Counts == 0 {
		ledger.RemoveAllForSem(sem)
	} else {
		ledger.RemoveMaxForSem(sem)
	}

	newPriority := ledger.MaxPriority(htcb.BasePriority())
	if newPriority != htcb.SchedPriority() {
		c.sched.SetPriority(htcb, newPriority)
		c.metrics.RestoresInc()
	}
}
