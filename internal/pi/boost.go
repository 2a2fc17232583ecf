package pi

import "github.com/nmxmxh/inos_pi/internal/logging"

// BoostPriority raises the priority of every holder of sem to (at least)
// that of the currently running thread, which is about to block waiting
// for a count. It is invoked from the wait path immediately before the
// caller blocks; the raise never causes a synchronous preemption because
// the scheduler is locked for the duration (spec.md §5).
func (c *Core) BoostPriority(sem *Semaphore) {
	if sem.Disabled() {
		return
	}
	rtcb := c.sched.CurrentThread()
	rp := rtcb.SchedPriority()

	sem.store.ForEach(func(h *Holder) int {
		if !c.sched.VerifyTCB(h.Htcb) {
			// The holder thread died without releasing — the only
			// recovery path for a crashed holder.
			sem.store.Free(h)
			c.metrics.HoldersInUseAdd(-1)
			c.metrics.StaleHandleInc()
			c.log.Warnw("holder TCB is stale, releasing its count", logging.Any("htcb", h.Htcb))
			return 0
		}

		if c.cfg.MaxNest == 0 {
			c.boostSingle(h, rp)
		} else {
			c.boostNested(sem, h, rtcb, rp)
		}
		return 0
	})
}

func (c *Core) boostSingle(h *Holder, callerPriority Priority) {
	if callerPriority > h.Htcb.SchedPriority() {
		c.sched.SetPriority(h.Htcb, callerPriority)
		c.metrics.BoostsInc()
	}
}

func (c *Core) boostNested(sem *Semaphore, h *Holder, rtcb ThreadHandle, callerPriority Priority) {
	if callerPriority <= h.Htcb.BasePriority() {
		return
	}
	nh, ok := h.Htcb.(NestedThreadHandle)
	if !ok {
		// Misconfiguration: nested mode requires every ThreadHandle to
		// carry a ledger. Degrade to "no boost" rather than panic.
		c.log.Errorw("nested-boost mode requires a NestedThreadHandle")
		return
	}
	ledger := nh.Ledger()
	if ledger.Full() {
		c.log.Warnw("boost ledger full, boost not recorded", logging.Any("htcb", h.Htcb))
		c.metrics.NestOverflowInc()
		return
	}
	ledger.Append(sem, callerPriority)
	if callerPriority > h.Htcb.SchedPriority() {
		c.sched.SetPriority(h.Htcb, callerPriority)
		c.metrics.BoostsInc()
	}
}
