package pi

// This file is the PH_DEBUG introspection surface named in spec.md §6.
// None of it affects correctness: the assertions only log a warning when
// Config.Debug is set, matching spec.md §7's "Precondition violations ...
// Debug-assert only" policy. The spec's own source doubts the correctness
// of its holder-list assertion and disables it in place (§9, "Open
// question — debug verifier") — in that spirit, these hooks are offered for
// diagnostics and tests, never relied on by the core itself.

// HolderSnapshot is a point-in-time copy of one live holder entry, returned
// by EnumHolders so callers don't hold a reference into the store.
type HolderSnapshot struct {
	Htcb   ThreadHandle
	Counts int
}

// EnumHolders returns a snapshot of every live holder of sem.
func EnumHolders(sem *Semaphore) []HolderSnapshot {
	var out []HolderSnapshot
	sem.store.ForEach(func(h *Holder) int {
		out = append(out, HolderSnapshot{Htcb: h.Htcb, Counts: h.Counts})
		return 0
	})
	return out
}

// NFreeHolders reports how many nodes remain unallocated in the pooled
// regime's shared free list. Returns -1 in the inline regime, where there
// is no shared free list to report on.
func (c *Core) NFreeHolders() int {
	if c.freeList == nil {
		return -1
	}
	return c.freeList.NFree()
}

// assertHoldersAtBase logs a warning (never panics — spec.md §7 "Debug-
// assert only") if Config.Debug is set and any live holder of sem is still
// boosted above its base priority. Used where the spec calls for an assert
// that every holder is at base (the IRQ/task restore paths when no waiter
// was granted the count).
func (c *Core) assertHoldersAtBase(sem *Semaphore) {
	if !c.cfg.Debug {
		return
	}
	sem.store.ForEach(func(h *Holder) int {
		if c.sched.VerifyTCB(h.Htcb) && h.Htcb.SchedPriority() != h.Htcb.BasePriority() {
			c.log.Warnw("debug assertion failed: holder above base priority with no waiter granted the count")
		}
		return 0
	})
}

// AssertSemCountNonPositive logs a warning if Config.Debug is set and count
// is positive. The semaphore's count field itself is out of this core's
// scope (spec.md §1); callers of Canceled that track it pass it here.
func (c *Core) AssertSemCountNonPositive(count int) {
	if !c.cfg.Debug {
		return
	}
	if count > 0 {
		c.log.Warnw("debug assertion failed: semaphore count should remain non-positive after cancel")
	}
}
