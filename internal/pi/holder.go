package pi

// Holder is one (thread, count) entry in a semaphore's holder set.
// Invariant: Counts > 0 iff the entry is live. An entry with Counts == 0 and
// Htcb still set has been drained by ReleaseHolder but not yet freed by the
// restore engine; its slot becomes free only once Free clears Htcb.
type Holder struct {
	Htcb   ThreadHandle
	Counts int

	next *Holder // pooled regime only: next holder in this semaphore's list
}

func (h *Holder) live() bool { return h != nil && h.Counts > 0 }

// Store is the per-semaphore holder set. Both the inline (fixed 2-slot) and
// pooled (free-list-backed) regimes implement it identically from the
// caller's point of view; spec.md §9 requires their behavior to be
// indistinguishable for capacity <= 2.
type Store interface {
	// Find returns the entry for htcb, live or drained-but-not-yet-freed,
	// or nil if none exists.
	Find(htcb ThreadHandle) *Holder
	// Alloc returns a fresh, zeroed entry, or nil if the store has no
	// free slot.
	Alloc() *Holder
	// Free clears and releases h back to the store.
	Free(h *Holder)
	// ForEach calls fn on every live entry, tolerating fn freeing the
	// entry it was just called with. Iteration stops at the first
	// nonzero return from fn, which ForEach itself returns; if every
	// call returns 0, ForEach returns 0.
	ForEach(fn func(h *Holder) int) int
	// Len reports the number of live entries (PH_DEBUG introspection).
	Len() int
	// Cap reports the store's total capacity (PH_DEBUG introspection).
	Cap() int
}

// findOrAlloc returns the existing entry for htcb, or allocates a new one.
// isNew reports whether the returned entry (nil or not) came from Alloc
// rather than Find. Grounded on the original's
// nxsem_findholder()-then-nxsem_allocholder() pairing in sem_holder.c.
func findOrAlloc(s Store, htcb ThreadHandle) (h *Holder, isNew bool) {
	if h := s.Find(htcb); h != nil {
		return h, false
	}
	return s.Alloc(), true
}
