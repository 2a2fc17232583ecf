package pi

import "github.com/bits-and-blooms/bitset"

// flagPrioInheritDisable is the PRIOINHERIT_DISABLE bit (spec.md §3,
// "Semaphore flags"). Backed by a bitset.BitSet rather than a hand-rolled
// uint so additional flags (the spec only requires "at least" this one) can
// be added later without changing the persisted layout's shape.
const flagPrioInheritDisable uint = 0

// Semaphore is the per-semaphore persisted layout named in spec.md §6:
// either an inline 2-slot holder store or a pooled list head, plus flags.
// Both forms must survive unrelated semaphore operations unchanged — this
// core never touches any other field of the semaphore it's attached to.
type Semaphore struct {
	store Store
	flags *bitset.BitSet
}

func newSemaphore(store Store) *Semaphore {
	return &Semaphore{store: store, flags: bitset.New(8)}
}

// Disabled reports whether PRIOINHERIT_DISABLE is set: when true, every
// operation in this package is a no-op for this semaphore.
func (sem *Semaphore) Disabled() bool {
	return sem.flags.Test(flagPrioInheritDisable)
}

// SetDisabled sets or clears PRIOINHERIT_DISABLE.
func (sem *Semaphore) SetDisabled(disabled bool) {
	if disabled {
		sem.flags.Set(flagPrioInheritDisable)
	} else {
		sem.flags.Clear(flagPrioInheritDisable)
	}
}

// Holders exposes the semaphore's holder store for the core's own use
// (boost/restore/lifecycle all live in this package); it is unexported from
// the module's public surface by virtue of internal/.
func (sem *Semaphore) Holders() Store { return sem.store }
