// Package pi implements the priority-inheritance (PI) bookkeeping core that
// augments a counting semaphore inside a preemptive kernel: it tracks, per
// semaphore, which threads hold outstanding counts, and temporarily raises
// (boosts) a holder's scheduling priority so a higher-priority waiter is
// never blocked indefinitely by a lower-priority holder.
//
// Every exported entry point here assumes the caller already holds the
// precondition the spec demands — interrupts globally disabled for the
// add/release/boost paths, the scheduler locked for the restore paths (see
// the Core type's doc in core.go). This package never blocks, never does
// I/O, and never allocates outside of construction time.
package pi

import "fmt"

// Priority is a scheduling priority: higher values are more urgent.
type Priority uint8

// ThreadHandle is the opaque identity of a kernel thread, supplied by the
// scheduler. It is a lookup key, not a dereference license: its
// SchedPriority/BasePriority accessors must not be trusted once the
// scheduler's VerifyTCB reports the handle stale — a holder thread can die
// without releasing its counts, and the underlying object may be reused.
type ThreadHandle interface {
	// SchedPriority is the thread's current effective (possibly boosted)
	// priority.
	SchedPriority() Priority
	// BasePriority is the thread's nominal, unboosted priority.
	BasePriority() Priority
}

// NestedThreadHandle is implemented by ThreadHandles that carry their own
// boost ledger, i.e. when the core is configured for nested-boost mode
// (Config.MaxNest > 0). A ThreadHandle that does not implement this
// interface is only usable in single-boost mode.
type NestedThreadHandle interface {
	ThreadHandle
	Ledger() *Ledger
}

// Scheduler is the set of operations this core consumes from the scheduler.
// It is the only collaborator the core talks to; the counting-semaphore
// wait/post operation, the ready queue, and TCB storage are all reached
// only indirectly, through this interface.
type Scheduler interface {
	// CurrentThread returns the handle of the thread executing right now.
	CurrentThread() ThreadHandle
	// InInterruptContext reports whether the caller is running in an
	// interrupt service routine, which holds no counts and has no
	// priority of its own.
	InInterruptContext() bool
	// VerifyTCB reports whether handle still refers to a live thread.
	// Every operation that reads handle's priority or ledger must call
	// this first.
	VerifyTCB(handle ThreadHandle) bool
	// SetPriority raises or lowers handle's priority. If handle is
	// currently running, the scheduler marks the change pending rather
	// than preempting synchronously.
	SetPriority(handle ThreadHandle, priority Priority)
	// Reprioritize drops handle to priority unconditionally, consulting
	// any other pending boosts the scheduler itself tracks. Used only in
	// single-boost mode.
	Reprioritize(handle ThreadHandle, priority Priority)
}

// Config captures the build-time choices spec.md §6 models as compile-time
// constants. Resolved once, at Core construction, mirroring how the
// teacher's KernelConfig is resolved once in NewKernel.
type Config struct {
	// PreallocHolders is N: 0 selects the inline (2-slot) holder store,
	// >0 selects the pooled regime with a free list of this many nodes.
	PreallocHolders int
	// MaxNest is the nested-boost ledger capacity per thread: 0 selects
	// single-boost mode, >0 selects nested-boost mode.
	MaxNest int
	// Debug enables the PH_DEBUG assertions (spec.md §6, §7 "Precondition
	// violations ... Debug-assert only"). The EnumHolders and NFreeHolders
	// introspection hooks are available whether or not Debug is set.
	// Off by default, matching a production kernel build.
	Debug bool
}

// DefaultConfig mirrors NuttX's own Kconfig defaults: inline store,
// single-boost mode.
func DefaultConfig() Config {
	return Config{PreallocHolders: 0, MaxNest: 0}
}

func (c Config) String() string {
	regime := "inline"
	if c.PreallocHolders > 0 {
		regime = "pooled"
	}
	mode := "single-boost"
	if c.MaxNest > 0 {
		mode = "nested-boost"
	}
	return fmt.Sprintf("pi.Config{store=%s(n=%d), mode=%s(max=%d)}", regime, c.PreallocHolders, mode, c.MaxNest)
}

const inlineCapacity = 2
