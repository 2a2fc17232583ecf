package pi

import (
	"github.com/nmxmxh/inos_pi/internal/logging"
	"github.com/nmxmxh/inos_pi/internal/metrics"
)

// Core is the priority-inheritance bookkeeping core. One Core is
// constructed per kernel image (or per test), and every Semaphore it
// creates shares its configuration — storage regime, nest depth, scheduler,
// logger, and metrics. Every exported method requires the caller to already
// hold the precondition spec.md §5 demands (interrupts disabled for
// add/release/boost, scheduler locked for restore/cancel/destroy); Core
// enforces none of that itself; it has no lock of its own.
type Core struct {
	cfg      Config
	sched    Scheduler
	log      logging.Logger
	metrics  *metrics.Collectors
	freeList *FreeList // nil in inline regime
}

// New constructs a Core. log and m may be nil, in which case logging.Nop()
// and a no-op metrics receiver are used — neither is required for correct
// operation, only for observability.
func New(cfg Config, sched Scheduler, log logging.Logger, m *metrics.Collectors) *Core {
	if log == nil {
		log = logging.Nop()
	}
	c := &Core{cfg: cfg, sched: sched, log: log.Named("pi"), metrics: m}
	c.InitializeHolders()
	return c
}

// NewSemaphore constructs a semaphore's holder store in whichever regime
// this Core was configured for (spec.md §3, §9 "variant selection").
func (c *Core) NewSemaphore() *Semaphore {
	if c.cfg.PreallocHolders > 0 {
		return newSemaphore(newPoolStore(c.freeList))
	}
	return newSemaphore(newInlineStore())
}

// AddHolder records that the currently running thread now holds (another)
// count on sem. Called from the wait path's immediately-acquired case.
func (c *Core) AddHolder(sem *Semaphore) {
	c.AddHolderTCB(c.sched.CurrentThread(), sem)
}

// AddHolderTCB records that htcb now holds (another) count on sem. Called
// from the wait path's wakeup-acquired case, where the thread being granted
// the count is not necessarily the one currently running.
func (c *Core) AddHolderTCB(htcb ThreadHandle, sem *Semaphore) {
	if sem.Disabled() {
		return
	}
	h, isNew := findOrAlloc(sem.store, htcb)
	if h == nil {
		c.log.Errorw("holder store capacity exhausted, priority inheritance skipped for this holder")
		c.metrics.CapacityExhaustedInc()
		return
	}
	h.Htcb = htcb
	h.Counts++
	if isNew {
		c.metrics.HoldersInUseAdd(1)
	}
}

// ReleaseHolder decrements the current thread's count on sem. The entry is
// not freed here — freeing happens later inside the restore engine, which
// still needs to observe Counts == 0 on the running thread (spec.md §4.C).
func (c *Core) ReleaseHolder(sem *Semaphore) {
	if sem.Disabled() {
		return
	}
	htcb := c.sched.CurrentThread()
	h := sem.store.Find(htcb)
	if h != nil && h.Counts > 0 {
		h.Counts--
	}
}
