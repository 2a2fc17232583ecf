// Package pitest provides the scheduler and thread-handle fixtures used
// across internal/pi's test suite — the "scheduler" and "TCB storage"
// collaborators spec.md §1 explicitly pushes out of scope and tells tests
// to stub.
package pitest

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/nmxmxh/inos_pi/internal/pi"
)

// Thread is a fake ThreadHandle. Each Thread carries a random UUID, shown
// in its String form; the core and the fake Scheduler compare handles by
// pointer identity, and staleness is tracked by Scheduler.Kill, not by the
// UUID.
type Thread struct {
	id     uuid.UUID
	name   string
	sched  pi.Priority
	base   pi.Priority
	ledger *pi.Ledger
}

// New creates a single-boost-mode thread handle at the given base priority
// (sched priority starts equal to base, i.e. unboosted).
func New(name string, base pi.Priority) *Thread {
	return &Thread{id: uuid.New(), name: name, sched: base, base: base}
}

// NewNested creates a nested-boost-mode thread handle with a ledger of the
// given capacity (Config.MaxNest).
func NewNested(name string, base pi.Priority, maxNest int) *Thread {
	t := New(name, base)
	t.ledger = pi.NewLedger(maxNest)
	return t
}

func (t *Thread) SchedPriority() pi.Priority { return t.sched }
func (t *Thread) BasePriority() pi.Priority  { return t.base }
func (t *Thread) Ledger() *pi.Ledger         { return t.ledger }

func (t *Thread) String() string {
	return fmt.Sprintf("%s<%s>", t.name, t.id.String()[:8])
}
