package pi

// BoostRecord means "the owning thread is currently boosted to at least
// Priority on behalf of a waiter on Sem".
type BoostRecord struct {
	Sem      *Semaphore
	Priority Priority
}

// Ledger is a thread's fixed-capacity record of active boosts, used only in
// nested-boost mode (Config.MaxNest > 0). Invariant: the owning thread's
// SchedPriority must equal max(BasePriority, max over ledger of
// record.Priority) — boost.go and restore.go are the only writers.
//
// Removal uses swap-with-last to keep the backing slice dense; this is
// semantically order-insensitive because every consumer of the ledger only
// ever asks for its max, never its order.
type Ledger struct {
	records []BoostRecord
	cap     int
}

// NewLedger preallocates a ledger with room for cap boost records.
func NewLedger(cap int) *Ledger {
	return &Ledger{records: make([]BoostRecord, 0, cap), cap: cap}
}

// Len reports the number of active boost records.
func (l *Ledger) Len() int { return len(l.records) }

// Cap reports the ledger's fixed capacity (MAX_NEST).
func (l *Ledger) Cap() int { return l.cap }

// Full reports whether the ledger has no room for another record.
func (l *Ledger) Full() bool { return len(l.records) >= l.cap }

// Append adds a new boost record, returning false if the ledger is full.
func (l *Ledger) Append(sem *Semaphore, priority Priority) bool {
	if l.Full() {
		return false
	}
	l.records = append(l.records, BoostRecord{Sem: sem, Priority: priority})
	return true
}

// RemoveAllForSem removes every record attributable to sem — used when the
// thread has released all counts on sem and is no longer obligated to
// linger at an elevated priority on its account.
func (l *Ledger) RemoveAllForSem(sem *Semaphore) {
	for i := 0; i < len(l.records); {
		if l.records[i].Sem == sem {
			l.removeAt(i)
			continue
		}
		i++
	}
}

// RemoveMaxForSem removes the single highest-priority record attributable
// to sem (the boost the just-satisfied waiter contributed), reporting
// whether a matching record existed.
func (l *Ledger) RemoveMaxForSem(sem *Semaphore) bool {
	best := -1
	for i, r := range l.records {
		if r.Sem != sem {
			continue
		}
		if best == -1 || r.Priority > l.records[best].Priority {
			best = i
		}
	}
	if best == -1 {
		return false
	}
	l.removeAt(best)
	return true
}

// MaxPriority returns max(base, every active record's priority).
func (l *Ledger) MaxPriority(base Priority) Priority {
	max := base
	for _, r := range l.records {
		if r.Priority > max {
			max = r.Priority
		}
	}
	return max
}

func (l *Ledger) removeAt(i int) {
	last := len(l.records) - 1
	l.records[i] = l.records[last]
	l.records = l.records[:last]
}
