package pi_test

import (
	"testing"

	"github.com/nmxmxh/inos_pi/internal/pi"
	"github.com/nmxmxh/inos_pi/internal/pi/pitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Property 1: a semaphore's holder set contains at most one live entry per
// thread, regardless of storage regime — repeated AddHolder calls must
// accumulate Counts on the existing entry rather than appending a new one.
func TestPropertyAtMostOneEntryPerThread(t *testing.T) {
	for _, cfg := range []pi.Config{pi.DefaultConfig(), {PreallocHolders: 4}} {
		core, sched := newCore(t, cfg)
		sem := core.NewSemaphore()
		low := pitest.New("L", 10)

		sched.SetCurrent(low)
		core.AddHolder(sem)
		core.AddHolder(sem)
		core.AddHolder(sem)

		holders := pi.EnumHolders(sem)
		require.Len(t, holders, 1)
		assert.Equal(t, 3, holders[0].Counts)
	}
}

// Property 2: a thread's scheduling priority never drops below its base
// priority as a result of PI bookkeeping.
func TestPropertySchedPriorityNeverBelowBase(t *testing.T) {
	core, sched := newCore(t, pi.DefaultConfig())
	sem := core.NewSemaphore()

	low := pitest.New("L", 10)
	high := pitest.New("H", 30)

	sched.SetCurrent(low)
	core.AddHolder(sem)
	sched.SetCurrent(high)
	core.BoostPriority(sem)
	assert.GreaterOrEqual(t, int(low.SchedPriority()), int(low.BasePriority()))

	sched.SetCurrent(low)
	core.ReleaseHolder(sem)
	core.RestoreBaseprio(high, sem)
	assert.GreaterOrEqual(t, int(low.SchedPriority()), int(low.BasePriority()))
	assert.Equal(t, low.BasePriority(), low.SchedPriority())
}

// Property 3 (nested mode): a holder's scheduling priority always equals the
// max of its base priority and every ledger record's priority — never a
// stale intermediate value.
func TestPropertyNestedSchedPriorityEqualsLedgerMax(t *testing.T) {
	core, sched := newCore(t, pi.Config{MaxNest: 4})
	sem := core.NewSemaphore()

	low := pitest.NewNested("L", 10, 4)
	mid := pitest.NewNested("M", 20, 4)
	high := pitest.NewNested("H", 30, 4)

	sched.SetCurrent(low)
	core.AddHolder(sem)

	sched.SetCurrent(mid)
	core.BoostPriority(sem)
	assert.Equal(t, low.Ledger().MaxPriority(low.BasePriority()), low.SchedPriority())

	sched.SetCurrent(high)
	core.BoostPriority(sem)
	assert.Equal(t, low.Ledger().MaxPriority(low.BasePriority()), low.SchedPriority())

	// A lower boost arriving after a higher one must not regress the max.
	lower := pitest.NewNested("X", 15, 4)
	sched.SetCurrent(lower)
	core.BoostPriority(sem)
	assert.Equal(t, low.Ledger().MaxPriority(low.BasePriority()), low.SchedPriority())
	assert.EqualValues(t, 30, low.SchedPriority())
}

// Property 4/5: once a holder's count reaches zero and the restore engine
// has run with no other live holders and no other waiters, the thread sits
// back at base priority and the holder entry is gone from find().
func TestPropertyDrainedHolderReturnsToBaseAndVanishes(t *testing.T) {
	core, sched := newCore(t, pi.DefaultConfig())
	sem := core.NewSemaphore()

	low := pitest.New("L", 10)
	high := pitest.New("H", 30)

	sched.SetCurrent(low)
	core.AddHolder(sem)
	sched.SetCurrent(high)
	core.BoostPriority(sem)

	sched.SetCurrent(low)
	core.ReleaseHolder(sem)
	core.RestoreBaseprio(high, sem)

	assert.Equal(t, low.BasePriority(), low.SchedPriority())
	assert.Empty(t, pi.EnumHolders(sem))
}

// Property 6: destroying a semaphore leaves find() empty for every thread
// that had ever held it.
func TestPropertyDestroyEmptiesHolderSet(t *testing.T) {
	core, sched := newCore(t, pi.DefaultConfig())
	sem := core.NewSemaphore()

	a := pitest.New("A", 10)
	b := pitest.New("B", 20)
	sched.SetCurrent(a)
	core.AddHolder(sem)
	sched.SetCurrent(b)
	core.AddHolder(sem)

	core.Destroy(sem)
	assert.Empty(t, pi.EnumHolders(sem))
}
