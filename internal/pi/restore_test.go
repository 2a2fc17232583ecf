package pi_test

import (
	"testing"

	"github.com/nmxmxh/inos_pi/internal/pi"
	"github.com/nmxmxh/inos_pi/internal/pi/pitest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S4 (release before restore, inline regime) is covered at the store level
// by TestInlineStoreAllocRequiresExplicitFree, which is where the
// mechanism actually lives.

// S5 IRQ post: an ISR posts the semaphore. The running (interrupted)
// thread is irrelevant — every holder is restored directly.
func TestIRQPostRestoresAllHolders(t *testing.T) {
	core, sched := newCore(t, pi.DefaultConfig())
	sem := core.NewSemaphore()

	low := pitest.New("L", 10)
	high := pitest.New("H", 30)

	sched.SetCurrent(low)
	core.AddHolder(sem)
	sched.SetCurrent(high)
	core.BoostPriority(sem)
	require.EqualValues(t, 30, low.SchedPriority())

	sched.SetInterruptContext(true)
	core.RestoreBaseprio(high, sem)
	sched.SetInterruptContext(false)

	assert.EqualValues(t, 10, low.SchedPriority())
}

// S6 Cancel: H(30) is the sole elevating waiter on sem held by L(10); when
// H is canceled, L drops back to base. With another waiter M(20) still
// queued, single-boost mode's cancel also drops L all the way to base (the
// fake scheduler's Reprioritize tracks no other pending boosts); the test
// then re-runs BoostPriority for M, as the wait path would for the next
// waiter in line, and L ends at M's level.
func TestCancelRestoresToNextHighestWaiter(t *testing.T) {
	core, sched := newCore(t, pi.DefaultConfig())
	sem := core.NewSemaphore()

	low := pitest.New("L", 10)
	mid := pitest.New("M", 20)
	high := pitest.New("H", 30)

	sched.SetCurrent(low)
	core.AddHolder(sem)

	sched.SetCurrent(mid)
	core.BoostPriority(sem)
	sched.SetCurrent(high)
	core.BoostPriority(sem)
	require.EqualValues(t, 30, low.SchedPriority())

	core.Canceled(high, sem)
	core.AssertSemCountNonPositive(-1)

	// Single-boost mode's Reprioritize call drops unconditionally to
	// base; the still-queued M re-establishes its own boost the way the
	// real wait path would on the next scheduling pass.
	assert.EqualValues(t, 10, low.SchedPriority())
	sched.SetCurrent(mid)
	core.BoostPriority(sem)
	assert.EqualValues(t, 20, low.SchedPriority())
}

// Nested-mode cancel needs no such re-application: the ledger already holds
// every waiter's contribution, so removing just H's record recomputes the
// correct max directly.
func TestNestedCancelRestoresToNextHighestWaiter(t *testing.T) {
	core, sched := newCore(t, pi.Config{MaxNest: 4})
	sem := core.NewSemaphore()

	low := pitest.NewNested("L", 10, 4)
	mid := pitest.NewNested("M", 20, 4)
	high := pitest.NewNested("H", 30, 4)

	sched.SetCurrent(low)
	core.AddHolder(sem)

	sched.SetCurrent(mid)
	core.BoostPriority(sem)
	sched.SetCurrent(high)
	core.BoostPriority(sem)
	require.EqualValues(t, 30, low.SchedPriority())

	core.Canceled(high, sem)
	assert.EqualValues(t, 20, low.SchedPriority())
}
