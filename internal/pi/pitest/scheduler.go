package pitest

import "github.com/nmxmxh/inos_pi/internal/pi"

// Scheduler is a stateful fake of pi.Scheduler. It's deliberately a plain
// struct rather than a testify/mock.Mock: the priority-inheritance
// scenarios (spec.md §8) need SetPriority/Reprioritize to actually mutate
// the thread they're called on, not just record that they were called, so
// a hand-stubbed fake is the simpler and more faithful tool here — the same
// judgment call the teacher makes in most of its own tests, reaching for
// testify/mock only where recording exact call shape is the point (see
// MockScheduler in internal/pi's mock_scheduler_test.go for that case).
type Scheduler struct {
	current   pi.ThreadHandle
	interrupt bool
	dead      map[pi.ThreadHandle]bool

	// SetPriorityCalls and ReprioritizeCalls record every call for tests
	// that want to assert call counts (e.g. the S2 stale-holder test
	// asserting that no SetPriority call was made).
	SetPriorityCalls  []Call
	ReprioritizeCalls []Call
}

// Call captures one SetPriority/Reprioritize invocation.
type Call struct {
	Handle   pi.ThreadHandle
	Priority pi.Priority
}

// NewScheduler creates a fake scheduler with no current thread and no dead
// handles.
func NewScheduler() *Scheduler {
	return &Scheduler{dead: make(map[pi.ThreadHandle]bool)}
}

// SetCurrent sets the thread CurrentThread() returns — the thread about to
// block on a wait, or the thread that just posted.
func (s *Scheduler) SetCurrent(t pi.ThreadHandle) { s.current = t }

// SetInterruptContext toggles whether InInterruptContext() reports true,
// simulating a post arriving from an ISR.
func (s *Scheduler) SetInterruptContext(v bool) { s.interrupt = v }

// Kill marks t as a stale handle: VerifyTCB(t) will report false from now
// on, simulating a holder thread that died without releasing its counts.
func (s *Scheduler) Kill(t pi.ThreadHandle) { s.dead[t] = true }

func (s *Scheduler) CurrentThread() pi.ThreadHandle { return s.current }
func (s *Scheduler) InInterruptContext() bool       { return s.interrupt }

func (s *Scheduler) VerifyTCB(h pi.ThreadHandle) bool { return !s.dead[h] }

func (s *Scheduler) SetPriority(h pi.ThreadHandle, p pi.Priority) {
	s.SetPriorityCalls = append(s.SetPriorityCalls, Call{Handle: h, Priority: p})
	if t, ok := h.(*Thread); ok {
		t.sched = p
	}
}

func (s *Scheduler) Reprioritize(h pi.ThreadHandle, p pi.Priority) {
	s.ReprioritizeCalls = append(s.ReprioritizeCalls, Call{Handle: h, Priority: p})
	if t, ok := h.(*Thread); ok {
		t.sched = p
	}
}
