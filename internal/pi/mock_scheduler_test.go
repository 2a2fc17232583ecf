package pi_test

import (
	"testing"

	"github.com/nmxmxh/inos_pi/internal/pi"
	"github.com/nmxmxh/inos_pi/internal/pi/pitest"
	"github.com/stretchr/testify/mock"
)

// MockScheduler is a testify/mock.Mock implementation of pi.Scheduler, the
// same pattern the teacher uses for MockTransport in
// kernel/core/mesh/routing/merkle_sync_test.go. Unlike pitest.Scheduler
// (which models real scheduler *behavior* for the scenario tests), this one
// is for asserting exact call shape — here, that a disabled semaphore talks
// to the scheduler not at all.
type MockScheduler struct {
	mock.Mock
}

func (m *MockScheduler) CurrentThread() pi.ThreadHandle {
	args := m.Called()
	h, _ := args.Get(0).(pi.ThreadHandle)
	return h
}

func (m *MockScheduler) InInterruptContext() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockScheduler) VerifyTCB(h pi.ThreadHandle) bool {
	args := m.Called(h)
	return args.Bool(0)
}

func (m *MockScheduler) SetPriority(h pi.ThreadHandle, p pi.Priority) {
	m.Called(h, p)
}

func (m *MockScheduler) Reprioritize(h pi.ThreadHandle, p pi.Priority) {
	m.Called(h, p)
}

func TestDisabledSemaphoreNeverTalksToScheduler(t *testing.T) {
	sched := new(MockScheduler)
	core := pi.New(pi.DefaultConfig(), sched, nil, nil)
	sem := core.NewSemaphore()
	sem.SetDisabled(true)

	// No .On(...) expectations are registered at all: if AddHolder,
	// ReleaseHolder, BoostPriority, or RestoreBaseprio call anything on
	// the scheduler, mock.Mock panics with "unexpected call" and fails
	// the test immediately.
	core.AddHolder(sem)
	core.ReleaseHolder(sem)
	core.BoostPriority(sem)
	core.RestoreBaseprio(pitest.New("W", 1), sem)

	sched.AssertExpectations(t)
}

func TestBoostPrioritySetsExactPriorityOnHolder(t *testing.T) {
	sched := new(MockScheduler)
	low := pitest.New("L", 10)
	high := pitest.New("H", 30)

	core := pi.New(pi.DefaultConfig(), sched, nil, nil)
	sem := core.NewSemaphore()

	sched.On("CurrentThread").Return(pi.ThreadHandle(low)).Once()
	core.AddHolder(sem)

	sched.On("CurrentThread").Return(pi.ThreadHandle(high)).Once()
	sched.On("VerifyTCB", low).Return(true).Once()
	sched.On("SetPriority", low, high.SchedPriority()).Return().Once()
	core.BoostPriority(sem)

	sched.AssertExpectations(t)
}
