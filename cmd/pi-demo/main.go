package main

import (
	"fmt"
	"os"

	"github.com/nmxmxh/inos_pi/internal/logging"
	"github.com/nmxmxh/inos_pi/internal/metrics"
	"github.com/nmxmxh/inos_pi/internal/pi"
	"github.com/nmxmxh/inos_pi/internal/pi/pitest"
	"github.com/pbnjay/memory"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"
	"go.uber.org/zap/zapcore"
)

// demoFreeListCapacity picks a pooled-regime free-list size from available
// system memory, the same way the teacher's detectOptimalConfig() derives
// MaxWorkers from memory.TotalMemory() — this is purely a demo-binary
// default, the core itself never queries system memory.
func demoFreeListCapacity() int {
	const bytesPerHolder = 1 << 20 // 1MiB; divided again by 1024 below, so one holder slot per GiB of total memory
	n := int(memory.TotalMemory() / bytesPerHolder / 1024)
	if n < 4 {
		return 4
	}
	if n > 64 {
		return 64
	}
	return n
}

func main() {
	log := logging.New("pi-demo", zapcore.InfoLevel)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	log.Infow("inline-regime scenarios starting")
	var errs error
	errs = multierr.Append(errs, runScenarios(log, m, pi.DefaultConfig()))

	poolSize := demoFreeListCapacity()
	log.Infow("pooled-regime scenarios starting", logging.Int("free_list_capacity", poolSize))
	errs = multierr.Append(errs, runScenarios(log, m, pi.Config{PreallocHolders: poolSize}))

	if errs != nil {
		log.Errorw("demo scenarios reported failures", logging.Err(errs))
		fmt.Fprintln(os.Stderr, errs)
		os.Exit(1)
	}
	log.Infow("all scenarios completed cleanly")
}

func runScenarios(log logging.Logger, m *metrics.Collectors, cfg pi.Config) error {
	var errs error
	errs = multierr.Append(errs, scenarioClassicInversion(log, m, cfg))
	errs = multierr.Append(errs, scenarioStaleHolder(log, m, cfg))
	errs = multierr.Append(errs, scenarioNestedTwoSemaphoreBoost(log, m))
	errs = multierr.Append(errs, scenarioIRQPost(log, m, cfg))
	errs = multierr.Append(errs, scenarioCancel(log, m, cfg))
	return errs
}

// S1: L holds a semaphore, H boosts it, L releases and restores to base.
func scenarioClassicInversion(log logging.Logger, m *metrics.Collectors, cfg pi.Config) error {
	sched := pitest.NewScheduler()
	core := pi.New(cfg, sched, log, m)
	sem := core.NewSemaphore()

	low := pitest.New("L", 10)
	high := pitest.New("H", 30)

	sched.SetCurrent(low)
	core.AddHolder(sem)

	sched.SetCurrent(high)
	core.BoostPriority(sem)
	if low.SchedPriority() != 30 {
		return fmt.Errorf("S1: expected L boosted to 30, got %d", low.SchedPriority())
	}

	sched.SetCurrent(low)
	core.ReleaseHolder(sem)
	core.RestoreBaseprio(high, sem)
	if low.SchedPriority() != 10 {
		return fmt.Errorf("S1: expected L restored to 10, got %d", low.SchedPriority())
	}
	log.Infow("S1 classic inversion: ok")
	return nil
}

// S2: the holder dies before being boosted. No crash, no boost applied.
func scenarioStaleHolder(log logging.Logger, m *metrics.Collectors, cfg pi.Config) error {
	sched := pitest.NewScheduler()
	core := pi.New(cfg, sched, log, m)
	sem := core.NewSemaphore()

	low := pitest.New("L", 10)
	high := pitest.New("H", 30)

	sched.SetCurrent(low)
	core.AddHolder(sem)
	sched.Kill(low)

	sched.SetCurrent(high)
	core.BoostPriority(sem)
	if len(sched.SetPriorityCalls) != 0 {
		return fmt.Errorf("S2: expected no SetPriority calls against a dead holder")
	}
	if holders := pi.EnumHolders(sem); len(holders) != 0 {
		return fmt.Errorf("S2: expected stale holder recovered, found %d", len(holders))
	}
	log.Infow("S2 stale holder recovered: ok")
	return nil
}

// S3: nested mode, one thread holding two semaphores boosted by two
// different waiters, ends up at the max of both contributions.
func scenarioNestedTwoSemaphoreBoost(log logging.Logger, m *metrics.Collectors) error {
	sched := pitest.NewScheduler()
	core := pi.New(pi.Config{MaxNest: 4}, sched, log, m)
	semA, semB := core.NewSemaphore(), core.NewSemaphore()

	trd := pitest.NewNested("T", 10, 4)
	h1 := pitest.NewNested("H1", 20, 4)
	h2 := pitest.NewNested("H2", 30, 4)

	sched.SetCurrent(trd)
	core.AddHolder(semA)
	core.AddHolder(semB)

	sched.SetCurrent(h1)
	core.BoostPriority(semA)
	sched.SetCurrent(h2)
	core.BoostPriority(semB)
	if trd.SchedPriority() != 30 {
		return fmt.Errorf("S3: expected T at 30, got %d", trd.SchedPriority())
	}
	log.Infow("S3 nested two-semaphore boost: ok")
	return nil
}

// S5: an ISR posts the semaphore. Every holder restores directly.
func scenarioIRQPost(log logging.Logger, m *metrics.Collectors, cfg pi.Config) error {
	sched := pitest.NewScheduler()
	core := pi.New(cfg, sched, log, m)
	sem := core.NewSemaphore()

	low := pitest.New("L", 10)
	high := pitest.New("H", 30)

	sched.SetCurrent(low)
	core.AddHolder(sem)
	sched.SetCurrent(high)
	core.BoostPriority(sem)

	sched.SetInterruptContext(true)
	core.RestoreBaseprio(high, sem)
	sched.SetInterruptContext(false)

	if low.SchedPriority() != 10 {
		return fmt.Errorf("S5: expected L restored to 10 from ISR post, got %d", low.SchedPriority())
	}
	log.Infow("S5 IRQ post: ok")
	return nil
}

// S6: canceling the sole elevating waiter drops the holder back to base.
func scenarioCancel(log logging.Logger, m *metrics.Collectors, cfg pi.Config) error {
	sched := pitest.NewScheduler()
	core := pi.New(cfg, sched, log, m)
	sem := core.NewSemaphore()

	low := pitest.New("L", 10)
	high := pitest.New("H", 30)

	sched.SetCurrent(low)
	core.AddHolder(sem)
	sched.SetCurrent(high)
	core.BoostPriority(sem)

	core.Canceled(high, sem)
	if low.SchedPriority() != 10 {
		return fmt.Errorf("S6: expected L restored to 10 after cancel, got %d", low.SchedPriority())
	}
	log.Infow("S6 cancel: ok")
	return nil
}
