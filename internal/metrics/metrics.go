// Package metrics exposes the pure-observability counters for the
// priority-inheritance core. Nothing in internal/pi ever branches on these
// values — they exist purely so an operator can see how often the core is
// degrading (capacity exhausted, ledger overflow, stale handles recovered).
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Collectors groups the counters a Core reports into. A nil *Collectors is
// valid everywhere it's accepted — every method is a no-op on a nil
// receiver, so wiring metrics is opt-in and never mandatory for the core to
// function.
type Collectors struct {
	CapacityExhausted prometheus.Counter
	NestOverflow      prometheus.Counter
	StaleHandle       prometheus.Counter
	HoldersInUse      prometheus.Gauge
	Boosts            prometheus.Counter
	Restores          prometheus.Counter
}

// New registers the priority-inheritance collectors on reg and returns them.
// Pass prometheus.NewRegistry() in tests to avoid colliding with the global
// default registry.
func New(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		CapacityExhausted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pi",
			Name:      "holder_capacity_exhausted_total",
			Help:      "Holder store allocations that failed because the store was full.",
		}),
		NestOverflow: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pi",
			Name:      "nest_overflow_total",
			Help:      "Boost ledger appends that failed because the ledger was full.",
		}),
		StaleHandle: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pi",
			Name:      "stale_tcb_total",
			Help:      "Holder entries recovered because their thread handle went stale.",
		}),
		HoldersInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pi",
			Name:      "holders_in_use",
			Help:      "Live holder entries across all semaphores.",
		}),
		Boosts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pi",
			Name:      "boosts_total",
			Help:      "Priority boosts applied to holder threads.",
		}),
		Restores: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pi",
			Name:      "restores_total",
			Help:      "Priority restores applied to holder threads.",
		}),
	}
	if reg != nil {
		reg.MustRegister(c.CapacityExhausted, c.NestOverflow, c.StaleHandle, c.HoldersInUse, c.Boosts, c.Restores)
	}
	return c
}

// CapacityExhaustedInc increments the capacity-exhausted counter, tolerating a nil receiver.
func (c *Collectors) CapacityExhaustedInc() {
	if c != nil {
		c.CapacityExhausted.Inc()
	}
}

// NestOverflowInc increments the nest-overflow counter, tolerating a nil receiver.
func (c *Collectors) NestOverflowInc() {
	if c != nil {
		c.NestOverflow.Inc()
	}
}

// StaleHandleInc increments the stale-handle counter, tolerating a nil receiver.
func (c *Collectors) StaleHandleInc() {
	if c != nil {
		c.StaleHandle.Inc()
	}
}

// HoldersInUseAdd adjusts the live-holder gauge, tolerating a nil receiver.
func (c *Collectors) HoldersInUseAdd(delta float64) {
	if c != nil {
		c.HoldersInUse.Add(delta)
	}
}

// BoostsInc increments the boosts counter, tolerating a nil receiver.
func (c *Collectors) BoostsInc() {
	if c != nil {
		c.Boosts.Inc()
	}
}

// RestoresInc increments the restores counter, tolerating a nil receiver.
func (c *Collectors) RestoresInc() {
	if c != nil {
		c.Restores.Inc()
	}
}
