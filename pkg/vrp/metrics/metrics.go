// Package metrics exposes the refinement driver's per-run gauges and
// counters through prometheus/client_golang, refreshed alongside the
// driver's every-1000th-generation population dump.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry bundles the gauges/counters one Driver run publishes. A fresh
// Registry should be built per solve so concurrent solves on one process
// don't collide on metric identity; callers needing a single process-wide
// registry can pass prometheus.DefaultRegisterer explicitly.
type Registry struct {
	BestCost           prometheus.Gauge
	GenerationsTotal    prometheus.Counter
	AcceptedTotal       prometheus.Counter
	UnassignedJobs      prometheus.Gauge
	UsedVehicles        prometheus.Gauge
	PopulationSize      prometheus.Gauge
}

// NewRegistry registers every metric against reg and returns the bundle.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)
	return &Registry{
		BestCost: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrp_engine",
			Name:      "best_cost",
			Help:      "Reportable cost of the current best individual in the population.",
		}),
		GenerationsTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vrp_engine",
			Name:      "generations_total",
			Help:      "Total generations run by the refinement driver.",
		}),
		AcceptedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "vrp_engine",
			Name:      "accepted_total",
			Help:      "Total individuals accepted into the population.",
		}),
		UnassignedJobs: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrp_engine",
			Name:      "unassigned_jobs",
			Help:      "Unassigned job count in the current best individual.",
		}),
		UsedVehicles: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrp_engine",
			Name:      "used_vehicles",
			Help:      "Used vehicle count in the current best individual.",
		}),
		PopulationSize: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "vrp_engine",
			Name:      "population_size",
			Help:      "Current population member count.",
		}),
	}
}

// Refresh updates the gauges from one generation's snapshot; counters are
// incremented by the caller at the point each event actually occurs.
func (r *Registry) Refresh(bestCost float64, unassigned, usedVehicles, populationSize int) {
	r.BestCost.Set(bestCost)
	r.UnassignedJobs.Set(float64(unassigned))
	r.UsedVehicles.Set(float64(usedVehicles))
	r.PopulationSize.Set(float64(populationSize))
}
