// Package constraint implements the ordered constraint pipeline: a
// stable-ordered list of modules, each contributing hard feasibility checks
// and soft cost deltas at job/route/activity granularity. The pipeline
// short-circuits on the first hard violation and otherwise sums soft costs,
// so module order is a tuning knob: cheap or restrictive modules go first.
package constraint

import (
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// Violation codes. Higher values are considered more severe when an
// unassigned job's reason must pick the single highest-severity code seen
// across every attempted route.
const (
	CodeNone = iota
	CodeTimeWindow
	CodeCapacity
	CodeBreak
	CodeMultiJobOrder
	CodeFleetUsage
	CodeWorkBalance
)

// Violation is returned by a module when a candidate job or activity placement
// is rejected or costed. Stopped=true means the violation is a hard failure
// that must abandon the candidate slot immediately; Stopped=false means it
// only contributes a soft cost.
type Violation struct {
	Code    int
	Stopped bool
	Cost    float64
	Reason  string
}

// Module is one pluggable unit of the constraint pipeline.
type Module interface {
	// Name identifies the module for route-state cache keys and logging.
	Name() string

	// EvaluateJob is route-level feasibility, called once per (route, job)
	// candidate before any per-position check.
	EvaluateJob(sol SolutionView, r *route.Route, job *model.Job) *Violation

	// EvaluateActivity is per-position feasibility/cost.
	EvaluateActivity(r *route.Route, ctx model.ActivityContext) *Violation

	// AcceptInsertion is called after a successful splice, to update
	// cross-route state (e.g. fleet-usage counters).
	AcceptInsertion(sol SolutionView, r *route.Route, job *model.Job)

	// AcceptRouteState recomputes the module's cached per-route state;
	// called after any structural change to the route.
	AcceptRouteState(r *route.Route)

	// AcceptSolutionState is called once after ruin completes, before
	// recreate starts.
	AcceptSolutionState(sol SolutionView)
}

// SolutionView is the subset of solution-context state a constraint module
// may read. It is defined here (rather than imported from a solution
// package) to avoid a dependency cycle between constraint and refinement;
// solution.SolutionContext satisfies it.
type SolutionView interface {
	Routes() []*route.Route
	UsedVehicleIDs() map[string]bool
}

// Pipeline is a stable-ordered list of modules. Order is a configuration
// property: cheaper or more restrictive modules should be placed first to
// maximize pruning.
type Pipeline struct {
	Modules []Module
}

// NewPipeline builds a pipeline from modules in the given order.
func NewPipeline(modules ...Module) *Pipeline {
	return &Pipeline{Modules: modules}
}

// EvaluateJob runs every module's EvaluateJob in order, short-circuiting on
// the first stopped violation and otherwise summing soft costs into the
// returned Violation's Cost (Stopped=false, Code=CodeNone when nothing
// fired).
func (p *Pipeline) EvaluateJob(sol SolutionView, r *route.Route, job *model.Job) *Violation {
	total := &Violation{}
	for _, m := range p.Modules {
		if v := m.EvaluateJob(sol, r, job); v != nil {
			if v.Stopped {
				return v
			}
			total.Cost += v.Cost
			if v.Code > total.Code {
				total.Code = v.Code
			}
		}
	}
	return total
}

// EvaluateActivity runs every module's EvaluateActivity in order with the
// same short-circuit/sum semantics as EvaluateJob.
func (p *Pipeline) EvaluateActivity(r *route.Route, ctx model.ActivityContext) *Violation {
	total := &Violation{}
	for _, m := range p.Modules {
		if v := m.EvaluateActivity(r, ctx); v != nil {
			if v.Stopped {
				return v
			}
			total.Cost += v.Cost
			if v.Code > total.Code {
				total.Code = v.Code
			}
		}
	}
	return total
}

// AcceptInsertion notifies every module of a successful splice, in order.
func (p *Pipeline) AcceptInsertion(sol SolutionView, r *route.Route, job *model.Job) {
	for _, m := range p.Modules {
		m.AcceptInsertion(sol, r, job)
	}
}

// AcceptRouteState notifies every module to recompute its cached state for r.
func (p *Pipeline) AcceptRouteState(r *route.Route) {
	for _, m := range p.Modules {
		m.AcceptRouteState(r)
	}
}

// AcceptSolutionState notifies every module that ruin has completed.
func (p *Pipeline) AcceptSolutionState(sol SolutionView) {
	for _, m := range p.Modules {
		m.AcceptSolutionState(sol)
	}
}
