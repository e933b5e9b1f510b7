// Package objective implements the multi-objective model: ordered
// primary/secondary objective lists compared lexicographically, with a
// separately-selected scalar cost view so logging and diagnostics never
// influence ranking.
package objective

import "github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"

// Objective scores one dimension of an InsertionContext and optionally
// reports whether its own goal criterion has been met.
type Objective interface {
	Name() string
	// EstimateCost returns this objective's scalar contribution for ctx.
	EstimateCost(rctx *RefinementContext, ctx *solution.InsertionContext) float64
	// IsGoalSatisfied reports non-nil true/false when this objective has an
	// active goal criterion, nil when it is indifferent.
	IsGoalSatisfied(rctx *RefinementContext, ctx *solution.InsertionContext) *bool
}

// RefinementContext is the cross-generation state an Objective's goal check
// may consult: generation count and a rolling cost history
// for variation-criterion goals. It is intentionally a thin read view;
// ownership of generation advancement lives in the refinement driver.
type RefinementContext struct {
	Generation  int
	CostHistory []float64
}

// RecordCost appends a reportable cost sample, used by variation-criterion
// goal checks (coefficient of variation over the trailing window).
func (r *RefinementContext) RecordCost(cost float64) {
	r.CostHistory = append(r.CostHistory, cost)
}

// Multi is the ordered multi-objective: primary objectives are compared
// first, in order; only when every primary ties do secondaries break it.
type Multi struct {
	Primary      []Objective
	Secondary    []Objective
	// CostSelector names which objective (by Name()) supplies the single
	// reportable scalar cost attached to an Individual and emitted in the
	// Solution's statistics. It must appear in Primary, else Secondary, or
	// configuration is invalid (checked by Build and by
	// config.Validate_RunConfig, not by Multi itself).
	CostSelector string
}

// EstimateCost returns the cost of the objective named by CostSelector
// (searched in Primary, then Secondary), or 0 if none matches; this is the
// scalar used only for reportable/aggregate statistics, not for the
// lexicographic Compare (which compares per-objective).
func (m *Multi) EstimateCost(rctx *RefinementContext, ctx *solution.InsertionContext) float64 {
	for _, o := range m.Primary {
		if o.Name() == m.CostSelector {
			return o.EstimateCost(rctx, ctx)
		}
	}
	for _, o := range m.Secondary {
		if o.Name() == m.CostSelector {
			return o.EstimateCost(rctx, ctx)
		}
	}
	return 0
}

// Compare lexicographically ranks a against b: -1 if a is strictly
// preferred, 1 if b is, 0 if every objective ties. Primaries are consulted
// in order before any secondary is examined.
func (m *Multi) Compare(rctx *RefinementContext, a, b *solution.InsertionContext) int {
	if c := compareList(m.Primary, rctx, a, b); c != 0 {
		return c
	}
	return compareList(m.Secondary, rctx, a, b)
}

func compareList(objectives []Objective, rctx *RefinementContext, a, b *solution.InsertionContext) int {
	for _, o := range objectives {
		ca := o.EstimateCost(rctx, a)
		cb := o.EstimateCost(rctx, b)
		if ca < cb {
			return -1
		}
		if ca > cb {
			return 1
		}
	}
	return 0
}

// IsGoalSatisfied reports true only when at least one constituent objective
// has an opinion (non-nil) and every objective with an opinion reports true;
// an indifferent (nil) objective never blocks goal satisfaction, but a
// multi with no goal configured anywhere is never satisfied on its own,
// leaving the driver's configured Termination predicates as the only way
// to stop such a run.
func (m *Multi) IsGoalSatisfied(rctx *RefinementContext, ctx *solution.InsertionContext) bool {
	anyOpinion := false
	for _, o := range append(append([]Objective{}, m.Primary...), m.Secondary...) {
		satisfied := o.IsGoalSatisfied(rctx, ctx)
		if satisfied == nil {
			continue
		}
		anyOpinion = true
		if !*satisfied {
			return false
		}
	}
	return anyOpinion
}

// boolPtr is a small helper so objectives can return &true/&false literals.
func boolPtr(b bool) *bool { return &b }
