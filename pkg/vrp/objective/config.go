package objective

import (
	"github.com/routewise/vrp-engine/pkg/vrp/constraint"
	"github.com/routewise/vrp-engine/pkg/vrp/model"
)

// Kind names one of the recognized objective kinds a problem intake
// collaborator may request.
type Kind string

const (
	KindMinimizeCost        Kind = "minimize-cost"
	KindMinimizeTours       Kind = "minimize-tours"
	KindMinimizeUnassigned  Kind = "minimize-unassigned"
	KindBalanceMaxLoad      Kind = "balance-max-load"
	KindBalanceActivities   Kind = "balance-activities"
	KindBalanceDistance     Kind = "balance-distance"
	KindBalanceDuration     Kind = "balance-duration"
)

// defaultNewVehiclePenalty must dwarf any plausible per-slot travel delta,
// so minimize-tours wins against transport cost during recreate placement,
// not just in the final objective ranking.
const defaultNewVehiclePenalty = 1e6

// Spec is one requested objective: its kind, an optional goal, and
// (for balance-* and minimize-tours kinds) the weight/penalty tuning that
// feeds the paired constraint module.
type Spec struct {
	Kind      Kind
	Weight    float64
	MaxStdDev float64
	Goal      *ValueGoal
}

// Build realizes a list of primary and secondary Specs into a Multi
// objective plus the constraint modules each kind requires. Returns a
// model.ConfigurationError if neither list contains the cost selector.
func Build(primary, secondary []Spec, transport model.TransportCosts, costSelector Kind) (*Multi, []constraint.Module, error) {
	m := &Multi{CostSelector: string(costSelector)}
	var modules []constraint.Module

	buildOne := func(s Spec) (Objective, constraint.Module) {
		switch s.Kind {
		case KindMinimizeCost:
			return TotalTransportCost{Weight: orOne(s.Weight), Goal: s.Goal}, nil
		case KindMinimizeTours:
			penalty := s.Weight
			if penalty == 0 {
				penalty = defaultNewVehiclePenalty
			}
			return TotalRoutes{Goal: s.Goal}, constraint.FleetUsageConstraint{NewVehiclePenalty: penalty}
		case KindMinimizeUnassigned:
			return TotalUnassignedJobs{Goal: s.Goal}, nil
		case KindBalanceMaxLoad:
			mod := constraint.WorkBalanceConstraint{Dimension: constraint.BalanceLoad, Transport: transport}
			return WorkBalance{Dimension: constraint.BalanceLoad, Module: mod, Weight: s.Weight, MaxStdDev: s.MaxStdDev, Goal: s.Goal}, mod
		case KindBalanceActivities:
			mod := constraint.WorkBalanceConstraint{Dimension: constraint.BalanceActivities, Transport: transport}
			return WorkBalance{Dimension: constraint.BalanceActivities, Module: mod, Weight: s.Weight, MaxStdDev: s.MaxStdDev, Goal: s.Goal}, mod
		case KindBalanceDistance:
			mod := constraint.WorkBalanceConstraint{Dimension: constraint.BalanceDistance, Transport: transport}
			return WorkBalance{Dimension: constraint.BalanceDistance, Module: mod, Weight: s.Weight, MaxStdDev: s.MaxStdDev, Goal: s.Goal}, mod
		case KindBalanceDuration:
			mod := constraint.WorkBalanceConstraint{Dimension: constraint.BalanceDuration, Transport: transport}
			return WorkBalance{Dimension: constraint.BalanceDuration, Module: mod, Weight: s.Weight, MaxStdDev: s.MaxStdDev, Goal: s.Goal}, mod
		default:
			return nil, nil
		}
	}

	for _, s := range primary {
		obj, mod := buildOne(s)
		if obj != nil {
			m.Primary = append(m.Primary, obj)
		}
		if mod != nil {
			modules = append(modules, mod)
		}
	}
	for _, s := range secondary {
		obj, mod := buildOne(s)
		if obj != nil {
			m.Secondary = append(m.Secondary, obj)
		}
		if mod != nil {
			modules = append(modules, mod)
		}
	}

	if !hasKind(m.Primary, m.CostSelector) && !hasKind(m.Secondary, m.CostSelector) {
		return nil, nil, model.NewConfigurationError("objective list has no objective named %q to supply the reportable cost", costSelector)
	}
	return m, modules, nil
}

func hasKind(objectives []Objective, name string) bool {
	for _, o := range objectives {
		if o.Name() == name {
			return true
		}
	}
	return false
}

func orOne(f float64) float64 {
	if f == 0 {
		return 1
	}
	return f
}
