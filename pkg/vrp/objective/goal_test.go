package objective_test

import (
	"testing"

	"github.com/routewise/vrp-engine/pkg/vrp/objective"
)

func TestValueGoalAbsoluteThreshold(t *testing.T) {
	g := &objective.ValueGoal{Value: 10}

	scenarios := []struct {
		cost float64
		want bool
	}{
		{cost: 5, want: true},
		{cost: 10, want: true},
		{cost: 10.1, want: false},
	}
	for _, s := range scenarios {
		got := g.Evaluate(&objective.RefinementContext{}, s.cost)
		if got == nil || *got != s.want {
			t.Errorf("Evaluate(%v) = %v, want %v", s.cost, got, s.want)
		}
	}
}

func TestValueGoalNilReceiverIsIndifferent(t *testing.T) {
	var g *objective.ValueGoal
	if got := g.Evaluate(&objective.RefinementContext{}, 5); got != nil {
		t.Errorf("Evaluate() on nil goal = %v, want nil", got)
	}
}

func TestValueGoalVariationNotEnoughHistory(t *testing.T) {
	g := &objective.ValueGoal{Variation: &objective.VariationCriterion{SampleSize: 5, Fraction: 0.1}}
	rctx := &objective.RefinementContext{CostHistory: []float64{1, 2}}
	got := g.Evaluate(rctx, 0)
	if got == nil || *got {
		t.Errorf("Evaluate() with insufficient history = %v, want false", got)
	}
}

func TestValueGoalVariationSatisfiedOncePlateaued(t *testing.T) {
	g := &objective.ValueGoal{Variation: &objective.VariationCriterion{SampleSize: 3, Fraction: 0.05}}
	rctx := &objective.RefinementContext{CostHistory: []float64{100, 100, 100}}
	got := g.Evaluate(rctx, 0)
	if got == nil || !*got {
		t.Errorf("Evaluate() over a flat history = %v, want true", got)
	}
}

func TestValueGoalVariationNotSatisfiedWhenNoisy(t *testing.T) {
	g := &objective.ValueGoal{Variation: &objective.VariationCriterion{SampleSize: 3, Fraction: 0.05}}
	rctx := &objective.RefinementContext{CostHistory: []float64{10, 100, 10}}
	got := g.Evaluate(rctx, 0)
	if got == nil || *got {
		t.Errorf("Evaluate() over a noisy history = %v, want false", got)
	}
}
