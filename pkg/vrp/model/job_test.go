package model_test

import (
	"testing"

	"github.com/routewise/vrp-engine/pkg/vrp/model"
)

func TestInOrderValidator(t *testing.T) {
	scenarios := []struct {
		name  string
		n     int
		order []int
		want  bool
	}{
		{name: "IdentityAccepted", n: 2, order: []int{0, 1}, want: true},
		{name: "ReversedRejected", n: 2, order: []int{1, 0}, want: false},
		{name: "WrongLengthRejected", n: 2, order: []int{0}, want: false},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			validator := model.InOrderValidator(s.n)
			if got := validator(s.order); got != s.want {
				t.Errorf("InOrderValidator(%d)(%v) = %v, want %v", s.n, s.order, got, s.want)
			}
		})
	}
}

func TestPickupDeliveryValidator(t *testing.T) {
	scenarios := []struct {
		name  string
		order []int
		want  bool
	}{
		{name: "PickupBeforeDelivery", order: []int{0, 1}, want: true},
		{name: "DeliveryBeforePickup", order: []int{1, 0}, want: false},
		{name: "WrongLength", order: []int{0}, want: false},
	}

	validator := model.PickupDeliveryValidator()
	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			if got := validator(s.order); got != s.want {
				t.Errorf("PickupDeliveryValidator()(%v) = %v, want %v", s.order, got, s.want)
			}
		})
	}
}

func TestNewMultiJobDefaultsToInOrderValidator(t *testing.T) {
	job := model.NewMultiJob("", []model.SingleTask{{}, {}}, nil)
	if job.ID == "" {
		t.Fatal("expected a minted uuid when id is empty")
	}
	if !job.Validator([]int{0, 1}) {
		t.Error("default validator should accept the identity permutation")
	}
	if job.Validator([]int{1, 0}) {
		t.Error("default validator should reject a reversed permutation")
	}
}

func TestTimeWindowContains(t *testing.T) {
	w := model.TimeWindow{Start: 10, End: 20}
	scenarios := []struct {
		name string
		t    float64
		want bool
	}{
		{name: "BeforeStart", t: 9, want: false},
		{name: "AtStart", t: 10, want: true},
		{name: "Inside", t: 15, want: true},
		{name: "AtEnd", t: 20, want: true},
		{name: "AfterEnd", t: 21, want: false},
	}
	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			if got := w.Contains(s.t); got != s.want {
				t.Errorf("Contains(%v) = %v, want %v", s.t, got, s.want)
			}
		})
	}
}

func TestSubtaskCount(t *testing.T) {
	single := model.NewSingleJob("j1", model.SingleTask{})
	if got := single.SubtaskCount(); got != 1 {
		t.Errorf("single job SubtaskCount() = %d, want 1", got)
	}

	multi := model.NewMultiJob("j2", []model.SingleTask{{}, {}, {}}, nil)
	if got := multi.SubtaskCount(); got != 3 {
		t.Errorf("multi job SubtaskCount() = %d, want 3", got)
	}
}
