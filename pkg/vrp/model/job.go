package model

import (
	"github.com/google/uuid"
	"k8s.io/apimachinery/pkg/api/resource"
)

// TimeWindow is a half-open-ish [Start, End] interval in seconds since the
// problem's epoch. A Place may carry several; the insertion evaluator tries
// every one and keeps the cheapest legal combination.
type TimeWindow struct {
	Start float64
	End   float64
}

// Contains reports whether t falls within the window, inclusive.
func (w TimeWindow) Contains(t float64) bool {
	return t >= w.Start && t <= w.End
}

// Place is a visitable location plus the service it requires there.
type Place struct {
	Location        Location
	ServiceDuration float64
	TimeWindows      []TimeWindow
}

// Demand is the multi-dimensional amount a job consumes, or a vehicle
// supplies, of capacity. Quantity lets capacity be declared in configuration
// as human units ("1500kg", "20") and compared exactly.
type Demand []resource.Quantity

// SingleTask is one concrete visit a job requires: pickup, delivery, or a
// plain service stop.
type SingleTask struct {
	Place  Place
	Demand Demand
}

// PermutationValidator decides which orderings of a Multi-job's subtasks are
// acceptable, e.g. "pickup before its matching delivery". order holds
// subtask indices into Job.Tasks in the order they appear in the tour.
type PermutationValidator func(order []int) bool

// JobKind tags which variant of Job this is.
type JobKind int

const (
	KindSingle JobKind = iota
	KindMulti
)

// Job is a customer task: either a single visit or an ordered set of
// subtasks that must be placed in a validator-approved permutation. Identity
// is always by ID; two Jobs are equal iff their IDs match, regardless of
// their current field values.
type Job struct {
	ID         string
	Kind       JobKind
	Tasks      []SingleTask // len==1 for KindSingle
	Validator  PermutationValidator
	Priority   int
	SkipReason string // set by the problem builder when a job is pre-excluded (ignored)
}

// NewSingleJob builds a single-subtask job. If id is empty a uuid is minted.
func NewSingleJob(id string, task SingleTask) *Job {
	if id == "" {
		id = uuid.NewString()
	}
	return &Job{ID: id, Kind: KindSingle, Tasks: []SingleTask{task}}
}

// NewMultiJob builds a multi-subtask job with a permutation validator. If
// validator is nil, InOrderValidator is used (subtasks must appear in the
// order given).
func NewMultiJob(id string, tasks []SingleTask, validator PermutationValidator) *Job {
	if id == "" {
		id = uuid.NewString()
	}
	if validator == nil {
		validator = InOrderValidator(len(tasks))
	}
	return &Job{ID: id, Kind: KindMulti, Tasks: tasks, Validator: validator}
}

// InOrderValidator accepts only the identity permutation: every subtask must
// appear in the tour in the same order it was declared (e.g. pickup then
// delivery).
func InOrderValidator(n int) PermutationValidator {
	return func(order []int) bool {
		if len(order) != n {
			return false
		}
		for i, idx := range order {
			if idx != i {
				return false
			}
		}
		return true
	}
}

// PickupDeliveryValidator is a convenience validator for the common two-task
// pickup/delivery shape: it only requires the pickup (index 0) to precede
// the delivery (index 1), not that they be adjacent.
func PickupDeliveryValidator() PermutationValidator {
	return func(order []int) bool {
		if len(order) != 2 {
			return false
		}
		pickupPos, deliveryPos := -1, -1
		for pos, idx := range order {
			switch idx {
			case 0:
				pickupPos = pos
			case 1:
				deliveryPos = pos
			}
		}
		return pickupPos >= 0 && deliveryPos >= 0 && pickupPos < deliveryPos
	}
}

// SubtaskCount returns how many SingleTasks make up the job (1 for KindSingle).
func (j *Job) SubtaskCount() int {
	return len(j.Tasks)
}
