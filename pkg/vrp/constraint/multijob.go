package constraint

import (
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/route"
)

// MultiJobConstraint is a hard module: for any multi-subtask job already
// present in a route, it delegates to the job's own PermutationValidator to
// decide whether the subtasks' tour order is acceptable.
type MultiJobConstraint struct{}

func (MultiJobConstraint) Name() string { return "multi_job" }

// EvaluateJob hard-rejects inserting into a route whose already-placed
// multi-jobs are mis-ordered, so a corrupted route stops accepting work
// instead of compounding the damage.
func (MultiJobConstraint) EvaluateJob(sol SolutionView, r *route.Route, job *model.Job) *Violation {
	return ValidateMultiJobOrder(r)
}

func (MultiJobConstraint) EvaluateActivity(r *route.Route, ctx model.ActivityContext) *Violation {
	return nil
}

func (MultiJobConstraint) AcceptInsertion(sol SolutionView, r *route.Route, job *model.Job) {}

func (MultiJobConstraint) AcceptRouteState(r *route.Route) {}

func (MultiJobConstraint) AcceptSolutionState(sol SolutionView) {}

// ValidateMultiJobOrder checks every multi-job present in r's tour against
// its own validator and returns the first violation found, or nil.
func ValidateMultiJobOrder(r *route.Route) *Violation {
	bySubtask := make(map[string][]int)  // job id -> task indices in tour order
	jobByID := make(map[string]*model.Job)

	for _, a := range r.Tour.Activities {
		if a.Job == nil || a.Job.Kind != model.KindMulti {
			continue
		}
		bySubtask[a.Job.ID] = append(bySubtask[a.Job.ID], a.TaskIndex)
		jobByID[a.Job.ID] = a.Job
	}

	for id, order := range bySubtask {
		job := jobByID[id]
		if len(order) != job.SubtaskCount() {
			continue // partially placed mid-recreate; not yet a violation
		}
		if job.Validator != nil && !job.Validator(order) {
			return &Violation{Code: CodeMultiJobOrder, Stopped: true, Reason: "invalid multi-job subtask order"}
		}
	}
	return nil
}
