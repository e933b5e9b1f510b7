// Package route implements the ordered-activity-list model a vehicle's tour
// is built from: O(1) neighbor access, positional insertion, and range
// removal, plus the per-route state cache each constraint module writes its
// cached values into.
package route

import (
	"github.com/routewise/vrp-engine/pkg/vrp/model"
)

// Tour is the ordered activity sequence for one vehicle's shift, always
// bracketed by terminal activities.
type Tour struct {
	Activities []model.Activity
}

// NewTour builds a tour already bracketed by its start/end terminals.
func NewTour(start, end model.Activity) *Tour {
	return &Tour{Activities: []model.Activity{start, end}}
}

// ActivityCount returns the number of non-terminal activities.
func (t *Tour) ActivityCount() int {
	if len(t.Activities) < 2 {
		return len(t.Activities)
	}
	return len(t.Activities) - 2
}

// InsertLast appends an activity just before the closing terminal.
func (t *Tour) InsertLast(a model.Activity) {
	t.InsertAt(len(t.Activities)-1, a)
}

// InsertAt inserts an activity at the given index, shifting subsequent
// activities (and the closing terminal) right by one. index must be in
// [1, len(Activities)-1] to preserve terminal bracketing.
func (t *Tour) InsertAt(index int, a model.Activity) {
	t.Activities = append(t.Activities, model.Activity{})
	copy(t.Activities[index+1:], t.Activities[index:])
	t.Activities[index] = a
}

// IndexOf returns the first index at which job appears, by job ID.
func (t *Tour) IndexOf(job *model.Job) (int, bool) {
	if job == nil {
		return -1, false
	}
	for i, a := range t.Activities {
		if a.Job != nil && a.Job.ID == job.ID {
			return i, true
		}
	}
	return -1, false
}

// RemoveActivitiesAt removes the half-open range [from, to) and returns the
// distinct jobs whose activities were removed, preserving identity so
// callers can re-queue them. Terminal activities are never removed by this
// call; callers are responsible for keeping from/to within the interior.
func (t *Tour) RemoveActivitiesAt(from, to int) []*model.Job {
	if from < 1 {
		from = 1
	}
	if to > len(t.Activities)-1 {
		to = len(t.Activities) - 1
	}
	if from >= to {
		return nil
	}

	seen := make(map[string]bool)
	var removed []*model.Job
	for i := from; i < to; i++ {
		if job := t.Activities[i].Job; job != nil && !seen[job.ID] {
			seen[job.ID] = true
			removed = append(removed, job)
		}
	}

	t.Activities = append(t.Activities[:from], t.Activities[to:]...)
	return removed
}

// RemoveJob removes every activity belonging to job (handles multi-job
// subtasks scattered across the tour) and returns how many activities were
// removed.
func (t *Tour) RemoveJob(job *model.Job) int {
	if job == nil {
		return 0
	}
	kept := t.Activities[:0:0]
	removedCount := 0
	for _, a := range t.Activities {
		if a.Job != nil && a.Job.ID == job.ID {
			removedCount++
			continue
		}
		kept = append(kept, a)
	}
	t.Activities = kept
	return removedCount
}

// StartTerminal and EndTerminal give direct access to the bracketing
// activities, asserting the invariant that they exist.
func (t *Tour) StartTerminal() *model.Activity { return &t.Activities[0] }
func (t *Tour) EndTerminal() *model.Activity   { return &t.Activities[len(t.Activities)-1] }

// Route pairs a Tour with the vehicle operating it and the per-module state
// cache. The cache is a type-erased map keyed by module name, written only
// via Module.AcceptRouteState — Route itself never interprets its contents,
// which avoids a cyclic reference from constraint modules back to routes.
type Route struct {
	Vehicle *model.Vehicle
	Tour    *Tour
	state   map[string]interface{}
}

// NewRoute builds an empty route bracketed by the vehicle's first shift
// terminals.
func NewRoute(vehicle *model.Vehicle) *Route {
	shift := vehicle.Shifts[0]
	start := model.NewTerminal(shift.Start, shift.Window.Start)
	end := model.NewTerminal(shift.End, shift.Window.End)
	return &Route{Vehicle: vehicle, Tour: NewTour(start, end), state: make(map[string]interface{})}
}

// State returns the cached value a module previously stored under key, and
// whether it was present.
func (r *Route) State(key string) (interface{}, bool) {
	v, ok := r.state[key]
	return v, ok
}

// SetState overwrites the cached value for key. Only called from a module's
// AcceptRouteState hook.
func (r *Route) SetState(key string, value interface{}) {
	r.state[key] = value
}

// Clone deep-copies the route so a working incumbent and a population
// member never alias each other's activity slice or state cache.
func (r *Route) Clone() *Route {
	clone := &Route{
		Vehicle: r.Vehicle,
		Tour:    &Tour{Activities: append([]model.Activity(nil), r.Tour.Activities...)},
		state:   make(map[string]interface{}, len(r.state)),
	}
	for k, v := range r.state {
		clone.state[k] = v
	}
	return clone
}
