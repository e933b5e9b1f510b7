// Package mutation implements the ruin-and-recreate operators: ruin
// operators detach a subset of routed jobs back into the required bucket,
// recreate heuristics reinsert them via the insertion evaluator.
package mutation

import (
	"github.com/routewise/vrp-engine/pkg/vrp/model"
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
)

// RuinOperator detaches some subset of currently-routed jobs, moving them
// into ctx.Solution.Required and invoking AcceptRouteState on every route it
// touched.
type RuinOperator interface {
	Name() string
	Ruin(ctx *solution.InsertionContext)
}

// RandomJobRemoval detaches a fixed count of uniformly-chosen routed jobs.
type RandomJobRemoval struct {
	Count int
}

func (RandomJobRemoval) Name() string { return "random_job_removal" }

func (o RandomJobRemoval) Ruin(ctx *solution.InsertionContext) {
	routedJobs := collectRoutedJobs(ctx.Solution)
	if len(routedJobs) == 0 {
		return
	}
	n := o.Count
	if n > len(routedJobs) {
		n = len(routedJobs)
	}
	ctx.Random.Shuffle(len(routedJobs), func(i, j int) { routedJobs[i], routedJobs[j] = routedJobs[j], routedJobs[i] })
	detachJobs(ctx, routedJobs[:n])
}

// RouteRemoval empties one entire, uniformly-chosen non-empty route.
type RouteRemoval struct{}

func (RouteRemoval) Name() string { return "route_removal" }

func (o RouteRemoval) Ruin(ctx *solution.InsertionContext) {
	var candidates []int
	for i, r := range ctx.Solution.Routes() {
		if r.Tour.ActivityCount() > 0 {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return
	}
	chosen := ctx.Solution.Routes()[candidates[ctx.Random.Intn(len(candidates))]]

	jobs := chosen.Tour.RemoveActivitiesAt(1, len(chosen.Tour.Activities)-1)
	ctx.Pipeline.AcceptRouteState(chosen)
	requeue(ctx.Solution, jobs)
}

// NeighborhoodRemoval picks a uniformly-random seed job among the routed
// jobs, then removes the k geographically nearest still-routed jobs to it
// (by TransportCosts.Distance), k drawn uniformly from [MinK, MaxK].
type NeighborhoodRemoval struct {
	MinK, MaxK int
}

func (NeighborhoodRemoval) Name() string { return "neighborhood_removal" }

func (o NeighborhoodRemoval) Ruin(ctx *solution.InsertionContext) {
	routedJobs := collectRoutedJobs(ctx.Solution)
	if len(routedJobs) == 0 {
		return
	}
	seed := routedJobs[ctx.Random.Intn(len(routedJobs))]
	seedLoc := seed.Tasks[0].Place.Location

	type withDist struct {
		job  *model.Job
		dist float64
	}
	ranked := make([]withDist, 0, len(routedJobs))
	for _, j := range routedJobs {
		d := ctx.Problem.TransportCosts.Distance(seedLoc, j.Tasks[0].Place.Location)
		ranked = append(ranked, withDist{job: j, dist: d})
	}
	// selection sort on distance: pack sizes here are small (a ruin
	// neighborhood), so O(n*k) beats pulling in sort for k << n.
	k := o.MinK
	if o.MaxK > o.MinK {
		k = o.MinK + ctx.Random.Intn(o.MaxK-o.MinK+1)
	}
	if k > len(ranked) {
		k = len(ranked)
	}
	selected := make([]*model.Job, 0, k)
	for i := 0; i < k; i++ {
		minIdx := i
		for j := i + 1; j < len(ranked); j++ {
			if ranked[j].dist < ranked[minIdx].dist {
				minIdx = j
			}
		}
		ranked[i], ranked[minIdx] = ranked[minIdx], ranked[i]
		selected = append(selected, ranked[i].job)
	}
	detachJobs(ctx, selected)
}

// collectRoutedJobs returns every distinct job currently present in any
// route's tour, across the whole solution.
func collectRoutedJobs(sol *solution.SolutionContext) []*model.Job {
	seen := make(map[string]bool)
	var jobs []*model.Job
	for _, r := range sol.Routes() {
		for _, a := range r.Tour.Activities {
			if a.Job != nil && !seen[a.Job.ID] {
				seen[a.Job.ID] = true
				jobs = append(jobs, a.Job)
			}
		}
	}
	return jobs
}

// detachJobs removes every activity of each job in jobs from whichever
// route holds it, refreshes that route's cached state, and re-queues the
// jobs as required.
func detachJobs(ctx *solution.InsertionContext, jobs []*model.Job) {
	for _, job := range jobs {
		for _, r := range ctx.Solution.Routes() {
			if n := r.Tour.RemoveJob(job); n > 0 {
				ctx.Pipeline.AcceptRouteState(r)
			}
		}
	}
	requeue(ctx.Solution, jobs)
}

// requeue appends jobs to Required, clearing any stale unassigned reason.
func requeue(sol *solution.SolutionContext, jobs []*model.Job) {
	for _, job := range jobs {
		sol.ClearUnassigned(job)
		sol.Required = append(sol.Required, job)
	}
}
