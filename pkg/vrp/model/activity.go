package model

// ActivityType tags what kind of visit an Activity represents.
type ActivityType int

const (
	ActivityTerminal ActivityType = iota
	ActivityJob
	ActivityBreak
	ActivityReload
)

// Activity is one concrete visit in a Tour: a place, the time window chosen
// for it, the arrival time actually scheduled, and a reference back to the
// Job it serves (nil for terminals, breaks, and reloads).
type Activity struct {
	Type        ActivityType
	Place       Place
	Window      TimeWindow
	Arrival     float64
	Departure   float64
	Job         *Job
	TaskIndex   int // index into Job.Tasks this activity fulfills, for multi-jobs
}

// IsTerminal reports whether this activity is a tour's start/end bracket.
func (a *Activity) IsTerminal() bool {
	return a.Type == ActivityTerminal
}

// NewTerminal builds a terminal activity at the given place and arrival
// time (departure for the start terminal, arrival for the end terminal).
func NewTerminal(place Place, t float64) Activity {
	return Activity{Type: ActivityTerminal, Place: place, Arrival: t, Departure: t}
}

// ActivityContext carries the prospective predecessor, candidate, and
// successor around a trial insertion slot, as consulted by
// Module.EvaluateActivity.
type ActivityContext struct {
	Prev      *Activity
	Candidate *Activity
	Next      *Activity
}
