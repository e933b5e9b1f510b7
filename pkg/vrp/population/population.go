// Package population implements the bounded, ordered set of individuals the
// refinement driver samples from: a capacity-bounded slice kept sorted by a
// comparator, evicting the worst member once over capacity.
package population

import (
	"github.com/routewise/vrp-engine/pkg/vrp/refinement/solution"
)

// Individual is one scored candidate solution in the population.
type Individual struct {
	Context    *solution.InsertionContext
	Cost       float64
	Generation int
}

// Comparator ranks two individuals the same way objective.Multi.Compare
// does; declared here as a narrow interface (rather than importing
// objective directly) to avoid a dependency cycle, since objective depends
// on the solution package population also depends on.
type Comparator interface {
	Compare(a, b *solution.InsertionContext) int
}

// Population is a capacity-bounded ordered set, frontmost member first.
type Population struct {
	Capacity   int
	Comparator Comparator
	members    []*Individual
}

// New builds an empty population of the given capacity (default 5 if <= 0).
func New(capacity int, cmp Comparator) *Population {
	if capacity <= 0 {
		capacity = 5
	}
	return &Population{Capacity: capacity, Comparator: cmp}
}

// Add inserts a deep copy of individual in rank order, evicting the worst
// member if doing so would exceed Capacity.
func (p *Population) Add(ind *Individual) {
	clone := &Individual{
		Context:    ind.Context.Clone(),
		Cost:       ind.Cost,
		Generation: ind.Generation,
	}

	pos := len(p.members)
	for i, m := range p.members {
		if p.Comparator.Compare(clone.Context, m.Context) < 0 {
			pos = i
			break
		}
	}
	p.members = append(p.members, nil)
	copy(p.members[pos+1:], p.members[pos:])
	p.members[pos] = clone

	if len(p.members) > p.Capacity {
		p.members = p.members[:p.Capacity]
	}
}

// Best returns the frontmost (highest-ranked) individual, or nil if empty.
func (p *Population) Best() *Individual {
	if len(p.members) == 0 {
		return nil
	}
	return p.members[0]
}

// SelectRandom picks uniformly among current members, or nil if empty.
func (p *Population) SelectRandom(rng interface{ Intn(int) int }) *Individual {
	if len(p.members) == 0 {
		return nil
	}
	return p.members[rng.Intn(len(p.members))]
}

// Len reports the current member count.
func (p *Population) Len() int { return len(p.members) }

// Members returns the current ranked members, frontmost first. Callers must
// not mutate the returned slice's elements' Context.
func (p *Population) Members() []*Individual {
	return p.members
}
