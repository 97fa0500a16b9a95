/*
 *  ant.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/gonum/floats"
)

// Solution is the outcome of one walk
type Solution struct {
	Ant        int     // index of the ant within its cycle
	Sequence   string  // reconstructed DNA
	Used       int     // oligomers consumed, the start vertex included
	Quality    float64 // Used over the maximum usable oligomers, in [0, 1]
	Fitness    float64 // percent identity to the reference, when there is one
	HasFitness bool
	Path       []int // vertices in the order they were visited
	Arcs       []int // arc ids traversed
}

// String outputs the string representation of Solution
func (r Solution) String() string {
	if !r.HasFitness {
		return fmt.Sprintf("Sequence: %s\nQuality: %.5f", r.Sequence, r.Quality)
	}
	return fmt.Sprintf("Sequence: %s\nQuality: %.5f\nFitness: %.3f%%",
		r.Sequence, r.Quality, r.Fitness)
}

// candidate is the state of an ant in the middle of its walk
type candidate struct {
	vertex   int
	sequence []byte
	used     int
	path     []int
	arcs     []int
	visited  []bool
}

// option is one arc an ant may take next, with its selection weight
type option struct {
	vertex  int
	overlap int
	arc     int
	weight  float64
}

// walker carries everything one ant reads; none of it is written during a cycle
type walker struct {
	view         *GraphView
	alpha        float64
	beta         float64
	repetition   float64
	start        int
	targetLength int
	maxUsable    int
	reference    string
	everyone     []int
}

// newWalker prepares the read-only inputs shared by all the ants of a cycle
func newWalker(view *GraphView, p *Params, inst *Instance, start int) *walker {
	everyone := make([]int, view.Len())
	for i := range everyone {
		everyone[i] = i
	}
	return &walker{
		view:         view,
		alpha:        p.Alpha,
		beta:         p.Beta,
		repetition:   p.Repetition,
		start:        start,
		targetLength: inst.TargetLength,
		maxUsable:    inst.MaxUsable(),
		reference:    inst.Reference,
		everyone:     everyone,
	}
}

// walk builds one sequence from the start vertex until it reaches the target length
func (r *walker) walk(ant int, rng *rand.Rand) (Solution, error) {
	label := r.view.Label(r.start)
	c := &candidate{
		vertex:   r.start,
		sequence: []byte(label),
		used:     1,
		path:     []int{r.start},
		visited:  make([]bool, r.view.Len()),
	}
	c.visited[r.start] = true

	for len(c.sequence) < r.targetLength {
		options, err := r.neighborhood(c)
		if err != nil {
			return Solution{}, err
		}
		next := options[choose(options, rng)]
		c.sequence = append(c.sequence, r.view.Label(next.vertex)[next.overlap:]...)
		c.vertex = next.vertex
		c.used++
		c.path = append(c.path, next.vertex)
		c.arcs = append(c.arcs, next.arc)
		c.visited[next.vertex] = true
	}

	return r.score(ant, c), nil
}

// neighborhood lists every arc out of the current vertex with its
// normalized probability. A vertex without out-arcs falls back to the whole
// spectrum.
func (r *walker) neighborhood(c *candidate) ([]option, error) {
	neighbors := r.view.OutNeighbors(c.vertex)
	if len(neighbors) == 0 {
		neighbors = r.everyone
	}

	var options []option
	for _, nb := range neighbors {
		arcs := r.view.ArcsBetween(c.vertex, nb)
		for a := 0; a < arcs.Len(); a++ {
			options = append(options, option{
				vertex:  nb,
				overlap: arcs.Weights[a],
				arc:     arcs.IDs[a],
				weight:  r.desirability(arcs.Pheromones[a], arcs.Weights[a], c.visited[nb]),
			})
		}
	}
	if len(options) == 0 {
		return nil, fmt.Errorf("%w: no arc out of vertex %d (%s) after %d oligomers",
			ErrSearchDeadEnd, c.vertex, r.view.Label(c.vertex), c.used)
	}

	weights := make([]float64, len(options))
	for i, o := range options {
		weights[i] = o.weight
	}
	total := floats.Sum(weights)
	if !(total > 0) || math.IsInf(total, 0) {
		return nil, fmt.Errorf("%w: desirability sum is %g at vertex %d",
			ErrSearchDeadEnd, total, c.vertex)
	}
	for i := range options {
		options[i].weight /= total
	}
	return options, nil
}

// desirability is pheromone^alpha * overlap^beta, raised to the repetition
// exponent when the vertex was already visited
func (r *walker) desirability(pheromone float64, overlap int, visited bool) float64 {
	if pheromone == 0 {
		pheromone = FloorPheromone
	}
	d := math.Pow(pheromone, r.alpha) * math.Pow(float64(overlap), r.beta)
	if visited {
		d = math.Pow(d, r.repetition)
	}
	return d
}

// score turns a finished candidate into a Solution
func (r *walker) score(ant int, c *candidate) Solution {
	s := Solution{
		Ant:      ant,
		Sequence: string(c.sequence),
		Used:     c.used,
		Quality:  Quality(c.used, r.maxUsable),
		Path:     c.path,
		Arcs:     c.arcs,
	}
	if r.reference != "" {
		s.Fitness = Fitness(r.reference, s.Sequence)
		s.HasFitness = true
	}
	return s
}

// choose draws an index with probability proportional to the option weights,
// using the cumulative weights and a single uniform draw
func choose(options []option, rng *rand.Rand) int {
	weights := make([]float64, len(options))
	for i, o := range options {
		weights[i] = o.weight
	}
	cum := floats.CumSum(make([]float64, len(weights)), weights)
	x := rng.Float64() * cum[len(cum)-1]
	idx := sort.Search(len(cum), func(i int) bool { return cum[i] > x })
	if idx == len(cum) {
		idx = len(cum) - 1
	}
	return idx
}

// Quality is the fraction of usable oligomers a walk consumed, capped at 1
func Quality(used, maxUsable int) float64 {
	if maxUsable < 1 {
		maxUsable = 1
	}
	return math.Min(1, float64(used)/float64(maxUsable))
}

// Fitness is 100 * (1 - mismatches / len(reference)). Characters of s past the
// end of the reference count as mismatches, so an overshooting s can go
// below 0.
func Fitness(reference, s string) float64 {
	if len(reference) == 0 {
		return 0
	}
	mismatches := HammingWithPadding(reference, s)
	return 100 * (1 - float64(mismatches)/float64(len(reference)))
}
