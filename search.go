/*
 *  search.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh

import (
	"fmt"
	"math/rand"
	"sort"

	"golang.org/x/sync/errgroup"
)

// Status is where the Searcher is in its life
type Status int

const (
	// Init is before the first cycle
	Init Status = iota
	// Cycling is while cycles are running
	Cycling
	// Converged means the best solution stopped improving
	Converged
	// Exhausted means the cycle limit was reached
	Exhausted
)

// String outputs the string representation of Status
func (s Status) String() string {
	switch s {
	case Cycling:
		return "CYCLING"
	case Converged:
		return "CONVERGED"
	case Exhausted:
		return "EXHAUSTED"
	}
	return "INIT"
}

// CycleStat is one row of the run trace
type CycleStat struct {
	Cycle        int
	Quality      float64 // best so far
	Fitness      float64 // best so far
	CycleQuality float64 // best of this cycle only
	Stagnation   int
}

// Searcher runs the ant colony over an instance. The cycle loop is the only
// writer of the pheromone trail; walkers only see a per-cycle snapshot.
type Searcher struct {
	Instance *Instance
	Params   Params
	Graph    *OverlapGraph // built from Instance when nil
	OnCycle  func(CycleStat)
	// Results
	Best   *Solution
	Trace  []CycleStat
	Status Status
}

// Run kicks off the Searcher and returns the best solution of the run
func (r *Searcher) Run() (*Solution, error) {
	if err := r.Params.Validate(); err != nil {
		return nil, err
	}
	if r.Graph == nil {
		r.Graph = r.Instance.Graph()
	}
	start, err := r.Graph.FindEntryVertex(r.Instance.Start, Left)
	if err != nil {
		return nil, fmt.Errorf("%w: start fragment: %w", ErrConfiguration, err)
	}

	p := r.Params
	rng := rand.New(rand.NewSource(p.Seed))
	log.Noticef("ACO initialized (%s)", p)
	r.Status = Cycling
	r.Best = nil
	r.Trace = r.Trace[:0]

	stagnation := 0
	for cycle := 1; cycle <= p.Cycles; cycle++ {
		results, err := r.runCycle(start, rng)
		if err != nil {
			return nil, fmt.Errorf("cycle %d: %w", cycle, err)
		}
		rankSolutions(results)
		for i, s := range results {
			log.Debugf("%d-ant quality: %.5f", i+1, s.Quality)
		}

		top := results[0]
		if r.Best == nil || top.Quality > r.Best.Quality {
			r.Best = &top
			stagnation = 0
			log.Noticef("New best at cycle %d: quality=%.5f, fitness=%.3f",
				cycle, top.Quality, top.Fitness)
		} else {
			stagnation++
		}

		stat := CycleStat{
			Cycle:        cycle,
			Quality:      r.Best.Quality,
			Fitness:      r.Best.Fitness,
			CycleQuality: top.Quality,
			Stagnation:   stagnation,
		}
		r.Trace = append(r.Trace, stat)
		if r.OnCycle != nil {
			r.OnCycle(stat)
		}
		log.Noticef("Cycle %d (repeats: %d): cycle_best=%.5f best=%.5f",
			cycle, stagnation, top.Quality, r.Best.Quality)

		r.reinforce(results)

		if stagnation > p.Stagnation {
			r.Status = Converged
			break
		}
	}
	if r.Status != Converged {
		r.Status = Exhausted
	}
	log.Noticef("Search %s after %d cycles, best walk used %s oligomers",
		r.Status, len(r.Trace), Percentage(r.Best.Used, r.Instance.MaxUsable()))
	return r.Best, nil
}

// runCycle sends Ants walks to a fixed pool of Workers and blocks until every
// one of them has reported
func (r *Searcher) runCycle(start int, rng *rand.Rand) ([]Solution, error) {
	p := r.Params
	w := newWalker(r.Graph.Snapshot(), &p, r.Instance, start)

	// Seeds are drawn here so a run only depends on Params.Seed and not on
	// how goroutines get scheduled
	seeds := make([]int64, p.Ants)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	results := make(chan Solution, p.Ants)
	var g errgroup.Group
	g.SetLimit(p.Workers)
	first := 0
	for _, n := range splitTasks(p.Ants, p.Workers) {
		if n == 0 {
			continue
		}
		lo, hi := first, first+n
		first = hi
		g.Go(func() (err error) {
			defer func() {
				if e := recover(); e != nil {
					err = fmt.Errorf("%w: ants %d-%d: %v", ErrWorkerFailure, lo, hi-1, e)
				}
			}()
			for ant := lo; ant < hi; ant++ {
				s, err := w.walk(ant, rand.New(rand.NewSource(seeds[ant])))
				if err != nil {
					return fmt.Errorf("ant %d: %w", ant, err)
				}
				results <- s
			}
			return nil
		})
	}
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	// Barrier: exactly Ants results, or the first worker error
	solutions := make([]Solution, 0, p.Ants)
	for len(solutions) < p.Ants {
		select {
		case s := <-results:
			solutions = append(solutions, s)
		case err := <-done:
			if err != nil {
				return nil, err
			}
			return drainResults(results, solutions, p.Ants)
		}
	}
	return solutions, nil
}

// drainResults collects what is left in the channel once every worker has
// returned; anything short of want is a lost walk
func drainResults(results <-chan Solution, solutions []Solution, want int) ([]Solution, error) {
	for len(solutions) < want {
		select {
		case s := <-results:
			solutions = append(solutions, s)
		default:
			return nil, fmt.Errorf("%w: expected %d results, got %d",
				ErrWorkerFailure, want, len(solutions))
		}
	}
	return solutions, nil
}

// reinforce evaporates the whole trail then lets the elite ants lay pheromone
// on every arc they walked
func (r *Searcher) reinforce(ranked []Solution) {
	p := r.Params
	r.Graph.Evaporate(p.Evaporation)
	elite := minInt(p.EliteAnts, len(ranked))
	for _, s := range ranked[:elite] {
		amount := s.Quality * p.Deposit
		for _, arc := range s.Arcs {
			r.Graph.Deposit(arc, amount)
		}
	}
}

// rankSolutions sorts by quality, best first; ties keep the ant order
func rankSolutions(solutions []Solution) {
	sort.SliceStable(solutions, func(i, j int) bool {
		if solutions[i].Quality != solutions[j].Quality {
			return solutions[i].Quality > solutions[j].Quality
		}
		return solutions[i].Ant < solutions[j].Ant
	})
}

// splitTasks spreads tasks over workers as evenly as possible
func splitTasks(tasks, workers int) []int {
	perWorker := make([]int, workers)
	for i := range perWorker {
		perWorker[i] = tasks / workers
	}
	for i := 0; i < tasks%workers; i++ {
		perWorker[i]++
	}
	return perWorker
}
