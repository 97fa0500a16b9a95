/*
 *  tune.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/MaxHalford/eaopt"
)

// tuneRanges are the bounds of alpha, beta, evaporation and repetition
var tuneRanges = [...][2]float64{
	{0, 5},
	{0, 10},
	{0.05, 0.95},
	{0.05, 0.95},
}

// Tuner searches the colony parameters with a particle swarm. Every particle
// position is a full Searcher run, so keep Base.Cycles small.
type Tuner struct {
	Instance  *Instance
	Base      Params
	Particles uint
	Steps     uint
	Seed      int64
	// Results
	Best  Params
	Score float64 // quality + fitness / 100 of Best
}

// Run kicks off the Tuner
func (r *Tuner) Run() (Params, error) {
	if err := r.Base.Validate(); err != nil {
		return r.Base, err
	}
	graph := r.Instance.Graph()
	if _, err := graph.FindEntryVertex(r.Instance.Start, Left); err != nil {
		return r.Base, fmt.Errorf("%w: start fragment: %w", ErrConfiguration, err)
	}

	spso, err := eaopt.NewSPSO(r.Particles, r.Steps, 0, 1, 0.5, false,
		rand.New(rand.NewSource(r.Seed)))
	if err != nil {
		return r.Base, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	log.Noticef("SPSO initialized (particles: %d, steps: %d)", r.Particles, r.Steps)

	evals := 0
	objective := func(x []float64) float64 {
		evals++
		p := r.decode(x)
		graph.Reset()
		s := Searcher{Instance: r.Instance, Params: p, Graph: graph}
		best, err := s.Run()
		if err != nil {
			if !errors.Is(err, ErrSearchDeadEnd) {
				log.Errorf("Evaluation %d failed: %v", evals, err)
			}
			return 1
		}
		score := best.Quality + best.Fitness/100
		log.Debugf("Evaluation %d: %s => %.5f", evals, p, score)
		return -score
	}

	x, y, err := spso.Minimize(objective, uint(len(tuneRanges)))
	if err != nil {
		return r.Base, err
	}
	r.Best = r.decode(x)
	r.Score = -y
	log.Noticef("Best parameters after %d evaluations (score %.5f): %s", evals, r.Score, r.Best)
	return r.Best, nil
}

// decode maps a particle position in [0, 1]^4 onto Params
func (r *Tuner) decode(x []float64) Params {
	v := make([]float64, len(tuneRanges))
	for i, bounds := range tuneRanges {
		u := math.Max(0, math.Min(1, x[i]))
		v[i] = bounds[0] + u*(bounds[1]-bounds[0])
	}
	p := r.Base
	p.Alpha, p.Beta, p.Evaporation, p.Repetition = v[0], v[1], v[2], v[3]
	return p
}
