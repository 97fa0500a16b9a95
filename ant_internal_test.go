/*
 *  ant_internal_test.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ringWalker(t *testing.T, p Params) *walker {
	inst, err := NewInstance("ACGTACG", []string{"ACGT", "CGTA", "GTAC", "TACG"}, 4)
	require.NoError(t, err)
	g := inst.Graph()
	start, err := g.FindEntryVertex(inst.Start, Left)
	require.NoError(t, err)
	return newWalker(g.Snapshot(), &p, inst, start)
}

func TestSplitTasks(t *testing.T) {
	assert.Equal(t, []int{4, 4, 4, 4, 4, 4, 3, 3}, splitTasks(30, 8))
	assert.Equal(t, []int{1, 1, 1, 0}, splitTasks(3, 4))
	assert.Equal(t, []int{7}, splitTasks(7, 1))
}

func TestChoose(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	only := []option{{weight: 0}, {weight: 1}, {weight: 0}}
	for i := 0; i < 100; i++ {
		assert.Equal(t, 1, choose(only, rng))
	}

	skewed := []option{{weight: 0.25}, {weight: 0.75}}
	hits := 0
	n := 20000
	for i := 0; i < n; i++ {
		hits += choose(skewed, rng)
	}
	assert.InDelta(t, 0.75, float64(hits)/float64(n), 0.02)
}

func TestDesirability(t *testing.T) {
	p := DefaultParams()
	p.Alpha, p.Beta, p.Repetition = 2, 3, 0.5
	w := ringWalker(t, p)

	// Zero pheromone is floored
	assert.Equal(t, 0.25*8, w.desirability(0, 2, false))
	assert.Equal(t, 9.0*8, w.desirability(3, 2, false))
	assert.InDelta(t, math.Sqrt(72), w.desirability(3, 2, true), 1e-12)
}

func TestNeighborhoodIsADistribution(t *testing.T) {
	w := ringWalker(t, DefaultParams())
	c := &candidate{vertex: 0, visited: make([]bool, 4)}
	c.visited[0] = true

	options, err := w.neighborhood(c)
	require.NoError(t, err)
	require.Len(t, options, 3)

	total := 0.0
	for _, o := range options {
		total += o.weight
	}
	assert.InDelta(t, 1.0, total, 1e-12)
	// With alpha = beta = 1 and an empty trail the odds follow the overlaps
	assert.InDelta(t, 3.0/6, options[0].weight, 1e-12)
	assert.InDelta(t, 2.0/6, options[1].weight, 1e-12)
	assert.InDelta(t, 1.0/6, options[2].weight, 1e-12)
}

func TestNeighborhoodFallback(t *testing.T) {
	// Neither oligomer overlaps anything, so the fallback to the whole
	// spectrum has no arc to offer either
	inst, err := NewInstance("ACGTT", []string{"ACGT", "GGGC"}, 4)
	require.NoError(t, err)
	g := inst.Graph()
	require.Empty(t, g.OutNeighbors(0))
	require.Zero(t, g.NumArcs())

	p := DefaultParams()
	w := newWalker(g.Snapshot(), &p, inst, 0)
	assert.Equal(t, []int{0, 1}, w.everyone)
	_, err = w.neighborhood(&candidate{vertex: 0, visited: make([]bool, 2)})
	assert.ErrorIs(t, err, ErrSearchDeadEnd)
}

func TestNeighborhoodRevisit(t *testing.T) {
	inst, err := NewInstance("TTTTT", []string{"TTTT"}, 4)
	require.NoError(t, err)
	p := DefaultParams()
	p.Repetition = 0.5
	w := newWalker(inst.Graph().Snapshot(), &p, inst, 0)

	c := &candidate{vertex: 0, visited: []bool{true}}
	options, err := w.neighborhood(c)
	require.NoError(t, err)
	require.Len(t, options, 3)
	// Revisits are penalized, not forbidden: sqrt(0.5*w) for w = 3, 2, 1
	total := math.Sqrt(1.5) + math.Sqrt(1) + math.Sqrt(0.5)
	assert.InDelta(t, math.Sqrt(1.5)/total, options[0].weight, 1e-12)
	assert.InDelta(t, math.Sqrt(0.5)/total, options[2].weight, 1e-12)
}

func TestQualityAndFitness(t *testing.T) {
	assert.Equal(t, 1.0, Quality(4, 4))
	assert.Equal(t, 0.5, Quality(2, 4))
	assert.Equal(t, 1.0, Quality(9, 4))
	assert.Equal(t, 1.0, Quality(1, 0))

	assert.Equal(t, 100.0, Fitness("ACGTACGT", "ACGTACGT"))
	assert.Equal(t, 0.0, Fitness("ACGT", "TGCA"))
	assert.Equal(t, 50.0, Fitness("ACGTACGT", "ACGT"))
	assert.Equal(t, 25.0, Fitness("ACGT", "ACGAGG"))
	assert.Equal(t, -100.0, Fitness("AC", "ACGTAC"))
	assert.Equal(t, 3, HammingWithPadding("ACGT", "ACGAGG"))
	assert.Equal(t, 2, HammingWithPadding("AC", "ACGT"))
	assert.Equal(t, 0.0, Fitness("", "ACGT"))
	assert.Equal(t, 2, HammingWithPadding("ACGT", "AC"))
}
