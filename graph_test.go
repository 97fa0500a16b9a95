/*
 *  graph_test.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanghaibao/acosbh"
)

// ringSpectrum is the spectrum of ACGTACG, every vertex has three out-arcs
var ringSpectrum = []string{"ACGT", "CGTA", "GTAC", "TACG"}

func TestOverlapConcat(t *testing.T) {
	weights := acosbh.Overlaps("ACGTA", "GTAAC", 5)
	require.Contains(t, weights, 3)
	assert.Equal(t, "ACGTAAC", acosbh.Concat("ACGTA", "GTAAC", 3))
}

func TestOverlapsLongestFirst(t *testing.T) {
	assert.Equal(t, []int{3, 2, 1}, acosbh.Overlaps("AAAA", "AAAA", 4))
	assert.Empty(t, acosbh.Overlaps("ACGT", "ACGT", 4))
	// Off-length oligomers still overlap, but never by their full length
	assert.Equal(t, []int{2}, acosbh.Overlaps("ACGTAC", "ACT", 4))
	assert.Equal(t, []int{1}, acosbh.Overlaps("GA", "AAAA", 4))
}

func TestGraphArcs(t *testing.T) {
	g := acosbh.NewOverlapGraph(ringSpectrum, 4)
	require.Equal(t, 4, g.NumVertices())
	require.Equal(t, 12, g.NumArcs())
	require.Len(t, g.Pheromones, g.NumArcs())

	expected := map[acosbh.Pair]int{
		{0, 1}: 3, {0, 2}: 2, {0, 3}: 1,
		{1, 0}: 1, {1, 2}: 3, {1, 3}: 2,
		{2, 0}: 2, {2, 1}: 1, {2, 3}: 3,
		{3, 0}: 3, {3, 1}: 2, {3, 2}: 1,
	}
	for _, arc := range g.Arcs {
		w, ok := expected[acosbh.Pair{From: arc.From, To: arc.To}]
		require.True(t, ok, "unexpected arc %v", arc)
		assert.Equal(t, w, arc.Weight)
	}
	for _, p := range g.Pheromones {
		assert.Zero(t, p)
	}
}

func TestGraphWeightBounds(t *testing.T) {
	gen := acosbh.Generator{Length: 120, K: 6, Negatives: 0.1, Positives: 0.1, Seed: 3}
	inst, err := gen.Run()
	require.NoError(t, err)

	g := inst.Graph()
	require.NotZero(t, g.NumArcs())
	for _, arc := range g.Arcs {
		assert.GreaterOrEqual(t, arc.Weight, 1)
		assert.Less(t, arc.Weight, inst.K)
	}
}

func TestGraphParallelArcs(t *testing.T) {
	g := acosbh.NewOverlapGraph([]string{"AAAA", "CCCC"}, 4)
	arcs := g.ArcsBetween(0, 0)
	assert.Equal(t, 3, arcs.Len())
	assert.Equal(t, []int{3, 2, 1}, arcs.Weights)
	assert.Equal(t, []float64{0, 0, 0}, arcs.Pheromones)
	assert.Equal(t, []int{0, 1, 2}, arcs.IDs)
	assert.Equal(t, []int{0}, g.OutNeighbors(0))

	empty := g.ArcsBetween(0, 1)
	assert.Zero(t, empty.Len())
	assert.Empty(t, empty.Weights)
	assert.Empty(t, empty.Pheromones)
}

func TestGraphOutNeighbors(t *testing.T) {
	g := acosbh.NewOverlapGraph(ringSpectrum, 4)
	assert.Equal(t, []int{1, 2, 3}, g.OutNeighbors(0))
	assert.Equal(t, []int{0, 2, 3}, g.OutNeighbors(1))

	lonely := acosbh.NewOverlapGraph([]string{"ACGT"}, 4)
	assert.Empty(t, lonely.OutNeighbors(0))
}

func TestFindEntryVertex(t *testing.T) {
	g := acosbh.NewOverlapGraph(ringSpectrum, 4)

	v, err := g.FindEntryVertex("GTA", acosbh.Left)
	require.NoError(t, err)
	assert.Equal(t, 2, v)

	v, err = g.FindEntryVertex("CG", acosbh.Right)
	require.NoError(t, err)
	assert.Equal(t, 3, v)

	_, err = g.FindEntryVertex("TTTT", acosbh.Left)
	require.Error(t, err)
	assert.True(t, errors.Is(err, acosbh.ErrEntryNotFound))
}

func TestEvaporateHalves(t *testing.T) {
	g := acosbh.NewOverlapGraph(ringSpectrum, 4)
	for arc := range g.Arcs {
		g.Deposit(arc, float64(arc+1))
	}
	before := append([]float64(nil), g.Pheromones...)

	g.Evaporate(0.5)
	for i := range before {
		assert.Equal(t, before[i]/2, g.Pheromones[i])
	}

	for i := 0; i < 200; i++ {
		g.Evaporate(0.5)
	}
	for _, p := range g.Pheromones {
		assert.GreaterOrEqual(t, p, 0.0)
		assert.Less(t, p, 1e-50)
	}
}

func TestDepositIsAdditive(t *testing.T) {
	g := acosbh.NewOverlapGraph(ringSpectrum, 4)
	g.Deposit(5, 0.25)
	prior := g.Pheromones[5]
	g.Deposit(5, 1.5)
	g.Deposit(5, 1.5)
	assert.Equal(t, prior+3.0, g.Pheromones[5])

	// No ceiling
	for i := 0; i < 1000; i++ {
		g.Deposit(5, 1e6)
	}
	assert.Greater(t, g.Pheromones[5], 1e9)
}

func TestSnapshotIsFrozen(t *testing.T) {
	g := acosbh.NewOverlapGraph(ringSpectrum, 4)
	g.Deposit(0, 2)
	view := g.Snapshot()

	g.Deposit(0, 5)
	g.Evaporate(0.5)

	assert.Equal(t, []float64{2}, view.ArcsBetween(0, 1).Pheromones)
	assert.Equal(t, []float64{3.5}, g.ArcsBetween(0, 1).Pheromones)
	assert.Equal(t, 2.0, view.TotalPheromone())

	g.Reset()
	assert.Equal(t, []float64{0}, g.ArcsBetween(0, 1).Pheromones)
	assert.Equal(t, 2.0, view.TotalPheromone())
}

func TestPheromoneMatrix(t *testing.T) {
	g := acosbh.NewOverlapGraph([]string{"AAAA", "CCCC"}, 4)
	g.Deposit(0, 1)
	g.Deposit(2, 0.5)
	m := g.PheromoneMatrix()
	r, c := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	assert.Equal(t, 1.5, m.At(0, 0))
	assert.Zero(t, m.At(0, 1))
}
