/*
 *  graph.go
 *  acosbh
 *
 *  Created by Haibao Tang on 10/19/26
 *  Copyright © 2026 Haibao Tang. All rights reserved.
 */

package acosbh

import (
	"fmt"
	"strings"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// Side tells FindEntryVertex which end of a label to match
type Side int

const (
	// Left matches the prefix of a label
	Left Side = iota
	// Right matches the suffix of a label
	Right
)

// String outputs the string representation of Side
func (s Side) String() string {
	if s == Right {
		return "right"
	}
	return "left"
}

// Arc is one suffix/prefix overlap between two oligomers
type Arc struct {
	From   int
	To     int
	Weight int
}

// Pair is an ordered (from, to) vertex pair
type Pair struct {
	From int
	To   int
}

// ArcSet holds parallel slices describing all arcs between two vertices
type ArcSet struct {
	Weights    []int
	Pheromones []float64
	IDs        []int
}

// Len returns the number of arcs in the set
func (r ArcSet) Len() int {
	return len(r.IDs)
}

// OverlapGraph is the directed multigraph over a spectrum. Vertex i is
// Spectrum[i]; Arcs and Pheromones are indexed by arc id. Topology is fixed
// after NewOverlapGraph, only Pheromones change.
type OverlapGraph struct {
	Spectrum   []string
	K          int
	Arcs       []Arc
	Pheromones []float64
	arcIndex   map[Pair][]int // (from, to) => arc ids
	out        [][]int        // from => distinct out-neighbors
}

// Overlaps lists every overlap length w with 1 <= w < k such that the
// length-w suffix of a equals the length-w prefix of b, longest first.
// w is also kept below len(a) and len(b) so that oligomers off the nominal
// length still overlap properly and every extension adds a base.
func Overlaps(a, b string, k int) []int {
	var weights []int
	hi := minInt(k-1, minInt(len(a)-1, len(b)-1))
	for w := hi; w >= 1; w-- {
		if a[len(a)-w:] == b[:w] {
			weights = append(weights, w)
		}
	}
	return weights
}

// NewOverlapGraph builds all arcs for every ordered pair (i, j), including
// self loops, with pheromones set to 0
func NewOverlapGraph(spectrum []string, k int) *OverlapGraph {
	n := len(spectrum)
	g := &OverlapGraph{
		Spectrum: spectrum,
		K:        k,
		arcIndex: make(map[Pair][]int),
		out:      make([][]int, n),
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			weights := Overlaps(spectrum[i], spectrum[j], k)
			if len(weights) == 0 {
				continue
			}
			pair := Pair{i, j}
			for _, w := range weights {
				g.arcIndex[pair] = append(g.arcIndex[pair], len(g.Arcs))
				g.Arcs = append(g.Arcs, Arc{From: i, To: j, Weight: w})
			}
			g.out[i] = append(g.out[i], j)
		}
	}
	g.Pheromones = make([]float64, len(g.Arcs))
	log.Noticef("Graph contains %d vertices and %d arcs (k = %d)", n, len(g.Arcs), k)
	return g
}

// NumVertices returns the size of the spectrum
func (r *OverlapGraph) NumVertices() int {
	return len(r.Spectrum)
}

// NumArcs returns the number of arcs, parallel arcs included
func (r *OverlapGraph) NumArcs() int {
	return len(r.Arcs)
}

// Label returns the oligomer of a vertex
func (r *OverlapGraph) Label(v int) string {
	return r.Spectrum[v]
}

// FindEntryVertex returns the first vertex whose label starts (Left) or ends
// (Right) with pattern
func (r *OverlapGraph) FindEntryVertex(pattern string, side Side) (int, error) {
	for i, label := range r.Spectrum {
		if side == Left && strings.HasPrefix(label, pattern) {
			return i, nil
		}
		if side == Right && strings.HasSuffix(label, pattern) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: no %s match for %q", ErrEntryNotFound, side, pattern)
}

// OutNeighbors returns the distinct vertices reachable by at least one arc
// out of v. The returned slice must not be modified.
func (r *OverlapGraph) OutNeighbors(v int) []int {
	return r.out[v]
}

// ArcsBetween collects all arcs from i to j with their current pheromones
func (r *OverlapGraph) ArcsBetween(i, j int) ArcSet {
	return r.arcsBetween(r.Pheromones, i, j)
}

func (r *OverlapGraph) arcsBetween(pheromones []float64, i, j int) ArcSet {
	ids := r.arcIndex[Pair{i, j}]
	set := ArcSet{
		Weights:    make([]int, len(ids)),
		Pheromones: make([]float64, len(ids)),
		IDs:        make([]int, len(ids)),
	}
	for a, id := range ids {
		set.Weights[a] = r.Arcs[id].Weight
		set.Pheromones[a] = pheromones[id]
		set.IDs[a] = id
	}
	return set
}

// Evaporate multiplies every pheromone by (1 - rate)
func (r *OverlapGraph) Evaporate(rate float64) {
	floats.Scale(1-rate, r.Pheromones)
}

// Deposit adds amount to the pheromone of one arc. There is no ceiling.
func (r *OverlapGraph) Deposit(arc int, amount float64) {
	r.Pheromones[arc] += amount
}

// Reset sets every pheromone back to 0
func (r *OverlapGraph) Reset() {
	for i := range r.Pheromones {
		r.Pheromones[i] = 0
	}
}

// Snapshot freezes the current pheromones into a read-only view that is safe
// to share between walkers while the graph itself keeps changing
func (r *OverlapGraph) Snapshot() *GraphView {
	pheromones := make([]float64, len(r.Pheromones))
	copy(pheromones, r.Pheromones)
	return &GraphView{graph: r, pheromones: pheromones}
}

// PheromoneMatrix sums the pheromones of parallel arcs into a vertex x vertex
// matrix, handy for plotting the trail as a heatmap
func (r *OverlapGraph) PheromoneMatrix() *mat64.Dense {
	n := r.NumVertices()
	m := mat64.NewDense(n, n, nil)
	for id, arc := range r.Arcs {
		m.Set(arc.From, arc.To, m.At(arc.From, arc.To)+r.Pheromones[id])
	}
	return m
}

// GraphView is the graph as seen by the walkers during one cycle
type GraphView struct {
	graph      *OverlapGraph
	pheromones []float64
}

// Len returns the number of vertices
func (r *GraphView) Len() int {
	return r.graph.NumVertices()
}

// Label returns the oligomer of a vertex
func (r *GraphView) Label(v int) string {
	return r.graph.Label(v)
}

// FindEntryVertex delegates to the underlying graph
func (r *GraphView) FindEntryVertex(pattern string, side Side) (int, error) {
	return r.graph.FindEntryVertex(pattern, side)
}

// OutNeighbors delegates to the underlying graph
func (r *GraphView) OutNeighbors(v int) []int {
	return r.graph.OutNeighbors(v)
}

// ArcsBetween collects all arcs from i to j with their frozen pheromones
func (r *GraphView) ArcsBetween(i, j int) ArcSet {
	return r.graph.arcsBetween(r.pheromones, i, j)
}

// TotalPheromone sums the frozen trail
func (r *GraphView) TotalPheromone() float64 {
	return floats.Sum(r.pheromones)
}
