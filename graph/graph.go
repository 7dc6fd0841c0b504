// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package graph adapts katalvlaran/lvlath's string-keyed, non-compacting
// core.Graph into the dense, compacting cell-indexed graph the simulator
// requires. lvlath never renumbers vertices on removal; this package owns
// that renumbering so that graph vertex i always corresponds to cell i of
// the population's structure-of-arrays, even across insertions and the
// swap-with-last compaction used by cell.Population.RemoveSwap.
package graph

import (
	"strconv"

	"github.com/cpmech/gosl/chk"
	"github.com/katalvlaran/lvlath/core"
)

// Graph is one of the two cell-indexed undirected graphs (proximity or
// contact). It is backed by an lvlath core.Graph whose vertex IDs are the
// decimal string form of the dense cell index.
type Graph struct {
	g *core.Graph
	n int
}

// New returns an empty graph with n vertices, 0..n-1.
func New(n int) *Graph {
	o := &Graph{g: core.NewGraph()}
	for i := 0; i < n; i++ {
		o.AddVertex()
	}
	return o
}

func vid(i int) string { return strconv.Itoa(i) }

// N returns the vertex count, which must always equal the population
// length.
func (o *Graph) N() int { return o.n }

// AddVertex appends one new vertex, returning its index (== o.N()-1
// after the call). Used by division.
func (o *Graph) AddVertex() int {
	i := o.n
	if err := o.g.AddVertex(vid(i)); err != nil {
		chk.Panic("graph: AddVertex(%d): %v", i, err)
	}
	o.n++
	return i
}

// RemoveVertex deletes vertex i and renumbers the last vertex (n-1) to
// take its place, mirroring cell.Population.RemoveSwap so that vertex
// indices stay aligned with the SOA after compaction. Returns the index
// that was renumbered into slot i, or -1 if i was already last.
func (o *Graph) RemoveVertex(i int) int {
	if i < 0 || i >= o.n {
		chk.Panic("graph: RemoveVertex index %d out of range [0,%d)", i, o.n)
	}
	last := o.n - 1
	moved := -1
	if i != last {
		// Capture last's neighbors before touching anything.
		neighIDs, err := o.g.NeighborIDs(vid(last))
		if err != nil {
			chk.Panic("graph: NeighborIDs(%d): %v", last, err)
		}
		// Drop i and its own edges first, so the edges we re-home below
		// are the only edges vertex i ends up with.
		if err := o.g.RemoveVertex(vid(i)); err != nil {
			chk.Panic("graph: RemoveVertex(%d): %v", i, err)
		}
		// Re-create the slot explicitly: AddEdge below would do it
		// implicitly, but last may have had no surviving neighbors.
		if err := o.g.AddVertex(vid(i)); err != nil {
			chk.Panic("graph: AddVertex(%d): %v", i, err)
		}
		for _, nb := range neighIDs {
			if nb == vid(i) {
				continue // the edge (i,last) is dropped along with vertex i
			}
			u, v := lowHigh(i, atoi(nb))
			if _, err := o.g.AddEdge(vid(u), vid(v), 0); err != nil {
				chk.Panic("graph: reinsert edge (%d,%d): %v", u, v, err)
			}
		}
		if err := o.g.RemoveVertex(vid(last)); err != nil {
			chk.Panic("graph: RemoveVertex(%d): %v", last, err)
		}
		moved = last
	} else {
		if err := o.g.RemoveVertex(vid(i)); err != nil {
			chk.Panic("graph: RemoveVertex(%d): %v", i, err)
		}
	}
	o.n--
	return moved
}

// AddEdge adds the undirected edge (u,v), 0 ≤ u < v < N, merging
// duplicates. Self-loops are rejected.
func (o *Graph) AddEdge(u, v int) {
	if u == v {
		chk.Panic("graph: self-loop at %d rejected", u)
	}
	lo, hi := lowHigh(u, v)
	if o.g.HasEdge(vid(lo), vid(hi)) {
		return
	}
	if _, err := o.g.AddEdge(vid(lo), vid(hi), 0); err != nil {
		chk.Panic("graph: AddEdge(%d,%d): %v", lo, hi, err)
	}
}

// HasEdge reports whether (u,v) is present, in either argument order.
func (o *Graph) HasEdge(u, v int) bool {
	lo, hi := lowHigh(u, v)
	return o.g.HasEdge(vid(lo), vid(hi))
}

// RemoveEdge drops (u,v) if present; a no-op otherwise.
func (o *Graph) RemoveEdge(u, v int) {
	lo, hi := lowHigh(u, v)
	edges, err := o.g.Neighbors(vid(lo))
	if err != nil {
		chk.Panic("graph: Neighbors(%d): %v", lo, err)
	}
	for _, e := range edges {
		if (e.From == vid(lo) && e.To == vid(hi)) || (e.From == vid(hi) && e.To == vid(lo)) {
			if err := o.g.RemoveEdge(e.ID); err != nil {
				chk.Panic("graph: RemoveEdge(%s): %v", e.ID, err)
			}
			return
		}
	}
}

// Clear removes every edge while keeping all N vertices. The proximity
// graph is cleared and rebuilt once per macro-step.
func (o *Graph) Clear() {
	for _, e := range o.g.Edges() {
		if err := o.g.RemoveEdge(e.ID); err != nil {
			chk.Panic("graph: RemoveEdge(%s): %v", e.ID, err)
		}
	}
}

// Degree returns the undirected degree of vertex i.
func (o *Graph) Degree(i int) int {
	_, _, deg, err := o.g.Degree(vid(i))
	if err != nil {
		chk.Panic("graph: Degree(%d): %v", i, err)
	}
	return deg
}

// Neighbors returns the neighbor indices of vertex i, in no particular
// order.
func (o *Graph) Neighbors(i int) []int {
	ids, err := o.g.NeighborIDs(vid(i))
	if err != nil {
		chk.Panic("graph: NeighborIDs(%d): %v", i, err)
	}
	out := make([]int, len(ids))
	for k, id := range ids {
		out[k] = atoi(id)
	}
	return out
}

// EdgeList returns every edge (u,v) with u<v.
func (o *Graph) EdgeList() [][2]int {
	var out [][2]int
	for _, e := range o.g.Edges() {
		u, v := lowHigh(atoi(e.From), atoi(e.To))
		out = append(out, [2]int{u, v})
	}
	return out
}

func lowHigh(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		chk.Panic("graph: malformed vertex id %q: %v", s, err)
	}
	return n
}
