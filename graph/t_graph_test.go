// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package graph

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_graph01(tst *testing.T) {

	chk.PrintTitle("graph01: AddEdge/HasEdge dedupe and order-independence")

	g := New(4)
	g.AddEdge(0, 1)
	g.AddEdge(1, 0) // duplicate, reversed order
	g.AddEdge(2, 3)

	if !g.HasEdge(0, 1) || !g.HasEdge(1, 0) {
		tst.Fatal("edge (0,1) must be visible in either order")
	}
	chk.IntAssert(g.Degree(0), 1)
	chk.IntAssert(g.Degree(1), 1)
	chk.IntAssert(len(g.EdgeList()), 2)
}

func Test_graph02(tst *testing.T) {

	chk.PrintTitle("graph02: Clear drops all edges but keeps vertices")

	g := New(3)
	g.AddEdge(0, 1)
	g.AddEdge(1, 2)
	g.Clear()

	chk.IntAssert(g.N(), 3)
	chk.IntAssert(len(g.EdgeList()), 0)
	chk.IntAssert(g.Degree(0), 0)
}

func Test_graph03(tst *testing.T) {

	chk.PrintTitle("graph03: RemoveVertex renumbers the last vertex into the freed slot")

	g := New(4) // 0,1,2,3
	g.AddEdge(0, 1)
	g.AddEdge(1, 3)
	g.AddEdge(2, 3)

	moved := g.RemoveVertex(1) // vertex 3 (last) takes slot 1
	chk.IntAssert(moved, 3)
	chk.IntAssert(g.N(), 3)

	// vertex 1 now holds what used to be vertex 3: neighbors 1(old-3 via
	// edge with old-1, dropped) and 2 (old edge 2-3).
	if !g.HasEdge(1, 2) {
		tst.Fatal("renumbered vertex must keep its surviving edges")
	}
	if g.HasEdge(0, 1) {
		tst.Fatal("edge (0, old-1) must not survive as (0, renumbered-1)")
	}
}

func Test_graph04(tst *testing.T) {

	chk.PrintTitle("graph04: AddVertex grows N and starts isolated")

	g := New(2)
	i := g.AddVertex()
	chk.IntAssert(i, 2)
	chk.IntAssert(g.N(), 3)
	chk.IntAssert(g.Degree(i), 0)
}

func Test_graph05(tst *testing.T) {

	chk.PrintTitle("graph05: self-loops are rejected")

	defer func() {
		if r := recover(); r == nil {
			tst.Fatal("AddEdge(i,i) should panic")
		}
	}()
	g := New(2)
	g.AddEdge(0, 0)
}
