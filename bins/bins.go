// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bins implements the uniform spatial grid used to support
// fixed-radius neighbor queries.
package bins

import (
	"math"

	"github.com/cpmech/gosl/io"
)

// Grid is a uniform binning of 3-vector positions with cell side d. Two
// parallel arrays are produced on each Assign: Count (occupancy) and
// Slots (cell indices), plus Loc (each point's own bin coordinate, cached
// for consumers that would otherwise recompute it).
type Grid struct {
	d          float64
	nx, ny, nz int
	m          int // current per-bin capacity (high-water mark; never shrinks)

	Count [][][]int     // Count[x][y][z]
	Slots [][][][]int   // Slots[x][y][z][slot]
	Loc   [][3]int      // Loc[i] = (x,y,z) bin of cell i
}

// NewGrid allocates a grid covering [0,size] with cell side d. mHint
// seeds the initial per-bin capacity estimate.
func NewGrid(size [3]float64, d float64, mHint int) *Grid {
	if d <= 0 {
		io.Pfred("bins: non-positive search distance %g, clamping to 1e-9\n", d)
		d = 1e-9
	}
	if mHint < 1 {
		mHint = 1
	}
	g := &Grid{d: d, m: mHint}
	g.nx = int(math.Ceil(size[0]/d)) + 3
	g.ny = int(math.Ceil(size[1]/d)) + 3
	g.nz = int(math.Ceil(size[2]/d)) + 3
	if g.nz < 1 {
		g.nz = 1
	}
	return g
}

// M returns the current per-bin capacity high-water mark.
func (g *Grid) M() int { return g.m }

// bin maps a position to its (x,y,z) bin coordinate, with a +1 padding
// offset so every legal point has neighbor bins on all sides.
func (g *Grid) bin(p [3]float64) [3]int {
	x := int(p[0]/g.d) + 1
	y := int(p[1]/g.d) + 1
	z := int(p[2]/g.d) + 1
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	if z < 0 {
		z = 0
	}
	if x >= g.nx {
		x = g.nx - 1
	}
	if y >= g.ny {
		y = g.ny - 1
	}
	if z >= g.nz {
		z = g.nz - 1
	}
	return [3]int{x, y, z}
}

func alloc3Count(nx, ny, nz int) [][][]int {
	c := make([][][]int, nx)
	for x := range c {
		c[x] = make([][]int, ny)
		for y := range c[x] {
			c[x][y] = make([]int, nz)
		}
	}
	return c
}

func alloc4Slots(nx, ny, nz, m int) [][][][]int {
	s := make([][][][]int, nx)
	for x := range s {
		s[x] = make([][][]int, ny)
		for y := range s[x] {
			s[x][y] = make([][]int, nz)
			for z := range s[x][y] {
				s[x][y][z] = make([]int, m)
			}
		}
	}
	return s
}

// Assign bins every position in locs, doubling the per-bin capacity and
// retrying until every bin's occupancy fits. Overflow is recovered
// locally and never surfaced as an error.
func (g *Grid) Assign(locs [][3]float64) {
	g.Loc = make([][3]int, len(locs))
	for i, p := range locs {
		g.Loc[i] = g.bin(p)
	}
	for {
		count := alloc3Count(g.nx, g.ny, g.nz)
		slots := alloc4Slots(g.nx, g.ny, g.nz, g.m)
		overflow := false
		for i, b := range g.Loc {
			x, y, z := b[0], b[1], b[2]
			n := count[x][y][z]
			if n >= g.m {
				overflow = true
				continue
			}
			slots[x][y][z][n] = i
			count[x][y][z] = n + 1
		}
		if overflow {
			g.m *= 2
			continue
		}
		g.Count = count
		g.Slots = slots
		return
	}
}

// Dims returns the bin-grid extents (nx, ny, nz).
func (g *Grid) Dims() (int, int, int) { return g.nx, g.ny, g.nz }
