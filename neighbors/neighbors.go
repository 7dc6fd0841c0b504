// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package neighbors implements a fixed-radius neighbor search: for each
// focus cell, scan its bin and the 26 surrounding bins of a bins.Grid
// and emit an edge for every candidate satisfying a predicate, with i<j
// ordering to avoid double-counting.
package neighbors

import "github.com/JackToppen/cellsim/bins"

// Searcher holds the per-cell edge-slab capacity high-water mark,
// amortized across calls the same way bins.Grid remembers its per-bin
// capacity.
type Searcher struct {
	eMax int
}

// NewSearcher returns a searcher seeded with an initial per-cell edge
// capacity estimate.
func NewSearcher(eMaxHint int) *Searcher {
	if eMaxHint < 1 {
		eMaxHint = 1
	}
	return &Searcher{eMax: eMaxHint}
}

// EMax returns the current per-cell edge-capacity high-water mark.
func (s *Searcher) EMax() int { return s.eMax }

// Predicate decides whether candidate pair (i,j), i<j, is an edge.
type Predicate func(i, j int) bool

// Search scans grid's 27-bin neighborhoods for every one of the n
// focus cells, emitting (i,j) with i<j wherever pred holds. Retries with
// a doubled eMax whenever any cell's true edge count exceeds capacity;
// the overflow is recovered locally and never surfaced.
func (s *Searcher) Search(n int, grid *bins.Grid, pred Predicate) [][2]int {
	nx, ny, nz := grid.Dims()
	for {
		slabLen := n * s.eMax
		edges := make([][2]int, slabLen)
		ifEdge := make([]bool, slabLen)
		count := make([]int, n)
		overflow := false

		for i := 0; i < n; i++ {
			loc := grid.Loc[i]
			x, y, z := loc[0], loc[1], loc[2]
			c := 0
			for dx := -1; dx <= 1; dx++ {
				xx := x + dx
				if xx < 0 || xx >= nx {
					continue
				}
				for dy := -1; dy <= 1; dy++ {
					yy := y + dy
					if yy < 0 || yy >= ny {
						continue
					}
					for dz := -1; dz <= 1; dz++ {
						zz := z + dz
						if zz < 0 || zz >= nz {
							continue
						}
						bcount := grid.Count[xx][yy][zz]
						for slot := 0; slot < bcount; slot++ {
							j := grid.Slots[xx][yy][zz][slot]
							if i < j && pred(i, j) {
								if c < s.eMax {
									idx := i*s.eMax + c
									edges[idx] = [2]int{i, j}
									ifEdge[idx] = true
								}
								c++
							}
						}
					}
				}
			}
			count[i] = c
			if c > s.eMax {
				overflow = true
			}
		}

		if overflow {
			s.eMax *= 2
			continue
		}

		out := make([][2]int, 0, n)
		for idx, f := range ifEdge {
			if f {
				out = append(out, edges[idx])
			}
		}
		return out
	}
}

// dist2 returns squared Euclidean distance between two 3-vectors.
func dist2(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return dx*dx + dy*dy + dz*dz
}

// Proximity returns the predicate ‖x_i-x_j‖ ≤ rn.
func Proximity(locs [][3]float64, rn float64) Predicate {
	rn2 := rn * rn
	return func(i, j int) bool {
		return dist2(locs[i], locs[j]) <= rn2
	}
}

// Contact returns the JKR-candidacy predicate r_i + r_j - ‖x_i-x_j‖ ≥ 0,
// i.e. the spheres already overlap or touch.
func Contact(locs [][3]float64, radii []float64) Predicate {
	return func(i, j int) bool {
		dx := locs[i][0] - locs[j][0]
		dy := locs[i][1] - locs[j][1]
		dz := locs[i][2] - locs[j][2]
		mag2 := dx*dx + dy*dy + dz*dz
		sum := radii[i] + radii[j]
		return sum*sum >= mag2
	}
}
