// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"math"

	"github.com/JackToppen/cellsim/bins"
	"github.com/JackToppen/cellsim/cell"
)

// nearestCache amortizes the per-bin capacity high-water mark for the
// r_near search across steps.
type nearestCache struct {
	binM int
}

func newNearestCache() *nearestCache { return &nearestCache{binM: 5} }

// update caches, per cell, the nearest GATA6-high, NANOG-high, and
// Differentiated neighbor within rNear.
func (nc *nearestCache) update(pop *cell.Population, size [3]float64, rNear float64) {
	n := pop.Len()
	grid := bins.NewGrid(size, rNear, nc.binM)
	grid.Assign(pop.Location)
	nc.binM = grid.M()
	nx, ny, nz := grid.Dims()

	for focus := 0; focus < n; focus++ {
		loc := grid.Loc[focus]
		x, y, z := loc[0], loc[1], loc[2]
		gataIdx, nanogIdx, diffIdx := cell.NoNearest, cell.NoNearest, cell.NoNearest
		gataDist, nanogDist, diffDist := rNear*2, rNear*2, rNear*2

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
					count := grid.Count[xx][yy][zz]
					for slot := 0; slot < count; slot++ {
						current := grid.Slots[xx][yy][zz][slot]
						if current == focus {
							continue
						}
						mag := dist(pop.Location[focus], pop.Location[current])
						if mag > rNear {
							continue
						}
						switch {
						case pop.State[current] == cell.Differentiated:
							if mag < diffDist {
								diffIdx, diffDist = current, mag
							}
						case pop.FDS[current][cell.GATA6] > pop.FDS[current][cell.NANOG]:
							if mag < gataDist {
								gataIdx, gataDist = current, mag
							}
						case pop.FDS[current][cell.NANOG] > pop.FDS[current][cell.GATA6]:
							if mag < nanogDist {
								nanogIdx, nanogDist = current, mag
							}
						}
					}
				}
			}
		}
		pop.NearestGATA6[focus] = gataIdx
		pop.NearestNANOG[focus] = nanogIdx
		pop.NearestDiff[focus] = diffIdx
	}
}

func dist(a, b [3]float64) float64 {
	dx := a[0] - b[0]
	dy := a[1] - b[1]
	dz := a[2] - b[2]
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
