// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package lifecycle implements the cell life-cycle scheduler: three
// per-cell marking passes (death, contact-induced differentiation,
// division) followed by the bulk structural mutation that applies them,
// staggered through contact.Mechanics by group_size.
package lifecycle

import (
	"sort"

	"github.com/JackToppen/cellsim/cell"
	"github.com/JackToppen/cellsim/contact"
	"github.com/JackToppen/cellsim/graph"
	"github.com/JackToppen/cellsim/rng"
)

// Thresholds bundles the degree/counter thresholds and growth-rate
// constants the scheduler passes read.
type Thresholds struct {
	TDivP, TDivD, TDeath                int
	DLonely, DContactInh, DDiffSurround int
	RMin, RMax                          float64
	PluriGrowth, DiffGrowth             float64
	Modulus                             int
}

// Death marks Pluripotent cells with too few proximity neighbors for
// removal once death_counter reaches T_death.
func Death(pop *cell.Population, prox *graph.Graph, th Thresholds, toRemove *[]int) {
	for i := 0; i < pop.Len(); i++ {
		if pop.State[i] != cell.Pluripotent {
			continue
		}
		if prox.Degree(i) < th.DLonely {
			pop.DeathCounter[i]++
		} else {
			pop.DeathCounter[i] = 0
		}
		if pop.DeathCounter[i] >= th.TDeath {
			*toRemove = append(*toRemove, i)
		}
	}
}

// DiffSurround forces a Pluripotent, GATA6-low cell to full GATA6/zero
// NANOG once it is surrounded by D_diff_surround Differentiated
// proximity neighbors.
func DiffSurround(pop *cell.Population, prox *graph.Graph, th Thresholds) {
	for i := 0; i < pop.Len(); i++ {
		if pop.State[i] != cell.Pluripotent || pop.FDS[i][cell.GATA6] >= th.Modulus-1 {
			continue
		}
		count := 0
		for _, nb := range prox.Neighbors(i) {
			if pop.State[nb] == cell.Differentiated {
				count++
			}
			if count >= th.DDiffSurround {
				pop.FDS[i][cell.GATA6] = th.Modulus - 1
				pop.FDS[i][cell.NANOG] = 0
				break
			}
		}
	}
}

// Growth advances radius linearly with div_counter up to r_max.
func Growth(pop *cell.Population, th Thresholds) {
	for i := 0; i < pop.Len(); i++ {
		if pop.Radius[i] >= th.RMax {
			continue
		}
		rate := th.DiffGrowth
		if pop.State[i] == cell.Pluripotent {
			rate = th.PluriGrowth
		}
		r := rate*float64(pop.DivCounter[i]) + th.RMin
		if r > th.RMax {
			r = th.RMax
		}
		pop.Radius[i] = r
	}
}

// Division marks cells for division: Pluripotent cells unconditionally
// past T_div_p, Differentiated cells past T_div_d AND below the contact-
// inhibition proximity degree; otherwise the division
// counter is stochastically incremented by a per-cell Bernoulli(½) draw.
func Division(pop *cell.Population, prox *graph.Graph, th Thresholds, toDivide *[]int, streams func(i int) rng.Stream) {
	for i := 0; i < pop.Len(); i++ {
		s := streams(i)
		if pop.State[i] == cell.Pluripotent {
			if pop.DivCounter[i] >= th.TDivP {
				*toDivide = append(*toDivide, i)
			} else if s.Bernoulli(0.5) {
				pop.DivCounter[i]++
			}
		} else {
			if pop.DivCounter[i] >= th.TDivD {
				if prox.Degree(i) < th.DContactInh {
					*toDivide = append(*toDivide, i)
				}
			} else if s.Bernoulli(0.5) {
				pop.DivCounter[i]++
			}
		}
	}
}

// BulkMutate applies the accumulated toDivide/toRemove marks as a single
// atomic structural step: divisions are appended first (staggered
// through mechanics.Run every groupSize appends if groupSize>0), then
// removals are applied in descending index order so compaction never
// invalidates an index still to be processed.
func BulkMutate(pop *cell.Population, prox, contactG *graph.Graph, toDivide, toRemove []int, groupSize int,
	mechanics *contact.Mechanics, size [3]float64, rMax, rMin, dtMove, dtStep float64, threeD bool, streams func(i int) rng.Stream) {

	sinceGroup := 0
	for _, p := range toDivide {
		d := pop.AppendCopy(p)
		prox.AddVertex()
		contactG.AddVertex()

		s := streams(p)
		offset := s.UnitVector(threeD)
		mag := rMax - rMin
		for k := 0; k < 3; k++ {
			pop.Location[p][k] += offset[k] * mag
			pop.Location[d][k] -= offset[k] * mag
			pop.Location[p][k] = clamp(pop.Location[p][k], 0, size[k])
			pop.Location[d][k] = clamp(pop.Location[d][k], 0, size[k])
		}
		pop.Radius[p] = rMin
		pop.Radius[d] = rMin
		pop.DivCounter[p] = 0
		pop.DivCounter[d] = 0

		if groupSize > 0 {
			sinceGroup++
			if sinceGroup == groupSize {
				mechanics.Run(pop, contactG, size, rMax, dtMove, dtStep)
				sinceGroup = 0
			}
		}
	}
	if groupSize > 0 && sinceGroup > 0 {
		mechanics.Run(pop, contactG, size, rMax, dtMove, dtStep)
	}

	sorted := append([]int(nil), toRemove...)
	sort.Sort(sort.Reverse(sort.IntSlice(sorted)))
	for _, i := range sorted {
		pop.RemoveSwap(i)
		prox.RemoveVertex(i)
		contactG.RemoveVertex(i)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
