// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sim

import (
	"github.com/JackToppen/cellsim/cell"
	"github.com/JackToppen/cellsim/rng"
)

// motilityForce is the constant active-force magnitude used by both
// rulesets below.
const motilityForce = 2e-9

// normalOrZero returns the unit vector along v, or the zero vector if v
// has zero magnitude.
func normalOrZero(v [3]float64) [3]float64 {
	mag := dist([3]float64{}, v)
	if mag == 0 {
		return [3]float64{}
	}
	return [3]float64{v[0] / mag, v[1] / mag, v[2] / mag}
}

func sub3(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func scaleAdd(dst *[3]float64, v [3]float64, s float64) {
	dst[0] += v[0] * s
	dst[1] += v[1] * s
	dst[2] += v[2] * s
}

// motilityPhase applies the configured motility ruleset to every cell,
// writing motility_force and motion.
func (d *Driver) motilityPhase() {
	for i := 0; i < d.Pop.Len(); i++ {
		s := d.streamFor(i, "motility")
		if d.Config.AltMotility {
			d.altMotilityOne(i, &s)
		} else {
			d.motilityOne(i, &s)
		}
	}
}

// motilityOne is the primary ruleset: degree ≥ 6 means quiescent,
// otherwise the rule branches on cell type and GATA6/NANOG balance,
// falling back to a random unit-vector nudge whenever no guidance
// target is cached.
func (d *Driver) motilityOne(i int, s *rng.Stream) {
	deg := d.Prox.Degree(i)
	pop := d.Pop
	if deg >= 6 {
		pop.Motion[i] = false
		return
	}
	pop.Motion[i] = true

	switch {
	case pop.State[i] == cell.Differentiated:
		var sum [3]float64
		count := 0
		for _, nb := range d.Prox.Neighbors(i) {
			if pop.FDS[nb][cell.NANOG] > pop.FDS[nb][cell.GATA6] {
				v := sub3(pop.Location[nb], pop.Location[i])
				sum[0] += v[0]
				sum[1] += v[1]
				sum[2] += v[2]
				count++
			}
		}
		if count > 0 {
			n := normalOrZero(sum)
			scaleAdd(&pop.MotilityForce[i], n, -motilityForce)
		} else {
			scaleAdd(&pop.MotilityForce[i], s.UnitVector(pop.ThreeD), motilityForce)
		}

	case pop.FDS[i][cell.GATA6] > pop.FDS[i][cell.NANOG]:
		if target := pop.NearestDiff[i]; target != cell.NoNearest {
			n := normalOrZero(sub3(pop.Location[target], pop.Location[i]))
			scaleAdd(&pop.MotilityForce[i], n, motilityForce)
		} else {
			scaleAdd(&pop.MotilityForce[i], s.UnitVector(pop.ThreeD), motilityForce)
		}

	case pop.FDS[i][cell.NANOG] > pop.FDS[i][cell.GATA6]:
		if d.Config.EunbiMove {
			switch {
			case pop.NearestGATA6[i] != cell.NoNearest:
				n := normalOrZero(sub3(pop.Location[pop.NearestGATA6[i]], pop.Location[i]))
				scaleAdd(&pop.MotilityForce[i], n, -motilityForce)
			case pop.NearestNANOG[i] != cell.NoNearest:
				n := normalOrZero(sub3(pop.Location[pop.NearestNANOG[i]], pop.Location[i]))
				scaleAdd(&pop.MotilityForce[i], n, motilityForce)
			default:
				scaleAdd(&pop.MotilityForce[i], s.UnitVector(pop.ThreeD), motilityForce)
			}
		} else {
			scaleAdd(&pop.MotilityForce[i], s.UnitVector(pop.ThreeD), motilityForce)
		}

	default:
		scaleAdd(&pop.MotilityForce[i], s.UnitVector(pop.ThreeD), motilityForce)
	}
}

// altMotilityOne is the alternate, NetLogo-style ruleset, selected by
// the alt_motility configuration flag.
func (d *Driver) altMotilityOne(i int, s *rng.Stream) {
	pop := d.Pop
	if !pop.Motion[i] {
		return
	}
	if d.Prox.Degree(i) >= 6 {
		pop.Motion[i] = false
		return
	}

	switch {
	case pop.State[i] == cell.Differentiated:
		if target := pop.NearestNANOG[i]; target != cell.NoNearest {
			n := normalOrZero(sub3(pop.Location[target], pop.Location[i]))
			scaleAdd(&pop.MotilityForce[i], n, -motilityForce)
		} else {
			scaleAdd(&pop.MotilityForce[i], s.UnitVector(pop.ThreeD), motilityForce)
		}

	case pop.FDS[i][cell.GATA6] > pop.FDS[i][cell.NANOG]:
		if target := pop.NearestDiff[i]; target != cell.NoNearest {
			n := normalOrZero(sub3(pop.Location[target], pop.Location[i]))
			scaleAdd(&pop.MotilityForce[i], n, motilityForce)
		} else {
			scaleAdd(&pop.MotilityForce[i], s.UnitVector(pop.ThreeD), motilityForce)
		}

	case pop.FDS[i][cell.NANOG] > pop.FDS[i][cell.GATA6]:
		switch {
		case pop.NearestNANOG[i] != cell.NoNearest:
			n := normalOrZero(sub3(pop.Location[pop.NearestNANOG[i]], pop.Location[i]))
			scaleAdd(&pop.MotilityForce[i], n, motilityForce*0.8)
			scaleAdd(&pop.MotilityForce[i], s.UnitVector(pop.ThreeD), motilityForce*0.2)
		case pop.NearestGATA6[i] != cell.NoNearest:
			n := normalOrZero(sub3(pop.Location[pop.NearestGATA6[i]], pop.Location[i]))
			scaleAdd(&pop.MotilityForce[i], n, -motilityForce)
		default:
			scaleAdd(&pop.MotilityForce[i], s.UnitVector(pop.ThreeD), motilityForce)
		}

	default:
		scaleAdd(&pop.MotilityForce[i], s.UnitVector(pop.ThreeD), motilityForce)
	}
}
