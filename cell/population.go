// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cell holds the cell population as a structure-of-arrays keyed by
// a dense index i ∈ [0, N). Arrays grow by append and shrink by
// compact-delete; no field is ever addressed by anything but this index
// within a step.
package cell

import (
	"github.com/JackToppen/cellsim/rng"
	"github.com/cpmech/gosl/chk"
)

// State is the coarse cell-type tag. Transitions are one-way: Pluripotent
// never returns from Differentiated.
type State int

const (
	Pluripotent State = iota
	Differentiated
)

// NoNearest marks the absence of a cached nearest-neighbor-of-type index.
const NoNearest = -1

// fds field indices, in the (FGFR, ERK, GATA6, NANOG) order the pathway
// polynomials are written in.
const (
	FGFR = 0
	ERK  = 1
	GATA6 = 2
	NANOG = 3
)

// Population is the structure-of-arrays cell store. Every slice has
// length N; index i addresses cell i's fields across all slices.
type Population struct {
	ThreeD bool // 3D mode (location[2]/size[2] meaningful) vs 2D

	Location      [][3]float64 // position
	Radius        []float64    // mechanical radius, r_min..r_max
	Mass          []float64    // tracked and reported; friction uses radius, not mass
	MotilityForce [][3]float64 // active force, zeroed each integration window
	JKRForce      [][3]float64 // accumulated adhesive/repulsive force
	Velocity      [][3]float64 // last sub-step's Stokes velocity
	Motion        []bool       // whether active motility applies this step
	State         []State

	FDS [][4]int // (FGFR, ERK, GATA6, NANOG) mod Modulus

	DivCounter   []int
	DiffCounter  []int
	DeathCounter []int
	FDSCounter   []int

	NearestGATA6 []int
	NearestNANOG []int
	NearestDiff  []int
}

// New returns an empty population.
func New(threeD bool) *Population {
	return &Population{ThreeD: threeD}
}

// Len returns N, the current cell count.
func (p *Population) Len() int {
	return len(p.Radius)
}

// Append adds one cell with the given initial fields, seeding its counters
// with a random fraction of their eventual thresholds (rather than zero)
// so a freshly-initialized population does not transition in lockstep.
func (p *Population) Append(loc [3]float64, radius, mass float64, st State, fds [4]int, divT, diffT, deathT, fdsT int, stream *rng.Stream) int {
	i := p.Len()
	p.Location = append(p.Location, loc)
	p.Radius = append(p.Radius, radius)
	p.Mass = append(p.Mass, mass)
	p.MotilityForce = append(p.MotilityForce, [3]float64{})
	p.JKRForce = append(p.JKRForce, [3]float64{})
	p.Velocity = append(p.Velocity, [3]float64{})
	p.Motion = append(p.Motion, false)
	p.State = append(p.State, st)
	p.FDS = append(p.FDS, fds)
	p.DivCounter = append(p.DivCounter, int(stream.Float64()*float64(divT)))
	p.DiffCounter = append(p.DiffCounter, int(stream.Float64()*float64(diffT)))
	p.DeathCounter = append(p.DeathCounter, int(stream.Float64()*float64(deathT)))
	p.FDSCounter = append(p.FDSCounter, int(stream.Float64()*float64(fdsT)))
	p.NearestGATA6 = append(p.NearestGATA6, NoNearest)
	p.NearestNANOG = append(p.NearestNANOG, NoNearest)
	p.NearestDiff = append(p.NearestDiff, NoNearest)
	return i
}

// AppendCopy appends an exact field-by-field copy of cell src (used by
// division before the daughter's fields are perturbed).
func (p *Population) AppendCopy(src int) int {
	i := p.Len()
	p.Location = append(p.Location, p.Location[src])
	p.Radius = append(p.Radius, p.Radius[src])
	p.Mass = append(p.Mass, p.Mass[src])
	p.MotilityForce = append(p.MotilityForce, p.MotilityForce[src])
	p.JKRForce = append(p.JKRForce, p.JKRForce[src])
	p.Velocity = append(p.Velocity, p.Velocity[src])
	p.Motion = append(p.Motion, p.Motion[src])
	p.State = append(p.State, p.State[src])
	p.FDS = append(p.FDS, p.FDS[src])
	p.DivCounter = append(p.DivCounter, p.DivCounter[src])
	p.DiffCounter = append(p.DiffCounter, p.DiffCounter[src])
	p.DeathCounter = append(p.DeathCounter, p.DeathCounter[src])
	p.FDSCounter = append(p.FDSCounter, p.FDSCounter[src])
	p.NearestGATA6 = append(p.NearestGATA6, p.NearestGATA6[src])
	p.NearestNANOG = append(p.NearestNANOG, p.NearestNANOG[src])
	p.NearestDiff = append(p.NearestDiff, p.NearestDiff[src])
	return i
}

// RemoveSwap deletes cell i by swapping the last cell into its slot and
// shrinking every slice by one, keeping all fields dense over [0, N-1).
// Returns the index of the cell that was moved into slot i, or -1 if i
// was already the last index (no swap occurred).
func (p *Population) RemoveSwap(i int) int {
	n := p.Len()
	if i < 0 || i >= n {
		chk.Panic("cell: RemoveSwap index %d out of range [0,%d)", i, n)
	}
	last := n - 1
	moved := -1
	if i != last {
		p.Location[i] = p.Location[last]
		p.Radius[i] = p.Radius[last]
		p.Mass[i] = p.Mass[last]
		p.MotilityForce[i] = p.MotilityForce[last]
		p.JKRForce[i] = p.JKRForce[last]
		p.Velocity[i] = p.Velocity[last]
		p.Motion[i] = p.Motion[last]
		p.State[i] = p.State[last]
		p.FDS[i] = p.FDS[last]
		p.DivCounter[i] = p.DivCounter[last]
		p.DiffCounter[i] = p.DiffCounter[last]
		p.DeathCounter[i] = p.DeathCounter[last]
		p.FDSCounter[i] = p.FDSCounter[last]
		p.NearestGATA6[i] = p.NearestGATA6[last]
		p.NearestNANOG[i] = p.NearestNANOG[last]
		p.NearestDiff[i] = p.NearestDiff[last]
		moved = last
	}
	p.Location = p.Location[:last]
	p.Radius = p.Radius[:last]
	p.Mass = p.Mass[:last]
	p.MotilityForce = p.MotilityForce[:last]
	p.JKRForce = p.JKRForce[:last]
	p.Velocity = p.Velocity[:last]
	p.Motion = p.Motion[:last]
	p.State = p.State[:last]
	p.FDS = p.FDS[:last]
	p.DivCounter = p.DivCounter[:last]
	p.DiffCounter = p.DiffCounter[:last]
	p.DeathCounter = p.DeathCounter[:last]
	p.FDSCounter = p.FDSCounter[:last]
	p.NearestGATA6 = p.NearestGATA6[:last]
	p.NearestNANOG = p.NearestNANOG[:last]
	p.NearestDiff = p.NearestDiff[:last]
	return moved
}

// CheckInvariants panics if any per-cell field has drifted out of its
// documented bounds. Intended to run after any phase that mutates
// positions or radii.
func (p *Population) CheckInvariants(size [3]float64, rMin, rMax float64) {
	n := p.Len()
	if len(p.Location) != n || len(p.Radius) != n || len(p.State) != n {
		chk.Panic("cell: per-cell arrays have diverged lengths")
	}
	for i := 0; i < n; i++ {
		if p.Radius[i] < rMin-1e-12 || p.Radius[i] > rMax+1e-12 {
			chk.Panic("cell %d: radius %g outside [%g,%g]", i, p.Radius[i], rMin, rMax)
		}
		for d := 0; d < 3; d++ {
			if p.Location[i][d] < -1e-9 || p.Location[i][d] > size[d]+1e-9 {
				chk.Panic("cell %d: location[%d]=%g outside [0,%g]", i, d, p.Location[i][d], size[d])
			}
		}
	}
}
