// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package contact implements the JKR-style pairwise contact mechanics and
// sub-stepped motion integrator: per macro-step, N_sub sub-steps each
// refresh the contact graph, accumulate adhesive/repulsive
// forces, prune broken bonds, and integrate positions with Stokes
// friction, clamped to the domain.
package contact

import (
	"math"

	"github.com/JackToppen/cellsim/bins"
	"github.com/JackToppen/cellsim/cell"
	"github.com/JackToppen/cellsim/graph"
	"github.com/JackToppen/cellsim/neighbors"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/ode"
)

// BondBreak is the nondimensional overlap below which a JKR bond is
// pruned rather than force-resolved.
const BondBreak = -0.360562

// Mechanics bundles the JKR material constants and the capacity
// state (bin occupancy, edge-slab size) that the contact-graph refresh
// amortizes across sub-steps and macro-steps.
type Mechanics struct {
	Nu        float64 // Poisson's ratio
	E         float64 // Young's modulus, Pa
	Gamma     float64 // adhesion constant, kg/s
	Viscosity float64 // medium viscosity, Ns/m

	search *neighbors.Searcher
	binM   int
}

// New returns a Mechanics with the standard material constants (incompressible
// cells, E = 1 kPa, Guye adhesion and medium viscosity).
func New() *Mechanics {
	return &Mechanics{
		Nu:        0.5,
		E:         1000,
		Gamma:     1.07e-4,
		Viscosity: 10000,
		search:    neighbors.NewSearcher(5),
		binM:      5,
	}
}

// Run performs ⌈dtStep/dtMove⌉ sub-steps against pop and the
// contact graph g, then zeros motility_force (an explicit per-step input,
// not integrated) exactly once for the whole call.
func (m *Mechanics) Run(pop *cell.Population, g *graph.Graph, size [3]float64, rMax, dtMove, dtStep float64) {
	nSub := int(math.Ceil(dtStep / dtMove))
	for s := 0; s < nSub; s++ {
		m.subStep(pop, g, size, rMax, dtMove)
	}
	for i := range pop.MotilityForce {
		pop.MotilityForce[i] = [3]float64{}
	}
}

func (m *Mechanics) subStep(pop *cell.Population, g *graph.Graph, size [3]float64, rMax, dtMove float64) {
	n := pop.Len()
	if n == 0 {
		return
	}

	// 1. contact graph refresh: additive, never cleared (adhesion persists).
	grid := bins.NewGrid(size, 2*rMax, m.binM)
	grid.Assign(pop.Location)
	m.binM = grid.M()
	pred := neighbors.Contact(pop.Location, pop.Radius)
	for _, e := range m.search.Search(n, grid, pred) {
		g.AddEdge(e[0], e[1])
	}

	// 2. pairwise forces.
	eHat := 1.0 / (((1 - m.Nu*m.Nu) / m.E) + ((1 - m.Nu*m.Nu) / m.E))
	var toBreak [][2]int
	for _, e := range g.EdgeList() {
		a, b := e[0], e[1]
		v := []float64{
			pop.Location[a][0] - pop.Location[b][0],
			pop.Location[a][1] - pop.Location[b][1],
			pop.Location[a][2] - pop.Location[b][2],
		}
		mag := la.VecNorm(v)
		var nhat [3]float64
		if mag != 0 {
			nhat = [3]float64{v[0] / mag, v[1] / mag, v[2] / mag}
		}
		delta := pop.Radius[a] + pop.Radius[b] - mag
		rHat := 1.0 / (1/pop.Radius[a] + 1/pop.Radius[b])
		delta0 := math.Pow(math.Pi*m.Gamma/eHat, 2.0/3.0) * math.Pow(rHat, 1.0/3.0)
		d := delta / delta0

		if d <= BondBreak {
			toBreak = append(toBreak, [2]int{a, b})
			continue
		}

		f := -0.0204*d*d*d + 0.4942*d*d + 1.0801*d - 1.324
		F := f * math.Pi * m.Gamma * rHat
		for k := 0; k < 3; k++ {
			pop.JKRForce[a][k] += F * nhat[k]
			pop.JKRForce[b][k] -= F * nhat[k]
		}
	}

	// 3. edge pruning.
	for _, e := range toBreak {
		g.RemoveEdge(e[0], e[1])
	}

	// 4. integrate positions: one fixed forward-Euler step over the
	// flattened position vector.
	ndim := 3 * n
	y := make([]float64, ndim)
	for i := 0; i < n; i++ {
		y[3*i+0] = pop.Location[i][0]
		y[3*i+1] = pop.Location[i][1]
		y[3*i+2] = pop.Location[i][2]
	}
	visc := m.Viscosity
	fcn := func(f []float64, dx, x float64, yy []float64) error {
		for i := 0; i < n; i++ {
			zeta := 6 * math.Pi * visc * pop.Radius[i]
			f[3*i+0] = (pop.MotilityForce[i][0] + pop.JKRForce[i][0]) / zeta
			f[3*i+1] = (pop.MotilityForce[i][1] + pop.JKRForce[i][1]) / zeta
			f[3*i+2] = (pop.MotilityForce[i][2] + pop.JKRForce[i][2]) / zeta
		}
		return nil
	}
	var solver ode.Solver
	solver.Init("FwEuler", ndim, fcn, nil, nil, nil)
	solver.Distr = false
	if err := solver.Solve(y, 0, dtMove, dtMove, true); err != nil {
		chk.Panic("contact: motion integration: %v", err)
	}

	// clamp componentwise to [0, size[d]]: boundaries are sticky, not
	// reflective.
	for i := 0; i < n; i++ {
		zeta := 6 * math.Pi * visc * pop.Radius[i]
		for k := 0; k < 3; k++ {
			pop.Velocity[i][k] = (pop.MotilityForce[i][k] + pop.JKRForce[i][k]) / zeta
			x := y[3*i+k]
			if x < 0 {
				x = 0
			} else if x > size[k] {
				x = size[k]
			}
			pop.Location[i][k] = x
		}
	}

	// jkr_force accumulation is per sub-step.
	for i := range pop.JKRForce {
		pop.JKRForce[i] = [3]float64{}
	}
}
