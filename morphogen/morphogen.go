// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package morphogen implements the extracellular reaction-diffusion
// field: an explicit forward-Euler finite-difference stepper over a 2D
// or 3D regular grid with reflective (Neumann) boundaries, plus
// cell-local read/write.
package morphogen

import (
	"math"

	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// Grid is one scalar morphogen field, stored with a one-cell halo on
// every side so the Neumann reflective boundary is a plain copy
// instead of a branch in the stencil. Interior cell (i,j,k) lives at
// C[i+1][j+1][k+1] (or C[i+1][j+1][0] in 2D mode, where the z extent is 1
// and carries no halo).
type Grid struct {
	ThreeD bool
	Dx     float64
	D      float64 // diffusion constant
	CMax   float64

	Nx, Ny, Nz int // interior extents (Nz == 1 in 2D mode)

	C [][][]float64 // (Nx+2) x (Ny+2) x (Nz+2 in 3D mode, 1 in 2D mode)
}

// NewGrid allocates a grid covering [0,size] at resolution dx, seeded at
// the given initial concentration.
func NewGrid(size [3]float64, dx, d, cmax, initial float64, threeD bool) *Grid {
	g := &Grid{ThreeD: threeD, Dx: dx, D: d, CMax: cmax}
	g.Nx = int(math.Round(size[0] / dx))
	g.Ny = int(math.Round(size[1] / dx))
	if g.Nx < 1 {
		g.Nx = 1
	}
	if g.Ny < 1 {
		g.Ny = 1
	}
	if threeD {
		g.Nz = int(math.Round(size[2] / dx))
		if g.Nz < 1 {
			g.Nz = 1
		}
	} else {
		g.Nz = 1
	}

	zHalo := g.Nz + 2
	if !threeD {
		zHalo = 1
	}
	g.C = utl.Deep3alloc(g.Nx+2, g.Ny+2, zHalo)
	for i := range g.C {
		for j := range g.C[i] {
			for k := range g.C[i][j] {
				g.C[i][j][k] = initial
			}
		}
	}
	g.Clamp()
	return g
}

// zRange returns the interior z-index bounds: [1, Nz] in 3D mode, [0,0] in
// 2D mode (no halo to reflect along an axis that does not exist).
func (g *Grid) zRange() (lo, hi int) {
	if g.ThreeD {
		return 1, g.Nz
	}
	return 0, 0
}

// reflectHalo copies the first interior row/column (and plane, in 3D)
// into the halo on every side, implementing the zero-gradient Neumann
// boundary.
func (g *Grid) reflectHalo() {
	zlo, zhi := g.zRange()
	for z := zlo; z <= zhi; z++ {
		for j := 1; j <= g.Ny; j++ {
			g.C[0][j][z] = g.C[1][j][z]
			g.C[g.Nx+1][j][z] = g.C[g.Nx][j][z]
		}
		for i := 1; i <= g.Nx; i++ {
			g.C[i][0][z] = g.C[i][1][z]
			g.C[i][g.Ny+1][z] = g.C[i][g.Ny][z]
		}
	}
	if g.ThreeD {
		for i := 1; i <= g.Nx; i++ {
			for j := 1; j <= g.Ny; j++ {
				g.C[i][j][0] = g.C[i][j][1]
				g.C[i][j][g.Nz+1] = g.C[i][j][g.Nz]
			}
		}
	}
}

// Clamp clips every grid cell to [0, CMax]. Runs before and after each
// sub-step sequence.
func (g *Grid) Clamp() {
	for i := range g.C {
		for j := range g.C[i] {
			for k := range g.C[i][j] {
				v := g.C[i][j][k]
				if v < 0 {
					v = 0
				} else if v > g.CMax {
					v = g.CMax
				}
				g.C[i][j][k] = v
			}
		}
	}
}

// sweep performs one explicit FTCS sub-step of duration dt.
func (g *Grid) sweep(dt float64) {
	a := g.D * dt / (g.Dx * g.Dx)
	g.reflectHalo()
	if !g.ThreeD {
		next := la.MatAlloc(g.Nx, g.Ny)
		b := 1 - 4*a
		for i := 1; i <= g.Nx; i++ {
			for j := 1; j <= g.Ny; j++ {
				sum := g.C[i+1][j][0] + g.C[i-1][j][0] + g.C[i][j+1][0] + g.C[i][j-1][0]
				next[i-1][j-1] = a*sum + b*g.C[i][j][0]
			}
		}
		for i := 1; i <= g.Nx; i++ {
			for j := 1; j <= g.Ny; j++ {
				g.C[i][j][0] = next[i-1][j-1]
			}
		}
		return
	}
	b := 1 - 6*a
	next := utl.Deep3alloc(g.Nx, g.Ny, g.Nz)
	for i := 1; i <= g.Nx; i++ {
		for j := 1; j <= g.Ny; j++ {
			for k := 1; k <= g.Nz; k++ {
				sum := g.C[i+1][j][k] + g.C[i-1][j][k] + g.C[i][j+1][k] + g.C[i][j-1][k] + g.C[i][j][k+1] + g.C[i][j][k-1]
				next[i-1][j-1][k-1] = a*sum + b*g.C[i][j][k]
			}
		}
	}
	for i := 1; i <= g.Nx; i++ {
		for j := 1; j <= g.Ny; j++ {
			for k := 1; k <= g.Nz; k++ {
				g.C[i][j][k] = next[i-1][j-1][k-1]
			}
		}
	}
}

// Step advances the field one macro-step of duration dtStep, in D_sub =
// floor(dtStep/dtDiff) equal sub-steps of dtDiff plus, if the division
// isn't exact, one final smaller sub-step. Cell-emitted source terms are
// written through Adjust before the step, not here.
func (g *Grid) Step(dtStep, dtDiff float64) {
	g.Clamp()
	dsub := int(math.Floor(dtStep / dtDiff))
	for s := 0; s < dsub; s++ {
		g.sweep(dtDiff)
	}
	rem := dtStep - float64(dsub)*dtDiff
	if rem > 1e-12 {
		g.sweep(rem)
	}
	g.Clamp()
}

// indices returns the (i,j,k) interior grid indices nearest loc
// (round(x/Δx), clamped to the interior).
func (g *Grid) indices(loc [3]float64) (i, j, k int) {
	i = clampIdx(int(math.Round(loc[0]/g.Dx)), g.Nx)
	j = clampIdx(int(math.Round(loc[1]/g.Dx)), g.Ny)
	if g.ThreeD {
		k = clampIdx(int(math.Round(loc[2]/g.Dx)), g.Nz)
	}
	return
}

func clampIdx(v, n int) int {
	if v < 0 {
		return 0
	}
	if v >= n {
		return n - 1
	}
	return v
}

// GetConcentration returns the field value at the grid point nearest loc.
func (g *Grid) GetConcentration(loc [3]float64) float64 {
	i, j, k := g.indices(loc)
	return g.C[i+1][j+1][g.zOff(k)]
}

func (g *Grid) zOff(k int) int {
	if g.ThreeD {
		return k + 1
	}
	return 0
}

// Adjust alters the field by amount at loc. Mode "nearest" adds to the
// single nearest grid point; "distance" distributes over the four
// surrounding in-plane points weighted by inverse distance, skipping
// points farther than rMax.
func (g *Grid) Adjust(loc [3]float64, amount float64, mode string, rMax float64) {
	switch mode {
	case "nearest":
		i, j, k := g.indices(loc)
		g.C[i+1][j+1][g.zOff(k)] += amount

	case "distance":
		_, _, kz := g.indices(loc)
		z := g.zOff(kz)
		x := int(math.Floor(loc[0] / g.Dx))
		y := int(math.Floor(loc[1] / g.Dx))
		type pt struct{ i, j int }
		pts := []pt{{x, y}, {x + 1, y}, {x, y + 1}, {x + 1, y + 1}}
		dists := make([]float64, 4)
		total := 0.0
		for idx, p := range pts {
			dists[idx] = -1
			if p.i < 0 || p.i >= g.Nx || p.j < 0 || p.j >= g.Ny {
				continue
			}
			px := float64(p.i) * g.Dx
			py := float64(p.j) * g.Dx
			dx := loc[0] - px
			dy := loc[1] - py
			mag := math.Hypot(dx, dy)
			if mag > rMax {
				continue
			}
			if mag == 0 {
				// exactly on a grid point: it receives everything
				g.C[p.i+1][p.j+1][z] += amount
				return
			}
			dists[idx] = mag
			total += 1 / mag
		}
		if total == 0 {
			return
		}
		for idx, p := range pts {
			if dists[idx] < 0 {
				continue
			}
			g.C[p.i+1][p.j+1][z] += amount / (dists[idx] * total)
		}
	}
}
