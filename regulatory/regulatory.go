// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package regulatory implements the discrete (Boolean/ternary) per-cell
// regulatory update: NANOG-driven FGF4 secretion, quantizing a local
// FGF4 sample, applying the arithmetic-modulo finite-dynamical-system
// rules, and driving the GATA6-triggered differentiation counter.
package regulatory

import (
	"github.com/JackToppen/cellsim/cell"
	"github.com/JackToppen/cellsim/morphogen"
	"github.com/JackToppen/cellsim/rng"
)

// Config carries the constants the per-cell update needs: the FDS
// modulus k, the update period T_fds, the differentiation threshold
// T_diff, the field maximum C_max, and the dox-induction delay (the
// pathway is inert before InductionStep).
type Config struct {
	Modulus       int
	TFds          int
	TDiff         int
	CMax          float64
	InductionStep int
}

// quantize maps a concentration to a level in [0, k) using k-1
// thresholds spaced at CMax*i/k.
func quantize(value, cmax float64, k int) int {
	for level := k - 1; level >= 1; level-- {
		if value > cmax*float64(level)/float64(k) {
			return level
		}
	}
	return 0
}

// fdsBoolean is the k=2 transition map over (fgf4, FGFR, ERK, GATA6, NANOG).
func fdsBoolean(x1, x2, x3, x4, x5 int) (fgfr, erk, gata6, nanog int) {
	fgfr = (x1 * x4) % 2
	erk = x2 % 2
	gata6 = (1 + x5 + x5*x4) % 2
	nanog = ((x3 + 1) * (x4 + 1)) % 2
	return
}

// fdsTernary is the k=3 transition map.
func fdsTernary(x1, x2, x3, x4, x5 int) (fgfr, erk, gata6, nanog int) {
	fgfr = mod3(x1 * x4 * ((2*x1+1)*(2*x4+1) + x1*x4))
	erk = mod3(x2)
	gata6 = mod3(x4*x4*(x5+1) + x5*x5*(x4+1) + 2*x5 + 1)
	nanog = mod3(x5*x5 + x5*(x5+1)*(x3*(2*x4*x4+2*x3+1)+x4*(2*x3*x3+2*x4+1)) + (2*x3*x3+1)*(2*x4*x4+1))
	return
}

// mod3 keeps the polynomial results in [0,3) even for negative sums.
func mod3(v int) int {
	m := v % 3
	if m < 0 {
		m += 3
	}
	return m
}

// Update runs the per-cell pathway for cell i against gradient fgf4:
// NANOG-driven secretion first (every step), then the quantization and
// FDS transition, gated by currentStep >= cfg.InductionStep (dox
// induction).
func Update(pop *cell.Population, i int, currentStep int, fgf4 *morphogen.Grid, cfg Config, stream *rng.Stream) {
	// NANOG-high cells secrete FGF4 at their location every step,
	// regardless of induction; only the pathway below is gated
	if nanog := pop.FDS[i][cell.NANOG]; nanog > 0 {
		fgf4.Adjust(pop.Location[i], float64(nanog), "nearest", 0)
	}

	if currentStep < cfg.InductionStep {
		return
	}

	value := fgf4.GetConcentration(pop.Location[i])
	fgf4Fds := quantize(value, cfg.CMax, cfg.Modulus)

	if pop.FDSCounter[i]%cfg.TFds == 0 {
		x2 := pop.FDS[i][cell.FGFR]
		x3 := pop.FDS[i][cell.ERK]
		x4 := pop.FDS[i][cell.GATA6]
		x5 := pop.FDS[i][cell.NANOG]

		var newFGFR, newERK, newGATA6, newNANOG int
		if cfg.Modulus == 2 {
			newFGFR, newERK, newGATA6, newNANOG = fdsBoolean(fgf4Fds, x2, x3, x4, x5)
		} else {
			newFGFR, newERK, newGATA6, newNANOG = fdsTernary(fgf4Fds, x2, x3, x4, x5)
		}

		// FGFR binding: an increase debits the field; a decrease is not
		// refunded.
		if change := newFGFR - x2; change > 0 {
			fgf4.Adjust(pop.Location[i], -float64(change), "nearest", 0)
		}

		pop.FDS[i][cell.FGFR] = newFGFR
		pop.FDS[i][cell.ERK] = newERK
		pop.FDS[i][cell.GATA6] = newGATA6
		pop.FDS[i][cell.NANOG] = newNANOG
	}
	pop.FDSCounter[i]++

	if pop.FDS[i][cell.GATA6] == cfg.Modulus-1 && pop.State[i] == cell.Pluripotent {
		if stream.Bernoulli(0.5) {
			pop.DiffCounter[i]++
		}
		if pop.DiffCounter[i] >= cfg.TDiff {
			pop.State[i] = cell.Differentiated
			pop.FDS[i][cell.NANOG] = 0
			pop.Motion[i] = true
		}
	}
}
