// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package regulatory

import (
	"testing"

	"github.com/JackToppen/cellsim/cell"
	"github.com/JackToppen/cellsim/morphogen"
	"github.com/JackToppen/cellsim/rng"
	"github.com/cpmech/gosl/chk"
)

func newPop() *cell.Population {
	pop := cell.New(false)
	s := rng.New(1, 1)
	pop.Append([3]float64{5, 5, 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 0, 0, 0}, 1000, 1000, 1000, 1000, &s)
	pop.FDSCounter[0] = 0 // Append randomizes; pin so counter checks start from zero
	return pop
}

func Test_regulatory01(tst *testing.T) {

	chk.PrintTitle("regulatory01: induction delay gates the pathway")

	pop := newPop()
	fgf4 := morphogen.NewGrid([3]float64{10, 10, 0}, 1, 1e-3, 100, 50, false)
	cfg := Config{Modulus: 2, TFds: 1, TDiff: 1000, CMax: 100, InductionStep: 5}
	s := rng.New(1, 2)

	Update(pop, 0, 2, fgf4, cfg, &s) // currentStep=2 < InductionStep=5
	chk.IntAssert(pop.FDSCounter[0], 0)
}

func Test_regulatory02(tst *testing.T) {

	chk.PrintTitle("regulatory02: FDSCounter advances once induction starts")

	pop := newPop()
	fgf4 := morphogen.NewGrid([3]float64{10, 10, 0}, 1, 1e-3, 100, 50, false)
	cfg := Config{Modulus: 2, TFds: 1000, TDiff: 1000, CMax: 100, InductionStep: 0}
	s := rng.New(1, 2)

	Update(pop, 0, 0, fgf4, cfg, &s)
	chk.IntAssert(pop.FDSCounter[0], 1)
}

func Test_regulatory03(tst *testing.T) {

	chk.PrintTitle("regulatory03: GATA6 saturation drives a Pluripotent cell to Differentiated")

	pop := cell.New(false)
	s0 := rng.New(1, 1)
	pop.Append([3]float64{5, 5, 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 0, 1, 0}, 1000, 1000, 1000, 1000, &s0)
	fgf4 := morphogen.NewGrid([3]float64{10, 10, 0}, 1, 0, 100, 0, false)
	cfg := Config{Modulus: 2, TFds: 1000000, TDiff: 1, CMax: 100, InductionStep: 0}

	// force the Bernoulli(0.5) draw true: try a handful of stream ids.
	for id := uint64(0); id < 64 && pop.State[0] == cell.Pluripotent; id++ {
		stream := rng.New(id, 1)
		Update(pop, 0, 0, fgf4, cfg, &stream)
	}
	if pop.State[0] != cell.Differentiated {
		tst.Fatal("a GATA6-saturated Pluripotent cell must eventually differentiate")
	}
	chk.IntAssert(pop.FDS[0][cell.NANOG], 0)
	if !pop.Motion[0] {
		tst.Fatal("a freshly Differentiated cell must start in motion")
	}
}

func Test_regulatory04(tst *testing.T) {

	chk.PrintTitle("regulatory04: FGFR increase debits the field")

	// fdsBoolean: fgfr_new = (x1*x4) % 2. With fgf4Fds=1 (80 quantizes to 1
	// of {0,1}) and current GATA6=1, fgfr_new=1, up from the current
	// FGFR=0 — a strict increase that must debit the field. NANOG is kept
	// zero so no secretion masks the debit.
	cfg := Config{Modulus: 2, TFds: 1, TDiff: 1000, CMax: 100, InductionStep: 0}
	pop := cell.New(false)
	s0 := rng.New(1, 1)
	pop.Append([3]float64{5, 5, 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 1, 1, 0}, 1000, 1000, 1000, 1000, &s0)
	fgf4 := morphogen.NewGrid([3]float64{10, 10, 0}, 1, 0, 100, 80, false)
	before := fgf4.GetConcentration([3]float64{5, 5, 0})

	s := rng.New(2, 1)
	Update(pop, 0, 0, fgf4, cfg, &s)
	after := fgf4.GetConcentration([3]float64{5, 5, 0})

	chk.IntAssert(pop.FDS[0][cell.FGFR], 1)
	if after >= before {
		tst.Fatalf("FGFR increase to 1 should debit the field: before=%g after=%g", before, after)
	}
}

func Test_regulatory05(tst *testing.T) {

	chk.PrintTitle("regulatory05: quantize buckets at k-1 evenly spaced thresholds")

	chk.IntAssert(quantize(0, 100, 3), 0)
	chk.IntAssert(quantize(34, 100, 3), 1)
	chk.IntAssert(quantize(67, 100, 3), 2)
	chk.IntAssert(quantize(100, 100, 3), 2)
}

func Test_regulatory06(tst *testing.T) {

	chk.PrintTitle("regulatory06: a NANOG-high cell secretes FGF4 even before induction")

	pop := cell.New(false)
	s0 := rng.New(1, 1)
	pop.Append([3]float64{5, 5, 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 0, 0, 1}, 1000, 1000, 1000, 1000, &s0)
	pop.FDSCounter[0] = 0 // Append randomizes; pin so counter checks start from zero
	fgf4 := morphogen.NewGrid([3]float64{10, 10, 0}, 1, 0, 100, 0, false)
	cfg := Config{Modulus: 2, TFds: 1, TDiff: 1000, CMax: 100, InductionStep: 5}

	s := rng.New(2, 1)
	Update(pop, 0, 0, fgf4, cfg, &s) // currentStep=0 < InductionStep=5: pathway gated

	chk.Scalar(tst, "secreted amount", 1e-12, fgf4.GetConcentration([3]float64{5, 5, 0}), 1)
	chk.IntAssert(pop.FDSCounter[0], 0) // the gated pathway itself did not run
}
