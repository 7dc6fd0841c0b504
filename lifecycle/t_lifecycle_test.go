// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package lifecycle

import (
	"testing"

	"github.com/JackToppen/cellsim/cell"
	"github.com/JackToppen/cellsim/contact"
	"github.com/JackToppen/cellsim/graph"
	"github.com/JackToppen/cellsim/rng"
	"github.com/cpmech/gosl/chk"
)

func baseThresholds() Thresholds {
	return Thresholds{
		TDivP: 1000, TDivD: 1000, TDeath: 3,
		DLonely: 2, DContactInh: 2, DDiffSurround: 2,
		RMin: 0.5, RMax: 1.0,
		PluriGrowth: 0.01, DiffGrowth: 0.02,
		Modulus: 2,
	}
}

func Test_lifecycle01(tst *testing.T) {

	chk.PrintTitle("lifecycle01: an isolated Pluripotent cell accumulates death_counter")

	pop := cell.New(false)
	s := rng.New(1, 1)
	pop.Append([3]float64{0, 0, 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 0, 0, 0}, 1000, 1000, 1000, 1000, &s)
	pop.DeathCounter[0] = 0 // Append randomizes; pin for a known removal step
	prox := graph.New(1) // no neighbors: degree 0 < DLonely

	th := baseThresholds()
	var toRemove []int
	for i := 0; i < th.TDeath; i++ {
		Death(pop, prox, th, &toRemove)
	}
	chk.IntAssert(pop.DeathCounter[0], th.TDeath)
	chk.IntAssert(len(toRemove), 1)
}

func Test_lifecycle02(tst *testing.T) {

	chk.PrintTitle("lifecycle02: enough proximity neighbors resets death_counter")

	pop := cell.New(false)
	s := rng.New(1, 1)
	pop.Append([3]float64{0, 0, 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 0, 0, 0}, 1000, 1000, 1000, 1000, &s)
	pop.Append([3]float64{0.1, 0, 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 0, 0, 0}, 1000, 1000, 1000, 1000, &s)
	pop.Append([3]float64{0.2, 0, 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 0, 0, 0}, 1000, 1000, 1000, 1000, &s)
	for i := range pop.DeathCounter {
		pop.DeathCounter[i] = 0 // Append randomizes; pin so cells 1,2 stay below T_death
	}
	prox := graph.New(3)
	prox.AddEdge(0, 1)
	prox.AddEdge(0, 2) // cell 0 has degree 2 == DLonely, not < DLonely

	th := baseThresholds()
	var toRemove []int
	Death(pop, prox, th, &toRemove)
	chk.IntAssert(pop.DeathCounter[0], 0)
	chk.IntAssert(len(toRemove), 0)
}

func Test_lifecycle03(tst *testing.T) {

	chk.PrintTitle("lifecycle03: DiffSurround forces GATA6/NANOG once surrounded")

	pop := cell.New(false)
	s := rng.New(1, 1)
	pop.Append([3]float64{0, 0, 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 0, 0, 1}, 1000, 1000, 1000, 1000, &s)
	for i := 0; i < 2; i++ {
		pop.Append([3]float64{float64(i + 1), 0, 0}, 0.5, 1.0, cell.Differentiated, [4]int{0, 0, 1, 0}, 1000, 1000, 1000, 1000, &s)
	}
	prox := graph.New(3)
	prox.AddEdge(0, 1)
	prox.AddEdge(0, 2)

	th := baseThresholds()
	DiffSurround(pop, prox, th)

	chk.IntAssert(pop.FDS[0][cell.GATA6], th.Modulus-1)
	chk.IntAssert(pop.FDS[0][cell.NANOG], 0)
}

func Test_lifecycle04(tst *testing.T) {

	chk.PrintTitle("lifecycle04: Growth advances radius with div_counter up to r_max")

	pop := cell.New(false)
	s := rng.New(1, 1)
	pop.Append([3]float64{0, 0, 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 0, 0, 0}, 1000, 1000, 1000, 1000, &s)
	pop.DivCounter[0] = 0
	pop.Radius[0] = 0.5

	th := baseThresholds()
	pop.DivCounter[0] = 100 // large enough that rate*count would exceed r_max
	Growth(pop, th)

	if pop.Radius[0] > th.RMax+1e-12 {
		tst.Fatalf("radius %g exceeded r_max %g", pop.Radius[0], th.RMax)
	}
	chk.Scalar(tst, "radius clamps to r_max", 1e-12, pop.Radius[0], th.RMax)
}

func Test_lifecycle05(tst *testing.T) {

	chk.PrintTitle("lifecycle05: Division marks a Pluripotent cell past T_div_p unconditionally")

	pop := cell.New(false)
	s := rng.New(1, 1)
	pop.Append([3]float64{0, 0, 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 0, 0, 0}, 1000, 1000, 1000, 1000, &s)
	pop.DivCounter[0] = 1000
	prox := graph.New(1)
	th := baseThresholds()

	var toDivide []int
	Division(pop, prox, th, &toDivide, func(i int) rng.Stream { return rng.New(1, uint64(i)) })
	chk.IntAssert(len(toDivide), 1)
}

func Test_lifecycle06(tst *testing.T) {

	chk.PrintTitle("lifecycle06: BulkMutate preserves division conservation N_new = N_old + add - remove")

	pop := cell.New(false)
	s := rng.New(1, 1)
	for i := 0; i < 5; i++ {
		pop.Append([3]float64{float64(i), float64(i), 0}, 0.5, 1.0, cell.Pluripotent, [4]int{0, 0, 0, 0}, 1000, 1000, 1000, 1000, &s)
	}
	prox := graph.New(5)
	cont := graph.New(5)

	toDivide := []int{0, 2}
	toRemove := []int{4}
	mech := contact.New()
	size := [3]float64{10, 10, 0}

	BulkMutate(pop, prox, cont, toDivide, toRemove, 0, mech, size, 1.0, 0.5, 0.01, 0.1, false,
		func(i int) rng.Stream { return rng.New(1, uint64(i)) })

	chk.IntAssert(pop.Len(), 5+len(toDivide)-len(toRemove))
	chk.IntAssert(prox.N(), pop.Len())
	chk.IntAssert(cont.N(), pop.Len())
}
