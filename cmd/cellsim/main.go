// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"

	"github.com/JackToppen/cellsim/cell"
	"github.com/JackToppen/cellsim/config"
	"github.com/JackToppen/cellsim/rng"
	"github.com/JackToppen/cellsim/sim"
	"github.com/JackToppen/cellsim/snapshot"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/cpmech/gosl/rnd"
)

func main() {

	// catch errors
	defer func() {
		if err := recover(); err != nil {
			chk.Verbose = true
			for i := 8; i > 3; i-- {
				chk.CallerInfo(i)
			}
			io.PfRed("ERROR: %v\n", err)
			os.Exit(1)
		}
	}()

	io.PfWhite("\ncellsim -- stem-cell patterning simulator\n\n")

	flag.Parse()
	var fnamepath string
	if len(flag.Args()) > 0 {
		fnamepath = flag.Arg(0)
	} else {
		chk.Panic("Please, provide a configuration filename. Ex.: patterning.json")
	}

	cfg := config.ReadFile(fnamepath)

	// a zero seed means "pick one": draw from a time-initialized stream
	// and report it so the run can be reproduced
	if cfg.Seed == 0 {
		rnd.Init(0)
		cfg.Seed = uint64(rnd.Int(1, 1<<31-1))
		io.Pf("seed not set; using %d\n", cfg.Seed)
	}

	pop := buildPopulation(cfg)

	out := snapshot.New(cfg.OutputDir, cfg.Quality)
	driver := sim.New(cfg, pop, out)

	io.Pf("running %q: %d cells, t_end=%g\n", cfg.Name, pop.Len(), cfg.TEnd)
	driver.Run()
	if err := out.Close(); err != nil {
		io.PfRed("video: %v\n", err)
	}
	io.Pf("done: %d steps\n", driver.Step)
}

// buildPopulation seeds init_pluripotent Pluripotent cells and
// init_differentiated Differentiated cells at uniform-random positions
// in the domain. The Pluripotent group is split NANOG-high/GATA6-high,
// and every counter is randomized by Population.Append rather than
// started at zero.
func buildPopulation(cfg *config.Config) *cell.Population {
	pop := cell.New(cfg.ThreeD)
	size := cfg.Size()
	seed := rng.New(cfg.Seed, 0)
	k := cfg.FDSModulus

	randomLoc := func() [3]float64 {
		loc := [3]float64{seed.Float64() * size[0], seed.Float64() * size[1], 0}
		if cfg.ThreeD {
			loc[2] = seed.Float64() * size[2]
		}
		return loc
	}

	nanogHigh := cfg.InitPluripotent / 2
	gataHigh := cfg.InitPluripotent - nanogHigh
	for i := 0; i < nanogHigh; i++ {
		fds := [4]int{0, 0, 0, k - 1}
		pop.Append(randomLoc(), cfg.RMin, 1.0, cell.Pluripotent, fds,
			cfg.TDivP, cfg.TDiff, cfg.TDeath, cfg.TFds, &seed)
	}
	for i := 0; i < gataHigh; i++ {
		fds := [4]int{0, 0, k - 1, 0}
		pop.Append(randomLoc(), cfg.RMin, 1.0, cell.Pluripotent, fds,
			cfg.TDivP, cfg.TDiff, cfg.TDeath, cfg.TFds, &seed)
	}
	for i := 0; i < cfg.InitDifferentiated; i++ {
		fds := [4]int{0, 0, k - 1, 0}
		pop.Append(randomLoc(), cfg.RMin, 1.0, cell.Differentiated, fds,
			cfg.TDivP, cfg.TDiff, cfg.TDeath, cfg.TFds, &seed)
	}

	return pop
}
