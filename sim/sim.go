// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sim implements the step driver: it sequences
// binning/neighbor-search, the life-cycle scheduler, the regulatory
// update, contact mechanics, and morphogen diffusion, and emits a
// snapshot at the end of every macro-step.
package sim

import (
	"github.com/JackToppen/cellsim/bins"
	"github.com/JackToppen/cellsim/cell"
	"github.com/JackToppen/cellsim/config"
	"github.com/JackToppen/cellsim/contact"
	"github.com/JackToppen/cellsim/graph"
	"github.com/JackToppen/cellsim/lifecycle"
	"github.com/JackToppen/cellsim/morphogen"
	"github.com/JackToppen/cellsim/neighbors"
	"github.com/JackToppen/cellsim/regulatory"
	"github.com/JackToppen/cellsim/rng"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Snapshotter turns a Driver's state into CSV/PNG output; the core only
// calls it through this interface at the end of each step.
type Snapshotter interface {
	Emit(d *Driver) error
}

// Driver orders the per-step phases over a cell population, its two
// cell-indexed graphs, and its morphogen fields.
type Driver struct {
	Config *config.Config
	Pop    *cell.Population
	Prox   *graph.Graph
	Cont   *graph.Graph
	Fields map[string]*morphogen.Grid

	Mechanics *contact.Mechanics
	Snapshot  Snapshotter
	Timer     *PhaseTimer

	T    float64
	Step int

	proxSearch *neighbors.Searcher
	proxBinM   int
	nearest    *nearestCache
	regCfg     regulatory.Config
	lifeTh     lifecycle.Thresholds
}

// New builds a Driver from a validated Config and an initial population
// (typically produced by a setup-file collaborator).
func New(cfg *config.Config, pop *cell.Population, snap Snapshotter) *Driver {
	fields := make(map[string]*morphogen.Grid, len(cfg.Gradients))
	size := cfg.Size()
	for _, g := range cfg.Gradients {
		fields[g.Name] = morphogen.NewGrid(size, cfg.Dx, g.Diffuse, cfg.CMax, g.Initial, cfg.ThreeD)
	}

	d := &Driver{
		Config:    cfg,
		Pop:       pop,
		Prox:      graph.New(pop.Len()),
		Cont:      graph.New(pop.Len()),
		Fields:    fields,
		Mechanics: contact.New(),
		Snapshot:  snap,
		Timer:     NewPhaseTimer(),

		proxSearch: neighbors.NewSearcher(5),
		proxBinM:   5,
		nearest:    newNearestCache(),
		regCfg: regulatory.Config{
			Modulus:       cfg.FDSModulus,
			TFds:          cfg.TFds,
			TDiff:         cfg.TDiff,
			CMax:          cfg.CMax,
			InductionStep: cfg.InductionStep,
		},
		lifeTh: lifecycle.Thresholds{
			TDivP: cfg.TDivP, TDivD: cfg.TDivD, TDeath: cfg.TDeath,
			DLonely: cfg.DLonely, DContactInh: cfg.DContactInh, DDiffSurround: cfg.DDiffSurround,
			RMin: cfg.RMin, RMax: cfg.RMax,
			PluriGrowth: cfg.PluriGrowth, DiffGrowth: cfg.DiffGrowth,
			Modulus: cfg.FDSModulus,
		},
	}
	return d
}

// fgf4 returns the canonical FGF4 gradient the regulatory pathway reads
// and writes; fatal if the configuration omitted it.
func (d *Driver) fgf4() *morphogen.Grid {
	g, ok := d.Fields["fgf4"]
	if !ok {
		chk.Panic("sim: no \"fgf4\" gradient configured; the regulatory pathway requires one")
	}
	return g
}

// streamFor derives a counter-based rng.Stream for cell i's draws in a
// named phase of the current step, so the same (seed, step, cell, phase)
// always yields the same sequence regardless of parallel schedule, and
// distinct steps draw fresh values.
func (d *Driver) streamFor(i int, phase string) rng.Stream {
	return rng.New(d.Config.Seed^uint64(d.Step)*0xD6E8FEB86659FD93, uint64(i)*1000003+fnv1a(phase))
}

func fnv1a(s string) uint64 {
	var h uint64 = 1469598103934665603
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

// Run advances the simulation in fixed Δt_step macro-steps until t_end.
func (d *Driver) Run() {
	for d.T < d.Config.TEnd {
		d.RunStep()
	}
}

// RunStep executes exactly one macro-step's phases, in order.
func (d *Driver) RunStep() {
	d.Timer.Reset()
	size := d.Config.Size()
	io.Pf("step %d: %d cells\n", d.Step, d.Pop.Len())

	// 1. check_neighbors.
	d.Timer.Time("check_neighbors", func() {
		d.Prox.Clear()
		grid := bins.NewGrid(size, d.Config.Rn, d.proxBinM)
		grid.Assign(d.Pop.Location)
		d.proxBinM = grid.M()
		pred := neighbors.Proximity(d.Pop.Location, d.Config.Rn)
		for _, e := range d.proxSearch.Search(d.Pop.Len(), grid, pred) {
			d.Prox.AddEdge(e[0], e[1])
		}
	})

	// 2. nearest.
	d.Timer.Time("nearest", func() {
		d.nearest.update(d.Pop, size, d.Config.RNear)
	})

	// 3. cell_death, cell_diff_surround, cell_growth, cell_division, cell_pathway.
	var toDivide, toRemove []int
	d.Timer.Time("cell_death", func() {
		lifecycle.Death(d.Pop, d.Prox, d.lifeTh, &toRemove)
	})
	d.Timer.Time("cell_diff_surround", func() {
		lifecycle.DiffSurround(d.Pop, d.Prox, d.lifeTh)
	})
	d.Timer.Time("cell_growth", func() {
		lifecycle.Growth(d.Pop, d.lifeTh)
	})
	d.Timer.Time("cell_division", func() {
		lifecycle.Division(d.Pop, d.Prox, d.lifeTh, &toDivide, func(i int) rng.Stream {
			return d.streamFor(i, "division")
		})
	})
	d.Timer.Time("cell_pathway", func() {
		fgf4 := d.fgf4()
		for i := 0; i < d.Pop.Len(); i++ {
			s := d.streamFor(i, "pathway")
			regulatory.Update(d.Pop, i, d.Step, fgf4, d.regCfg, &s)
		}
	})

	// 4. cell_motility.
	d.Timer.Time("cell_motility", func() {
		d.motilityPhase()
	})

	// 5. update_diffusion.
	d.Timer.Time("update_diffusion", func() {
		for _, g := range d.Fields {
			g.Step(d.Config.DtStep, d.Config.DtDiff)
		}
	})

	// 6. update_queue.
	d.Timer.Time("update_queue", func() {
		io.Pf("adding %d cells, removing %d cells\n", len(toDivide), len(toRemove))
		lifecycle.BulkMutate(d.Pop, d.Prox, d.Cont, toDivide, toRemove, d.Config.GroupSize, d.Mechanics,
			size, d.Config.RMax, d.Config.RMin, d.Config.DtMove, d.Config.DtStep, d.Config.ThreeD,
			func(i int) rng.Stream { return d.streamFor(i, "division-offset") })
	})

	// 7. handle_movement — only once here if group_size == 0; BulkMutate
	// already ran it per-group above when group_size > 0.
	if d.Config.GroupSize == 0 {
		d.Timer.Time("handle_movement", func() {
			d.Mechanics.Run(d.Pop, d.Cont, size, d.Config.RMax, d.Config.DtMove, d.Config.DtStep)
		})
	}

	d.Pop.CheckInvariants(size, d.Config.RMin, d.Config.RMax)

	// 8. emit snapshot, increment clock.
	if d.Snapshot != nil {
		if err := d.Snapshot.Emit(d); err != nil {
			io.Pfred("snapshot: step %d: %v\n", d.Step, err)
		}
	}
	d.T += d.Config.DtStep
	d.Step++
}
