// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/JackToppen/cellsim/cell"
	"github.com/JackToppen/cellsim/config"
	"github.com/JackToppen/cellsim/rng"
	"github.com/JackToppen/cellsim/sim"
	"github.com/cpmech/gosl/chk"
)

func smallConfig() *config.Config {
	return &config.Config{
		ThreeD: false, Seed: 7,
		SizeX: 10, SizeY: 10, SizeZ: 0,
		DtStep: 1, DtMove: 0.1, DtDiff: 0.1, TEnd: 3,
		Dx: 1, CMax: 100, RMin: 0.5, RMax: 1.0,
		PluriGrowth: 0.001, DiffGrowth: 0.002,
		TDivP: 10000, TDivD: 10000, TDiff: 10000, TDeath: 10000, TFds: 10000,
		Rn: 2.0, RNear: 2.0,
		DLonely: 1, DContactInh: 6, DDiffSurround: 3,
		FDSModulus: 2,
		Gradients:  []config.Gradient{{Name: "fgf4", Initial: 10, Diffuse: 1e-3}},
		GroupSize:  0,
		Quality:    1,
	}
}

func smallPop(cfg *config.Config, n int) *cell.Population {
	pop := cell.New(cfg.ThreeD)
	s := rng.New(cfg.Seed, 0)
	for i := 0; i < n; i++ {
		loc := [3]float64{s.Float64() * cfg.SizeX, s.Float64() * cfg.SizeY, 0}
		pop.Append(loc, cfg.RMin, 1.0, cell.Pluripotent, [4]int{0, 0, 0, 1},
			cfg.TDivP, cfg.TDiff, cfg.TDeath, cfg.TFds, &s)
	}
	return pop
}

func Test_snapshot01(tst *testing.T) {

	chk.PrintTitle("snapshot01: Emit writes one CSV row per cell plus a PNG")

	dir := tst.TempDir()
	cfg := smallConfig()
	pop := smallPop(cfg, 5)
	w := New(dir, cfg.Quality)
	d := sim.New(cfg, pop, w)

	if err := w.Emit(d); err != nil {
		tst.Fatalf("Emit: %v", err)
	}

	csvPath := filepath.Join(dir, "network_values_0.csv")
	if _, err := os.Stat(csvPath); err != nil {
		tst.Fatalf("expected CSV at %s: %v", csvPath, err)
	}
	pngPath := filepath.Join(dir, "network_image_0.png")
	if info, err := os.Stat(pngPath); err != nil || info.Size() == 0 {
		tst.Fatalf("expected non-empty PNG at %s: %v", pngPath, err)
	}

	b, err := os.ReadFile(csvPath)
	if err != nil {
		tst.Fatalf("read csv: %v", err)
	}
	lines := 0
	for _, c := range b {
		if c == '\n' {
			lines++
		}
	}
	chk.IntAssert(lines, pop.Len()+1) // header + one row per cell
}

func Test_snapshot02(tst *testing.T) {

	chk.PrintTitle("snapshot02: Close assembles a playable MJPG AVI after several steps")

	dir := tst.TempDir()
	cfg := smallConfig()
	pop := smallPop(cfg, 4)
	w := New(dir, cfg.Quality)
	d := sim.New(cfg, pop, w)

	for i := 0; i < 3; i++ {
		d.RunStep()
	}
	if err := w.Close(); err != nil {
		tst.Fatalf("Close: %v", err)
	}

	path := videoPath(dir)
	b, err := os.ReadFile(path)
	if err != nil {
		tst.Fatalf("read video: %v", err)
	}
	if len(b) < 12 || string(b[0:4]) != "RIFF" || string(b[8:12]) != "AVI " {
		tst.Fatalf("not a RIFF/AVI file: header=%q", b[:minInt(12, len(b))])
	}
}

func Test_snapshot03(tst *testing.T) {

	chk.PrintTitle("snapshot03: Close on a writer with no frames is a no-op")

	dir := tst.TempDir()
	w := New(dir, 1)
	if err := w.Close(); err != nil {
		tst.Fatalf("Close with no frames should not error: %v", err)
	}
	if _, err := os.Stat(videoPath(dir)); err == nil {
		tst.Fatalf("expected no video file to be written")
	}
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
