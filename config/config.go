// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config implements the key/value input describing a cellsim run:
// a single tagged struct read with encoding/json, with defaults and
// sanity checks applied after unmarshalling.
package config

import (
	"encoding/json"
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Gradient describes one diffusible morphogen field.
type Gradient struct {
	Name    string  `json:"name"`    // e.g. "fgf4"
	Initial float64 `json:"initial"` // initial concentration, uniform
	Diffuse float64 `json:"diffuse"` // diffusion constant D
}

// Config is the full key/value description of a cellsim run.
type Config struct {
	// global
	Name      string `json:"name"`
	OutputDir string `json:"output_dir"`
	ThreeD    bool   `json:"three_d"`
	Seed      uint64 `json:"seed"`

	// domain
	SizeX float64 `json:"size_x"`
	SizeY float64 `json:"size_y"`
	SizeZ float64 `json:"size_z"`

	// initial population
	InitPluripotent    int `json:"init_pluripotent"`
	InitDifferentiated int `json:"init_differentiated"`

	// timing
	DtStep float64 `json:"dt_step"`
	DtMove float64 `json:"dt_move"`
	DtDiff float64 `json:"dt_diff"`
	TEnd   float64 `json:"t_end"`

	// spatial resolution
	Dx float64 `json:"dx"`

	// mechanical/morphogen maxima
	CMax float64 `json:"c_max"`
	RMin float64 `json:"r_min"`
	RMax float64 `json:"r_max"`

	// growth rate constants (radius increment per division-counter tick)
	PluriGrowth float64 `json:"pluri_growth"`
	DiffGrowth  float64 `json:"diff_growth"`

	// thresholds
	TDivP  int `json:"t_div_p"`
	TDivD  int `json:"t_div_d"`
	TDiff  int `json:"t_diff"`
	TDeath int `json:"t_death"`
	TFds   int `json:"t_fds"`

	// search radii
	Rn    float64 `json:"r_n"`
	RNear float64 `json:"r_near"`

	// degree thresholds
	DLonely       int `json:"d_lonely"`
	DContactInh   int `json:"d_contact_inh"`
	DDiffSurround int `json:"d_diff_surround"`

	// finite dynamical system
	FDSModulus int `json:"fds_modulus"` // k in {2,3}

	// morphogen gradients, one per named field
	Gradients []Gradient `json:"gradients"`

	// structural mutation staggering: handle_movement runs after every
	// GroupSize division appends (0 means once, after all of them)
	GroupSize int `json:"group_size"`

	// output
	Quality int `json:"quality"`

	// behavior switches
	AltMotility   bool `json:"alt_motility"`
	EunbiMove     bool `json:"eunbi_move"`
	InductionStep int  `json:"induction_step"`
}

// Size returns the domain extents as a 3-vector, z pinned to 0 in 2D mode.
func (c *Config) Size() [3]float64 {
	if !c.ThreeD {
		return [3]float64{c.SizeX, c.SizeY, 0}
	}
	return [3]float64{c.SizeX, c.SizeY, c.SizeZ}
}

// ReadFile loads a Config from a JSON file at path. Configuration errors
// are fatal at startup.
func ReadFile(path string) *Config {
	b, err := io.ReadFile(path)
	if err != nil {
		chk.Panic("config: cannot read %q: %v", path, err)
	}
	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		chk.Panic("config: cannot unmarshal %q: %v", path, err)
	}
	if err := c.Validate(); err != nil {
		chk.Panic("config: %v", err)
	}
	return &c
}

// Validate reports an error for any configuration defect: zero-sized
// domain, unstable diffusion coefficient, or a fds modulus outside {2,3}.
func (c *Config) Validate() error {
	if c.SizeX <= 0 || c.SizeY <= 0 || (c.ThreeD && c.SizeZ <= 0) {
		return chk.Err("zero or negative domain size: (%g,%g,%g)", c.SizeX, c.SizeY, c.SizeZ)
	}
	if c.RMin <= 0 || c.RMax < c.RMin {
		return chk.Err("invalid radius bounds: r_min=%g r_max=%g", c.RMin, c.RMax)
	}
	if c.Dx <= 0 {
		return chk.Err("non-positive spatial resolution dx=%g", c.Dx)
	}
	if c.DtMove <= 0 || c.DtStep <= 0 || c.DtDiff <= 0 {
		return chk.Err("non-positive time step(s): dt_step=%g dt_move=%g dt_diff=%g", c.DtStep, c.DtMove, c.DtDiff)
	}
	if c.FDSModulus != 2 && c.FDSModulus != 3 {
		return chk.Err("fds_modulus must be 2 or 3, got %d", c.FDSModulus)
	}
	dim := 2.0
	if c.ThreeD {
		dim = 3.0
	}
	for _, g := range c.Gradients {
		a := g.Diffuse * c.DtDiff / (c.Dx * c.Dx)
		if a > 1.0/(2.0*dim)+1e-12 {
			return chk.Err("unstable diffusion coefficient for gradient %q: a=%g exceeds 1/(2*%g)", g.Name, a, dim)
		}
	}
	if math.IsNaN(c.TEnd) || c.TEnd <= 0 {
		return chk.Err("t_end must be positive, got %g", c.TEnd)
	}
	return nil
}
