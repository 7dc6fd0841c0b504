// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/cpmech/gosl/chk"
)

func valid() Config {
	return Config{
		SizeX: 10, SizeY: 10, SizeZ: 0,
		Dx: 1, DtStep: 1, DtMove: 0.1, DtDiff: 0.1, TEnd: 100,
		RMin: 0.5, RMax: 1.0,
		FDSModulus: 2,
		Gradients:  []Gradient{{Name: "fgf4", Initial: 0, Diffuse: 1e-3}},
	}
}

func Test_config01(tst *testing.T) {

	chk.PrintTitle("config01: a well-formed configuration validates")

	c := valid()
	if err := c.Validate(); err != nil {
		tst.Fatalf("unexpected validation error: %v", err)
	}
}

func Test_config02(tst *testing.T) {

	chk.PrintTitle("config02: zero domain size is rejected")

	c := valid()
	c.SizeX = 0
	if err := c.Validate(); err == nil {
		tst.Fatal("expected a validation error for zero size_x")
	}
}

func Test_config03(tst *testing.T) {

	chk.PrintTitle("config03: r_max below r_min is rejected")

	c := valid()
	c.RMax = 0.1
	if err := c.Validate(); err == nil {
		tst.Fatal("expected a validation error for r_max < r_min")
	}
}

func Test_config04(tst *testing.T) {

	chk.PrintTitle("config04: fds_modulus outside {2,3} is rejected")

	c := valid()
	c.FDSModulus = 4
	if err := c.Validate(); err == nil {
		tst.Fatal("expected a validation error for fds_modulus=4")
	}
}

func Test_config05(tst *testing.T) {

	chk.PrintTitle("config05: unstable diffusion coefficient is rejected")

	c := valid()
	c.Gradients = []Gradient{{Name: "fgf4", Initial: 0, Diffuse: 10}} // a = D*dt/dx^2 huge
	if err := c.Validate(); err == nil {
		tst.Fatal("expected a validation error for an unstable diffusion coefficient")
	}
}

func Test_config06(tst *testing.T) {

	chk.PrintTitle("config06: Size pins z to 0 outside three_d mode")

	c := valid()
	c.SizeZ = 5
	c.ThreeD = false
	size := c.Size()
	chk.Scalar(tst, "size.z (2D)", 1e-12, size[2], 0)

	c.ThreeD = true
	size = c.Size()
	chk.Scalar(tst, "size.z (3D)", 1e-12, size[2], 5)
}
