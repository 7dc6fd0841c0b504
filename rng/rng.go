// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rng implements a counter-based pseudo-random generator.
//
// Every draw is a pure function of (seed, stream, call); there is no
// mutable shared state, so a parallel-for over cell indices produces the
// same draws regardless of scheduling order, provided each worker draws
// from its own stream, New(seed, cellIndex).
package rng

import "math"

// Stream is a counter-based draw sequence for one logical source of
// randomness (typically one per cell). It carries no synchronization and
// is safe to use from exactly one goroutine at a time.
type Stream struct {
	seed  uint64
	id    uint64
	calls uint64
}

// New returns the stream for the given global seed and stream id (e.g. a
// cell index, or a fixed constant for setup-wide draws).
func New(seed uint64, id uint64) Stream {
	return Stream{seed: seed, id: id}
}

// next returns the next raw 64-bit draw and advances the call counter.
func (s *Stream) next() uint64 {
	s.calls++
	return splitmix64(s.seed ^ mix(s.id, s.calls))
}

// mix folds a stream id and a call counter into one 64-bit key.
func mix(id, calls uint64) uint64 {
	h := id*0x9E3779B97F4A7C15 + calls*0xBF58476D1CE4E5B9
	return h
}

// splitmix64 is the standard SplitMix64 finalizer; a fast, well-mixed,
// deterministic hash suitable for counter-based RNG.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x = x ^ (x >> 31)
	return x
}

// Float64 draws a uniform value in [0, 1).
func (s *Stream) Float64() float64 {
	return float64(s.next()>>11) / float64(1<<53)
}

// Bernoulli draws a boolean that is true with probability p.
func (s *Stream) Bernoulli(p float64) bool {
	return s.Float64() < p
}

// UnitVector2D draws a uniformly distributed unit vector in the xy-plane
// (z = 0), matching the 2D-mode random offset/motility draws.
func (s *Stream) UnitVector2D() [3]float64 {
	theta := s.Float64() * 2 * math.Pi
	return [3]float64{math.Cos(theta), math.Sin(theta), 0}
}

// UnitVector3D draws a uniformly distributed unit vector on the sphere
// from two uniforms of this stream: z uniform in (-1, 1] and an azimuth
// uniform in [0, 2π).
func (s *Stream) UnitVector3D() [3]float64 {
	u1, u2 := s.Float64(), s.Float64()
	// Archimedes' hat-box construction: uniform z plus uniform azimuth
	// gives a uniform point on the unit sphere.
	z := 1 - 2*u1
	r := math.Sqrt(math.Max(0, 1-z*z))
	phi := 2 * math.Pi * u2
	return [3]float64{r * math.Cos(phi), r * math.Sin(phi), z}
}

// UnitVector draws a 2D or 3D unit vector depending on threeD.
func (s *Stream) UnitVector(threeD bool) [3]float64 {
	if threeD {
		return s.UnitVector3D()
	}
	return s.UnitVector2D()
}
