// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package snapshot implements the per-step CSV and PNG output behind
// sim.Snapshotter, plus the end-of-run MJPG AVI assembly.
package snapshot

import (
	"encoding/csv"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strconv"

	"github.com/JackToppen/cellsim/cell"
	"github.com/JackToppen/cellsim/sim"
	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// Writer emits one CSV file and one PNG image per step under Dir,
// named network_values_<step>.csv and network_image_<step>.png, and
// accumulates the frame sequence into a single end-of-run MJPG AVI once
// Close is called. Quality multiplies the 1500×1500 base canvas.
type Writer struct {
	Dir     string
	Quality int

	vid *video
}

// New returns a Writer that creates Dir (and any parents) on first use.
func New(dir string, quality int) *Writer {
	if quality < 1 {
		quality = 1
	}
	return &Writer{Dir: dir, Quality: quality}
}

// Emit satisfies sim.Snapshotter: it writes the CSV and PNG for the
// Driver's current step and appends the frame to the end-of-run video.
func (w *Writer) Emit(d *sim.Driver) error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return chk.Err("snapshot: mkdir %q: %v", w.Dir, err)
	}
	if err := w.writeCSV(d); err != nil {
		return err
	}
	if err := w.writeImage(d); err != nil {
		return err
	}
	io.Pf("snapshot: wrote step %d to %s\n", d.Step, w.Dir)
	return nil
}

// Close assembles every frame emitted so far into the end-of-run MJPG
// AVI. Safe to call once, after Run returns.
func (w *Writer) Close() error {
	if w.vid == nil {
		return nil
	}
	return w.vid.write(videoPath(w.Dir))
}

var csvHeader = []string{
	"X_position", "Y_position", "Z_position",
	"X_velocity", "Y_velocity", "Z_velocity",
	"Motion", "Mass", "Radius", "FGFR", "ERK", "GATA6", "NANOG",
	"State", "Differentiation_counter", "Division_counter", "Death_counter",
}

// writeCSV writes one row per cell. Velocity is the Stokes velocity of
// the last motion sub-step.
func (w *Writer) writeCSV(d *sim.Driver) error {
	path := filepath.Join(w.Dir, fmt.Sprintf("network_values_%d.csv", d.Step))
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("snapshot: create %q: %v", path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(csvHeader); err != nil {
		return chk.Err("snapshot: write header: %v", err)
	}

	pop := d.Pop
	for i := 0; i < pop.Len(); i++ {
		loc := pop.Location[i]
		vel := pop.Velocity[i]
		row := []string{
			round1(loc[0]), round1(loc[1]), round1(loc[2]),
			round1(vel[0]), round1(vel[1]), round1(vel[2]),
			strconv.FormatBool(pop.Motion[i]),
			strconv.FormatFloat(pop.Mass[i], 'g', -1, 64),
			strconv.FormatFloat(pop.Radius[i], 'g', -1, 64),
			strconv.Itoa(pop.FDS[i][cell.FGFR]),
			strconv.Itoa(pop.FDS[i][cell.ERK]),
			strconv.Itoa(pop.FDS[i][cell.GATA6]),
			strconv.Itoa(pop.FDS[i][cell.NANOG]),
			stateName(pop.State[i]),
			round1(float64(pop.DiffCounter[i])),
			round1(float64(pop.DivCounter[i])),
			round1(float64(pop.DeathCounter[i])),
		}
		if err := cw.Write(row); err != nil {
			return chk.Err("snapshot: write row %d: %v", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func round1(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func stateName(s cell.State) string {
	if s == cell.Pluripotent {
		return "Pluripotent"
	}
	return "Differentiated"
}

// writeImage renders a white 1500·quality square canvas, one filled
// disk per cell (green Pluripotent, red Differentiated), and a black
// boundary frame.
func (w *Writer) writeImage(d *sim.Driver) error {
	q := w.Quality
	side := 1500 * q
	img := image.NewRGBA(image.Rect(0, 0, side, side))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	center := 250 * q
	size := d.Config.Size()
	pop := d.Pop
	for i := 0; i < pop.Len(); i++ {
		loc := pop.Location[i]
		x := int(float64(q)*loc[0]) + center
		y := int(float64(q)*loc[1]) + center
		membrane := int(float64(q) * pop.Radius[i])
		col := color.RGBA{R: 0, G: 150, B: 0, A: 255}
		if pop.State[i] == cell.Differentiated {
			col = color.RGBA{R: 200, G: 0, B: 0, A: 255}
		}
		drawDisk(img, x, y, membrane, col)
	}

	frame := color.RGBA{A: 255}
	drawRect(img, center, center, center+int(float64(q)*size[0]), center+int(float64(q)*size[1]), frame)

	if w.vid == nil {
		w.vid = newVideo(side, side)
	}
	w.vid.addFrame(img)

	path := filepath.Join(w.Dir, fmt.Sprintf("network_image_%d.png", d.Step))
	f, err := os.Create(path)
	if err != nil {
		return chk.Err("snapshot: create %q: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return chk.Err("snapshot: encode %q: %v", path, err)
	}
	return nil
}

func drawDisk(img *image.RGBA, cx, cy, r int, col color.Color) {
	if r <= 0 {
		return
	}
	bounds := img.Bounds()
	r2 := r * r
	for y := cy - r; y <= cy+r; y++ {
		if y < bounds.Min.Y || y >= bounds.Max.Y {
			continue
		}
		dy := y - cy
		for x := cx - r; x <= cx+r; x++ {
			if x < bounds.Min.X || x >= bounds.Max.X {
				continue
			}
			dx := x - cx
			if dx*dx+dy*dy <= r2 {
				img.Set(x, y, col)
			}
		}
	}
}

func drawRect(img *image.RGBA, x0, y0, x1, y1 int, col color.Color) {
	for x := x0; x <= x1; x++ {
		img.Set(x, y0, col)
		img.Set(x, y1, col)
	}
	for y := y0; y <= y1; y++ {
		img.Set(x0, y, col)
		img.Set(x1, y, col)
	}
}
