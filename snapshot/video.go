// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package snapshot

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// video assembles the per-step canvases into a single end-of-run MJPG
// AVI at 1 fps: a small RIFF/AVI writer holding one JPEG frame per
// macro-step, following the standard MJPEG-in-AVI layout (hdrl/strl
// header lists, a movi list of "00dc" compressed-frame chunks, and a
// trailing idx1 index).
type video struct {
	w, h   int
	frames [][]byte // JPEG-encoded frame payloads, one per step
}

// newVideo starts a video of the given frame dimensions.
func newVideo(w, h int) *video {
	return &video{w: w, h: h}
}

// addFrame JPEG-encodes img and appends it as the next frame.
func (v *video) addFrame(img image.Image) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		chk.Panic("snapshot: jpeg encode video frame: %v", err)
	}
	v.frames = append(v.frames, buf.Bytes())
}

// write assembles the accumulated frames into an MJPG AVI file at path,
// played back at 1 fps.
func (v *video) write(path string) error {
	if len(v.frames) == 0 {
		return nil
	}

	const fps = 1
	var movi bytes.Buffer
	sizes := make([]uint32, len(v.frames))
	for i, f := range v.frames {
		chunk := f
		if len(chunk)%2 == 1 {
			chunk = append(append([]byte{}, chunk...), 0) // word-align, per RIFF
		}
		movi.WriteString("00dc")
		writeU32(&movi, uint32(len(f)))
		movi.Write(chunk)
		sizes[i] = uint32(len(f))
	}

	var idx1 bytes.Buffer
	offset := uint32(4) // relative to the start of the first chunk after "movi"
	for _, sz := range sizes {
		idx1.WriteString("00dc")
		writeU32(&idx1, 0x10) // AVIIF_KEYFRAME: every MJPEG frame stands alone
		writeU32(&idx1, offset)
		writeU32(&idx1, sz)
		chunkSize := sz
		if chunkSize%2 == 1 {
			chunkSize++
		}
		offset += 8 + chunkSize
	}

	var strf bytes.Buffer
	writeU32(&strf, 40) // biSize
	writeU32(&strf, uint32(v.w))
	writeU32(&strf, uint32(v.h))
	writeU16(&strf, 1)                 // biPlanes
	writeU16(&strf, 24)                // biBitCount
	strf.WriteString("MJPG")           // biCompression
	writeU32(&strf, uint32(v.w*v.h*3)) // biSizeImage
	writeU32(&strf, 0)                 // biXPelsPerMeter
	writeU32(&strf, 0)                 // biYPelsPerMeter
	writeU32(&strf, 0)                 // biClrUsed
	writeU32(&strf, 0)                 // biClrImportant

	var strh bytes.Buffer
	strh.WriteString("vids")
	strh.WriteString("MJPG")
	writeU32(&strh, 0)         // flags
	writeU16(&strh, 0)         // priority
	writeU16(&strh, 0)         // language
	writeU32(&strh, 0)         // initial frames
	writeU32(&strh, 1)         // scale
	writeU32(&strh, fps)       // rate (rate/scale = fps)
	writeU32(&strh, 0)         // start
	writeU32(&strh, uint32(len(v.frames))) // length
	writeU32(&strh, 0)         // suggested buffer size
	writeU32(&strh, 0xFFFFFFFF) // quality: unspecified
	writeU32(&strh, 0)         // sample size
	writeU16(&strh, 0)         // frame left
	writeU16(&strh, 0)         // frame top
	writeU16(&strh, uint16(v.w))
	writeU16(&strh, uint16(v.h))

	var strl bytes.Buffer
	writeChunk(&strl, "strh", strh.Bytes())
	writeChunk(&strl, "strf", strf.Bytes())

	var avih bytes.Buffer
	writeU32(&avih, uint32(1000000/fps)) // microseconds per frame
	writeU32(&avih, 0)                   // max bytes per sec
	writeU32(&avih, 0)                   // padding granularity
	writeU32(&avih, 0x10)                // flags: AVIF_HASINDEX
	writeU32(&avih, uint32(len(v.frames)))
	writeU32(&avih, 0)  // initial frames
	writeU32(&avih, 1)  // streams
	writeU32(&avih, 0)  // suggested buffer size
	writeU32(&avih, uint32(v.w))
	writeU32(&avih, uint32(v.h))
	writeU32(&avih, 0) // reserved
	writeU32(&avih, 0)
	writeU32(&avih, 0)
	writeU32(&avih, 0)

	var hdrl bytes.Buffer
	writeChunk(&hdrl, "avih", avih.Bytes())
	writeList(&hdrl, "strl", strl.Bytes())

	var riff bytes.Buffer
	writeList(&riff, "hdrl", hdrl.Bytes())
	writeList(&riff, "movi", movi.Bytes())
	riff.Write(chunkBytes("idx1", idx1.Bytes()))

	f, err := os.Create(path)
	if err != nil {
		return chk.Err("snapshot: create %q: %v", path, err)
	}
	defer f.Close()

	if _, err := f.WriteString("RIFF"); err != nil {
		return chk.Err("snapshot: write %q: %v", path, err)
	}
	if err := binary.Write(f, binary.LittleEndian, uint32(4+riff.Len())); err != nil {
		return chk.Err("snapshot: write %q: %v", path, err)
	}
	if _, err := f.WriteString("AVI "); err != nil {
		return chk.Err("snapshot: write %q: %v", path, err)
	}
	if _, err := f.Write(riff.Bytes()); err != nil {
		return chk.Err("snapshot: write %q: %v", path, err)
	}
	io.Pf("snapshot: wrote %d-frame video to %s\n", len(v.frames), path)
	return nil
}

func writeU32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func writeU16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

// chunkBytes returns a RIFF chunk: 4-byte fourCC, 4-byte little-endian
// size, payload, and a pad byte if the payload length is odd.
func chunkBytes(fourCC string, payload []byte) []byte {
	var buf bytes.Buffer
	writeChunk(&buf, fourCC, payload)
	return buf.Bytes()
}

func writeChunk(buf *bytes.Buffer, fourCC string, payload []byte) {
	buf.WriteString(fourCC)
	writeU32(buf, uint32(len(payload)))
	buf.Write(payload)
	if len(payload)%2 == 1 {
		buf.WriteByte(0)
	}
}

// writeList wraps payload in a RIFF "LIST" chunk tagged with listType
// (e.g. "hdrl", "strl", "movi").
func writeList(buf *bytes.Buffer, listType string, payload []byte) {
	buf.WriteString("LIST")
	writeU32(buf, uint32(4+len(payload)))
	buf.WriteString(listType)
	buf.Write(payload)
}

// videoPath returns the end-of-run video's output path within dir.
func videoPath(dir string) string {
	return filepath.Join(dir, "cellsim.avi")
}
