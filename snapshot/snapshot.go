// Package snapshot implements the two on-disk formats the world can be
// persisted to: a compressed binary dump (.slc) that round-trips every
// field exactly, and a lossy PNG fallback that only preserves colour.
package snapshot

import (
	"bytes"
	"compress/flate"
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"github.com/pthm-cable/cellsim/material"
	"github.com/pthm-cable/cellsim/palette"
	"github.com/pthm-cable/cellsim/particle"
)

// recordSize is the fixed per-cell record width for the .slc format:
// nine 4-byte little-endian fields (spec.md §4.8).
const recordSize = 36

// Source is the read view a world exposes for saving.
type Source interface {
	Width() int
	Height() int
	Generation() uint8
	Particle(x, y int) (particle.Particle, bool)
}

// Sink is the write view a world exposes for loading.
type Sink interface {
	Width() int
	Height() int
	SetGeneration(g uint8)
	WriteParticle(x, y int, p particle.Particle) int
}

// SaveToSLC writes the grid's full per-cell state to path as a
// flate-compressed binary stream. src is only read, never written;
// failures return an error.
func SaveToSLC(src Source, path string) error {
	var raw bytes.Buffer
	raw.WriteByte(src.Generation())

	w, h := src.Width(), src.Height()
	record := make([]byte, recordSize)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p, _ := src.Particle(x, y)
			encodeRecord(record, p)
			raw.Write(record)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	defer f.Close()

	fw, err := flate.NewWriter(f, flate.DefaultCompression)
	if err != nil {
		return fmt.Errorf("snapshot: compress %s: %w", path, err)
	}
	if _, err := fw.Write(raw.Bytes()); err != nil {
		return fmt.Errorf("snapshot: write %s: %w", path, err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("snapshot: flush %s: %w", path, err)
	}
	return nil
}

// LoadFromSLC reverses SaveToSLC into dst. On any failure — I/O,
// truncation, or a record count mismatch — dst is left untouched and
// an error is returned.
func LoadFromSLC(dst Sink, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer f.Close()

	fr := flate.NewReader(f)
	defer fr.Close()

	raw, err := io.ReadAll(fr)
	if err != nil {
		return fmt.Errorf("snapshot: decompress %s: %w", path, err)
	}

	w, h := dst.Width(), dst.Height()
	wantLen := 1 + w*h*recordSize
	if len(raw) != wantLen {
		return fmt.Errorf("snapshot: %s: corrupt snapshot: got %d bytes, want %d", path, len(raw), wantLen)
	}

	generation := raw[0]
	body := raw[1:]
	record := make([]byte, recordSize)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := (y*w + x) * recordSize
			copy(record, body[i:i+recordSize])
			dst.WriteParticle(x, y, decodeRecord(record))
		}
	}
	dst.SetGeneration(generation)
	return nil
}

func encodeRecord(b []byte, p particle.Particle) {
	var modified uint32
	if p.Modified {
		modified = 1
	}
	binary.LittleEndian.PutUint32(b[0:4], uint32(p.Variant()))
	binary.LittleEndian.PutUint32(b[4:8], uint32(p.Ra))
	binary.LittleEndian.PutUint32(b[8:12], uint32(p.Rb))
	binary.LittleEndian.PutUint32(b[12:16], uint32(p.Clock))
	binary.LittleEndian.PutUint32(b[16:20], uint32(p.Strength))
	binary.LittleEndian.PutUint32(b[20:24], modified)
	binary.LittleEndian.PutUint32(b[24:28], math.Float32bits(p.Velocity.X))
	binary.LittleEndian.PutUint32(b[28:32], math.Float32bits(p.Velocity.Y))
	binary.LittleEndian.PutUint32(b[32:36], math.Float32bits(float32(p.Temperature)))
}

func decodeRecord(b []byte) particle.Particle {
	variantCode := binary.LittleEndian.Uint32(b[0:4])
	variant := material.Variant(variantCode)
	if int(variant) >= len(material.All()) {
		variant = material.Empty
	}

	p := particle.New(variant)
	p.Ra = uint8(binary.LittleEndian.Uint32(b[4:8]))
	p.Rb = uint8(binary.LittleEndian.Uint32(b[8:12]))
	p.Clock = uint8(binary.LittleEndian.Uint32(b[12:16]))
	p.Strength = uint8(binary.LittleEndian.Uint32(b[16:20]))
	p.Modified = binary.LittleEndian.Uint32(b[20:24]) != 0
	p.Velocity.X = math.Float32frombits(binary.LittleEndian.Uint32(b[24:28]))
	p.Velocity.Y = math.Float32frombits(binary.LittleEndian.Uint32(b[28:32]))
	p.Temperature = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[32:36])))
	return p
}

// Save writes a lossy RGB PNG: one pixel per cell, coloured via
// palette.Colour.
func Save(src Source, path string) error {
	w, h := src.Width(), src.Height()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p, _ := src.Particle(x, y)
			c := palette.Colour(p)
			img.Set(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}
	return nil
}

// Load reconstructs a grid from a PNG by nearest-colour match against
// the variant catalogue. Lossy: ra/rb/clock/strength/velocity are not
// recoverable from a flat colour and are reset to a fresh particle of
// the matched variant.
func Load(dst Sink, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("snapshot: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return fmt.Errorf("snapshot: decode %s: %w", path, err)
	}

	bounds := img.Bounds()
	w, h := dst.Width(), dst.Height()
	if bounds.Dx() != w || bounds.Dy() != h {
		return fmt.Errorf("snapshot: %s: size %dx%d does not match grid %dx%d", path, bounds.Dx(), bounds.Dy(), w, h)
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			rgba := material.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 255}
			variant := palette.NearestVariant(rgba)
			dst.WriteParticle(x, y, particle.New(variant))
		}
	}
	return nil
}
