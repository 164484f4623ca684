// Package environment holds the per-cell ambient field (temperature,
// pressure) that runs parallel to, and independent of, the particle
// grid it underlies.
package environment

import (
	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/pthm-cable/cellsim/material"
)

// Cell is one slot of the environment field.
type Cell struct {
	Pressure           float64
	AmbientTemperature float64
	AmbientPressure    float64
}

// defaultCell is returned for any out-of-bounds read.
var defaultCell = Cell{Pressure: 0, AmbientTemperature: material.AmbientTemperature, AmbientPressure: 0}

// Field is the width*height parallel array of environment cells.
type Field struct {
	cells  []Cell
	width  int
	height int
}

// New creates a field of the given dimensions. Every cell starts with
// a temperature texture seeded from simplex noise around
// material.AmbientTemperature, rather than a flat plane, so a fresh
// World has organic thermal variation from the first tick.
func New(width, height int, seed int64) *Field {
	f := &Field{
		cells:  make([]Cell, width*height),
		width:  width,
		height: height,
	}
	noise := opensimplex.New(seed)
	const scale = 0.08
	const amplitude = 2.5
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			n := noise.Eval2(float64(x)*scale, float64(y)*scale)
			f.cells[y*width+x] = Cell{
				Pressure:           0,
				AmbientTemperature: material.AmbientTemperature + n*amplitude,
				AmbientPressure:    0,
			}
		}
	}
	return f
}

func (f *Field) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= f.width || y >= f.height {
		return 0, false
	}
	return y*f.width + x, true
}

// Get returns a copy of the cell at (x,y), or the default cell if out
// of bounds.
func (f *Field) Get(x, y int) Cell {
	i, ok := f.index(x, y)
	if !ok {
		return defaultCell
	}
	return f.cells[i]
}

// Set overwrites the cell at (x,y); silently dropped if out of bounds.
func (f *Field) Set(x, y int, c Cell) {
	i, ok := f.index(x, y)
	if !ok {
		return
	}
	f.cells[i] = c
}

// Reset returns every cell to its construction-time default, flattened
// (no noise reseed — reset is meant to be cheap and repeatable).
func (f *Field) Reset() {
	for i := range f.cells {
		f.cells[i] = defaultCell
	}
}

// Width and Height report the field's dimensions.
func (f *Field) Width() int  { return f.width }
func (f *Field) Height() int { return f.height }
