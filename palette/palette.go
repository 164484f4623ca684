// Package palette derives display colours from particles. It is a
// pure function boundary: the renderer needs only Colour, and the PNG
// loader additionally uses NearestVariant.
package palette

import (
	"math"

	"github.com/pthm-cable/cellsim/material"
	"github.com/pthm-cable/cellsim/particle"
)

const (
	whitenStart = 20.0
	whitenEnd   = 1020.0
)

// Colour derives the display colour for p: its variant's base colour,
// perturbed by an ra-keyed HSV grain, then blended toward white as
// temperature climbs from whitenStart to whitenEnd.
func Colour(p particle.Particle) material.RGBA {
	if p.VariantType == nil {
		return material.RGBA{}
	}
	c := varyColor(p.VariantType.Colour, p.Ra)
	return whiten(c, p.Temperature)
}

// varyColor nudges value (in HSV) by an amount keyed on ra, giving
// same-variant cells a grain instead of a flat fill.
func varyColor(c material.RGBA, ra uint8) material.RGBA {
	h, s, v := rgbToHSV(c.R, c.G, c.B)
	amount := (float64(ra)/255.0 - 0.5) * 0.12
	v = clamp01(v + amount)
	r, g, b := hsvToRGB(h, s, v)
	return material.RGBA{R: r, G: g, B: b, A: c.A}
}

// whiten blends c toward white as temperature climbs from whitenStart
// to whitenEnd, flat below/above the range.
func whiten(c material.RGBA, temperature float64) material.RGBA {
	t := (temperature - whitenStart) / (whitenEnd - whitenStart)
	t = clamp01(t)
	mix := func(ch uint8) uint8 {
		return uint8(float64(ch) + (255-float64(ch))*t)
	}
	return material.RGBA{R: mix(c.R), G: mix(c.G), B: mix(c.B), A: c.A}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func rgbToHSV(r, g, b uint8) (h, s, v float64) {
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	v = max
	d := max - min
	if max == 0 {
		s = 0
	} else {
		s = d / max
	}
	if d == 0 {
		h = 0
		return
	}
	switch max {
	case rf:
		h = math.Mod((gf-bf)/d, 6)
	case gf:
		h = (bf-rf)/d + 2
	default:
		h = (rf-gf)/d + 4
	}
	h *= 60
	if h < 0 {
		h += 360
	}
	return
}

func hsvToRGB(h, s, v float64) (r, g, b uint8) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var rf, gf, bf float64
	switch {
	case h < 60:
		rf, gf, bf = c, x, 0
	case h < 120:
		rf, gf, bf = x, c, 0
	case h < 180:
		rf, gf, bf = 0, c, x
	case h < 240:
		rf, gf, bf = 0, x, c
	case h < 300:
		rf, gf, bf = x, 0, c
	default:
		rf, gf, bf = c, 0, x
	}
	r = uint8(clamp01(rf+m) * 255)
	g = uint8(clamp01(gf+m) * 255)
	b = uint8(clamp01(bf+m) * 255)
	return
}

// NearestVariant returns the catalogue variant whose base colour is
// closest to c by squared RGB distance — used by the PNG loader, which
// is lossy by construction (spec.md §4.8/§6).
func NearestVariant(c material.RGBA) material.Variant {
	best := material.Empty
	bestDist := math.MaxFloat64
	for _, t := range material.All() {
		d := colourDistance(t.Colour, c)
		if d < bestDist {
			bestDist = d
			best = t.Variant
		}
	}
	return best
}

func colourDistance(a, b material.RGBA) float64 {
	dr := float64(a.R) - float64(b.R)
	dg := float64(a.G) - float64(b.G)
	db := float64(a.B) - float64(b.B)
	return dr*dr + dg*dg + db*db
}
