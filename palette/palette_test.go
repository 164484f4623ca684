package palette

import (
	"testing"

	"github.com/pthm-cable/cellsim/material"
	"github.com/pthm-cable/cellsim/particle"
)

func TestColourOfEmptyParticleIsZeroValue(t *testing.T) {
	var p particle.Particle
	c := Colour(p)
	if c != (material.RGBA{}) {
		t.Errorf("Colour(zero value) = %+v, want zero RGBA", c)
	}
}

func TestColourWhitensWithTemperature(t *testing.T) {
	cold := particle.New(material.Iron)
	hot := particle.New(material.Iron)
	hot.Temperature = 1020

	cc := Colour(cold)
	hc := Colour(hot)
	if hc.R < cc.R || hc.G < cc.G || hc.B < cc.B {
		t.Errorf("hot colour %+v should be whiter than cold colour %+v", hc, cc)
	}
}

func TestNearestVariantRoundTripsCatalogueColours(t *testing.T) {
	for _, typ := range material.All() {
		if typ.Variant == material.Empty {
			continue
		}
		got := NearestVariant(typ.Colour)
		if got != typ.Variant {
			t.Errorf("NearestVariant(%v's colour) = %v, want %v", typ.Name, got, typ.Variant)
		}
	}
}
