package world

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/cellsim/material"
)

func TestGetParticleNeverUndefined(t *testing.T) {
	w := NewSeeded(10, 10, 1)
	for i := 0; i < 5; i++ {
		w.Tick()
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			p := w.GetParticle(x, y)
			if p.VariantType == nil {
				t.Fatalf("(%d,%d) has a nil VariantType", x, y)
			}
		}
	}
}

func TestResetClearsGridAndNeedsUpdate(t *testing.T) {
	w := NewSeeded(5, 5, 1)
	w.SetParticle(2, 2, material.Sand)
	w.Reset()

	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if w.GetParticle(x, y).Variant() != material.Empty {
				t.Fatalf("(%d,%d) not Empty after Reset", x, y)
			}
		}
	}
	if !w.NeedsUpdate() {
		t.Error("NeedsUpdate() should be true for at least one tick after Reset")
	}
}

func TestTickWhileNotRunningIsNoOp(t *testing.T) {
	w := NewSeeded(5, 5, 1)
	w.SetParticle(2, 2, material.Sand)
	w.Pause()

	before := snapshotGrid(w)
	w.Tick()
	after := snapshotGrid(w)

	if before != after {
		t.Error("Tick() while paused should not change the grid")
	}
}

func TestWallIsInvariantUnderTick(t *testing.T) {
	w := NewSeeded(5, 5, 1)
	w.SetParticle(2, 2, material.Wall)
	for i := 0; i < 20; i++ {
		w.Tick()
		if w.GetParticle(2, 2).Variant() != material.Wall {
			t.Fatalf("Wall mutated after tick %d", i)
		}
	}
}

func TestResetIsIdempotent(t *testing.T) {
	w := NewSeeded(5, 5, 1)
	w.SetParticle(1, 1, material.Sand)
	w.Reset()
	first := snapshotGrid(w)
	w.Reset()
	second := snapshotGrid(w)
	if first != second {
		t.Error("two successive Reset() calls should produce identical state")
	}
}

func TestDeterminismWithFixedSeed(t *testing.T) {
	mk := func() *World {
		w := NewSeeded(12, 12, 42)
		w.SetParticle(5, 0, material.Water)
		w.SetParticle(6, 0, material.Sand)
		return w
	}
	a, b := mk(), mk()
	for i := 0; i < 50; i++ {
		a.Tick()
		b.Tick()
	}
	if snapshotGrid(a) != snapshotGrid(b) {
		t.Error("two runs from the same seed and initial grid should be identical")
	}
}

func snapshotGrid(w *World) string {
	s := ""
	for y := 0; y < w.height; y++ {
		for x := 0; x < w.width; x++ {
			p := w.GetParticle(x, y)
			s += string(rune(p.Variant())) + ","
		}
	}
	return s
}

func TestSLCRoundTrip(t *testing.T) {
	w := NewSeeded(6, 6, 3)
	w.SetParticle(1, 1, material.Sand)
	w.SetParticle(2, 2, material.Water)
	w.SetParticle(3, 3, material.Fire)
	for i := 0; i < 3; i++ {
		w.Tick()
	}

	path := filepath.Join(t.TempDir(), "grid.slc")
	if err := w.SaveToSLC(path); err != nil {
		t.Fatalf("SaveToSLC: %v", err)
	}

	loaded := NewSeeded(6, 6, 99)
	if err := loaded.LoadFromSLC(path); err != nil {
		t.Fatalf("LoadFromSLC: %v", err)
	}

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			want := w.GetParticle(x, y)
			got := loaded.GetParticle(x, y)
			if want != got {
				t.Fatalf("(%d,%d) = %+v, want %+v", x, y, got, want)
			}
		}
	}
	if loaded.Generation() != w.Generation() {
		t.Errorf("Generation() = %d, want %d", loaded.Generation(), w.Generation())
	}
}

func TestLoadFromSLCLeavesWorldUntouchedOnFailure(t *testing.T) {
	w := NewSeeded(4, 4, 1)
	w.SetParticle(1, 1, material.Sand)
	before := snapshotGrid(w)

	err := w.LoadFromSLC(filepath.Join(t.TempDir(), "does-not-exist.slc"))
	if err == nil {
		t.Fatal("expected an error loading a missing file")
	}
	if snapshotGrid(w) != before {
		t.Error("failed load should not mutate world state")
	}
}

func TestPNGRoundTripIsLossyButStable(t *testing.T) {
	w := NewSeeded(8, 8, 1)
	w.SetParticle(3, 3, material.Water)
	w.SetParticle(4, 4, material.Sand)

	path := filepath.Join(t.TempDir(), "grid.png")
	if err := w.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected PNG file to exist: %v", err)
	}

	loaded := NewSeeded(8, 8, 1)
	if err := loaded.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.GetParticle(3, 3).Variant() != material.Water {
		t.Errorf("(3,3) = %v, want Water after PNG round trip", loaded.GetParticle(3, 3).Variant())
	}
	if loaded.GetParticle(4, 4).Variant() != material.Sand {
		t.Errorf("(4,4) = %v, want Sand after PNG round trip", loaded.GetParticle(4, 4).Variant())
	}
}

// --- concrete end-to-end scenarios (spec.md §8) ---

func TestScenarioSandFalls(t *testing.T) {
	w := NewSeeded(10, 10, 1)
	w.SetParticle(5, 0, material.Sand)
	for i := 0; i < 9; i++ {
		w.Tick()
	}
	if w.GetParticle(5, 9).Variant() != material.Sand {
		t.Fatalf("(5,9) = %v, want Sand", w.GetParticle(5, 9).Variant())
	}
	for y := 0; y < 9; y++ {
		if w.GetParticle(5, y).Variant() != material.Empty {
			t.Errorf("(5,%d) = %v, want Empty", y, w.GetParticle(5, y).Variant())
		}
	}
}

func TestScenarioWaterSpreads(t *testing.T) {
	w := NewSeeded(20, 5, 7)
	for x := 0; x < 20; x++ {
		w.SetParticle(x, 4, material.Wall)
	}
	w.SetParticle(10, 0, material.Water)
	for i := 0; i < 100; i++ {
		w.Tick()
	}

	waterOnRow3 := 0
	for x := 0; x < 20; x++ {
		if w.GetParticle(x, 3).Variant() == material.Water {
			waterOnRow3++
		}
	}
	if waterOnRow3 < 5 {
		t.Errorf("row 3 has %d Water cells, want >= 5", waterOnRow3)
	}
	for y := 0; y < 1; y++ {
		for x := 0; x < 20; x++ {
			if w.GetParticle(x, y).Variant() == material.Water {
				t.Errorf("(%d,%d) is Water, want none above y=1", x, y)
			}
		}
	}
}

func TestScenarioSandOnWaterDisplaces(t *testing.T) {
	w := NewSeeded(5, 10, 11)
	for y := 5; y < 10; y++ {
		for x := 0; x < 5; x++ {
			w.SetParticle(x, y, material.Water)
		}
	}
	w.SetParticle(2, 0, material.Sand)
	for i := 0; i < 20; i++ {
		w.Tick()
	}

	sandDeep := false
	for y := 5; y < 10; y++ {
		for x := 0; x < 5; x++ {
			if w.GetParticle(x, y).Variant() == material.Sand {
				sandDeep = true
			}
		}
	}
	waterRose := false
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if w.GetParticle(x, y).Variant() == material.Water {
				waterRose = true
			}
		}
	}
	if !sandDeep {
		t.Error("sand should have sunk to y >= 5")
	}
	if !waterRose {
		t.Error("a displaced water cell should have risen above y=5")
	}
}

func TestScenarioFireToSmokeToEmpty(t *testing.T) {
	w := NewSeeded(3, 3, 5)
	w.SetParticle(1, 1, material.Fire)

	sawSmoke := false
	reachedEmpty := false
	for i := 0; i < 500; i++ {
		w.Tick()
		switch w.GetParticle(1, 1).Variant() {
		case material.Smoke:
			sawSmoke = true
		case material.Empty:
			reachedEmpty = true
		}
		if reachedEmpty {
			break
		}
	}
	if !sawSmoke {
		t.Error("(1,1) should have been Smoke at least once")
	}
	if !reachedEmpty {
		t.Error("(1,1) should eventually reach Empty")
	}
}

func TestScenarioSaltAndWaterFormSaltWater(t *testing.T) {
	w := NewSeeded(3, 3, 9)
	w.SetParticle(1, 0, material.Water)
	w.SetParticle(1, 1, material.Salt)

	for i := 0; i < 50; i++ {
		w.Tick()
		if w.GetParticle(1, 2).Variant() == material.SaltWater {
			return
		}
	}
	t.Errorf("(1,2) = %v, want SaltWater after enough ticks", w.GetParticle(1, 2).Variant())
}

func TestScenarioGameOfLifeBlinker(t *testing.T) {
	w := NewSeeded(5, 5, 13)
	w.SetParticle(1, 2, material.GameOfLife)
	w.SetParticle(2, 2, material.GameOfLife)
	w.SetParticle(3, 2, material.GameOfLife)

	w.Tick()
	wantAlive := [][2]int{{2, 1}, {2, 2}, {2, 3}}
	for _, c := range wantAlive {
		if w.GetParticle(c[0], c[1]).Variant() != material.GameOfLife {
			t.Errorf("after 1 tick, (%d,%d) should be alive", c[0], c[1])
		}
	}

	w.Tick()
	wantAliveAgain := [][2]int{{1, 2}, {2, 2}, {3, 2}}
	for _, c := range wantAliveAgain {
		if w.GetParticle(c[0], c[1]).Variant() != material.GameOfLife {
			t.Errorf("after 2 ticks, (%d,%d) should be alive again", c[0], c[1])
		}
	}
}
