package environment

import "testing"

func TestOutOfBoundsReadReturnsDefault(t *testing.T) {
	f := New(4, 4, 1)
	c := f.Get(-1, 0)
	if c != defaultCell {
		t.Errorf("out-of-bounds Get = %+v, want default %+v", c, defaultCell)
	}
	c = f.Get(4, 4)
	if c != defaultCell {
		t.Errorf("out-of-bounds Get = %+v, want default %+v", c, defaultCell)
	}
}

func TestOutOfBoundsWriteIsSilentNoOp(t *testing.T) {
	f := New(4, 4, 1)
	before := f.Get(0, 0)
	f.Set(-1, -1, Cell{AmbientTemperature: 999})
	after := f.Get(0, 0)
	if before != after {
		t.Error("out-of-bounds write should not affect in-bounds cells")
	}
}

func TestSetThenGetRoundTrips(t *testing.T) {
	f := New(4, 4, 1)
	want := Cell{Pressure: 1.5, AmbientTemperature: 42, AmbientPressure: 3}
	f.Set(2, 2, want)
	if got := f.Get(2, 2); got != want {
		t.Errorf("Get(2,2) = %+v, want %+v", got, want)
	}
}

func TestResetFlattensField(t *testing.T) {
	f := New(4, 4, 1)
	f.Set(1, 1, Cell{AmbientTemperature: 999})
	f.Reset()
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if f.Get(x, y) != defaultCell {
				t.Fatalf("cell (%d,%d) not reset to default", x, y)
			}
		}
	}
}
