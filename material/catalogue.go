package material

// MaxTemperature is the ceiling a Particle's temperature may reach;
// see particle.AddHeat.
const MaxTemperature = 9275

// MinTemperature is the floor a Particle's temperature may fall to.
const MinTemperature = -200

// AmbientTemperature is the default environment temperature a fresh
// World cell starts at, and the relax target for inert variants.
const AmbientTemperature = 22

var catalogue [numVariants]Type

func init() {
	register(Type{
		Variant: Empty, Name: "Empty", Weight: 0, Strength: 0,
		Colour: RGBA{0, 0, 0, 0}, BaseTemperature: AmbientTemperature,
		Property: PropertySolid, Group: GroupSolids,
	})
	register(Type{
		Variant: Wall, Name: "Wall", Weight: 255, Strength: 0,
		Colour: RGBA{80, 80, 80, 255}, BaseTemperature: AmbientTemperature,
		Property: PropertySolid, Flags: Immutable, Group: GroupSolids,
	})
	register(Type{
		Variant: Sand, Name: "Sand", Weight: 160, Strength: 0,
		Colour: RGBA{196, 174, 103, 255}, BaseTemperature: AmbientTemperature,
		Property: PropertyPowder, Group: GroupSolids,
	})
	register(Type{
		Variant: Glass, Name: "Glass", Weight: 200, Strength: 0,
		Colour: RGBA{186, 215, 216, 200}, BaseTemperature: AmbientTemperature,
		Property: PropertySolid, Group: GroupSolids,
	})
	register(Type{
		Variant: Water, Name: "Water", Weight: 50, Strength: 0,
		Colour: RGBA{40, 100, 220, 220}, BaseTemperature: AmbientTemperature,
		Property: PropertyLiquid, Group: GroupLiquids,
	})
	register(Type{
		Variant: Fire, Name: "Fire", Weight: 5, Strength: 0,
		Colour: RGBA{230, 90, 20, 255}, BaseTemperature: 800,
		Property: PropertySolid, Flags: Burns | Ignites, Group: GroupEnergy,
	})
	register(Type{
		Variant: Smoke, Name: "Smoke", Weight: 2, Strength: 0,
		Colour: RGBA{90, 90, 90, 140}, BaseTemperature: AmbientTemperature,
		Property: PropertyGas, Group: GroupGases,
	})
	register(Type{
		Variant: Salt, Name: "Salt", Weight: 140, Strength: 3,
		Colour: RGBA{230, 230, 230, 255}, BaseTemperature: AmbientTemperature,
		Property: PropertyPowder, Group: GroupSolids,
	})
	register(Type{
		Variant: SaltWater, Name: "Salt Water", Weight: 55, Strength: 0,
		Colour: RGBA{80, 130, 200, 220}, BaseTemperature: AmbientTemperature,
		Property: PropertyLiquid, Group: GroupLiquids,
	})
	register(Type{
		Variant: Oxygen, Name: "Oxygen", Weight: 8, Strength: 0,
		Colour: RGBA{120, 170, 255, 120}, BaseTemperature: AmbientTemperature,
		Property: PropertyGas, Group: GroupGases,
	})
	register(Type{
		Variant: Hydrogen, Name: "Hydrogen", Weight: 3, Strength: 0,
		Colour: RGBA{220, 240, 255, 110}, BaseTemperature: AmbientTemperature,
		Property: PropertyGas, Flags: Explosive, Group: GroupGases,
	})
	register(Type{
		Variant: Helium, Name: "Helium", Weight: 1, Strength: 0,
		Colour: RGBA{230, 230, 180, 110}, BaseTemperature: AmbientTemperature,
		Property: PropertyGas, Group: GroupGases,
	})
	register(Type{
		Variant: Carbon, Name: "Carbon", Weight: 6, Strength: 0,
		Colour: RGBA{40, 40, 40, 140}, BaseTemperature: AmbientTemperature,
		Property: PropertyGas, Group: GroupGases,
	})
	register(Type{
		Variant: Nitrogen, Name: "Nitrogen", Weight: 7, Strength: 0,
		Colour: RGBA{180, 200, 230, 110}, BaseTemperature: AmbientTemperature,
		Property: PropertyGas, Group: GroupGases,
	})
	register(Type{
		Variant: Iron, Name: "Iron", Weight: 220, Strength: 0,
		Colour: RGBA{140, 130, 120, 255}, BaseTemperature: AmbientTemperature,
		Property: PropertySolid, Group: GroupSolids,
	})
	register(Type{
		Variant: CO2, Name: "CO2", Weight: 9, Strength: 0,
		Colour: RGBA{150, 150, 150, 110}, BaseTemperature: AmbientTemperature,
		Property: PropertyGas, Group: GroupGases,
	})
	register(Type{
		Variant: WaterVapour, Name: "Water Vapour", Weight: 4, Strength: 0,
		Colour: RGBA{220, 230, 240, 130}, BaseTemperature: AmbientTemperature,
		Property: PropertyGas, Group: GroupGases,
	})
	register(Type{
		Variant: GameOfLife, Name: "Game of Life", Weight: 100, Strength: 0,
		Colour: RGBA{60, 220, 100, 255}, BaseTemperature: AmbientTemperature,
		Property: PropertySolid, Flags: Alive, Group: GroupLife,
	})
}

func register(t Type) {
	catalogue[t.Variant] = t
}

// Lookup returns the shared Type descriptor for v. Lookup is O(1) and
// the returned pointer is valid for the life of the process.
func Lookup(v Variant) *Type {
	if int(v) >= len(catalogue) {
		return &catalogue[Empty]
	}
	return &catalogue[v]
}

// All returns every registered Type in stable Variant-code order.
func All() []Type {
	out := make([]Type, len(catalogue))
	copy(out, catalogue[:])
	return out
}
