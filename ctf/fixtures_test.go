package ctf

func concrete(thickness float64) MaterialLayer {
	return MaterialLayer{
		Name: "Concrete", Kind: Regular,
		Thickness: thickness, Conductivity: 1.6, Density: 2300, SpecificHeat: 880,
		ThermalAbsorptance: 0.9, SolarAbsorptance: 0.65, Roughness: MediumRough,
	}
}

func gypsum() MaterialLayer {
	return MaterialLayer{
		Name: "Gypsum", Kind: Regular,
		Thickness: 0.016, Conductivity: 0.16, Density: 800, SpecificHeat: 1090,
		ThermalAbsorptance: 0.85, SolarAbsorptance: 0.5, Roughness: Smooth,
	}
}

func insulation() MaterialLayer {
	return MaterialLayer{
		Name: "Insulation", Kind: Regular,
		Thickness: 0.05, Conductivity: 0.03, Density: 43, SpecificHeat: 1210,
		ThermalAbsorptance: 0.9, SolarAbsorptance: 0.7, Roughness: MediumRough,
	}
}

func brick() MaterialLayer {
	return MaterialLayer{
		Name: "Brick", Kind: Regular,
		Thickness: 0.1, Conductivity: 0.89, Density: 1920, SpecificHeat: 790,
		ThermalAbsorptance: 0.9, SolarAbsorptance: 0.7, Roughness: Rough,
	}
}

func noMass(name string, r float64) MaterialLayer {
	return MaterialLayer{Name: name, Kind: NoMass, Resistance: r, ThermalAbsorptance: 0.9, SolarAbsorptance: 0.7}
}

func airGap(r float64) MaterialLayer {
	return MaterialLayer{Name: "Air Gap", Kind: Air, Resistance: r}
}

// gypsum, insulation, air gap, brick
func exteriorWall(used bool) *Construction {
	return NewConstruction("Exterior Wall", used, gypsum(), insulation(), airGap(0.18), brick())
}

// concrete and insulation, three times
func alternatingWall(used bool) *Construction {
	var layers []MaterialLayer
	for i := 0; i < 3; i++ {
		layers = append(layers, concrete(0.2), insulation())
	}
	return NewConstruction("Alternating", used, layers...)
}

// no wider time step than the base one
func fixedStepConfig() Config {
	cfg := DefaultConfig()
	cfg.MaxTimeStep = cfg.TimeStep.Hours()
	return cfg
}
