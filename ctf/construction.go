package ctf

import (
	"fmt"
	"strings"
)

// LayerKind tells how a layer stores heat.
type LayerKind int

const (
	// Regular layers carry thickness, conductivity, density and specific heat.
	Regular LayerKind = iota
	// NoMass layers are a pure thermal resistance.
	NoMass
	// Air is an air gap, modelled as a pure thermal resistance.
	Air
)

func (k LayerKind) String() string {
	switch k {
	case Regular:
		return "Regular"
	case NoMass:
		return "NoMass"
	case Air:
		return "Air"
	default:
		return fmt.Sprintf("LayerKind(%d)", int(k))
	}
}

// ParseLayerKind reads the kind column of the material input.
func ParseLayerKind(s string) (LayerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "regular", "material":
		return Regular, nil
	case "nomass", "no-mass", "material:nomass":
		return NoMass, nil
	case "air", "airgap", "material:airgap":
		return Air, nil
	}
	return Regular, fmt.Errorf("unknown layer kind %q", s)
}

// Roughness of the outer surface. Stored and reported only.
type Roughness int

const (
	VeryRough Roughness = iota
	Rough
	MediumRough
	MediumSmooth
	Smooth
	VerySmooth
)

var roughnessNames = [...]string{
	"VeryRough",
	"Rough",
	"MediumRough",
	"MediumSmooth",
	"Smooth",
	"VerySmooth",
}

func (r Roughness) String() string {
	if r < VeryRough || r > VerySmooth {
		return fmt.Sprintf("Roughness(%d)", int(r))
	}
	return roughnessNames[r]
}

// ParseRoughness is case insensitive; an empty string is MediumRough.
func ParseRoughness(s string) (Roughness, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return MediumRough, nil
	}
	for i, name := range roughnessNames {
		if strings.EqualFold(name, s) {
			return Roughness(i), nil
		}
	}
	return MediumRough, fmt.Errorf("unknown roughness %q", s)
}

/*
MaterialLayer is one layer of a construction.

	Thickness: m
	Conductivity: W/m K
	Density: kg/m3
	SpecificHeat: J/kg K
	Resistance: m2 K/W, only read for NoMass and Air layers
*/
type MaterialLayer struct {
	Name               string
	Kind               LayerKind
	Thickness          float64
	Conductivity       float64
	Density            float64
	SpecificHeat       float64
	Resistance         float64
	ThermalAbsorptance float64
	SolarAbsorptance   float64
	Roughness          Roughness
}

// ThermalResistance of the layer, m2 K/W.
func (m MaterialLayer) ThermalResistance() float64 {
	if m.Kind != Regular {
		return m.Resistance
	}
	if m.Conductivity <= 0.0 {
		return 0.0
	}
	return m.Thickness / m.Conductivity
}

// HeatCapacity per unit area, J/m2 K.
func (m MaterialLayer) HeatCapacity() float64 {
	if m.Kind != Regular {
		return 0.0
	}
	return m.Density * m.SpecificHeat * m.Thickness
}

// IsResistive reports whether the layer takes no nodes of its own.
// Regular layers with a negligible capacity or conductivity count as resistive.
func (m MaterialLayer) IsResistive() bool {
	if m.Kind != Regular {
		return true
	}
	return m.Density*m.SpecificHeat < PhysPropLimit ||
		m.Thickness < PhysPropLimit ||
		m.Conductivity < PhysPropLimit
}

// Diffusivity of the layer in the unit system its properties are in.
func (m MaterialLayer) Diffusivity() float64 {
	return m.Conductivity / (m.Density * m.SpecificHeat)
}

/*
Construction is an ordered stack of layers, inside first.

CTF and Err are written once by the driver; exactly one of them is set after a run.
*/
type Construction struct {
	Name      string
	Layers    []MaterialLayer
	IsUsedCTF bool

	// surface-to-surface conductance, W/m2 K
	ThermalConductance float64

	OutsideAbsorpThermal float64
	InsideAbsorpThermal  float64
	OutsideAbsorpSolar   float64
	InsideAbsorpSolar    float64
	OutsideRoughness     Roughness

	CTF *CTFSet
	Err error
}

// NewConstruction builds a construction and derives its scalar properties.
func NewConstruction(name string, used bool, layers ...MaterialLayer) *Construction {
	c := &Construction{
		Name:      name,
		Layers:    layers,
		IsUsedCTF: used,
	}
	c.DeriveProperties()
	return c
}

// TotLayers is the number of layers.
func (c *Construction) TotLayers() int {
	return len(c.Layers)
}

// DeriveProperties sets the conductance, absorptances and roughness from the layers.
func (c *Construction) DeriveProperties() {
	if len(c.Layers) == 0 {
		return
	}

	r := 0.0
	for _, l := range c.Layers {
		r += l.ThermalResistance()
	}
	if r > 0.0 {
		c.ThermalConductance = 1.0 / r
	}

	inside := c.Layers[0]
	outside := c.Layers[len(c.Layers)-1]
	c.InsideAbsorpThermal = inside.ThermalAbsorptance
	c.InsideAbsorpSolar = inside.SolarAbsorptance
	c.OutsideAbsorpThermal = outside.ThermalAbsorptance
	c.OutsideAbsorpSolar = outside.SolarAbsorptance
	c.OutsideRoughness = outside.Roughness
}

/*
CTFSet is the conduction transfer function coefficient set of one construction.

	inside flux:  q_i = -Σ Inside[j] T_i + Σ Cross[j] T_o + Σ Flux[j-1] q_i
	outside flux: q_o = -Σ Cross[j] T_i + Σ Outside[j] T_o + Σ Flux[j-1] q_o

Coefficients are W/m2 K, time step in hours.
*/
type CTFSet struct {
	TimeStep float64
	NumTerms int
	Outside  []float64
	Cross    []float64
	Inside   []float64
	Flux     []float64
}

// SteadyStateConductance returns the conductance implied by each sequence.
func (s *CTFSet) SteadyStateConductance() (outside, cross, inside float64) {
	den := 1.0
	for _, f := range s.Flux {
		den -= f
	}
	for j := 0; j <= s.NumTerms; j++ {
		outside += s.Outside[j]
		cross += s.Cross[j]
		inside += s.Inside[j]
	}
	return outside / den, cross / den, inside / den
}
