package ctf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveProperties(t *testing.T) {
	c := exteriorWall(true)

	r := 0.016/0.16 + 0.05/0.03 + 0.18 + 0.1/0.89
	assert.InEpsilon(t, 1.0/r, c.ThermalConductance, 1e-12)
	assert.Equal(t, 0.85, c.InsideAbsorpThermal)
	assert.Equal(t, 0.5, c.InsideAbsorpSolar)
	assert.Equal(t, 0.9, c.OutsideAbsorpThermal)
	assert.Equal(t, 0.7, c.OutsideAbsorpSolar)
	assert.Equal(t, Rough, c.OutsideRoughness)
	assert.Equal(t, 4, c.TotLayers())
}

func TestMaterialLayerResistive(t *testing.T) {
	tests := []struct {
		name  string
		layer MaterialLayer
		want  bool
	}{
		{"concrete", concrete(0.2), false},
		{"no mass", noMass("R", 1.0), true},
		{"air", airGap(0.15), true},
		{"massless regular", MaterialLayer{Kind: Regular, Thickness: 0.01, Conductivity: 0.05}, true},
		{"zero thickness", MaterialLayer{Kind: Regular, Conductivity: 1.0, Density: 1000, SpecificHeat: 1000}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.layer.IsResistive())
		})
	}
}

func TestMaterialLayerThermalResistance(t *testing.T) {
	assert.InDelta(t, 0.125, concrete(0.2).ThermalResistance(), 1e-15)
	assert.Equal(t, 2.0, noMass("R", 2.0).ThermalResistance())
	assert.Equal(t, 0.0, noMass("R", 2.0).HeatCapacity())
	assert.InDelta(t, 2300*880*0.2, concrete(0.2).HeatCapacity(), 1e-6)
}

func TestParseRoughness(t *testing.T) {
	r, err := ParseRoughness("mediumsmooth")
	require.NoError(t, err)
	assert.Equal(t, MediumSmooth, r)

	r, err = ParseRoughness("")
	require.NoError(t, err)
	assert.Equal(t, MediumRough, r)

	_, err = ParseRoughness("glassy")
	assert.Error(t, err)

	assert.Equal(t, "VeryRough", VeryRough.String())
}

func TestParseLayerKind(t *testing.T) {
	for in, want := range map[string]LayerKind{
		"":                Regular,
		"Regular":         Regular,
		"NoMass":          NoMass,
		"Material:NoMass": NoMass,
		"air":             Air,
	} {
		got, err := ParseLayerKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseLayerKind("foam")
	assert.Error(t, err)
}

func TestSteadyStateConductance(t *testing.T) {
	s := &CTFSet{
		NumTerms: 1,
		Outside:  []float64{3.0, -1.0},
		Cross:    []float64{0.5, 0.5},
		Inside:   []float64{2.5, -0.5},
		Flux:     []float64{0.5},
	}
	o, x, i := s.SteadyStateConductance()
	assert.InDelta(t, 4.0, o, 1e-12)
	assert.InDelta(t, 2.0, x, 1e-12)
	assert.InDelta(t, 4.0, i, 1e-12)
}
