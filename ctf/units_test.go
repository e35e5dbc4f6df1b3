package ctf

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLayersRoundTrip(t *testing.T) {
	layers := []MaterialLayer{concrete(0.2), gypsum(), insulation(), noMass("R2", 2.0), airGap(0.18)}

	back := DenormalizeLayers(NormalizeLayers(layers))
	require.Len(t, back, len(layers))
	for i, l := range layers {
		assert.InDelta(t, l.Thickness, back[i].Thickness, 1e-15, l.Name)
		assert.InDelta(t, l.Conductivity, back[i].Conductivity, 1e-14, l.Name)
		assert.InDelta(t, l.Density, back[i].Density, 1e-11, l.Name)
		assert.InDelta(t, l.SpecificHeat, back[i].SpecificHeat, 1e-11, l.Name)
		assert.InDelta(t, l.Resistance, back[i].Resistance, 1e-14, l.Name)
		assert.Equal(t, l.Name, back[i].Name)
		assert.Equal(t, l.Kind, back[i].Kind)
	}
}

func TestNormalizeLayersDoesNotMutate(t *testing.T) {
	layers := []MaterialLayer{concrete(0.2)}
	_ = NormalizeLayers(layers)
	assert.Equal(t, 0.2, layers[0].Thickness)
	assert.Equal(t, 1.6, layers[0].Conductivity)
}

func TestNormalizeLayersFactors(t *testing.T) {
	l := NormalizeLayers([]MaterialLayer{{
		Thickness: 0.3048, Conductivity: 1.0, Density: 1.0, SpecificHeat: 4186.8, Resistance: 1.0,
	}})[0]

	assert.InDelta(t, 1.0, l.Thickness, 1e-12)
	assert.InDelta(t, 0.5778, l.Conductivity, 1e-4)
	assert.InDelta(t, 0.062428, l.Density, 1e-6)
	assert.InDelta(t, 1.0, l.SpecificHeat, 1e-4)
	assert.InDelta(t, 5.6783, l.Resistance, 1e-4)
}

func TestNormalizedDiffusivityIsPerHour(t *testing.T) {
	si := concrete(0.2)
	en := NormalizeLayers([]MaterialLayer{si})[0]

	// m2/s -> ft2/h
	want := si.Diffusivity() * 3600.0 / (0.3048 * 0.3048)
	assert.InEpsilon(t, want, en.Diffusivity(), 1e-12)
}

func TestDenormalizeCTF(t *testing.T) {
	s := &CTFSet{
		TimeStep: 0.25,
		NumTerms: 1,
		Outside:  []float64{2.0, -1.0},
		Cross:    []float64{0.5, 0.5},
		Inside:   []float64{3.0, -2.0},
		Flux:     []float64{0.4},
	}
	out := DenormalizeCTF(s)

	conv := resistanceConv()
	assert.Equal(t, 0.25, out.TimeStep)
	assert.Equal(t, 1, out.NumTerms)
	assert.InDeltaSlice(t, []float64{2.0 * conv, -1.0 * conv}, out.Outside, 1e-12)
	assert.InDeltaSlice(t, []float64{0.5 * conv, 0.5 * conv}, out.Cross, 1e-12)
	assert.InDeltaSlice(t, []float64{3.0 * conv, -2.0 * conv}, out.Inside, 1e-12)
	assert.Equal(t, []float64{0.4}, out.Flux)
	assert.Equal(t, []float64{2.0, -1.0}, s.Outside, "input must not change")
}
