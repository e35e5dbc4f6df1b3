package ctf

/*
The eigen solve is better conditioned in English engineering units for the
usual range of building materials, so layers are converted before the state
matrices are assembled and the coefficients are converted back afterwards.
In these units conductance/capacitance ratios come out per hour.
*/

// NormalizeLayers converts SI layers to English engineering units.
func NormalizeLayers(layers []MaterialLayer) []MaterialLayer {
	return convertLayers(layers, false)
}

// DenormalizeLayers converts layers produced by NormalizeLayers back to SI.
func DenormalizeLayers(layers []MaterialLayer) []MaterialLayer {
	return convertLayers(layers, true)
}

func convertLayers(layers []MaterialLayer, back bool) []MaterialLayer {
	f := func(v, conv float64) float64 {
		if back {
			return v / conv
		}
		return v * conv
	}

	out := make([]MaterialLayer, len(layers))
	for i, l := range layers {
		l.Thickness = f(l.Thickness, thicknessConv())
		l.Conductivity = f(l.Conductivity, conductivityConv())
		l.Density = f(l.Density, densityConv())
		l.SpecificHeat = f(l.SpecificHeat, specificHeatConv())
		l.Resistance = f(l.Resistance, resistanceConv())
		out[i] = l
	}
	return out
}

// DenormalizeCTF scales the coefficient sequences from Btu/h ft2 °F to W/m2 K.
// The time step and the flux history terms are dimensionless in this sense and stay.
func DenormalizeCTF(s *CTFSet) *CTFSet {
	conv := resistanceConv()
	scale := func(v []float64) []float64 {
		out := make([]float64, len(v))
		for i := range v {
			out[i] = v[i] * conv
		}
		return out
	}

	flux := make([]float64, len(s.Flux))
	copy(flux, s.Flux)

	return &CTFSet{
		TimeStep: s.TimeStep,
		NumTerms: s.NumTerms,
		Outside:  scale(s.Outside),
		Cross:    scale(s.Cross),
		Inside:   scale(s.Inside),
		Flux:     flux,
	}
}
