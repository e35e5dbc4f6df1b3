package ctf

// Base quantities of the English engineering unit system, in SI.
const (
	// 1 Btu, J
	btu = 1055.05585262

	// 1 lb, kg
	pound = 0.45359237

	// 1 ft, m
	foot = 0.3048

	// temperature difference of 1 °F, K
	degF = 5.0 / 9.0

	// 1 h, s
	hour = 3600.0
)

// conductivity, (Btu/h ft °F) per (W/m K)
func conductivityConv() float64 {
	return hour * foot * degF / btu
}

// density, (lb/ft3) per (kg/m3)
func densityConv() float64 {
	return foot * foot * foot / pound
}

// specific heat, (Btu/lb °F) per (J/kg K)
func specificHeatConv() float64 {
	return pound * degF / btu
}

// thickness, ft per m
func thicknessConv() float64 {
	return 1.0 / foot
}

// thermal resistance, (h ft2 °F/Btu) per (m2 K/W).
// Conductances go back to SI by multiplying with the same factor.
func resistanceConv() float64 {
	return btu / (hour * foot * foot * degF)
}

const (
	// PhysPropLimit is the magnitude below which a physical property counts as zero.
	PhysPropLimit = 1.0e-6

	// SmallestTimeStep is the shortest CTF time step accepted, h.
	SmallestTimeStep = 0.01
)
