package ctf

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Inputs of the state-space system.
const (
	inOutside = 0 // outside surface temperature
	inInside  = 1 // inside surface temperature
)

// Outputs of the state-space system.
const (
	outOutside = 0 // flux entering the outside face
	outInside  = 1 // flux leaving the inside face
)

/*
StateSpace is the continuous-time model of one construction in English units:

	dx/dt = A x + B u
	y     = C x + D u

with u = [T_outside, T_inside] and y = [q_outside, q_inside]. A = Cap^-1 K and
B = Cap^-1 E, where Cap is the diagonal node capacitance and K the symmetric
conductance network.
*/
type StateSpace struct {
	Name string

	// cells per layer, 0 for resistive layers
	Nodes []int

	Cap []float64
	K   *mat.SymDense
	E   *mat.Dense

	A *mat.Dense
	B *mat.Dense
	C *mat.Dense
	D *mat.Dense
}

// NumStates is the number of interior nodes.
func (ss *StateSpace) NumStates() int {
	return len(ss.Cap)
}

// segment is a link between two grid points.
type segment struct {
	g   float64 // conductance, Btu/h ft2 °F
	cap float64 // capacitance, Btu/ft2 °F
}

// NodeCount is the number of cells a mass layer is split into.
// Properties are in English units and timeStep in hours.
func NodeCount(l MaterialLayer, timeStep float64, cfg Config) int {
	minNodes := cfg.MinNodesPerLayer
	if minNodes < 2 {
		minNodes = 2
	}

	dx := math.Sqrt(cfg.NodeSpacingFactor * l.Diffusivity() * timeStep)
	n := int(math.Ceil(l.Thickness / dx))
	if n < minNodes {
		n = minNodes
	}
	return n
}

/*
Discretize builds the finite-difference grid of a construction and assembles
its state matrices.

	Args:
		c: construction with SI layers
		timeStep: CTF time step, h
		cfg: node settings

	Returns:
		state-space model in English units
*/
func Discretize(c *Construction, timeStep float64, cfg Config) (*StateSpace, error) {
	layers := NormalizeLayers(c.Layers)

	nodes := make([]int, len(layers))
	segs := make([]segment, 0)

	// consecutive resistive layers are lumped into one link
	pending := 0.0
	flush := func() {
		if pending > PhysPropLimit {
			segs = append(segs, segment{g: 1.0 / pending})
		}
		pending = 0.0
	}

	massLayers := 0
	for i, l := range layers {
		if l.IsResistive() {
			pending += l.ThermalResistance()
			continue
		}
		flush()

		massLayers++
		n := NodeCount(l, timeStep, cfg)
		nodes[i] = n

		dx := l.Thickness / float64(n)
		cell := segment{
			g:   l.Conductivity / dx,
			cap: l.Density * l.SpecificHeat * dx,
		}
		for k := 0; k < n; k++ {
			segs = append(segs, cell)
		}
	}
	flush()

	if massLayers == 0 {
		return nil, newConstructionError(c.Name, ErrDiscretization,
			"all %d layers are resistive, no dynamic system can be formed", len(layers))
	}

	nState := len(segs) - 1
	if nState > cfg.MaxTotalNodes {
		e := newConstructionError(c.Name, ErrDiscretization,
			"%d nodes at time step %.3f h exceed the maximum of %d", nState, timeStep, cfg.MaxTotalNodes)
		e.retry = true
		return nil, e
	}

	// interior point j sits between segment j and segment j+1
	capacity := make([]float64, nState)
	for j := 0; j < nState; j++ {
		capacity[j] = 0.5 * (segs[j].cap + segs[j+1].cap)
		if capacity[j] <= 0.0 {
			return nil, newConstructionError(c.Name, ErrDiscretization,
				"node %d has no heat capacity", j+1)
		}
	}

	k := mat.NewSymDense(nState, nil)
	for j := 0; j < nState; j++ {
		k.SetSym(j, j, -(segs[j].g + segs[j+1].g))
		if j+1 < nState {
			k.SetSym(j, j+1, segs[j+1].g)
		}
	}

	gIn := segs[0].g
	gOut := segs[len(segs)-1].g

	e := mat.NewDense(nState, 2, nil)
	e.Set(0, inInside, gIn)
	e.Set(nState-1, inOutside, e.At(nState-1, inOutside)+gOut)

	a := mat.NewDense(nState, nState, nil)
	a.Apply(func(i, j int, v float64) float64 { return v / capacity[i] }, k)
	b := mat.NewDense(nState, 2, nil)
	b.Apply(func(i, j int, v float64) float64 { return v / capacity[i] }, e)

	cm := mat.NewDense(2, nState, nil)
	cm.Set(outOutside, nState-1, -gOut)
	cm.Set(outInside, 0, gIn)

	d := mat.NewDense(2, 2, nil)
	d.Set(outOutside, inOutside, gOut)
	d.Set(outInside, inInside, -gIn)

	return &StateSpace{
		Name:  c.Name,
		Nodes: nodes,
		Cap:   capacity,
		K:     k,
		E:     e,
		A:     a,
		B:     b,
		C:     cm,
		D:     d,
	}, nil
}
