package ctf

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// largest eigenvalue spread accepted from the eigen solve
const maxEigenSpread = 1.0e14

// channel picks one input/output pair of the state-space model.
type channel struct {
	out, in int
	sign    float64
}

// Outside, Cross and Inside in that order.
var ctfChannels = [3]channel{
	{out: outOutside, in: inOutside, sign: 1.0},
	{out: outInside, in: inOutside, sign: 1.0},
	{out: outInside, in: inInside, sign: -1.0},
}

/*
mode is one decoupled first-order component of the discretized system.
With inputs linear between time steps (triangular pulses):

	ξ[k+1] = mu ξ[k] + (g1 - g2) b u[k] + g2 b u[k+1]
	y      = c ξ
*/
type mode struct {
	lambda float64    // eigenvalue, 1/h
	mu     float64    // exp(lambda Δ)
	g1, g2 float64    // input weights
	cb     [3]float64 // c b per ctf channel
	cbAll  [2][2]float64
}

// response is the magnitude the mode contributes after the current step.
func (m *mode) response(dt float64) float64 {
	oneMinusMu := -math.Expm1(m.lambda * dt)
	h := math.Abs(m.g1-oneMinusMu*m.g2) / oneMinusMu
	return h * (math.Abs(m.cb[0]) + math.Abs(m.cb[1]) + math.Abs(m.cb[2]))
}

// history is the part of response beyond the step after the current one,
// which is what is lost when the mode is reduced to two terms.
func (m *mode) history(dt float64) float64 {
	return m.mu * m.response(dt)
}

// current is the magnitude the mode contributes at the current step.
func (m *mode) current() float64 {
	return math.Abs(m.g2) * (math.Abs(m.cb[0]) + math.Abs(m.cb[1]) + math.Abs(m.cb[2]))
}

/*
modes decomposes the state-space model into modes sorted slowest first.

Cap^-1 K is similar to the symmetric Cap^-1/2 K Cap^-1/2, so the symmetric
eigen solver is used and all eigenvalues are real.
*/
func modes(ss *StateSpace, dt float64) ([]mode, error) {
	n := ss.NumStates()

	sqrtCap := make([]float64, n)
	for i, c := range ss.Cap {
		sqrtCap[i] = math.Sqrt(c)
	}

	s := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			s.SetSym(i, j, ss.K.At(i, j)/(sqrtCap[i]*sqrtCap[j]))
		}
	}

	var es mat.EigenSym
	if ok := es.Factorize(s, true); !ok {
		return nil, newConstructionError(ss.Name, ErrConvergence,
			"eigen decomposition of the %dx%d system failed", n, n)
	}
	values := es.Values(nil)
	var v mat.Dense
	es.VectorsTo(&v)

	for i, l := range values {
		if math.IsNaN(l) || math.IsInf(l, 0) || l >= 0.0 {
			return nil, newConstructionError(ss.Name, ErrConvergence,
				"eigenvalue %d is %g, the system is not dissipative", i+1, l)
		}
	}
	lmin, lmax := floats.Min(values), floats.Max(values)
	if lmin/lmax > maxEigenSpread {
		return nil, newConstructionError(ss.Name, ErrConvergence,
			"eigenvalue spread %.3e is ill-conditioned", lmin/lmax)
	}

	// b = V^T Cap^-1/2 E, c = C Cap^-1/2 V
	eScaled := mat.NewDense(n, 2, nil)
	eScaled.Apply(func(i, j int, x float64) float64 { return x / sqrtCap[i] }, ss.E)
	cs := mat.NewDense(2, n, nil)
	cs.Apply(func(i, j int, x float64) float64 { return x / sqrtCap[j] }, ss.C)

	var bm, cm mat.Dense
	bm.Mul(v.T(), eScaled)
	cm.Mul(cs, &v)

	ms := make([]mode, n)
	for k, l := range values {
		m := mode{lambda: l}
		m.mu = math.Exp(l * dt)
		m.g1 = math.Expm1(l*dt) / l
		m.g2 = (m.g1/dt - 1.0) / l
		for p := 0; p < 2; p++ {
			for q := 0; q < 2; q++ {
				m.cbAll[p][q] = cm.At(p, k) * bm.At(k, q)
			}
		}
		for i, ch := range ctfChannels {
			m.cb[i] = m.cbAll[ch.out][ch.in]
		}
		ms[k] = m
	}

	sort.SliceStable(ms, func(i, j int) bool { return ms[i].lambda > ms[j].lambda })
	return ms, nil
}

/*
retainedModes returns the smallest number of modes to keep as poles for which
the history weight of the other modes is within tol of the retained weight.
*/
func retainedModes(ms []mode, d *mat.Dense, dt float64, tol float64) int {
	n := len(ms)

	// tail[k] is the history weight of modes k..n-1
	tail := make([]float64, n+1)
	total := 0.0
	for k := n - 1; k >= 0; k-- {
		tail[k] = tail[k+1] + ms[k].history(dt)
		total += ms[k].response(dt) + ms[k].current()
	}
	for _, ch := range ctfChannels {
		total += math.Abs(d.At(ch.out, ch.in))
	}

	for np := 0; np < n; np++ {
		discarded := tail[np]
		if discarded <= tol*(total-discarded) {
			return np
		}
	}
	return n
}

// historyOrder is the CTF order for np kept modes out of n.
// Reduced modes add one term to the numerator.
func historyOrder(np, n int) int {
	if np < n {
		return np + 1
	}
	return n
}

// polyMul multiplies a polynomial in w by (1 - mu w).
func polyMul(p []float64, mu float64) []float64 {
	out := make([]float64, len(p)+1)
	for i, c := range p {
		out[i] += c
		out[i+1] -= mu * c
	}
	return out
}

/*
Solve derives the CTF set of a discretized construction.

	Args:
		ss: state-space model from Discretize
		dt: time step, h
		cfg: tolerance and term limit

	Returns:
		CTF set in SI units
*/
func Solve(ss *StateSpace, dt float64, cfg Config) (*CTFSet, error) {
	if ss.NumStates() == 0 {
		return nil, newConstructionError(ss.Name, ErrDiscretization, "no interior nodes")
	}
	if dt < SmallestTimeStep {
		return nil, newConstructionError(ss.Name, ErrDiscretization,
			"time step %g h is below %g h", dt, SmallestTimeStep)
	}

	ms, err := modes(ss, dt)
	if err != nil {
		return nil, err
	}

	np := retainedModes(ms, ss.D, dt, cfg.RelativeTolerance)
	raw := transferFunction(ms, ss.D, dt, np)

	if err := Validate(raw, cfg.MaxTerms); err != nil {
		var ce *ConstructionError
		if errors.As(err, &ce) {
			ce.Construction = ss.Name
			ce.retry = ce.Kind == ErrTermLimitExceeded
		}
		return nil, err
	}

	return DenormalizeCTF(raw), nil
}

/*
transferFunction keeps the np slowest modes as poles. Each other mode is
reduced to two terms whose sum is its steady gain -c b / lambda, so the
steady-state conductance stays exact.

	H(w) = D0 + D1 w + Σ c b (g2 + (g1 - g2) w) / (1 - mu w),  w = z^-1

The common denominator gives the flux history terms, the numerators the CTFs.
*/
func transferFunction(ms []mode, d *mat.Dense, dt float64, np int) *CTFSet {
	nt := historyOrder(np, len(ms))

	var d0, d1 [2][2]float64
	for p := 0; p < 2; p++ {
		for q := 0; q < 2; q++ {
			d0[p][q] = d.At(p, q)
		}
	}
	for _, m := range ms[np:] {
		for p := 0; p < 2; p++ {
			for q := 0; q < 2; q++ {
				d0[p][q] += m.cbAll[p][q] * m.g2
				d1[p][q] += m.cbAll[p][q] * (-1.0/m.lambda - m.g2)
			}
		}
	}

	den := []float64{1.0}
	for _, m := range ms[:np] {
		den = polyMul(den, m.mu)
	}

	var num [3][]float64
	for i, ch := range ctfChannels {
		num[i] = make([]float64, nt+1)
		for j, c := range den {
			num[i][j] += d0[ch.out][ch.in] * c
			if np < len(ms) {
				num[i][j+1] += d1[ch.out][ch.in] * c
			}
		}
	}

	for k, m := range ms[:np] {
		others := []float64{1.0}
		for j, o := range ms[:np] {
			if j != k {
				others = polyMul(others, o.mu)
			}
		}
		for i := range ctfChannels {
			for j, c := range others {
				num[i][j] += m.cb[i] * m.g2 * c
				num[i][j+1] += m.cb[i] * (m.g1 - m.g2) * c
			}
		}
	}

	for i, ch := range ctfChannels {
		floats.Scale(ch.sign, num[i])
	}

	// reduced modes have no pole, their flux terms stay zero
	flux := make([]float64, nt)
	for j := 1; j <= np; j++ {
		flux[j-1] = -den[j]
	}

	return &CTFSet{
		TimeStep: dt,
		NumTerms: nt,
		Outside:  num[0],
		Cross:    num[1],
		Inside:   num[2],
		Flux:     flux,
	}
}
