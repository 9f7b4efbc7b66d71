package invitro

import (
	"math"
	"strings"

	"github.com/ChristopherRabotin/ode"
	"github.com/ready-steady/ode/dopri"
	"gonum.org/v1/gonum/mat"
)

// DerivFunc evaluates the right-hand side of the membrane equation at time t.
// The returned slice has the same shape as y.
type DerivFunc func(t float64, y []float64) []float64

// Solver defines an enum of the supported integration schemes.
type Solver uint8

const (
	// SolverEuler is the fixed-step explicit Euler scheme. First-order, cheap,
	// and unstable at large dt in stiff regimes -- that is the caller's problem.
	SolverEuler Solver = iota + 1
	// SolverCrankNicolson is the fixed-step two-stage predictor-corrector:
	// predictor = y + (dt/2)·f(t, y), then y' = y + dt·f(t, predictor).
	// The label is historical; the scheme is a midpoint-style corrector, not
	// the implicit trapezoidal method usually called Crank-Nicolson.
	SolverCrankNicolson
	// SolverDormandPrince delegates to the adaptive Dormand-Prince 4(5) solver
	// and evaluates its dense output at the requested sample times.
	SolverDormandPrince
	// SolverRK4 is the classical fixed-step fourth-order Runge-Kutta scheme,
	// delegated to an external integrator.
	SolverRK4
)

func (s Solver) String() string {
	switch s {
	case SolverEuler:
		return "euler"
	case SolverCrankNicolson:
		return "crank-nicolson"
	case SolverDormandPrince:
		return "dopri"
	case SolverRK4:
		return "rk4"
	}
	panic("cannot stringify unknown solver")
}

// ParseSolver resolves a solver selector string.
func ParseSolver(name string) (Solver, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "euler":
		return SolverEuler, nil
	case "crank-nicolson", "cranknicolson", "cn":
		return SolverCrankNicolson, nil
	case "dopri", "dormand-prince", "adaptive":
		return SolverDormandPrince, nil
	case "rk4":
		return SolverRK4, nil
	}
	return 0, configErrorf("unknown solver `%s`", name)
}

// FixedStep returns whether this solver walks a fixed time grid and therefore
// requires a positive dt.
func (s Solver) FixedStep() bool {
	return s != SolverDormandPrince
}

// integrator produces a trajectory matrix (one row per sample time) from a
// derivative function, a strictly increasing time sequence of more than two
// points, and an initial state.
type integrator interface {
	integrate(f DerivFunc, times []float64, y0 []float64) (*mat.Dense, error)
}

var integrators = map[Solver]integrator{
	SolverEuler:         eulerIntegrator{},
	SolverCrankNicolson: midpointIntegrator{},
	SolverDormandPrince: dopriIntegrator{},
	SolverRK4:           rk4Integrator{},
}

func (s Solver) integrator() (integrator, error) {
	integ, found := integrators[s]
	if !found {
		return nil, configErrorf("unknown solver %d", s)
	}
	return integ, nil
}

// spanPoints returns the number of samples in the grid start:dt:end. The
// fencepost tolerance is relative so long spans at fine steps keep their
// final sample.
func spanPoints(start, end, dt float64) int {
	steps := (end - start) / dt
	return int(math.Floor(steps*(1+1e-12)+1e-9)) + 1
}

// timeSpan builds the fixed grid start:dt:end (last point may fall short of
// end when the span is not a multiple of dt).
func timeSpan(start, end, dt float64) []float64 {
	n := spanPoints(start, end, dt)
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = start + float64(i)*dt
	}
	return ts
}

type eulerIntegrator struct{}

func (eulerIntegrator) integrate(f DerivFunc, times []float64, y0 []float64) (*mat.Dense, error) {
	n, dim := len(times), len(y0)
	traj := mat.NewDense(n, dim, nil)
	traj.SetRow(0, y0)
	y := append([]float64(nil), y0...)
	for i := 0; i < n-1; i++ {
		dt := times[i+1] - times[i]
		fy := f(times[i], y)
		for j := range y {
			y[j] += dt * fy[j]
		}
		traj.SetRow(i+1, y)
	}
	return traj, nil
}

type midpointIntegrator struct{}

func (midpointIntegrator) integrate(f DerivFunc, times []float64, y0 []float64) (*mat.Dense, error) {
	n, dim := len(times), len(y0)
	traj := mat.NewDense(n, dim, nil)
	traj.SetRow(0, y0)
	y := append([]float64(nil), y0...)
	pred := make([]float64, dim)
	for i := 0; i < n-1; i++ {
		dt := times[i+1] - times[i]
		fy := f(times[i], y)
		for j := range y {
			pred[j] = y[j] + 0.5*dt*fy[j]
		}
		fp := f(times[i], pred)
		for j := range y {
			y[j] += dt * fp[j]
		}
		traj.SetRow(i+1, y)
	}
	return traj, nil
}

// dopriIntegrator delegates to the Dormand-Prince solver and reads its dense
// output back at exactly the requested sample times.
type dopriIntegrator struct{}

func (dopriIntegrator) integrate(f DerivFunc, times []float64, y0 []float64) (*mat.Dense, error) {
	integ, err := dopri.New(dopri.DefaultConfig())
	if err != nil {
		return nil, err
	}
	rhs := func(x float64, y, dy []float64) {
		copy(dy, f(x, y))
	}
	values, _, err := integ.Compute(rhs, append([]float64(nil), y0...), times)
	if err != nil {
		return nil, err
	}
	return mat.NewDense(len(times), len(y0), values), nil
}

// rk4Integrator delegates to the external fixed-step RK4 engine through its
// Integrable interface.
type rk4Integrator struct{}

func (rk4Integrator) integrate(f DerivFunc, times []float64, y0 []float64) (*mat.Dense, error) {
	n, dim := len(times), len(y0)
	traj := mat.NewDense(n, dim, nil)
	traj.SetRow(0, y0)
	sys := &rk4System{f: f, n: n, state: append([]float64(nil), y0...), traj: traj}
	ode.NewRK4(times[0], times[1]-times[0], sys).Solve() // Blocking.
	return traj, nil
}

// rk4System implements ode.Integrable over the membrane derivative.
type rk4System struct {
	f     DerivFunc
	n     int // number of sample times
	step  int // steps completed so far
	state []float64
	traj  *mat.Dense
}

func (r *rk4System) GetState() []float64 {
	return r.state
}

func (r *rk4System) SetState(t float64, s []float64) {
	copy(r.state, s)
	r.step++
	if r.step < r.n {
		r.traj.SetRow(r.step, s)
	}
}

// Stop is called by the engine at the start of each iteration.
func (r *rk4System) Stop(t float64) bool {
	return r.step >= r.n-1
}

func (r *rk4System) Func(t float64, y []float64) []float64 {
	return r.f(t, y)
}
