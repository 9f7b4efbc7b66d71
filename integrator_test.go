package invitro

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/floats/scalar"
	"gonum.org/v1/gonum/mat"
)

func TestTimeSpan(t *testing.T) {
	ts := timeSpan(0, 0.05, 1e-5)
	if len(ts) != 5001 {
		t.Fatalf("span has %d points, expected 5001", len(ts))
	}
	if ts[0] != 0 || !scalar.EqualWithinAbs(ts[5000], 0.05, 1e-12) {
		t.Fatalf("span endpoints wrong: [%g, %g]", ts[0], ts[5000])
	}
	for i := 1; i < len(ts); i++ {
		if ts[i] <= ts[i-1] {
			t.Fatalf("span not strictly increasing at %d", i)
		}
	}
	// the grid never oversteps the end when the span is not a multiple of dt
	ts = timeSpan(0, 1, 0.3)
	if len(ts) != 4 || ts[3] > 1 {
		t.Fatalf("ragged span wrong: %+v", ts)
	}
	// the final sample survives the rounding of (end-start)/dt on long spans
	for _, n := range []int{4, 5000, 9999999} {
		end := float64(n) * 1e-5
		if got := spanPoints(0, end, 1e-5); got != n+1 {
			t.Fatalf("span [0, %d*1e-5] at dt=1e-5 has %d points, expected %d", n, got, n+1)
		}
	}
}

// property: time count equals trajectory rows, columns equal state dimension,
// for every scheme including the delegated ones
func TestSolverShapes(t *testing.T) {
	decay := func(_ float64, y []float64) []float64 {
		f := make([]float64, len(y))
		for i, v := range y {
			f[i] = -v
		}
		return f
	}
	times := timeSpan(0, 0.1, 1e-3)
	y0 := []float64{1, 2, 3}
	for _, solver := range []Solver{SolverEuler, SolverCrankNicolson, SolverDormandPrince, SolverRK4} {
		integ, err := solver.integrator()
		if err != nil {
			t.Fatalf("[%s] %s", solver, err)
		}
		traj, err := integ.integrate(decay, times, y0)
		if err != nil {
			t.Fatalf("[%s] %s", solver, err)
		}
		rows, cols := traj.Dims()
		if rows != len(times) || cols != len(y0) {
			t.Fatalf("[%s] trajectory is %dx%d, expected %dx%d", solver, rows, cols, len(times), len(y0))
		}
		if !floats.Equal(mat.Row(nil, 0, traj), y0) {
			t.Fatalf("[%s] first row is not the initial state", solver)
		}
		// every component decays monotonically on this problem
		for i := 1; i < rows; i++ {
			for j := 0; j < cols; j++ {
				if traj.At(i, j) >= traj.At(i-1, j) {
					t.Fatalf("[%s] component %d not decaying at sample %d", solver, j, i)
				}
			}
		}
		// every scheme tracks exp(-t) closely at this step size
		exact := math.Exp(-0.1)
		if !scalar.EqualWithinAbs(traj.At(rows-1, 0), exact, 1e-3) {
			t.Fatalf("[%s] final value %g too far from %g", solver, traj.At(rows-1, 0), exact)
		}
	}
}

// the corrector gains an order of accuracy over Euler on a smooth problem
func TestCorrectorBeatsEuler(t *testing.T) {
	decay := func(_ float64, y []float64) []float64 {
		return []float64{-y[0]}
	}
	times := timeSpan(0, 1, 1e-2)
	y0 := []float64{1}
	exact := math.Exp(-1)
	eTraj, _ := eulerIntegrator{}.integrate(decay, times, y0)
	cTraj, _ := midpointIntegrator{}.integrate(decay, times, y0)
	eErr := math.Abs(eTraj.At(len(times)-1, 0) - exact)
	cErr := math.Abs(cTraj.At(len(times)-1, 0) - exact)
	if cErr >= eErr {
		t.Fatalf("corrector error %g not below Euler error %g", cErr, eErr)
	}
}

func TestParseSolver(t *testing.T) {
	cases := map[string]Solver{
		"euler":          SolverEuler,
		"crank-nicolson": SolverCrankNicolson,
		"CN":             SolverCrankNicolson,
		"dopri":          SolverDormandPrince,
		"adaptive":       SolverDormandPrince,
		"rk4":            SolverRK4,
	}
	for name, expected := range cases {
		solver, err := ParseSolver(name)
		if err != nil || solver != expected {
			t.Fatalf("could not parse `%s`: %+v %s", name, solver, err)
		}
	}
	if _, err := ParseSolver("leapfrog"); err == nil {
		t.Fatal("unknown solver name did not error")
	}
	if SolverDormandPrince.FixedStep() {
		t.Fatal("the adaptive solver must not be fixed-step")
	}
	for _, s := range []Solver{SolverEuler, SolverCrankNicolson, SolverRK4} {
		if !s.FixedStep() {
			t.Fatalf("%s must be fixed-step", s)
		}
	}
}
