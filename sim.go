package invitro

import (
	"os"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"gonum.org/v1/gonum/mat"
)

/* Handles the membrane-potential simulations. */

// Sim drives one simulation run. Nothing is shared across runs: each Sim owns
// its Params, noise source and output exclusively.
type Sim struct {
	Params Params
	kin    Kinetics
	noise  *leakNoise
	logger kitlog.Logger
}

// Result is the sole output of a run.
type Result struct {
	Times    []float64  // strictly increasing sample times
	States   *mat.Dense // one row per sample; columns ordered V, rf, rs[, q]
	Currents *mat.Dense // one row per sample; columns ordered I_H, I_NaP
	Params   Params     // the resolved configuration of the run
}

// New returns a simulation for the given Params. A zero-valued Params loads
// the Fransen defaults. Configuration errors are reported here, before any
// integration starts.
func New(p Params) (*Sim, error) {
	if p.Kinetics == 0 && p.Cm == 0 {
		var err error
		if p, err = DefaultParams("Fransen"); err != nil {
			return nil, err
		}
	}
	if p.Kinetics == 0 {
		p.Kinetics = Fransen
	}
	if p.Solver == 0 {
		p.Solver = SolverCrankNicolson
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	klog := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout))
	klog = kitlog.With(klog, "kinetics", p.Kinetics.String(), "solver", p.Solver.String())
	return &Sim{Params: p, kin: p.Kinetics.Rates(), noise: newLeakNoise(p.Noise), logger: klog}, nil
}

// InitialState resolves the initial state vector: the explicit Params.Initial
// verbatim if set, otherwise steady-state gating values at V0.
func (s *Sim) InitialState() []float64 {
	if s.Params.Initial != nil {
		return append([]float64(nil), s.Params.Initial...)
	}
	v0 := s.Params.V0
	y0 := make([]float64, StateDim(s.kin))
	y0[0] = v0
	y0[1] = s.kin.RfInf(v0)
	y0[2] = s.kin.RsInf(v0)
	if in, ok := s.kin.(NaPInactivator); ok {
		y0[3] = in.QInf(v0)
	}
	return y0
}

// timeSpan resolves the sample times for the run. Fixed-step solvers walk
// 0:dt:tEnd. The adaptive solver uses the same grid when dt is set; otherwise
// its dense output is sampled at Refine points over [0, tEnd].
func (s *Sim) timeSpan() []float64 {
	if s.Params.Dt > 0 {
		return timeSpan(0, s.Params.TEnd, s.Params.Dt)
	}
	refine := s.Params.Refine
	if refine < 2 {
		refine = 1000
	}
	return timeSpan(0, s.Params.TEnd, s.Params.TEnd/float64(refine))
}

// Run integrates the model over [0, TEnd] and recomputes the ion currents
// over the full trajectory. Non-finite values are not guarded against: an
// unstable step size propagates NaN/Inf through the trajectory silently.
func (s *Sim) Run() (*Result, error) {
	integ, err := s.Params.Solver.integrator()
	if err != nil {
		return nil, err
	}
	times := s.timeSpan()
	y0 := s.InitialState()
	s.logger.Log("level", "info", "subsys", "sim", "status", "started", "tEnd(s)", s.Params.TEnd, "dt", s.Params.Dt, "samples", len(times), "dim", len(y0))
	start := time.Now()
	traj, err := integ.integrate(s.Derivative, times, y0)
	if err != nil {
		s.logger.Log("level", "critical", "subsys", "sim", "status", "failed", "err", err)
		return nil, err
	}
	currents := s.Params.CurrentsOver(s.kin, traj)
	s.logger.Log("level", "notice", "subsys", "sim", "status", "finished", "duration", time.Since(start).String(), "V(end)", traj.At(len(times)-1, 0))
	return &Result{Times: times, States: traj, Currents: currents, Params: s.Params}, nil
}
