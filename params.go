package invitro

// Params fully configures one simulation run. It is resolved once by the
// driver before the integration begins and is immutable for the run.
type Params struct {
	Kinetics KineticsModel // rate-function family (default Fransen)
	Solver   Solver        // integration scheme (default the two-stage corrector)

	V0      float64   // initial membrane potential; gates start at steady state for V0
	Initial []float64 // optional explicit initial state (V, rf, rs[, q]), used verbatim

	TEnd   float64 // end of the integration span, [0, TEnd]
	Dt     float64 // fixed step; required > 0 for the fixed-step solvers
	Refine int     // adaptive-only: dense-output sample count when no Dt is set

	Cm float64 // membrane capacitance

	GL float64 // leak conductance
	EL float64 // leak reversal potential

	GHFast float64 // H-current fast-gate max conductance
	GHSlow float64 // H-current slow-gate max conductance
	EH     float64 // H-current reversal potential

	GNaP float64 // persistent sodium max conductance
	ENaP float64 // persistent sodium reversal potential

	IApp  float64   // applied current
	IAppT []float64 // activation window: empty = always on, one value w = [0, w), two = [start, end)

	Noise NoiseParams // channel-noise perturbation of the leak term
}

// InjectedCurrent returns the applied current at time t. A scalar activation
// window is normalized to the half-open interval [0, w).
func (p Params) InjectedCurrent(t float64) float64 {
	switch len(p.IAppT) {
	case 0:
		return p.IApp
	case 1:
		if t >= 0 && t < p.IAppT[0] {
			return p.IApp
		}
	default:
		if t >= p.IAppT[0] && t < p.IAppT[1] {
			return p.IApp
		}
	}
	return 0
}

// Validate eagerly checks the configuration record. Fixed-step preconditions
// are only enforced for fixed-step solvers: the adaptive path is allowed to
// run from the 2-point span [0, TEnd] alone.
func (p Params) Validate() error {
	if p.Kinetics != Fransen && p.Kinetics != Rotstein {
		return configErrorf("unknown kinetics model %d", p.Kinetics)
	}
	if _, err := p.Solver.integrator(); err != nil {
		return err
	}
	if p.TEnd <= 0 {
		return configErrorf("tEnd must be positive, got %g", p.TEnd)
	}
	if p.Cm <= 0 {
		return configErrorf("membrane capacitance must be positive, got %g", p.Cm)
	}
	if p.Solver.FixedStep() {
		if p.Dt <= 0 {
			return configErrorf("solver %s requires a positive dt, got %g", p.Solver, p.Dt)
		}
		if n := spanPoints(0, p.TEnd, p.Dt); n <= 2 {
			return configErrorf("time span [0, %g] at dt=%g resolves to %d points, need more than 2", p.TEnd, p.Dt, n)
		}
	}
	if len(p.IAppT) > 2 {
		return configErrorf("iAppT must have at most two elements, got %d", len(p.IAppT))
	}
	if len(p.IAppT) == 2 && p.IAppT[1] <= p.IAppT[0] {
		return configErrorf("iAppT window [%g, %g) is empty", p.IAppT[0], p.IAppT[1])
	}
	if p.Initial != nil {
		if dim := StateDim(p.Kinetics.Rates()); len(p.Initial) != dim {
			return configErrorf("initial state has %d components, %s kinetics requires %d", len(p.Initial), p.Kinetics, dim)
		}
	}
	return p.Noise.validate()
}
