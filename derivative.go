package invitro

// Derivative evaluates the ODE right-hand side for the current state. The
// leak term is scaled by a stochastic factor drawn fresh on every call, so
// consecutive evaluations at the same (t, y) differ unless the noise source
// is disabled or seeded (see NoiseParams).
func (s *Sim) Derivative(t float64, y []float64) []float64 {
	p := s.Params
	v := y[0]
	iH, iNaP := p.Currents(s.kin, y)
	total := iH + iNaP + s.noise.Factor()*p.GL*(v-p.EL)

	f := make([]float64, len(y))
	f[0] = (p.InjectedCurrent(t) - total) / p.Cm
	f[1] = (s.kin.RfInf(v) - y[1]) / s.kin.TauRf(v)
	f[2] = (s.kin.RsInf(v) - y[2]) / s.kin.TauRs(v)
	if in, ok := s.kin.(NaPInactivator); ok {
		f[3] = (in.QInf(v) - y[3]) / in.TauQ(v)
	}
	return f
}
