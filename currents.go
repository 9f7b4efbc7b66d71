package invitro

import "gonum.org/v1/gonum/mat"

// Currents evaluates the H-current and the persistent sodium current for one
// state sample. Both are exactly zero at their reversal potentials regardless
// of the gating values.
func (p Params) Currents(k Kinetics, y []float64) (iH, iNaP float64) {
	v := y[0]
	iH = (p.GHFast*y[1] + p.GHSlow*y[2]) * (v - p.EH)
	act := k.PInf(v)
	if _, ok := k.(NaPInactivator); ok {
		act *= y[3]
	}
	iNaP = p.GNaP * act * (v - p.ENaP)
	return
}

// CurrentsOver recomputes the ion currents over a full trajectory, one row per
// sample, columns ordered (I_H, I_NaP). This is the post-integration pass; the
// per-step evaluations inside the derivative are not recorded.
func (p Params) CurrentsOver(k Kinetics, traj *mat.Dense) *mat.Dense {
	rows, _ := traj.Dims()
	out := mat.NewDense(rows, 2, nil)
	var y []float64
	for i := 0; i < rows; i++ {
		y = mat.Row(y, i, traj)
		iH, iNaP := p.Currents(k, y)
		out.Set(i, 0, iH)
		out.Set(i, 1, iNaP)
	}
	return out
}
