package invitro

import (
	"os"

	"github.com/spf13/viper"
)

/* Defaults provider. Each kinetics model has a fully populated configuration;
an optional conf.toml (directory named by the INVITRO_CONFIG environment
variable) overrides individual keys. */

// DefaultParams returns the fully populated configuration for the named
// kinetics model ("Fransen" or "Rotstein"). Fransen constants are in SI units
// (volts, seconds, siemens, farads, amperes); Rotstein constants follow that
// model's published units (millivolts, milliseconds, normalized conductances).
func DefaultParams(name string) (Params, error) {
	model, err := ParseKineticsModel(name)
	if err != nil {
		return Params{}, err
	}
	var p Params
	switch model {
	case Fransen:
		p = Params{
			Kinetics: Fransen,
			Solver:   SolverCrankNicolson,
			V0:       -0.065,
			TEnd:     1.0,
			Dt:       1e-5,
			Refine:   1000,
			Cm:       1.5e-10,
			GL:       2.2e-8,
			EL:       -0.065,
			GHFast:   1.5e-8,
			GHSlow:   5.5e-9,
			EH:       -0.020,
			GNaP:     2e-9,
			ENaP:     0.055,
		}
	case Rotstein:
		p = Params{
			Kinetics: Rotstein,
			Solver:   SolverCrankNicolson,
			V0:       -65,
			TEnd:     1000,
			Dt:       0.05,
			Refine:   1000,
			Cm:       1.0,
			GL:       0.5,
			EL:       -65,
			GHFast:   1.5,
			GHSlow:   0.55,
			EH:       -20,
			GNaP:     0.5,
			ENaP:     55,
		}
	}
	if dir := os.Getenv("INVITRO_CONFIG"); dir != "" {
		v := viper.New()
		v.SetConfigName("conf")
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil {
			return Params{}, configErrorf("%s/conf.toml: %s", dir, err)
		}
		if p, err = ParamsFromViper(v, p); err != nil {
			return Params{}, err
		}
	}
	return p, nil
}

// ParamsFromViper overlays every key set in v onto the base configuration.
// The same keys serve the defaults override file and scenario files.
func ParamsFromViper(v *viper.Viper, base Params) (Params, error) {
	p := base
	if v.IsSet("simulation.kinetics") {
		model, err := ParseKineticsModel(v.GetString("simulation.kinetics"))
		if err != nil {
			return Params{}, err
		}
		p.Kinetics = model
	}
	if v.IsSet("simulation.solver") {
		solver, err := ParseSolver(v.GetString("simulation.solver"))
		if err != nil {
			return Params{}, err
		}
		p.Solver = solver
	}
	if v.IsSet("simulation.tEnd") {
		p.TEnd = v.GetFloat64("simulation.tEnd")
	}
	if v.IsSet("simulation.dt") {
		p.Dt = v.GetFloat64("simulation.dt")
	}
	if v.IsSet("simulation.refine") {
		p.Refine = v.GetInt("simulation.refine")
	}
	if v.IsSet("simulation.v0") {
		p.V0 = v.GetFloat64("simulation.v0")
	}
	if v.IsSet("membrane.cm") {
		p.Cm = v.GetFloat64("membrane.cm")
	}
	if v.IsSet("membrane.gL") {
		p.GL = v.GetFloat64("membrane.gL")
	}
	if v.IsSet("membrane.eL") {
		p.EL = v.GetFloat64("membrane.eL")
	}
	if v.IsSet("hcurrent.gFast") {
		p.GHFast = v.GetFloat64("hcurrent.gFast")
	}
	if v.IsSet("hcurrent.gSlow") {
		p.GHSlow = v.GetFloat64("hcurrent.gSlow")
	}
	if v.IsSet("hcurrent.eRev") {
		p.EH = v.GetFloat64("hcurrent.eRev")
	}
	if v.IsSet("nap.gMax") {
		p.GNaP = v.GetFloat64("nap.gMax")
	}
	if v.IsSet("nap.eRev") {
		p.ENaP = v.GetFloat64("nap.eRev")
	}
	if v.IsSet("stimulus.iApp") {
		p.IApp = v.GetFloat64("stimulus.iApp")
	}
	if v.IsSet("stimulus.window") {
		p.IAppT = []float64{v.GetFloat64("stimulus.window")}
	}
	if v.IsSet("stimulus.windowStart") && v.IsSet("stimulus.windowEnd") {
		p.IAppT = []float64{v.GetFloat64("stimulus.windowStart"), v.GetFloat64("stimulus.windowEnd")}
	}
	if v.IsSet("noise.disabled") {
		p.Noise.Disabled = v.GetBool("noise.disabled")
	}
	if v.IsSet("noise.seed") {
		p.Noise.Seed = uint64(v.GetInt64("noise.seed"))
	}
	if v.IsSet("noise.prob") {
		p.Noise.Prob = v.GetFloat64("noise.prob")
	}
	if v.IsSet("noise.scale") {
		p.Noise.Scale = v.GetFloat64("noise.scale")
	}
	return p, nil
}
