package invitro

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestDefaultParams(t *testing.T) {
	for _, name := range []string{"Fransen", "Rotstein"} {
		p, err := DefaultParams(name)
		if err != nil {
			t.Fatalf("[%s] %s", name, err)
		}
		if err = p.Validate(); err != nil {
			t.Fatalf("[%s] defaults do not validate: %s", name, err)
		}
		if p.Solver != SolverCrankNicolson {
			t.Fatalf("[%s] unexpected default solver %s", name, p.Solver)
		}
	}
	if _, err := DefaultParams("acker"); err == nil {
		t.Fatal("unknown configuration name did not error")
	}
}

func TestDefaultParamsOverride(t *testing.T) {
	dir := t.TempDir()
	conf := `[simulation]
dt = 2e-5

[stimulus]
iApp = 1e-10
window = 0.5

[noise]
disabled = true
`
	if err := os.WriteFile(filepath.Join(dir, "conf.toml"), []byte(conf), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("INVITRO_CONFIG", dir)
	p, err := DefaultParams("Fransen")
	if err != nil {
		t.Fatal(err)
	}
	if p.Dt != 2e-5 {
		t.Fatalf("dt override not applied: %g", p.Dt)
	}
	if p.IApp != 1e-10 || len(p.IAppT) != 1 || p.IAppT[0] != 0.5 {
		t.Fatalf("stimulus override not applied: %g %+v", p.IApp, p.IAppT)
	}
	if !p.Noise.Disabled {
		t.Fatal("noise override not applied")
	}
	// untouched keys keep their defaults
	if p.Cm != 1.5e-10 {
		t.Fatalf("cm changed unexpectedly: %g", p.Cm)
	}
}

func TestParamsFromViper(t *testing.T) {
	v := viper.New()
	v.Set("simulation.solver", "euler")
	v.Set("simulation.kinetics", "rotstein")
	v.Set("membrane.gL", 0.25)
	v.Set("stimulus.windowStart", 100.0)
	v.Set("stimulus.windowEnd", 400.0)
	base, err := DefaultParams("Rotstein")
	if err != nil {
		t.Fatal(err)
	}
	p, err := ParamsFromViper(v, base)
	if err != nil {
		t.Fatal(err)
	}
	if p.Solver != SolverEuler || p.Kinetics != Rotstein || p.GL != 0.25 {
		t.Fatalf("overlay not applied: %+v", p)
	}
	if len(p.IAppT) != 2 || p.IAppT[0] != 100 || p.IAppT[1] != 400 {
		t.Fatalf("window overlay not applied: %+v", p.IAppT)
	}

	v.Set("simulation.solver", "simplectic")
	if _, err = ParamsFromViper(v, base); err == nil {
		t.Fatal("bad solver selector did not error")
	}
}
