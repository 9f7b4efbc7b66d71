package invitro

import (
	"math"
	"testing"
)

// gating steady states must be strict sigmoids over the physiological range
func TestFransenGatingBounds(t *testing.T) {
	k := Fransen.Rates()
	in, ok := k.(NaPInactivator)
	if !ok {
		t.Fatal("Fransen kinetics must model NaP inactivation")
	}
	for v := -0.15; v <= 0.05; v += 0.0005 {
		for name, val := range map[string]float64{
			"rf_inf": k.RfInf(v),
			"rs_inf": k.RsInf(v),
			"p_inf":  k.PInf(v),
			"q_inf":  in.QInf(v),
		} {
			if val <= 0 || val >= 1 {
				t.Fatalf("%s(%f) = %g not within (0,1)", name, v, val)
			}
		}
		for name, tau := range map[string]float64{
			"tau_rf": k.TauRf(v),
			"tau_rs": k.TauRs(v),
			"tau_q":  in.TauQ(v),
		} {
			if tau == 0 || math.IsNaN(tau) || math.IsInf(tau, 0) {
				t.Fatalf("%s(%f) = %g is degenerate", name, v, tau)
			}
		}
	}
}

func TestRotsteinGatingBounds(t *testing.T) {
	k := Rotstein.Rates()
	if _, ok := k.(NaPInactivator); ok {
		t.Fatal("Rotstein kinetics must not model NaP inactivation")
	}
	// Rotstein kinetics are published in millivolts.
	for v := -150.0; v <= 50; v += 0.5 {
		for name, val := range map[string]float64{
			"rf_inf": k.RfInf(v),
			"rs_inf": k.RsInf(v),
			"p_inf":  k.PInf(v),
		} {
			if val <= 0 || val >= 1 {
				t.Fatalf("%s(%f) = %g not within (0,1)", name, v, val)
			}
		}
		if k.TauRf(v) <= 0 || k.TauRs(v) <= 0 {
			t.Fatalf("Rotstein time constants not positive at %f", v)
		}
	}
}

func TestStateDim(t *testing.T) {
	if dim := StateDim(Fransen.Rates()); dim != 4 {
		t.Fatalf("Fransen state dimension %d != 4", dim)
	}
	if dim := StateDim(Rotstein.Rates()); dim != 3 {
		t.Fatalf("Rotstein state dimension %d != 3", dim)
	}
}

func TestParseKineticsModel(t *testing.T) {
	for _, name := range []string{"Fransen", "fransen", " FRANSEN "} {
		model, err := ParseKineticsModel(name)
		if err != nil || model != Fransen {
			t.Fatalf("could not parse `%s`: %+v %s", name, model, err)
		}
	}
	if model, err := ParseKineticsModel("rotstein"); err != nil || model != Rotstein {
		t.Fatalf("could not parse rotstein: %+v %s", model, err)
	}
	if _, err := ParseKineticsModel("hodgkin"); err == nil {
		t.Fatal("unknown kinetics name did not error")
	}
	if Fransen.Rates().Model() != Fransen || Rotstein.Rates().Model() != Rotstein {
		t.Fatal("model tag round trip failed")
	}
}
