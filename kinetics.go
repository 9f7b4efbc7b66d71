package invitro

import (
	"fmt"
	"math"
	"strings"
)

// KineticsModel defines an enum of the published rate-function families.
type KineticsModel uint8

const (
	// Fransen selects the Fransén et al. stellate-cell kinetics (volts, seconds).
	// This is the only family modeling NaP inactivation, hence a 4-state model.
	Fransen KineticsModel = iota + 1
	// Rotstein selects the Rotstein et al. kinetics (millivolts, milliseconds).
	// No NaP inactivation, hence a 3-state model.
	Rotstein
)

func (m KineticsModel) String() string {
	switch m {
	case Fransen:
		return "Fransen"
	case Rotstein:
		return "Rotstein"
	}
	panic("cannot stringify unknown kinetics model")
}

// ParseKineticsModel resolves a configuration name to a kinetics model.
func ParseKineticsModel(name string) (KineticsModel, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "fransen":
		return Fransen, nil
	case "rotstein":
		return Rotstein, nil
	}
	return 0, configErrorf("unknown kinetics model `%s`", name)
}

// Rates returns the rate-function bundle for this model.
func (m KineticsModel) Rates() Kinetics {
	switch m {
	case Fransen:
		return fransenKinetics{}
	case Rotstein:
		return rotsteinKinetics{}
	}
	panic(fmt.Errorf("no rate functions for kinetics model %d", m))
}

// Kinetics bundles the voltage-dependent rate functions of one model.
// Callers must treat the bundle as opaque: whether the model carries NaP
// inactivation is probed via the NaPInactivator interface, never hard-coded.
type Kinetics interface {
	RfInf(v float64) float64
	TauRf(v float64) float64
	RsInf(v float64) float64
	TauRs(v float64) float64
	PInf(v float64) float64
	Model() KineticsModel
}

// NaPInactivator is implemented by kinetics which model the slow inactivation
// of the persistent sodium current. Its presence switches the state vector
// from (V, rf, rs) to (V, rf, rs, q).
type NaPInactivator interface {
	QInf(v float64) float64
	TauQ(v float64) float64
}

// StateDim returns the state-vector dimensionality for the given kinetics.
func StateDim(k Kinetics) int {
	if _, ok := k.(NaPInactivator); ok {
		return 4
	}
	return 3
}

/* Fransén et al. kinetics. All potentials in volts, all time constants in seconds. */

type fransenKinetics struct{}

func (fransenKinetics) Model() KineticsModel { return Fransen }

func (fransenKinetics) PInf(v float64) float64 {
	return 1 / (1 + math.Exp(-(v+0.0487)/0.0044))
}

func alphaQ(v float64) float64 {
	return (-2.88*v - 0.0491) / (1 - math.Exp((v-0.0491)/0.00463))
}

func betaQ(v float64) float64 {
	return (6.94*v + 0.447) / (1 - math.Exp(-(v+0.447)/0.00263))
}

func (fransenKinetics) QInf(v float64) float64 {
	return 1 / (1 + math.Exp((v+0.0488)/0.00998))
}

func (fransenKinetics) TauQ(v float64) float64 {
	return 1 / (alphaQ(v) + betaQ(v))
}

func (fransenKinetics) RfInf(v float64) float64 {
	return 1 / (1 + math.Exp((v+0.100)/0.003))
}

func (fransenKinetics) TauRf(v float64) float64 {
	return 0.00051 / (math.Exp((v-0.0017)/0.01) + math.Exp(-(v+0.34)/0.52))
}

func (fransenKinetics) RsInf(v float64) float64 {
	return math.Pow(1+math.Exp((v+0.00283)/0.0159), -58.5)
}

func (fransenKinetics) TauRs(v float64) float64 {
	return 0.0056 / (math.Exp((v-0.017)/0.014) + math.Exp(-(v+0.260)/0.043))
}

/* Rotstein et al. kinetics, in their published units: millivolts and milliseconds. */

type rotsteinKinetics struct{}

func (rotsteinKinetics) Model() KineticsModel { return Rotstein }

func (rotsteinKinetics) PInf(v float64) float64 {
	return 1 / (1 + math.Exp(-(v+38)/6.5))
}

func (rotsteinKinetics) RfInf(v float64) float64 {
	return 1 / (1 + math.Exp((v+79.2)/9.78))
}

func (rotsteinKinetics) TauRf(v float64) float64 {
	return 1 + 0.51/(math.Exp((v-1.7)/10)+math.Exp(-(v+340)/52))
}

func (rotsteinKinetics) RsInf(v float64) float64 {
	return math.Pow(1+math.Exp((v+2.83)/15.9), -58)
}

func (rotsteinKinetics) TauRs(v float64) float64 {
	return 1 + 5.6/(math.Exp((v-1.7)/14)+math.Exp(-(v+260)/43))
}
