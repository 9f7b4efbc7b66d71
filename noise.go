package invitro

import (
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Default channel-noise draw: the leak conductance is scaled by 0.98 on 3% of
// derivative evaluations, modeling stochastic channel closures.
const (
	defaultNoiseProb  = 0.03
	defaultNoiseScale = 0.98
)

// NoiseParams configures the stochastic perturbation of the leak term.
// The zero value enables the published defaults with a wall-clock seed, so two
// runs with identical Params are not bit-reproducible unless a Seed is set.
type NoiseParams struct {
	Disabled bool    // force a scale factor of exactly 1 on every call
	Seed     uint64  // RNG seed; 0 seeds from the wall clock
	Prob     float64 // probability of a perturbed call; 0 means the default 0.03
	Scale    float64 // leak scale factor on a perturbed call; 0 means the default 0.98
}

func (np NoiseParams) validate() error {
	if np.Prob < 0 || np.Prob > 1 {
		return configErrorf("noise probability must be within [0,1], got %g", np.Prob)
	}
	if np.Scale < 0 {
		return configErrorf("noise scale must be non-negative, got %g", np.Scale)
	}
	return nil
}

// leakNoise is the injectable noise source consumed by the derivative function.
type leakNoise struct {
	dist     distuv.Bernoulli
	scale    float64
	disabled bool
}

func newLeakNoise(np NoiseParams) *leakNoise {
	seed := np.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	prob := np.Prob
	if prob == 0 {
		prob = defaultNoiseProb
	}
	scale := np.Scale
	if scale == 0 {
		scale = defaultNoiseScale
	}
	return &leakNoise{
		dist:     distuv.Bernoulli{P: prob, Src: rand.NewSource(seed)},
		scale:    scale,
		disabled: np.Disabled,
	}
}

// Factor draws the leak scale for one derivative evaluation.
func (n *leakNoise) Factor() float64 {
	if n.disabled {
		return 1
	}
	if n.dist.Rand() == 1 {
		return n.scale
	}
	return 1
}
