package models

import "github.com/blokeley/montecarlo/internal/mc"

// KineticEnergy computes 0.5 * m * v^2 from a (mass, velocity) input
// vector.
type KineticEnergy struct{}

func NewKineticEnergy() *KineticEnergy { return &KineticEnergy{} }

func (k *KineticEnergy) Name() string { return "kinetic_energy" }
func (k *KineticEnergy) Arity() int   { return 2 }

func (k *KineticEnergy) Eval(x []float64) (float64, error) {
	mass, velocity := x[0], x[1]
	return 0.5 * mass * velocity * velocity, nil
}

var _ mc.Model = (*KineticEnergy)(nil)
