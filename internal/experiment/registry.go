package experiment

import (
	"fmt"
	"sort"

	"github.com/blokeley/montecarlo/internal/mc"
	"github.com/blokeley/montecarlo/internal/models"
)

// Registry maps model names to factories. Arity-parameterized models
// default to two inputs and are rebuilt to the configured arity by
// GetModelN.
type Registry struct {
	models map[string]func(arity int) mc.Model
}

func NewRegistry() *Registry {
	r := &Registry{models: make(map[string]func(arity int) mc.Model)}

	r.models["identity"] = func(int) mc.Model { return models.NewIdentity() }
	r.models["kinetic_energy"] = func(int) mc.Model { return models.NewKineticEnergy() }
	r.models["sum"] = func(arity int) mc.Model { return models.NewSum(arity) }
	r.models["product"] = func(arity int) mc.Model { return models.NewProduct(arity) }

	return r
}

// Register adds a caller-supplied model factory under name.
func (r *Registry) Register(name string, fn func(arity int) mc.Model) {
	r.models[name] = fn
}

func (r *Registry) GetModel(name string) (mc.Model, error) {
	return r.GetModelN(name, 2)
}

func (r *Registry) GetModelN(name string, arity int) (mc.Model, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(arity), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
