package models

import "github.com/blokeley/montecarlo/internal/mc"

// Identity passes its single input through unchanged. Useful for
// inspecting an input distribution directly and for convergence tests
// with known analytic moments.
type Identity struct{}

func NewIdentity() *Identity { return &Identity{} }

func (i *Identity) Name() string { return "identity" }
func (i *Identity) Arity() int   { return 1 }

func (i *Identity) Eval(x []float64) (float64, error) {
	return x[0], nil
}

// Sum adds n inputs.
type Sum struct {
	arity int
}

func NewSum(arity int) *Sum { return &Sum{arity: arity} }

func (s *Sum) Name() string { return "sum" }
func (s *Sum) Arity() int   { return s.arity }

func (s *Sum) Eval(x []float64) (float64, error) {
	total := 0.0
	for _, v := range x {
		total += v
	}
	return total, nil
}

// Product multiplies n inputs.
type Product struct {
	arity int
}

func NewProduct(arity int) *Product { return &Product{arity: arity} }

func (p *Product) Name() string { return "product" }
func (p *Product) Arity() int   { return p.arity }

func (p *Product) Eval(x []float64) (float64, error) {
	total := 1.0
	for _, v := range x {
		total *= v
	}
	return total, nil
}

var (
	_ mc.Model = (*Identity)(nil)
	_ mc.Model = (*Sum)(nil)
	_ mc.Model = (*Product)(nil)
)
