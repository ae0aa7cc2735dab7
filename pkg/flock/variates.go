package flock

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Variates supplies the random numbers used to build the initial flock.
type Variates interface {
	// Uniform returns a value in [0, 1).
	Uniform() float64
	// Normal returns a value drawn from Normal(mu, sigma).
	Normal(mu, sigma float64) float64
}

type gonumVariates struct {
	src     rand.Source
	uniform distuv.Uniform
}

// NewVariates returns Variates backed by gonum distributions over a seeded
// source. The same seed always yields the same sequence.
func NewVariates(seed uint64) Variates {
	src := rand.NewSource(seed)
	return &gonumVariates{
		src:     src,
		uniform: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

func (g *gonumVariates) Uniform() float64 {
	return g.uniform.Rand()
}

func (g *gonumVariates) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: g.src}.Rand()
}
