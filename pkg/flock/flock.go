// Package flock simulates boids: agents whose local cohesion, separation,
// alignment and boundary rules produce group motion inside the unit square.
//
// A Flock owns the canonical state. It is advanced by calling Tick once per
// frame, or AdvancePositions and AdvanceVelocities directly, in that order.
// The package does no I/O, no logging and no locking: a Flock must be driven
// from a single goroutine.
package flock

import (
	"math"

	"github.com/lao-tseu-is-alive/go-boids-flock/pkg/geometry"
)

// Boid is a single agent of the flock.
// Positions are not wrapped or clamped, velocities are not capped.
type Boid struct {
	Pos geometry.Vector2D `json:"pos"`
	Vel geometry.Vector2D `json:"vel"`
}

// Clock is anything advanced by an external scheduler that owns timing.
type Clock interface {
	// Tick advances the simulation by dt seconds.
	Tick(dt float64)
}

// Flock is an ordered, fixed-size collection of boids.
type Flock struct {
	cfg    Config
	boids  []Boid
	accels []geometry.Vector2D // read-pass buffer, reused across ticks
}

var _ Clock = (*Flock)(nil)

// New creates cfg.BoidCount boids with positions uniform over the unit square
// and velocity components drawn from Normal(0, AloneVel·√½), so the RMS speed
// of a boid equals the cruising speed.
func New(cfg Config, rnd Variates) *Flock {
	sigma := cfg.AloneVel * math.Sqrt(0.5)
	boids := make([]Boid, cfg.BoidCount)
	for i := range boids {
		boids[i].Pos = geometry.Vector2D{X: rnd.Uniform(), Y: rnd.Uniform()}
		boids[i].Vel = geometry.Vector2D{X: rnd.Normal(0, sigma), Y: rnd.Normal(0, sigma)}
	}
	return newFlock(cfg, boids)
}

// NewFromBoids creates a flock holding a copy of boids. cfg.BoidCount is
// overwritten with len(boids).
func NewFromBoids(cfg Config, boids []Boid) *Flock {
	cfg.BoidCount = len(boids)
	return newFlock(cfg, append([]Boid(nil), boids...))
}

func newFlock(cfg Config, boids []Boid) *Flock {
	return &Flock{
		cfg:    cfg,
		boids:  boids,
		accels: make([]geometry.Vector2D, len(boids)),
	}
}

// Config returns the constants the flock was built with.
func (f *Flock) Config() Config {
	return f.cfg
}

// Len returns the number of boids, constant for the lifetime of the flock.
func (f *Flock) Len() int {
	return len(f.boids)
}

// Boid returns a copy of the i-th boid.
func (f *Flock) Boid(i int) Boid {
	return f.boids[i]
}

// Boids returns a copy of every boid, in flock order.
func (f *Flock) Boids() []Boid {
	return append(make([]Boid, 0, len(f.boids)), f.boids...)
}

// Tick moves every boid, then updates every velocity.
func (f *Flock) Tick(dt float64) {
	f.AdvancePositions(dt)
	f.AdvanceVelocities(dt)
}

// AdvancePositions applies pos += vel*dt to every boid.
func (f *Flock) AdvancePositions(dt float64) {
	for i := range f.boids {
		b := &f.boids[i]
		b.Pos = b.Pos.Add(b.Vel.Mul(dt))
	}
}

// AdvanceVelocities applies vel += acc*dt to every boid. All accelerations
// are computed from the current state before any velocity is written.
func (f *Flock) AdvanceVelocities(dt float64) {
	for i := range f.boids {
		f.accels[i] = f.Acceleration(i)
	}
	for i := range f.boids {
		b := &f.boids[i]
		b.Vel = b.Vel.Add(f.accels[i].Mul(dt))
	}
}

// Acceleration computes the acceleration of the i-th boid from the current
// state: flocking + keep cruising speed + steer back to the unit square.
func (f *Flock) Acceleration(i int) geometry.Vector2D {
	me := f.boids[i]
	return f.flocking(i).
		Add(keepVelocity(me, f.cfg)).
		Add(steerToScreen(me.Pos))
}
