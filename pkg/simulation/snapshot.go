package simulation

import "github.com/lao-tseu-is-alive/go-boids-flock/pkg/flock"

// Snapshot is a read-only copy of the flock, taken after a tick, for the renderer.
type Snapshot struct {
	Tick       uint64
	Boids      []flock.Boid
	BoidRadius float64
	MeanSpeed  float64
}

// View is the read side of a flock the actor needs to build snapshots.
type View interface {
	Boids() []flock.Boid
	Config() flock.Config
}

// Simulation is a flock the actor can both advance and observe.
type Simulation interface {
	flock.Clock
	View
}

func buildSnapshot(tick uint64, v View) *Snapshot {
	boids := v.Boids()
	snapshot := &Snapshot{
		Tick:       tick,
		Boids:      boids,
		BoidRadius: v.Config().BoidRadius,
	}
	if len(boids) > 0 {
		for _, b := range boids {
			snapshot.MeanSpeed += b.Vel.Len()
		}
		snapshot.MeanSpeed /= float64(len(boids))
	}
	return snapshot
}
